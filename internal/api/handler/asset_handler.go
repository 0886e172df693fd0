package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/clientasset/clientasset-api/internal/api/metrics"
	"github.com/clientasset/clientasset-api/internal/core/ports"
)

// AssetHandler handles HTTP requests for the assets of a client.
type AssetHandler struct {
	service ports.AssetService
}

func NewAssetHandler(service ports.AssetService) *AssetHandler {
	return &AssetHandler{service: service}
}

// Add handles POST /clients/:id/assets.
//
// @Summary      Add an asset to a client
// @Tags         assets
// @Accept       json
// @Produce      json
// @Param        id               path      int              true   "Client ID"
// @Param        Idempotency-Key  header    string           false  "Replays the stored response for a repeated key"
// @Param        body             body      addAssetRequest  true   "Asset details"
// @Success      201              {object}  ackResponse
// @Failure      422              {object}  errorResponse
// @Failure      500              {object}  errorResponse
// @Router       /clients/{id}/assets [post]
func (h *AssetHandler) Add(c echo.Context) error {
	clientID, err := pathID(c)
	if err != nil {
		return err
	}
	var req addAssetRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	if _, err := h.service.AddAsset(c.Request().Context(), clientID, ports.AddAssetInput{
		Type:  *req.Type,
		Value: *req.Value,
	}); err != nil {
		return err
	}

	metrics.AssetsCreatedTotal.Inc()
	return c.JSON(http.StatusCreated, ackResponse{Message: "asset added successfully"})
}

// List handles GET /clients/:id/assets.
//
// @Summary      List the assets of a client
// @Tags         assets
// @Produce      json
// @Param        id   path      int  true  "Client ID"
// @Success      200  {array}   assetResponse
// @Failure      422  {object}  errorResponse
// @Failure      500  {object}  errorResponse
// @Router       /clients/{id}/assets [get]
func (h *AssetHandler) List(c echo.Context) error {
	clientID, err := pathID(c)
	if err != nil {
		return err
	}

	assets, err := h.service.ListAssets(c.Request().Context(), clientID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toAssetResponses(assets))
}

// Patch handles PATCH /clients/:id/assets and targets the client's first asset.
//
// @Summary      Partially update the first asset of a client
// @Tags         assets
// @Accept       json
// @Produce      json
// @Param        id    path      int                true  "Client ID"
// @Param        body  body      patchAssetRequest  true  "Fields to change"
// @Success      200   {object}  ackResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /clients/{id}/assets [patch]
func (h *AssetHandler) Patch(c echo.Context) error {
	clientID, err := pathID(c)
	if err != nil {
		return err
	}
	var req patchAssetRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	if err := h.service.PatchFirstAsset(c.Request().Context(), clientID, ports.PatchAssetInput{
		Type:  req.Type,
		Value: req.Value,
	}); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ackResponse{Message: "asset partially updated"})
}

// Delete handles DELETE /clients/:id/assets and removes the client's first asset.
//
// @Summary      Delete the first asset of a client
// @Tags         assets
// @Produce      json
// @Param        id   path      int  true  "Client ID"
// @Success      200  {object}  ackResponse
// @Failure      404  {object}  errorResponse
// @Failure      422  {object}  errorResponse
// @Failure      500  {object}  errorResponse
// @Router       /clients/{id}/assets [delete]
func (h *AssetHandler) Delete(c echo.Context) error {
	clientID, err := pathID(c)
	if err != nil {
		return err
	}

	if err := h.service.DeleteFirstAsset(c.Request().Context(), clientID); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ackResponse{Message: "asset deleted successfully"})
}
