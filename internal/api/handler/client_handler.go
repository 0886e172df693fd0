package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/clientasset/clientasset-api/internal/api/metrics"
	"github.com/clientasset/clientasset-api/internal/core/domain"
	"github.com/clientasset/clientasset-api/internal/core/ports"
)

// ClientHandler handles HTTP requests for client operations. Errors are
// returned to Echo and rendered by the central error handler.
type ClientHandler struct {
	service ports.ClientService
}

func NewClientHandler(service ports.ClientService) *ClientHandler {
	return &ClientHandler{service: service}
}

// Create handles POST /clients.
//
// @Summary      Create a client
// @Tags         clients
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key  header    string               false  "Replays the stored response for a repeated key"
// @Param        body             body      createClientRequest  true   "Client details"
// @Success      201              {object}  ackResponse
// @Failure      409              {object}  errorResponse
// @Failure      422              {object}  errorResponse
// @Failure      500              {object}  errorResponse
// @Router       /clients [post]
func (h *ClientHandler) Create(c echo.Context) error {
	var req createClientRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	if _, err := h.service.CreateClient(c.Request().Context(), ports.CreateClientInput{
		Name:  *req.Name,
		Email: *req.Email,
	}); err != nil {
		return err
	}

	metrics.ClientsCreatedTotal.Inc()
	return c.JSON(http.StatusCreated, ackResponse{Message: "client created successfully"})
}

// List handles GET /clients.
//
// @Summary      List clients
// @Tags         clients
// @Produce      json
// @Success      200  {array}   clientResponse
// @Failure      500  {object}  errorResponse
// @Router       /clients [get]
func (h *ClientHandler) List(c echo.Context) error {
	clients, err := h.service.ListClients(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toClientResponses(clients))
}

// Replace handles PUT /clients/:id.
//
// @Summary      Replace a client
// @Tags         clients
// @Accept       json
// @Produce      json
// @Param        id    path      int                   true  "Client ID"
// @Param        body  body      replaceClientRequest  true  "Client details"
// @Success      200   {object}  ackResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /clients/{id} [put]
func (h *ClientHandler) Replace(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req replaceClientRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	if err := h.service.ReplaceClient(c.Request().Context(), id, ports.ReplaceClientInput{
		Name:  *req.Name,
		Email: *req.Email,
	}); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ackResponse{Message: "client fully updated"})
}

// Patch handles PATCH /clients/:id. Absent or empty fields are left unchanged.
//
// @Summary      Partially update a client
// @Tags         clients
// @Accept       json
// @Produce      json
// @Param        id    path      int                 true  "Client ID"
// @Param        body  body      patchClientRequest  true  "Fields to change"
// @Success      200   {object}  ackResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /clients/{id} [patch]
func (h *ClientHandler) Patch(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req patchClientRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	if err := h.service.PatchClient(c.Request().Context(), id, ports.PatchClientInput{
		Name:  req.Name,
		Email: req.Email,
	}); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ackResponse{Message: "client partially updated"})
}

// Delete handles DELETE /clients/:id.
//
// @Summary      Delete a client
// @Description  Refused with 400 while the client still owns assets.
// @Tags         clients
// @Produce      json
// @Param        id   path      int  true  "Client ID"
// @Success      200  {object}  ackResponse
// @Failure      400  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Failure      422  {object}  errorResponse
// @Failure      500  {object}  errorResponse
// @Router       /clients/{id} [delete]
func (h *ClientHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	if err := h.service.DeleteClient(c.Request().Context(), id); err != nil {
		if errors.Is(err, domain.ErrClientHasAssets) {
			metrics.ClientDeletesBlockedTotal.Inc()
		}
		return err
	}
	return c.JSON(http.StatusOK, ackResponse{Message: "client deleted successfully"})
}
