package handler

import (
	"time"

	"github.com/clientasset/clientasset-api/internal/core/domain"
)

type addAssetRequest struct {
	Type  *string `json:"asset_type"  validate:"required"`
	Value *int64  `json:"asset_value" validate:"required"`
}

type patchAssetRequest struct {
	Type  *string `json:"asset_type"`
	Value *int64  `json:"asset_value"`
}

type assetResponse struct {
	ID        int64     `json:"asset_id"`
	ClientID  int64     `json:"client_id"`
	Type      string    `json:"asset_type"`
	Value     int64     `json:"asset_value"`
	CreatedAt time.Time `json:"created_at"`
}

func toAssetResponses(assets []*domain.Asset) []assetResponse {
	out := make([]assetResponse, 0, len(assets))
	for _, a := range assets {
		out = append(out, assetResponse{
			ID:        a.ID,
			ClientID:  a.ClientID,
			Type:      a.Type,
			Value:     a.Value,
			CreatedAt: a.CreatedAt,
		})
	}
	return out
}
