package ports

import (
	"context"

	"github.com/clientasset/clientasset-api/internal/core/domain"
)

// AddAssetInput carries the fields of a new asset.
type AddAssetInput struct {
	Type  string
	Value int64
}

// PatchAssetInput carries optional fields. A nil, empty or zero value leaves
// the stored field unchanged.
type PatchAssetInput struct {
	Type  *string
	Value *int64
}

// AssetService defines use-case operations for assets. Update and delete act
// on the client's first asset (lowest asset ID).
type AssetService interface {
	AddAsset(ctx context.Context, clientID int64, input AddAssetInput) (*domain.Asset, error)
	ListAssets(ctx context.Context, clientID int64) ([]*domain.Asset, error)
	PatchFirstAsset(ctx context.Context, clientID int64, input PatchAssetInput) error
	DeleteFirstAsset(ctx context.Context, clientID int64) error
}
