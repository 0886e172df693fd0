package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/clientasset/clientasset-api/internal/core/domain"
	"github.com/clientasset/clientasset-api/internal/core/ports"
)

var _ ports.AssetService = (*AssetService)(nil)

type AssetService struct {
	uow    ports.UnitOfWork
	audit  ports.AuditRecorder
	logger zerolog.Logger
}

func NewAssetService(uow ports.UnitOfWork, audit ports.AuditRecorder, logger zerolog.Logger) *AssetService {
	if audit == nil {
		audit = NopAuditRecorder{}
	}
	return &AssetService{uow: uow, audit: audit, logger: logger}
}

// AddAsset inserts an asset under clientID. The client is not looked up first;
// a missing client surfaces as the store's foreign key error.
func (s *AssetService) AddAsset(ctx context.Context, clientID int64, input ports.AddAssetInput) (*domain.Asset, error) {
	asset := &domain.Asset{
		ClientID:  clientID,
		Type:      input.Type,
		Value:     input.Value,
		CreatedAt: time.Now().UTC(),
	}

	err := s.uow.WithinTx(ctx, func(repos ports.Repositories) error {
		return repos.Assets().Create(ctx, asset)
	})
	if err != nil {
		s.logger.Error().Err(err).Int64("client_id", clientID).Msg("failed to add asset")
		return nil, fmt.Errorf("add asset: %w", err)
	}

	s.logger.Info().Int64("client_id", clientID).Int64("asset_id", asset.ID).Msg("asset added")
	s.audit.Record(newAuditEntry(ctx, domain.EntityAsset, asset.ID, clientID, domain.ActionCreated))
	return asset, nil
}

// ListAssets returns every asset owned by clientID.
func (s *AssetService) ListAssets(ctx context.Context, clientID int64) ([]*domain.Asset, error) {
	var assets []*domain.Asset
	err := s.uow.WithinTx(ctx, func(repos ports.Repositories) error {
		var err error
		assets, err = repos.Assets().ListByClient(ctx, clientID)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("list assets: %w", err)
	}
	return assets, nil
}

// PatchFirstAsset applies the present, non-zero fields to the client's first asset.
func (s *AssetService) PatchFirstAsset(ctx context.Context, clientID int64, input ports.PatchAssetInput) error {
	var assetID int64
	err := s.uow.WithinTx(ctx, func(repos ports.Repositories) error {
		asset, err := repos.Assets().FirstByClient(ctx, clientID)
		if err != nil {
			return err
		}
		assetID = asset.ID
		if t, ok := truthyString(input.Type); ok {
			asset.Type = t
		}
		if v, ok := truthyInt(input.Value); ok {
			asset.Value = v
		}
		return repos.Assets().Update(ctx, asset)
	})
	if err != nil {
		return fmt.Errorf("patch asset of client %d: %w", clientID, err)
	}

	s.logger.Info().Int64("client_id", clientID).Int64("asset_id", assetID).Msg("asset partially updated")
	s.audit.Record(newAuditEntry(ctx, domain.EntityAsset, assetID, clientID, domain.ActionPatched))
	return nil
}

// DeleteFirstAsset removes the client's first asset.
func (s *AssetService) DeleteFirstAsset(ctx context.Context, clientID int64) error {
	var assetID int64
	err := s.uow.WithinTx(ctx, func(repos ports.Repositories) error {
		asset, err := repos.Assets().FirstByClient(ctx, clientID)
		if err != nil {
			return err
		}
		assetID = asset.ID
		return repos.Assets().Delete(ctx, asset.ID)
	})
	if err != nil {
		return fmt.Errorf("delete asset of client %d: %w", clientID, err)
	}

	s.logger.Info().Int64("client_id", clientID).Int64("asset_id", assetID).Msg("asset deleted")
	s.audit.Record(newAuditEntry(ctx, domain.EntityAsset, assetID, clientID, domain.ActionDeleted))
	return nil
}
