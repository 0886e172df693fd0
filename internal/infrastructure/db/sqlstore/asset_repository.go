package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/clientasset/clientasset-api/internal/core/domain"
)

const assetColumns = `asset_id, client_id, asset_type, asset_value, created_at`

type assetRepository struct {
	tx      *sql.Tx
	dialect dialect
}

func (r *assetRepository) Create(ctx context.Context, a *domain.Asset) error {
	query := r.dialect.rebind(`INSERT INTO assets (client_id, asset_type, asset_value, created_at) VALUES (?, ?, ?, ?) RETURNING asset_id`)
	if err := r.tx.QueryRowContext(ctx, query, a.ClientID, a.Type, a.Value, a.CreatedAt.UTC()).Scan(&a.ID); err != nil {
		return fmt.Errorf("insert asset: %w", err)
	}
	return nil
}

func (r *assetRepository) ListByClient(ctx context.Context, clientID int64) ([]*domain.Asset, error) {
	query := r.dialect.rebind(`SELECT ` + assetColumns + ` FROM assets WHERE client_id = ? ORDER BY asset_id ASC`)
	rows, err := r.tx.QueryContext(ctx, query, clientID)
	if err != nil {
		return nil, fmt.Errorf("select assets: %w", err)
	}
	defer func() { _ = rows.Close() }()

	assets := make([]*domain.Asset, 0)
	for rows.Next() {
		a, err := scanAsset(rows)
		if err != nil {
			return nil, err
		}
		assets = append(assets, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate assets: %w", err)
	}
	return assets, nil
}

func (r *assetRepository) FirstByClient(ctx context.Context, clientID int64) (*domain.Asset, error) {
	query := r.dialect.rebind(`SELECT ` + assetColumns + ` FROM assets WHERE client_id = ? ORDER BY asset_id ASC LIMIT 1`)
	a, err := scanAsset(r.tx.QueryRowContext(ctx, query, clientID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrAssetNotFound
		}
		return nil, err
	}
	return a, nil
}

func (r *assetRepository) Update(ctx context.Context, a *domain.Asset) error {
	query := r.dialect.rebind(`UPDATE assets SET asset_type = ?, asset_value = ? WHERE asset_id = ?`)
	res, err := r.tx.ExecContext(ctx, query, a.Type, a.Value, a.ID)
	if err != nil {
		return fmt.Errorf("update asset: %w", err)
	}
	return requireAffected(res, domain.ErrAssetNotFound)
}

func (r *assetRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.tx.ExecContext(ctx, r.dialect.rebind(`DELETE FROM assets WHERE asset_id = ?`), id)
	if err != nil {
		return fmt.Errorf("delete asset: %w", err)
	}
	return requireAffected(res, domain.ErrAssetNotFound)
}

func scanAsset(row rowScanner) (*domain.Asset, error) {
	var a domain.Asset
	if err := row.Scan(&a.ID, &a.ClientID, &a.Type, &a.Value, &a.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan asset: %w", err)
	}
	a.CreatedAt = a.CreatedAt.UTC()
	return &a, nil
}
