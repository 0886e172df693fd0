package ports

import (
	"context"

	"github.com/clientasset/clientasset-api/internal/core/domain"
)

// ClientRepository defines persistence operations for clients.
type ClientRepository interface {
	// Create inserts the client and sets its generated ID.
	Create(ctx context.Context, c *domain.Client) error
	// List returns every client ordered by ID ascending.
	List(ctx context.Context) ([]*domain.Client, error)
	FindByID(ctx context.Context, id int64) (*domain.Client, error)
	Update(ctx context.Context, c *domain.Client) error
	Delete(ctx context.Context, id int64) error
}

// AssetRepository defines persistence operations for assets.
type AssetRepository interface {
	// Create inserts the asset and sets its generated ID.
	Create(ctx context.Context, a *domain.Asset) error
	ListByClient(ctx context.Context, clientID int64) ([]*domain.Asset, error)
	// FirstByClient returns the client's asset with the lowest ID, or
	// domain.ErrAssetNotFound when the client owns none.
	FirstByClient(ctx context.Context, clientID int64) (*domain.Asset, error)
	Update(ctx context.Context, a *domain.Asset) error
	Delete(ctx context.Context, id int64) error
}

// Repositories groups the repositories bound to one transaction.
type Repositories interface {
	Clients() ClientRepository
	Assets() AssetRepository
}

// UnitOfWork scopes a database session to a single operation.
type UnitOfWork interface {
	// WithinTx runs fn inside a transaction. The transaction commits when fn
	// returns nil and rolls back otherwise; the session is always released.
	WithinTx(ctx context.Context, fn func(repos Repositories) error) error
}
