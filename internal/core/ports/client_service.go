package ports

import (
	"context"

	"github.com/clientasset/clientasset-api/internal/core/domain"
)

// CreateClientInput carries the fields of a new client.
type CreateClientInput struct {
	Name  string
	Email string
}

// ReplaceClientInput overwrites every mutable field of a client.
type ReplaceClientInput struct {
	Name  string
	Email string
}

// PatchClientInput carries optional fields. A nil or empty value leaves the
// stored field unchanged.
type PatchClientInput struct {
	Name  *string
	Email *string
}

// ClientService defines use-case operations for clients.
type ClientService interface {
	CreateClient(ctx context.Context, input CreateClientInput) (*domain.Client, error)
	ListClients(ctx context.Context) ([]*domain.Client, error)
	ReplaceClient(ctx context.Context, id int64, input ReplaceClientInput) error
	PatchClient(ctx context.Context, id int64, input PatchClientInput) error
	DeleteClient(ctx context.Context, id int64) error
}
