package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/clientasset/clientasset-api/internal/core/domain"
	"github.com/clientasset/clientasset-api/internal/core/ports"
)

var _ ports.ClientService = (*ClientService)(nil)

type ClientService struct {
	uow    ports.UnitOfWork
	audit  ports.AuditRecorder
	logger zerolog.Logger
}

func NewClientService(uow ports.UnitOfWork, audit ports.AuditRecorder, logger zerolog.Logger) *ClientService {
	if audit == nil {
		audit = NopAuditRecorder{}
	}
	return &ClientService{uow: uow, audit: audit, logger: logger}
}

// CreateClient inserts a new client. A duplicate email surfaces as
// domain.ErrClientEmailExists.
func (s *ClientService) CreateClient(ctx context.Context, input ports.CreateClientInput) (*domain.Client, error) {
	client := &domain.Client{
		Name:      input.Name,
		Email:     input.Email,
		CreatedAt: time.Now().UTC(),
	}

	err := s.uow.WithinTx(ctx, func(repos ports.Repositories) error {
		return repos.Clients().Create(ctx, client)
	})
	if err != nil {
		if !errors.Is(err, domain.ErrClientEmailExists) {
			s.logger.Error().Err(err).Msg("failed to create client")
		}
		return nil, fmt.Errorf("create client: %w", err)
	}

	s.logger.Info().Int64("client_id", client.ID).Msg("client created")
	s.audit.Record(newAuditEntry(ctx, domain.EntityClient, client.ID, client.ID, domain.ActionCreated))
	return client, nil
}

// ListClients returns all clients ordered by ID.
func (s *ClientService) ListClients(ctx context.Context) ([]*domain.Client, error) {
	var clients []*domain.Client
	err := s.uow.WithinTx(ctx, func(repos ports.Repositories) error {
		var err error
		clients, err = repos.Clients().List(ctx)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	return clients, nil
}

// ReplaceClient overwrites both fields unconditionally, empty values included.
func (s *ClientService) ReplaceClient(ctx context.Context, id int64, input ports.ReplaceClientInput) error {
	err := s.uow.WithinTx(ctx, func(repos ports.Repositories) error {
		client, err := repos.Clients().FindByID(ctx, id)
		if err != nil {
			return err
		}
		client.Name = input.Name
		client.Email = input.Email
		return repos.Clients().Update(ctx, client)
	})
	if err != nil {
		return fmt.Errorf("replace client %d: %w", id, err)
	}

	s.logger.Info().Int64("client_id", id).Msg("client fully updated")
	s.audit.Record(newAuditEntry(ctx, domain.EntityClient, id, id, domain.ActionUpdated))
	return nil
}

// PatchClient applies only the fields that are present and non-empty.
func (s *ClientService) PatchClient(ctx context.Context, id int64, input ports.PatchClientInput) error {
	err := s.uow.WithinTx(ctx, func(repos ports.Repositories) error {
		client, err := repos.Clients().FindByID(ctx, id)
		if err != nil {
			return err
		}
		if name, ok := truthyString(input.Name); ok {
			client.Name = name
		}
		if email, ok := truthyString(input.Email); ok {
			client.Email = email
		}
		return repos.Clients().Update(ctx, client)
	})
	if err != nil {
		return fmt.Errorf("patch client %d: %w", id, err)
	}

	s.logger.Info().Int64("client_id", id).Msg("client partially updated")
	s.audit.Record(newAuditEntry(ctx, domain.EntityClient, id, id, domain.ActionPatched))
	return nil
}

// DeleteClient removes a client that owns no assets. Asset ownership is checked
// before the client's existence.
func (s *ClientService) DeleteClient(ctx context.Context, id int64) error {
	err := s.uow.WithinTx(ctx, func(repos ports.Repositories) error {
		_, err := repos.Assets().FirstByClient(ctx, id)
		switch {
		case err == nil:
			return domain.ErrClientHasAssets
		case !errors.Is(err, domain.ErrAssetNotFound):
			return err
		}

		if _, err := repos.Clients().FindByID(ctx, id); err != nil {
			return err
		}
		return repos.Clients().Delete(ctx, id)
	})
	if err != nil {
		if errors.Is(err, domain.ErrClientHasAssets) {
			s.logger.Warn().Int64("client_id", id).Msg("client delete blocked by existing assets")
		}
		return fmt.Errorf("delete client %d: %w", id, err)
	}

	s.logger.Info().Int64("client_id", id).Msg("client deleted")
	s.audit.Record(newAuditEntry(ctx, domain.EntityClient, id, id, domain.ActionDeleted))
	return nil
}
