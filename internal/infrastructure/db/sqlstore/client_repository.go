package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/clientasset/clientasset-api/internal/core/domain"
)

const clientColumns = `client_id, client_name, email, created_at`

type clientRepository struct {
	tx      *sql.Tx
	dialect dialect
}

func (r *clientRepository) Create(ctx context.Context, c *domain.Client) error {
	query := r.dialect.rebind(`INSERT INTO clients (client_name, email, created_at) VALUES (?, ?, ?) RETURNING client_id`)
	if err := r.tx.QueryRowContext(ctx, query, c.Name, c.Email, c.CreatedAt.UTC()).Scan(&c.ID); err != nil {
		if r.dialect.isUniqueViolation(err) {
			return domain.ErrClientEmailExists
		}
		return fmt.Errorf("insert client: %w", err)
	}
	return nil
}

func (r *clientRepository) List(ctx context.Context) ([]*domain.Client, error) {
	rows, err := r.tx.QueryContext(ctx, `SELECT `+clientColumns+` FROM clients ORDER BY client_id ASC`)
	if err != nil {
		return nil, fmt.Errorf("select clients: %w", err)
	}
	defer func() { _ = rows.Close() }()

	clients := make([]*domain.Client, 0)
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, err
		}
		clients = append(clients, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate clients: %w", err)
	}
	return clients, nil
}

func (r *clientRepository) FindByID(ctx context.Context, id int64) (*domain.Client, error) {
	query := r.dialect.rebind(`SELECT ` + clientColumns + ` FROM clients WHERE client_id = ?`)
	c, err := scanClient(r.tx.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrClientNotFound
		}
		return nil, err
	}
	return c, nil
}

func (r *clientRepository) Update(ctx context.Context, c *domain.Client) error {
	query := r.dialect.rebind(`UPDATE clients SET client_name = ?, email = ? WHERE client_id = ?`)
	res, err := r.tx.ExecContext(ctx, query, c.Name, c.Email, c.ID)
	if err != nil {
		if r.dialect.isUniqueViolation(err) {
			return domain.ErrClientEmailExists
		}
		return fmt.Errorf("update client: %w", err)
	}
	return requireAffected(res, domain.ErrClientNotFound)
}

func (r *clientRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.tx.ExecContext(ctx, r.dialect.rebind(`DELETE FROM clients WHERE client_id = ?`), id)
	if err != nil {
		return fmt.Errorf("delete client: %w", err)
	}
	return requireAffected(res, domain.ErrClientNotFound)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanClient(row rowScanner) (*domain.Client, error) {
	var c domain.Client
	if err := row.Scan(&c.ID, &c.Name, &c.Email, &c.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan client: %w", err)
	}
	c.CreatedAt = c.CreatedAt.UTC()
	return &c, nil
}

// requireAffected maps a zero-row mutation to notFound.
func requireAffected(res sql.Result, notFound error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return notFound
	}
	return nil
}
