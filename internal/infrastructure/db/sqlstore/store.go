// Package sqlstore implements the relational persistence layer on top of
// database/sql. Postgres (pgx) and SQLite (modernc) are supported; both share
// the same queries and differ only in placeholders, DDL and error codes.
package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/clientasset/clientasset-api/internal/core/ports"
)

const defaultTimeout = 10 * time.Second

var _ ports.UnitOfWork = (*Store)(nil)

// Config captures the settings required to open the relational store.
type Config struct {
	Driver  string // "postgres" or "sqlite"
	DSN     string
	Timeout time.Duration
}

// Store owns the connection pool. Every operation runs inside WithinTx.
type Store struct {
	db      *sql.DB
	dialect dialect
}

// Open connects to the configured database and verifies connectivity with a
// ping. A default timeout is applied when none is provided.
func Open(ctx context.Context, cfg Config) (*Store, error) {
	d, err := dialectFor(cfg.Driver)
	if err != nil {
		return nil, err
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	db, err := sql.Open(d.driverName, d.prepareDSN(cfg.DSN))
	if err != nil {
		return nil, fmt.Errorf("%s open: %w", d.name, err)
	}
	if d.maxOpenConns > 0 {
		db.SetMaxOpenConns(d.maxOpenConns)
	}

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%s ping: %w", d.name, err)
	}

	return &Store{db: db, dialect: d}, nil
}

// EnsureSchema creates the clients and assets tables when they are absent.
func (s *Store) EnsureSchema(ctx context.Context) error {
	for _, stmt := range s.dialect.schema {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}

// WithinTx runs fn in a transaction, committing on success and rolling back
// on error or panic.
func (s *Store) WithinTx(ctx context.Context, fn func(repos ports.Repositories) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback() // no-op after commit
	}()

	if err := fn(&txRepos{tx: tx, dialect: s.dialect}); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

// Ping verifies the database connection is still alive.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Driver returns the configured dialect name.
func (s *Store) Driver() string { return s.dialect.name }

func (s *Store) Close() error { return s.db.Close() }

type txRepos struct {
	tx      *sql.Tx
	dialect dialect
}

func (r *txRepos) Clients() ports.ClientRepository {
	return &clientRepository{tx: r.tx, dialect: r.dialect}
}

func (r *txRepos) Assets() ports.AssetRepository {
	return &assetRepository{tx: r.tx, dialect: r.dialect}
}
