package sqlstore

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clientasset/clientasset-api/internal/core/domain"
	"github.com/clientasset/clientasset-api/internal/core/ports"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	ctx := context.Background()
	dsn := "file:" + filepath.Join(t.TempDir(), "clients.db")
	st, err := Open(ctx, Config{Driver: DriverSQLite, DSN: dsn})
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	require.NoError(t, st.EnsureSchema(ctx))
	return st
}

func createClient(t *testing.T, st *Store, name, email string) *domain.Client {
	t.Helper()
	c := &domain.Client{Name: name, Email: email, CreatedAt: time.Now().UTC()}
	err := st.WithinTx(context.Background(), func(repos ports.Repositories) error {
		return repos.Clients().Create(context.Background(), c)
	})
	require.NoError(t, err)
	return c
}

func createAsset(t *testing.T, st *Store, clientID int64, typ string, value int64) *domain.Asset {
	t.Helper()
	a := &domain.Asset{ClientID: clientID, Type: typ, Value: value, CreatedAt: time.Now().UTC()}
	err := st.WithinTx(context.Background(), func(repos ports.Repositories) error {
		return repos.Assets().Create(context.Background(), a)
	})
	require.NoError(t, err)
	return a
}

func TestStore_EnsureSchemaIsIdempotent(t *testing.T) {
	st := newTestStore(t)
	require.NoError(t, st.EnsureSchema(context.Background()))
	assert.Equal(t, DriverSQLite, st.Driver())
	assert.NoError(t, st.Ping(context.Background()))
}

func TestOpen_UnsupportedDriver(t *testing.T) {
	_, err := Open(context.Background(), Config{Driver: "oracle", DSN: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported database driver")
}

func TestClientRepository_CreateAndList(t *testing.T) {
	st := newTestStore(t)
	first := createClient(t, st, "Acme", "a@x.com")
	second := createClient(t, st, "Beta", "b@x.com")

	assert.Equal(t, int64(1), first.ID)
	assert.Equal(t, int64(2), second.ID)

	var clients []*domain.Client
	err := st.WithinTx(context.Background(), func(repos ports.Repositories) error {
		var err error
		clients, err = repos.Clients().List(context.Background())
		return err
	})
	require.NoError(t, err)
	require.Len(t, clients, 2)
	assert.Equal(t, "Acme", clients[0].Name)
	assert.Equal(t, "a@x.com", clients[0].Email)
	assert.False(t, clients[0].CreatedAt.IsZero())
	assert.Equal(t, "Beta", clients[1].Name)
}

func TestClientRepository_DuplicateEmail(t *testing.T) {
	st := newTestStore(t)
	createClient(t, st, "Acme", "a@x.com")

	err := st.WithinTx(context.Background(), func(repos ports.Repositories) error {
		return repos.Clients().Create(context.Background(), &domain.Client{Name: "Other", Email: "a@x.com", CreatedAt: time.Now()})
	})
	assert.ErrorIs(t, err, domain.ErrClientEmailExists)
}

func TestClientRepository_UpdateDuplicateEmail(t *testing.T) {
	st := newTestStore(t)
	createClient(t, st, "Acme", "a@x.com")
	beta := createClient(t, st, "Beta", "b@x.com")

	err := st.WithinTx(context.Background(), func(repos ports.Repositories) error {
		beta.Email = "a@x.com"
		return repos.Clients().Update(context.Background(), beta)
	})
	assert.ErrorIs(t, err, domain.ErrClientEmailExists)
}

func TestClientRepository_FindUpdateDelete(t *testing.T) {
	st := newTestStore(t)
	c := createClient(t, st, "Acme", "a@x.com")
	ctx := context.Background()

	err := st.WithinTx(ctx, func(repos ports.Repositories) error {
		found, err := repos.Clients().FindByID(ctx, c.ID)
		if err != nil {
			return err
		}
		found.Name = "Acme Corp"
		return repos.Clients().Update(ctx, found)
	})
	require.NoError(t, err)

	err = st.WithinTx(ctx, func(repos ports.Repositories) error {
		found, err := repos.Clients().FindByID(ctx, c.ID)
		if err != nil {
			return err
		}
		assert.Equal(t, "Acme Corp", found.Name)
		return repos.Clients().Delete(ctx, c.ID)
	})
	require.NoError(t, err)

	err = st.WithinTx(ctx, func(repos ports.Repositories) error {
		_, err := repos.Clients().FindByID(ctx, c.ID)
		return err
	})
	assert.ErrorIs(t, err, domain.ErrClientNotFound)
}

func TestClientRepository_MissingRows(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	err := st.WithinTx(ctx, func(repos ports.Repositories) error {
		return repos.Clients().Update(ctx, &domain.Client{ID: 999999, Name: "x", Email: "x@x.com"})
	})
	assert.ErrorIs(t, err, domain.ErrClientNotFound)

	err = st.WithinTx(ctx, func(repos ports.Repositories) error {
		return repos.Clients().Delete(ctx, 999999)
	})
	assert.ErrorIs(t, err, domain.ErrClientNotFound)
}

func TestAssetRepository_Lifecycle(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	c := createClient(t, st, "Acme", "a@x.com")
	other := createClient(t, st, "Beta", "b@x.com")

	first := createAsset(t, st, c.ID, "stock", 100)
	createAsset(t, st, other.ID, "bond", 5)
	second := createAsset(t, st, c.ID, "cash", 20)

	err := st.WithinTx(ctx, func(repos ports.Repositories) error {
		assets, err := repos.Assets().ListByClient(ctx, c.ID)
		if err != nil {
			return err
		}
		require.Len(t, assets, 2)
		assert.Equal(t, first.ID, assets[0].ID)
		assert.Equal(t, "stock", assets[0].Type)
		assert.Equal(t, int64(100), assets[0].Value)
		assert.Equal(t, second.ID, assets[1].ID)

		head, err := repos.Assets().FirstByClient(ctx, c.ID)
		if err != nil {
			return err
		}
		assert.Equal(t, first.ID, head.ID)

		head.Value = 150
		if err := repos.Assets().Update(ctx, head); err != nil {
			return err
		}
		return repos.Assets().Delete(ctx, second.ID)
	})
	require.NoError(t, err)

	err = st.WithinTx(ctx, func(repos ports.Repositories) error {
		assets, err := repos.Assets().ListByClient(ctx, c.ID)
		if err != nil {
			return err
		}
		require.Len(t, assets, 1)
		assert.Equal(t, int64(150), assets[0].Value)
		return nil
	})
	require.NoError(t, err)
}

func TestAssetRepository_FirstByClientNone(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	err := st.WithinTx(ctx, func(repos ports.Repositories) error {
		assets, err := repos.Assets().ListByClient(ctx, 5)
		if err != nil {
			return err
		}
		assert.Empty(t, assets)
		assert.NotNil(t, assets)
		_, err = repos.Assets().FirstByClient(ctx, 5)
		return err
	})
	assert.ErrorIs(t, err, domain.ErrAssetNotFound)
}

func TestAssetRepository_ForeignKeyEnforced(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	err := st.WithinTx(ctx, func(repos ports.Repositories) error {
		return repos.Assets().Create(ctx, &domain.Asset{ClientID: 404, Type: "stock", Value: 1, CreatedAt: time.Now()})
	})
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrClientNotFound)
}

func TestStore_WithinTxRollsBackOnError(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	boom := errors.New("boom")

	err := st.WithinTx(ctx, func(repos ports.Repositories) error {
		if err := repos.Clients().Create(ctx, &domain.Client{Name: "Temp", Email: "t@x.com", CreatedAt: time.Now()}); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	err = st.WithinTx(ctx, func(repos ports.Repositories) error {
		clients, err := repos.Clients().List(ctx)
		if err != nil {
			return err
		}
		assert.Empty(t, clients)
		return nil
	})
	require.NoError(t, err)
}

func TestDollarPlaceholders(t *testing.T) {
	got := dollarPlaceholders(`UPDATE clients SET client_name = ?, email = ? WHERE client_id = ?`)
	assert.Equal(t, `UPDATE clients SET client_name = $1, email = $2 WHERE client_id = $3`, got)
}

func TestWithForeignKeys(t *testing.T) {
	assert.Equal(t, "file:a.db?_pragma=foreign_keys(1)", withForeignKeys("file:a.db"))
	assert.Equal(t, "file:a.db?mode=rwc&_pragma=foreign_keys(1)", withForeignKeys("file:a.db?mode=rwc"))
	assert.Equal(t, "file:a.db?_pragma=foreign_keys(0)", withForeignKeys("file:a.db?_pragma=foreign_keys(0)"))
}
