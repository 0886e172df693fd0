package service

import (
	"context"
	"errors"
	"sort"

	"github.com/clientasset/clientasset-api/internal/core/domain"
	"github.com/clientasset/clientasset-api/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory unit of work. Each WithinTx call snapshots state and restores it
// when fn fails, mirroring a rollback.
// ---------------------------------------------------------------------------

var errForeignKey = errors.New("foreign key constraint failed")

type memStore struct {
	clients      map[int64]*domain.Client
	assets       map[int64]*domain.Asset
	nextClientID int64
	nextAssetID  int64
	beginErr     error
	txCount      int
}

func newMemStore() *memStore {
	return &memStore{
		clients: make(map[int64]*domain.Client),
		assets:  make(map[int64]*domain.Asset),
	}
}

func (m *memStore) WithinTx(_ context.Context, fn func(ports.Repositories) error) error {
	if m.beginErr != nil {
		return m.beginErr
	}
	m.txCount++

	clients := make(map[int64]*domain.Client, len(m.clients))
	for id, c := range m.clients {
		clone := *c
		clients[id] = &clone
	}
	assets := make(map[int64]*domain.Asset, len(m.assets))
	for id, a := range m.assets {
		clone := *a
		assets[id] = &clone
	}

	if err := fn(memRepos{m}); err != nil {
		m.clients, m.assets = clients, assets
		return err
	}
	return nil
}

func (m *memStore) seedClient(name, email string) *domain.Client {
	m.nextClientID++
	c := &domain.Client{ID: m.nextClientID, Name: name, Email: email}
	m.clients[c.ID] = c
	return c
}

func (m *memStore) seedAsset(clientID int64, typ string, value int64) *domain.Asset {
	m.nextAssetID++
	a := &domain.Asset{ID: m.nextAssetID, ClientID: clientID, Type: typ, Value: value}
	m.assets[a.ID] = a
	return a
}

type memRepos struct{ m *memStore }

func (r memRepos) Clients() ports.ClientRepository { return memClients{r.m} }
func (r memRepos) Assets() ports.AssetRepository   { return memAssets{r.m} }

type memClients struct{ m *memStore }

func (r memClients) Create(_ context.Context, c *domain.Client) error {
	for _, existing := range r.m.clients {
		if existing.Email == c.Email {
			return domain.ErrClientEmailExists
		}
	}
	r.m.nextClientID++
	c.ID = r.m.nextClientID
	clone := *c
	r.m.clients[c.ID] = &clone
	return nil
}

func (r memClients) List(_ context.Context) ([]*domain.Client, error) {
	out := make([]*domain.Client, 0, len(r.m.clients))
	for _, c := range r.m.clients {
		clone := *c
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r memClients) FindByID(_ context.Context, id int64) (*domain.Client, error) {
	c, ok := r.m.clients[id]
	if !ok {
		return nil, domain.ErrClientNotFound
	}
	clone := *c
	return &clone, nil
}

func (r memClients) Update(_ context.Context, c *domain.Client) error {
	if _, ok := r.m.clients[c.ID]; !ok {
		return domain.ErrClientNotFound
	}
	for _, existing := range r.m.clients {
		if existing.ID != c.ID && existing.Email == c.Email {
			return domain.ErrClientEmailExists
		}
	}
	clone := *c
	r.m.clients[c.ID] = &clone
	return nil
}

func (r memClients) Delete(_ context.Context, id int64) error {
	for _, a := range r.m.assets {
		if a.ClientID == id {
			return errForeignKey
		}
	}
	delete(r.m.clients, id)
	return nil
}

type memAssets struct{ m *memStore }

func (r memAssets) Create(_ context.Context, a *domain.Asset) error {
	if _, ok := r.m.clients[a.ClientID]; !ok {
		return errForeignKey
	}
	r.m.nextAssetID++
	a.ID = r.m.nextAssetID
	clone := *a
	r.m.assets[a.ID] = &clone
	return nil
}

func (r memAssets) ListByClient(_ context.Context, clientID int64) ([]*domain.Asset, error) {
	out := []*domain.Asset{}
	for _, a := range r.m.assets {
		if a.ClientID == clientID {
			clone := *a
			out = append(out, &clone)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r memAssets) FirstByClient(ctx context.Context, clientID int64) (*domain.Asset, error) {
	assets, _ := r.ListByClient(ctx, clientID)
	if len(assets) == 0 {
		return nil, domain.ErrAssetNotFound
	}
	return assets[0], nil
}

func (r memAssets) Update(_ context.Context, a *domain.Asset) error {
	if _, ok := r.m.assets[a.ID]; !ok {
		return domain.ErrAssetNotFound
	}
	clone := *a
	r.m.assets[a.ID] = &clone
	return nil
}

func (r memAssets) Delete(_ context.Context, id int64) error {
	delete(r.m.assets, id)
	return nil
}

// ---------------------------------------------------------------------------
// Audit recorder stub
// ---------------------------------------------------------------------------

type recordingAudit struct {
	entries []domain.AuditEntry
}

func (a *recordingAudit) Record(e domain.AuditEntry) {
	a.entries = append(a.entries, e)
}

func strPtr(s string) *string { return &s }
func intPtr(n int64) *int64   { return &n }
