package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/clientasset/clientasset-api/internal/core/domain"
	"github.com/clientasset/clientasset-api/internal/core/ports"
)

type stubClientService struct {
	createFn  func(ctx context.Context, in ports.CreateClientInput) (*domain.Client, error)
	listFn    func(ctx context.Context) ([]*domain.Client, error)
	replaceFn func(ctx context.Context, id int64, in ports.ReplaceClientInput) error
	patchFn   func(ctx context.Context, id int64, in ports.PatchClientInput) error
	deleteFn  func(ctx context.Context, id int64) error
}

func (s *stubClientService) CreateClient(ctx context.Context, in ports.CreateClientInput) (*domain.Client, error) {
	return s.createFn(ctx, in)
}

func (s *stubClientService) ListClients(ctx context.Context) ([]*domain.Client, error) {
	return s.listFn(ctx)
}

func (s *stubClientService) ReplaceClient(ctx context.Context, id int64, in ports.ReplaceClientInput) error {
	return s.replaceFn(ctx, id, in)
}

func (s *stubClientService) PatchClient(ctx context.Context, id int64, in ports.PatchClientInput) error {
	return s.patchFn(ctx, id, in)
}

func (s *stubClientService) DeleteClient(ctx context.Context, id int64) error {
	return s.deleteFn(ctx, id)
}

type stubAssetService struct {
	addFn    func(ctx context.Context, clientID int64, in ports.AddAssetInput) (*domain.Asset, error)
	listFn   func(ctx context.Context, clientID int64) ([]*domain.Asset, error)
	patchFn  func(ctx context.Context, clientID int64, in ports.PatchAssetInput) error
	deleteFn func(ctx context.Context, clientID int64) error
}

func (s *stubAssetService) AddAsset(ctx context.Context, clientID int64, in ports.AddAssetInput) (*domain.Asset, error) {
	return s.addFn(ctx, clientID, in)
}

func (s *stubAssetService) ListAssets(ctx context.Context, clientID int64) ([]*domain.Asset, error) {
	return s.listFn(ctx, clientID)
}

func (s *stubAssetService) PatchFirstAsset(ctx context.Context, clientID int64, in ports.PatchAssetInput) error {
	return s.patchFn(ctx, clientID, in)
}

func (s *stubAssetService) DeleteFirstAsset(ctx context.Context, clientID int64) error {
	return s.deleteFn(ctx, clientID)
}

// newContext builds an echo.Context for a handler under test. id is the :id
// path value; an empty id leaves the route without params.
func newContext(method, target, body, id string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if id != "" {
		c.SetParamNames("id")
		c.SetParamValues(id)
	}
	return c, rec
}

func requireHTTPError(t *testing.T, err error, code int) {
	t.Helper()
	var he *echo.HTTPError
	if !errors.As(err, &he) {
		t.Fatalf("expected *echo.HTTPError, got %v", err)
	}
	if he.Code != code {
		t.Fatalf("expected status %d, got %d (%v)", code, he.Code, he.Message)
	}
}
