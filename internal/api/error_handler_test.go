package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/clientasset/clientasset-api/internal/core/domain"
)

func TestHTTPErrorHandler_Mapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code int
		msg  string
	}{
		{"client not found", fmt.Errorf("patch client: %w", domain.ErrClientNotFound), http.StatusNotFound, "client not found"},
		{"asset not found", fmt.Errorf("delete asset: %w", domain.ErrAssetNotFound), http.StatusNotFound, "asset not found"},
		{"client has assets", fmt.Errorf("delete client: %w", domain.ErrClientHasAssets), http.StatusBadRequest, "cannot delete client, assets exist"},
		{"duplicate email", fmt.Errorf("create client: %w", domain.ErrClientEmailExists), http.StatusConflict, "client email already exists"},
		{"input error", echo.NewHTTPError(http.StatusUnprocessableEntity, "email is required"), http.StatusUnprocessableEntity, "email is required"},
		{"store failure", errors.New("insert asset: FOREIGN KEY constraint failed"), http.StatusInternalServerError, "internal server error"},
	}

	handler := NewHTTPErrorHandler(zerolog.Nop())
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := echo.New()
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodPost, "/clients", nil), rec)

			handler(tc.err, c)

			if rec.Code != tc.code {
				t.Fatalf("expected %d, got %d", tc.code, rec.Code)
			}
			var resp errorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("invalid json: %v", err)
			}
			if resp.Error != tc.msg {
				t.Fatalf("expected %q, got %q", tc.msg, resp.Error)
			}
		})
	}
}

func TestHTTPErrorHandler_SkipsCommittedResponse(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	_ = c.String(http.StatusOK, "done")

	NewHTTPErrorHandler(zerolog.Nop())(domain.ErrClientNotFound, c)

	if rec.Code != http.StatusOK || rec.Body.String() != "done" {
		t.Fatalf("committed response was modified: %d %q", rec.Code, rec.Body.String())
	}
}
