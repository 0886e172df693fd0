package middleware

import (
	"bytes"
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/clientasset/clientasset-api/internal/api/metrics"
	dbredis "github.com/clientasset/clientasset-api/internal/infrastructure/db/redis"
)

const (
	HeaderIdempotencyKey     = "Idempotency-Key"
	HeaderIdempotentReplayed = "Idempotent-Replayed"
)

// IdempotencyStore is the subset of the Redis store the middleware needs.
type IdempotencyStore interface {
	Lookup(ctx context.Context, method, path, key string) (*dbredis.StoredResponse, bool, error)
	Save(ctx context.Context, method, path, key string, resp dbredis.StoredResponse) error
}

// Idempotency replays the stored response of a POST request whose
// Idempotency-Key was already seen on the same path. Only 2xx responses are
// stored. Store failures are logged and the request proceeds normally.
func Idempotency(store IdempotencyStore, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			key := req.Header.Get(HeaderIdempotencyKey)
			if req.Method != http.MethodPost || key == "" {
				return next(c)
			}

			ctx := req.Context()
			path := req.URL.Path

			stored, found, err := store.Lookup(ctx, req.Method, path, key)
			if err != nil {
				log.Warn().Err(err).Str("idempotency_key", key).Msg("idempotency lookup failed")
			}
			if found {
				metrics.IdempotentReplaysTotal.Inc()
				c.Response().Header().Set(HeaderIdempotentReplayed, "true")
				return c.Blob(stored.Status, stored.ContentType, stored.Body)
			}

			res := c.Response()
			capture := &captureWriter{ResponseWriter: res.Writer}
			res.Writer = capture
			defer func() { res.Writer = capture.ResponseWriter }()

			if err := next(c); err != nil {
				return err
			}

			if res.Status < http.StatusOK || res.Status >= http.StatusMultipleChoices {
				return nil
			}
			if err := store.Save(ctx, req.Method, path, key, dbredis.StoredResponse{
				Status:      res.Status,
				ContentType: res.Header().Get(echo.HeaderContentType),
				Body:        capture.body.Bytes(),
			}); err != nil {
				log.Warn().Err(err).Str("idempotency_key", key).Msg("idempotency save failed")
			}
			return nil
		}
	}
}

// captureWriter tees the response body so it can be stored after the handler.
type captureWriter struct {
	http.ResponseWriter
	body bytes.Buffer
}

func (w *captureWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}
