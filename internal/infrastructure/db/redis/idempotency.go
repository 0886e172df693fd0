package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultIdempotencyTTL = 24 * time.Hour

// StoredResponse is the response replayed for a repeated Idempotency-Key.
type StoredResponse struct {
	Status      int    `json:"status"`
	ContentType string `json:"content_type"`
	Body        []byte `json:"body"`
}

// IdempotencyStore keeps POST responses keyed by their Idempotency-Key.
// Key format: idempotency:<method>:<path>:<key>
type IdempotencyStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewIdempotencyStore wraps the given Redis client. Entries expire after ttl,
// or after 24h when ttl is not positive.
func NewIdempotencyStore(client *redis.Client, ttl time.Duration) *IdempotencyStore {
	if ttl <= 0 {
		ttl = defaultIdempotencyTTL
	}
	return &IdempotencyStore{client: client, ttl: ttl}
}

// Lookup returns the stored response for the key, if one exists.
func (s *IdempotencyStore) Lookup(ctx context.Context, method, path, key string) (*StoredResponse, bool, error) {
	raw, err := s.client.Get(ctx, s.key(method, path, key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("idempotency lookup: %w", err)
	}

	var resp StoredResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, false, fmt.Errorf("idempotency decode: %w", err)
	}
	return &resp, true, nil
}

// Save records the response for the key. An existing entry is kept.
func (s *IdempotencyStore) Save(ctx context.Context, method, path, key string, resp StoredResponse) error {
	raw, err := json.Marshal(resp)
	if err != nil {
		return fmt.Errorf("idempotency encode: %w", err)
	}
	return s.client.SetNX(ctx, s.key(method, path, key), raw, s.ttl).Err()
}

func (s *IdempotencyStore) key(method, path, key string) string {
	return fmt.Sprintf("idempotency:%s:%s:%s", method, path, key)
}
