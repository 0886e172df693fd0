package domain

import (
	"errors"
	"time"
)

var ErrAssetNotFound = errors.New("asset not found")

// Asset is a typed, valued item belonging to exactly one client.
type Asset struct {
	ID        int64     `json:"asset_id"`
	ClientID  int64     `json:"client_id"`
	Type      string    `json:"asset_type"`
	Value     int64     `json:"asset_value"`
	CreatedAt time.Time `json:"created_at"`
}
