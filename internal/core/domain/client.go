package domain

import (
	"errors"
	"time"
)

var ErrClientNotFound = errors.New("client not found")
var ErrClientEmailExists = errors.New("client email already exists")

// ErrClientHasAssets blocks deletion of a client that still owns assets.
var ErrClientHasAssets = errors.New("cannot delete client, assets exist")

// Client is a customer account that owns zero or more assets.
type Client struct {
	ID        int64     `json:"client_id"`
	Name      string    `json:"client_name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}
