package handler

import (
	"time"

	"github.com/clientasset/clientasset-api/internal/core/domain"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// ackResponse acknowledges a mutation.
type ackResponse struct {
	Message string `json:"message"`
}

// --- Request / Response types ---

// Pointer fields let `required` distinguish a missing key from an empty string.

type createClientRequest struct {
	Name  *string `json:"client_name" validate:"required"`
	Email *string `json:"email"       validate:"required"`
}

type replaceClientRequest struct {
	Name  *string `json:"client_name" validate:"required"`
	Email *string `json:"email"       validate:"required"`
}

type patchClientRequest struct {
	Name  *string `json:"client_name"`
	Email *string `json:"email"`
}

type clientResponse struct {
	ID        int64     `json:"client_id"`
	Name      string    `json:"client_name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

func toClientResponses(clients []*domain.Client) []clientResponse {
	out := make([]clientResponse, 0, len(clients))
	for _, cl := range clients {
		out = append(out, clientResponse{
			ID:        cl.ID,
			Name:      cl.Name,
			Email:     cl.Email,
			CreatedAt: cl.CreatedAt,
		})
	}
	return out
}
