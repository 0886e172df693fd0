package service

import (
	"context"
	"time"

	"github.com/clientasset/clientasset-api/internal/core/domain"
	"github.com/clientasset/clientasset-api/internal/core/ports"
)

// NopAuditRecorder discards every entry. Used when no audit store is configured.
type NopAuditRecorder struct{}

func (NopAuditRecorder) Record(domain.AuditEntry) {}

func newAuditEntry(ctx context.Context, entity string, entityID, clientID int64, action domain.AuditAction) domain.AuditEntry {
	return domain.AuditEntry{
		Entity:     entity,
		EntityID:   entityID,
		ClientID:   clientID,
		Action:     action,
		RequestID:  ports.RequestIDFrom(ctx),
		OccurredAt: time.Now().UTC(),
	}
}

// truthyString reports the value of s when it is present and non-empty.
func truthyString(s *string) (string, bool) {
	if s == nil || *s == "" {
		return "", false
	}
	return *s, true
}

// truthyInt reports the value of n when it is present and non-zero.
func truthyInt(n *int64) (int64, bool) {
	if n == nil || *n == 0 {
		return 0, false
	}
	return *n, true
}
