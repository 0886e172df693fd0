package domain

import "time"

// AuditAction names the mutation recorded in the audit trail.
type AuditAction string

const (
	ActionCreated AuditAction = "created"
	ActionUpdated AuditAction = "updated"
	ActionPatched AuditAction = "patched"
	ActionDeleted AuditAction = "deleted"
)

const (
	EntityClient = "client"
	EntityAsset  = "asset"
)

// AuditEntry records a single committed mutation.
type AuditEntry struct {
	Entity     string      `json:"entity" bson:"entity"`
	EntityID   int64       `json:"entity_id" bson:"entity_id"`
	ClientID   int64       `json:"client_id" bson:"client_id"`
	Action     AuditAction `json:"action" bson:"action"`
	RequestID  string      `json:"request_id,omitempty" bson:"request_id,omitempty"`
	OccurredAt time.Time   `json:"occurred_at" bson:"occurred_at"`
}
