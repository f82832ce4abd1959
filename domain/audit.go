package domain

import "time"

// Audit actions recorded for security-relevant operations.
const (
	AuditLogin  = "login"
	AuditCreate = "create"
	AuditUpdate = "update"
	AuditDelete = "delete"
)

// AuditEvent is an append-only record of who did what.
type AuditEvent struct {
	Actor    string    `json:"actor"`
	Action   string    `json:"action"`
	Entity   string    `json:"entity"`
	EntityID int64     `json:"entity_id,omitempty"`
	At       time.Time `json:"at"`
}
