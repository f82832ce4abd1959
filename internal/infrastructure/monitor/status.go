package monitor

import "time"

type Status struct {
	PostgreSQL  bool      `json:"postgresql"`
	Redis       bool      `json:"redis"`
	AuditLog    bool      `json:"audit_log"`
	AuditEvents int       `json:"audit_events"`
	LastCheck   time.Time `json:"last_check"`
}
