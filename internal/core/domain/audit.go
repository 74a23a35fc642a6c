package domain

import "time"

// AuditRecord is the persisted trace of one inbound request. Exactly one
// record is written per request, whatever the outcome. ActorID is nil
// when the caller presented no token or an unresolvable one.
type AuditRecord struct {
	ID         string    `json:"id"`
	ActorID    *string   `json:"actor_id"`
	Endpoint   string    `json:"endpoint"`
	Method     string    `json:"method"`
	StatusCode int       `json:"status_code"`
	ClientHost string    `json:"client_host"`
	UserAgent  string    `json:"user_agent,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// AuditCounts aggregates audit-log totals for the admin stats endpoint.
type AuditCounts struct {
	Total int64 `json:"total"`
	Today int64 `json:"today"`
}
