package server

import (
	"time"
)

// AuditLogEntry is one API request as seen by the audit middleware. Entries
// are batched and published to the audit outbox topic, so every field must
// survive JSON round-tripping.
type AuditLogEntry struct {
	Timestamp  time.Time `json:"timestamp"`
	Route      string    `json:"route"`
	Method     string    `json:"method"`
	Path       string    `json:"path"`
	Actor      string    `json:"actor,omitempty"`
	JobID      string    `json:"job_id,omitempty"`
	OrderID    string    `json:"order_id,omitempty"`
	OldStatus  string    `json:"old_status,omitempty"`
	NewStatus  string    `json:"new_status,omitempty"`
	StatusCode int       `json:"status_code"`
	DurationMs int64     `json:"duration_ms"`
	Request    string    `json:"request,omitempty"`
	Response   string    `json:"response,omitempty"`
}
