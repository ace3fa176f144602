package repository

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// OutboxStatus tracks a task through the publish loop. PENDING rows are
// picked up by the publisher, PROCESSING rows belong to an in-flight batch,
// FAILED rows are retried until the attempt ceiling.
type OutboxStatus string

const (
	OutboxStatusPending    OutboxStatus = "PENDING"
	OutboxStatusProcessing OutboxStatus = "PROCESSING"
	OutboxStatusFailed     OutboxStatus = "FAILED"
	OutboxStatusPublished  OutboxStatus = "PUBLISHED"
)

// OutboxTask is one event awaiting delivery. Payload is the serialized
// envelope; Topic is resolved from the event name at enqueue time so the
// publisher never has to parse the payload.
type OutboxTask struct {
	ID          uuid.UUID       `db:"id"`
	Status      OutboxStatus    `db:"status"`
	Payload     json.RawMessage `db:"payload"`
	Topic       string          `db:"topic"`
	Attempts    int             `db:"attempts"`
	LastError   *string         `db:"last_error"`
	CreatedAt   time.Time       `db:"created_at"`
	UpdatedAt   time.Time       `db:"updated_at"`
	CompletedAt *time.Time      `db:"completed_at"`
}
