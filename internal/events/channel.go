// Package events is the fan-out boundary for lifecycle notifications. Events
// are written to the transactional outbox alongside the state change that
// produced them; the kafka publisher drains the outbox asynchronously.
// Delivery is best effort: subscribers treat events as a UI hint, never as
// the source of truth for job state.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/haulaway/haulaway/internal/db"
	"github.com/haulaway/haulaway/internal/repository"
)

const (
	EventJobCreated   = "job.created"
	EventJobUpdated   = "job.updated"
	EventOrderUpdated = "order.updated"
	EventAuditRecord  = "audit.record"
)

const (
	TopicJobEvents   = "job_events"
	TopicOrderEvents = "order_events"
	TopicAuditLogs   = "audit_logs"
)

// Envelope is the wire shape of a published event. Room is the role-scoped
// broadcast selector ("mover:<id>", "student:<id>", "movers", ...).
type Envelope struct {
	Room      string          `json:"room"`
	Event     string          `json:"event"`
	Data      json.RawMessage `json:"data"`
	Timestamp time.Time       `json:"timestamp"`
}

type Sink interface {
	Publish(ctx context.Context, room, event string, payload interface{}) error
	PublishTx(ctx context.Context, tx db.Tx, room, event string, payload interface{}) error
}

type TaskStore interface {
	Create(ctx context.Context, task *repository.OutboxTask) error
	CreateTx(ctx context.Context, tx db.Tx, task *repository.OutboxTask) error
}

// OutboxChannel implements Sink by inserting outbox tasks.
type OutboxChannel struct {
	tasks TaskStore
}

func NewOutboxChannel(tasks TaskStore) *OutboxChannel {
	return &OutboxChannel{tasks: tasks}
}

func (c *OutboxChannel) Publish(ctx context.Context, room, event string, payload interface{}) error {
	task, err := buildTask(room, event, payload)
	if err != nil {
		return err
	}
	return c.tasks.Create(ctx, task)
}

func (c *OutboxChannel) PublishTx(ctx context.Context, tx db.Tx, room, event string, payload interface{}) error {
	task, err := buildTask(room, event, payload)
	if err != nil {
		return err
	}
	return c.tasks.CreateTx(ctx, tx, task)
}

func buildTask(room, event string, payload interface{}) (*repository.OutboxTask, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal event payload for %s: %w", event, err)
	}
	envelope, err := json.Marshal(Envelope{
		Room:      room,
		Event:     event,
		Data:      data,
		Timestamp: time.Now().UTC(),
	})
	if err != nil {
		return nil, fmt.Errorf("marshal event envelope for %s: %w", event, err)
	}
	return &repository.OutboxTask{
		Payload: envelope,
		Topic:   TopicFor(event),
	}, nil
}

// TopicFor maps an event name to its kafka topic.
func TopicFor(event string) string {
	switch {
	case strings.HasPrefix(event, "job."):
		return TopicJobEvents
	case strings.HasPrefix(event, "order."):
		return TopicOrderEvents
	case strings.HasPrefix(event, "audit."):
		return TopicAuditLogs
	default:
		return TopicJobEvents
	}
}
