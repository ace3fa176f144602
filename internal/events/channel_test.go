package events

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haulaway/haulaway/internal/db"
	"github.com/haulaway/haulaway/internal/repository"
)

type capturingTaskStore struct {
	created []*repository.OutboxTask
}

func (c *capturingTaskStore) Create(_ context.Context, task *repository.OutboxTask) error {
	c.created = append(c.created, task)
	return nil
}

func (c *capturingTaskStore) CreateTx(ctx context.Context, _ db.Tx, task *repository.OutboxTask) error {
	return c.Create(ctx, task)
}

func TestTopicFor(t *testing.T) {
	assert.Equal(t, TopicJobEvents, TopicFor(EventJobCreated))
	assert.Equal(t, TopicJobEvents, TopicFor(EventJobUpdated))
	assert.Equal(t, TopicOrderEvents, TopicFor(EventOrderUpdated))
	assert.Equal(t, TopicAuditLogs, TopicFor(EventAuditRecord))
	assert.Equal(t, TopicJobEvents, TopicFor("something.else"))
}

func TestOutboxChannelPublish(t *testing.T) {
	store := &capturingTaskStore{}
	channel := NewOutboxChannel(store)

	payload := map[string]string{"id": "job-1"}
	require.NoError(t, channel.Publish(context.Background(), "order:order-1", EventJobUpdated, payload))

	require.Len(t, store.created, 1)
	task := store.created[0]
	assert.Equal(t, TopicJobEvents, task.Topic)

	var envelope Envelope
	require.NoError(t, json.Unmarshal(task.Payload, &envelope))
	assert.Equal(t, "order:order-1", envelope.Room)
	assert.Equal(t, EventJobUpdated, envelope.Event)
	assert.False(t, envelope.Timestamp.IsZero())

	var data map[string]string
	require.NoError(t, json.Unmarshal(envelope.Data, &data))
	assert.Equal(t, "job-1", data["id"])
}

func TestOutboxChannelRejectsUnmarshalablePayload(t *testing.T) {
	channel := NewOutboxChannel(&capturingTaskStore{})

	err := channel.Publish(context.Background(), "movers", EventJobCreated, func() {})
	assert.Error(t, err)
}
