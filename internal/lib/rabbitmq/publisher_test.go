package rabbitmq

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/streadway/amqp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type published struct {
	exchange string
	key      string
	msg      amqp.Publishing
}

type fakeChannel struct {
	sent []published
	err  error
}

func (f *fakeChannel) Publish(exchange, key string, _, _ bool, msg amqp.Publishing) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, published{exchange: exchange, key: key, msg: msg})
	return nil
}

func TestPublisher_Publish(t *testing.T) {
	ch := &fakeChannel{}
	p := NewPublisher(ch, "surveys")

	event := ResponseSubmitted{
		SurveyID:    "s-1",
		ResponseID:  "r-1",
		SubmittedAt: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
	}
	require.NoError(t, p.Publish(context.Background(), RoutingResponseSubmitted, event))

	require.Len(t, ch.sent, 1)
	got := ch.sent[0]
	assert.Equal(t, "surveys", got.exchange)
	assert.Equal(t, "response.submitted", got.key)
	assert.Equal(t, "application/json", got.msg.ContentType)
	assert.Equal(t, amqp.Persistent, got.msg.DeliveryMode)

	var decoded ResponseSubmitted
	require.NoError(t, json.Unmarshal(got.msg.Body, &decoded))
	assert.Equal(t, event, decoded)
}

func TestPublishMessage_Errors(t *testing.T) {
	t.Run("marshal error", func(t *testing.T) {
		badMsg := struct {
			Ch chan int `json:"ch"`
		}{Ch: make(chan int)}

		err := PublishMessage(&fakeChannel{}, "", "q", badMsg)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "rabbitmq.PublishMessage")
	})

	t.Run("channel error", func(t *testing.T) {
		boom := errors.New("channel closed")
		err := PublishMessage(&fakeChannel{err: boom}, "", "q", map[string]any{"ok": true})
		assert.ErrorIs(t, err, boom)
	})
}

func TestPublisher_CanceledContext(t *testing.T) {
	ch := &fakeChannel{}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := NewPublisher(ch, "surveys").Publish(ctx, RoutingSurveyCreated, SurveyCreated{})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, ch.sent)
}

func TestEventQueues(t *testing.T) {
	queues := EventQueues()
	require.NotEmpty(t, queues)

	seen := map[string]bool{}
	for _, q := range queues {
		assert.Falsef(t, seen[q.QueueName], "duplicate queue name: %s", q.QueueName)
		seen[q.QueueName] = true
	}
	assert.Equal(t, RoutingResponseSubmitted, queues[1].RoutingKey)
}

func TestNoop(t *testing.T) {
	assert.NoError(t, Noop{}.Publish(context.Background(), RoutingSurveyCreated, nil))
}
