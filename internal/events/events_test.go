package events

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log"
	"os"
	"testing"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront-api/internal/models"
)

type fakeWriter struct {
	messages []kafka.Message
	err      error
	closed   bool
}

func (w *fakeWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.messages = append(w.messages, msgs...)
	return nil
}

func (w *fakeWriter) Close() error {
	w.closed = true
	return nil
}

func TestKafkaPublisher_Publish(t *testing.T) {
	w := &fakeWriter{}
	p := &KafkaPublisher{writer: w}

	order := &models.Order{ID: "order-1", User: "user-1", TotalAmount: 2499, Status: models.StatusPending}
	require.NoError(t, p.Publish(context.Background(), OrderPlaced(order)))

	require.Len(t, w.messages, 1)
	msg := w.messages[0]
	assert.Equal(t, "order-1", string(msg.Key))
	assert.Equal(t, "type", msg.Headers[0].Key)
	assert.Equal(t, TypeOrderPlaced, string(msg.Headers[0].Value))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, TypeOrderPlaced, decoded["type"])
	assert.Equal(t, "order-1", decoded["aggregateId"])
	assert.NotEmpty(t, decoded["id"])

	require.NoError(t, p.Close())
	assert.True(t, w.closed)
}

func TestKafkaPublisher_WriteError(t *testing.T) {
	p := &KafkaPublisher{writer: &fakeWriter{err: errors.New("broker down")}}
	err := p.Publish(context.Background(), ContactReceived(&models.ContactMessage{ID: "m1"}))
	assert.EqualError(t, err, "broker down")
}

func TestNewPublisher(t *testing.T) {
	assert.IsType(t, LogPublisher{}, NewPublisher(nil, "topic"))

	p := NewPublisher([]string{"localhost:9092"}, "topic")
	assert.IsType(t, &KafkaPublisher{}, p)
	assert.NoError(t, p.Close())
}

func TestNewKafkaPublisher_QueuesWithoutBlocking(t *testing.T) {
	p := NewKafkaPublisher([]string{"localhost:9092"}, "topic")
	defer p.Close()

	w, ok := p.writer.(*kafka.Writer)
	require.True(t, ok)
	assert.True(t, w.Async)
	require.NotNil(t, w.Completion)

	var buf bytes.Buffer
	log.SetOutput(&buf)
	defer log.SetOutput(os.Stderr)
	w.Completion([]kafka.Message{{Key: []byte("order-1")}}, errors.New("broker down"))
	assert.Contains(t, buf.String(), "[Events] delivery failed for order-1: broker down")

	buf.Reset()
	w.Completion([]kafka.Message{{Key: []byte("order-2")}}, nil)
	assert.Empty(t, buf.String())
}

func TestOrderStatusChanged(t *testing.T) {
	e := OrderStatusChanged("o1", models.StatusPending, models.StatusCancelled)
	assert.Equal(t, TypeOrderStatusChanged, e.Type)
	assert.Equal(t, StatusChange{From: models.StatusPending, To: models.StatusCancelled}, e.Data)
}
