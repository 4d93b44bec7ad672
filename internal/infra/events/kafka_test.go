package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"course-checkout/internal/pkg/config"
	"course-checkout/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingWriter struct {
	msgs   []kafka.Message
	err    error
	closed bool
}

func (w *recordingWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *recordingWriter) Close() error {
	w.closed = true
	return nil
}

func TestKafkaPublisher_Publish(t *testing.T) {
	w := &recordingWriter{}
	p := &KafkaPublisher{writer: w}
	ev := shared.OrderEvent{
		Type:        "order.paid",
		OrderID:     uuid.New(),
		OrderNumber: "ORD-1",
		OrderType:   "online",
		Status:      "paid",
		TotalCents:  5831,
		Currency:    "eur",
		OccurredAt:  time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC),
	}

	require.NoError(t, p.Publish(context.Background(), ev))
	require.Len(t, w.msgs, 1)

	msg := w.msgs[0]
	assert.Equal(t, "ORD-1", string(msg.Key))
	assert.Equal(t, ev.OccurredAt, msg.Time)
	require.Len(t, msg.Headers, 1)
	assert.Equal(t, "order.paid", string(msg.Headers[0].Value))

	var decoded shared.OrderEvent
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, ev, decoded)

	require.NoError(t, p.Close())
	assert.True(t, w.closed)
}

func TestKafkaPublisher_WriteError(t *testing.T) {
	p := &KafkaPublisher{writer: &recordingWriter{err: errors.New("broker down")}}

	err := p.Publish(context.Background(), shared.OrderEvent{Type: "order.paid", OrderNumber: "ORD-2"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ORD-2")
	assert.Contains(t, err.Error(), "broker down")
}

func TestKafkaPublisher_SameOrderSamePartition(t *testing.T) {
	p := NewKafkaPublisher(config.KafkaConfig{Brokers: []string{"localhost:9092"}, Topic: "order-events"})
	t.Cleanup(func() { _ = p.Close() })

	w, ok := p.writer.(*kafka.Writer)
	require.True(t, ok)

	partitions := []int{0, 1, 2, 3}
	seen := map[int]bool{}
	for range 8 {
		seen[w.Balancer.Balance(kafka.Message{Key: []byte("ORD-1")}, partitions...)] = true
	}
	assert.Len(t, seen, 1)
}
