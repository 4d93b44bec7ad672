package events

import (
	"context"
	"encoding/json"
	"time"

	"course-checkout/internal/pkg/config"
	"course-checkout/internal/pkg/errs"
	"course-checkout/internal/usecase/shared"

	"github.com/segmentio/kafka-go"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher writes order lifecycle events keyed by order number, so all
// events of one order land on the same partition.
type KafkaPublisher struct {
	writer messageWriter
}

func NewKafkaPublisher(cfg config.KafkaConfig) *KafkaPublisher {
	return &KafkaPublisher{writer: &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Topic:                  cfg.Topic,
		Balancer:               &kafka.Hash{},
		BatchTimeout:           10 * time.Millisecond,
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
	}}
}

func (p *KafkaPublisher) Publish(ctx context.Context, ev shared.OrderEvent) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return errs.Wrap(err, "marshal order event")
	}
	msg := kafka.Message{
		Key:   []byte(ev.OrderNumber),
		Value: data,
		Time:  ev.OccurredAt,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(ev.Type)},
		},
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return errs.Wrapf(err, "publish %s for %s", ev.Type, ev.OrderNumber)
	}
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// NopPublisher is used when no brokers are configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, shared.OrderEvent) error { return nil }
func (NopPublisher) Close() error                                     { return nil }
