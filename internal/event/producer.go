package event

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
)

// Publisher publishes domain events. Publishing is best-effort from the
// caller's point of view: a publish failure must never fail the request that
// triggered it.
type Publisher interface {
	Publish(ctx context.Context, eventType string, payload any) error
}

// Producer publishes events to a Kafka topic.
type Producer struct {
	writer *kafka.Writer
}

func NewProducer(brokers []string, topic string) *Producer {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: 10 * time.Millisecond,
	}
	return &Producer{writer: writer}
}

// Publish wraps the payload in an Envelope and writes it keyed by event id.
func (p *Producer) Publish(ctx context.Context, eventType string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	env := Envelope{
		ID:         uuid.New().String(),
		Type:       eventType,
		OccurredAt: time.Now(),
		Data:       data,
	}
	value, err := json.Marshal(env)
	if err != nil {
		return err
	}

	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(env.ID),
		Value: value,
		Time:  env.OccurredAt,
	})
}

func (p *Producer) Close() error {
	return p.writer.Close()
}

// NopPublisher discards events; used in tests and when Kafka is disabled.
type NopPublisher struct{}

func (NopPublisher) Publish(ctx context.Context, eventType string, payload any) error {
	return nil
}
