package event

import (
	"context"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// Handler processes a consumed event envelope.
type Handler func(ctx context.Context, env Envelope) error

// Consumer reads events from a Kafka topic as part of a consumer group.
type Consumer struct {
	reader *kafka.Reader
	logger *zap.Logger
}

func NewConsumer(brokers []string, topic, groupID string, logger *zap.Logger) *Consumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  brokers,
		Topic:    topic,
		GroupID:  groupID,
		MinBytes: 10e3, // 10KB
		MaxBytes: 10e6, // 10MB
	})
	return &Consumer{reader: reader, logger: logger}
}

// Consume reads messages until the context is cancelled. Handler errors are
// logged and the loop continues; a poison message never wedges the consumer.
func (c *Consumer) Consume(ctx context.Context, handler Handler) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
			msg, err := c.reader.ReadMessage(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				c.logger.Error("error reading message", zap.Error(err))
				continue
			}

			env, err := decodeEnvelope(msg.Value)
			if err != nil {
				c.logger.Error("error decoding event", zap.Error(err))
				continue
			}

			if err := handler(ctx, env); err != nil {
				c.logger.Error("error handling event",
					zap.String("type", env.Type), zap.Error(err))
			}
		}
	}
}

func (c *Consumer) Close() error {
	return c.reader.Close()
}
