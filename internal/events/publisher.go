package events

import (
	"context"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"paydash/internal/telemetry"
)

// Publisher delivers keyed messages to a topic.
type Publisher interface {
	Publish(ctx context.Context, key string, value []byte) error
	Close() error
}

// KafkaPublisher publishes to a single Kafka topic.
type KafkaPublisher struct {
	writer *kafka.Writer
}

// NewKafkaPublisher creates a publisher for topic on brokers.
func NewKafkaPublisher(brokers []string, topic string) *KafkaPublisher {
	return &KafkaPublisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.LeastBytes{},
			BatchTimeout: 10 * time.Millisecond,
		},
	}
}

// Publish writes one message.
func (p *KafkaPublisher) Publish(ctx context.Context, key string, value []byte) error {
	if err := p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(key),
		Value: value,
	}); err != nil {
		return fmt.Errorf("failed to publish to %s: %w", p.writer.Topic, err)
	}
	return nil
}

// Close flushes pending messages.
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// LogPublisher only logs messages. Used when no brokers are configured.
type LogPublisher struct{}

func (LogPublisher) Publish(ctx context.Context, key string, value []byte) error {
	telemetry.Logger.Debug("Event not published, no brokers configured",
		zap.String("key", key),
		zap.ByteString("value", value),
	)
	return nil
}

func (LogPublisher) Close() error { return nil }

var (
	_ Publisher = (*KafkaPublisher)(nil)
	_ Publisher = LogPublisher{}
)
