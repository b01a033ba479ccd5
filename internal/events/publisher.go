package events

import (
	"context"
	"encoding/json"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const sourceName = "service-adoption"

// Publisher emits lifecycle events. Implementations must not block the
// calling operation on broker failures.
type Publisher interface {
	Publish(ctx context.Context, eventType, key string, data interface{})
}

// KafkaPublisher writes CloudEvents to the adoption events topic.
type KafkaPublisher struct {
	writer *kafkago.Writer
	logger *zap.Logger
}

// NewKafkaPublisher creates a publisher for the given brokers.
func NewKafkaPublisher(brokers []string, logger *zap.Logger) *KafkaPublisher {
	writer := &kafkago.Writer{
		Addr:         kafkago.TCP(brokers...),
		Topic:        TopicAdoptionEvents,
		Balancer:     &kafkago.Hash{},
		WriteTimeout: 10 * time.Second,
		RequiredAcks: kafkago.RequireOne,
	}
	return &KafkaPublisher{writer: writer, logger: logger}
}

// Publish wraps data in a CloudEvent and writes it, logging any failure.
func (p *KafkaPublisher) Publish(ctx context.Context, eventType, key string, data interface{}) {
	event, err := NewCloudEvent(sourceName, eventType, data)
	if err != nil {
		p.logger.Error("failed to create cloud event",
			zap.String("event_type", eventType),
			zap.Error(err),
		)
		return
	}

	value, err := json.Marshal(event)
	if err != nil {
		p.logger.Error("failed to marshal cloud event",
			zap.String("event_type", eventType),
			zap.Error(err),
		)
		return
	}

	msg := kafkago.Message{Key: []byte(key), Value: value}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.logger.Error("failed to publish event",
			zap.String("topic", TopicAdoptionEvents),
			zap.String("event_type", eventType),
			zap.Error(err),
		)
	}
}

// Close closes the underlying Kafka writer.
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// NopPublisher discards events; used when no brokers are configured and in
// tests.
type NopPublisher struct{}

// Publish discards the event.
func (NopPublisher) Publish(context.Context, string, string, interface{}) {}
