// Package events publishes record lifecycle events. Publishing is best
// effort: a failed emit is logged and never affects the request outcome.
package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// RecordEvent is the wire shape of a record lifecycle event.
type RecordEvent struct {
	EventID    string    `json:"event_id"`
	Type       string    `json:"type"` // e.g. athlete.created
	Entity     string    `json:"entity"`
	RecordID   uint      `json:"record_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Publisher emits record lifecycle events.
type Publisher interface {
	RecordCreated(ctx context.Context, entity string, recordID uint) error
	Close() error
}

// KafkaPublisher implements Publisher over a kafka writer.
type KafkaPublisher struct {
	writer *kafka.Writer
	logger *zap.Logger
}

// NewKafkaPublisher creates a publisher writing to the given topic.
func NewKafkaPublisher(brokers []string, topic string, logger *zap.Logger) *KafkaPublisher {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		WriteTimeout: 1 * time.Second,
		RequiredAcks: kafka.RequireOne,
		Compression:  kafka.Snappy,
	}
	return &KafkaPublisher{writer: writer, logger: logger}
}

// RecordCreated publishes an <entity>.created event keyed by entity.
func (p *KafkaPublisher) RecordCreated(ctx context.Context, entity string, recordID uint) error {
	event := RecordEvent{
		EventID:    uuid.New().String(),
		Type:       entity + ".created",
		Entity:     entity,
		RecordID:   recordID,
		OccurredAt: time.Now().UTC(),
	}
	value, err := json.Marshal(event)
	if err != nil {
		return err
	}
	msg := kafka.Message{
		Key:   []byte(entity),
		Value: value,
		Time:  event.OccurredAt,
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.logger.Warn("failed to publish record event",
			zap.String("type", event.Type),
			zap.Uint("record_id", recordID),
			zap.Error(err))
		return err
	}
	return nil
}

// Close closes the underlying writer.
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// NoopPublisher is the default publisher when no brokers are configured.
type NoopPublisher struct{}

func (NoopPublisher) RecordCreated(ctx context.Context, entity string, recordID uint) error {
	return nil
}

func (NoopPublisher) Close() error { return nil }
