package event

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/kioskcrm/backend/internal/domain/shared"
	"github.com/kioskcrm/backend/internal/infrastructure/config"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// DefaultForwardedPrefixes are the event type families sent to Kafka.
var DefaultForwardedPrefixes = []string{"kiosk.", "order.", "lead."}

// MessageWriter is the subset of *kafka.Writer used by the forwarder.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// ForwardedEvent is the JSON envelope written to the topic.
type ForwardedEvent struct {
	EventID       string          `json:"event_id"`
	EventType     string          `json:"event_type"`
	AggregateID   string          `json:"aggregate_id"`
	AggregateType string          `json:"aggregate_type"`
	TenantID      string          `json:"tenant_id"`
	OccurredAt    time.Time       `json:"occurred_at"`
	Payload       json.RawMessage `json:"payload"`
}

// KafkaForwarder copies domain events of the forwarded families onto a
// Kafka topic.
type KafkaForwarder struct {
	writer   MessageWriter
	topic    string
	prefixes []string
	logger   *zap.Logger
}

// NewKafkaWriter builds a kafka-go writer for the configured brokers.
func NewKafkaWriter(cfg config.KafkaConfig) (*kafka.Writer, error) {
	if len(cfg.Brokers) == 0 {
		return nil, fmt.Errorf("no kafka brokers configured")
	}
	if cfg.Topic == "" {
		return nil, fmt.Errorf("kafka topic is required")
	}
	return &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Topic:                  cfg.Topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
		BatchTimeout:           50 * time.Millisecond,
	}, nil
}

// NewKafkaForwarder creates a forwarder. The writer's own Topic is used
// when topic is empty.
func NewKafkaForwarder(writer MessageWriter, topic string, logger *zap.Logger, prefixes ...string) *KafkaForwarder {
	if len(prefixes) == 0 {
		prefixes = DefaultForwardedPrefixes
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &KafkaForwarder{
		writer:   writer,
		topic:    topic,
		prefixes: prefixes,
		logger:   logger,
	}
}

// EventTypes subscribes the forwarder to each forwarded family ("kiosk.*").
func (f *KafkaForwarder) EventTypes() []string {
	patterns := make([]string, len(f.prefixes))
	for i, p := range f.prefixes {
		patterns[i] = p + "*"
	}
	return patterns
}

// Forwards reports whether an event type is sent to Kafka.
func (f *KafkaForwarder) Forwards(eventType string) bool {
	for _, p := range f.prefixes {
		if strings.HasPrefix(eventType, p) {
			return true
		}
	}
	return false
}

// Handle writes the event if its type matches a forwarded prefix.
func (f *KafkaForwarder) Handle(ctx context.Context, event shared.DomainEvent) error {
	if !f.Forwards(event.EventType()) {
		return nil
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event %s: %w", event.EventType(), err)
	}
	envelope, err := json.Marshal(ForwardedEvent{
		EventID:       event.EventID().String(),
		EventType:     event.EventType(),
		AggregateID:   event.AggregateID().String(),
		AggregateType: event.AggregateType(),
		TenantID:      event.TenantID().String(),
		OccurredAt:    event.OccurredAt(),
		Payload:       payload,
	})
	if err != nil {
		return fmt.Errorf("marshal envelope: %w", err)
	}

	msg := kafka.Message{
		Topic: f.topic,
		Key:   []byte(event.AggregateID().String()),
		Value: envelope,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(event.EventType())},
			{Key: "tenant_id", Value: []byte(event.TenantID().String())},
		},
	}
	if err := f.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("kafka write %s: %w", event.EventType(), err)
	}

	f.logger.Debug("event forwarded to kafka",
		zap.String("event_type", event.EventType()),
		zap.String("event_id", event.EventID().String()),
	)
	return nil
}

// Close flushes and closes the underlying writer.
func (f *KafkaForwarder) Close() error {
	return f.writer.Close()
}

var _ shared.EventHandler = (*KafkaForwarder)(nil)
