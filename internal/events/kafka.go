package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/segmentio/kafka-go"
)

// KafkaReadingPublisher publishes ReadingComputedEvents to a Kafka topic,
// keyed by user ID so a consumer sees each user's readings in order.
type KafkaReadingPublisher struct {
	writer *kafka.Writer
	logger *slog.Logger
}

// NewKafkaReadingPublisher creates a publisher writing to the given
// brokers and topic.
func NewKafkaReadingPublisher(brokers []string, topic string, logger *slog.Logger) *KafkaReadingPublisher {
	if logger == nil {
		logger = slog.Default()
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
		Compression:  kafka.Snappy,
		Async:        false,
	}

	return &KafkaReadingPublisher{
		writer: writer,
		logger: logger.With("component", "kafka_reading_publisher"),
	}
}

// Ensure KafkaReadingPublisher implements ReadingPublisher
var _ ReadingPublisher = (*KafkaReadingPublisher)(nil)

// PublishReading implements ReadingPublisher.PublishReading
func (p *KafkaReadingPublisher) PublishReading(ctx context.Context, event ReadingComputedEvent) error {
	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal reading event: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(event.UserID.String()),
		Value: value,
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to publish reading event: %w", err)
	}

	p.logger.Debug("reading event published",
		"user_id", event.UserID,
		"day", event.Day,
		"adjusted_score", event.AdjustedScore)
	return nil
}

// Close implements ReadingPublisher.Close
func (p *KafkaReadingPublisher) Close() error {
	return p.writer.Close()
}

// NoopReadingPublisher discards events. Used when Kafka publishing is
// disabled in configuration.
type NoopReadingPublisher struct{}

// Ensure NoopReadingPublisher implements ReadingPublisher
var _ ReadingPublisher = NoopReadingPublisher{}

// PublishReading implements ReadingPublisher.PublishReading
func (NoopReadingPublisher) PublishReading(context.Context, ReadingComputedEvent) error {
	return nil
}

// Close implements ReadingPublisher.Close
func (NoopReadingPublisher) Close() error {
	return nil
}
