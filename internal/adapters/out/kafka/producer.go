// Package kafka publishes order integration events to a Kafka topic.
// Implements ports.OrderEventPublisher over segmentio/kafka-go; messages are
// keyed by order ID so one order's events stay in partition order.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"fulfillment/internal/core/ports"

	"github.com/segmentio/kafka-go"
)

// Producer publishes order integration events to Kafka.
type Producer struct {
	writer *kafka.Writer
}

// NewProducer creates a Kafka producer for order events.
func NewProducer(brokers []string, topic string) *Producer {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		RequiredAcks: kafka.RequireAll,
		MaxAttempts:  3,
		WriteTimeout: 10 * time.Second,
		ReadTimeout:  10 * time.Second,
	}

	return &Producer{writer: writer}
}

// orderChangedMessage is the wire shape of an order changed event.
type orderChangedMessage struct {
	OrderID    string    `json:"order_id"`
	Status     string    `json:"status"`
	OccurredAt time.Time `json:"occurred_at"`
}

// PublishOrderChanged publishes an order changed event.
// Delivery failures are returned to the caller; the command handlers log
// them without failing the originating request.
func (p *Producer) PublishOrderChanged(ctx context.Context, event ports.OrderChangedIntegrationEvent) error {
	payload, err := json.Marshal(orderChangedMessage{
		OrderID:    event.OrderID.String(),
		Status:     event.Status,
		OccurredAt: event.OccurredAt,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal order changed event: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(event.OrderID.String()),
		Value: payload,
		Time:  event.OccurredAt,
	}

	if err = p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to write message to kafka: %w", err)
	}

	return nil
}

// Close closes the producer.
func (p *Producer) Close() error {
	return p.writer.Close()
}
