package ports

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
)

// OrderChangedIntegrationEvent is the message published to interested
// services when an order's lifecycle state changes. It is a flat snapshot,
// not a domain event: consumers never touch the aggregate.
type OrderChangedIntegrationEvent struct {
	OrderID    kernel.UUID
	Status     string
	OccurredAt time.Time
}

// OrderEventPublisher publishes order lifecycle changes to the message
// broker. Called after commit; a publish failure is logged by the caller
// and never fails the originating command.
type OrderEventPublisher interface {
	PublishOrderChanged(ctx context.Context, event OrderChangedIntegrationEvent) error
}
