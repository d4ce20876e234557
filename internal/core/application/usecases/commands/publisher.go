package commands

import (
	"context"
	"log/slog"
	"time"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
)

// publishOrderChanged emits the order's new status to the message broker.
// Called after commit only: the state change is already durable, so a broker
// failure is logged and swallowed rather than failing the request.
func publishOrderChanged(ctx context.Context, publisher ports.OrderEventPublisher, aggregate *order.Order) {
	if publisher == nil {
		return
	}

	event := ports.OrderChangedIntegrationEvent{
		OrderID:    aggregate.ID(),
		Status:     aggregate.Status().String(),
		OccurredAt: time.Now().UTC(),
	}

	if err := publisher.PublishOrderChanged(ctx, event); err != nil {
		slog.Warn("failed to publish order changed event",
			"orderId", aggregate.ID().String(),
			"status", event.Status,
			"error", err,
		)
	}
}
