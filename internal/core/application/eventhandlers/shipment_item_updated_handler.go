package eventhandlers

import (
	"context"
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/stock"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/metrics"
)

// ShipmentItemUpdatedHandler reconciles unit allocation changes against the
// stock ledger: a positive delta reserves stock at the shipment's location,
// a negative delta releases it. The order id travels as the movement
// reference for auditing.
type ShipmentItemUpdatedHandler struct {
	stockItems ports.StockItemRepository
}

// NewShipmentItemUpdatedHandler creates the handler bound to a repository
// from the current unit of work.
func NewShipmentItemUpdatedHandler(stockItems ports.StockItemRepository) ShipmentItemUpdatedHandler {
	return ShipmentItemUpdatedHandler{stockItems: stockItems}
}

// EventName returns the subscribed event name.
func (h ShipmentItemUpdatedHandler) EventName() string {
	return order.EventShipmentItemUpdated
}

// Handle reserves or releases stock for the event's variant at the event's
// location. A reservation that violates the ledger's limits surfaces the
// domain error unchanged, so the command layer can roll back and report it.
func (h ShipmentItemUpdatedHandler) Handle(ctx context.Context, event order.DomainEvent) error {
	updated, ok := event.(order.ShipmentItemUpdated)
	if !ok {
		return fmt.Errorf("unexpected event type %T", event)
	}

	item, err := h.stockItems.GetByVariantAndLocation(ctx, updated.VariantID, updated.LocationID)
	if err != nil {
		return err
	}

	switch {
	case updated.QuantityDelta > 0:
		err = item.Reserve(updated.QuantityDelta, updated.OrderID)
	case updated.QuantityDelta < 0:
		err = item.Release(-updated.QuantityDelta, updated.OrderID)
	default:
		return nil
	}
	if err != nil {
		switch {
		case errors.Is(err, stock.ErrInsufficientStock):
			metrics.ReservationConflictsTotal.WithLabelValues("insufficient_stock").Inc()
		case errors.Is(err, stock.ErrBackorderLimitExceeded):
			metrics.ReservationConflictsTotal.WithLabelValues("backorder_limit").Inc()
		}
		return err
	}

	return h.stockItems.Update(ctx, item)
}
