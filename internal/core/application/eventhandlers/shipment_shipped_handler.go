package eventhandlers

import (
	"context"
	"fmt"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
)

// ShipmentShippedHandler confirms a shipment's departure against the stock
// ledger: per variant, on-hand and reserved both drop by the shipped
// quantity at the shipment's location.
type ShipmentShippedHandler struct {
	stockItems ports.StockItemRepository
}

// NewShipmentShippedHandler creates the handler bound to a repository from
// the current unit of work.
func NewShipmentShippedHandler(stockItems ports.StockItemRepository) ShipmentShippedHandler {
	return ShipmentShippedHandler{stockItems: stockItems}
}

// EventName returns the subscribed event name.
func (h ShipmentShippedHandler) EventName() string {
	return order.EventShipmentShipped
}

// Handle confirms each variant's shipped quantity. Any ledger conflict
// (shipping more than reserved or on hand) aborts the dispatch, rolling
// back the shipment's state change.
func (h ShipmentShippedHandler) Handle(ctx context.Context, event order.DomainEvent) error {
	shipped, ok := event.(order.ShipmentShipped)
	if !ok {
		return fmt.Errorf("unexpected event type %T", event)
	}

	for _, vq := range shipped.Quantities {
		item, err := h.stockItems.GetByVariantAndLocation(ctx, vq.VariantID, shipped.LocationID)
		if err != nil {
			return err
		}

		if err = item.ConfirmShipment(vq.Quantity, shipped.ShipmentID, shipped.OrderID); err != nil {
			return err
		}

		if err = h.stockItems.Update(ctx, item); err != nil {
			return err
		}
	}

	return nil
}
