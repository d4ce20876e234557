package commands

import (
	"context"

	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/metrics"
)

// ShipShipmentCommandHandler dispatches a shipment: units become Shipped,
// the ledger's on-hand and reserved quantities drop via reconciliation, and
// the order change is published after commit.
type ShipShipmentCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  ports.OrderEventPublisher
}

// NewShipShipmentCommandHandler creates a handler for shipping shipments.
func NewShipShipmentCommandHandler(uowFactory OrderUoWFactory, publisher ports.OrderEventPublisher) ShipShipmentCommandHandler {
	return ShipShipmentCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the ship command. The ledger confirmation shares the
// transaction: a conflict (more shipped than reserved) rolls back the
// shipment's state change.
func (h *ShipShipmentCommandHandler) Handle(ctx context.Context, cmd ShipShipmentCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	aggregate, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	shipment, err := aggregate.Shipment(cmd.ShipmentID())
	if err != nil {
		return err
	}

	if err = shipment.Ship(cmd.TrackingNumber()); err != nil {
		return err
	}

	if err = reconcileAndSave(ctx, uow, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	metrics.ShipmentsShippedTotal.Inc()
	publishOrderChanged(ctx, h.publisher, aggregate)
	return nil
}
