package commands

import (
	"context"
)

// ReadyShipmentCommandHandler marks a shipment ready for dispatch.
type ReadyShipmentCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewReadyShipmentCommandHandler creates a handler for readying shipments.
func NewReadyShipmentCommandHandler(uowFactory OrderUoWFactory) ReadyShipmentCommandHandler {
	return ReadyShipmentCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the ready command. Fails while any unit is backordered.
func (h *ReadyShipmentCommandHandler) Handle(ctx context.Context, cmd ReadyShipmentCommand) error {
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

	if err = shipment.Ready(); err != nil {
		return err
	}

	if err = uow.OrderRepository().Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
