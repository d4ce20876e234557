package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrReadyShipmentCommandIsNotConstructed = errors.New(
	"ReadyShipmentCommand must be created via NewReadyShipmentCommand constructor",
)

// ReadyShipmentCommand represents a request to mark a fully stocked
// shipment as ready for dispatch.
type ReadyShipmentCommand struct { //nolint:recvcheck //using for validation
	orderID    kernel.UUID
	shipmentID kernel.UUID

	guard guard.ConstructorGuard
}

// NewReadyShipmentCommand creates a command to ready a shipment.
func NewReadyShipmentCommand(orderID, shipmentID kernel.UUID) (ReadyShipmentCommand, error) {
	cmd := ReadyShipmentCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setShipmentID(shipmentID),
	); err != nil {
		return ReadyShipmentCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ReadyShipmentCommand) Validate() error {
	return c.guard.Validate(ErrReadyShipmentCommandIsNotConstructed)
}

// OrderID returns the owning order's identifier.
func (c ReadyShipmentCommand) OrderID() kernel.UUID {
	return c.orderID
}

// ShipmentID returns the shipment to ready.
func (c ReadyShipmentCommand) ShipmentID() kernel.UUID {
	return c.shipmentID
}

func (c *ReadyShipmentCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *ReadyShipmentCommand) setShipmentID(shipmentID kernel.UUID) error {
	if err := shipmentID.Validate(); err != nil {
		return err
	}

	c.shipmentID = shipmentID
	return nil
}
