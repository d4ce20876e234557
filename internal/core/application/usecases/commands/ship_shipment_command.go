package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrShipShipmentCommandIsNotConstructed = errors.New(
		"ShipShipmentCommand must be created via NewShipShipmentCommand constructor",
	)
	ErrTrackingNumberIsRequired = errors.New("tracking number is required")
)

// ShipShipmentCommand represents a request to dispatch a shipment with a
// carrier tracking number.
type ShipShipmentCommand struct { //nolint:recvcheck //using for validation
	orderID        kernel.UUID
	shipmentID     kernel.UUID
	trackingNumber string

	guard guard.ConstructorGuard
}

// NewShipShipmentCommand creates a command to ship a shipment.
func NewShipShipmentCommand(orderID, shipmentID kernel.UUID, trackingNumber string) (ShipShipmentCommand, error) {
	cmd := ShipShipmentCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setShipmentID(shipmentID),
		cmd.setTrackingNumber(trackingNumber),
	); err != nil {
		return ShipShipmentCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ShipShipmentCommand) Validate() error {
	return c.guard.Validate(ErrShipShipmentCommandIsNotConstructed)
}

// OrderID returns the owning order's identifier.
func (c ShipShipmentCommand) OrderID() kernel.UUID {
	return c.orderID
}

// ShipmentID returns the shipment to dispatch.
func (c ShipShipmentCommand) ShipmentID() kernel.UUID {
	return c.shipmentID
}

// TrackingNumber returns the carrier tracking number.
func (c ShipShipmentCommand) TrackingNumber() string {
	return c.trackingNumber
}

func (c *ShipShipmentCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *ShipShipmentCommand) setShipmentID(shipmentID kernel.UUID) error {
	if err := shipmentID.Validate(); err != nil {
		return err
	}

	c.shipmentID = shipmentID
	return nil
}

func (c *ShipShipmentCommand) setTrackingNumber(trackingNumber string) error {
	if trackingNumber == "" {
		return ErrTrackingNumberIsRequired
	}

	c.trackingNumber = trackingNumber
	return nil
}
