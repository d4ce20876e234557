package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrSetShippingMethodCommandIsNotConstructed = errors.New(
	"SetShippingMethodCommand must be created via NewSetShippingMethodCommand constructor",
)

// SetShippingMethodCommand represents a request to assign an order's
// delivery method.
type SetShippingMethodCommand struct { //nolint:recvcheck //using for validation
	orderID          kernel.UUID
	shippingMethodID kernel.UUID

	guard guard.ConstructorGuard
}

// NewSetShippingMethodCommand creates a command to assign the delivery method.
func NewSetShippingMethodCommand(orderID, shippingMethodID kernel.UUID) (SetShippingMethodCommand, error) {
	cmd := SetShippingMethodCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setShippingMethodID(shippingMethodID),
	); err != nil {
		return SetShippingMethodCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c SetShippingMethodCommand) Validate() error {
	return c.guard.Validate(ErrSetShippingMethodCommandIsNotConstructed)
}

// OrderID returns the target order's identifier.
func (c SetShippingMethodCommand) OrderID() kernel.UUID {
	return c.orderID
}

// ShippingMethodID returns the delivery method to assign.
func (c SetShippingMethodCommand) ShippingMethodID() kernel.UUID {
	return c.shippingMethodID
}

func (c *SetShippingMethodCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *SetShippingMethodCommand) setShippingMethodID(shippingMethodID kernel.UUID) error {
	if err := shippingMethodID.Validate(); err != nil {
		return err
	}

	c.shippingMethodID = shippingMethodID
	return nil
}
