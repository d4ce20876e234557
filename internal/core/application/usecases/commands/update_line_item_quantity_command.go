package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrUpdateLineItemQuantityCommandIsNotConstructed = errors.New(
	"UpdateLineItemQuantityCommand must be created via NewUpdateLineItemQuantityCommand constructor",
)

// UpdateLineItemQuantityCommand represents a request to change a line item's
// quantity. Decreases trim allocated inventory units newest-first; the
// released reservations are reconciled against the ledger in the same
// transaction.
type UpdateLineItemQuantityCommand struct { //nolint:recvcheck //using for validation
	orderID    kernel.UUID
	lineItemID kernel.UUID
	quantity   int

	guard guard.ConstructorGuard
}

// NewUpdateLineItemQuantityCommand creates a command to change a line item's quantity.
func NewUpdateLineItemQuantityCommand(orderID, lineItemID kernel.UUID, quantity int) (UpdateLineItemQuantityCommand, error) {
	cmd := UpdateLineItemQuantityCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setLineItemID(lineItemID),
		cmd.setQuantity(quantity),
	); err != nil {
		return UpdateLineItemQuantityCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateLineItemQuantityCommand) Validate() error {
	return c.guard.Validate(ErrUpdateLineItemQuantityCommandIsNotConstructed)
}

// OrderID returns the target order's identifier.
func (c UpdateLineItemQuantityCommand) OrderID() kernel.UUID {
	return c.orderID
}

// LineItemID returns the line item to change.
func (c UpdateLineItemQuantityCommand) LineItemID() kernel.UUID {
	return c.lineItemID
}

// Quantity returns the new quantity.
func (c UpdateLineItemQuantityCommand) Quantity() int {
	return c.quantity
}

func (c *UpdateLineItemQuantityCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *UpdateLineItemQuantityCommand) setLineItemID(lineItemID kernel.UUID) error {
	if err := lineItemID.Validate(); err != nil {
		return err
	}

	c.lineItemID = lineItemID
	return nil
}

func (c *UpdateLineItemQuantityCommand) setQuantity(quantity int) error {
	if quantity <= 0 {
		return ErrQuantityIsInvalid
	}

	c.quantity = quantity
	return nil
}
