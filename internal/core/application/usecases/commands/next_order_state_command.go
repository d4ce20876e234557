package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrNextOrderStateCommandIsNotConstructed = errors.New(
	"NextOrderStateCommand must be created via NewNextOrderStateCommand constructor",
)

// NextOrderStateCommand represents a request to advance an order one step
// along the checkout path. The aggregate enforces the per-transition guards.
type NextOrderStateCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewNextOrderStateCommand creates a command to advance the order state.
func NewNextOrderStateCommand(orderID kernel.UUID) (NextOrderStateCommand, error) {
	cmd := NextOrderStateCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setOrderID(orderID); err != nil {
		return NextOrderStateCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c NextOrderStateCommand) Validate() error {
	return c.guard.Validate(ErrNextOrderStateCommandIsNotConstructed)
}

// OrderID returns the target order's identifier.
func (c NextOrderStateCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c *NextOrderStateCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}
