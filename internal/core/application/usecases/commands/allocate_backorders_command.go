package commands

import (
	"errors"

	"fulfillment/internal/pkg/guard"
)

var ErrAllocateBackordersCommandIsNotConstructed = errors.New(
	"AllocateBackordersCommand must be created via NewAllocateBackordersCommand constructor",
)

// AllocateBackordersCommand represents a request to sweep every order with
// backordered inventory units and flip the ones inbound stock now covers.
// Periodic: the cron job issues it on a schedule.
type AllocateBackordersCommand struct { //nolint:recvcheck //using for validation
	guard guard.ConstructorGuard
}

// NewAllocateBackordersCommand creates a command for the backorder sweep.
func NewAllocateBackordersCommand() (AllocateBackordersCommand, error) {
	return AllocateBackordersCommand{
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c AllocateBackordersCommand) Validate() error {
	return c.guard.Validate(ErrAllocateBackordersCommandIsNotConstructed)
}
