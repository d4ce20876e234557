package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrCreateStockLocationCommandIsNotConstructed = errors.New(
		"CreateStockLocationCommand must be created via NewCreateStockLocationCommand constructor",
	)
	ErrNameIsRequired = errors.New("name is required")
)

// CreateStockLocationCommand represents a request to register a new stock
// location. The location's position is assigned by the handler from the
// creation sequence.
type CreateStockLocationCommand struct { //nolint:recvcheck //using for validation
	locationID kernel.UUID
	name       string

	guard guard.ConstructorGuard
}

// NewCreateStockLocationCommand creates a command to register a location.
func NewCreateStockLocationCommand(locationID kernel.UUID, name string) (CreateStockLocationCommand, error) {
	cmd := CreateStockLocationCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setLocationID(locationID),
		cmd.setName(name),
	); err != nil {
		return CreateStockLocationCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateStockLocationCommand) Validate() error {
	return c.guard.Validate(ErrCreateStockLocationCommandIsNotConstructed)
}

// LocationID returns the new location's identifier.
func (c CreateStockLocationCommand) LocationID() kernel.UUID {
	return c.locationID
}

// Name returns the location's display name.
func (c CreateStockLocationCommand) Name() string {
	return c.name
}

func (c *CreateStockLocationCommand) setLocationID(locationID kernel.UUID) error {
	if err := locationID.Validate(); err != nil {
		return err
	}

	c.locationID = locationID
	return nil
}

func (c *CreateStockLocationCommand) setName(name string) error {
	if name == "" {
		return ErrNameIsRequired
	}

	c.name = name
	return nil
}
