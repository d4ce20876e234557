package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrAdjustStockCommandIsNotConstructed = errors.New(
		"AdjustStockCommand must be created via NewAdjustStockCommand constructor",
	)
	ErrDeltaIsInvalid       = errors.New("delta must not be 0")
	ErrOriginatorIsRequired = errors.New("originator is required")
)

// AdjustStockCommand represents a request to correct a ledger's on-hand
// quantity by a signed delta, attributed to an originator (receiving,
// cycle count, damage writeoff).
type AdjustStockCommand struct { //nolint:recvcheck //using for validation
	variantID  kernel.UUID
	locationID kernel.UUID
	delta      int
	originator string

	guard guard.ConstructorGuard
}

// NewAdjustStockCommand creates a command to adjust a ledger.
func NewAdjustStockCommand(variantID, locationID kernel.UUID, delta int, originator string) (AdjustStockCommand, error) {
	cmd := AdjustStockCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setVariantID(variantID),
		cmd.setLocationID(locationID),
		cmd.setDelta(delta),
		cmd.setOriginator(originator),
	); err != nil {
		return AdjustStockCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AdjustStockCommand) Validate() error {
	return c.guard.Validate(ErrAdjustStockCommandIsNotConstructed)
}

// VariantID returns the adjusted variant.
func (c AdjustStockCommand) VariantID() kernel.UUID {
	return c.variantID
}

// LocationID returns the adjusted location.
func (c AdjustStockCommand) LocationID() kernel.UUID {
	return c.locationID
}

// Delta returns the signed on-hand change.
func (c AdjustStockCommand) Delta() int {
	return c.delta
}

// Originator returns who or what caused the adjustment.
func (c AdjustStockCommand) Originator() string {
	return c.originator
}

func (c *AdjustStockCommand) setVariantID(variantID kernel.UUID) error {
	if err := variantID.Validate(); err != nil {
		return err
	}

	c.variantID = variantID
	return nil
}

func (c *AdjustStockCommand) setLocationID(locationID kernel.UUID) error {
	if err := locationID.Validate(); err != nil {
		return err
	}

	c.locationID = locationID
	return nil
}

func (c *AdjustStockCommand) setDelta(delta int) error {
	if delta == 0 {
		return ErrDeltaIsInvalid
	}

	c.delta = delta
	return nil
}

func (c *AdjustStockCommand) setOriginator(originator string) error {
	if originator == "" {
		return ErrOriginatorIsRequired
	}

	c.originator = originator
	return nil
}
