package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrCreateStockItemCommandIsNotConstructed = errors.New(
		"CreateStockItemCommand must be created via NewCreateStockItemCommand constructor",
	)
	ErrOnHandIsInvalid = errors.New("on-hand quantity must be greater than or equal to 0")
)

// CreateStockItemCommand represents a request to open a ledger for a variant
// at a location with an initial on-hand quantity.
type CreateStockItemCommand struct { //nolint:recvcheck //using for validation
	stockItemID          kernel.UUID
	variantID            kernel.UUID
	locationID           kernel.UUID
	sku                  string
	onHand               int
	backorderable        bool
	maxBackorderQuantity *int

	guard guard.ConstructorGuard
}

// NewCreateStockItemCommand creates a command to open a stock ledger.
func NewCreateStockItemCommand(
	stockItemID, variantID, locationID kernel.UUID,
	sku string,
	onHand int,
	backorderable bool,
	maxBackorderQuantity *int,
) (CreateStockItemCommand, error) {
	cmd := CreateStockItemCommand{
		backorderable:        backorderable,
		maxBackorderQuantity: maxBackorderQuantity,
		guard:                guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setStockItemID(stockItemID),
		cmd.setVariantID(variantID),
		cmd.setLocationID(locationID),
		cmd.setSKU(sku),
		cmd.setOnHand(onHand),
	); err != nil {
		return CreateStockItemCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateStockItemCommand) Validate() error {
	return c.guard.Validate(ErrCreateStockItemCommandIsNotConstructed)
}

// StockItemID returns the new ledger's identifier.
func (c CreateStockItemCommand) StockItemID() kernel.UUID {
	return c.stockItemID
}

// VariantID returns the tracked product variant.
func (c CreateStockItemCommand) VariantID() kernel.UUID {
	return c.variantID
}

// LocationID returns the tracked stock location.
func (c CreateStockItemCommand) LocationID() kernel.UUID {
	return c.locationID
}

// SKU returns the variant's stock keeping unit.
func (c CreateStockItemCommand) SKU() string {
	return c.sku
}

// OnHand returns the initial physical quantity.
func (c CreateStockItemCommand) OnHand() int {
	return c.onHand
}

// Backorderable reports whether reservations may exceed on-hand stock.
func (c CreateStockItemCommand) Backorderable() bool {
	return c.backorderable
}

// MaxBackorderQuantity returns the optional backorder ceiling.
func (c CreateStockItemCommand) MaxBackorderQuantity() *int {
	return c.maxBackorderQuantity
}

func (c *CreateStockItemCommand) setStockItemID(stockItemID kernel.UUID) error {
	if err := stockItemID.Validate(); err != nil {
		return err
	}

	c.stockItemID = stockItemID
	return nil
}

func (c *CreateStockItemCommand) setVariantID(variantID kernel.UUID) error {
	if err := variantID.Validate(); err != nil {
		return err
	}

	c.variantID = variantID
	return nil
}

func (c *CreateStockItemCommand) setLocationID(locationID kernel.UUID) error {
	if err := locationID.Validate(); err != nil {
		return err
	}

	c.locationID = locationID
	return nil
}

func (c *CreateStockItemCommand) setSKU(sku string) error {
	if sku == "" {
		return ErrSKUIsRequired
	}

	c.sku = sku
	return nil
}

func (c *CreateStockItemCommand) setOnHand(onHand int) error {
	if onHand < 0 {
		return ErrOnHandIsInvalid
	}

	c.onHand = onHand
	return nil
}
