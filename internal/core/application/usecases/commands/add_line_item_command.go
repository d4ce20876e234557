package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrAddLineItemCommandIsNotConstructed = errors.New(
		"AddLineItemCommand must be created via NewAddLineItemCommand constructor",
	)
	ErrSKUIsRequired     = errors.New("sku is required")
	ErrQuantityIsInvalid = errors.New("quantity must be greater than 0")
	ErrPriceIsInvalid    = errors.New("unit price must be greater than or equal to 0")
)

// AddLineItemCommand represents a request to add quantity of a variant to an
// order's cart. Adding a variant already present merges into the existing
// line item.
type AddLineItemCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	variantID kernel.UUID
	sku       string
	quantity  int
	unitPrice int64

	guard guard.ConstructorGuard
}

// NewAddLineItemCommand creates a command to add a variant to an order.
func NewAddLineItemCommand(orderID, variantID kernel.UUID, sku string, quantity int, unitPrice int64) (AddLineItemCommand, error) {
	cmd := AddLineItemCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setVariantID(variantID),
		cmd.setSKU(sku),
		cmd.setQuantity(quantity),
		cmd.setUnitPrice(unitPrice),
	); err != nil {
		return AddLineItemCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AddLineItemCommand) Validate() error {
	return c.guard.Validate(ErrAddLineItemCommandIsNotConstructed)
}

// OrderID returns the target order's identifier.
func (c AddLineItemCommand) OrderID() kernel.UUID {
	return c.orderID
}

// VariantID returns the product variant to add.
func (c AddLineItemCommand) VariantID() kernel.UUID {
	return c.variantID
}

// SKU returns the variant's stock keeping unit.
func (c AddLineItemCommand) SKU() string {
	return c.sku
}

// Quantity returns the number of units to add.
func (c AddLineItemCommand) Quantity() int {
	return c.quantity
}

// UnitPrice returns the price per unit in minor currency units.
func (c AddLineItemCommand) UnitPrice() int64 {
	return c.unitPrice
}

func (c *AddLineItemCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *AddLineItemCommand) setVariantID(variantID kernel.UUID) error {
	if err := variantID.Validate(); err != nil {
		return err
	}

	c.variantID = variantID
	return nil
}

func (c *AddLineItemCommand) setSKU(sku string) error {
	if sku == "" {
		return ErrSKUIsRequired
	}

	c.sku = sku
	return nil
}

func (c *AddLineItemCommand) setQuantity(quantity int) error {
	if quantity <= 0 {
		return ErrQuantityIsInvalid
	}

	c.quantity = quantity
	return nil
}

func (c *AddLineItemCommand) setUnitPrice(unitPrice int64) error {
	if unitPrice < 0 {
		return ErrPriceIsInvalid
	}

	c.unitPrice = unitPrice
	return nil
}
