package order

import (
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

// ErrLineItemIsNotConstructed is returned when using an improperly
// initialized LineItem.
var ErrLineItemIsNotConstructed = errors.New("LineItem must be created via NewLineItem constructor")

// LineItem is one ordered position: a product variant with a quantity and a
// captured unit price. Prices are stored in minor currency units (cents).
//
// A line item does not own its inventory units directly; units live in the
// order's shipments and reference the line item by id. The Order root keeps
// the two in sync.
type LineItem struct {
	// id uniquely identifies the line item
	id kernel.UUID
	// variantID is the ordered product variant
	variantID kernel.UUID
	// sku is the stock keeping unit code captured at order time
	sku string
	// quantity is the ordered amount (always > 0)
	quantity int
	// unitPrice is the per-unit price in minor currency units
	unitPrice int64
	// guard ensures the line item was properly constructed
	guard guard.ConstructorGuard
}

// NewLineItem creates a line item with validation.
func NewLineItem(id, variantID kernel.UUID, sku string, quantity int, unitPrice int64) (*LineItem, error) {
	item := &LineItem{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		item.setID(id),
		item.setVariantID(variantID),
		item.setSKU(sku),
		item.setQuantity(quantity),
		item.setUnitPrice(unitPrice),
	); err != nil {
		return nil, err
	}

	return item, nil
}

// RestoreLineItem reconstructs a line item from persistent storage.
func RestoreLineItem(id, variantID kernel.UUID, sku string, quantity int, unitPrice int64) (*LineItem, error) {
	return NewLineItem(id, variantID, sku, quantity, unitPrice)
}

// Validate ensures the LineItem was properly constructed.
func (li *LineItem) Validate() error {
	if li == nil {
		return ErrLineItemIsNotConstructed
	}
	return li.guard.Validate(ErrLineItemIsNotConstructed)
}

// ID returns the line item's unique identifier.
func (li *LineItem) ID() kernel.UUID {
	return li.id
}

// VariantID returns the ordered product variant's identifier.
func (li *LineItem) VariantID() kernel.UUID {
	return li.variantID
}

// SKU returns the stock keeping unit code.
func (li *LineItem) SKU() string {
	return li.sku
}

// Quantity returns the ordered amount.
func (li *LineItem) Quantity() int {
	return li.quantity
}

// UnitPrice returns the per-unit price in minor currency units.
func (li *LineItem) UnitPrice() int64 {
	return li.unitPrice
}

// Subtotal returns quantity × unit price in minor currency units.
func (li *LineItem) Subtotal() int64 {
	return int64(li.quantity) * li.unitPrice
}

func (li *LineItem) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	li.id = id
	return nil
}

func (li *LineItem) setVariantID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	li.variantID = id
	return nil
}

func (li *LineItem) setSKU(sku string) error {
	if sku == "" {
		return errs.NewValueIsRequiredError("sku")
	}
	li.sku = sku
	return nil
}

func (li *LineItem) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%d is not greater than 0", quantity))
	}
	li.quantity = quantity
	return nil
}

func (li *LineItem) setUnitPrice(unitPrice int64) error {
	if unitPrice < 0 {
		return errs.NewValueIsInvalidErrorWithCause("unitPrice",
			fmt.Errorf("%d is not greater than or equal to 0", unitPrice))
	}
	li.unitPrice = unitPrice
	return nil
}
