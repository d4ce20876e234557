package order

import (
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

// ErrInventoryUnitIsNotConstructed is returned when using an improperly
// initialized InventoryUnit.
var ErrInventoryUnitIsNotConstructed = errors.New("InventoryUnit must be created via NewInventoryUnit constructor")

// UnitState represents the physical lifecycle state of a single inventory unit.
//
//	OnHand ───> Shipped ───> Returned
//	  │  ▲
//	  ▼  │
//	Backordered
//
// Once a unit is Shipped the only remaining transition is to Returned.
type UnitState int

const (
	// UnitUnknown represents an invalid or undefined unit state.
	UnitUnknown UnitState = iota

	// UnitOnHand indicates the unit is backed by available stock at its shipment's location.
	UnitOnHand

	// UnitBackordered indicates the unit awaits inbound stock.
	UnitBackordered

	// UnitShipped indicates the unit physically left its stock location.
	UnitShipped

	// UnitReturned indicates the unit came back through the post-sale return flow.
	UnitReturned
)

// String returns the human-readable name of the unit state.
func (s UnitState) String() string {
	switch s {
	case UnitOnHand:
		return "OnHand"
	case UnitBackordered:
		return "Backordered"
	case UnitShipped:
		return "Shipped"
	case UnitReturned:
		return "Returned"
	default:
		return "Unknown"
	}
}

// Validate checks if the UnitState value is valid.
func (s UnitState) Validate() error {
	switch s {
	case UnitOnHand, UnitBackordered, UnitShipped, UnitReturned:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("unit state is invalid",
			fmt.Errorf("%d is not a valid unit state", s))
	}
}

// InventoryUnit is the unit-of-one allocation record linking a line item to a
// shipment. A line item with quantity N owns exactly N units once fully
// allocated; each unit tracks its own physical state.
type InventoryUnit struct {
	// id uniquely identifies the unit
	id kernel.UUID
	// lineItemID links the unit to the ordered line it satisfies
	lineItemID kernel.UUID
	// variantID is the product variant of the unit
	variantID kernel.UUID
	// state is the current physical lifecycle state
	state UnitState
	// guard ensures the unit was properly constructed
	guard guard.ConstructorGuard
}

// NewInventoryUnit creates a unit for a line item in the given initial state.
// Only OnHand and Backordered are valid initial states: a unit is born from
// an allocation decision, never already shipped.
func NewInventoryUnit(id, lineItemID, variantID kernel.UUID, state UnitState) (*InventoryUnit, error) {
	if state != UnitOnHand && state != UnitBackordered {
		return nil, errs.NewValueIsInvalidErrorWithCause("state",
			fmt.Errorf("%s is not a valid initial unit state", state.String()))
	}

	unit := &InventoryUnit{
		state: state,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		unit.setID(id),
		unit.setLineItemID(lineItemID),
		unit.setVariantID(variantID),
	); err != nil {
		return nil, err
	}

	return unit, nil
}

// RestoreInventoryUnit reconstructs a unit from persistent storage,
// accepting any valid state.
func RestoreInventoryUnit(id, lineItemID, variantID kernel.UUID, state UnitState) (*InventoryUnit, error) {
	if err := state.Validate(); err != nil {
		return nil, err
	}

	unit := &InventoryUnit{
		state: state,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		unit.setID(id),
		unit.setLineItemID(lineItemID),
		unit.setVariantID(variantID),
	); err != nil {
		return nil, err
	}

	return unit, nil
}

// Validate ensures the InventoryUnit was properly constructed.
func (u *InventoryUnit) Validate() error {
	if u == nil {
		return ErrInventoryUnitIsNotConstructed
	}
	return u.guard.Validate(ErrInventoryUnitIsNotConstructed)
}

// ID returns the unit's unique identifier.
func (u *InventoryUnit) ID() kernel.UUID {
	return u.id
}

// LineItemID returns the identifier of the line item the unit satisfies.
func (u *InventoryUnit) LineItemID() kernel.UUID {
	return u.lineItemID
}

// VariantID returns the product variant's identifier.
func (u *InventoryUnit) VariantID() kernel.UUID {
	return u.variantID
}

// State returns the unit's current physical state.
func (u *InventoryUnit) State() UnitState {
	return u.state
}

// Return marks a shipped unit as returned through the post-sale flow.
func (u *InventoryUnit) Return() error {
	if err := u.Validate(); err != nil {
		return err
	}
	if u.state != UnitShipped {
		return errs.NewValueIsInvalidErrorWithCause("unit state is invalid",
			fmt.Errorf("%s is not a valid state to return from", u.state.String()))
	}
	u.state = UnitReturned
	return nil
}

// allocate moves a backordered unit to on-hand once inbound stock covers it.
// No-op for units already on hand, keeping the operation idempotent.
func (u *InventoryUnit) allocate() bool {
	if u.state != UnitBackordered {
		return false
	}
	u.state = UnitOnHand
	return true
}

// markShipped transitions the unit to Shipped. The shipment enforces that
// only OnHand units reach this point.
func (u *InventoryUnit) markShipped() {
	u.state = UnitShipped
}

func (u *InventoryUnit) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	u.id = id
	return nil
}

func (u *InventoryUnit) setLineItemID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	u.lineItemID = id
	return nil
}

func (u *InventoryUnit) setVariantID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	u.variantID = id
	return nil
}
