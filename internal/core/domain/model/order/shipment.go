package order

import (
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

// Domain errors for shipment operations.
var (
	// ErrShipmentIsNotConstructed is returned when using an improperly initialized Shipment.
	ErrShipmentIsNotConstructed = errors.New("Shipment must be created via the order's AddShipment method")
	// ErrCannotShipWithBackorders is returned when readying or shipping a
	// shipment that still contains backordered units.
	ErrCannotShipWithBackorders = errors.New("cannot ship with backordered units")
	// ErrOrderCanceled is returned when shipping a shipment whose parent order
	// was canceled.
	ErrOrderCanceled = errors.New("order is canceled")
	// ErrShipmentNotPending is returned when mutating a shipment past the Pending state.
	ErrShipmentNotPending = errors.New("shipment is not pending")
)

// ShipmentState represents the lifecycle state of a shipment.
//
//	Pending ──> Ready ──> Shipped
//	   │          │
//	   └──────────┴────> Canceled
//
// A Shipped shipment is immutable; its units can only move to Returned.
type ShipmentState int

const (
	// ShipmentStateUnknown represents an invalid or undefined shipment state.
	ShipmentStateUnknown ShipmentState = iota

	// ShipmentStatePending indicates the shipment is being assembled.
	ShipmentStatePending

	// ShipmentStateReady indicates every unit is on hand and the shipment awaits dispatch.
	ShipmentStateReady

	// ShipmentStateShipped indicates the goods left the stock location. Terminal.
	ShipmentStateShipped

	// ShipmentStateCanceled indicates the shipment was voided. Terminal.
	ShipmentStateCanceled
)

// String returns the human-readable name of the shipment state.
func (s ShipmentState) String() string {
	switch s {
	case ShipmentStatePending:
		return "Pending"
	case ShipmentStateReady:
		return "Ready"
	case ShipmentStateShipped:
		return "Shipped"
	case ShipmentStateCanceled:
		return "Canceled"
	default:
		return "Unknown"
	}
}

// Validate checks if the ShipmentState value is valid.
func (s ShipmentState) Validate() error {
	switch s {
	case ShipmentStatePending, ShipmentStateReady, ShipmentStateShipped, ShipmentStateCanceled:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("shipment state is invalid",
			fmt.Errorf("%d is not a valid shipment state", s))
	}
}

// Shipment is a bundle of inventory units departing from a single stock
// location. It is a child entity of the Order aggregate: shipments are
// created through Order.AddShipment and mutated through the root or through
// methods that consult the root's state.
//
// Invariant: every unit in the shipment is fulfilled from the shipment's
// stock location; units inherit the location implicitly by membership.
type Shipment struct {
	// id uniquely identifies the shipment
	id kernel.UUID
	// stockLocationID is the location all units depart from
	stockLocationID kernel.UUID
	// state is the current lifecycle state
	state ShipmentState
	// trackingNumber is assigned on dispatch
	trackingNumber string
	// units are the allocated inventory units, in allocation order
	units []*InventoryUnit
	// order is the owning aggregate root (same-package back-reference)
	order *Order
	// guard ensures the shipment was properly constructed
	guard guard.ConstructorGuard
}

// newShipment creates a pending shipment owned by the given order.
// Only the Order root calls this, via AddShipment.
func newShipment(id, stockLocationID kernel.UUID, owner *Order) (*Shipment, error) {
	s := &Shipment{
		state: ShipmentStatePending,
		order: owner,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		s.setID(id),
		s.setStockLocationID(stockLocationID),
	); err != nil {
		return nil, err
	}

	return s, nil
}

// RestoreShipment reconstructs a shipment from persistent storage.
// The owning order attaches itself when the aggregate is restored.
func RestoreShipment(
	id, stockLocationID kernel.UUID,
	state ShipmentState,
	trackingNumber string,
	units []*InventoryUnit,
) (*Shipment, error) {
	if err := state.Validate(); err != nil {
		return nil, err
	}

	s := &Shipment{
		state:          state,
		trackingNumber: trackingNumber,
		units:          units,
		guard:          guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		s.setID(id),
		s.setStockLocationID(stockLocationID),
	); err != nil {
		return nil, err
	}

	for _, unit := range units {
		if err := unit.Validate(); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// Validate ensures the Shipment was properly constructed.
func (s *Shipment) Validate() error {
	if s == nil {
		return ErrShipmentIsNotConstructed
	}
	return s.guard.Validate(ErrShipmentIsNotConstructed)
}

// ID returns the shipment's unique identifier.
func (s *Shipment) ID() kernel.UUID {
	return s.id
}

// StockLocationID returns the location all units depart from.
func (s *Shipment) StockLocationID() kernel.UUID {
	return s.stockLocationID
}

// State returns the shipment's current lifecycle state.
func (s *Shipment) State() ShipmentState {
	return s.state
}

// TrackingNumber returns the carrier tracking number, empty until shipped.
func (s *Shipment) TrackingNumber() string {
	return s.trackingNumber
}

// Units returns the shipment's inventory units in allocation order.
// The returned slice is a copy; mutations go through the aggregate.
func (s *Shipment) Units() []*InventoryUnit {
	result := make([]*InventoryUnit, len(s.units))
	copy(result, s.units)
	return result
}

// BackorderedUnitCount returns the number of units still awaiting stock.
func (s *Shipment) BackorderedUnitCount() int {
	count := 0
	for _, unit := range s.units {
		if unit.State() == UnitBackordered {
			count++
		}
	}
	return count
}

// Ready marks a fully stocked pending shipment as ready for dispatch.
// Fails with ErrCannotShipWithBackorders while any unit is backordered.
func (s *Shipment) Ready() error {
	if err := s.Validate(); err != nil {
		return err
	}
	if s.state != ShipmentStatePending {
		return ErrShipmentNotPending
	}
	if s.BackorderedUnitCount() > 0 {
		return ErrCannotShipWithBackorders
	}

	s.state = ShipmentStateReady
	return nil
}

// Ship dispatches the shipment with the given tracking number.
//
// Guards:
//   - the parent order must not be canceled (ErrOrderCanceled)
//   - the shipment must be Pending or Ready
//   - no unit may be backordered (ErrCannotShipWithBackorders)
//
// On success every unit transitions to Shipped, the shipment becomes
// immutable, and a ShipmentShipped event is raised on the order carrying the
// per-variant quantities and the stock location, so reconciliation can
// confirm the departure against the ledger.
func (s *Shipment) Ship(trackingNumber string) error {
	if err := s.Validate(); err != nil {
		return err
	}
	if trackingNumber == "" {
		return errs.NewValueIsRequiredError("trackingNumber")
	}
	if s.order != nil && s.order.Status() == StatusCanceled {
		return ErrOrderCanceled
	}
	if s.state != ShipmentStatePending && s.state != ShipmentStateReady {
		return errs.NewValueIsInvalidErrorWithCause("shipment state is invalid",
			fmt.Errorf("%s is not a valid state to ship from", s.state.String()))
	}
	if s.BackorderedUnitCount() > 0 {
		return ErrCannotShipWithBackorders
	}

	for _, unit := range s.units {
		unit.markShipped()
	}
	s.state = ShipmentStateShipped
	s.trackingNumber = trackingNumber

	if s.order != nil {
		s.order.raiseEvent(ShipmentShipped{
			OrderID:    s.order.ID(),
			ShipmentID: s.id,
			LocationID: s.stockLocationID,
			Quantities: s.variantQuantities(),
		})
	}

	return nil
}

// AllocateInventory moves backordered units to on-hand where inbound stock
// now covers them. coveredByVariant says, per variant, how many previously
// backordered units the shipment's location can now cover; the caller
// computes it from a fresh ledger snapshot.
//
// The operation is idempotent and safe to call repeatedly: units already on
// hand are untouched, and a shipment past Pending is left alone entirely.
// Returns the number of units flipped.
func (s *Shipment) AllocateInventory(coveredByVariant map[kernel.UUID]int) (int, error) {
	if err := s.Validate(); err != nil {
		return 0, err
	}
	if s.state != ShipmentStatePending {
		return 0, nil
	}

	allocated := 0
	for _, unit := range s.units {
		if unit.State() != UnitBackordered {
			continue
		}
		remaining := coveredByVariant[unit.VariantID()]
		if remaining <= 0 {
			continue
		}
		if unit.allocate() {
			coveredByVariant[unit.VariantID()] = remaining - 1
			allocated++
		}
	}

	return allocated, nil
}

// cancel voids the shipment. Only the Order root calls this, after checking
// the shipped-items guard.
func (s *Shipment) cancel() {
	s.state = ShipmentStateCanceled
}

// addUnits appends units to a pending shipment. Only the Order root calls
// this, via AddItemToShipment.
func (s *Shipment) addUnits(units []*InventoryUnit) {
	s.units = append(s.units, units...)
}

// removeNewestUnits removes up to limit units belonging to the line item,
// newest-allocated-first. Returns the removed count.
func (s *Shipment) removeNewestUnits(lineItemID kernel.UUID, limit int) int {
	removed := 0
	for i := len(s.units) - 1; i >= 0 && removed < limit; i-- {
		if !s.units[i].LineItemID().IsEqual(lineItemID) {
			continue
		}
		s.units = append(s.units[:i], s.units[i+1:]...)
		removed++
	}
	return removed
}

// unitCountForLineItem returns the number of units satisfying the line item.
func (s *Shipment) unitCountForLineItem(lineItemID kernel.UUID) int {
	count := 0
	for _, unit := range s.units {
		if unit.LineItemID().IsEqual(lineItemID) {
			count++
		}
	}
	return count
}

// variantQuantities aggregates the shipment's units per variant,
// first-seen variant order preserved for deterministic events.
func (s *Shipment) variantQuantities() []VariantQuantity {
	counts := make(map[kernel.UUID]int, len(s.units))
	orderOfAppearance := make([]kernel.UUID, 0, len(s.units))
	for _, unit := range s.units {
		if _, seen := counts[unit.VariantID()]; !seen {
			orderOfAppearance = append(orderOfAppearance, unit.VariantID())
		}
		counts[unit.VariantID()]++
	}

	result := make([]VariantQuantity, 0, len(orderOfAppearance))
	for _, variantID := range orderOfAppearance {
		result = append(result, VariantQuantity{VariantID: variantID, Quantity: counts[variantID]})
	}
	return result
}

func (s *Shipment) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	s.id = id
	return nil
}

func (s *Shipment) setStockLocationID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	s.stockLocationID = id
	return nil
}
