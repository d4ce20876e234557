package stock

import (
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

// Domain errors for stock ledger operations.
var (
	// ErrStockItemIsNotConstructed is returned when using an improperly initialized StockItem.
	ErrStockItemIsNotConstructed = errors.New("StockItem must be created via NewStockItem constructor")
	// ErrInsufficientStock is returned when a reservation or shipment confirmation
	// asks for more units than the item can cover.
	ErrInsufficientStock = errors.New("insufficient stock")
	// ErrBackorderLimitExceeded is returned when a reservation would push the
	// backorder past the configured ceiling.
	ErrBackorderLimitExceeded = errors.New("backorder limit exceeded")
	// ErrReleaseExceedsReserved is returned when a release asks for more units
	// than are currently reserved.
	ErrReleaseExceedsReserved = errors.New("release exceeds reserved")
	// ErrInsufficientReservedStock is returned when a shipment confirmation asks
	// for more units than are currently reserved.
	ErrInsufficientReservedStock = errors.New("insufficient reserved stock")
)

// StockItem is the per (variant, stock location) inventory ledger. It is an
// aggregate root tracking on-hand and reserved quantity for one SKU at one
// location, together with the append-only movement trail of every mutation.
//
// Invariants:
//   - quantityOnHand ≥ 0 and quantityReserved ≥ 0 at all times
//   - quantityReserved ≤ quantityOnHand + CurrentBackorderQuantity
//   - CurrentBackorderQuantity never exceeds maxBackorderQuantity when set
//   - a non-backorderable item never reserves past CountAvailable
//
// Reservations are soft holds: they do not decrement on-hand quantity.
// ConfirmShipment is the only operation that consumes a reservation and
// on-hand stock together, modeling the physical departure of goods.
//
// Idempotency of Reserve/Release is the caller's responsibility; the ledger
// records the caller-supplied reference on each movement for audit but does
// not deduplicate replays.
type StockItem struct {
	// id uniquely identifies the ledger entry
	id kernel.UUID
	// variantID is the product variant this ledger tracks
	variantID kernel.UUID
	// locationID is the stock location holding the units
	locationID kernel.UUID
	// sku is the stock keeping unit code of the variant at this location
	sku string
	// onHand is the physical quantity present at the location
	onHand int
	// reserved is the quantity soft-held for orders (may exceed onHand when backorderable)
	reserved int
	// backorderable allows reservations beyond on-hand quantity
	backorderable bool
	// maxBackorderQuantity is an optional ceiling on the backorder (nil = unbounded)
	maxBackorderQuantity *int
	// clock timestamps movement records
	clock kernel.Clock
	// movements holds ledger records staged since the last persistence flush
	movements []Movement
	// guard ensures the item was properly constructed
	guard guard.ConstructorGuard
}

// NewStockItem creates a ledger entry for a variant newly stocked at a location.
//
// Parameters:
//   - id: unique identifier for the ledger entry
//   - variantID: product variant being stocked
//   - locationID: stock location holding the units
//   - sku: stock keeping unit code (must be non-empty)
//   - onHand: initial physical quantity (must be ≥ 0)
//   - backorderable: whether reservations may exceed on-hand quantity
//   - maxBackorderQuantity: optional backorder ceiling (must be ≥ 0 when set)
//   - clock: time source for movement timestamps
//
// The initial quantity is recorded as a movement with the "initial_stock"
// originator so the ledger trail is complete from creation.
func NewStockItem(
	id kernel.UUID,
	variantID kernel.UUID,
	locationID kernel.UUID,
	sku string,
	onHand int,
	backorderable bool,
	maxBackorderQuantity *int,
	clock kernel.Clock,
) (*StockItem, error) {
	item := &StockItem{
		clock: clock,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		item.setID(id),
		item.setVariantID(variantID),
		item.setLocationID(locationID),
		item.setSKU(sku),
		item.setMaxBackorderQuantity(maxBackorderQuantity),
		item.validateClock(),
	); err != nil {
		return nil, err
	}

	if onHand < 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("onHand",
			fmt.Errorf("%d is not greater than or equal to 0", onHand))
	}

	item.backorderable = backorderable
	if onHand > 0 {
		item.applyMovement(OriginatorInitialStock, onHand, 0, nil, nil)
	}

	return item, nil
}

// RestoreStockItem reconstructs a StockItem from persistent storage.
// Unlike NewStockItem it accepts a reserved quantity and records no movement:
// the persisted ledger trail already covers the restored state.
func RestoreStockItem(
	id kernel.UUID,
	variantID kernel.UUID,
	locationID kernel.UUID,
	sku string,
	onHand int,
	reserved int,
	backorderable bool,
	maxBackorderQuantity *int,
	clock kernel.Clock,
) (*StockItem, error) {
	item := &StockItem{
		clock: clock,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		item.setID(id),
		item.setVariantID(variantID),
		item.setLocationID(locationID),
		item.setSKU(sku),
		item.setMaxBackorderQuantity(maxBackorderQuantity),
		item.validateClock(),
	); err != nil {
		return nil, err
	}

	if onHand < 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("onHand",
			fmt.Errorf("%d is not greater than or equal to 0", onHand))
	}
	if reserved < 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("reserved",
			fmt.Errorf("%d is not greater than or equal to 0", reserved))
	}

	item.onHand = onHand
	item.reserved = reserved
	item.backorderable = backorderable

	return item, nil
}

// Validate ensures the StockItem was properly constructed.
func (s *StockItem) Validate() error {
	if s == nil {
		return ErrStockItemIsNotConstructed
	}
	return s.guard.Validate(ErrStockItemIsNotConstructed)
}

// IsEqual compares two stock items by their unique identifiers.
func (s *StockItem) IsEqual(other *StockItem) bool {
	return other != nil && s.id.IsEqual(other.id)
}

// ID returns the ledger entry's unique identifier.
func (s *StockItem) ID() kernel.UUID {
	return s.id
}

// VariantID returns the tracked product variant's identifier.
func (s *StockItem) VariantID() kernel.UUID {
	return s.variantID
}

// LocationID returns the stock location's identifier.
func (s *StockItem) LocationID() kernel.UUID {
	return s.locationID
}

// SKU returns the stock keeping unit code.
func (s *StockItem) SKU() string {
	return s.sku
}

// QuantityOnHand returns the physical quantity present at the location.
func (s *StockItem) QuantityOnHand() int {
	return s.onHand
}

// QuantityReserved returns the quantity currently soft-held for orders.
func (s *StockItem) QuantityReserved() int {
	return s.reserved
}

// IsBackorderable reports whether reservations may exceed on-hand quantity.
func (s *StockItem) IsBackorderable() bool {
	return s.backorderable
}

// MaxBackorderQuantity returns the optional backorder ceiling, nil when unbounded.
func (s *StockItem) MaxBackorderQuantity() *int {
	if s.maxBackorderQuantity == nil {
		return nil
	}
	v := *s.maxBackorderQuantity
	return &v
}

// CountAvailable returns the quantity still reservable without entering
// backorder: max(0, onHand − reserved).
func (s *StockItem) CountAvailable() int {
	if s.onHand <= s.reserved {
		return 0
	}
	return s.onHand - s.reserved
}

// CurrentBackorderQuantity returns the reserved quantity not covered by
// on-hand stock: max(0, reserved − onHand).
func (s *StockItem) CurrentBackorderQuantity() int {
	if s.reserved <= s.onHand {
		return 0
	}
	return s.reserved - s.onHand
}

// Reserve soft-holds quantity for the given reference.
//
// Fails with ErrInsufficientStock when the item is not backorderable and the
// requested quantity exceeds CountAvailable. Fails with
// ErrBackorderLimitExceeded when the resulting backorder would exceed the
// configured ceiling. On failure the ledger state is unchanged.
//
// The referenceID (typically an order ID) is recorded on the movement for
// audit; the ledger does not deduplicate repeated reservations for the same
// reference.
func (s *StockItem) Reserve(quantity int, referenceID kernel.UUID) error {
	if err := s.Validate(); err != nil {
		return err
	}
	if err := validateQuantity(quantity); err != nil {
		return err
	}
	if err := referenceID.Validate(); err != nil {
		return err
	}

	if !s.backorderable && quantity > s.CountAvailable() {
		return ErrInsufficientStock
	}

	newReserved := s.reserved + quantity
	newBackorder := 0
	if newReserved > s.onHand {
		newBackorder = newReserved - s.onHand
	}
	if s.maxBackorderQuantity != nil && newBackorder > *s.maxBackorderQuantity {
		return ErrBackorderLimitExceeded
	}

	s.applyMovement(OriginatorReservation, 0, quantity, &referenceID, nil)
	return nil
}

// Release returns previously reserved quantity to the available pool.
//
// Fails with ErrReleaseExceedsReserved when the requested quantity exceeds the
// current reservation; otherwise the reservation decreases by exactly the
// requested quantity.
func (s *StockItem) Release(quantity int, referenceID kernel.UUID) error {
	if err := s.Validate(); err != nil {
		return err
	}
	if err := validateQuantity(quantity); err != nil {
		return err
	}
	if err := referenceID.Validate(); err != nil {
		return err
	}

	if quantity > s.reserved {
		return ErrReleaseExceedsReserved
	}

	s.applyMovement(OriginatorRelease, 0, -quantity, &referenceID, nil)
	return nil
}

// Adjust applies a signed delta to the on-hand quantity, tagged with a
// movement originator for audit (e.g. "stock_take", "inbound_receipt").
//
// The only invalid inputs are an empty originator and a delta that would
// drive the on-hand quantity negative.
func (s *StockItem) Adjust(delta int, originator string) error {
	if err := s.Validate(); err != nil {
		return err
	}
	if originator == "" {
		return errs.NewValueIsRequiredError("originator")
	}
	if delta == 0 {
		return errs.NewValueIsInvalidErrorWithCause("delta", errors.New("0 is not a valid adjustment"))
	}
	if s.onHand+delta < 0 {
		return errs.NewValueIsInvalidErrorWithCause("delta",
			fmt.Errorf("adjustment by %d would drive on-hand quantity below 0", delta))
	}

	s.applyMovement(originator, delta, 0, nil, nil)
	return nil
}

// ConfirmShipment consumes a reservation by physically shipping stock:
// it atomically decrements both on-hand and reserved quantity.
//
// Fails with ErrInsufficientReservedStock when the quantity exceeds the
// current reservation and with ErrInsufficientStock when it exceeds on-hand
// quantity (shipping backordered units is impossible until stock arrives).
func (s *StockItem) ConfirmShipment(quantity int, shipmentID kernel.UUID, referenceID kernel.UUID) error {
	if err := s.Validate(); err != nil {
		return err
	}
	if err := validateQuantity(quantity); err != nil {
		return err
	}
	if err := shipmentID.Validate(); err != nil {
		return err
	}
	if err := referenceID.Validate(); err != nil {
		return err
	}

	if quantity > s.reserved {
		return ErrInsufficientReservedStock
	}
	if quantity > s.onHand {
		return ErrInsufficientStock
	}

	s.applyMovement(OriginatorShipmentConfirmation, -quantity, -quantity, &referenceID, &shipmentID)
	return nil
}

// UncommittedMovements returns the ledger records staged since the last
// persistence flush, oldest first.
func (s *StockItem) UncommittedMovements() []Movement {
	result := make([]Movement, len(s.movements))
	copy(result, s.movements)
	return result
}

// ClearUncommittedMovements drops the staged ledger records.
// Repositories call this after persisting the movement trail.
func (s *StockItem) ClearUncommittedMovements() {
	s.movements = nil
}

// applyMovement mutates the ledger and stages the corresponding record.
// All guard checks must have passed before calling.
func (s *StockItem) applyMovement(originator string, onHandDelta, reservedDelta int, referenceID, shipmentID *kernel.UUID) {
	movement := Movement{
		ID:             kernel.NewUUID(),
		StockItemID:    s.id,
		Originator:     originator,
		ReferenceID:    referenceID,
		ShipmentID:     shipmentID,
		OnHandDelta:    onHandDelta,
		ReservedDelta:  reservedDelta,
		OnHandBefore:   s.onHand,
		ReservedBefore: s.reserved,
		OccurredAt:     s.clock.Now(),
	}

	s.onHand += onHandDelta
	s.reserved += reservedDelta

	movement.OnHandAfter = s.onHand
	movement.ReservedAfter = s.reserved
	s.movements = append(s.movements, movement)
}

func validateQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%d is not greater than 0", quantity))
	}
	return nil
}

func (s *StockItem) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	s.id = id
	return nil
}

func (s *StockItem) setVariantID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	s.variantID = id
	return nil
}

func (s *StockItem) setLocationID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	s.locationID = id
	return nil
}

func (s *StockItem) setSKU(sku string) error {
	if sku == "" {
		return errs.NewValueIsRequiredError("sku")
	}
	s.sku = sku
	return nil
}

func (s *StockItem) setMaxBackorderQuantity(maxBackorderQuantity *int) error {
	if maxBackorderQuantity != nil && *maxBackorderQuantity < 0 {
		return errs.NewValueIsInvalidErrorWithCause("maxBackorderQuantity",
			fmt.Errorf("%d is not greater than or equal to 0", *maxBackorderQuantity))
	}
	s.maxBackorderQuantity = maxBackorderQuantity
	return nil
}

func (s *StockItem) validateClock() error {
	if s.clock == nil {
		return errs.NewValueIsRequiredError("clock")
	}
	return nil
}
