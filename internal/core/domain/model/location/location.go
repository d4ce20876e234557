// Package location provides the StockLocation aggregate: a named place
// (warehouse, store backroom) that physically holds stock. Stock quantities
// themselves live in the stock package; a location only carries identity,
// a display name and a stable position used for deterministic ordering by
// the fulfillment strategies.
package location

import (
	"errors"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

// ErrStockLocationIsNotConstructed is returned when using an improperly
// initialized StockLocation.
var ErrStockLocationIsNotConstructed = errors.New("StockLocation must be created via NewStockLocation constructor")

// StockLocation represents a place holding inventory.
//
// Position is assigned at creation time (a monotonically increasing sequence
// per store) and never changes; fulfillment strategies use it to break ties
// deterministically when two locations hold equal stock.
type StockLocation struct {
	id        kernel.UUID
	name      string
	position  int
	createdAt time.Time
	guard     guard.ConstructorGuard
}

// NewStockLocation creates a stock location with validation.
// Name must be non-empty, position must be ≥ 0.
func NewStockLocation(id kernel.UUID, name string, position int, createdAt time.Time) (*StockLocation, error) {
	loc := &StockLocation{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		loc.setID(id),
		loc.setName(name),
		loc.setPosition(position),
	); err != nil {
		return nil, err
	}

	loc.createdAt = createdAt
	return loc, nil
}

// RestoreStockLocation reconstructs a StockLocation from persistent storage.
func RestoreStockLocation(id kernel.UUID, name string, position int, createdAt time.Time) (*StockLocation, error) {
	return NewStockLocation(id, name, position, createdAt)
}

// Validate ensures the StockLocation was properly constructed.
func (l *StockLocation) Validate() error {
	if l == nil {
		return ErrStockLocationIsNotConstructed
	}
	return l.guard.Validate(ErrStockLocationIsNotConstructed)
}

// IsEqual compares two locations by their unique identifiers.
func (l *StockLocation) IsEqual(other *StockLocation) bool {
	return other != nil && l.id.IsEqual(other.id)
}

// ID returns the location's unique identifier.
func (l *StockLocation) ID() kernel.UUID {
	return l.id
}

// Name returns the location's display name.
func (l *StockLocation) Name() string {
	return l.name
}

// Position returns the stable creation-order sequence of the location.
func (l *StockLocation) Position() int {
	return l.position
}

// CreatedAt returns the creation timestamp.
func (l *StockLocation) CreatedAt() time.Time {
	return l.createdAt
}

// Rename changes the location's display name.
func (l *StockLocation) Rename(name string) error {
	if err := l.Validate(); err != nil {
		return err
	}
	return l.setName(name)
}

func (l *StockLocation) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	l.id = id
	return nil
}

func (l *StockLocation) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	l.name = name
	return nil
}

func (l *StockLocation) setPosition(position int) error {
	if position < 0 {
		return errs.NewValueIsInvalidErrorWithCause("position",
			fmt.Errorf("%d is not greater than or equal to 0", position))
	}
	l.position = position
	return nil
}
