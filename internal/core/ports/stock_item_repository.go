// Package ports defines repository interfaces for the fulfillment domain.
// These interfaces establish contracts between the domain layer and infrastructure,
// enabling dependency inversion and testability.
package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/stock"
)

// StockItemRepository defines the persistence contract for stock item
// aggregates. Each stock item is one variant's ledger at one location;
// uncommitted movements staged on the aggregate are appended on save.
type StockItemRepository interface {
	// Add persists a new stock item together with its initial movement.
	// The item must be valid and the variant+location pair must not
	// already have a ledger.
	Add(ctx context.Context, aggregate *stock.StockItem) error

	// Update persists changes to an existing stock item and appends its
	// uncommitted movements. Fails with a version conflict when the stored
	// aggregate changed since it was loaded; callers retry with a fresh load.
	Update(ctx context.Context, aggregate *stock.StockItem) error

	// Get retrieves a stock item by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*stock.StockItem, error)

	// GetByVariantAndLocation retrieves the single ledger for a variant at
	// a location.
	GetByVariantAndLocation(ctx context.Context, variantID, locationID kernel.UUID) (*stock.StockItem, error)

	// GetAllByVariant retrieves every location's ledger for a variant.
	// Used to build planner snapshots and reconciliation lookups.
	GetAllByVariant(ctx context.Context, variantID kernel.UUID) ([]*stock.StockItem, error)
}
