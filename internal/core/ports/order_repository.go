package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Provides methods for storing, retrieving, and querying order entities
// with their complete state including line items, shipments, inventory
// units and payments.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate.
	// Fails with a version conflict when the stored aggregate changed since
	// it was loaded.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	// Returns the complete order with all child collections restored.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetAllWithBackorderedUnits retrieves orders holding at least one
	// backordered inventory unit in a pending shipment. Used by the
	// backorder allocation sweep to find work.
	GetAllWithBackorderedUnits(ctx context.Context) ([]*order.Order, error)
}
