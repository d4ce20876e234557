package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/location"
)

// StockLocationRepository defines the persistence contract for stock
// locations.
type StockLocationRepository interface {
	// Add persists a new stock location.
	Add(ctx context.Context, aggregate *location.StockLocation) error

	// Update persists changes to an existing stock location.
	Update(ctx context.Context, aggregate *location.StockLocation) error

	// Get retrieves a stock location by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*location.StockLocation, error)

	// GetAll retrieves every stock location ordered by position, so
	// planner tie-breaks follow creation order.
	GetAll(ctx context.Context) ([]*location.StockLocation, error)
}
