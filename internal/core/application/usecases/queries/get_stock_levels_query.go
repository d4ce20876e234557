// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries return optimized read models for specific use cases.
package queries

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrGetStockLevelsQueryIsNotConstructed = errors.New(
	"GetStockLevelsQuery must be created via NewGetStockLevelsQuery constructor",
)

// GetStockLevelsQuery retrieves per-location stock levels for one variant.
// Returns the ledger quantities alongside the derived availability numbers
// callers actually act on.
//
// Example:
//
//	query, err := NewGetStockLevelsQuery(variantID)
//	handler := NewGetStockLevelsQueryHandler(db)
//
//	levels, err := handler.Handle(ctx, query)
//	for _, level := range levels {
//	    fmt.Printf("%s: %d available\n", level.LocationName, level.Available)
//	}
type GetStockLevelsQuery struct {
	variantID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetStockLevelsQuery creates a query for a variant's stock levels.
func NewGetStockLevelsQuery(variantID kernel.UUID) (GetStockLevelsQuery, error) {
	if err := variantID.Validate(); err != nil {
		return GetStockLevelsQuery{}, err
	}

	return GetStockLevelsQuery{
		variantID: variantID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetStockLevelsQueryIsNotConstructed if validation fails.
func (q GetStockLevelsQuery) Validate() error {
	return q.guard.Validate(ErrGetStockLevelsQueryIsNotConstructed)
}

// VariantID returns the variant being queried.
func (q GetStockLevelsQuery) VariantID() kernel.UUID {
	return q.variantID
}

// GetStockLevelsQueryResponse represents one location's ledger in the read
// model. Available and CurrentBackorder are derived the same way the domain
// derives them: available never goes negative, and a backorder only exists
// while reservations exceed the on-hand quantity.
type GetStockLevelsQueryResponse struct {
	LocationID       kernel.UUID
	LocationName     string
	Position         int
	OnHand           int
	Reserved         int
	Available        int
	Backorderable    bool
	CurrentBackorder int
}
