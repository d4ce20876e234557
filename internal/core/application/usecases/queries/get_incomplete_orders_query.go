package queries

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrGetIncompleteOrdersQueryIsNotConstructed = errors.New(
	"GetIncompleteOrdersQuery must be created via NewGetIncompleteOrdersQuery constructor",
)

// GetIncompleteOrdersQuery retrieves every order still moving through the
// checkout and fulfillment flow. Excludes completed and canceled orders to
// provide active workload visibility.
//
// Example:
//
//	query := NewGetIncompleteOrdersQuery()
//	handler := NewGetIncompleteOrdersQueryHandler(db)
//
//	orders, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to retrieve orders: %w", err)
//	}
type GetIncompleteOrdersQuery struct {
	guard guard.ConstructorGuard
}

// NewGetIncompleteOrdersQuery creates a query to retrieve incomplete orders.
// This is a parameterless query that fetches every non-terminal order.
func NewGetIncompleteOrdersQuery() GetIncompleteOrdersQuery {
	return GetIncompleteOrdersQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetIncompleteOrdersQueryIsNotConstructed if validation fails.
func (q GetIncompleteOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetIncompleteOrdersQueryIsNotConstructed)
}

// GetIncompleteOrdersQueryResponse represents one in-flight order in the
// read model. LineItemCount and UnitCount summarize the order's size without
// loading the aggregate.
type GetIncompleteOrdersQueryResponse struct {
	ID            kernel.UUID
	StoreID       kernel.UUID
	Currency      string
	Status        string
	LineItemCount int
	UnitCount     int
}
