// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"fulfillment/internal/core/application/eventhandlers"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to the order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// StockItemRepoFactory provides access to the stock item repository within a transaction.
	StockItemRepoFactory interface {
		StockItemRepository() ports.StockItemRepository
	}

	// StockLocationRepoFactory provides access to the stock location repository within a transaction.
	StockLocationRepoFactory interface {
		StockLocationRepository() ports.StockLocationRepository
	}

	// OrderUoW manages transactions for order mutations. The stock item
	// repository rides along because every unit-level order change is
	// reconciled against the ledger before commit.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
		StockItemRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// StockUoW manages transactions for ledger-only operations.
	StockUoW interface {
		TxManager
		StockItemRepoFactory
	}

	// StockUoWFactory creates new stock unit of work instances.
	StockUoWFactory interface {
		Create() StockUoW
	}

	// LocationUoW manages transactions for stock location operations.
	LocationUoW interface {
		TxManager
		StockLocationRepoFactory
	}

	// LocationUoWFactory creates new location unit of work instances.
	LocationUoWFactory interface {
		Create() LocationUoW
	}

	// UoW manages transactions spanning orders, stock items and locations.
	// Used by planning, which reads locations and writes both aggregates.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   orderRepo := uow.OrderRepository()
	//   stockRepo := uow.StockItemRepository()
	//   // ... perform operations
	//
	//   err = uow.Commit(ctx)
	UoW interface {
		TxManager
		OrderRepoFactory
		StockItemRepoFactory
		StockLocationRepoFactory
	}

	// UoWFactory creates new unit of work instances for cross-aggregate operations.
	UoWFactory interface {
		Create() UoW
	}
)

// reconcileAndSave dispatches the order's staged domain events against the
// unit of work's stock repository, then persists the order. Runs before
// Commit so a ledger conflict rolls back the order-side change too.
func reconcileAndSave(
	ctx context.Context,
	uow interface {
		OrderRepoFactory
		StockItemRepoFactory
	},
	aggregate *order.Order,
) error {
	dispatcher := eventhandlers.NewDispatcher()
	dispatcher.Register(eventhandlers.NewShipmentItemUpdatedHandler(uow.StockItemRepository()))
	dispatcher.Register(eventhandlers.NewShipmentShippedHandler(uow.StockItemRepository()))

	if err := dispatcher.Dispatch(ctx, aggregate.DomainEvents()); err != nil {
		return err
	}
	aggregate.ClearDomainEvents()

	return uow.OrderRepository().Update(ctx, aggregate)
}
