package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/metrics"
)

// AllocateBackordersCommandHandler sweeps orders holding backordered units
// and flips to on-hand the units whose reservations inbound stock now backs.
//
// Flipping changes unit state only: the reservation already exists in the
// ledger, so no reconciliation event is raised. Coverage is consumed
// first-come-first-served in repository order across the swept orders.
type AllocateBackordersCommandHandler struct {
	uowFactory UoWFactory
}

// NewAllocateBackordersCommandHandler creates a handler for the backorder sweep.
func NewAllocateBackordersCommandHandler(uowFactory UoWFactory) AllocateBackordersCommandHandler {
	return AllocateBackordersCommandHandler{
		uowFactory: uowFactory,
	}
}

// variantAtLocation keys the sweep's coverage bookkeeping.
type variantAtLocation struct {
	variantID  kernel.UUID
	locationID kernel.UUID
}

// Handle runs the sweep in one transaction. Returns the number of units
// flipped to on hand.
func (h *AllocateBackordersCommandHandler) Handle(ctx context.Context, cmd AllocateBackordersCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orders, err := uow.OrderRepository().GetAllWithBackorderedUnits(ctx)
	if err != nil {
		return 0, err
	}
	if len(orders) == 0 {
		return 0, nil
	}

	coverage, err := h.computeCoverage(ctx, uow, orders)
	if err != nil {
		return 0, err
	}

	totalAllocated := 0
	for _, aggregate := range orders {
		allocated, allocErr := allocateOrderBackorders(aggregate, coverage)
		if allocErr != nil {
			return 0, allocErr
		}
		if allocated == 0 {
			continue
		}

		totalAllocated += allocated
		if err = uow.OrderRepository().Update(ctx, aggregate); err != nil {
			return 0, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	metrics.BackorderUnitsAllocatedTotal.Add(float64(totalAllocated))
	return totalAllocated, nil
}

// computeCoverage derives, per variant and location, how many units still
// marked backordered the ledger can now back: the units' count minus the
// ledger's current backorder quantity. A positive difference means stock
// arrived since the units were created.
func (h *AllocateBackordersCommandHandler) computeCoverage(
	ctx context.Context,
	uow UoW,
	orders []*order.Order,
) (map[variantAtLocation]int, error) {
	backorderedUnits := make(map[variantAtLocation]int)
	for _, aggregate := range orders {
		for _, shipment := range aggregate.Shipments() {
			if shipment.State() != order.ShipmentStatePending {
				continue
			}
			for _, unit := range shipment.Units() {
				if unit.State() != order.UnitBackordered {
					continue
				}
				key := variantAtLocation{unit.VariantID(), shipment.StockLocationID()}
				backorderedUnits[key]++
			}
		}
	}

	coverage := make(map[variantAtLocation]int, len(backorderedUnits))
	for key, count := range backorderedUnits {
		item, err := uow.StockItemRepository().GetByVariantAndLocation(ctx, key.variantID, key.locationID)
		if err != nil {
			return nil, err
		}

		covered := count - item.CurrentBackorderQuantity()
		if covered > 0 {
			coverage[key] = covered
		}
	}

	return coverage, nil
}

// allocateOrderBackorders flips covered units on one order's pending
// shipments, consuming from the shared coverage pool.
func allocateOrderBackorders(aggregate *order.Order, coverage map[variantAtLocation]int) (int, error) {
	total := 0
	for _, shipment := range aggregate.Shipments() {
		if shipment.State() != order.ShipmentStatePending {
			continue
		}

		coveredByVariant := make(map[kernel.UUID]int)
		for _, unit := range shipment.Units() {
			if unit.State() != order.UnitBackordered {
				continue
			}
			key := variantAtLocation{unit.VariantID(), shipment.StockLocationID()}
			if coverage[key] > 0 {
				if _, ok := coveredByVariant[unit.VariantID()]; !ok {
					coveredByVariant[unit.VariantID()] = coverage[key]
				}
			}
		}
		if len(coveredByVariant) == 0 {
			continue
		}

		before := make(map[kernel.UUID]int, len(coveredByVariant))
		for variantID, n := range coveredByVariant {
			before[variantID] = n
		}

		allocated, err := shipment.AllocateInventory(coveredByVariant)
		if err != nil {
			return 0, err
		}
		total += allocated

		for variantID, remaining := range coveredByVariant {
			key := variantAtLocation{variantID, shipment.StockLocationID()}
			coverage[key] -= before[variantID] - remaining
		}
	}
	return total, nil
}
