package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/pkg/metrics"
)

// PlanFulfillmentCommandHandler computes a fulfillment plan for the order's
// unallocated demand and applies it: planned shipments become Shipment
// entities, planned items become InventoryUnits, and the reservations they
// imply are reconciled against the stock ledger before commit.
type PlanFulfillmentCommandHandler struct {
	uowFactory UoWFactory
	planner    services.FulfillmentPlanner
	registry   services.StrategyRegistry
}

// NewPlanFulfillmentCommandHandler creates a handler wired to the planner
// and the closed strategy registry.
func NewPlanFulfillmentCommandHandler(uowFactory UoWFactory) PlanFulfillmentCommandHandler {
	return PlanFulfillmentCommandHandler{
		uowFactory: uowFactory,
		planner:    services.NewFulfillmentPlanner(),
		registry:   services.NewStrategyRegistry(),
	}
}

// Handle plans and applies fulfillment in one transaction.
//
// The returned plan reports what was decided, including unfulfillable
// remainders, which stay unallocated on the order. Already-allocated
// quantities are excluded from the demand, so re-planning an order is safe.
func (h *PlanFulfillmentCommandHandler) Handle(ctx context.Context, cmd PlanFulfillmentCommand) (services.FulfillmentPlan, error) {
	if err := cmd.Validate(); err != nil {
		return services.FulfillmentPlan{}, err
	}

	strategy, err := h.registry.Get(cmd.StrategyName())
	if err != nil {
		return services.FulfillmentPlan{}, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return services.FulfillmentPlan{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	aggregate, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return services.FulfillmentPlan{}, err
	}

	demands := unallocatedDemands(aggregate)
	if len(demands) == 0 {
		return services.FulfillmentPlan{}, nil
	}

	stock, err := h.snapshotStock(ctx, uow, demands)
	if err != nil {
		return services.FulfillmentPlan{}, err
	}

	plan, err := h.planner.Plan(ctx, demands, stock, strategy)
	if err != nil {
		return services.FulfillmentPlan{}, err
	}

	if err = applyPlan(aggregate, plan); err != nil {
		return services.FulfillmentPlan{}, err
	}

	if err = reconcileAndSave(ctx, uow, aggregate); err != nil {
		return services.FulfillmentPlan{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return services.FulfillmentPlan{}, err
	}

	metrics.PlansComputedTotal.WithLabelValues(string(cmd.StrategyName())).Inc()
	return plan, nil
}

// unallocatedDemands builds the planner input from line item quantities not
// yet covered by inventory units.
func unallocatedDemands(aggregate *order.Order) []services.LineDemand {
	var demands []services.LineDemand
	for _, li := range aggregate.LineItems() {
		remaining := li.Quantity() - aggregate.AllocatedUnitCount(li.ID())
		if remaining <= 0 {
			continue
		}
		demands = append(demands, services.LineDemand{
			LineItemID: li.ID(),
			VariantID:  li.VariantID(),
			Quantity:   remaining,
		})
	}
	return demands
}

// snapshotStock reads every candidate ledger for the demanded variants,
// annotated with location positions for deterministic tie-breaks.
func (h *PlanFulfillmentCommandHandler) snapshotStock(
	ctx context.Context,
	uow UoW,
	demands []services.LineDemand,
) (map[kernel.UUID][]services.LocationStock, error) {
	locations, err := uow.StockLocationRepository().GetAll(ctx)
	if err != nil {
		return nil, err
	}
	positions := make(map[kernel.UUID]int, len(locations))
	for _, l := range locations {
		positions[l.ID()] = l.Position()
	}

	stockByVariant := make(map[kernel.UUID][]services.LocationStock, len(demands))
	for _, demand := range demands {
		if _, done := stockByVariant[demand.VariantID]; done {
			continue
		}

		items, itemsErr := uow.StockItemRepository().GetAllByVariant(ctx, demand.VariantID)
		if itemsErr != nil {
			return nil, itemsErr
		}

		candidates := make([]services.LocationStock, 0, len(items))
		for _, item := range items {
			candidates = append(candidates, services.LocationStock{
				LocationID:    item.LocationID(),
				Position:      positions[item.LocationID()],
				Available:     item.CountAvailable(),
				Backorderable: item.IsBackorderable(),
			})
		}
		stockByVariant[demand.VariantID] = candidates
	}

	return stockByVariant, nil
}

// applyPlan materializes the planned shipments and units on the order.
// Unfulfillable remainders are skipped; they stay unallocated.
func applyPlan(aggregate *order.Order, plan services.FulfillmentPlan) error {
	for _, planned := range plan.Shipments {
		shipment, err := aggregate.AddShipment(planned.LocationID)
		if err != nil {
			return err
		}
		for _, item := range planned.Items {
			if err = aggregate.AddItemToShipment(shipment.ID(), item.LineItemID, item.Quantity, item.Backordered); err != nil {
				return err
			}
		}
	}
	return nil
}
