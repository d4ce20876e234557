package services

import (
	"context"
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// LineDemand is one line item's requirement fed into the planner.
type LineDemand struct {
	// LineItemID identifies the line item being fulfilled
	LineItemID kernel.UUID
	// VariantID is the product variant required
	VariantID kernel.UUID
	// Quantity is the number of units required
	Quantity int
}

// PlannedItem is one allocation decision inside a plan: quantity units of a
// line item's variant, either available at the shipment's location or
// backordered against it.
type PlannedItem struct {
	// LineItemID identifies the line item the units satisfy
	LineItemID kernel.UUID
	// VariantID is the product variant
	VariantID kernel.UUID
	// Quantity is the number of units this decision covers
	Quantity int
	// Backordered reports whether the units await inbound stock
	Backordered bool
}

// PlannedShipment groups the planned items destined for one stock location.
// Callers materialize each entry as one Shipment on the order.
type PlannedShipment struct {
	// LocationID is the stock location the shipment departs from
	LocationID kernel.UUID
	// Items are the allocation decisions for this location
	Items []PlannedItem
}

// FulfillmentPlan is the planner's output: shipment groupings plus the
// demands no location could take even as a backorder.
type FulfillmentPlan struct {
	// Shipments are the planned location groupings, in first-allocation order
	Shipments []PlannedShipment
	// Unfulfillable are demands with no location to assign them to
	Unfulfillable []PlannedItem
}

// IsFullyFulfillable reports whether every demand is covered by available
// stock: no backordered item and no unfulfillable remainder.
func (p FulfillmentPlan) IsFullyFulfillable() bool {
	if len(p.Unfulfillable) > 0 {
		return false
	}
	for _, s := range p.Shipments {
		for _, item := range s.Items {
			if item.Backordered {
				return false
			}
		}
	}
	return true
}

// FulfillmentPlanner is a domain service that decides which stock locations
// fulfill an order's line items.
//
// Key responsibilities:
//   - Ranking candidate locations per variant through a pluggable Strategy
//   - Greedily allocating demand against ranked availability
//   - Placing unsatisfied remainders as backorders where permitted
//
// Business rules:
//   - Allocation per demand follows the strategy's ranking until the demand
//     is satisfied or availability is exhausted
//   - A remainder is backordered against the last-chosen location when that
//     location is backorderable; with no allocation at all, the best-ranked
//     backorderable location takes it
//   - A remainder with no backorderable target is flagged unfulfillable
//     without assuming a location
//   - Demands landing at the same location share one planned shipment
//
// The planner performs no mutation: it is a pure function over a stock
// snapshot the caller takes. Callers apply the plan by creating shipments
// and inventory units on the order inside one transaction.
type FulfillmentPlanner struct{}

// NewFulfillmentPlanner creates a new FulfillmentPlanner instance.
func NewFulfillmentPlanner() FulfillmentPlanner {
	return FulfillmentPlanner{}
}

// variantLocation keys the planner's availability tracker.
type variantLocation struct {
	variantID  kernel.UUID
	locationID kernel.UUID
}

// Plan computes a fulfillment plan for the given demands.
//
// Parameters:
//   - ctx: checked between demands; planning aborts before any further work
//     once canceled
//   - demands: the line items to fulfill, with positive quantities
//   - stock: per-variant availability snapshots across candidate locations
//   - strategy: the ranking policy, resolved from the StrategyRegistry
//
// Availability consumed by one demand is not offered to the next, so demands
// sharing a variant never double-count the same units.
func (p FulfillmentPlanner) Plan(
	ctx context.Context,
	demands []LineDemand,
	stock map[kernel.UUID][]LocationStock,
	strategy Strategy,
) (FulfillmentPlan, error) {
	if strategy == nil {
		return FulfillmentPlan{}, ErrUnknownStrategy
	}

	remaining := make(map[variantLocation]int)
	for variantID, candidates := range stock {
		for _, c := range candidates {
			remaining[variantLocation{variantID, c.LocationID}] = c.Available
		}
	}

	plan := FulfillmentPlan{}
	shipmentIndex := make(map[kernel.UUID]int)

	for _, demand := range demands {
		if err := ctx.Err(); err != nil {
			return FulfillmentPlan{}, err
		}
		if demand.Quantity <= 0 {
			return FulfillmentPlan{}, errs.NewValueIsInvalidErrorWithCause("quantity",
				fmt.Errorf("%d is not greater than 0", demand.Quantity))
		}

		candidates := adjustedCandidates(demand.VariantID, stock[demand.VariantID], remaining)
		ranked := strategy.Rank(demand.VariantID, candidates)

		left := demand.Quantity
		var lastChosen *LocationStock
		for i := range ranked {
			if left == 0 {
				break
			}
			take := min(left, ranked[i].Available)
			if take == 0 {
				continue
			}

			lastChosen = &ranked[i]
			left -= take
			remaining[variantLocation{demand.VariantID, ranked[i].LocationID}] -= take
			appendItem(&plan, shipmentIndex, ranked[i].LocationID, PlannedItem{
				LineItemID: demand.LineItemID,
				VariantID:  demand.VariantID,
				Quantity:   take,
			})
		}

		if left == 0 {
			continue
		}

		target := backorderTarget(lastChosen, ranked)
		if target == nil {
			plan.Unfulfillable = append(plan.Unfulfillable, PlannedItem{
				LineItemID:  demand.LineItemID,
				VariantID:   demand.VariantID,
				Quantity:    left,
				Backordered: true,
			})
			continue
		}

		appendItem(&plan, shipmentIndex, target.LocationID, PlannedItem{
			LineItemID:  demand.LineItemID,
			VariantID:   demand.VariantID,
			Quantity:    left,
			Backordered: true,
		})
	}

	return plan, nil
}

// adjustedCandidates rebuilds the variant's candidate list with availability
// already consumed by earlier demands subtracted.
func adjustedCandidates(variantID kernel.UUID, candidates []LocationStock, remaining map[variantLocation]int) []LocationStock {
	adjusted := make([]LocationStock, len(candidates))
	for i, c := range candidates {
		c.Available = remaining[variantLocation{variantID, c.LocationID}]
		adjusted[i] = c
	}
	return adjusted
}

// backorderTarget picks where an unsatisfied remainder goes: the last-chosen
// location when it accepts backorders; with no allocation at all, the
// best-ranked backorderable candidate.
func backorderTarget(lastChosen *LocationStock, ranked []LocationStock) *LocationStock {
	if lastChosen != nil {
		if lastChosen.Backorderable {
			return lastChosen
		}
		return nil
	}
	for i := range ranked {
		if ranked[i].Backorderable {
			return &ranked[i]
		}
	}
	return nil
}

// appendItem adds an item to the location's planned shipment, creating the
// shipment entry on first touch so grouping preserves allocation order.
func appendItem(plan *FulfillmentPlan, index map[kernel.UUID]int, locationID kernel.UUID, item PlannedItem) {
	i, ok := index[locationID]
	if !ok {
		plan.Shipments = append(plan.Shipments, PlannedShipment{LocationID: locationID})
		i = len(plan.Shipments) - 1
		index[locationID] = i
	}
	plan.Shipments[i].Items = append(plan.Shipments[i].Items, item)
}
