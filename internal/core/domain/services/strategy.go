package services

import (
	"errors"
	"sort"

	"fulfillment/internal/core/domain/model/kernel"
)

// ErrUnknownStrategy is returned when resolving a strategy name that is not
// registered. The strategy set is closed: callers choose from the registered
// names, never supply implementations of their own.
var ErrUnknownStrategy = errors.New("unknown fulfillment strategy")

// StrategyName identifies a registered fulfillment strategy.
type StrategyName string

const (
	// StrategyHighestStock prefers the location holding the most available
	// units per variant, concentrating shipments where stock is deepest.
	StrategyHighestStock StrategyName = "HighestStock"

	// StrategyNearestLocation prefers locations by their position sequence,
	// a deterministic proximity proxy.
	StrategyNearestLocation StrategyName = "NearestLocation"

	// StrategySplitAcrossLocations drains the shallowest stocks first,
	// spreading allocation across as many locations as it takes.
	StrategySplitAcrossLocations StrategyName = "SplitAcrossLocations"
)

// LocationStock is a read-only snapshot of one variant's availability at one
// location, taken by the caller before planning.
type LocationStock struct {
	// LocationID identifies the stock location
	LocationID kernel.UUID
	// Position is the location's creation-order sequence, used for
	// deterministic tie-breaks
	Position int
	// Available is countAvailable at snapshot time
	Available int
	// Backorderable reports whether the location accepts backorders for the variant
	Backorderable bool
}

// Strategy ranks candidate locations for a variant. The greedy allocation
// skeleton in FulfillmentPlanner is strategy-independent; only the ranking
// differs between policies.
type Strategy interface {
	Name() StrategyName
	Rank(variantID kernel.UUID, candidates []LocationStock) []LocationStock
}

// StrategyRegistry resolves strategy names to implementations.
// The set is fixed at construction.
type StrategyRegistry struct {
	strategies map[StrategyName]Strategy
}

// NewStrategyRegistry creates a registry holding every built-in strategy.
func NewStrategyRegistry() StrategyRegistry {
	return StrategyRegistry{
		strategies: map[StrategyName]Strategy{
			StrategyHighestStock:         highestStockStrategy{},
			StrategyNearestLocation:      nearestLocationStrategy{},
			StrategySplitAcrossLocations: splitAcrossLocationsStrategy{},
		},
	}
}

// Get resolves a strategy by name.
// Returns ErrUnknownStrategy for names outside the registered set.
func (r StrategyRegistry) Get(name StrategyName) (Strategy, error) {
	s, ok := r.strategies[name]
	if !ok {
		return nil, ErrUnknownStrategy
	}
	return s, nil
}

// highestStockStrategy ranks locations by descending available quantity,
// position ascending on ties.
type highestStockStrategy struct{}

func (highestStockStrategy) Name() StrategyName {
	return StrategyHighestStock
}

func (highestStockStrategy) Rank(_ kernel.UUID, candidates []LocationStock) []LocationStock {
	ranked := rankCopy(candidates)
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Available != ranked[j].Available {
			return ranked[i].Available > ranked[j].Available
		}
		return ranked[i].Position < ranked[j].Position
	})
	return ranked
}

// nearestLocationStrategy ranks locations by ascending position.
// Position stands in for physical distance; it is stable across runs, which
// keeps plans reproducible.
type nearestLocationStrategy struct{}

func (nearestLocationStrategy) Name() StrategyName {
	return StrategyNearestLocation
}

func (nearestLocationStrategy) Rank(_ kernel.UUID, candidates []LocationStock) []LocationStock {
	ranked := rankCopy(candidates)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Position < ranked[j].Position
	})
	return ranked
}

// splitAcrossLocationsStrategy ranks locations by ascending available
// quantity, position ascending on ties. Draining shallow stocks first spreads
// a line item across more locations than the other policies would.
type splitAcrossLocationsStrategy struct{}

func (splitAcrossLocationsStrategy) Name() StrategyName {
	return StrategySplitAcrossLocations
}

func (splitAcrossLocationsStrategy) Rank(_ kernel.UUID, candidates []LocationStock) []LocationStock {
	ranked := rankCopy(candidates)
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Available != ranked[j].Available {
			return ranked[i].Available < ranked[j].Available
		}
		return ranked[i].Position < ranked[j].Position
	})
	return ranked
}

func rankCopy(candidates []LocationStock) []LocationStock {
	ranked := make([]LocationStock, len(candidates))
	copy(ranked, candidates)
	return ranked
}
