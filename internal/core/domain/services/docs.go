// Package services provides domain services that orchestrate business operations
// across multiple domain entities in the fulfillment system. It implements complex
// business workflows that don't naturally belong to a single aggregate root.
//
// The package includes:
//   - FulfillmentPlanner: A domain service that decides which stock locations
//     fulfill an order's line items, producing a plan of shipments
//   - Strategy: named ranking policies (NearestLocation, HighestStock,
//     SplitAcrossLocations) that order candidate locations for the planner
//
// Domain services coordinate between aggregates, implementing business logic that
// spans multiple bounded contexts following Domain-Driven Design principles.
package services
