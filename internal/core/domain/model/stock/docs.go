// Package stock provides the per-location inventory ledger for the
// fulfillment system. It implements the StockItem aggregate root that tracks
// on-hand and reserved quantity for one product variant at one stock
// location, with backorder support and an append-only movement audit trail.
//
// Key business rules:
//   - Reservations are soft holds and never decrement on-hand quantity
//   - A non-backorderable item never reserves past its available count
//   - Backorders are capped by an optional per-item ceiling
//   - Shipment confirmation consumes reservation and on-hand stock atomically
//   - Every mutation appends an immutable Movement record; the trail is never rewritten
//
// Concurrent reservations against the same item must be serialized by the
// persistence layer (row locking or optimistic retry); the aggregate itself
// assumes it is the only writer within a transaction.
package stock
