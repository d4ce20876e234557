package stock

import (
	"time"

	"fulfillment/internal/core/domain/model/kernel"
)

// Well-known movement originators written by the ledger itself.
// Adjust accepts arbitrary caller-supplied originators (stock takes,
// inbound receipts) in addition to these.
const (
	// OriginatorInitialStock tags the opening balance of a new ledger entry.
	OriginatorInitialStock = "initial_stock"
	// OriginatorReservation tags a soft hold placed by Reserve.
	OriginatorReservation = "reservation"
	// OriginatorRelease tags a reservation returned by Release.
	OriginatorRelease = "release"
	// OriginatorShipmentConfirmation tags the physical departure recorded by ConfirmShipment.
	OriginatorShipmentConfirmation = "shipment_confirmation"
)

// Movement is one immutable record in the stock ledger's audit trail.
// Every mutating StockItem operation appends exactly one Movement carrying
// the deltas applied and a before/after snapshot of both quantities.
//
// Movements are append-only: once persisted they are never updated or
// deleted, so the trail replays to the current ledger state.
type Movement struct {
	// ID uniquely identifies the movement record.
	ID kernel.UUID
	// StockItemID links the record to its ledger entry.
	StockItemID kernel.UUID
	// Originator names the operation or actor that caused the movement.
	Originator string
	// ReferenceID carries the caller's correlation id (typically an order ID), when provided.
	ReferenceID *kernel.UUID
	// ShipmentID identifies the shipment for shipment confirmations.
	ShipmentID *kernel.UUID
	// OnHandDelta is the signed change applied to the on-hand quantity.
	OnHandDelta int
	// ReservedDelta is the signed change applied to the reserved quantity.
	ReservedDelta int
	// OnHandBefore and OnHandAfter snapshot the on-hand quantity around the movement.
	OnHandBefore int
	OnHandAfter  int
	// ReservedBefore and ReservedAfter snapshot the reserved quantity around the movement.
	ReservedBefore int
	ReservedAfter  int
	// OccurredAt is the clock reading at the moment of the mutation.
	OccurredAt time.Time
}
