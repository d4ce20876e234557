package order

import "fulfillment/internal/core/domain/model/kernel"

// Event names used for dispatcher registration.
const (
	// EventShipmentItemUpdated is raised when inventory units are added to or
	// removed from a shipment.
	EventShipmentItemUpdated = "order.shipment_item_updated"

	// EventShipmentShipped is raised when a shipment physically leaves its
	// stock location.
	EventShipmentShipped = "shipment.shipped"
)

// DomainEvent is a typed fact raised by the Order aggregate. Events are
// accumulated on the root and dispatched synchronously by the application
// layer inside the same transaction as the mutation that raised them, so a
// failing handler rolls the order-side change back too.
type DomainEvent interface {
	// EventName returns the registration key for dispatcher routing.
	EventName() string
}

// ShipmentItemUpdated reports a change in the number of inventory units a
// shipment holds for one variant. A positive QuantityDelta means units were
// added (stock must be reserved); a negative delta means units were removed
// (the reservation must be released).
type ShipmentItemUpdated struct {
	// OrderID identifies the order owning the shipment.
	OrderID kernel.UUID
	// ShipmentID identifies the affected shipment.
	ShipmentID kernel.UUID
	// VariantID identifies the affected product variant.
	VariantID kernel.UUID
	// LocationID is the shipment's stock location.
	LocationID kernel.UUID
	// QuantityDelta is the signed change in unit count.
	QuantityDelta int
}

// EventName implements DomainEvent.
func (ShipmentItemUpdated) EventName() string {
	return EventShipmentItemUpdated
}

// VariantQuantity pairs a product variant with a unit count.
type VariantQuantity struct {
	VariantID kernel.UUID
	Quantity  int
}

// ShipmentShipped reports that a shipment left its stock location with the
// given per-variant quantities. Stock reconciliation confirms the shipment
// against the ledger, consuming the reservation and on-hand stock.
type ShipmentShipped struct {
	// OrderID identifies the order owning the shipment.
	OrderID kernel.UUID
	// ShipmentID identifies the shipped shipment.
	ShipmentID kernel.UUID
	// LocationID is the stock location the goods left from.
	LocationID kernel.UUID
	// Quantities lists the shipped unit count per variant.
	Quantities []VariantQuantity
}

// EventName implements DomainEvent.
func (ShipmentShipped) EventName() string {
	return EventShipmentShipped
}
