// Package order provides domain entities and business logic for the order
// lifecycle. It implements the Order aggregate root with its child entities
// and the checkout state machine.
//
// The package includes:
//   - Order: The aggregate root that owns line items, shipments and payments
//   - Status: A state machine enforcing the checkout path
//     Cart -> Address -> Delivery -> Payment -> Confirm -> Complete
//   - Shipment: A group of inventory units departing from one stock location
//   - InventoryUnit: A single physical unit with its own allocation state
//   - LineItem, Payment, Address: supporting entities and value objects
//
// Key business rules:
//   - Each forward transition has a content guard (line items present,
//     addresses set, shipping method chosen, payments covering the total,
//     inventory fully allocated)
//   - Canceling is possible from any non-terminal state unless a shipment
//     has already shipped
//   - Every unit-level change raises a domain event so the stock ledger can
//     be reconciled in the same transaction
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package order
