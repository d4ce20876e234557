package order

import (
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

// Domain errors for order operations.
var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not
	// created through the NewOrder factory method.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")
	// ErrCannotModifyInTerminalState is returned when mutating a completed or canceled order.
	ErrCannotModifyInTerminalState = errors.New("cannot modify order in terminal state")
	// ErrCannotModifyAddress is returned when changing addresses past the Address step.
	ErrCannotModifyAddress = errors.New("cannot modify address past the address step")
	// ErrCannotModifyShipping is returned when changing the shipping method past the Delivery step.
	ErrCannotModifyShipping = errors.New("cannot modify shipping method past the delivery step")
	// ErrCannotModifyAfterCart is returned when applying promotions past the Cart step.
	ErrCannotModifyAfterCart = errors.New("cannot modify promotions after the cart step")
	// ErrCannotCancelWithShippedItems is returned when canceling an order with a shipped shipment.
	ErrCannotCancelWithShippedItems = errors.New("cannot cancel order with shipped items")
	// ErrShippingAddressRequired blocks Address -> Delivery without a shipping address.
	ErrShippingAddressRequired = errors.New("shipping address is required")
	// ErrBillingAddressRequired blocks Address -> Delivery without a billing address.
	ErrBillingAddressRequired = errors.New("billing address is required")
	// ErrShippingMethodRequired blocks Delivery -> Payment without a shipping method.
	ErrShippingMethodRequired = errors.New("shipping method is required")
	// ErrInsufficientPayment blocks Payment -> Confirm while payments do not cover the total.
	ErrInsufficientPayment = errors.New("insufficient payment")
	// ErrIncompleteInventoryAllocation blocks Confirm -> Complete while any
	// line item's quantity differs from its allocated unit count.
	ErrIncompleteInventoryAllocation = errors.New("incomplete inventory allocation")
	// ErrOrderIsEmpty blocks checkout of an order without line items.
	ErrOrderIsEmpty = errors.New("order has no line items")
	// ErrLineItemNotFound is returned when a referenced line item does not exist.
	ErrLineItemNotFound = errors.New("line item not found")
	// ErrShipmentNotFound is returned when a referenced shipment does not exist.
	ErrShipmentNotFound = errors.New("shipment not found")
)

// Order is the aggregate root coordinating the checkout lifecycle, the
// ordered line items, the shipments fulfilling them and the payments covering
// them.
//
// Order follows these invariants:
//   - Status transitions follow the state machine in Status, with
//     content-dependent guards enforced by Next and Cancel
//   - Once the order leaves Cart toward Complete, every line item's quantity
//     must equal the count of its inventory units across non-canceled
//     shipments before Complete is reached
//   - Child collections (line items, shipments, payments) are owned
//     exclusively by the root; all mutation goes through aggregate methods
//
// Order raises domain events (ShipmentItemUpdated, ShipmentShipped) for
// every unit-level change so the stock ledger can be reconciled inside the
// same transaction. Events accumulate on the root until the application
// layer dispatches and clears them.
type Order struct {
	// id is the unique identifier for the order
	id kernel.UUID
	// storeID is the store the order belongs to
	storeID kernel.UUID
	// currency is the ISO currency code all amounts are in
	currency string
	// status is the current state in the order lifecycle
	status Status
	// shippingAddress is the destination (nil until set)
	shippingAddress *Address
	// billingAddress is the payer's address (nil until set)
	billingAddress *Address
	// shippingMethodID is the chosen delivery method (nil until set)
	shippingMethodID *kernel.UUID
	// lineItems are the ordered positions
	lineItems []*LineItem
	// shipments fulfill the line items from stock locations
	shipments []*Shipment
	// payments cover the order total
	payments []*Payment
	// promotionCodes are the applied promotion identifiers
	promotionCodes []string
	// domainEvents accumulate until dispatched by the application layer
	domainEvents []DomainEvent
	// guard ensures the order was created via NewOrder
	guard guard.ConstructorGuard
}

// NewOrder creates an order in the Cart state.
//
// Parameters:
//   - id: unique identifier for the order
//   - storeID: the owning store
//   - currency: ISO 4217 code (3 letters)
func NewOrder(id, storeID kernel.UUID, currency string) (*Order, error) {
	o := &Order{
		status: StatusCart,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setStoreID(storeID),
		o.setCurrency(currency),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder reconstructs an Order aggregate from persistent storage,
// reattaching child entities and wiring shipment back-references.
func RestoreOrder(
	id, storeID kernel.UUID,
	currency string,
	status Status,
	shippingAddress, billingAddress *Address,
	shippingMethodID *kernel.UUID,
	lineItems []*LineItem,
	shipments []*Shipment,
	payments []*Payment,
	promotionCodes []string,
) (*Order, error) {
	if err := status.Validate(); err != nil {
		return nil, err
	}

	o := &Order{
		status:           status,
		shippingAddress:  shippingAddress,
		billingAddress:   billingAddress,
		shippingMethodID: shippingMethodID,
		lineItems:        lineItems,
		payments:         payments,
		promotionCodes:   promotionCodes,
		guard:            guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setStoreID(storeID),
		o.setCurrency(currency),
	); err != nil {
		return nil, err
	}

	for _, li := range lineItems {
		if err := li.Validate(); err != nil {
			return nil, err
		}
	}
	for _, p := range payments {
		if err := p.Validate(); err != nil {
			return nil, err
		}
	}
	for _, s := range shipments {
		if err := s.Validate(); err != nil {
			return nil, err
		}
		s.order = o
	}
	o.shipments = shipments

	return o, nil
}

// Validate ensures the Order instance was properly constructed through NewOrder.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// StoreID returns the owning store's identifier.
func (o *Order) StoreID() kernel.UUID {
	return o.storeID
}

// Currency returns the ISO currency code.
func (o *Order) Currency() string {
	return o.currency
}

// Status returns the current status of the order.
func (o *Order) Status() Status {
	return o.status
}

// ShippingAddress returns the destination address, nil until set.
func (o *Order) ShippingAddress() *Address {
	return o.shippingAddress
}

// BillingAddress returns the payer's address, nil until set.
func (o *Order) BillingAddress() *Address {
	return o.billingAddress
}

// ShippingMethodID returns the chosen delivery method, nil until set.
func (o *Order) ShippingMethodID() *kernel.UUID {
	return o.shippingMethodID
}

// LineItems returns the ordered positions.
// The returned slice is a copy; mutations go through the aggregate.
func (o *Order) LineItems() []*LineItem {
	result := make([]*LineItem, len(o.lineItems))
	copy(result, o.lineItems)
	return result
}

// Shipments returns the order's shipments.
// The returned slice is a copy; mutations go through the aggregate.
func (o *Order) Shipments() []*Shipment {
	result := make([]*Shipment, len(o.shipments))
	copy(result, o.shipments)
	return result
}

// Payments returns the order's payments.
// The returned slice is a copy; mutations go through the aggregate.
func (o *Order) Payments() []*Payment {
	result := make([]*Payment, len(o.payments))
	copy(result, o.payments)
	return result
}

// PromotionCodes returns the applied promotion identifiers.
func (o *Order) PromotionCodes() []string {
	result := make([]string, len(o.promotionCodes))
	copy(result, o.promotionCodes)
	return result
}

// Total returns the order total in minor currency units: the sum of line
// item subtotals. Promotion pricing is an external concern; applied codes
// are tracked but do not change the total here.
func (o *Order) Total() int64 {
	var total int64
	for _, li := range o.lineItems {
		total += li.Subtotal()
	}
	return total
}

// PaymentTotal returns the sum of payments still counting toward the order
// total (pending and captured; failed and voided are excluded).
func (o *Order) PaymentTotal() int64 {
	var total int64
	for _, p := range o.payments {
		if p.countsTowardTotal() {
			total += p.Amount()
		}
	}
	return total
}

// LineItem returns the line item with the given id.
func (o *Order) LineItem(lineItemID kernel.UUID) (*LineItem, error) {
	for _, li := range o.lineItems {
		if li.ID().IsEqual(lineItemID) {
			return li, nil
		}
	}
	return nil, ErrLineItemNotFound
}

// Shipment returns the shipment with the given id.
func (o *Order) Shipment(shipmentID kernel.UUID) (*Shipment, error) {
	for _, s := range o.shipments {
		if s.ID().IsEqual(shipmentID) {
			return s, nil
		}
	}
	return nil, ErrShipmentNotFound
}

// AllocatedUnitCount returns the number of inventory units satisfying the
// line item across all non-canceled shipments.
func (o *Order) AllocatedUnitCount(lineItemID kernel.UUID) int {
	count := 0
	for _, s := range o.shipments {
		if s.State() == ShipmentStateCanceled {
			continue
		}
		count += s.unitCountForLineItem(lineItemID)
	}
	return count
}

// Next advances the order one step along the checkout path.
//
// Content guards per transition:
//   - Cart -> Address: at least one line item (ErrOrderIsEmpty)
//   - Address -> Delivery: shipping and billing address set
//   - Delivery -> Payment: shipping method assigned
//   - Payment -> Confirm: valid payments cover the total (ErrInsufficientPayment)
//   - Confirm -> Complete: every line item fully allocated
//     (ErrIncompleteInventoryAllocation)
func (o *Order) Next() error {
	if err := o.Validate(); err != nil {
		return err
	}

	next, err := o.status.Next()
	if err != nil {
		return err
	}

	switch next {
	case StatusAddress:
		if len(o.lineItems) == 0 {
			return ErrOrderIsEmpty
		}
	case StatusDelivery:
		if o.shippingAddress == nil {
			return ErrShippingAddressRequired
		}
		if o.billingAddress == nil {
			return ErrBillingAddressRequired
		}
	case StatusPayment:
		if o.shippingMethodID == nil {
			return ErrShippingMethodRequired
		}
	case StatusConfirm:
		if o.PaymentTotal() < o.Total() {
			return ErrInsufficientPayment
		}
	case StatusComplete:
		for _, li := range o.lineItems {
			if o.AllocatedUnitCount(li.ID()) != li.Quantity() {
				return ErrIncompleteInventoryAllocation
			}
		}
	}

	o.status = next
	return nil
}

// Cancel voids the order from any non-terminal state.
//
// Fails with ErrCannotCancelWithShippedItems when any shipment already left
// its stock location. On success every non-shipped shipment is canceled and
// release events are raised for the units it held, so reconciliation returns
// the reservations to the ledger.
func (o *Order) Cancel() error {
	if err := o.Validate(); err != nil {
		return err
	}

	for _, s := range o.shipments {
		if s.State() == ShipmentStateShipped {
			return ErrCannotCancelWithShippedItems
		}
	}

	next, err := o.status.Cancel()
	if err != nil {
		return err
	}

	for _, s := range o.shipments {
		if s.State() == ShipmentStateCanceled {
			continue
		}
		for _, vq := range s.variantQuantities() {
			o.raiseEvent(ShipmentItemUpdated{
				OrderID:       o.id,
				ShipmentID:    s.ID(),
				VariantID:     vq.VariantID,
				LocationID:    s.StockLocationID(),
				QuantityDelta: -vq.Quantity,
			})
		}
		s.cancel()
	}

	o.status = next
	return nil
}

// AddLineItem adds quantity of a variant to the order, merging into an
// existing line item for the same variant. Returns the affected line item.
func (o *Order) AddLineItem(variantID kernel.UUID, sku string, quantity int, unitPrice int64) (*LineItem, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}
	if o.status.IsTerminal() {
		return nil, ErrCannotModifyInTerminalState
	}

	for _, li := range o.lineItems {
		if li.VariantID().IsEqual(variantID) {
			if err := li.setQuantity(li.Quantity() + quantity); err != nil {
				return nil, err
			}
			return li, nil
		}
	}

	li, err := NewLineItem(kernel.NewUUID(), variantID, sku, quantity, unitPrice)
	if err != nil {
		return nil, err
	}

	o.lineItems = append(o.lineItems, li)
	return li, nil
}

// UpdateLineItemQuantity changes a line item's quantity.
//
// On a decrease, excess inventory units are removed from their shipments
// newest-allocated-first, and a release event is raised per affected
// shipment and variant; the planner is not re-invoked. Units in shipped
// shipments cannot be removed; a decrease below the shipped quantity fails.
func (o *Order) UpdateLineItemQuantity(lineItemID kernel.UUID, quantity int) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if o.status.IsTerminal() {
		return ErrCannotModifyInTerminalState
	}

	li, err := o.LineItem(lineItemID)
	if err != nil {
		return err
	}

	allocated := o.AllocatedUnitCount(lineItemID)
	if excess := allocated - quantity; excess > 0 {
		if err := o.removeUnits(li, excess); err != nil {
			return err
		}
	}

	return li.setQuantity(quantity)
}

// RemoveLineItem removes a line item and all its inventory units from the
// order, raising release events for every unit removed from a shipment.
func (o *Order) RemoveLineItem(lineItemID kernel.UUID) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if o.status.IsTerminal() {
		return ErrCannotModifyInTerminalState
	}

	li, err := o.LineItem(lineItemID)
	if err != nil {
		return err
	}

	if allocated := o.AllocatedUnitCount(lineItemID); allocated > 0 {
		if err := o.removeUnits(li, allocated); err != nil {
			return err
		}
	}

	for i, item := range o.lineItems {
		if item.ID().IsEqual(lineItemID) {
			o.lineItems = append(o.lineItems[:i], o.lineItems[i+1:]...)
			break
		}
	}
	return nil
}

// SetShippingAddress sets the destination address.
// Rejected once the order has moved past the Address step.
func (o *Order) SetShippingAddress(address Address) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if err := address.Validate(); err != nil {
		return err
	}
	if o.status != StatusCart && o.status != StatusAddress {
		return ErrCannotModifyAddress
	}

	o.shippingAddress = &address
	return nil
}

// SetBillingAddress sets the payer's address.
// Rejected once the order has moved past the Address step.
func (o *Order) SetBillingAddress(address Address) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if err := address.Validate(); err != nil {
		return err
	}
	if o.status != StatusCart && o.status != StatusAddress {
		return ErrCannotModifyAddress
	}

	o.billingAddress = &address
	return nil
}

// SetShippingMethod assigns the delivery method.
// Rejected once the order has moved past the Delivery step.
func (o *Order) SetShippingMethod(shippingMethodID kernel.UUID) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if err := shippingMethodID.Validate(); err != nil {
		return err
	}
	if o.status != StatusCart && o.status != StatusAddress && o.status != StatusDelivery {
		return ErrCannotModifyShipping
	}

	o.shippingMethodID = &shippingMethodID
	return nil
}

// ApplyPromotion records a promotion code on the order.
// Rejected once the order has moved past the Cart step.
func (o *Order) ApplyPromotion(code string) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if code == "" {
		return errs.NewValueIsRequiredError("code")
	}
	if o.status != StatusCart {
		return ErrCannotModifyAfterCart
	}

	o.promotionCodes = append(o.promotionCodes, code)
	return nil
}

// AddPayment records a pending payment against the order.
func (o *Order) AddPayment(amount int64) (*Payment, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}
	if o.status.IsTerminal() {
		return nil, ErrCannotModifyInTerminalState
	}

	p, err := NewPayment(kernel.NewUUID(), amount)
	if err != nil {
		return nil, err
	}

	o.payments = append(o.payments, p)
	return p, nil
}

// AddShipment creates a pending shipment departing from the given stock
// location and returns it.
func (o *Order) AddShipment(stockLocationID kernel.UUID) (*Shipment, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}
	if o.status.IsTerminal() {
		return nil, ErrCannotModifyInTerminalState
	}

	s, err := newShipment(kernel.NewUUID(), stockLocationID, o)
	if err != nil {
		return nil, err
	}

	o.shipments = append(o.shipments, s)
	return s, nil
}

// AddItemToShipment allocates quantity inventory units of a line item into a
// pending shipment. backordered chooses the initial unit state when the
// location cannot cover the quantity from available stock.
//
// Raises a ShipmentItemUpdated event with a positive delta so reconciliation
// reserves the stock inside the same transaction. The total unit count for
// the line item across non-canceled shipments may never exceed its quantity.
func (o *Order) AddItemToShipment(shipmentID, lineItemID kernel.UUID, quantity int, backordered bool) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if o.status.IsTerminal() {
		return ErrCannotModifyInTerminalState
	}
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%d is not greater than 0", quantity))
	}

	s, err := o.Shipment(shipmentID)
	if err != nil {
		return err
	}
	if s.State() != ShipmentStatePending {
		return ErrShipmentNotPending
	}

	li, err := o.LineItem(lineItemID)
	if err != nil {
		return err
	}

	if o.AllocatedUnitCount(lineItemID)+quantity > li.Quantity() {
		return errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("allocating %d units would exceed the line item quantity of %d", quantity, li.Quantity()))
	}

	state := UnitOnHand
	if backordered {
		state = UnitBackordered
	}

	units := make([]*InventoryUnit, 0, quantity)
	for range quantity {
		unit, unitErr := NewInventoryUnit(kernel.NewUUID(), lineItemID, li.VariantID(), state)
		if unitErr != nil {
			return unitErr
		}
		units = append(units, unit)
	}
	s.addUnits(units)

	o.raiseEvent(ShipmentItemUpdated{
		OrderID:       o.id,
		ShipmentID:    s.ID(),
		VariantID:     li.VariantID(),
		LocationID:    s.StockLocationID(),
		QuantityDelta: quantity,
	})

	return nil
}

// DomainEvents returns the events raised since the last clear, oldest first.
func (o *Order) DomainEvents() []DomainEvent {
	result := make([]DomainEvent, len(o.domainEvents))
	copy(result, o.domainEvents)
	return result
}

// ClearDomainEvents drops the accumulated events.
// The application layer calls this after dispatching.
func (o *Order) ClearDomainEvents() {
	o.domainEvents = nil
}

// raiseEvent stages a domain event for dispatch.
func (o *Order) raiseEvent(event DomainEvent) {
	o.domainEvents = append(o.domainEvents, event)
}

// removeUnits removes count units of the line item from non-shipped
// shipments, newest shipment first and newest unit first within each,
// raising release events per affected shipment.
func (o *Order) removeUnits(li *LineItem, count int) error {
	remaining := count
	for i := len(o.shipments) - 1; i >= 0 && remaining > 0; i-- {
		s := o.shipments[i]
		if s.State() == ShipmentStateShipped || s.State() == ShipmentStateCanceled {
			continue
		}
		removed := s.removeNewestUnits(li.ID(), remaining)
		if removed == 0 {
			continue
		}
		remaining -= removed

		o.raiseEvent(ShipmentItemUpdated{
			OrderID:       o.id,
			ShipmentID:    s.ID(),
			VariantID:     li.VariantID(),
			LocationID:    s.StockLocationID(),
			QuantityDelta: -removed,
		})
	}

	if remaining > 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%d units are already shipped and cannot be removed", remaining))
	}
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setStoreID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.storeID = id
	return nil
}

func (o *Order) setCurrency(currency string) error {
	if len(currency) != 3 {
		return errs.NewValueIsInvalidErrorWithCause("currency",
			fmt.Errorf("%q is not a 3-letter ISO currency code", currency))
	}
	o.currency = currency
	return nil
}
