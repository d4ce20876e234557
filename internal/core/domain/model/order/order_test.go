package order_test

import (
	"testing"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test helper functions.
func createCartOrder(t *testing.T) *order.Order {
	t.Helper()
	o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), "USD")
	require.NoError(t, err)
	require.NotNil(t, o)
	return o
}

func createValidAddress(t *testing.T) order.Address {
	t.Helper()
	a, err := order.NewAddress("Alice Tester", "1 Main St", "Springfield", "12345", "US")
	require.NoError(t, err)
	return a
}

func addLineItem(t *testing.T, o *order.Order, quantity int, unitPrice int64) *order.LineItem {
	t.Helper()
	li, err := o.AddLineItem(kernel.NewUUID(), "SKU-1", quantity, unitPrice)
	require.NoError(t, err)
	return li
}

// advanceToConfirm walks a cart order with one line item through the
// checkout steps up to Confirm.
func advanceToConfirm(t *testing.T, o *order.Order) {
	t.Helper()
	require.NoError(t, o.SetShippingAddress(createValidAddress(t)))
	require.NoError(t, o.SetBillingAddress(createValidAddress(t)))
	require.NoError(t, o.SetShippingMethod(kernel.NewUUID()))
	_, err := o.AddPayment(o.Total())
	require.NoError(t, err)

	require.NoError(t, o.Next()) // Cart -> Address
	require.NoError(t, o.Next()) // Address -> Delivery
	require.NoError(t, o.Next()) // Delivery -> Payment
	require.NoError(t, o.Next()) // Payment -> Confirm
	require.Equal(t, order.StatusConfirm, o.Status())
}

// allocateFully puts every unit of the line item into a single on-hand shipment.
func allocateFully(t *testing.T, o *order.Order, li *order.LineItem) *order.Shipment {
	t.Helper()
	s, err := o.AddShipment(kernel.NewUUID())
	require.NoError(t, err)
	require.NoError(t, o.AddItemToShipment(s.ID(), li.ID(), li.Quantity(), false))
	return s
}

func TestNewOrder(t *testing.T) {
	t.Run("should create order in cart state", func(t *testing.T) {
		id := kernel.NewUUID()
		storeID := kernel.NewUUID()

		o, err := order.NewOrder(id, storeID, "EUR")

		require.NoError(t, err)
		require.NoError(t, o.Validate())
		assert.True(t, o.ID().IsEqual(id))
		assert.True(t, o.StoreID().IsEqual(storeID))
		assert.Equal(t, "EUR", o.Currency())
		assert.Equal(t, order.StatusCart, o.Status())
		assert.Empty(t, o.LineItems())
		assert.Empty(t, o.Shipments())
		assert.Empty(t, o.Payments())
	})

	t.Run("should return error for invalid UUID", func(t *testing.T) {
		var invalidID kernel.UUID

		o, err := order.NewOrder(invalidID, kernel.NewUUID(), "USD")

		require.Error(t, err)
		assert.Nil(t, o)
	})

	t.Run("should return error for invalid currency", func(t *testing.T) {
		for _, currency := range []string{"", "US", "DOLLARS"} {
			o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), currency)

			require.Error(t, err, currency)
			assert.Nil(t, o)
			assert.Contains(t, err.Error(), "currency")
		}
	})
}

func TestOrderValidate(t *testing.T) {
	t.Run("should reject zero-value order", func(t *testing.T) {
		var o order.Order

		assert.ErrorIs(t, o.Validate(), order.ErrOrderIsNotConstructed)
	})

	t.Run("should reject nil order", func(t *testing.T) {
		var o *order.Order

		assert.ErrorIs(t, o.Validate(), order.ErrOrderIsNotConstructed)
	})
}

func TestOrderNext(t *testing.T) {
	t.Run("should reject leaving cart without line items", func(t *testing.T) {
		o := createCartOrder(t)

		err := o.Next()

		assert.ErrorIs(t, err, order.ErrOrderIsEmpty)
		assert.Equal(t, order.StatusCart, o.Status())
	})

	t.Run("should reject delivery step without addresses", func(t *testing.T) {
		o := createCartOrder(t)
		addLineItem(t, o, 1, 1000)
		require.NoError(t, o.Next())

		err := o.Next()

		assert.ErrorIs(t, err, order.ErrShippingAddressRequired)

		require.NoError(t, o.SetShippingAddress(createValidAddress(t)))
		err = o.Next()

		assert.ErrorIs(t, err, order.ErrBillingAddressRequired)
	})

	t.Run("should reject payment step without shipping method", func(t *testing.T) {
		o := createCartOrder(t)
		addLineItem(t, o, 1, 1000)
		require.NoError(t, o.SetShippingAddress(createValidAddress(t)))
		require.NoError(t, o.SetBillingAddress(createValidAddress(t)))
		require.NoError(t, o.Next())
		require.NoError(t, o.Next())

		err := o.Next()

		assert.ErrorIs(t, err, order.ErrShippingMethodRequired)
	})

	t.Run("should reject confirm while payments do not cover the total", func(t *testing.T) {
		o := createCartOrder(t)
		addLineItem(t, o, 2, 1500)
		require.NoError(t, o.SetShippingAddress(createValidAddress(t)))
		require.NoError(t, o.SetBillingAddress(createValidAddress(t)))
		require.NoError(t, o.SetShippingMethod(kernel.NewUUID()))
		_, err := o.AddPayment(2999)
		require.NoError(t, err)
		require.NoError(t, o.Next())
		require.NoError(t, o.Next())
		require.NoError(t, o.Next())

		err = o.Next()

		assert.ErrorIs(t, err, order.ErrInsufficientPayment)
	})

	t.Run("should ignore failed and voided payments when covering the total", func(t *testing.T) {
		o := createCartOrder(t)
		addLineItem(t, o, 1, 1000)
		failed, err := o.AddPayment(1000)
		require.NoError(t, err)
		require.NoError(t, failed.Fail())

		assert.Equal(t, int64(0), o.PaymentTotal())
	})

	t.Run("should reject completion with unallocated line items", func(t *testing.T) {
		o := createCartOrder(t)
		addLineItem(t, o, 3, 1000)
		advanceToConfirm(t, o)

		err := o.Next()

		assert.ErrorIs(t, err, order.ErrIncompleteInventoryAllocation)
	})

	t.Run("should complete a fully paid fully allocated order", func(t *testing.T) {
		o := createCartOrder(t)
		li := addLineItem(t, o, 3, 1000)
		allocateFully(t, o, li)
		advanceToConfirm(t, o)

		err := o.Next()

		require.NoError(t, err)
		assert.Equal(t, order.StatusComplete, o.Status())
	})

	t.Run("should reject advancing a terminal order", func(t *testing.T) {
		o := createCartOrder(t)
		require.NoError(t, o.Cancel())

		assert.Error(t, o.Next())
	})
}

func TestOrderCancel(t *testing.T) {
	t.Run("should cancel a cart order", func(t *testing.T) {
		o := createCartOrder(t)

		err := o.Cancel()

		require.NoError(t, err)
		assert.Equal(t, order.StatusCanceled, o.Status())
	})

	t.Run("should cancel shipments and raise release events", func(t *testing.T) {
		o := createCartOrder(t)
		li := addLineItem(t, o, 4, 500)
		s := allocateFully(t, o, li)
		o.ClearDomainEvents()

		err := o.Cancel()

		require.NoError(t, err)
		assert.Equal(t, order.ShipmentStateCanceled, s.State())

		events := o.DomainEvents()
		require.Len(t, events, 1)
		updated, ok := events[0].(order.ShipmentItemUpdated)
		require.True(t, ok)
		assert.Equal(t, -4, updated.QuantityDelta)
		assert.True(t, updated.ShipmentID.IsEqual(s.ID()))
		assert.True(t, updated.VariantID.IsEqual(li.VariantID()))
	})

	t.Run("should reject canceling with shipped items", func(t *testing.T) {
		o := createCartOrder(t)
		li := addLineItem(t, o, 1, 500)
		s := allocateFully(t, o, li)
		require.NoError(t, s.Ship("TRACK-1"))

		err := o.Cancel()

		assert.ErrorIs(t, err, order.ErrCannotCancelWithShippedItems)
	})

	t.Run("should reject canceling twice", func(t *testing.T) {
		o := createCartOrder(t)
		require.NoError(t, o.Cancel())

		assert.Error(t, o.Cancel())
	})
}

func TestOrderAddLineItem(t *testing.T) {
	t.Run("should add a line item", func(t *testing.T) {
		o := createCartOrder(t)

		li, err := o.AddLineItem(kernel.NewUUID(), "SKU-7", 2, 1250)

		require.NoError(t, err)
		assert.Equal(t, 2, li.Quantity())
		assert.Equal(t, int64(2500), o.Total())
	})

	t.Run("should merge quantities for the same variant", func(t *testing.T) {
		o := createCartOrder(t)
		variantID := kernel.NewUUID()

		first, err := o.AddLineItem(variantID, "SKU-7", 2, 1250)
		require.NoError(t, err)
		second, err := o.AddLineItem(variantID, "SKU-7", 3, 1250)
		require.NoError(t, err)

		assert.True(t, first.ID().IsEqual(second.ID()))
		assert.Equal(t, 5, second.Quantity())
		assert.Len(t, o.LineItems(), 1)
	})

	t.Run("should reject modification in terminal state", func(t *testing.T) {
		o := createCartOrder(t)
		require.NoError(t, o.Cancel())

		_, err := o.AddLineItem(kernel.NewUUID(), "SKU-7", 1, 100)

		assert.ErrorIs(t, err, order.ErrCannotModifyInTerminalState)
	})
}

func TestOrderUpdateLineItemQuantity(t *testing.T) {
	t.Run("should change the quantity", func(t *testing.T) {
		o := createCartOrder(t)
		li := addLineItem(t, o, 2, 1000)

		err := o.UpdateLineItemQuantity(li.ID(), 5)

		require.NoError(t, err)
		assert.Equal(t, 5, li.Quantity())
	})

	t.Run("should trim excess units newest-first and raise release events", func(t *testing.T) {
		o := createCartOrder(t)
		li := addLineItem(t, o, 5, 1000)
		s := allocateFully(t, o, li)
		o.ClearDomainEvents()

		err := o.UpdateLineItemQuantity(li.ID(), 2)

		require.NoError(t, err)
		assert.Equal(t, 2, li.Quantity())
		assert.Len(t, s.Units(), 2)

		events := o.DomainEvents()
		require.Len(t, events, 1)
		updated, ok := events[0].(order.ShipmentItemUpdated)
		require.True(t, ok)
		assert.Equal(t, -3, updated.QuantityDelta)
	})

	t.Run("should reject reducing below the shipped quantity", func(t *testing.T) {
		o := createCartOrder(t)
		li := addLineItem(t, o, 3, 1000)
		s := allocateFully(t, o, li)
		require.NoError(t, s.Ship("TRACK-9"))

		err := o.UpdateLineItemQuantity(li.ID(), 1)

		assert.Error(t, err)
	})

	t.Run("should return error for unknown line item", func(t *testing.T) {
		o := createCartOrder(t)

		err := o.UpdateLineItemQuantity(kernel.NewUUID(), 1)

		assert.ErrorIs(t, err, order.ErrLineItemNotFound)
	})
}

func TestOrderRemoveLineItem(t *testing.T) {
	t.Run("should remove the line item and its units", func(t *testing.T) {
		o := createCartOrder(t)
		li := addLineItem(t, o, 2, 1000)
		s := allocateFully(t, o, li)
		o.ClearDomainEvents()

		err := o.RemoveLineItem(li.ID())

		require.NoError(t, err)
		assert.Empty(t, o.LineItems())
		assert.Empty(t, s.Units())
		require.Len(t, o.DomainEvents(), 1)
	})

	t.Run("should return error for unknown line item", func(t *testing.T) {
		o := createCartOrder(t)

		err := o.RemoveLineItem(kernel.NewUUID())

		assert.ErrorIs(t, err, order.ErrLineItemNotFound)
	})
}

func TestOrderMutationGuards(t *testing.T) {
	t.Run("should reject address changes past the address step", func(t *testing.T) {
		o := createCartOrder(t)
		addLineItem(t, o, 1, 1000)
		require.NoError(t, o.SetShippingAddress(createValidAddress(t)))
		require.NoError(t, o.SetBillingAddress(createValidAddress(t)))
		require.NoError(t, o.Next()) // Cart -> Address
		require.NoError(t, o.Next()) // Address -> Delivery

		err := o.SetShippingAddress(createValidAddress(t))

		assert.ErrorIs(t, err, order.ErrCannotModifyAddress)
	})

	t.Run("should reject shipping method changes past the delivery step", func(t *testing.T) {
		o := createCartOrder(t)
		addLineItem(t, o, 1, 1000)
		advanceToConfirm(t, o)

		err := o.SetShippingMethod(kernel.NewUUID())

		assert.ErrorIs(t, err, order.ErrCannotModifyShipping)
	})

	t.Run("should reject promotions after the cart step", func(t *testing.T) {
		o := createCartOrder(t)
		require.NoError(t, o.ApplyPromotion("WELCOME10"))
		addLineItem(t, o, 1, 1000)
		require.NoError(t, o.Next())

		err := o.ApplyPromotion("SECOND")

		assert.ErrorIs(t, err, order.ErrCannotModifyAfterCart)
		assert.Equal(t, []string{"WELCOME10"}, o.PromotionCodes())
	})

	t.Run("should reject empty promotion code", func(t *testing.T) {
		o := createCartOrder(t)

		assert.Error(t, o.ApplyPromotion(""))
	})
}

func TestOrderAddItemToShipment(t *testing.T) {
	t.Run("should allocate units and raise a reservation event", func(t *testing.T) {
		o := createCartOrder(t)
		li := addLineItem(t, o, 3, 1000)
		s, err := o.AddShipment(kernel.NewUUID())
		require.NoError(t, err)
		o.ClearDomainEvents()

		err = o.AddItemToShipment(s.ID(), li.ID(), 3, false)

		require.NoError(t, err)
		assert.Len(t, s.Units(), 3)
		for _, unit := range s.Units() {
			assert.Equal(t, order.UnitOnHand, unit.State())
		}

		events := o.DomainEvents()
		require.Len(t, events, 1)
		updated, ok := events[0].(order.ShipmentItemUpdated)
		require.True(t, ok)
		assert.Equal(t, 3, updated.QuantityDelta)
		assert.True(t, updated.LocationID.IsEqual(s.StockLocationID()))
	})

	t.Run("should create backordered units when requested", func(t *testing.T) {
		o := createCartOrder(t)
		li := addLineItem(t, o, 2, 1000)
		s, err := o.AddShipment(kernel.NewUUID())
		require.NoError(t, err)

		err = o.AddItemToShipment(s.ID(), li.ID(), 2, true)

		require.NoError(t, err)
		assert.Equal(t, 2, s.BackorderedUnitCount())
	})

	t.Run("should reject allocating beyond the line item quantity", func(t *testing.T) {
		o := createCartOrder(t)
		li := addLineItem(t, o, 2, 1000)
		s, err := o.AddShipment(kernel.NewUUID())
		require.NoError(t, err)

		err = o.AddItemToShipment(s.ID(), li.ID(), 3, false)

		assert.Error(t, err)
		assert.Empty(t, s.Units())
	})

	t.Run("should reject non-positive quantity", func(t *testing.T) {
		o := createCartOrder(t)
		li := addLineItem(t, o, 2, 1000)
		s, err := o.AddShipment(kernel.NewUUID())
		require.NoError(t, err)

		assert.Error(t, o.AddItemToShipment(s.ID(), li.ID(), 0, false))
	})

	t.Run("should reject adding to a non-pending shipment", func(t *testing.T) {
		o := createCartOrder(t)
		li := addLineItem(t, o, 2, 1000)
		s, err := o.AddShipment(kernel.NewUUID())
		require.NoError(t, err)
		require.NoError(t, o.AddItemToShipment(s.ID(), li.ID(), 1, false))
		require.NoError(t, s.Ready())

		err = o.AddItemToShipment(s.ID(), li.ID(), 1, false)

		assert.ErrorIs(t, err, order.ErrShipmentNotPending)
	})
}

func TestOrderDomainEvents(t *testing.T) {
	t.Run("should accumulate and clear events", func(t *testing.T) {
		o := createCartOrder(t)
		li := addLineItem(t, o, 2, 1000)
		allocateFully(t, o, li)

		require.NotEmpty(t, o.DomainEvents())

		o.ClearDomainEvents()

		assert.Empty(t, o.DomainEvents())
	})
}

func TestRestoreOrder(t *testing.T) {
	t.Run("should restore order with children and wire shipments", func(t *testing.T) {
		lineItemID := kernel.NewUUID()
		variantID := kernel.NewUUID()
		li, err := order.RestoreLineItem(lineItemID, variantID, "SKU-3", 2, 700)
		require.NoError(t, err)

		units := make([]*order.InventoryUnit, 0, 2)
		for range 2 {
			unit, unitErr := order.RestoreInventoryUnit(kernel.NewUUID(), lineItemID, variantID, order.UnitOnHand)
			require.NoError(t, unitErr)
			units = append(units, unit)
		}

		s, err := order.RestoreShipment(kernel.NewUUID(), kernel.NewUUID(), order.ShipmentStatePending, "", units)
		require.NoError(t, err)

		p, err := order.RestorePayment(kernel.NewUUID(), 1400, order.PaymentCaptured)
		require.NoError(t, err)

		address := createValidAddress(t)
		methodID := kernel.NewUUID()
		o, err := order.RestoreOrder(
			kernel.NewUUID(), kernel.NewUUID(), "USD",
			order.StatusConfirm,
			&address, &address, &methodID,
			[]*order.LineItem{li},
			[]*order.Shipment{s},
			[]*order.Payment{p},
			nil,
		)

		require.NoError(t, err)
		require.NoError(t, o.Validate())
		assert.Equal(t, order.StatusConfirm, o.Status())
		assert.Equal(t, 2, o.AllocatedUnitCount(lineItemID))

		// Restored shipments are wired to the root: shipping raises an event.
		require.NoError(t, s.Ship("TRACK-5"))
		assert.NotEmpty(t, o.DomainEvents())
	})

	t.Run("should reject invalid status", func(t *testing.T) {
		o, err := order.RestoreOrder(
			kernel.NewUUID(), kernel.NewUUID(), "USD",
			order.StatusUnknown,
			nil, nil, nil, nil, nil, nil, nil,
		)

		require.Error(t, err)
		assert.Nil(t, o)
	})
}
