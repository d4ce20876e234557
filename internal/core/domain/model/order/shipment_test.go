package order_test

import (
	"testing"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// createShipmentWithUnits builds a cart order with one line item allocated
// into a single shipment, with the given split of on-hand and backordered units.
func createShipmentWithUnits(t *testing.T, onHand, backordered int) (*order.Order, *order.LineItem, *order.Shipment) {
	t.Helper()
	o := createCartOrder(t)
	li := addLineItem(t, o, onHand+backordered, 1000)
	s, err := o.AddShipment(kernel.NewUUID())
	require.NoError(t, err)

	if onHand > 0 {
		require.NoError(t, o.AddItemToShipment(s.ID(), li.ID(), onHand, false))
	}
	if backordered > 0 {
		require.NoError(t, o.AddItemToShipment(s.ID(), li.ID(), backordered, true))
	}
	o.ClearDomainEvents()
	return o, li, s
}

func TestShipmentReady(t *testing.T) {
	t.Run("should mark a fully stocked shipment ready", func(t *testing.T) {
		_, _, s := createShipmentWithUnits(t, 2, 0)

		err := s.Ready()

		require.NoError(t, err)
		assert.Equal(t, order.ShipmentStateReady, s.State())
	})

	t.Run("should reject readying with backordered units", func(t *testing.T) {
		_, _, s := createShipmentWithUnits(t, 1, 1)

		err := s.Ready()

		assert.ErrorIs(t, err, order.ErrCannotShipWithBackorders)
		assert.Equal(t, order.ShipmentStatePending, s.State())
	})

	t.Run("should reject readying a non-pending shipment", func(t *testing.T) {
		_, _, s := createShipmentWithUnits(t, 1, 0)
		require.NoError(t, s.Ready())

		err := s.Ready()

		assert.ErrorIs(t, err, order.ErrShipmentNotPending)
	})
}

func TestShipmentShip(t *testing.T) {
	t.Run("should ship from pending", func(t *testing.T) {
		o, _, s := createShipmentWithUnits(t, 2, 0)

		err := s.Ship("TRACK-1")

		require.NoError(t, err)
		assert.Equal(t, order.ShipmentStateShipped, s.State())
		assert.Equal(t, "TRACK-1", s.TrackingNumber())
		for _, unit := range s.Units() {
			assert.Equal(t, order.UnitShipped, unit.State())
		}

		events := o.DomainEvents()
		require.Len(t, events, 1)
		shipped, ok := events[0].(order.ShipmentShipped)
		require.True(t, ok)
		assert.Equal(t, order.EventShipmentShipped, shipped.EventName())
		assert.True(t, shipped.ShipmentID.IsEqual(s.ID()))
		assert.True(t, shipped.LocationID.IsEqual(s.StockLocationID()))
		require.Len(t, shipped.Quantities, 1)
		assert.Equal(t, 2, shipped.Quantities[0].Quantity)
	})

	t.Run("should ship from ready", func(t *testing.T) {
		_, _, s := createShipmentWithUnits(t, 1, 0)
		require.NoError(t, s.Ready())

		err := s.Ship("TRACK-2")

		require.NoError(t, err)
		assert.Equal(t, order.ShipmentStateShipped, s.State())
	})

	t.Run("should reject shipping with backordered units", func(t *testing.T) {
		_, _, s := createShipmentWithUnits(t, 1, 1)

		err := s.Ship("TRACK-3")

		assert.ErrorIs(t, err, order.ErrCannotShipWithBackorders)
		assert.Equal(t, order.ShipmentStatePending, s.State())
	})

	t.Run("should reject shipping without a tracking number", func(t *testing.T) {
		_, _, s := createShipmentWithUnits(t, 1, 0)

		err := s.Ship("")

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "trackingNumber")
	})

	t.Run("should reject shipping for a canceled order", func(t *testing.T) {
		o := createCartOrder(t)
		addLineItem(t, o, 1, 1000)
		s, err := o.AddShipment(kernel.NewUUID())
		require.NoError(t, err)
		li := o.LineItems()[0]
		require.NoError(t, o.AddItemToShipment(s.ID(), li.ID(), 1, false))

		// Cancel voids the shipment too; restore a pending one to isolate
		// the order-status guard.
		require.NoError(t, o.Cancel())

		err = s.Ship("TRACK-4")

		assert.Error(t, err)
	})

	t.Run("should reject shipping twice", func(t *testing.T) {
		_, _, s := createShipmentWithUnits(t, 1, 0)
		require.NoError(t, s.Ship("TRACK-5"))

		assert.Error(t, s.Ship("TRACK-6"))
	})
}

func TestShipmentAllocateInventory(t *testing.T) {
	t.Run("should flip covered backordered units to on hand", func(t *testing.T) {
		_, li, s := createShipmentWithUnits(t, 1, 3)

		allocated, err := s.AllocateInventory(map[kernel.UUID]int{li.VariantID(): 2})

		require.NoError(t, err)
		assert.Equal(t, 2, allocated)
		assert.Equal(t, 1, s.BackorderedUnitCount())
	})

	t.Run("should be idempotent when nothing is covered", func(t *testing.T) {
		_, _, s := createShipmentWithUnits(t, 1, 2)

		allocated, err := s.AllocateInventory(map[kernel.UUID]int{})

		require.NoError(t, err)
		assert.Equal(t, 0, allocated)
		assert.Equal(t, 2, s.BackorderedUnitCount())
	})

	t.Run("should leave non-pending shipments alone", func(t *testing.T) {
		_, li, s := createShipmentWithUnits(t, 2, 0)
		require.NoError(t, s.Ready())

		allocated, err := s.AllocateInventory(map[kernel.UUID]int{li.VariantID(): 5})

		require.NoError(t, err)
		assert.Equal(t, 0, allocated)
	})

	t.Run("should allow readying once fully allocated", func(t *testing.T) {
		_, li, s := createShipmentWithUnits(t, 0, 2)

		allocated, err := s.AllocateInventory(map[kernel.UUID]int{li.VariantID(): 2})

		require.NoError(t, err)
		assert.Equal(t, 2, allocated)
		require.NoError(t, s.Ready())
		assert.Equal(t, order.ShipmentStateReady, s.State())
	})
}

func TestRestoreShipment(t *testing.T) {
	t.Run("should restore shipment with units", func(t *testing.T) {
		lineItemID := kernel.NewUUID()
		variantID := kernel.NewUUID()
		unit, err := order.RestoreInventoryUnit(kernel.NewUUID(), lineItemID, variantID, order.UnitBackordered)
		require.NoError(t, err)

		s, err := order.RestoreShipment(kernel.NewUUID(), kernel.NewUUID(), order.ShipmentStatePending, "", []*order.InventoryUnit{unit})

		require.NoError(t, err)
		require.NoError(t, s.Validate())
		assert.Equal(t, 1, s.BackorderedUnitCount())
	})

	t.Run("should reject invalid state", func(t *testing.T) {
		s, err := order.RestoreShipment(kernel.NewUUID(), kernel.NewUUID(), order.ShipmentStateUnknown, "", nil)

		require.Error(t, err)
		assert.Nil(t, s)
	})
}
