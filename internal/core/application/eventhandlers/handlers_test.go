package eventhandlers_test

import (
	"context"
	"testing"

	"fulfillment/internal/core/application/eventhandlers"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/stock"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeStockItemRepository keeps stock items in memory so handler tests can
// assert ledger state after a dispatch.
type fakeStockItemRepository struct {
	items []*stock.StockItem
}

func (f *fakeStockItemRepository) Add(_ context.Context, item *stock.StockItem) error {
	f.items = append(f.items, item)
	return nil
}

func (f *fakeStockItemRepository) Update(_ context.Context, _ *stock.StockItem) error {
	return nil
}

func (f *fakeStockItemRepository) Get(_ context.Context, id kernel.UUID) (*stock.StockItem, error) {
	for _, item := range f.items {
		if item.ID().IsEqual(id) {
			return item, nil
		}
	}
	return nil, errs.NewObjectNotFoundError("id", id)
}

func (f *fakeStockItemRepository) GetByVariantAndLocation(_ context.Context, variantID, locationID kernel.UUID) (*stock.StockItem, error) {
	for _, item := range f.items {
		if item.VariantID().IsEqual(variantID) && item.LocationID().IsEqual(locationID) {
			return item, nil
		}
	}
	return nil, errs.NewObjectNotFoundError("variantID", variantID)
}

func (f *fakeStockItemRepository) GetAllByVariant(_ context.Context, variantID kernel.UUID) ([]*stock.StockItem, error) {
	var result []*stock.StockItem
	for _, item := range f.items {
		if item.VariantID().IsEqual(variantID) {
			result = append(result, item)
		}
	}
	return result, nil
}

func createStockItem(t *testing.T, variantID, locationID kernel.UUID, onHand int, backorderable bool) *stock.StockItem {
	t.Helper()
	item, err := stock.NewStockItem(
		kernel.NewUUID(), variantID, locationID, "SKU-1",
		onHand, backorderable, nil, kernel.SystemClock{},
	)
	require.NoError(t, err)
	return item
}

func TestShipmentItemUpdatedHandler(t *testing.T) {
	variantID := kernel.NewUUID()
	locationID := kernel.NewUUID()
	baseEvent := order.ShipmentItemUpdated{
		OrderID:    kernel.NewUUID(),
		ShipmentID: kernel.NewUUID(),
		VariantID:  variantID,
		LocationID: locationID,
	}

	t.Run("should reserve stock on positive delta", func(t *testing.T) {
		item := createStockItem(t, variantID, locationID, 10, false)
		repo := &fakeStockItemRepository{items: []*stock.StockItem{item}}
		handler := eventhandlers.NewShipmentItemUpdatedHandler(repo)
		event := baseEvent
		event.QuantityDelta = 4

		err := handler.Handle(context.Background(), event)

		require.NoError(t, err)
		assert.Equal(t, 4, item.QuantityReserved())
		assert.Equal(t, 6, item.CountAvailable())
	})

	t.Run("should release stock on negative delta", func(t *testing.T) {
		item := createStockItem(t, variantID, locationID, 10, false)
		repo := &fakeStockItemRepository{items: []*stock.StockItem{item}}
		require.NoError(t, item.Reserve(4, baseEvent.OrderID))
		handler := eventhandlers.NewShipmentItemUpdatedHandler(repo)
		event := baseEvent
		event.QuantityDelta = -3

		err := handler.Handle(context.Background(), event)

		require.NoError(t, err)
		assert.Equal(t, 1, item.QuantityReserved())
	})

	t.Run("should surface insufficient stock unchanged", func(t *testing.T) {
		item := createStockItem(t, variantID, locationID, 2, false)
		repo := &fakeStockItemRepository{items: []*stock.StockItem{item}}
		handler := eventhandlers.NewShipmentItemUpdatedHandler(repo)
		event := baseEvent
		event.QuantityDelta = 5

		err := handler.Handle(context.Background(), event)

		assert.ErrorIs(t, err, stock.ErrInsufficientStock)
		assert.Equal(t, 0, item.QuantityReserved())
	})

	t.Run("should fail when no ledger exists for the variant at the location", func(t *testing.T) {
		repo := &fakeStockItemRepository{}
		handler := eventhandlers.NewShipmentItemUpdatedHandler(repo)
		event := baseEvent
		event.QuantityDelta = 1

		err := handler.Handle(context.Background(), event)

		assert.ErrorIs(t, err, errs.ErrObjectNotFound)
	})
}

func TestShipmentShippedHandler(t *testing.T) {
	locationID := kernel.NewUUID()

	t.Run("should confirm each variant quantity against the ledger", func(t *testing.T) {
		firstVariant := kernel.NewUUID()
		secondVariant := kernel.NewUUID()
		first := createStockItem(t, firstVariant, locationID, 10, false)
		second := createStockItem(t, secondVariant, locationID, 5, false)
		orderID := kernel.NewUUID()
		require.NoError(t, first.Reserve(3, orderID))
		require.NoError(t, second.Reserve(2, orderID))
		repo := &fakeStockItemRepository{items: []*stock.StockItem{first, second}}
		handler := eventhandlers.NewShipmentShippedHandler(repo)

		err := handler.Handle(context.Background(), order.ShipmentShipped{
			OrderID:    orderID,
			ShipmentID: kernel.NewUUID(),
			LocationID: locationID,
			Quantities: []order.VariantQuantity{
				{VariantID: firstVariant, Quantity: 3},
				{VariantID: secondVariant, Quantity: 2},
			},
		})

		require.NoError(t, err)
		assert.Equal(t, 7, first.QuantityOnHand())
		assert.Equal(t, 0, first.QuantityReserved())
		assert.Equal(t, 3, second.QuantityOnHand())
		assert.Equal(t, 0, second.QuantityReserved())
	})

	t.Run("should surface insufficient reserved stock unchanged", func(t *testing.T) {
		variantID := kernel.NewUUID()
		item := createStockItem(t, variantID, locationID, 10, false)
		repo := &fakeStockItemRepository{items: []*stock.StockItem{item}}
		handler := eventhandlers.NewShipmentShippedHandler(repo)

		err := handler.Handle(context.Background(), order.ShipmentShipped{
			OrderID:    kernel.NewUUID(),
			ShipmentID: kernel.NewUUID(),
			LocationID: locationID,
			Quantities: []order.VariantQuantity{{VariantID: variantID, Quantity: 1}},
		})

		assert.ErrorIs(t, err, stock.ErrInsufficientReservedStock)
	})
}

func TestDispatcher(t *testing.T) {
	t.Run("should route events to registered handlers", func(t *testing.T) {
		variantID := kernel.NewUUID()
		locationID := kernel.NewUUID()
		item := createStockItem(t, variantID, locationID, 10, false)
		repo := &fakeStockItemRepository{items: []*stock.StockItem{item}}

		dispatcher := eventhandlers.NewDispatcher()
		dispatcher.Register(eventhandlers.NewShipmentItemUpdatedHandler(repo))
		dispatcher.Register(eventhandlers.NewShipmentShippedHandler(repo))

		err := dispatcher.Dispatch(context.Background(), []order.DomainEvent{
			order.ShipmentItemUpdated{
				OrderID:       kernel.NewUUID(),
				ShipmentID:    kernel.NewUUID(),
				VariantID:     variantID,
				LocationID:    locationID,
				QuantityDelta: 5,
			},
		})

		require.NoError(t, err)
		assert.Equal(t, 5, item.QuantityReserved())
	})

	t.Run("should fail on events without a handler", func(t *testing.T) {
		dispatcher := eventhandlers.NewDispatcher()

		err := dispatcher.Dispatch(context.Background(), []order.DomainEvent{
			order.ShipmentShipped{},
		})

		assert.Error(t, err)
	})

	t.Run("should stop at the first handler error", func(t *testing.T) {
		variantID := kernel.NewUUID()
		locationID := kernel.NewUUID()
		item := createStockItem(t, variantID, locationID, 1, false)
		repo := &fakeStockItemRepository{items: []*stock.StockItem{item}}

		dispatcher := eventhandlers.NewDispatcher()
		dispatcher.Register(eventhandlers.NewShipmentItemUpdatedHandler(repo))

		err := dispatcher.Dispatch(context.Background(), []order.DomainEvent{
			order.ShipmentItemUpdated{
				OrderID: kernel.NewUUID(), ShipmentID: kernel.NewUUID(),
				VariantID: variantID, LocationID: locationID, QuantityDelta: 5,
			},
			order.ShipmentItemUpdated{
				OrderID: kernel.NewUUID(), ShipmentID: kernel.NewUUID(),
				VariantID: variantID, LocationID: locationID, QuantityDelta: 1,
			},
		})

		assert.ErrorIs(t, err, stock.ErrInsufficientStock)
		assert.Equal(t, 0, item.QuantityReserved())
	})
}
