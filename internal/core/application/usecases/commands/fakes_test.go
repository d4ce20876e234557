package commands_test

import (
	"context"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/location"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/stock"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

// In-memory fakes shared by the handler flow tests. They stand in for the
// postgres unit of work so the tests can observe both sides of a
// reconciled change: the order and the ledger.

type fakeOrderRepository struct {
	orders map[kernel.UUID]*order.Order
}

func newFakeOrderRepository() *fakeOrderRepository {
	return &fakeOrderRepository{orders: make(map[kernel.UUID]*order.Order)}
}

func (r *fakeOrderRepository) Add(_ context.Context, o *order.Order) error {
	r.orders[o.ID()] = o
	return nil
}

func (r *fakeOrderRepository) Update(_ context.Context, o *order.Order) error {
	if _, ok := r.orders[o.ID()]; !ok {
		return errs.NewObjectNotFoundError("orderID", o.ID())
	}
	r.orders[o.ID()] = o
	return nil
}

func (r *fakeOrderRepository) Get(_ context.Context, id kernel.UUID) (*order.Order, error) {
	o, ok := r.orders[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("orderID", id)
	}
	return o, nil
}

func (r *fakeOrderRepository) GetAllWithBackorderedUnits(_ context.Context) ([]*order.Order, error) {
	var result []*order.Order
	for _, o := range r.orders {
		for _, shipment := range o.Shipments() {
			if shipment.BackorderedUnitCount() > 0 {
				result = append(result, o)
				break
			}
		}
	}
	return result, nil
}

type fakeStockItemRepo struct {
	items []*stock.StockItem
}

func (r *fakeStockItemRepo) Add(_ context.Context, item *stock.StockItem) error {
	r.items = append(r.items, item)
	return nil
}

func (r *fakeStockItemRepo) Update(_ context.Context, item *stock.StockItem) error {
	for i, existing := range r.items {
		if existing.ID().IsEqual(item.ID()) {
			r.items[i] = item
			return nil
		}
	}
	return errs.NewObjectNotFoundError("stockItemID", item.ID())
}

func (r *fakeStockItemRepo) Get(_ context.Context, id kernel.UUID) (*stock.StockItem, error) {
	for _, item := range r.items {
		if item.ID().IsEqual(id) {
			return item, nil
		}
	}
	return nil, errs.NewObjectNotFoundError("stockItemID", id)
}

func (r *fakeStockItemRepo) GetByVariantAndLocation(_ context.Context, variantID, locationID kernel.UUID) (*stock.StockItem, error) {
	for _, item := range r.items {
		if item.VariantID().IsEqual(variantID) && item.LocationID().IsEqual(locationID) {
			return item, nil
		}
	}
	return nil, errs.NewObjectNotFoundError("variantID", variantID)
}

func (r *fakeStockItemRepo) GetAllByVariant(_ context.Context, variantID kernel.UUID) ([]*stock.StockItem, error) {
	var result []*stock.StockItem
	for _, item := range r.items {
		if item.VariantID().IsEqual(variantID) {
			result = append(result, item)
		}
	}
	return result, nil
}

type fakeStockLocationRepository struct {
	locations []*location.StockLocation
}

func (r *fakeStockLocationRepository) Add(_ context.Context, l *location.StockLocation) error {
	r.locations = append(r.locations, l)
	return nil
}

func (r *fakeStockLocationRepository) Update(_ context.Context, l *location.StockLocation) error {
	for i, existing := range r.locations {
		if existing.ID().IsEqual(l.ID()) {
			r.locations[i] = l
			return nil
		}
	}
	return errs.NewObjectNotFoundError("stockLocationID", l.ID())
}

func (r *fakeStockLocationRepository) Get(_ context.Context, id kernel.UUID) (*location.StockLocation, error) {
	for _, l := range r.locations {
		if l.ID().IsEqual(id) {
			return l, nil
		}
	}
	return nil, errs.NewObjectNotFoundError("stockLocationID", id)
}

func (r *fakeStockLocationRepository) GetAll(_ context.Context) ([]*location.StockLocation, error) {
	return r.locations, nil
}

// fakeUoW satisfies every unit of work shape the handlers ask for and
// records whether the transaction committed or rolled back.
type fakeUoW struct {
	orders     *fakeOrderRepository
	stockItems *fakeStockItemRepo
	locations  *fakeStockLocationRepository

	committed  bool
	rolledBack bool
}

func newFakeUoW() *fakeUoW {
	return &fakeUoW{
		orders:     newFakeOrderRepository(),
		stockItems: &fakeStockItemRepo{},
		locations:  &fakeStockLocationRepository{},
	}
}

func (u *fakeUoW) Begin(_ context.Context) error { return nil }

func (u *fakeUoW) Commit(_ context.Context) error {
	u.committed = true
	return nil
}

func (u *fakeUoW) Rollback(_ context.Context) error {
	if !u.committed {
		u.rolledBack = true
	}
	return nil
}

func (u *fakeUoW) OrderRepository() ports.OrderRepository                 { return u.orders }
func (u *fakeUoW) StockItemRepository() ports.StockItemRepository         { return u.stockItems }
func (u *fakeUoW) StockLocationRepository() ports.StockLocationRepository { return u.locations }

type fakeUoWFactory struct{ uow *fakeUoW }

func (f *fakeUoWFactory) Create() commands.UoW { return f.uow }

type fakeOrderUoWFactory struct{ uow *fakeUoW }

func (f *fakeOrderUoWFactory) Create() commands.OrderUoW { return f.uow }

type fakeStockUoWFactory struct{ uow *fakeUoW }

func (f *fakeStockUoWFactory) Create() commands.StockUoW { return f.uow }

type fakeLocationUoWFactory struct{ uow *fakeUoW }

func (f *fakeLocationUoWFactory) Create() commands.LocationUoW { return f.uow }

type fakePublisher struct {
	events []ports.OrderChangedIntegrationEvent
	err    error
}

func (p *fakePublisher) PublishOrderChanged(_ context.Context, event ports.OrderChangedIntegrationEvent) error {
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, event)
	return nil
}
