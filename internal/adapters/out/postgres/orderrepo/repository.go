package orderrepo

import (
	"context"
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormOrderRepository implements OrderRepository using GORM.
//
// Updates are guarded by an optimistic version check on the root row: each
// load remembers the row's version, and the update only applies when the
// stored version still agrees. A lost race surfaces as
// errs.ErrVersionIsInvalid so the caller can retry the whole transaction.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker

	loadedVersions map[uuid.UUID]int64
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:             db,
		tracker:        tracker,
		loadedVersions: make(map[uuid.UUID]int64),
	}
}

// Add saves a new order to the database at version 1.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	dto.Version = 1
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.loadedVersions[dto.ID] = 1
	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing order to the database.
// Child rows removed from the aggregate (trimmed line items, released units)
// are deleted so the stored aggregate mirrors the in-memory one.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	version, loaded := r.loadedVersions[dto.ID]
	if !loaded {
		return errs.NewVersionIsInvalidError("order",
			fmt.Errorf("order %s was not loaded through this repository", aggregate.ID()))
	}

	// Bump the root version first under the optimistic guard, so two
	// transactions racing on the same order cannot both save.
	bump := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ? AND version = ?", dto.ID, version).
		Update("version", version+1)
	if bump.Error != nil {
		return bump.Error
	}
	if bump.RowsAffected == 0 {
		return errs.NewVersionIsInvalidError("order",
			fmt.Errorf("order %s changed since it was loaded", aggregate.ID()))
	}
	dto.Version = version + 1

	// Use Session with FullSaveAssociations to properly update nested associations
	result := r.db.WithContext(ctx).Session(&gorm.Session{FullSaveAssociations: true}).Save(&dto)
	if result.Error != nil {
		return result.Error
	}

	if err := r.deleteOrphans(ctx, dto); err != nil {
		return err
	}

	r.loadedVersions[dto.ID] = dto.Version
	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// deleteOrphans removes child rows that no longer belong to the aggregate.
// FullSaveAssociations upserts current children but leaves removed ones behind.
func (r *GormOrderRepository) deleteOrphans(ctx context.Context, dto OrderDTO) error {
	lineItemIDs := make([]any, 0, len(dto.LineItems))
	for _, li := range dto.LineItems {
		lineItemIDs = append(lineItemIDs, li.ID)
	}
	q := r.db.WithContext(ctx).Where("order_id = ?", dto.ID)
	if len(lineItemIDs) > 0 {
		q = q.Where("id NOT IN ?", lineItemIDs)
	}
	if err := q.Delete(&LineItemDTO{}).Error; err != nil {
		return err
	}

	unitIDs := make([]any, 0)
	shipmentIDs := make([]any, 0, len(dto.Shipments))
	for _, s := range dto.Shipments {
		shipmentIDs = append(shipmentIDs, s.ID)
		for _, u := range s.Units {
			unitIDs = append(unitIDs, u.ID)
		}
	}
	uq := r.db.WithContext(ctx).
		Where("shipment_id IN (SELECT id FROM shipments WHERE order_id = ?)", dto.ID)
	if len(unitIDs) > 0 {
		uq = uq.Where("id NOT IN ?", unitIDs)
	}
	if err := uq.Delete(&InventoryUnitDTO{}).Error; err != nil {
		return err
	}

	sq := r.db.WithContext(ctx).Where("order_id = ?", dto.ID)
	if len(shipmentIDs) > 0 {
		sq = sq.Where("id NOT IN ?", shipmentIDs)
	}
	return sq.Delete(&ShipmentDTO{}).Error
}

// Get retrieves an order by ID with all child entities loaded.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := r.db.WithContext(ctx).
		Preload("LineItems").
		Preload("Shipments").
		Preload("Shipments.Units").
		Preload("Payments").
		First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	r.loadedVersions[dto.ID] = dto.Version
	return toDomain(dto)
}

// GetAllWithBackorderedUnits retrieves every order holding at least one
// backordered unit in a pending shipment. Used by the backorder sweep.
//
// Example:
//
//	orders, err := repo.GetAllWithBackorderedUnits(ctx)
//	if err != nil {
//		return fmt.Errorf("failed to get backordered orders: %w", err)
//	}
//	for _, o := range orders {
//		fmt.Printf("Order %s awaits stock\n", o.ID())
//	}
func (r *GormOrderRepository) GetAllWithBackorderedUnits(ctx context.Context) ([]*order.Order, error) {
	var dtos []OrderDTO
	if err := r.db.WithContext(ctx).
		Preload("LineItems").
		Preload("Shipments").
		Preload("Shipments.Units").
		Preload("Payments").
		Table("orders").
		Select("DISTINCT orders.*").
		Joins("JOIN shipments ON shipments.order_id = orders.id AND shipments.state = ?", int(order.ShipmentStatePending)).
		Joins("JOIN inventory_units ON inventory_units.shipment_id = shipments.id AND inventory_units.state = ?", int(order.UnitBackordered)).
		Order("orders.id").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		r.loadedVersions[dto.ID] = dto.Version
		orders = append(orders, o)
	}

	return orders, nil
}
