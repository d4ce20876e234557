package stockrepo

import (
	"context"
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/stock"
	"fulfillment/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormStockItemRepository implements StockItemRepository using GORM.
//
// Updates are guarded by an optimistic version check: each load remembers the
// row's version, and the matching update only applies when the stored version
// still agrees. A lost race surfaces as errs.ErrVersionIsInvalid so the
// caller can retry the whole transaction.
type GormStockItemRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
	clock   kernel.Clock

	loadedVersions map[uuid.UUID]int64
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormStockItemRepository creates a new GORM stock ledger repository.
func NewGormStockItemRepository(db *gorm.DB, tracker aggregateTracker, clock kernel.Clock) *GormStockItemRepository {
	return &GormStockItemRepository{
		db:             db,
		tracker:        tracker,
		clock:          clock,
		loadedVersions: make(map[uuid.UUID]int64),
	}
}

// Add saves a new ledger entry to the database at version 1, together with
// the movements recorded at construction.
func (r *GormStockItemRepository) Add(ctx context.Context, item *stock.StockItem) error {
	if err := item.Validate(); err != nil {
		return err
	}

	dto := fromDomain(item)
	dto.Version = 1
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	if err := r.appendMovements(ctx, item); err != nil {
		return err
	}

	r.loadedVersions[dto.ID] = 1
	r.tracker.TrackAggregate(item.ID(), item)
	return nil
}

// Update persists the ledger's current quantities and appends its
// uncommitted movements. The movements are insert-only: prior rows of the
// trail are never touched.
func (r *GormStockItemRepository) Update(ctx context.Context, item *stock.StockItem) error {
	if err := item.Validate(); err != nil {
		return err
	}

	dto := fromDomain(item)
	version, loaded := r.loadedVersions[dto.ID]
	if !loaded {
		return errs.NewVersionIsInvalidError("stockItem",
			fmt.Errorf("stock item %s was not loaded through this repository", item.ID()))
	}
	dto.Version = version + 1

	result := r.db.WithContext(ctx).
		Model(&StockItemDTO{}).
		Where("id = ? AND version = ?", dto.ID, version).
		Updates(map[string]any{
			"quantity_on_hand":       dto.QuantityOnHand,
			"quantity_reserved":      dto.QuantityReserved,
			"backorderable":          dto.Backorderable,
			"max_backorder_quantity": dto.MaxBackorderQuantity,
			"version":                dto.Version,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewVersionIsInvalidError("stockItem",
			fmt.Errorf("stock item %s changed since it was loaded", item.ID()))
	}
	r.loadedVersions[dto.ID] = dto.Version

	if err := r.appendMovements(ctx, item); err != nil {
		return err
	}

	r.tracker.TrackAggregate(item.ID(), item)
	return nil
}

func (r *GormStockItemRepository) appendMovements(ctx context.Context, item *stock.StockItem) error {
	movements := item.UncommittedMovements()
	if len(movements) == 0 {
		return nil
	}

	dtos := make([]MovementDTO, 0, len(movements))
	for _, m := range movements {
		dtos = append(dtos, movementFromDomain(m))
	}
	if err := r.db.WithContext(ctx).Create(&dtos).Error; err != nil {
		return err
	}

	item.ClearUncommittedMovements()
	return nil
}

// Get retrieves a ledger entry by ID.
func (r *GormStockItemRepository) Get(ctx context.Context, id kernel.UUID) (*stock.StockItem, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto StockItemDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("stockItem", id.String())
		}
		return nil, err
	}

	r.loadedVersions[dto.ID] = dto.Version
	return toDomain(dto, r.clock)
}

// GetByVariantAndLocation retrieves the ledger entry for a variant at a location.
func (r *GormStockItemRepository) GetByVariantAndLocation(ctx context.Context, variantID, locationID kernel.UUID) (*stock.StockItem, error) {
	if err := errors.Join(variantID.Validate(), locationID.Validate()); err != nil {
		return nil, err
	}

	var dto StockItemDTO
	if err := r.db.WithContext(ctx).
		First(&dto, "variant_id = ? AND location_id = ?", variantID.Bytes(), locationID.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("stockItem",
				fmt.Sprintf("variant %s at location %s", variantID, locationID))
		}
		return nil, err
	}

	r.loadedVersions[dto.ID] = dto.Version
	return toDomain(dto, r.clock)
}

// GetAllByVariant retrieves every location's ledger entry for a variant.
func (r *GormStockItemRepository) GetAllByVariant(ctx context.Context, variantID kernel.UUID) ([]*stock.StockItem, error) {
	if err := variantID.Validate(); err != nil {
		return nil, err
	}

	var dtos []StockItemDTO
	if err := r.db.WithContext(ctx).
		Order("location_id").
		Find(&dtos, "variant_id = ?", variantID.Bytes()).Error; err != nil {
		return nil, err
	}

	items := make([]*stock.StockItem, 0, len(dtos))
	for _, dto := range dtos {
		item, err := toDomain(dto, r.clock)
		if err != nil {
			return nil, err
		}
		r.loadedVersions[dto.ID] = dto.Version
		items = append(items, item)
	}

	return items, nil
}
