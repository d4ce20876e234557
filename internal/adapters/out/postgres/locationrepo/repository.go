package locationrepo

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/location"
	"fulfillment/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormStockLocationRepository implements StockLocationRepository using GORM.
type GormStockLocationRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormStockLocationRepository creates a new GORM stock location repository.
func NewGormStockLocationRepository(db *gorm.DB, tracker aggregateTracker) *GormStockLocationRepository {
	return &GormStockLocationRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new stock location to the database.
func (r *GormStockLocationRepository) Add(ctx context.Context, aggregate *location.StockLocation) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing stock location to the database.
func (r *GormStockLocationRepository) Update(ctx context.Context, aggregate *location.StockLocation) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&StockLocationDTO{}).Where("id = ?", dto.ID).Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a stock location by ID.
func (r *GormStockLocationRepository) Get(ctx context.Context, id kernel.UUID) (*location.StockLocation, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto StockLocationDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("stockLocation", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAll retrieves every stock location ordered by position.
func (r *GormStockLocationRepository) GetAll(ctx context.Context) ([]*location.StockLocation, error) {
	var dtos []StockLocationDTO
	if err := r.db.WithContext(ctx).Order("position").Find(&dtos).Error; err != nil {
		return nil, err
	}

	locations := make([]*location.StockLocation, 0, len(dtos))
	for _, dto := range dtos {
		l, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		locations = append(locations, l)
	}

	return locations, nil
}
