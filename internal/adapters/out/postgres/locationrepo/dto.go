// Package locationrepo provides data transfer objects and mapping functions
// for stock location persistence.
package locationrepo

import (
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/location"

	"github.com/google/uuid"
)

// StockLocationDTO represents the database structure for persisting stock locations.
// Position is unique: it defines the fulfillment preference order.
type StockLocationDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string    `gorm:"type:varchar(255);not null"`
	Position  int       `gorm:"type:int;not null;uniqueIndex"`
	CreatedAt time.Time `gorm:"type:timestamptz;not null"`
}

// TableName specifies the database table name for stock location entities.
func (StockLocationDTO) TableName() string {
	return "stock_locations"
}

// fromDomain converts a stock location aggregate to its database representation.
func fromDomain(l *location.StockLocation) StockLocationDTO {
	return StockLocationDTO{
		ID:        l.ID().Bytes(),
		Name:      l.Name(),
		Position:  l.Position(),
		CreatedAt: l.CreatedAt(),
	}
}

// toDomain converts a database DTO to a stock location aggregate.
func toDomain(dto StockLocationDTO) (*location.StockLocation, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return location.RestoreStockLocation(id, dto.Name, dto.Position, dto.CreatedAt)
}
