// Package stockrepo provides data transfer objects and mapping functions for
// stock ledger persistence. The ledger row carries the current quantities
// under optimistic locking; the movement trail is stored append-only in its
// own table and never updated.
package stockrepo

import (
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/stock"

	"github.com/google/uuid"
)

// StockItemDTO represents the database structure for persisting stock ledger entries.
// The variant/location pair is unique: one ledger row per variant per location.
type StockItemDTO struct {
	ID                   uuid.UUID `gorm:"type:uuid;primaryKey"`
	VariantID            uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_variant_location"`
	LocationID           uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_variant_location"`
	SKU                  string    `gorm:"type:varchar(255);not null;index"`
	QuantityOnHand       int       `gorm:"type:int;not null"`
	QuantityReserved     int       `gorm:"type:int;not null"`
	Backorderable        bool      `gorm:"type:boolean;not null"`
	MaxBackorderQuantity *int      `gorm:"type:int"`
	Version              int64     `gorm:"type:bigint;not null"`
}

// TableName specifies the database table name for stock ledger entries.
func (StockItemDTO) TableName() string {
	return "stock_items"
}

// MovementDTO represents one immutable row of the ledger's audit trail.
type MovementDTO struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey"`
	StockItemID    uuid.UUID  `gorm:"type:uuid;not null;index"`
	Originator     string     `gorm:"type:varchar(255);not null"`
	ReferenceID    *uuid.UUID `gorm:"type:uuid;index"`
	ShipmentID     *uuid.UUID `gorm:"type:uuid;index"`
	OnHandDelta    int        `gorm:"type:int;not null"`
	ReservedDelta  int        `gorm:"type:int;not null"`
	OnHandBefore   int        `gorm:"type:int;not null"`
	OnHandAfter    int        `gorm:"type:int;not null"`
	ReservedBefore int        `gorm:"type:int;not null"`
	ReservedAfter  int        `gorm:"type:int;not null"`
	OccurredAt     time.Time  `gorm:"type:timestamptz;not null;index"`
}

// TableName specifies the database table name for stock movements.
func (MovementDTO) TableName() string {
	return "stock_movements"
}

// fromDomain converts a stock ledger aggregate to its database representation.
// Version is filled in by the repository, not the mapping.
func fromDomain(item *stock.StockItem) StockItemDTO {
	return StockItemDTO{
		ID:                   item.ID().Bytes(),
		VariantID:            item.VariantID().Bytes(),
		LocationID:           item.LocationID().Bytes(),
		SKU:                  item.SKU(),
		QuantityOnHand:       item.QuantityOnHand(),
		QuantityReserved:     item.QuantityReserved(),
		Backorderable:        item.IsBackorderable(),
		MaxBackorderQuantity: item.MaxBackorderQuantity(),
	}
}

// movementFromDomain converts one uncommitted movement to its database row.
func movementFromDomain(m stock.Movement) MovementDTO {
	var referenceID, shipmentID *uuid.UUID
	if m.ReferenceID != nil {
		raw := m.ReferenceID.Bytes()
		referenceID = &raw
	}
	if m.ShipmentID != nil {
		raw := m.ShipmentID.Bytes()
		shipmentID = &raw
	}

	return MovementDTO{
		ID:             m.ID.Bytes(),
		StockItemID:    m.StockItemID.Bytes(),
		Originator:     m.Originator,
		ReferenceID:    referenceID,
		ShipmentID:     shipmentID,
		OnHandDelta:    m.OnHandDelta,
		ReservedDelta:  m.ReservedDelta,
		OnHandBefore:   m.OnHandBefore,
		OnHandAfter:    m.OnHandAfter,
		ReservedBefore: m.ReservedBefore,
		ReservedAfter:  m.ReservedAfter,
		OccurredAt:     m.OccurredAt,
	}
}

// toDomain converts a database DTO to a stock ledger aggregate.
// Reconstructs current quantities without replaying the movement trail.
func toDomain(dto StockItemDTO, clock kernel.Clock) (*stock.StockItem, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	variantID, err := kernel.UUIDFromBytes(dto.VariantID[:])
	if err != nil {
		return nil, err
	}
	locationID, err := kernel.UUIDFromBytes(dto.LocationID[:])
	if err != nil {
		return nil, err
	}

	return stock.RestoreStockItem(
		id, variantID, locationID,
		dto.SKU,
		dto.QuantityOnHand,
		dto.QuantityReserved,
		dto.Backorderable,
		dto.MaxBackorderQuantity,
		clock,
	)
}
