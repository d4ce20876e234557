package queries

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetStockLevelsQueryHandler retrieves a variant's per-location stock levels
// from the database. Uses direct SQL queries for optimal read performance in
// the CQRS pattern.
//
// Example:
//
//	handler := NewGetStockLevelsQueryHandler(db)
//	query, _ := NewGetStockLevelsQuery(variantID)
//
//	levels, err := handler.Handle(ctx, query)
//	if err != nil {
//	    log.Printf("Failed to get stock levels: %v", err)
//	    return err
//	}
type GetStockLevelsQueryHandler struct {
	db *gorm.DB
}

// NewGetStockLevelsQueryHandler creates a handler for stock level queries.
// Requires a GORM database connection for query execution.
func NewGetStockLevelsQueryHandler(db *gorm.DB) GetStockLevelsQueryHandler {
	return GetStockLevelsQueryHandler{db: db}
}

// Handle executes the query to retrieve the variant's stock levels.
// Returns one row per location holding a ledger for the variant, ordered by
// location position. Available and CurrentBackorder are derived in the
// handler so the read model matches the domain's arithmetic.
func (h GetStockLevelsQueryHandler) Handle(
	ctx context.Context,
	query GetStockLevelsQuery,
) ([]GetStockLevelsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	levels := make([]GetStockLevelsQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			l.id,
			l.name,
			l.position,
			s.quantity_on_hand,
			s.quantity_reserved,
			s.backorderable
		FROM stock_items s
		JOIN stock_locations l ON l.id = s.location_id
		WHERE s.variant_id = ?
		ORDER BY l.position
	`, query.VariantID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var level GetStockLevelsQueryResponse
		var id uuid.UUID

		err = rows.Scan(
			&id,
			&level.LocationName,
			&level.Position,
			&level.OnHand,
			&level.Reserved,
			&level.Backorderable,
		)
		if err != nil {
			return nil, err
		}

		locationID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		level.LocationID = locationID

		level.Available = max(0, level.OnHand-level.Reserved)
		level.CurrentBackorder = max(0, level.Reserved-level.OnHand)
		levels = append(levels, level)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return levels, nil
}
