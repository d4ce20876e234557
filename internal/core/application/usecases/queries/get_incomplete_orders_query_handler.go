package queries

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetIncompleteOrdersQueryHandler retrieves in-flight orders from the database.
// Filters out terminal orders to provide active workload visibility.
type GetIncompleteOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetIncompleteOrdersQueryHandler creates a handler for incomplete order queries.
// Requires a GORM database connection for query execution.
func NewGetIncompleteOrdersQueryHandler(db *gorm.DB) GetIncompleteOrdersQueryHandler {
	return GetIncompleteOrdersQueryHandler{db: db}
}

// Handle executes the query to retrieve all incomplete orders.
// Returns orders in any non-terminal status, sorted by order ID for
// consistent output, with line item and inventory unit counts aggregated
// in the database.
func (h GetIncompleteOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetIncompleteOrdersQuery,
) ([]GetIncompleteOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders := make([]GetIncompleteOrdersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			o.id,
			o.store_id,
			o.currency,
			o.status,
			(SELECT COUNT(*) FROM line_items li WHERE li.order_id = o.id),
			(SELECT COUNT(*) FROM inventory_units u
				JOIN shipments s ON s.id = u.shipment_id
				WHERE s.order_id = o.id)
		FROM orders o
		WHERE o.status NOT IN (?, ?)
		ORDER BY o.id
	`, int(order.StatusComplete), int(order.StatusCanceled)).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var resp GetIncompleteOrdersQueryResponse
		var id, storeID uuid.UUID
		var status int

		err = rows.Scan(
			&id,
			&storeID,
			&resp.Currency,
			&status,
			&resp.LineItemCount,
			&resp.UnitCount,
		)
		if err != nil {
			return nil, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		resp.ID = orderID

		sID, idErr := kernel.UUIDFromBytes(storeID[:])
		if idErr != nil {
			return nil, idErr
		}
		resp.StoreID = sID

		resp.Status = order.Status(status).String()
		orders = append(orders, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
