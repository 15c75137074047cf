package queries

import (
	"context"
	"database/sql"

	"github.com/dehanf/Smart-takeout-system/internal/core/domain/model/kernel"
	"github.com/dehanf/Smart-takeout-system/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetTrackedOrdersQueryHandler retrieves active orders from the database.
// Filters out completed orders to provide live workload visibility.
//
// Example:
//
//	handler := NewGetTrackedOrdersQueryHandler(db)
//	query := NewGetTrackedOrdersQuery()
//
//	activeOrders, err := handler.Handle(ctx, query)
//	if err != nil {
//	    log.Printf("Failed to get active orders: %v", err)
//	    return err
//	}
type GetTrackedOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetTrackedOrdersQueryHandler creates a handler for active order queries.
// Requires a GORM database connection for query execution.
func NewGetTrackedOrdersQueryHandler(db *gorm.DB) GetTrackedOrdersQueryHandler {
	return GetTrackedOrdersQueryHandler{db: db}
}

// Handle executes the query to retrieve all non-completed orders.
// Results are sorted by creation time so the oldest order comes first.
func (h GetTrackedOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetTrackedOrdersQuery,
) ([]GetTrackedOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders := make([]GetTrackedOrdersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			customer_name,
			shop_lat,
			shop_lng,
			prep_time_minutes,
			status,
			last_provider_check
		FROM orders
		WHERE status != ?
		ORDER BY created_at, id
	`, order.Completed).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var orderResp GetTrackedOrdersQueryResponse
		var id uuid.UUID
		var shopLat, shopLng float64
		var status int
		var lastCheck sql.NullTime

		err = rows.Scan(
			&id,
			&orderResp.CustomerName,
			&shopLat,
			&shopLng,
			&orderResp.PrepTimeMinutes,
			&status,
			&lastCheck,
		)
		if err != nil {
			return nil, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		orderResp.ID = orderID

		shopLocation, locErr := kernel.NewGeoPoint(shopLat, shopLng)
		if locErr != nil {
			return nil, locErr
		}
		orderResp.ShopLocation = shopLocation

		orderResp.Status = order.Status(status)
		if lastCheck.Valid {
			checkedAt := lastCheck.Time
			orderResp.LastProviderCheck = &checkedAt
		}

		orders = append(orders, orderResp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
