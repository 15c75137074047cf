package queries

import (
	"context"
	"database/sql"
	"errors"

	"github.com/dehanf/Smart-takeout-system/internal/core/domain/model/kernel"
	"github.com/dehanf/Smart-takeout-system/internal/core/domain/model/order"
	"github.com/dehanf/Smart-takeout-system/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrderQueryHandler retrieves a single order read model from the database.
type GetOrderQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderQueryHandler creates a handler for single order lookups.
// Requires a GORM database connection for query execution.
func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle executes the lookup. Returns errs.ObjectNotFoundError when no
// order with the requested id exists.
func (h GetOrderQueryHandler) Handle(
	ctx context.Context,
	query GetOrderQuery,
) (GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderQueryResponse{}, err
	}

	var resp GetOrderQueryResponse
	var id uuid.UUID
	var shopLat, shopLng float64
	var status int
	var lastCheck sql.NullTime

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			customer_name,
			shop_lat,
			shop_lng,
			shop_address,
			prep_time_minutes,
			status,
			last_provider_check,
			created_at
		FROM orders
		WHERE id = ?
	`, query.OrderID().Bytes()).Row()

	err := row.Scan(
		&id,
		&resp.CustomerName,
		&shopLat,
		&shopLng,
		&resp.ShopAddress,
		&resp.PrepTimeMinutes,
		&status,
		&lastCheck,
		&resp.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return GetOrderQueryResponse{}, errs.NewObjectNotFoundError("order_id", query.OrderID())
		}
		return GetOrderQueryResponse{}, err
	}

	orderID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return GetOrderQueryResponse{}, err
	}
	resp.ID = orderID

	shopLocation, err := kernel.NewGeoPoint(shopLat, shopLng)
	if err != nil {
		return GetOrderQueryResponse{}, err
	}
	resp.ShopLocation = shopLocation

	resp.Status = order.Status(status)
	if lastCheck.Valid {
		checkedAt := lastCheck.Time
		resp.LastProviderCheck = &checkedAt
	}

	return resp, nil
}
