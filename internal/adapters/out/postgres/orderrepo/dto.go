// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"time"

	"github.com/dehanf/Smart-takeout-system/internal/core/domain/model/kernel"
	"github.com/dehanf/Smart-takeout-system/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Maps order domain entities to relational database tables with an index on
// status for the tracking sweeps.
type OrderDTO struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey"`
	CustomerName      string
	ShopLat           float64
	ShopLng           float64
	ShopAddress       string
	PrepTimeMinutes   int
	Status            int `gorm:"index"`
	LastProviderCheck *time.Time
	CreatedAt         time.Time
}

// TableName specifies the database table name for order entities.
// Overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// fromDomain converts an order domain aggregate to its database representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	return OrderDTO{
		ID:                aggregate.ID().Bytes(),
		CustomerName:      aggregate.CustomerName(),
		ShopLat:           aggregate.ShopLocation().Latitude(),
		ShopLng:           aggregate.ShopLocation().Longitude(),
		ShopAddress:       aggregate.ShopAddress(),
		PrepTimeMinutes:   aggregate.PrepTimeMinutes(),
		Status:            int(aggregate.Status()),
		LastProviderCheck: aggregate.LastProviderCheck(),
		CreatedAt:         aggregate.CreatedAt(),
	}
}

// toDomain converts a database DTO to an order domain aggregate.
// Reconstructs the complete aggregate including status and the throttle
// timestamp using RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	shopLocation, err := kernel.NewGeoPoint(dto.ShopLat, dto.ShopLng)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(
		id,
		dto.CustomerName,
		shopLocation,
		dto.ShopAddress,
		dto.PrepTimeMinutes,
		order.Status(dto.Status),
		dto.LastProviderCheck,
		dto.CreatedAt,
	)
}
