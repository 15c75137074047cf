package orderrepo

import (
	"context"
	"errors"
	"time"

	"github.com/dehanf/Smart-takeout-system/internal/core/domain/model/kernel"
	"github.com/dehanf/Smart-takeout-system/internal/core/domain/model/order"
	"github.com/dehanf/Smart-takeout-system/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormOrderRepository implements OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order to the database.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
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

// Update saves an existing order to the database.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&OrderDTO{}).Where("id = ?", dto.ID).Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves an order by ID.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllInTrackingStatus retrieves all orders with Tracking status.
func (r *GormOrderRepository) GetAllInTrackingStatus(ctx context.Context) ([]*order.Order, error) {
	var dtos []OrderDTO
	if err := r.db.WithContext(ctx).Find(&dtos, "status = ?", order.Tracking).Error; err != nil {
		return nil, err
	}

	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}

	return orders, nil
}

// ClaimProviderSlot claims the right to one external provider call as a
// single conditional update. The row is touched only when the order is
// still in Tracking status and the previous check, if any, is at least one
// full cooldown in the past. RowsAffected tells whether this caller won,
// so two concurrent claims for the same order can never both succeed.
func (r *GormOrderRepository) ClaimProviderSlot(
	ctx context.Context,
	id kernel.UUID,
	now time.Time,
	cooldown time.Duration,
) (bool, error) {
	if err := id.Validate(); err != nil {
		return false, err
	}

	cutoff := now.Add(-cooldown)
	result := r.db.WithContext(ctx).Model(&OrderDTO{}).
		Where(
			"id = ? AND status = ? AND (last_provider_check IS NULL OR last_provider_check <= ?)",
			id.Bytes(), order.Tracking, cutoff,
		).
		Update("last_provider_check", now)
	if result.Error != nil {
		return false, result.Error
	}

	return result.RowsAffected > 0, nil
}

// StartPreparing performs the one-shot Tracking to Preparing transition as
// a single conditional update. Only one caller can ever observe a true
// result for a given order.
func (r *GormOrderRepository) StartPreparing(ctx context.Context, id kernel.UUID) (bool, error) {
	if err := id.Validate(); err != nil {
		return false, err
	}

	result := r.db.WithContext(ctx).Model(&OrderDTO{}).
		Where("id = ? AND status = ?", id.Bytes(), order.Tracking).
		Update("status", int(order.Preparing))
	if result.Error != nil {
		return false, result.Error
	}

	return result.RowsAffected > 0, nil
}
