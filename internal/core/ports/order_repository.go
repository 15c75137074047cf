package ports

import (
	"context"
	"time"

	"github.com/dehanf/Smart-takeout-system/internal/core/domain/model/kernel"
	"github.com/dehanf/Smart-takeout-system/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
//
// Besides plain CRUD it exposes the two conditional writers the decision
// engine depends on. Both are specified as atomic compare-and-set
// operations: implementations must express each as a single conditional
// update so that two concurrent callers for the same order can never both
// succeed, regardless of how many processes share the store.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate.
	// The order must exist in the repository and be valid.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	// Returns errs.ObjectNotFoundError when no such order exists.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetAllInTrackingStatus retrieves all orders currently being tracked.
	// Used for operational sweeps over the live tracking workload.
	GetAllInTrackingStatus(ctx context.Context) ([]*order.Order, error)

	// ClaimProviderSlot atomically claims the right to one external provider
	// call: it sets the order's last provider check to now iff the order is
	// still in Tracking status and either no check is recorded or the
	// cooldown has fully elapsed since the previous one.
	//
	// Returns true iff this caller won the slot. A false return with a nil
	// error means the claim was refused (throttled, or the order left
	// Tracking); that is an expected outcome, not a failure.
	ClaimProviderSlot(ctx context.Context, id kernel.UUID, now time.Time, cooldown time.Duration) (bool, error)

	// StartPreparing atomically performs the one-shot Tracking -> Preparing
	// transition. Returns true iff this caller performed the transition;
	// false means another caller already triggered it or the order is not
	// in Tracking status.
	StartPreparing(ctx context.Context, id kernel.UUID) (bool, error)
}
