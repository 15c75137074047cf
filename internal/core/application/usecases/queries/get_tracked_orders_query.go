package queries

import (
	"errors"
	"time"

	"github.com/dehanf/Smart-takeout-system/internal/core/domain/model/kernel"
	"github.com/dehanf/Smart-takeout-system/internal/core/domain/model/order"
	"github.com/dehanf/Smart-takeout-system/internal/pkg/guard"
)

var (
	ErrGetTrackedOrdersQueryIsNotConstructed = errors.New(
		"GetTrackedOrdersQuery must be created via NewGetTrackedOrdersQuery constructor",
	)
)

// GetTrackedOrdersQuery retrieves all orders that have not been picked up
// yet. Returns orders in any status except Completed, for dashboards and
// kitchen displays.
//
// Example:
//
//	query := NewGetTrackedOrdersQuery()
//	handler := NewGetTrackedOrdersQueryHandler(db)
//
//	orders, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to get active orders: %w", err)
//	}
//
//	fmt.Printf("%d orders in flight\n", len(orders))
type GetTrackedOrdersQuery struct {
	guard guard.ConstructorGuard
}

// NewGetTrackedOrdersQuery creates a query to retrieve active orders.
// This is a parameterless query that fetches all non-completed orders.
func NewGetTrackedOrdersQuery() GetTrackedOrdersQuery {
	return GetTrackedOrdersQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetTrackedOrdersQueryIsNotConstructed if validation fails.
func (q GetTrackedOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetTrackedOrdersQueryIsNotConstructed)
}

// GetTrackedOrdersQueryResponse represents one active order.
type GetTrackedOrdersQueryResponse struct {
	ID                kernel.UUID
	CustomerName      string
	ShopLocation      kernel.GeoPoint
	PrepTimeMinutes   int
	Status            order.Status
	LastProviderCheck *time.Time
}
