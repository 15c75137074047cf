package commands

import (
	"context"
	"time"

	"github.com/dehanf/Smart-takeout-system/internal/core/domain/model/order"
)

// CreateOrderCommandHandler handles the business logic for order creation.
// New orders start in Tracking status with no provider check recorded, ready
// to be fed live position updates.
//
// Example:
//
//	handler := NewCreateOrderCommandHandler(uowFactory)
//	cmd, _ := NewCreateOrderCommand(orderID, "Ada", shop, "12 Bridge St", 10)
//
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("order creation failed: %w", err)
//	}
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewCreateOrderCommandHandler creates a handler for order creation operations.
// Requires an OrderUoWFactory for transactional persistence.
func NewCreateOrderCommandHandler(uowFactory OrderUoWFactory) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the order creation command.
// Creates the order in Tracking status within a transaction so it is either
// fully persisted or rolled back on error.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	o, err := order.NewOrder(
		cmd.OrderID(),
		cmd.CustomerName(),
		cmd.ShopLocation(),
		cmd.ShopAddress(),
		cmd.PrepTimeMinutes(),
		time.Now().UTC(),
	)
	if err != nil {
		return err
	}

	if err = uow.OrderRepository().Add(ctx, o); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
