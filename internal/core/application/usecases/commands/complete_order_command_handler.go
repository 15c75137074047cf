package commands

import (
	"context"
)

// CompleteOrderCommandHandler closes out an order once the customer has
// picked it up.
type CompleteOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewCompleteOrderCommandHandler creates a handler for the Ready -> Completed transition.
func NewCompleteOrderCommandHandler(uowFactory OrderUoWFactory) CompleteOrderCommandHandler {
	return CompleteOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle loads the order, applies Complete and persists the result within
// a transaction. Fails when the order is not in Ready status.
func (h *CompleteOrderCommandHandler) Handle(ctx context.Context, cmd CompleteOrderCommand) error {
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

	repo := uow.OrderRepository()

	o, err := repo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if err = o.Complete(); err != nil {
		return err
	}

	if err = repo.Update(ctx, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
