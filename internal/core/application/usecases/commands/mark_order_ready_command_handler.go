package commands

import (
	"context"
)

// MarkOrderReadyCommandHandler applies the kitchen-finished transition.
// Part of the kitchen flow, outside the decision engine's write authority.
type MarkOrderReadyCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewMarkOrderReadyCommandHandler creates a handler for the Preparing -> Ready transition.
func NewMarkOrderReadyCommandHandler(uowFactory OrderUoWFactory) MarkOrderReadyCommandHandler {
	return MarkOrderReadyCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle loads the order, applies MarkReady and persists the result within
// a transaction. Fails when the order is not in Preparing status.
func (h *MarkOrderReadyCommandHandler) Handle(ctx context.Context, cmd MarkOrderReadyCommand) error {
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

	if err = o.MarkReady(); err != nil {
		return err
	}

	if err = repo.Update(ctx, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
