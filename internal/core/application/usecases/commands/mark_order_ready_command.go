package commands

import (
	"errors"

	"github.com/dehanf/Smart-takeout-system/internal/core/domain/model/kernel"
	"github.com/dehanf/Smart-takeout-system/internal/pkg/guard"
)

var ErrMarkOrderReadyCommandIsNotConstructed = errors.New(
	"MarkOrderReadyCommand must be created via NewMarkOrderReadyCommand constructor",
)

// MarkOrderReadyCommand represents the kitchen reporting that cooking
// finished for an order in Preparing status.
type MarkOrderReadyCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewMarkOrderReadyCommand creates a command for the kitchen-finished event.
func NewMarkOrderReadyCommand(orderID kernel.UUID) (MarkOrderReadyCommand, error) {
	if err := orderID.Validate(); err != nil {
		return MarkOrderReadyCommand{}, err
	}

	return MarkOrderReadyCommand{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c MarkOrderReadyCommand) Validate() error {
	return c.guard.Validate(ErrMarkOrderReadyCommandIsNotConstructed)
}

// OrderID returns the identifier of the order to mark ready.
func (c MarkOrderReadyCommand) OrderID() kernel.UUID {
	return c.orderID
}
