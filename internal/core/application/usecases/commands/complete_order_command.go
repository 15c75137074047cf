package commands

import (
	"errors"

	"github.com/dehanf/Smart-takeout-system/internal/core/domain/model/kernel"
	"github.com/dehanf/Smart-takeout-system/internal/pkg/guard"
)

var ErrCompleteOrderCommandIsNotConstructed = errors.New(
	"CompleteOrderCommand must be created via NewCompleteOrderCommand constructor",
)

// CompleteOrderCommand represents the handover of a Ready order to the
// customer.
type CompleteOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewCompleteOrderCommand creates a command for the pickup event.
func NewCompleteOrderCommand(orderID kernel.UUID) (CompleteOrderCommand, error) {
	if err := orderID.Validate(); err != nil {
		return CompleteOrderCommand{}, err
	}

	return CompleteOrderCommand{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c CompleteOrderCommand) Validate() error {
	return c.guard.Validate(ErrCompleteOrderCommandIsNotConstructed)
}

// OrderID returns the identifier of the order to complete.
func (c CompleteOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}
