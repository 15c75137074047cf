package commands

import (
	"errors"
	"time"

	"github.com/dehanf/Smart-takeout-system/internal/core/domain/model/kernel"
	"github.com/dehanf/Smart-takeout-system/internal/pkg/guard"
)

var (
	ErrProcessLocationUpdateCommandIsNotConstructed = errors.New(
		"ProcessLocationUpdateCommand must be created via NewProcessLocationUpdateCommand constructor",
	)
)

// ProcessLocationUpdateCommand represents one live position sample from the
// traveling party for a tracked order. Coordinates are validated at
// construction, so malformed positions never reach the decision logic.
//
// Example:
//
//	pos, _ := kernel.NewGeoPoint(51.5033, -0.1196)
//	cmd, err := NewProcessLocationUpdateCommand(orderID, pos, time.Now())
//	if err != nil {
//	    return fmt.Errorf("invalid position sample: %w", err)
//	}
type ProcessLocationUpdateCommand struct { //nolint:recvcheck //using for validation
	orderID    kernel.UUID
	position   kernel.GeoPoint
	receivedAt time.Time

	guard guard.ConstructorGuard
}

// NewProcessLocationUpdateCommand creates a command for one position sample.
// A zero receivedAt defaults to the current time, matching samples that
// arrive without an explicit receipt timestamp.
func NewProcessLocationUpdateCommand(
	orderID kernel.UUID,
	position kernel.GeoPoint,
	receivedAt time.Time,
) (ProcessLocationUpdateCommand, error) {
	if receivedAt.IsZero() {
		receivedAt = time.Now().UTC()
	}

	cmd := ProcessLocationUpdateCommand{
		receivedAt: receivedAt,
		guard:      guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setPosition(position),
	); err != nil {
		return ProcessLocationUpdateCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrProcessLocationUpdateCommandIsNotConstructed if validation fails.
func (c ProcessLocationUpdateCommand) Validate() error {
	return c.guard.Validate(ErrProcessLocationUpdateCommandIsNotConstructed)
}

// OrderID returns the identifier of the order the sample belongs to.
func (c ProcessLocationUpdateCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Position returns the sampled position of the traveling party.
func (c ProcessLocationUpdateCommand) Position() kernel.GeoPoint {
	return c.position
}

// ReceivedAt returns the receipt timestamp of the sample.
func (c ProcessLocationUpdateCommand) ReceivedAt() time.Time {
	return c.receivedAt
}

func (c *ProcessLocationUpdateCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *ProcessLocationUpdateCommand) setPosition(position kernel.GeoPoint) error {
	if err := position.Validate(); err != nil {
		return err
	}

	c.position = position
	return nil
}
