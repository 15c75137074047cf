package kernel

import (
	"fmt"

	"github.com/dehanf/Smart-takeout-system/internal/pkg/errs"

	"github.com/google/uuid"
)

// ErrUUIDIsNotConstructed is returned when validating a zero-value UUID.
var ErrUUIDIsNotConstructed = errs.NewValueIsRequiredError("UUID must be created via NewUUID, UUIDFromString, or UUIDFromBytes")

// UUID is the identifier value object for orders. It wraps
// github.com/google/uuid so that the rest of the domain never handles a
// raw identifier: an order id in a command, a notification key or a
// database row is always a constructed, validated UUID.
//
// The zero value is invalid. Construct via NewUUID for fresh orders,
// UUIDFromString for ids arriving over HTTP, or UUIDFromBytes when
// rehydrating from storage. Values are immutable and safe to copy.
type UUID struct {
	id uuid.UUID
}

// NewUUID generates a random version 4 UUID. The server assigns ids this
// way at order creation; clients never supply their own.
func NewUUID() UUID {
	return UUID{
		id: uuid.New(),
	}
}

// UUIDFromString parses an order id from its textual form, typically an
// :orderId path parameter. The standard hex-and-hyphen layout and the
// braced and urn:uuid variants are all accepted.
//
// Example:
//
//	orderID, err := kernel.UUIDFromString(ctx.Param("orderId"))
//	if err != nil {
//	    // respond 400, the sample never reaches the engine
//	}
func UUIDFromString(s string) (UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return UUID{}, fmt.Errorf("invalid UUID format: %w", err)
	}
	return UUID{id: id}, nil
}

// UUIDFromBytes reconstructs an order id from its 16-byte binary form, as
// stored in the orders table. Unlike UUIDFromString it also rejects the
// nil UUID: a persisted order can never legitimately carry one, so
// reading it back signals corrupt data rather than a parse quirk.
func UUIDFromBytes(b []byte) (UUID, error) {
	id, err := uuid.FromBytes(b)
	if err != nil {
		return UUID{}, fmt.Errorf("invalid UUID format: %w", err)
	}
	newID := UUID{id: id}
	if err = newID.Validate(); err != nil {
		return UUID{}, err
	}

	return newID, nil
}

// String renders the canonical lowercase hex-and-hyphen form. Used for
// API responses, notification keys and log fields. A zero value renders
// as the all-zeros UUID.
func (u UUID) String() string {
	return u.id.String()
}

// Bytes exposes the underlying uuid.UUID, which the persistence layer
// passes to GORM as the primary-key value. Slice it (id.Bytes()[:]) when
// raw bytes are needed.
func (u UUID) Bytes() uuid.UUID {
	return u.id
}

// IsEqual reports whether both values identify the same order.
func (u UUID) IsEqual(other UUID) bool {
	return u.id == other.id
}

// Validate returns ErrUUIDIsNotConstructed for the zero value and nil
// otherwise. Commands and aggregates call this in their constructor
// guards so an unset id fails fast instead of flowing into storage.
func (u UUID) Validate() error {
	if u.id == uuid.Nil {
		return ErrUUIDIsNotConstructed
	}
	return nil
}
