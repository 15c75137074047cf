package order

import (
	"errors"
	"fmt"
	"time"

	"github.com/dehanf/Smart-takeout-system/internal/core/domain/model/kernel"
	"github.com/dehanf/Smart-takeout-system/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// the NewOrder or RestoreOrder factory methods.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder constructor")
)

// Order represents a takeout order being tracked for just-in-time preparation.
// It is the aggregate root that owns the order lifecycle from live tracking
// through kitchen preparation to pickup.
//
// Order maintains these invariants:
//   - Must have a valid unique identifier and a non-empty customer name
//   - The shop location is a validated coordinate pair and never changes
//   - Prep time is a positive number of minutes and never changes
//   - Status only moves forward (Tracking -> Preparing -> Ready -> Completed)
//   - The last provider check timestamp is non-decreasing and only written
//     while the order is in Tracking status
//   - The Tracking -> Preparing transition succeeds at most once
type Order struct {
	// id is the unique identifier for the order
	id kernel.UUID

	// customerName is the display name captured at creation
	customerName string

	// shopLocation is the stationary destination the traveling party heads to
	shopLocation kernel.GeoPoint

	// shopAddress is an optional human-readable address of the shop
	shopAddress string

	// prepTimeMinutes is the kitchen preparation time in whole minutes
	prepTimeMinutes int

	// status is the current state in the order lifecycle
	status Status

	// lastProviderCheck is the time of the last successful throttle claim;
	// nil until the first provider call
	lastProviderCheck *time.Time

	// createdAt is the immutable creation timestamp
	createdAt time.Time

	// isConstructed ensures the order was created via a constructor
	isConstructed bool
}

// NewOrder creates a new Order in Tracking status with no provider check yet.
// This is the only way to create a fresh order, ensuring all business
// invariants hold from the start.
//
// Parameters:
//   - id: unique identifier (must be a valid UUID)
//   - customerName: display name (must be non-empty)
//   - shopLocation: validated destination coordinates
//   - shopAddress: optional human-readable address (may be empty)
//   - prepTimeMinutes: kitchen preparation time (must be positive)
//   - createdAt: creation timestamp (must be non-zero)
//
// Example:
//
//	id := kernel.NewUUID()
//	shop, _ := kernel.NewGeoPoint(51.5007, -0.1246)
//	o, err := order.NewOrder(id, "Ada", shop, "12 Bridge St", 10, time.Now())
//	if err != nil {
//	    // handle validation error
//	}
func NewOrder(
	id kernel.UUID,
	customerName string,
	shopLocation kernel.GeoPoint,
	shopAddress string,
	prepTimeMinutes int,
	createdAt time.Time,
) (*Order, error) {
	o := &Order{
		status:        Tracking,
		shopAddress:   shopAddress,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomerName(customerName),
		o.setShopLocation(shopLocation),
		o.setPrepTimeMinutes(prepTimeMinutes),
		o.setCreatedAt(createdAt),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder reconstructs an Order from persisted state.
// Unlike NewOrder it accepts any valid status and an optional last provider
// check timestamp. Used by repository implementations; all invariants are
// re-validated so corrupted rows cannot produce an invalid aggregate.
func RestoreOrder(
	id kernel.UUID,
	customerName string,
	shopLocation kernel.GeoPoint,
	shopAddress string,
	prepTimeMinutes int,
	status Status,
	lastProviderCheck *time.Time,
	createdAt time.Time,
) (*Order, error) {
	o := &Order{
		shopAddress:   shopAddress,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomerName(customerName),
		o.setShopLocation(shopLocation),
		o.setPrepTimeMinutes(prepTimeMinutes),
		o.setStatus(status),
		o.setCreatedAt(createdAt),
	); err != nil {
		return nil, err
	}

	if lastProviderCheck != nil {
		t := *lastProviderCheck
		o.lastProviderCheck = &t
	}

	return o, nil
}

// Validate ensures the Order instance was properly constructed through a
// factory method. This prevents bypassing validation by directly
// instantiating the struct.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}

	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// CustomerName returns the customer display name.
func (o *Order) CustomerName() string {
	return o.customerName
}

// ShopLocation returns the stationary destination coordinates.
func (o *Order) ShopLocation() kernel.GeoPoint {
	return o.shopLocation
}

// ShopAddress returns the human-readable shop address, possibly empty.
func (o *Order) ShopAddress() string {
	return o.shopAddress
}

// PrepTimeMinutes returns the kitchen preparation time in minutes.
func (o *Order) PrepTimeMinutes() int {
	return o.prepTimeMinutes
}

// Status returns the current status of the order.
func (o *Order) Status() Status {
	return o.status
}

// LastProviderCheck returns the timestamp of the last successful throttle
// claim, or nil if no provider call has been made yet.
// The returned pointer refers to a copy; mutating it does not affect the order.
func (o *Order) LastProviderCheck() *time.Time {
	if o.lastProviderCheck == nil {
		return nil
	}
	t := *o.lastProviderCheck
	return &t
}

// CreatedAt returns the immutable creation timestamp.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// ClaimProviderSlot attempts to claim the right to make one external
// provider call at the given time.
//
// The claim succeeds, recording now as the last provider check, iff the
// order is still in Tracking status and either no check has happened yet or
// the cooldown window has fully elapsed since the previous one. A claim at
// a time earlier than the recorded check is refused, keeping the timestamp
// non-decreasing.
//
// Returns true when this caller won the slot. A false return is the
// expected, silent outcome for throttled samples, not an error.
//
// Note: this method serializes concurrent claims on a single in-memory
// aggregate. When the aggregate is shared through storage, the repository
// must perform the same check-and-set as one conditional update.
func (o *Order) ClaimProviderSlot(now time.Time, cooldown time.Duration) bool {
	if o.status != Tracking {
		return false
	}

	if o.lastProviderCheck != nil {
		if now.Before(*o.lastProviderCheck) {
			return false
		}
		if now.Sub(*o.lastProviderCheck) < cooldown {
			return false
		}
	}

	t := now
	o.lastProviderCheck = &t
	return true
}

// StartPreparing attempts the one-shot just-in-time trigger.
//
// Succeeds and moves the order to Preparing iff the current status is
// Tracking. Returns false without modifying anything if the order has
// already transitioned; two racing callers can never both win.
func (o *Order) StartPreparing() bool {
	newStatus, err := o.status.StartPreparing()
	if err != nil {
		return false
	}

	o.status = newStatus
	return true
}

// MarkReady marks the kitchen as finished cooking.
// The order must be in Preparing status. This transition belongs to the
// kitchen flow, never to the decision engine.
func (o *Order) MarkReady() error {
	newStatus, err := o.status.MarkReady()
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

// Complete marks the order as handed over.
// The order must be in Ready status. Completed is the final state.
func (o *Order) Complete() error {
	newStatus, err := o.status.Complete()
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

// setID validates and sets the order's unique identifier.
// This is a private method used only during construction.
func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

// setCustomerName validates and sets the customer display name.
func (o *Order) setCustomerName(customerName string) error {
	if customerName == "" {
		return errs.NewValueIsRequiredError("customerName")
	}
	o.customerName = customerName
	return nil
}

// setShopLocation validates and sets the stationary destination.
func (o *Order) setShopLocation(shopLocation kernel.GeoPoint) error {
	if err := shopLocation.Validate(); err != nil {
		return err
	}
	o.shopLocation = shopLocation
	return nil
}

// setPrepTimeMinutes validates and sets the preparation time.
// Prep time must be positive (greater than 0).
func (o *Order) setPrepTimeMinutes(prepTimeMinutes int) error {
	if prepTimeMinutes <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("prepTimeMinutes is invalid",
			fmt.Errorf("%d is not greater than 0", prepTimeMinutes))
	}
	o.prepTimeMinutes = prepTimeMinutes
	return nil
}

// setStatus validates and sets the status during restoration.
func (o *Order) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.status = status
	return nil
}

// setCreatedAt validates and sets the creation timestamp.
func (o *Order) setCreatedAt(createdAt time.Time) error {
	if createdAt.IsZero() {
		return errs.NewValueIsRequiredError("createdAt")
	}
	o.createdAt = createdAt
	return nil
}
