package order

import (
	"fmt"

	"github.com/dehanf/Smart-takeout-system/internal/pkg/errs"
)

// Status represents the lifecycle state of a takeout order.
// It implements a strictly forward-only state machine:
//
//	Tracking ──> Preparing ──> Ready ──> Completed
//
// Tracking orders are fed by live position updates and owned by the decision
// engine; every later state belongs to the kitchen/pickup flow and is never
// written by the engine. No transition ever moves a status backwards.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Tracking is the initial status: the traveling party is moving and the
	// decision engine is watching the slack between ETA and prep time.
	Tracking

	// Preparing indicates the just-in-time trigger fired and the kitchen
	// is cooking. Reached from Tracking exactly once per order.
	Preparing

	// Ready indicates the kitchen finished cooking and the order awaits
	// pickup.
	Ready

	// Completed indicates the order was handed over.
	// This is a final state with no further transitions allowed.
	Completed
)

// getStatusStrings returns a map of Status values to their string representations.
// All statuses are included for string conversion.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "Unknown",
		Tracking:  "TRACKING",
		Preparing: "PREPARING",
		Ready:     "READY",
		Completed: "COMPLETED",
	}
}

// getValidStatusStrings returns a map of only valid Status values.
// Only valid statuses are included to support validation.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Tracking:  "TRACKING",
		Preparing: "PREPARING",
		Ready:     "READY",
		Completed: "COMPLETED",
	}
}

// Validate checks if the Status value is valid.
//
// Valid statuses are: Tracking, Preparing, Ready, Completed.
// Unknown (0) and any other values are invalid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the human-readable name of the status.
// Implements fmt.Stringer and is safe to call on any Status value,
// including invalid ones.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// StartPreparing transitions the status to Preparing.
//
// Valid transitions:
//   - Tracking -> Preparing (the just-in-time trigger)
//
// Any other source status is invalid: the trigger happens at most once and
// statuses never regress.
func (s Status) StartPreparing() (Status, error) {
	if s != Tracking {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to start preparing", s.String()),
		)
	}

	return Preparing, nil
}

// MarkReady transitions the status to Ready.
//
// Valid transitions:
//   - Preparing -> Ready (kitchen finished cooking)
func (s Status) MarkReady() (Status, error) {
	if s != Preparing {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to mark ready", s.String()),
		)
	}

	return Ready, nil
}

// Complete transitions the status to Completed.
//
// Valid transitions:
//   - Ready -> Completed (order handed over)
//
// Completed is a final state with no further transitions possible.
func (s Status) Complete() (Status, error) {
	if s != Ready {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to complete", s.String()),
		)
	}

	return Completed, nil
}
