package services

import (
	"fmt"
	"math"
	"time"

	"github.com/dehanf/Smart-takeout-system/internal/core/domain/model/order"
)

// DefaultSlackBufferMinutes is the default inclusive trigger buffer:
// preparation starts once the slack drops to this many minutes or below.
const DefaultSlackBufferMinutes = 1

// PrepDecision is the outcome of one slack evaluation.
type PrepDecision struct {
	// ETAMinutes is the live travel time rounded to whole minutes.
	ETAMinutes int

	// SlackMinutes is ETAMinutes minus the order's prep time. Negative
	// slack means the traveling party arrives before cooking could finish.
	SlackMinutes int

	// ShouldStartPrep reports whether the kitchen must start now.
	ShouldStartPrep bool
}

// String returns a compact representation for logging.
func (d PrepDecision) String() string {
	return fmt.Sprintf("eta=%dm slack=%dm trigger=%t", d.ETAMinutes, d.SlackMinutes, d.ShouldStartPrep)
}

// PrepScheduler is a domain service implementing the just-in-time decision
// rule: start cooking when the remaining travel time no longer exceeds the
// preparation time by more than the slack buffer.
//
// The rule is pure arithmetic over a traffic-aware travel duration; the
// scheduler performs no I/O and holds no mutable state, so a single instance
// is safe for concurrent use.
//
// Example:
//
//	scheduler := services.NewPrepScheduler(services.DefaultSlackBufferMinutes)
//	decision := scheduler.Decide(9*time.Minute, o)
//	if decision.ShouldStartPrep {
//	    // fire the one-shot trigger
//	}
type PrepScheduler struct {
	slackBufferMinutes int
}

// NewPrepScheduler creates a scheduler with the given inclusive slack buffer
// in minutes. Buffers below zero are clamped to zero; zero means cooking
// starts only when the ETA drops to the prep time itself.
func NewPrepScheduler(slackBufferMinutes int) PrepScheduler {
	if slackBufferMinutes < 0 {
		slackBufferMinutes = 0
	}
	return PrepScheduler{slackBufferMinutes: slackBufferMinutes}
}

// SlackBufferMinutes returns the configured inclusive trigger buffer.
func (s PrepScheduler) SlackBufferMinutes() int {
	return s.slackBufferMinutes
}

// Decide evaluates the just-in-time rule for one live travel duration.
//
// The duration is rounded to whole minutes (half a minute rounds up), the
// slack is the rounded ETA minus the order's prep time, and the trigger
// fires when slack <= buffer. The buffer comparison is inclusive: with the
// default buffer of 1, an ETA of 10 minutes against a 9 minute prep time
// triggers.
func (s PrepScheduler) Decide(eta time.Duration, o *order.Order) PrepDecision {
	etaMinutes := int(math.Round(eta.Seconds() / 60))
	slackMinutes := etaMinutes - o.PrepTimeMinutes()

	return PrepDecision{
		ETAMinutes:      etaMinutes,
		SlackMinutes:    slackMinutes,
		ShouldStartPrep: slackMinutes <= s.slackBufferMinutes,
	}
}
