package ports

import (
	"context"
)

// PrepStartedNotification tells listeners on an order's channel that the
// just-in-time trigger fired and the kitchen is cooking.
// Published exactly once per order, by the caller that won the trigger.
type PrepStartedNotification struct {
	OrderID string `json:"orderId"`
	Message string `json:"message"`
}

// ETAUpdateNotification carries the latest slack evaluation for an order
// that has not triggered yet. ETA and slack are whole minutes.
type ETAUpdateNotification struct {
	OrderID      string `json:"orderId"`
	ETAMinutes   int    `json:"eta"`
	SlackMinutes int    `json:"slack"`
}

// NotificationPublisher is the contract for the per-order notification
// channel. Implementations deliver each notification to the channel scoped
// to its order id; payload schemas are the fixed types above, validated at
// construction rather than free-form maps.
//
// Publishing happens only after the corresponding state is durable, so a
// listener reacting to a notification can immediately re-read consistent
// order state.
type NotificationPublisher interface {
	PublishPrepStarted(ctx context.Context, n PrepStartedNotification) error
	PublishETAUpdate(ctx context.Context, n ETAUpdateNotification) error
}
