package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dehanf/Smart-takeout-system/internal/core/domain/model/order"
	"github.com/dehanf/Smart-takeout-system/internal/core/domain/services"
	"github.com/dehanf/Smart-takeout-system/internal/core/ports"
	"github.com/dehanf/Smart-takeout-system/internal/pkg/errs"
)

// DefaultProviderCooldown is the default minimum interval between external
// provider calls for a single order.
const DefaultProviderCooldown = 60 * time.Second

// ProcessLocationUpdateCommandHandler is the position-update decision engine.
//
// Each position sample flows through a fixed pipeline: load the order,
// claim the throttle slot, query the live ETA, evaluate the slack rule,
// and either fire the one-shot preparation trigger or publish an ETA
// refresh. The handler itself is stateless; every operation that needs
// serialization (the throttle claim and the trigger) is an atomic
// conditional update on the order record, so any number of handler
// instances can process samples for the same order concurrently.
//
// Failure semantics: a missing order, a wrong-state order and a throttled
// sample are expected, silent no-ops. A provider failure is logged and
// abandons the cycle; the throttle slot stays consumed, so a failing
// provider is retried no sooner than one cooldown later. Only
// infrastructure failures (storage, publishing) propagate to the caller.
type ProcessLocationUpdateCommandHandler struct {
	uowFactory OrderUoWFactory
	provider   ports.ETAProvider
	publisher  ports.NotificationPublisher
	scheduler  services.PrepScheduler
	cooldown   time.Duration
	logger     *slog.Logger
}

// NewProcessLocationUpdateCommandHandler creates the decision engine.
// A non-positive cooldown falls back to DefaultProviderCooldown.
func NewProcessLocationUpdateCommandHandler(
	uowFactory OrderUoWFactory,
	provider ports.ETAProvider,
	publisher ports.NotificationPublisher,
	scheduler services.PrepScheduler,
	cooldown time.Duration,
	logger *slog.Logger,
) ProcessLocationUpdateCommandHandler {
	if cooldown <= 0 {
		cooldown = DefaultProviderCooldown
	}

	return ProcessLocationUpdateCommandHandler{
		uowFactory: uowFactory,
		provider:   provider,
		publisher:  publisher,
		scheduler:  scheduler,
		cooldown:   cooldown,
		logger:     logger.With("component", "decision_engine"),
	}
}

// Handle processes one position sample end to end.
//
// The throttle claim is committed before the provider call so no lock or
// open transaction is held while the external request is in flight; the
// claim itself guarantees at most one provider call per order per cooldown
// window. State is durable before any notification is published.
func (h *ProcessLocationUpdateCommandHandler) Handle(ctx context.Context, cmd ProcessLocationUpdateCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	logger := h.logger.With("order_id", cmd.OrderID().String())

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
		if errors.Is(err, errs.ErrObjectNotFound) {
			// Late samples for deleted orders are expected and harmless.
			logger.DebugContext(ctx, "Position sample for unknown order dropped")
			return nil
		}
		return err
	}

	if o.Status() != order.Tracking {
		logger.DebugContext(ctx, "Position sample for finished order dropped",
			"status", o.Status().String())
		return nil
	}

	claimed, err := repo.ClaimProviderSlot(ctx, o.ID(), cmd.ReceivedAt(), h.cooldown)
	if err != nil {
		return err
	}
	if !claimed {
		logger.DebugContext(ctx, "Position sample throttled")
		return nil
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	if meters, derr := cmd.Position().DistanceTo(o.ShopLocation()); derr == nil {
		logger.DebugContext(ctx, "Processing position sample",
			"straight_line_meters", int(meters))
	}

	eta, err := h.provider.LiveETA(ctx, cmd.Position(), o.ShopLocation())
	if err != nil {
		// The slot is already consumed; a failing provider is not hammered
		// and the next attempt waits out a full cooldown.
		logger.WarnContext(ctx, "ETA provider call failed, cycle abandoned", "error", err)
		return nil
	}

	decision := h.scheduler.Decide(eta, o)
	logger.InfoContext(ctx, "Slack evaluated",
		"eta_minutes", decision.ETAMinutes,
		"slack_minutes", decision.SlackMinutes,
		"prep_minutes", o.PrepTimeMinutes())

	if !decision.ShouldStartPrep {
		return h.publisher.PublishETAUpdate(ctx, ports.ETAUpdateNotification{
			OrderID:      o.ID().String(),
			ETAMinutes:   decision.ETAMinutes,
			SlackMinutes: decision.SlackMinutes,
		})
	}

	// The claim transaction is committed; the trigger is its own atomic
	// conditional update on a repository no longer bound to a transaction.
	won, err := uow.OrderRepository().StartPreparing(ctx, o.ID())
	if err != nil {
		return err
	}
	if !won {
		// Another sample won the race; the winner publishes.
		logger.DebugContext(ctx, "Preparation already triggered by concurrent sample")
		return nil
	}

	logger.InfoContext(ctx, "Just-in-time preparation triggered",
		"eta_minutes", decision.ETAMinutes)

	return h.publisher.PublishPrepStarted(ctx, ports.PrepStartedNotification{
		OrderID: o.ID().String(),
		Message: fmt.Sprintf("Start cooking now: traffic-adjusted arrival in %d min.", decision.ETAMinutes),
	})
}
