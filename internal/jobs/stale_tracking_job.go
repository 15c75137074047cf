package jobs

import (
	"context"
	"log/slog"
	"time"

	"github.com/dehanf/Smart-takeout-system/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// DefaultStaleWindow is how long a tracked order may go without a provider
// check before the sweep reports it.
const DefaultStaleWindow = 5 * time.Minute

// StaleTrackingJob periodically scans tracked orders and reports the ones
// whose ETA has not been refreshed within the staleness window. A quiet
// provider outage would otherwise be invisible: orders simply stop
// triggering and food goes out late.
type StaleTrackingJob struct {
	uowFactory  commands.OrderUoWFactory
	staleWindow time.Duration
	cron        *cron.Cron
	logger      *slog.Logger
}

// NewStaleTrackingJob creates the staleness sweep. A non-positive window
// falls back to DefaultStaleWindow.
func NewStaleTrackingJob(
	uowFactory commands.OrderUoWFactory,
	staleWindow time.Duration,
	logger *slog.Logger,
) *StaleTrackingJob {
	if staleWindow <= 0 {
		staleWindow = DefaultStaleWindow
	}

	return &StaleTrackingJob{
		uowFactory:  uowFactory,
		staleWindow: staleWindow,
		cron:        cron.New(cron.WithSeconds()),
		logger:      logger.With("component", "stale_tracking_job"),
	}
}

// Start begins the staleness sweep to run every minute.
func (j *StaleTrackingJob) Start() error {
	_, err := j.cron.AddFunc("0 * * * * *", func() {
		ctx := context.Background()
		if err := j.sweep(ctx); err != nil {
			j.logger.ErrorContext(ctx, "Stale tracking sweep failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Stale tracking job started (running every minute)")
	return nil
}

// Stop stops the staleness sweep.
func (j *StaleTrackingJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Stale tracking job stopped")
}

// sweep reads all tracked orders outside a transaction and logs the stale
// ones. Read-only; the sweep never mutates order state.
func (j *StaleTrackingJob) sweep(ctx context.Context) error {
	uow := j.uowFactory.Create()
	orders, err := uow.OrderRepository().GetAllInTrackingStatus(ctx)
	if err != nil {
		return err
	}

	cutoff := time.Now().UTC().Add(-j.staleWindow)
	stale := 0

	for _, o := range orders {
		lastCheck := o.LastProviderCheck()

		reference := o.CreatedAt()
		if lastCheck != nil {
			reference = *lastCheck
		}

		if reference.After(cutoff) {
			continue
		}

		stale++
		j.logger.WarnContext(ctx, "Tracked order has a stale ETA",
			"order_id", o.ID().String(),
			"last_provider_check", lastCheck,
			"created_at", o.CreatedAt())
	}

	if stale > 0 {
		j.logger.WarnContext(ctx, "Stale tracking sweep finished",
			"tracked", len(orders), "stale", stale)
	}

	return nil
}
