package jobs

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/dehanf/Smart-takeout-system/internal/core/application/usecases/commands"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	staleTrackingJob *StaleTrackingJob
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(
	uowFactory commands.OrderUoWFactory,
	staleWindow time.Duration,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		staleTrackingJob: NewStaleTrackingJob(uowFactory, staleWindow, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.staleTrackingJob.Start(); err != nil {
		return fmt.Errorf("failed to start stale tracking job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.staleTrackingJob.Stop()
}
