// Package jobs provides scheduled background tasks for the takeout service.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations around the tracking workload.
//
// # Available Jobs
//
// 1. StaleTrackingJob - Runs every minute and reports tracked orders whose
// traffic-aware ETA has not been refreshed within the staleness window.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(uowFactory, staleWindow, logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Error Handling
//
// The sweep is read-only and never mutates order state. Failures are logged
// and retried on the next tick.
package jobs
