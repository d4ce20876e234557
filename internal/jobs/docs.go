// Package jobs provides scheduled background tasks for the fulfillment system.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required for the fulfillment service.
//
// # Available Jobs
//
// 1. BackorderAllocationJob - Runs every thirty seconds to allocate backordered
// inventory units once received stock covers their reservations
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(allocateBackordersHandler, logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Scheduling
//
// The allocation job uses the cron expression "*/30 * * * * *", running every
// thirty seconds. Stock receipts are reflected in the ledger immediately by
// AdjustStockCommandHandler; the sweep exists only to flip waiting units, so a
// short delay is acceptable and keeps write contention on hot orders low.
//
// # Error Handling
//
// - Allocation failures are logged and retried on the next tick; the sweep is
// idempotent because coverage is recomputed from the ledger every run
// - Failed job starts will stop any already running jobs
package jobs
