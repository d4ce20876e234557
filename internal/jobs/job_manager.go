package jobs

import (
	"fmt"
	"log/slog"

	"fulfillment/internal/core/application/usecases/commands"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	backorderAllocationJob *BackorderAllocationJob
}

// NewJobManager creates a new job manager with all required jobs.
// Takes command handlers as dependencies to wire up the job execution.
func NewJobManager(
	allocateBackordersHandler commands.AllocateBackordersCommandHandler,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		backorderAllocationJob: NewBackorderAllocationJob(allocateBackordersHandler, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.backorderAllocationJob.Start(); err != nil {
		return fmt.Errorf("failed to start backorder allocation job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.backorderAllocationJob.Stop()
}
