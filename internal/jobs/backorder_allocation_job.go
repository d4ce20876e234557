package jobs

import (
	"context"
	"log/slog"

	"fulfillment/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// BackorderAllocationJob periodically sweeps orders holding backordered
// units and allocates the ones inbound stock now covers.
type BackorderAllocationJob struct {
	handler commands.AllocateBackordersCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewBackorderAllocationJob creates a job that runs the backorder sweep
// every thirty seconds. Received stock is adjusted into the ledger as it
// arrives, so the sweep only has to pick it up on the next tick.
func NewBackorderAllocationJob(handler commands.AllocateBackordersCommandHandler, logger *slog.Logger) *BackorderAllocationJob {
	return &BackorderAllocationJob{
		handler: handler,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "backorder_allocation_job"),
	}
}

// Start begins the backorder allocation job.
func (j *BackorderAllocationJob) Start() error {
	_, err := j.cron.AddFunc("*/30 * * * * *", func() {
		ctx := context.Background()
		cmd, cmdErr := commands.NewAllocateBackordersCommand()
		if cmdErr != nil {
			j.logger.ErrorContext(ctx, "Failed to create allocate backorders command", "error", cmdErr)
			return
		}

		allocated, handleErr := j.handler.Handle(ctx, cmd)
		if handleErr != nil {
			j.logger.ErrorContext(ctx, "Backorder allocation job failed", "error", handleErr)
			return
		}

		if allocated > 0 {
			j.logger.InfoContext(ctx, "Backorder allocation completed", "allocated_units", allocated)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Backorder allocation job started (running every thirty seconds)")
	return nil
}

// Stop stops the backorder allocation job.
func (j *BackorderAllocationJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Backorder allocation job stopped")
}
