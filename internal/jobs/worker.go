// Copyright (c) 2026 Informatics Learning Center. All rights reserved.

package jobs

import (
	"log/slog"

	"github.com/hibiken/asynq"

	"github.com/informatics-lc/backend/internal/platform/constants"
)

// NewServer builds the asynq worker server.
func NewServer(redisOpt asynq.RedisConnOpt) *asynq.Server {
	return asynq.NewServer(redisOpt, asynq.Config{
		Concurrency: 10,
	})
}

// NewScheduler builds the cron scheduler with the sweep registered at its
// every-minute spec.
func NewScheduler(redisOpt asynq.RedisConnOpt, logger *slog.Logger) (*asynq.Scheduler, error) {
	scheduler := asynq.NewScheduler(redisOpt, nil)

	entryID, err := scheduler.Register(constants.InvoiceExpirySweepSpec, NewInvoiceExpirySweepTask())
	if err != nil {
		return nil, err
	}

	logger.Info("sweep_scheduled",
		slog.String("entry_id", entryID),
		slog.String("spec", constants.InvoiceExpirySweepSpec),
	)

	return scheduler, nil
}
