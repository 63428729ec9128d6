// Copyright (c) 2026 Informatics Learning Center. All rights reserved.

// Command worker runs the background task processor and cron scheduler.
//
// # Responsibilities
//
//   - Deliver queued notification mails (mail:send) through SMTP.
//   - Run the every-minute invoice expiry sweep (invoice:expiry_sweep).
//
// The worker shares the API server's PostgreSQL and Redis configuration
// and can run as any number of replicas; asynq guarantees each task is
// processed once.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"

	"github.com/informatics-lc/backend/internal/jobs"
	"github.com/informatics-lc/backend/internal/platform/config"
	"github.com/informatics-lc/backend/internal/platform/constants"
	"github.com/informatics-lc/backend/internal/platform/mailer"
	pgstore "github.com/informatics-lc/backend/internal/platform/postgres"
)

func main() {
	rawLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	log := rawLog.With(slog.String("app", constants.AppName), slog.String("role", "worker"))
	slog.SetDefault(log)

	log.Info("worker_initializing")

	cfg, err := config.Load()
	must(log, err, "load configuration")

	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
	must(log, err, "connect to postgres")
	defer func() {
		log.Info("closing postgres pool")
		pool.Close()
	}()

	redisOpt, err := asynq.ParseRedisURI(cfg.RedisURL)
	must(log, err, "parse redis uri for task queue")

	// SMTP is optional; without it queued mail is logged and dropped.
	var mail jobs.MailSender
	if cfg.SMTPConfigured() {
		mail = mailer.New(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.MailFrom)
		log.Info("smtp_configured", slog.String("host", cfg.SMTPHost))
	} else {
		log.Warn("smtp_not_configured")
	}

	handlers := jobs.NewHandlers(jobs.NewSweeper(pool), mail, log)

	server := jobs.NewServer(redisOpt)
	scheduler, err := jobs.NewScheduler(redisOpt, log)
	must(log, err, "build scheduler")

	must(log, scheduler.Start(), "start scheduler")
	defer scheduler.Shutdown()

	serverErr := make(chan error, 1)
	go func() {
		if err := server.Run(handlers.Mux()); err != nil {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	select {
	case sig := <-quit:
		log.Info("shutdown signal received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("worker startup error", slog.Any("error", err))
	}

	server.Shutdown()
	log.Info("worker stopped cleanly")
}

// must logs a structured fatal error and terminates the process if err is non-nil.
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
