// Copyright (c) 2026 Informatics Learning Center. All rights reserved.

// Command api is the entry point for the learning-center HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Connect to PostgreSQL (pgxpool).
//  4. Connect to Redis.
//  5. Run database migrations (idempotent).
//  6. Wire domain services and HTTP handlers.
//  7. Start HTTP server with graceful shutdown.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"

	"github.com/informatics-lc/backend/internal/api"
	"github.com/informatics-lc/backend/internal/auth"
	"github.com/informatics-lc/backend/internal/authz"
	"github.com/informatics-lc/backend/internal/certificates"
	"github.com/informatics-lc/backend/internal/discussions"
	"github.com/informatics-lc/backend/internal/enrollments"
	"github.com/informatics-lc/backend/internal/feedbacks"
	"github.com/informatics-lc/backend/internal/invoices"
	"github.com/informatics-lc/backend/internal/jobs"
	"github.com/informatics-lc/backend/internal/platform/config"
	"github.com/informatics-lc/backend/internal/platform/constants"
	"github.com/informatics-lc/backend/internal/platform/migration"
	pgstore "github.com/informatics-lc/backend/internal/platform/postgres"
	redisstore "github.com/informatics-lc/backend/internal/platform/redis"
	"github.com/informatics-lc/backend/internal/platform/sec"
	"github.com/informatics-lc/backend/internal/programs"
	"github.com/informatics-lc/backend/internal/users"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	rawLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	// Add global context to all log entries.
	log := rawLog.With(slog.String("app", constants.AppName))
	slog.SetDefault(log)

	log.Info("service_initializing")

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		debugLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
		log = debugLog.With(slog.String("app", constants.AppName))
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
	)

	// Root context for startup. Use a 30s deadline so misconfiguration is
	// caught quickly rather than hanging indefinitely.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// ── 3. PostgreSQL ─────────────────────────────────────────────────────
	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
	must(log, err, "connect to postgres")
	defer func() {
		log.Info("closing postgres pool")
		pool.Close()
	}()

	// ── 4. Redis ──────────────────────────────────────────────────────────
	rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
	must(log, err, "connect to redis")
	defer func() {
		log.Info("closing redis client")
		if cerr := rdb.Close(); cerr != nil {
			log.Error("redis close error", slog.Any("error", cerr))
		}
	}()

	// ── 5. Migrations ─────────────────────────────────────────────────────
	must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")

	// ── 6. Token Service ──────────────────────────────────────────────────
	tokenService := sec.NewTokenService(cfg.JWTSecret, constants.AuthIssuer)

	// ── 7. Health handlers (wired with real dependency checkers) ──────────
	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckDatabase: func() error {
			return pgstore.Ping(context.Background(), pool)
		},
		CheckCache: func() error {
			return redisstore.Ping(context.Background(), rdb)
		},
	}, log)

	// ── 8. Background task queue client ───────────────────────────────────
	redisOpt, err := asynq.ParseRedisURI(cfg.RedisURL)
	must(log, err, "parse redis uri for task queue")
	taskClient := jobs.NewClient(redisOpt)
	defer func() {
		if cerr := taskClient.Close(); cerr != nil {
			log.Error("task client close error", slog.Any("error", cerr))
		}
	}()

	// ── 9. Domain Wiring ──────────────────────────────────────────────────
	userRepository := auth.NewUserRepository(pool)
	revocationStore := auth.NewRevocationStore(rdb)
	authService := auth.NewService(userRepository, revocationStore, tokenService, log)
	authHandler := auth.NewHandler(authService)

	usersRepository := users.NewRepository(pool)
	usersService := users.NewService(usersRepository, log)
	usersHandler := users.NewHandler(usersService)

	programsRepository := programs.NewRepository(pool)
	programsService := programs.NewService(programsRepository, log)
	programsHandler := programs.NewHandler(programsService)

	enrollmentsRepository := enrollments.NewRepository(pool)
	enrollmentsService := enrollments.NewService(enrollmentsRepository, programsRepository, log)
	enrollmentsHandler := enrollments.NewHandler(enrollmentsService, enrollments.NewOwnerLookup(enrollmentsRepository))

	invoicesRepository := invoices.NewRepository(pool)
	invoicesService := invoices.NewService(invoicesRepository, log)
	invoicesHandler := invoices.NewHandler(invoicesService, invoices.NewOwnerLookup(invoicesRepository))

	certificatesRepository := certificates.NewRepository(pool)
	certificatesService := certificates.NewService(certificatesRepository, log)
	certificatesHandler := certificates.NewHandler(certificatesService, certificates.NewOwnerLookup(certificatesRepository))

	discussionsRepository := discussions.NewRepository(pool)
	discussionsService := discussions.NewService(discussionsRepository, log)
	discussionsHandler := discussions.NewHandler(discussionsService, discussions.NewCommentOwnerLookup(discussionsRepository))

	feedbacksRepository := feedbacks.NewRepository(pool)
	feedbacksService := feedbacks.NewService(feedbacksRepository, taskClient, log)
	feedbacksHandler := feedbacks.NewHandler(feedbacksService)

	// ── 10. HTTP Server ───────────────────────────────────────────────────
	handlers := api.Handlers{
		Liveness:     liveness,
		Readiness:    readiness,
		Auth:         authHandler,
		Users:        usersHandler,
		Programs:     programsHandler,
		Enrollments:  enrollmentsHandler,
		Invoices:     invoicesHandler,
		Certificates: certificatesHandler,
		Discussions:  discussionsHandler,
		Feedbacks:    feedbacksHandler,
		ProgramGate:  authz.ProgramAccess(enrollmentsRepository),
	}

	server := api.NewServer(context.Background(), cfg, log, tokenService, revocationStore, handlers)

	// ── 11. Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Block until OS signal or server error.
	select {
	case sig := <-quit:
		log.Info("shutdown signal received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server startup error", slog.Any("error", err))
	}

	// Give in-flight requests enough time to complete.
	shutdownTimeout := constants.ShutdownTimeout
	log.Info("shutting down server", slog.Duration("timeout", shutdownTimeout))

	if err := server.Shutdown(shutdownTimeout); err != nil {
		log.Error("shutdown error", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server stopped cleanly")
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is intentionally limited to startup wiring. After startup, all errors
// must be returned and handled explicitly (never panic).
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
