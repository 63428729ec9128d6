// Copyright (c) 2026 Informatics Learning Center. All rights reserved.

/*
Package api wires together the HTTP router, middleware chain, and all
domain handlers into a runnable [http.Server].

Architecture:

  - This package is the topmost Presentation layer boundary.
  - It acts as the central composition root for the HTTP transport framework (chi router).
  - Only this package and cmd/api are allowed to import net/http server primitives.
*/
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/informatics-lc/backend/internal/auth"
	"github.com/informatics-lc/backend/internal/certificates"
	"github.com/informatics-lc/backend/internal/discussions"
	"github.com/informatics-lc/backend/internal/enrollments"
	"github.com/informatics-lc/backend/internal/feedbacks"
	"github.com/informatics-lc/backend/internal/invoices"
	"github.com/informatics-lc/backend/internal/platform/config"
	"github.com/informatics-lc/backend/internal/platform/constants"
	"github.com/informatics-lc/backend/internal/platform/middleware"
	"github.com/informatics-lc/backend/internal/programs"
	"github.com/informatics-lc/backend/internal/users"
)

// # Server Definitions

// Server wraps the chi router and the [http.Server].
//
// It is constructed once in main.go with all dependencies injected.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	log        *slog.Logger
}

// # Handler Registry

// Handlers groups all domain-specific HTTP handler sets.
//
// # Usage
//
// New domains add a field here — no other change to server.go is required.
type Handlers struct {
	// Liveness is the /health handler — always returns 200 if process is alive.
	Liveness http.HandlerFunc

	// Readiness is the /ready handler — returns 200 when all deps are healthy.
	Readiness http.HandlerFunc

	// Auth handles registration, login, and logout.
	Auth *auth.Handler

	// Users handles user administration and profiles.
	Users *users.Handler

	// Programs handles the program catalogue and course modules.
	Programs *programs.Handler

	// Enrollments handles program participation and module progress.
	Enrollments *enrollments.Handler

	// Invoices handles bills and payments.
	Invoices *invoices.Handler

	// Certificates handles completion credentials and their PDFs.
	Certificates *certificates.Handler

	// Discussions handles threads, comments, and likes.
	Discussions *discussions.Handler

	// Feedbacks handles the public feedback form and admin responses.
	Feedbacks *feedbacks.Handler

	// ProgramGate guards course-content routes behind a paid enrollment.
	ProgramGate func(http.Handler) http.Handler
}

// # Server Initialization

// NewServer constructs the chi router with the full middleware chain and
// registers all route groups.
func NewServer(
	context context.Context,
	cfg *config.Config,
	log *slog.Logger,
	verifier middleware.TokenVerifier,
	revocations middleware.TokenRevocations,
	h Handlers,
) *Server {
	r := chi.NewRouter()

	// # Middleware Chain
	// Global middleware applied in order of execution.
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(log))
	r.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	r.Use(middleware.RateLimit(context))
	r.Use(middleware.PanicRecovery(log))
	r.Use(middleware.Authenticate(verifier, revocations))
	r.Use(middleware.CORS(cfg))
	r.Use(chimw.CleanPath)

	// # Infrastructure Endpoints
	// Unauthenticated health probes for container orchestration.
	r.Get("/health", h.Liveness)
	r.Get("/ready", h.Readiness)

	// # Application API
	// Domain-specific route groups mounted under versioned prefix.
	r.Route("/api/v1", func(api chi.Router) {
		api.Mount("/auth", h.Auth.Routes())
		api.Mount("/users", h.Users.Routes())
		api.Mount("/programs", h.Programs.Routes(h.ProgramGate))
		api.Mount("/enrollments", h.Enrollments.Routes())
		api.Mount("/invoices", h.Invoices.Routes())
		api.Mount("/certificates", h.Certificates.Routes())
		api.Mount("/discussions", h.Discussions.Routes())
		api.Mount("/feedbacks", h.Feedbacks.Routes())
	})

	return &Server{
		router: r,
		log:    log,
		httpServer: &http.Server{
			Addr:              ":" + cfg.ServerPort,
			Handler:           r,
			ReadTimeout:       constants.DefaultReadTimeout,
			WriteTimeout:      constants.DefaultWriteTimeout,
			IdleTimeout:       constants.DefaultIdleTimeout,
			ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
		},
	}
}

// # Server Lifecycle

// ListenAndServe starts the HTTP server.
//
// It blocks until the server is closed or an error occurs.
func (s *Server) ListenAndServe() error {
	s.log.Info("server_starting", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(timeout time.Duration) error {
	context, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(context)
}
