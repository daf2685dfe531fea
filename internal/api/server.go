// Copyright (c) 2026 Smile. All rights reserved.

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

	"github.com/smilehq/smile-api/internal/platform/config"
	"github.com/smilehq/smile-api/internal/platform/constants"
	"github.com/smilehq/smile-api/internal/platform/middleware"
	"github.com/smilehq/smile-api/internal/users/address"
	"github.com/smilehq/smile-api/internal/users/auth"
	"github.com/smilehq/smile-api/internal/users/user"
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

	// Auth handles the login endpoint.
	Auth *auth.Handler

	// User handles account management (registration, admin CRUD, filter).
	User *user.Handler

	// Address handles the delivery-address sub-resource of an account.
	Address *address.Handler
}

// # Server Initialization

// NewServer constructs the chi router with the full middleware chain and
// registers all route groups.
//
// The access control filter runs in two stages: Authenticate resolves the
// Authorization header (or lack of one) into a principal bound to the
// request context, then Authorize checks that principal against the static
// policy table. Handlers downstream never see a request the policy rejects.
func NewServer(appCtx context.Context, cfg *config.Config, log *slog.Logger, authenticator middleware.Authenticator, h Handlers) *Server {
	r := chi.NewRouter()

	// # Middleware Chain
	// Global middleware applied in order of execution. CleanPath must run
	// before the access control filter: the policy matches on the request
	// path, so an un-normalized path (double slashes, dot segments) has to be
	// collapsed before any rule is decided, not after.
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(log))
	r.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	r.Use(middleware.RateLimit(appCtx))
	r.Use(middleware.PanicRecovery(log))
	r.Use(chimw.CleanPath)
	r.Use(middleware.Authenticate(authenticator))
	r.Use(middleware.Authorize(DefaultPolicy()))
	r.Use(middleware.CORS(cfg))

	// # Infrastructure Endpoints
	// Unauthenticated health probes for container orchestration.
	r.Get("/health", h.Liveness)
	r.Get("/ready", h.Readiness)

	// # Application API
	// Domain-specific route groups mounted under versioned prefix. Account
	// and address routes share the /users subtree, so both handler sets
	// register onto the same sub-router.
	r.Route("/api/v1", func(apiRouter chi.Router) {
		h.Auth.Register(apiRouter)
		apiRouter.Route("/users", func(usersRouter chi.Router) {
			h.User.Register(usersRouter)
			h.Address.Register(usersRouter)
		})
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
	s.log.Info("server starting", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(ctx)
}
