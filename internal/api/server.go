// Copyright (c) 2026 Kiram Dashboard. All rights reserved.
// Author: dwikiramdani

// Package api is the composition root of the HTTP surface.
//
// One chi router serves four areas: the REST API under /api, GraphQL under
// /graphql, stored uploads under /uploads, and the single-page app for every
// other GET.
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/dwikiramdani/kiramdashboard/internal/gql"
	"github.com/dwikiramdani/kiramdashboard/internal/identity"
	"github.com/dwikiramdani/kiramdashboard/internal/platform/config"
	"github.com/dwikiramdani/kiramdashboard/internal/platform/constants"
	"github.com/dwikiramdani/kiramdashboard/internal/platform/middleware"
	"github.com/dwikiramdani/kiramdashboard/internal/portfolio/experience"
	"github.com/dwikiramdani/kiramdashboard/internal/portfolio/profile"
	"github.com/dwikiramdani/kiramdashboard/internal/portfolio/project"
	"github.com/dwikiramdani/kiramdashboard/internal/upload"
)

// Server owns the router and the listening [http.Server].
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	log        *slog.Logger
}

// Handlers is everything NewServer mounts. Build Liveness and Readiness
// with [NewHealthHandlers].
type Handlers struct {
	Liveness  http.HandlerFunc
	Readiness http.HandlerFunc

	Identity   *identity.Handler
	Profile    *profile.Handler
	Experience *experience.Handler
	Project    *project.Handler
	Upload     *upload.Handler
	GraphQL    *gql.Handler
}

// NewServer builds the router. Cancelling ctx stops the rate limiter sweep.
func NewServer(ctx context.Context, cfg *config.Config, log *slog.Logger, resolver middleware.PrincipalResolver, h Handlers) *Server {
	r := chi.NewRouter()

	r.Use(middleware.RequestID())
	r.Use(middleware.ClientIP(cfg))
	r.Use(middleware.StructuredLogger(log))
	r.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	r.Use(middleware.RateLimit(ctx, constants.DefaultRateLimitRPS, constants.DefaultRateLimitBurst))
	r.Use(middleware.PanicRecovery())
	r.Use(middleware.Authenticate(resolver))
	r.Use(middleware.CORS(cfg))
	r.Use(chimw.CleanPath)

	r.Route("/api", func(api chi.Router) {
		api.Get("/health", h.Liveness)
		api.Get("/ready", h.Readiness)

		h.Identity.RegisterRoutes(api)
		api.Route("/profile", h.Profile.RegisterRoutes)
		api.Route("/experiences", h.Experience.RegisterRoutes)
		api.Route("/projects", h.Project.RegisterRoutes)
		api.Route("/upload", h.Upload.RegisterRoutes)

		api.NotFound(routeNotFound)
	})

	r.Route("/graphql", h.GraphQL.RegisterRoutes)

	// Anything not matched above belongs to the front-end.
	r.Handle(constants.UploadURLPrefix+"*", http.StripPrefix("/uploads", fileServer(cfg.UploadDir)))
	r.NotFound(spaFallback(cfg.PublicDir))

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

// Handler exposes the router to httptest.
func (s *Server) Handler() http.Handler {
	return s.router
}

// # Lifecycle

// ListenAndServe blocks until the server stops.
func (s *Server) ListenAndServe() error {
	s.log.Info("server_starting", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown drains in-flight requests for at most timeout.
func (s *Server) Shutdown(timeout time.Duration) error {
	context, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(context)
}
