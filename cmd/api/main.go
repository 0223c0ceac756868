// Copyright (c) 2026 Kiram Dashboard. All rights reserved.
// Author: dwikiramdani

// Command api is the entry point for the Kiram Dashboard HTTP server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Open the document backend (file, or Postgres with migrations).
//  4. Load the document; refuse to start when it was never provisioned.
//  5. Connect to Redis when configured, for the shared login throttle.
//  6. Wire services, REST handlers and the GraphQL schema.
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

	"github.com/dwikiramdani/kiramdashboard/internal/api"
	"github.com/dwikiramdani/kiramdashboard/internal/gql"
	"github.com/dwikiramdani/kiramdashboard/internal/identity"
	"github.com/dwikiramdani/kiramdashboard/internal/platform/bootstrap"
	"github.com/dwikiramdani/kiramdashboard/internal/platform/config"
	"github.com/dwikiramdani/kiramdashboard/internal/platform/constants"
	"github.com/dwikiramdani/kiramdashboard/internal/platform/docstore"
	redisstore "github.com/dwikiramdani/kiramdashboard/internal/platform/redis"
	"github.com/dwikiramdani/kiramdashboard/internal/platform/sec"
	"github.com/dwikiramdani/kiramdashboard/internal/portfolio/experience"
	"github.com/dwikiramdani/kiramdashboard/internal/portfolio/profile"
	"github.com/dwikiramdani/kiramdashboard/internal/portfolio/project"
	"github.com/dwikiramdani/kiramdashboard/internal/upload"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	rawLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	log := rawLog.With(slog.String("app", constants.AppName))
	slog.SetDefault(log)

	log.Info("service_initializing", slog.String("version", constants.AppVersion))

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
		slog.String("document_backend", cfg.DocumentBackend),
	)

	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// ── 3. Document backend ───────────────────────────────────────────────
	storage, err := bootstrap.OpenStorage(startupCtx, cfg.Storage, log)
	must(log, err, "open document backend")
	defer storage.Close()

	// ── 4. Document store ─────────────────────────────────────────────────
	store, err := docstore.Open(startupCtx, storage.Backend, log)
	if errors.Is(err, docstore.ErrNotProvisioned) {
		log.Error("document_not_provisioned", slog.String("hint", "run cmd/setup first"))
		os.Exit(1)
	}
	must(log, err, "load document")

	healthChecks := []api.HealthCheck{{Name: "document_store", Check: store.Ping}}

	// ── 5. Login throttle ─────────────────────────────────────────────────
	var throttle identity.LoginThrottle

	sweepCtx, stopSweep := context.WithCancel(context.Background())
	defer stopSweep()

	if cfg.RedisURL == "" {
		memoryThrottle := identity.NewMemoryThrottle(cfg.LoginMaxFailures, cfg.LoginLockout)
		go memoryThrottle.Run(sweepCtx, time.Minute)
		throttle = memoryThrottle
	} else {
		rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
		must(log, err, "connect to redis")
		defer func() {
			log.Info("closing_redis_client")
			if cerr := rdb.Close(); cerr != nil {
				log.Error("redis_close_error", slog.Any("error", cerr))
			}
		}()

		throttle = identity.NewRedisThrottle(rdb, cfg.LoginMaxFailures, cfg.LoginLockout)
		healthChecks = append(healthChecks, api.HealthCheck{
			Name:  "redis",
			Check: func(ctx context.Context) error { return redisstore.Ping(ctx, rdb) },
		})
	}

	// ── 6. Domain wiring ──────────────────────────────────────────────────
	tokens, err := sec.NewTokenService([]byte(cfg.JWTSecret), constants.AuthIssuer, cfg.TokenTTL)
	must(log, err, "initialize token service")

	identityRepository := identity.NewDocumentRepository(store)
	identityService, err := identity.NewService(identityRepository, tokens, throttle)
	must(log, err, "initialize identity service")

	profileService := profile.NewService(profile.NewDocumentRepository(store))
	experienceService := experience.NewService(experience.NewDocumentRepository(store))
	projectService := project.NewService(project.NewDocumentRepository(store))
	uploadService := upload.NewService(cfg.UploadDir, cfg.MaxUploadBytes)

	schema, err := gql.NewSchema(gql.Services{
		Identity:   identityService,
		Profile:    profileService,
		Experience: experienceService,
		Project:    projectService,
	})
	must(log, err, "build graphql schema")

	liveness, readiness := api.NewHealthHandlers(healthChecks, log)

	// ── 7. HTTP Server ────────────────────────────────────────────────────
	serverCtx, serverCancel := context.WithCancel(context.Background())
	defer serverCancel()

	server := api.NewServer(serverCtx, cfg, log, identity.NewResolver(tokens, identityRepository), api.Handlers{
		Liveness:   liveness,
		Readiness:  readiness,
		Identity:   identity.NewHandler(identityService),
		Profile:    profile.NewHandler(profileService),
		Experience: experience.NewHandler(experienceService),
		Project:    project.NewHandler(projectService),
		Upload:     upload.NewHandler(uploadService),
		GraphQL:    gql.NewHandler(schema),
	})

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
		log.Info("shutdown_signal_received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server_startup_error", slog.Any("error", err))
	}

	shutdownTimeout := constants.ShutdownTimeout
	log.Info("shutting_down_server", slog.Duration("timeout", shutdownTimeout))

	if err := server.Shutdown(shutdownTimeout); err != nil {
		log.Error("shutdown_error", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server_stopped_cleanly")
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is limited to startup wiring. After startup, errors are returned and
// handled explicitly.
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup_failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
