// Copyright (c) 2026 Kiram Dashboard. All rights reserved.
// Author: dwikiramdani

// Package bootstrap opens the infrastructure shared by the command entry points.
package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dwikiramdani/kiramdashboard/internal/platform/config"
	"github.com/dwikiramdani/kiramdashboard/internal/platform/docstore"
	"github.com/dwikiramdani/kiramdashboard/internal/platform/migration"
	pgstore "github.com/dwikiramdani/kiramdashboard/internal/platform/postgres"
)

// Storage is an opened document backend and its release function.
type Storage struct {
	Backend docstore.Backend
	Close   func()
}

// OpenStorage builds the backend selected by cfg.
//
// For Postgres it connects a pool and applies pending migrations before
// returning; the file backend needs no setup.
func OpenStorage(ctx context.Context, cfg config.Storage, logger *slog.Logger) (*Storage, error) {
	switch cfg.DocumentBackend {
	case config.BackendFile:
		logger.Info("document_backend_selected",
			slog.String("backend", config.BackendFile),
			slog.String("path", cfg.DataFile),
		)
		return &Storage{Backend: docstore.NewFileBackend(cfg.DataFile), Close: func() {}}, nil

	case config.BackendPostgres:
		if err := migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, logger); err != nil {
			return nil, err
		}

		pool, err := pgstore.NewPool(ctx, cfg.DatabaseURL, logger)
		if err != nil {
			return nil, err
		}

		logger.Info("document_backend_selected", slog.String("backend", config.BackendPostgres))
		return &Storage{
			Backend: docstore.NewPostgresBackend(pool),
			Close: func() {
				logger.Info("closing_postgres_pool")
				pool.Close()
			},
		}, nil

	default:
		return nil, fmt.Errorf("bootstrap: unknown document backend %q", cfg.DocumentBackend)
	}
}
