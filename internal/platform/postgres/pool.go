// Copyright (c) 2026 Kiram Dashboard. All rights reserved.
// Author: dwikiramdani

// Package postgres connects the pool behind the database document backend.
//
// The backend reads one row at startup and upserts it on every mutation, so a
// handful of connections is plenty.
package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dwikiramdani/kiramdashboard/internal/platform/constants"
)

// # Pool Settings

const (
	poolMaxConns     = 4
	poolMinConns     = 1
	connLifetime     = time.Hour
	connIdleTime     = 10 * time.Minute
	connHealthPeriod = time.Minute
	dialTimeout      = 5 * time.Second
	pingTimeout      = 2 * time.Second
)

// NewPool parses dsn, opens the pool and pings the server once.
func NewPool(ctx context.Context, dsn string, logger *slog.Logger) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: parse dsn: %w", err)
	}
	tune(poolConfig)

	dialCtx, cancel := context.WithTimeout(ctx, dialTimeout)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(dialCtx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("postgres: open pool: %w", err)
	}

	pingCtx, cancelPing := context.WithTimeout(ctx, pingTimeout)
	defer cancelPing()

	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres: ping: %w", err)
	}

	logger.Info("postgres_connected",
		slog.String("database", poolConfig.ConnConfig.Database),
		slog.Int("max_conns", int(poolConfig.MaxConns)),
	)
	return pool, nil
}

func tune(poolConfig *pgxpool.Config) {
	poolConfig.MaxConns = poolMaxConns
	poolConfig.MinConns = poolMinConns
	poolConfig.MaxConnLifetime = connLifetime
	poolConfig.MaxConnIdleTime = connIdleTime
	poolConfig.HealthCheckPeriod = connHealthPeriod
	poolConfig.ConnConfig.ConnectTimeout = dialTimeout

	// A statement may not outlive the request that issued it.
	statementTimeout := fmt.Sprintf("SET statement_timeout = '%ds'", int(constants.GlobalRequestTimeout.Seconds()))
	poolConfig.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		_, err := conn.Exec(ctx, statementTimeout)
		return err
	}
}
