// Copyright (c) 2026 Kiram Dashboard. All rights reserved.
// Author: dwikiramdani

// Package redis connects the optional client that holds login throttle
// counters when several API instances share one admin account.
package redis

import (
	stdctx "context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const pingTimeout = 2 * time.Second

// NewClient connects to redisURL (redis:// or rediss://) and pings it.
func NewClient(context stdctx.Context, redisURL string, logger *slog.Logger) (*redis.Client, error) {
	options, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("redis: parse url: %w", err)
	}

	// Counters are tiny and rare.
	options.PoolSize = 4
	options.MinIdleConns = 1
	options.DialTimeout = 3 * time.Second
	options.ReadTimeout = pingTimeout
	options.WriteTimeout = pingTimeout

	client := redis.NewClient(options)
	if err := Ping(context, client); err != nil {
		_ = client.Close()
		return nil, err
	}

	logger.Info("redis_connected", slog.String("addr", options.Addr), slog.Int("db", options.DB))
	return client, nil
}

// Ping is the readiness probe for the client.
func Ping(context stdctx.Context, client redis.UniversalClient) error {
	probeCtx, cancel := stdctx.WithTimeout(context, pingTimeout)
	defer cancel()

	if err := client.Ping(probeCtx).Err(); err != nil {
		return fmt.Errorf("redis: ping: %w", err)
	}
	return nil
}
