// Copyright (c) 2026 Kiram Dashboard. All rights reserved.
// Author: dwikiramdani

// Package ctxutil stores and reads the request-scoped values keyed in ctxkey.
//
// Every getter is safe on a bare context and returns the zero value, except
// [GetLogger], which falls back to [slog.Default].
package ctxutil

import (
	"context"
	"log/slog"

	"github.com/dwikiramdani/kiramdashboard/internal/platform/ctxkey"
	"github.com/dwikiramdani/kiramdashboard/internal/platform/sec"
)

func lookup[T any](ctx context.Context, key any) T {
	value, _ := ctx.Value(key).(T)
	return value
}

func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxkey.KeyRequestID, id)
}

func GetRequestID(ctx context.Context) string {
	return lookup[string](ctx, ctxkey.KeyRequestID)
}

func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxkey.KeyLogger, logger)
}

// GetLogger returns the request logger, already tagged with request id and path.
func GetLogger(ctx context.Context) *slog.Logger {
	if logger := lookup[*slog.Logger](ctx, ctxkey.KeyLogger); logger != nil {
		return logger
	}
	return slog.Default()
}

// WithPrincipal marks the request as authenticated. nil leaves ctx anonymous.
func WithPrincipal(ctx context.Context, principal *sec.Principal) context.Context {
	if principal == nil {
		return ctx
	}
	return context.WithValue(ctx, ctxkey.KeyPrincipal, principal)
}

// GetPrincipal returns nil for anonymous requests.
func GetPrincipal(ctx context.Context) *sec.Principal {
	return lookup[*sec.Principal](ctx, ctxkey.KeyPrincipal)
}

// WithClientIP keeps the caller address for layers that no longer see the
// *http.Request, such as GraphQL resolvers.
func WithClientIP(ctx context.Context, ip string) context.Context {
	return context.WithValue(ctx, ctxkey.KeyClientIP, ip)
}

func GetClientIP(ctx context.Context) string {
	return lookup[string](ctx, ctxkey.KeyClientIP)
}
