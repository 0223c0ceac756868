// Copyright (c) 2026 Kiram Dashboard. All rights reserved.
// Author: dwikiramdani

package ctxutil_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dwikiramdani/kiramdashboard/internal/platform/ctxutil"
	"github.com/dwikiramdani/kiramdashboard/internal/platform/sec"
)

/*
TestGetters_EmptyContext checks the fallbacks on a context nothing was stored in.
*/
func TestGetters_EmptyContext(t *testing.T) {
	ctx := context.Background()

	assert.Empty(t, ctxutil.GetRequestID(ctx))
	assert.Empty(t, ctxutil.GetClientIP(ctx))
	assert.Nil(t, ctxutil.GetPrincipal(ctx))
	assert.Same(t, slog.Default(), ctxutil.GetLogger(ctx))
}

/*
TestSetters_Stack stores every value on one chain and reads them back.
*/
func TestSetters_Stack(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	principal := &sec.Principal{ID: "1", Username: "kiram", Role: sec.RoleAdmin}

	ctx := ctxutil.WithRequestID(context.Background(), "req-42")
	ctx = ctxutil.WithLogger(ctx, logger)
	ctx = ctxutil.WithPrincipal(ctx, principal)
	ctx = ctxutil.WithClientIP(ctx, "203.0.113.9")

	assert.Equal(t, "req-42", ctxutil.GetRequestID(ctx))
	assert.Same(t, logger, ctxutil.GetLogger(ctx))
	assert.Equal(t, "203.0.113.9", ctxutil.GetClientIP(ctx))

	got := ctxutil.GetPrincipal(ctx)
	require.NotNil(t, got)
	assert.Equal(t, *principal, *got)
}

/*
TestWithPrincipal_Nil leaves the request anonymous.
*/
func TestWithPrincipal_Nil(t *testing.T) {
	ctx := context.Background()

	assert.Equal(t, ctx, ctxutil.WithPrincipal(ctx, nil))
	assert.Nil(t, ctxutil.GetPrincipal(ctxutil.WithPrincipal(ctx, nil)))
}
