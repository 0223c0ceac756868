// Copyright (c) 2026 Kiram Dashboard. All rights reserved.
// Author: dwikiramdani

package identity_test

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dwikiramdani/kiramdashboard/internal/identity"
	"github.com/dwikiramdani/kiramdashboard/internal/platform/docstore"
	"github.com/dwikiramdani/kiramdashboard/internal/platform/sec"
)

const (
	adminUsername = "kiram"
	adminPassword = "g4nt3ng$b4ng3t"
	testSecret    = "0123456789abcdef0123456789abcdef"
)

type fixture struct {
	store      *docstore.Store
	repository *identity.DocumentRepository
	tokens     *sec.TokenService
	throttle   *identity.MemoryThrottle
	service    *identity.Service
	resolver   *identity.Resolver
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()

	hash, err := sec.HashPassword(adminPassword)
	require.NoError(t, err)

	backend := docstore.NewFileBackend(filepath.Join(t.TempDir(), "db.json"))
	require.NoError(t, docstore.Provision(ctx, backend, &docstore.Document{
		Identity: docstore.IdentityRecord{
			ID:           "1",
			Username:     adminUsername,
			PasswordHash: hash,
			CreatedAt:    time.Now().UTC(),
		},
	}, false))

	store, err := docstore.Open(ctx, backend, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)

	tokens, err := sec.NewTokenService([]byte(testSecret), "kiramdashboard", 7*24*time.Hour)
	require.NoError(t, err)

	repository := identity.NewDocumentRepository(store)
	throttle := identity.NewMemoryThrottle(3, 15*time.Minute)

	service, err := identity.NewService(repository, tokens, throttle)
	require.NoError(t, err)

	return &fixture{
		store:      store,
		repository: repository,
		tokens:     tokens,
		throttle:   throttle,
		service:    service,
		resolver:   identity.NewResolver(tokens, repository),
	}
}
