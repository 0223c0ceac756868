// Copyright (c) 2026 Kiram Dashboard. All rights reserved.
// Author: dwikiramdani

package bootstrap_test

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dwikiramdani/kiramdashboard/internal/platform/bootstrap"
	"github.com/dwikiramdani/kiramdashboard/internal/platform/config"
	"github.com/dwikiramdani/kiramdashboard/internal/platform/docstore"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

/*
TestOpenStorage_File returns an unprovisioned file backend without touching disk.
*/
func TestOpenStorage_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db.json")

	storage, err := bootstrap.OpenStorage(context.Background(), config.Storage{
		DocumentBackend: config.BackendFile,
		DataFile:        path,
	}, discard)
	require.NoError(t, err)
	defer storage.Close()

	assert.Equal(t, "file", storage.Backend.Name())

	_, err = storage.Backend.Load(context.Background())
	assert.ErrorIs(t, err, docstore.ErrNotProvisioned)
}

/*
TestOpenStorage_Unknown rejects unsupported backends.
*/
func TestOpenStorage_Unknown(t *testing.T) {
	_, err := bootstrap.OpenStorage(context.Background(), config.Storage{DocumentBackend: "s3"}, discard)
	assert.Error(t, err)
}
