// Copyright (c) 2026 Kiram Dashboard. All rights reserved.
// Author: dwikiramdani

package docstore_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dwikiramdani/kiramdashboard/internal/platform/docstore"
)

// fakeConn emulates the documents table with a single map.
type fakeConn struct {
	rows    map[string][]byte
	execErr error
}

func (conn *fakeConn) Exec(_ context.Context, _ string, arguments ...any) (pgconn.CommandTag, error) {
	if conn.execErr != nil {
		return pgconn.CommandTag{}, conn.execErr
	}
	conn.rows[arguments[0].(string)] = arguments[1].([]byte)
	return pgconn.NewCommandTag("INSERT 0 1"), nil
}

func (conn *fakeConn) QueryRow(_ context.Context, _ string, args ...any) pgx.Row {
	body, ok := conn.rows[args[0].(string)]
	return fakeRow{body: body, found: ok}
}

func (conn *fakeConn) Ping(context.Context) error { return nil }

type fakeRow struct {
	body  []byte
	found bool
}

func (row fakeRow) Scan(dest ...any) error {
	if !row.found {
		return pgx.ErrNoRows
	}
	*(dest[0].(*[]byte)) = row.body
	return nil
}

/*
TestPostgresBackend_RoundTrip stores and reloads the document row.
*/
func TestPostgresBackend_RoundTrip(t *testing.T) {
	conn := &fakeConn{rows: map[string][]byte{}}
	backend := docstore.NewPostgresBackend(conn)
	ctx := context.Background()

	_, err := backend.Load(ctx)
	assert.ErrorIs(t, err, docstore.ErrNotProvisioned)

	require.NoError(t, docstore.Provision(ctx, backend, seedDocument(), false))
	require.Contains(t, conn.rows, docstore.DocumentName)
	assert.True(t, json.Valid(conn.rows[docstore.DocumentName]))

	store, err := docstore.Open(ctx, backend, discard)
	require.NoError(t, err)
	assert.Equal(t, "postgres", store.Backend())

	require.NoError(t, store.Read(ctx, func(document *docstore.Document) error {
		assert.Equal(t, "kiram", document.Identity.Username)
		return nil
	}))
}

/*
TestPostgresBackend_SaveError wraps driver failures.
*/
func TestPostgresBackend_SaveError(t *testing.T) {
	driverErr := errors.New("connection reset")
	conn := &fakeConn{rows: map[string][]byte{}, execErr: driverErr}

	err := docstore.NewPostgresBackend(conn).Save(context.Background(), seedDocument())
	assert.ErrorIs(t, err, driverErr)
}
