// Copyright (c) 2026 Kiram Dashboard. All rights reserved.
// Author: dwikiramdani

package docstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DocumentName is the primary key of the dashboard row.
const DocumentName = "portfolio"

// PgxConn is the subset of *pgxpool.Pool used by [PostgresBackend].
type PgxConn interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(ctx context.Context) error
}

// PostgresBackend stores the document as one jsonb row in the documents
// table created by the migrations under data/migrations.
type PostgresBackend struct {
	conn PgxConn
	name string
}

// NewPostgresBackend creates a backend over an open pool.
func NewPostgresBackend(conn PgxConn) *PostgresBackend {
	return &PostgresBackend{conn: conn, name: DocumentName}
}

// Name implements [Backend].
func (b *PostgresBackend) Name() string { return "postgres" }

const selectDocumentQuery = `SELECT body FROM documents WHERE name = $1`

// Load implements [Backend].
func (b *PostgresBackend) Load(ctx context.Context) (*Document, error) {
	var body []byte
	err := b.conn.QueryRow(ctx, selectDocumentQuery, b.name).Scan(&body)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotProvisioned
		}
		return nil, fmt.Errorf("docstore: select document: %w", err)
	}

	document := &Document{}
	if err := json.Unmarshal(body, document); err != nil {
		return nil, fmt.Errorf("docstore: decode document: %w", err)
	}
	return document, nil
}

const upsertDocumentQuery = `
	INSERT INTO documents (name, body, updated_at)
	VALUES ($1, $2, now())
	ON CONFLICT (name) DO UPDATE
	SET body = EXCLUDED.body, updated_at = EXCLUDED.updated_at`

// Save implements [Backend]. The upsert is a single statement, so it is atomic.
func (b *PostgresBackend) Save(ctx context.Context, document *Document) error {
	body, err := json.Marshal(document)
	if err != nil {
		return fmt.Errorf("docstore: encode: %w", err)
	}

	if _, err := b.conn.Exec(ctx, upsertDocumentQuery, b.name, body); err != nil {
		return fmt.Errorf("docstore: upsert document: %w", err)
	}
	return nil
}

// Ping implements [Backend].
func (b *PostgresBackend) Ping(ctx context.Context) error {
	return b.conn.Ping(ctx)
}
