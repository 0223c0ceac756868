// Copyright (c) 2026 Kiram Dashboard. All rights reserved.
// Author: dwikiramdani

package docstore

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

var (
	// ErrNotProvisioned is returned when no document exists yet.
	ErrNotProvisioned = errors.New("docstore: document not provisioned, run the setup command")

	// ErrAlreadyProvisioned is returned by [Provision] without force.
	ErrAlreadyProvisioned = errors.New("docstore: document already exists")
)

// Backend loads and saves the serialized document.
type Backend interface {
	// Load returns the stored document, or [ErrNotProvisioned].
	Load(ctx context.Context) (*Document, error)

	// Save replaces the stored document atomically.
	Save(ctx context.Context, document *Document) error

	// Ping reports whether the backend is reachable.
	Ping(ctx context.Context) error

	// Name identifies the backend in logs.
	Name() string
}

// Store is the in-memory copy of the document plus its backend.
//
// All mutations are serialized by one mutex: [Store.Update] clones the
// current document, applies the change, saves it and only then swaps it in.
// A failed save leaves the in-memory state untouched.
type Store struct {
	mu       sync.RWMutex
	backend  Backend
	document *Document
	logger   *slog.Logger
}

// Open loads the document from backend.
func Open(ctx context.Context, backend Backend, logger *slog.Logger) (*Store, error) {
	document, err := backend.Load(ctx)
	if err != nil {
		return nil, err
	}

	if !document.Provisioned() {
		return nil, fmt.Errorf("%w: identity is incomplete", ErrNotProvisioned)
	}
	document.normalize()

	logger.Info("document_loaded",
		slog.String("backend", backend.Name()),
		slog.Int("experiences", len(document.Experiences)),
		slog.Int("projects", len(document.Projects)),
	)

	return &Store{backend: backend, document: document, logger: logger}, nil
}

// Read runs fn against a snapshot of the document.
//
// The snapshot is a private deep copy, so fn may keep references to it.
func (s *Store) Read(ctx context.Context, fn func(document *Document) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.RLock()
	snapshot := s.document.Clone()
	s.mu.RUnlock()

	return fn(snapshot)
}

// Update applies fn to a working copy and persists the result.
//
// If fn returns an error nothing is written and that error is returned as-is.
func (s *Store) Update(ctx context.Context, fn func(document *Document) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	working := s.document.Clone()
	if err := fn(working); err != nil {
		return err
	}
	working.normalize()

	startTime := time.Now()
	if err := s.backend.Save(ctx, working); err != nil {
		return fmt.Errorf("docstore: save via %s: %w", s.backend.Name(), err)
	}

	s.document = working
	s.logger.Debug("document_saved",
		slog.String("backend", s.backend.Name()),
		slog.Int64("latency_ms", time.Since(startTime).Milliseconds()),
	)
	return nil
}

// Ping checks the backend.
func (s *Store) Ping(ctx context.Context) error {
	return s.backend.Ping(ctx)
}

// Backend returns the name of the active backend.
func (s *Store) Backend() string {
	return s.backend.Name()
}

// Provision writes the initial document.
//
// It fails with [ErrAlreadyProvisioned] when a document exists, unless force
// is set.
func Provision(ctx context.Context, backend Backend, document *Document, force bool) error {
	if !document.Provisioned() {
		return errors.New("docstore: provisioning requires an identity")
	}

	if !force {
		_, err := backend.Load(ctx)
		switch {
		case err == nil:
			return ErrAlreadyProvisioned
		case !errors.Is(err, ErrNotProvisioned):
			return err
		}
	}

	seed := document.Clone()
	seed.normalize()
	return backend.Save(ctx, seed)
}
