// Copyright (c) 2026 Kiram Dashboard. All rights reserved.
// Author: dwikiramdani

package docstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

const (
	filePerm = 0o600
	dirPerm  = 0o750
)

// FileBackend keeps the document in a local JSON file.
//
// Writes go to a temporary file in the same directory followed by a rename,
// so readers never observe a half-written document.
type FileBackend struct {
	path string
}

// NewFileBackend creates a file backend for path.
func NewFileBackend(path string) *FileBackend {
	return &FileBackend{path: filepath.Clean(path)}
}

// Name implements [Backend].
func (b *FileBackend) Name() string { return "file" }

// Load implements [Backend].
func (b *FileBackend) Load(ctx context.Context) (*Document, error) {
	data, err := os.ReadFile(b.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNotProvisioned
		}
		return nil, fmt.Errorf("docstore: read %s: %w", b.path, err)
	}

	document := &Document{}
	if err := json.Unmarshal(data, document); err != nil {
		return nil, fmt.Errorf("docstore: decode %s: %w", b.path, err)
	}
	return document, nil
}

// Save implements [Backend].
func (b *FileBackend) Save(ctx context.Context, document *Document) error {
	data, err := json.MarshalIndent(document, "", "  ")
	if err != nil {
		return fmt.Errorf("docstore: encode: %w", err)
	}

	dir := filepath.Dir(b.path)
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return fmt.Errorf("docstore: create %s: %w", dir, err)
	}

	temp, err := os.CreateTemp(dir, filepath.Base(b.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("docstore: create temp file: %w", err)
	}
	tempPath := temp.Name()

	// Removing after a successful rename is a no-op.
	defer os.Remove(tempPath)

	if _, err := temp.Write(data); err != nil {
		_ = temp.Close()
		return fmt.Errorf("docstore: write temp file: %w", err)
	}
	if err := temp.Sync(); err != nil {
		_ = temp.Close()
		return fmt.Errorf("docstore: sync temp file: %w", err)
	}
	if err := temp.Close(); err != nil {
		return fmt.Errorf("docstore: close temp file: %w", err)
	}
	if err := os.Chmod(tempPath, filePerm); err != nil {
		return fmt.Errorf("docstore: chmod temp file: %w", err)
	}

	if err := os.Rename(tempPath, b.path); err != nil {
		return fmt.Errorf("docstore: replace %s: %w", b.path, err)
	}
	return nil
}

// Ping implements [Backend]. It checks that the data directory exists.
func (b *FileBackend) Ping(ctx context.Context) error {
	info, err := os.Stat(filepath.Dir(b.path))
	if err != nil {
		return fmt.Errorf("docstore: data directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("docstore: %s is not a directory", filepath.Dir(b.path))
	}
	return nil
}
