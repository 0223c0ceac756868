// Copyright (c) 2026 Kiram Dashboard. All rights reserved.
// Author: dwikiramdani

// Package migration applies the schema for the Postgres document backend
// with golang-migrate.
//
// Migrations run before the backend is first read, so a fresh database
// gets its documents table on the first start.
package migration

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	// pgx5 driver registers the "pgx5" scheme.
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	// file source reads .sql files from disk.
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

// RunUp brings the schema under migrationsPath to its latest version.
// A dirty schema is refused and has to be repaired by hand.
func RunUp(dsn string, migrationsPath string, logger *slog.Logger) error {
	migrator, err := migrate.New("file://"+migrationsPath, Pgx5DSN(dsn))
	if err != nil {
		return fmt.Errorf("migration: open: %w", err)
	}
	migrator.Log = &migrateLogger{logger: logger}
	defer closeMigrator(migrator, logger)

	from, err := version(migrator)
	if err != nil {
		return err
	}

	switch err := migrator.Up(); {
	case errors.Is(err, migrate.ErrNoChange):
		logger.Debug("migration_up_to_date", slog.Uint64("version", uint64(from)))
		return nil
	case err != nil:
		return fmt.Errorf("migration: up: %w", err)
	}

	to, _ := version(migrator)
	logger.Info("migration_applied", slog.Uint64("from_version", uint64(from)), slog.Uint64("to_version", uint64(to)))
	return nil
}

// version reports 0 for an empty database.
func version(migrator *migrate.Migrate) (uint, error) {
	current, dirty, err := migrator.Version()
	switch {
	case errors.Is(err, migrate.ErrNilVersion):
		return 0, nil
	case err != nil:
		return 0, fmt.Errorf("migration: read version: %w", err)
	case dirty:
		return current, fmt.Errorf("migration: schema is dirty at version %d", current)
	}
	return current, nil
}

func closeMigrator(migrator *migrate.Migrate, logger *slog.Logger) {
	sourceErr, databaseErr := migrator.Close()
	if err := errors.Join(sourceErr, databaseErr); err != nil {
		logger.Error("migration_close_failed", slog.Any("error", err))
	}
}

// Pgx5DSN rewrites postgres:// and postgresql:// URLs to the pgx5:// scheme
// the migrate driver registers. Other inputs are returned unchanged.
func Pgx5DSN(dsn string) string {
	for _, prefix := range []string{"postgres://", "postgresql://"} {
		if rest, found := strings.CutPrefix(dsn, prefix); found {
			return "pgx5://" + rest
		}
	}
	return dsn
}

// migrateLogger sends golang-migrate chatter to slog at debug level.
type migrateLogger struct {
	logger *slog.Logger
}

func (l *migrateLogger) Printf(format string, args ...any) {
	l.logger.Debug("migration_log", slog.String("line", strings.TrimSpace(fmt.Sprintf(format, args...))))
}

func (l *migrateLogger) Verbose() bool { return false }
