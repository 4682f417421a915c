package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

// RunMigrations applies every pending migration found under "migrations" in
// fsys and reports the schema version afterwards.
func RunMigrations(db *sql.DB, fsys fs.FS) (uint, error) {
	driver, err := postgres.WithInstance(db, &postgres.Config{MigrationsTable: "assassin_migrations"})
	if err != nil {
		return 0, fmt.Errorf("could not create database driver: %w", err)
	}

	src, err := iofs.New(fsys, "migrations")
	if err != nil {
		return 0, fmt.Errorf("could not create iofs source: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, "postgres", driver)
	if err != nil {
		return 0, fmt.Errorf("could not create migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return 0, fmt.Errorf("could not run up migrations: %w", err)
	}

	version, dirty, err := m.Version()
	if err != nil {
		return 0, fmt.Errorf("could not read schema version: %w", err)
	}
	if dirty {
		return version, fmt.Errorf("schema version %d is dirty", version)
	}
	return version, nil
}
