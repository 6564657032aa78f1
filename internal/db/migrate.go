package db

import (
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/pressly/goose/v3"
)

//go:embed migrations
var migrationsFS embed.FS

// Each supported driver carries its own DDL tree: SQLite and Postgres
// disagree on identity columns and timestamp types.
var drivers = map[string]struct {
	dialect string
	dir     string
}{
	"sqlite": {dialect: "sqlite3", dir: "migrations/sqlite"},
	"pgx":    {dialect: "postgres", dir: "migrations/postgres"},
}

func setupGoose(driver string) error {
	d, ok := drivers[driver]
	if !ok {
		return fmt.Errorf("unsupported database driver %q", driver)
	}

	err := goose.SetDialect(d.dialect)
	if err != nil {
		return fmt.Errorf("failed to set dialect: %w", err)
	}

	migrationsDir, err := fs.Sub(migrationsFS, d.dir)
	if err != nil {
		return fmt.Errorf("failed to get migrations directory: %w", err)
	}
	goose.SetBaseFS(migrationsDir)

	return nil
}

func RunMigrations(database *sql.DB, driver string) error {
	err := setupGoose(driver)
	if err != nil {
		return err
	}

	err = goose.Up(database, ".")
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	slog.Info("migrations completed successfully")
	return nil
}
