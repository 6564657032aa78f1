package db

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

func Init(driver, connection string) (*sqlx.DB, error) {
	// SQLite: create data directory if needed
	if driver == "sqlite" {
		err := os.MkdirAll(filepath.Dir(connection), 0o755)
		if err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
	}

	database, err := sqlx.Connect(driver, connection)
	if err != nil {
		return nil, fmt.Errorf("failed to connect: %w", err)
	}

	database.SetMaxOpenConns(25)
	database.SetMaxIdleConns(5)
	database.SetConnMaxLifetime(5 * time.Minute)

	slog.Info("database connected", "driver", driver)
	return database, nil
}

func Close(database *sqlx.DB) error {
	if database != nil {
		return database.Close()
	}
	return nil
}
