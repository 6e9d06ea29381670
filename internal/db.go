package internal

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

// NewDB opens the catalog database and brings its schema up to date.
// A postgres:// URL selects Postgres; anything else is treated as a
// SQLite file path. Running against an already-migrated database is a
// no-op.
func NewDB(databaseURL string) (*sql.DB, error) {
	var (
		db         *sql.DB
		driver     database.Driver
		driverName string
		err        error
	)

	if strings.HasPrefix(databaseURL, "postgres://") || strings.HasPrefix(databaseURL, "postgresql://") {
		driverName = "postgres"
		db, err = sql.Open("postgres", databaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to open db: %w", err)
		}
		driver, err = postgres.WithInstance(db, &postgres.Config{})
	} else {
		driverName = "sqlite3"
		db, err = sql.Open("sqlite3", databaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to open db: %w", err)
		}
		driver, err = sqlite3.WithInstance(db, &sqlite3.Config{})
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create driver: %w", err)
	}

	migrationsPath := fmt.Sprintf("file://files/migrations/%s", driverName)
	m, err := migrate.NewWithDatabaseInstance(migrationsPath, driverName, driver)
	if err != nil {
		return nil, fmt.Errorf("failed to create migrate: %w", err)
	}
	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return nil, fmt.Errorf("failed to migrate: %w", err)
	}

	return db, nil
}
