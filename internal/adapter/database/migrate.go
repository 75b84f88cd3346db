package database

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"goalsapp/db"
	"goalsapp/pkg/config"
)

// RunMigrations applies the embedded migrations of dialect. A sqlite handle
// stays open afterwards, a postgres handle is closed with the migrator.
func RunMigrations(sqlDB *sql.DB, dialect string) error {
	m, err := newMigrator(sqlDB, dialect)
	if err != nil {
		return err
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}

	if dialect == config.DriverPostgres {
		sourceErr, dbErr := m.Close()
		return errors.Join(sourceErr, dbErr)
	}

	return nil
}

// SchemaVersion reports the last applied migration.
func SchemaVersion(sqlDB *sql.DB, dialect string) (uint, bool, error) {
	m, err := newMigrator(sqlDB, dialect)
	if err != nil {
		return 0, false, err
	}

	version, dirty, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}

	return version, dirty, err
}

func newMigrator(sqlDB *sql.DB, dialect string) (*migrate.Migrate, error) {
	source, err := iofs.New(db.Migrations, "migrations/"+dialect)
	if err != nil {
		return nil, err
	}

	switch dialect {
	case config.DriverSQLite:
		driver, err := sqlite3.WithInstance(sqlDB, &sqlite3.Config{})
		if err != nil {
			return nil, fmt.Errorf("failed to create migration driver: %w", err)
		}

		return migrate.NewWithInstance("iofs", source, "sqlite3", driver)
	case config.DriverPostgres:
		driver, err := postgres.WithInstance(sqlDB, &postgres.Config{})
		if err != nil {
			return nil, fmt.Errorf("failed to create migration driver: %w", err)
		}

		return migrate.NewWithInstance("iofs", source, "postgres", driver)
	default:
		return nil, fmt.Errorf("no migrations for dialect %q", dialect)
	}
}
