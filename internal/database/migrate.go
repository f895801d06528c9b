package database

import (
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	migratedb "github.com/golang-migrate/migrate/v4/database"
	migratepostgres "github.com/golang-migrate/migrate/v4/database/postgres"
	migratesqlite3 "github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/sirupsen/logrus"
)

//go:embed migrations
var migrationsFS embed.FS

// RunMigrations brings the schema up to the latest version.
func (d *Database) RunMigrations() error {
	m, err := d.migrationInstance()
	if err != nil {
		return err
	}

	// m.Close would also close the shared connection pool.
	err = m.Up()
	if errors.Is(err, migrate.ErrNoChange) {
		d.logger.Info("No new database migrations to apply")
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	d.logger.WithField("dialect", d.dialect).Info("Database migrations applied successfully")
	return nil
}

func (d *Database) migrationInstance() (*migrate.Migrate, error) {
	sqlDB, err := d.db.DB()
	if err != nil {
		return nil, err
	}

	sourceDriver, err := iofs.New(migrationsFS, "migrations/"+d.dialect)
	if err != nil {
		return nil, fmt.Errorf("failed to load migrations: %w", err)
	}

	var driver migratedb.Driver
	switch d.dialect {
	case DialectSQLite:
		driver, err = migratesqlite3.WithInstance(sqlDB, &migratesqlite3.Config{})
	case DialectPostgres:
		driver, err = migratepostgres.WithInstance(sqlDB, &migratepostgres.Config{})
	default:
		return nil, fmt.Errorf("no migrations for dialect %q", d.dialect)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to prepare migration driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", sourceDriver, d.dialect, driver)
	if err != nil {
		return nil, err
	}
	m.Log = &migrationLogger{logger: d.logger}

	return m, nil
}

type migrationLogger struct {
	logger *logrus.Logger
}

func (l *migrationLogger) Printf(format string, v ...interface{}) {
	l.logger.Debugf("Migration: "+format, v...)
}

func (l *migrationLogger) Verbose() bool {
	return l.logger.IsLevelEnabled(logrus.DebugLevel)
}
