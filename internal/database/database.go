package database

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	_ "github.com/mattn/go-sqlite3"

	"condohub/server/config"
)

const (
	DialectSQLite   = "sqlite"
	DialectPostgres = "postgres"
)

type Database struct {
	db      *gorm.DB
	dialect string
	logger  *logrus.Logger
}

// NewDatabase opens the configured database. Schema changes are applied
// separately with RunMigrations.
func NewDatabase(cfg config.DatabaseConfig, logger *logrus.Logger) (*Database, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case DialectSQLite:
		if dir := filepath.Dir(cfg.DSN); cfg.DSN != ":memory:" && dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("failed to create database directory: %w", err)
			}
		}
		dialector = sqlite.Open(cfg.DSN)
	case DialectPostgres:
		dialector = postgres.Open(cfg.DSN)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}

	return open(dialector, cfg.Driver, logger)
}

func open(dialector gorm.Dialector, dialect string, logger *logrus.Logger) (*Database, error) {
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.New(logger, gormlogger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", dialect, err)
	}

	return &Database{db: db, dialect: dialect, logger: logger}, nil
}

// NewTestDB returns a migrated in-memory sqlite database.
func NewTestDB() (*Database, error) {
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	d, err := open(sqlite.Open(":memory:"), DialectSQLite, logger)
	if err != nil {
		return nil, err
	}

	// Every connection to ":memory:" is a separate database.
	sqlDB, err := d.db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)

	if err := d.RunMigrations(); err != nil {
		return nil, err
	}
	return d, nil
}

func (d *Database) Ping(ctx context.Context) error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (d *Database) Close() error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (d *Database) GetDB() *gorm.DB {
	return d.db
}

func (d *Database) Dialect() string {
	return d.dialect
}
