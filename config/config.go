package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

type ServerConfig struct {
	Port string `env:"SERVER_PORT" envDefault:"5250"`

	// Origins allowed to call the API from a browser
	AllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:5173"`

	// Seconds to wait for in-flight requests on shutdown
	ShutdownTimeout int `env:"SERVER_SHUTDOWN_TIMEOUT" envDefault:"10"`
}

type DatabaseConfig struct {
	// sqlite or postgres
	Driver string `env:"DB_DRIVER" envDefault:"sqlite"`

	// File path for sqlite, connection URL for postgres
	DSN string `env:"DB_DSN" envDefault:"database/condohub.db"`
}

type LogConfig struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
}

type BatchConfig struct {
	// Number of units written per upsert
	MaxBatchSize int `env:"BATCH_MAX_SIZE" envDefault:"100"`

	// Maximum number of retries for a failed batch
	MaxRetries int `env:"BATCH_MAX_RETRIES" envDefault:"2"`

	// Delay between retries in seconds
	RetryDelay int `env:"BATCH_RETRY_DELAY" envDefault:"1"`
}

type Config struct {
	Server          ServerConfig
	Database        DatabaseConfig
	Log             LogConfig
	BatchProcessing BatchConfig
}

// RetryDelayDuration returns the configured retry delay.
func (b BatchConfig) RetryDelayDuration() time.Duration {
	return time.Duration(b.RetryDelay) * time.Second
}

// ShutdownTimeoutDuration returns the configured shutdown grace period.
func (s ServerConfig) ShutdownTimeoutDuration() time.Duration {
	return time.Duration(s.ShutdownTimeout) * time.Second
}

// LoadConfig reads an optional .env file and then the process environment.
func LoadConfig() (*Config, error) {
	return LoadConfigFrom(".env")
}

// LoadConfigFrom is LoadConfig with an explicit dotenv path. A missing file
// is not an error; variables already set in the environment take precedence.
func LoadConfigFrom(dotenvPath string) (*Config, error) {
	if err := godotenv.Load(dotenvPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load %s: %w", dotenvPath, err)
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Database.Driver {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.Database.Driver)
	}
	if c.BatchProcessing.MaxBatchSize <= 0 {
		return fmt.Errorf("BATCH_MAX_SIZE must be positive, got %d", c.BatchProcessing.MaxBatchSize)
	}
	if c.BatchProcessing.MaxRetries < 0 {
		return fmt.Errorf("BATCH_MAX_RETRIES must not be negative, got %d", c.BatchProcessing.MaxRetries)
	}
	return nil
}
