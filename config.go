package main

import (
	"fmt"
	"time"

	"fc-manager-backend/internal/store"

	"github.com/caarlos0/env/v11"
)

// Config is read from the environment.
type Config struct {
	Port            string        `env:"PORT" envDefault:"8080"`
	Backend         string        `env:"BACKEND" envDefault:"postgres"`
	DatabaseURL     string        `env:"DATABASE_URL"`
	SQLitePath      string        `env:"SQLITE_PATH" envDefault:"fcmanager.db"`
	DBRetries       int           `env:"DB_CONNECT_RETRIES" envDefault:"60"`
	DBRetryDelay    time.Duration `env:"DB_RETRY_DELAY" envDefault:"2s"`
	RedisURL        string        `env:"REDIS_URL" envDefault:"redis:6379"`
	CacheTTL        time.Duration `env:"CACHE_TTL" envDefault:"5m"`
	CORSOrigins     []string      `env:"CORS_ORIGINS" envDefault:"*" envSeparator:","`
	LogLevel        string        `env:"LOG_LEVEL" envDefault:"info"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// loadConfig parses the environment and checks the backend choice.
func loadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}
	switch cfg.Backend {
	case store.BackendPostgres, store.BackendSQLite:
	default:
		return cfg, fmt.Errorf("BACKEND must be %q or %q, got %q", store.BackendPostgres, store.BackendSQLite, cfg.Backend)
	}
	return cfg, nil
}

// storeConfig selects the persistence backend.
func (c Config) storeConfig() store.Config {
	return store.Config{
		Backend:        c.Backend,
		DatabaseURL:    c.DatabaseURL,
		SQLitePath:     c.SQLitePath,
		ConnectRetries: c.DBRetries,
		RetryDelay:     c.DBRetryDelay,
	}
}
