package main

import (
	"testing"
	"time"

	"fc-manager-backend/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := loadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, store.BackendPostgres, cfg.Backend)
	assert.Equal(t, 60, cfg.DBRetries)
	assert.Equal(t, 2*time.Second, cfg.DBRetryDelay)
	assert.Equal(t, 5*time.Minute, cfg.CacheTTL)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
}

func TestLoadConfig_FromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("BACKEND", "sqlite")
	t.Setenv("SQLITE_PATH", "/tmp/career.db")
	t.Setenv("CACHE_TTL", "30s")
	t.Setenv("CORS_ORIGINS", "http://localhost:5173,https://fc.example.com")

	cfg, err := loadConfig()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 30*time.Second, cfg.CacheTTL)
	assert.Equal(t, []string{"http://localhost:5173", "https://fc.example.com"}, cfg.CORSOrigins)

	sc := cfg.storeConfig()
	assert.Equal(t, store.BackendSQLite, sc.Backend)
	assert.Equal(t, "/tmp/career.db", sc.SQLitePath)
}

func TestLoadConfig_RejectsUnknownBackend(t *testing.T) {
	t.Setenv("BACKEND", "mongo")

	_, err := loadConfig()
	assert.ErrorContains(t, err, "BACKEND")
}

func TestNewLogger(t *testing.T) {
	logger, err := newLogger("debug")
	require.NoError(t, err)
	assert.NotNil(t, logger)

	_, err = newLogger("loud")
	assert.Error(t, err)
}
