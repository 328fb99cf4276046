package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("SERVER_PORT", "")
	t.Setenv("STORAGE_BACKEND", "")
	t.Setenv("WISHLIST_BACKEND", "")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("PG_DSN", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, BackendMemory, cfg.Storage.Backend)
	assert.Equal(t, BackendMemory, cfg.Storage.WishlistBackend)
	assert.True(t, cfg.Storage.SeedOnStart)
	assert.Equal(t, 20, cfg.Search.DefaultLimit)
	assert.Equal(t, 100, cfg.Search.MaxLimit)
	assert.Contains(t, cfg.GetPostgreSQLDSN(), "dbname=")
}

func TestLoadFallsBackOnBadNumbers(t *testing.T) {
	t.Setenv("SERVER_PORT", "eighty")
	t.Setenv("SEED_ON_START", "maybe")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.True(t, cfg.Storage.SeedOnStart)
	assert.Len(t, cfg.Warnings, 2)
}

func TestLoadRejectsUnknownBackends(t *testing.T) {
	tests := []struct {
		name, key, value string
	}{
		{"storage", "STORAGE_BACKEND", "sqlite"},
		{"wishlist", "WISHLIST_BACKEND", "memcached"},
		{"port", "SERVER_PORT", "70000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestGetPostgreSQLDSNPrefersURL(t *testing.T) {
	cfg := &Config{PostgreSQL: PostgreSQLConfig{DSN: "postgres://u@db/hostels"}}
	assert.Equal(t, "postgres://u@db/hostels", cfg.GetPostgreSQLDSN())
}
