package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envMap(m map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := m[key]
		return v, ok
	}
}

func TestFromEnv_Defaults(t *testing.T) {
	cfg, err := FromEnv(envMap(nil))
	require.NoError(t, err)

	assert.Equal(t, DefaultSpannerDB, cfg.SpannerDB)
	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, "9090", cfg.GRPCPort)
	assert.False(t, cfg.CacheEnabled())
	assert.Equal(t, 5*time.Minute, cfg.StatsCacheTTL)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
}

func TestFromEnv_Overrides(t *testing.T) {
	cfg, err := FromEnv(envMap(map[string]string{
		"SPANNER_DATABASE": "projects/p/instances/i/databases/d",
		"HTTP_PORT":        "8081",
		"REDIS_ADDR":       "localhost:6379",
		"REDIS_DB":         "2",
		"STATS_CACHE_TTL":  "30s",
		"LOG_LEVEL":        "debug",
	}))
	require.NoError(t, err)

	assert.Equal(t, "projects/p/instances/i/databases/d", cfg.SpannerDB)
	assert.Equal(t, "8081", cfg.HTTPPort)
	assert.True(t, cfg.CacheEnabled())
	assert.Equal(t, 2, cfg.RedisDB)
	assert.Equal(t, 30*time.Second, cfg.StatsCacheTTL)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
}

func TestFromEnv_Invalid(t *testing.T) {
	tests := map[string]map[string]string{
		"bad database":  {"SPANNER_DATABASE": "menu-db"},
		"bad port":      {"HTTP_PORT": "http"},
		"port range":    {"GRPC_PORT": "70000"},
		"same ports":    {"HTTP_PORT": "9090"},
		"bad redis db":  {"REDIS_DB": "one"},
		"negative ttl":  {"STATS_CACHE_TTL": "-1m"},
		"bad ttl":       {"STATS_CACHE_TTL": "soon"},
		"bad log level": {"LOG_LEVEL": "loud"},
		"zero shutdown": {"SHUTDOWN_TIMEOUT": "0s"},
	}

	for name, env := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := FromEnv(envMap(env))
			assert.Error(t, err)
		})
	}
}

func TestLoad_DotEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("HTTP_PORT=8181\nLOG_LEVEL=warn\n"), 0o600))
	t.Chdir(dir)
	t.Setenv("LOG_LEVEL", "error")
	t.Cleanup(func() { os.Unsetenv("HTTP_PORT") })

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8181", cfg.HTTPPort)
	assert.Equal(t, slog.LevelError, cfg.LogLevel, "environment wins over .env")
}
