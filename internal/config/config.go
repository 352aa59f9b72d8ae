// Package config loads service settings from the environment, optionally
// seeded from a .env file in the working directory.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the service.
type Config struct {
	SpannerDB       string
	HTTPPort        string
	GRPCPort        string
	RedisAddr       string // empty disables the statistics cache
	RedisDB         int
	StatsCacheTTL   time.Duration
	LogLevel        slog.Level
	ShutdownTimeout time.Duration
}

// Default for local development with the emulator.
const DefaultSpannerDB = "projects/test-project/instances/dev-instance/databases/menu-catalog-db"

// Load reads .env (if present) and then the environment.
// Variables already set in the environment win over .env.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}
	return FromEnv(os.LookupEnv)
}

// FromEnv builds a Config from lookup, applying defaults.
func FromEnv(lookup func(string) (string, bool)) (*Config, error) {
	get := func(key, fallback string) string {
		if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
		return fallback
	}

	cfg := &Config{
		SpannerDB: get("SPANNER_DATABASE", DefaultSpannerDB),
		HTTPPort:  get("HTTP_PORT", "8080"),
		GRPCPort:  get("GRPC_PORT", "9090"),
		RedisAddr: get("REDIS_ADDR", ""),
	}

	var err error
	if cfg.RedisDB, err = strconv.Atoi(get("REDIS_DB", "0")); err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}
	if cfg.StatsCacheTTL, err = time.ParseDuration(get("STATS_CACHE_TTL", "5m")); err != nil {
		return nil, fmt.Errorf("invalid STATS_CACHE_TTL: %w", err)
	}
	if cfg.ShutdownTimeout, err = time.ParseDuration(get("SHUTDOWN_TIMEOUT", "10s")); err != nil {
		return nil, fmt.Errorf("invalid SHUTDOWN_TIMEOUT: %w", err)
	}
	if err := cfg.LogLevel.UnmarshalText([]byte(get("LOG_LEVEL", "info"))); err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings the service cannot start with.
func (c *Config) Validate() error {
	if !strings.HasPrefix(c.SpannerDB, "projects/") || strings.Count(c.SpannerDB, "/") != 5 {
		return fmt.Errorf("SPANNER_DATABASE must look like projects/P/instances/I/databases/D, got %q", c.SpannerDB)
	}
	for name, port := range map[string]string{"HTTP_PORT": c.HTTPPort, "GRPC_PORT": c.GRPCPort} {
		n, err := strconv.Atoi(port)
		if err != nil || n < 1 || n > 65535 {
			return fmt.Errorf("%s must be a port number, got %q", name, port)
		}
	}
	if c.HTTPPort == c.GRPCPort {
		return fmt.Errorf("HTTP_PORT and GRPC_PORT must differ")
	}
	if c.RedisDB < 0 {
		return fmt.Errorf("REDIS_DB must be non-negative")
	}
	if c.StatsCacheTTL <= 0 {
		return fmt.Errorf("STATS_CACHE_TTL must be positive")
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("SHUTDOWN_TIMEOUT must be positive")
	}
	return nil
}

// CacheEnabled reports whether a Redis address is configured.
func (c *Config) CacheEnabled() bool {
	return c.RedisAddr != ""
}
