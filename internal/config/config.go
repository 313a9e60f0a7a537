package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	DatabaseURL     string
	Port            string
	PrometheusPort  string
	LogLevel        string
	MigrationsPath  string
	AutoMigrate     bool
	ShutdownTimeout time.Duration
}

// Load loads configuration from environment variables. A .env file in the
// working directory is read first when present; variables already set in
// the environment win over it.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	cfg := &Config{
		Port:           getEnvOrDefault("PORT", "8080"),
		PrometheusPort: os.Getenv("PROMETHEUS_PORT"),
		LogLevel:       getEnvOrDefault("LOG_LEVEL", "info"),
		MigrationsPath: getEnvOrDefault("MIGRATIONS_PATH", "migrations"),
	}
	if _, set := os.LookupEnv("PROMETHEUS_PORT"); !set {
		cfg.PrometheusPort = "9090"
	}

	if cfg.DatabaseURL = os.Getenv("DATABASE_URL"); cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is required")
	}

	var err error
	if cfg.AutoMigrate, err = strconv.ParseBool(getEnvOrDefault("AUTO_MIGRATE", "false")); err != nil {
		return nil, fmt.Errorf("invalid AUTO_MIGRATE: %w", err)
	}
	if cfg.ShutdownTimeout, err = time.ParseDuration(getEnvOrDefault("SHUTDOWN_TIMEOUT", "10s")); err != nil {
		return nil, fmt.Errorf("invalid SHUTDOWN_TIMEOUT: %w", err)
	}
	if cfg.ShutdownTimeout <= 0 {
		return nil, fmt.Errorf("invalid SHUTDOWN_TIMEOUT: must be positive, got %s", cfg.ShutdownTimeout)
	}

	return cfg, nil
}

// getEnvOrDefault returns environment variable value or default if not set
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
