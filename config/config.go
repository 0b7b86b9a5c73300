package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Port            string
	DatabaseURL     string
	DBDriver        string // postgres | pgx
	RunMigrations   bool
	SeedData        bool
	LogLevel        string
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
}

// Load reads the configuration from the environment.
func Load() (Config, error) {
	return load(os.LookupEnv)
}

func load(lookup func(string) (string, bool)) (Config, error) {
	getEnv := func(key, fallback string) string {
		if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
		return fallback
	}

	cfg := Config{
		Port:     getEnv("PORT", "8082"),
		DBDriver: strings.ToLower(getEnv("DB_DRIVER", "postgres")),
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	cfg.DatabaseURL = getEnv("DATABASE_URL", "")
	if cfg.DatabaseURL == "" {
		return Config{}, errors.New("DATABASE_URL is required")
	}
	if cfg.DBDriver != "postgres" && cfg.DBDriver != "pgx" {
		return Config{}, fmt.Errorf("DB_DRIVER must be postgres or pgx, got %q", cfg.DBDriver)
	}

	var err error
	if cfg.RunMigrations, err = parseBool("RUN_MIGRATIONS", getEnv("RUN_MIGRATIONS", "true")); err != nil {
		return Config{}, err
	}
	if cfg.SeedData, err = parseBool("SEED_DATA", getEnv("SEED_DATA", "false")); err != nil {
		return Config{}, err
	}
	if cfg.RequestTimeout, err = parseMillis("REQUEST_TIMEOUT_MS", getEnv("REQUEST_TIMEOUT_MS", "5000")); err != nil {
		return Config{}, err
	}
	if cfg.ShutdownTimeout, err = parseMillis("SHUTDOWN_TIMEOUT_MS", getEnv("SHUTDOWN_TIMEOUT_MS", "10000")); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func parseBool(key, v string) (bool, error) {
	switch strings.ToLower(v) {
	case "1", "true", "yes", "on":
		return true, nil
	case "0", "false", "no", "off":
		return false, nil
	}
	return false, fmt.Errorf("%s: invalid boolean %q", key, v)
}

func parseMillis(key, v string) (time.Duration, error) {
	ms, err := strconv.Atoi(v)
	if err != nil || ms <= 0 {
		return 0, fmt.Errorf("%s: must be a positive number of milliseconds, got %q", key, v)
	}
	return time.Duration(ms) * time.Millisecond, nil
}

// Addr is the listen address for the HTTP server.
func (c Config) Addr() string {
	return ":" + c.Port
}
