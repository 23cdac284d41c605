// Package config loads and validates application configuration from
// environment variables and an optional YAML file.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds all configuration values for the API server and the ingest tool.
// Values are populated by Load; env vars override the optional CONFIG_FILE.
type Config struct {
	// Port is the TCP port the HTTP server listens on.
	Port string `yaml:"port" env:"PORT" env-default:"8080"`

	// DatabaseURL is the Postgres connection string. Required.
	DatabaseURL string `yaml:"database_url" env:"DATABASE_URL"`

	// LogLevel controls the minimum log level.
	// Valid values: debug, info, warn, error.
	LogLevel string `yaml:"log_level" env:"LOG_LEVEL" env-default:"info"`

	// CORSOrigins is the list of allowed cross-origin request origins.
	// Set CORS_ORIGINS to a comma-separated list to override.
	CORSOrigins Origins `yaml:"cors_origins" env:"CORS_ORIGINS" env-default:"http://localhost:8000"`

	// RawTripsPath is the raw trip feed read by the clean stage.
	RawTripsPath string `yaml:"raw_trips_path" env:"RAW_TRIPS_PATH" env-default:"train/train.csv"`

	// CleanedTripsPath is the cleaned CSV artifact written by the clean
	// stage and read by the load stage.
	CleanedTripsPath string `yaml:"cleaned_trips_path" env:"CLEANED_TRIPS_PATH" env-default:"database/cleaned_trips.csv"`

	// IngestLimit keeps only the first N raw records when > 0.
	IngestLimit int `yaml:"ingest_limit" env:"INGEST_LIMIT" env-default:"0"`
}

// Origins is a list of CORS origins read from a comma-separated env var.
type Origins []string

// SetValue implements cleanenv.Setter.
func (o *Origins) SetValue(s string) error {
	*o = splitCSV(s)
	return nil
}

// Load reads configuration and returns a Config.
// If CONFIG_FILE names a YAML file it is read first and env vars override it.
// Returns an error listing any required values that are not set.
func Load() (Config, error) {
	var cfg Config

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return Config{}, fmt.Errorf("config.Load: %s: %w", path, err)
		}
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, fmt.Errorf("config.Load: %w", err)
	}

	var missing []string
	if cfg.DatabaseURL == "" {
		missing = append(missing, "DATABASE_URL")
	}
	if len(missing) > 0 {
		return Config{}, fmt.Errorf("required environment variables not set: %s", strings.Join(missing, ", "))
	}
	if cfg.IngestLimit < 0 {
		return Config{}, fmt.Errorf("INGEST_LIMIT must not be negative, got %d", cfg.IngestLimit)
	}

	return cfg, nil
}

// splitCSV splits a comma-separated string into a trimmed slice, ignoring empty entries.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
