// Package config provides configuration loading and validation for the CLI and server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Config represents the configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults, environment variables or CLI flags.
type Config struct {
	// Data
	Catalog      string `json:"catalog,omitempty"`       // Path to a YAML catalog; the built-in catalog is used when empty
	WatchCatalog bool   `json:"watch_catalog,omitempty"` // Reload the catalog file when it changes
	JobID        string `json:"job_id,omitempty"`        // Job context for CLI sessions

	// Storage
	StorageBackend string `json:"storage_backend,omitempty" validate:"omitempty,oneof=memory file postgres redis"`
	StorageDir     string `json:"storage_dir,omitempty"`  // Directory for the file backend
	DatabaseURL    string `json:"database_url,omitempty"` // PostgreSQL connection URL
	RedisURL       string `json:"redis_url,omitempty"`    // Redis connection URL
	Breaker        bool   `json:"breaker,omitempty"`      // Wrap the store in a circuit breaker

	// Server
	Port        int `json:"port,omitempty" validate:"omitempty,min=1,max=65535"`
	MetricsPort int `json:"metrics_port,omitempty" validate:"omitempty,min=1,max=65535"`

	// Behavior
	Verbose bool `json:"verbose,omitempty"` // Print detailed session output
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	if c.Port != 0 && c.Port == c.MetricsPort {
		return fmt.Errorf("config error: 'port' and 'metrics_port' must differ")
	}

	if c.Catalog != "" {
		if _, err := os.Stat(c.Catalog); os.IsNotExist(err) {
			return fmt.Errorf("config error: catalog file not found: %s", c.Catalog)
		}
	} else if c.WatchCatalog {
		return fmt.Errorf("config error: 'watch_catalog' requires 'catalog'")
	}

	switch c.StorageBackend {
	case BackendPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("config error: 'database_url' is required for the postgres backend")
		}
	case BackendRedis:
		if c.RedisURL == "" {
			return fmt.Errorf("config error: 'redis_url' is required for the redis backend")
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.Catalog == "" {
		result.Catalog = defaults.Catalog
	}
	if result.JobID == "" {
		result.JobID = defaults.JobID
	}
	if result.StorageBackend == "" {
		result.StorageBackend = defaults.StorageBackend
	}
	if result.StorageDir == "" {
		result.StorageDir = defaults.StorageDir
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.RedisURL == "" {
		result.RedisURL = defaults.RedisURL
	}

	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.MetricsPort == 0 {
		result.MetricsPort = defaults.MetricsPort
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}

// Storage derives the storage configuration, letting the config file override
// what the environment provides.
func (c *Config) Storage() (*StorageConfig, error) {
	sc, err := storageFromEnv()
	if err != nil {
		return nil, err
	}
	if c.StorageBackend != "" {
		sc.Backend = strings.ToLower(c.StorageBackend)
	}
	if c.StorageDir != "" {
		sc.Dir = c.StorageDir
	}
	if c.DatabaseURL != "" {
		sc.DatabaseURL = c.DatabaseURL
	}
	if c.RedisURL != "" {
		sc.RedisURL = c.RedisURL
	}
	if c.Breaker {
		sc.Breaker = true
	}
	if err := sc.normalize(); err != nil {
		return nil, err
	}
	return sc, nil
}
