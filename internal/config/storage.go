package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Storage backends.
const (
	BackendMemory   = "memory"
	BackendFile     = "file"
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
)

// DefaultStorageDir is where the file backend writes when STORAGE_DIR is unset.
const DefaultStorageDir = ".resume_enhancer"

// StorageConfig selects and configures the persistence backend.
type StorageConfig struct {
	Backend     string
	Dir         string
	DatabaseURL string
	RedisURL    string
	RedisTTL    time.Duration
	Breaker     bool
}

// NewStorageConfig reads STORAGE_BACKEND (default: file), STORAGE_DIR, DATABASE_URL,
// REDIS_URL, REDIS_TTL (a duration, default: no expiry) and STORAGE_BREAKER.
func NewStorageConfig() (*StorageConfig, error) {
	cfg, err := storageFromEnv()
	if err != nil {
		return nil, err
	}
	return cfg, cfg.normalize()
}

func storageFromEnv() (*StorageConfig, error) {
	cfg := &StorageConfig{
		Backend:     strings.ToLower(os.Getenv("STORAGE_BACKEND")),
		Dir:         os.Getenv("STORAGE_DIR"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		RedisURL:    os.Getenv("REDIS_URL"),
	}
	if cfg.Backend == "" {
		cfg.Backend = BackendFile
	}
	if cfg.Dir == "" {
		cfg.Dir = DefaultStorageDir
	}

	if ttl := os.Getenv("REDIS_TTL"); ttl != "" {
		d, err := time.ParseDuration(ttl)
		if err != nil {
			return nil, fmt.Errorf("invalid REDIS_TTL: %v", err)
		}
		cfg.RedisTTL = d
	}

	if b := os.Getenv("STORAGE_BREAKER"); b != "" {
		enabled, err := strconv.ParseBool(b)
		if err != nil {
			return nil, fmt.Errorf("invalid STORAGE_BREAKER: %v", err)
		}
		cfg.Breaker = enabled
	}

	return cfg, nil
}

func (c *StorageConfig) normalize() error {
	switch c.Backend {
	case BackendMemory, BackendFile:
	case BackendPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required for the postgres backend")
		}
	case BackendRedis:
		if c.RedisURL == "" {
			return fmt.Errorf("REDIS_URL is required for the redis backend")
		}
	default:
		return fmt.Errorf("unknown storage backend: %q", c.Backend)
	}
	if c.RedisTTL < 0 {
		return fmt.Errorf("REDIS_TTL must not be negative, got: %s", c.RedisTTL)
	}
	return nil
}
