package storage

import (
	"context"
	"fmt"
	"log"

	"github.com/jonathan/resume-enhancer/internal/config"
)

// Store persists opaque values by string key. Load returns nil, nil when the
// key is absent and Remove of an absent key succeeds.
type Store interface {
	Save(ctx context.Context, key string, value []byte) error
	Load(ctx context.Context, key string) ([]byte, error)
	Remove(ctx context.Context, key string) error
	Close() error
}

// Open connects the backend described by cfg.
func Open(ctx context.Context, cfg *config.StorageConfig) (Store, error) {
	var (
		s   Store
		err error
	)
	switch cfg.Backend {
	case config.BackendMemory:
		s = NewMemory()
	case config.BackendFile:
		s, err = NewFile(cfg.Dir)
	case config.BackendPostgres:
		s, err = ConnectPostgres(ctx, cfg.DatabaseURL)
	case config.BackendRedis:
		s, err = ConnectRedis(ctx, cfg.RedisURL, cfg.RedisTTL)
	default:
		return nil, fmt.Errorf("unknown storage backend: %q", cfg.Backend)
	}
	if err != nil {
		return nil, err
	}

	if cfg.Breaker {
		s = WithBreaker(s, DefaultBreakerSettings(cfg.Backend))
	}
	log.Printf("[storage] using %s backend", cfg.Backend)
	return s, nil
}
