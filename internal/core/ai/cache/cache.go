package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"lazyfood/internal/infrastructure/config"
)

// Cache stores raw model response bodies keyed by prompt hash. Get returns
// common.ErrCacheMiss when the prompt has no live entry.
type Cache interface {
	Get(ctx context.Context, prompt string) (string, error)
	Set(ctx context.Context, prompt string, value string) error
	Stats() map[string]any
	Close() error
}

// New builds the configured cache backend. Returns nil when caching is
// disabled; callers treat a nil cache as a permanent miss.
func New(cfg *config.Config) (Cache, error) {
	if !cfg.Cache.Enabled {
		return nil, nil
	}

	switch cfg.Cache.Backend {
	case config.CacheBackendRedis:
		return newRedisCache(cfg)
	case config.CacheBackendMemory:
		return newMemoryCache(cfg), nil
	default:
		return nil, fmt.Errorf("unknown cache backend %q", cfg.Cache.Backend)
	}
}

func promptKey(prompt string) string {
	hash := sha256.Sum256([]byte(prompt))
	return "ai:prompt:" + hex.EncodeToString(hash[:])
}
