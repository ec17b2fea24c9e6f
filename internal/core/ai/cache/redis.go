package cache

import (
	"context"
	"fmt"
	"sync/atomic"

	"lazyfood/internal/infrastructure/config"
	"lazyfood/internal/pkg/common"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// RedisCache stores prompt responses in redis so multiple instances share
// one cache.
type RedisCache struct {
	client *redis.Client
	cfg    config.CacheConfig
	hits   int64
	misses int64
}

func newRedisCache(cfg *config.Config) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr: cfg.Cache.RedisAddr,
	})
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}

	common.LogInfo("redis cache initialized",
		zap.String("addr", cfg.Cache.RedisAddr),
		zap.Duration("ttl", cfg.Cache.TTL),
	)
	return &RedisCache{client: client, cfg: cfg.Cache}, nil
}

func (c *RedisCache) Get(ctx context.Context, prompt string) (string, error) {
	value, err := c.client.Get(ctx, promptKey(prompt)).Result()
	if err == redis.Nil {
		atomic.AddInt64(&c.misses, 1)
		common.LogCacheMiss("redis")
		return "", common.ErrCacheMiss
	}
	if err != nil {
		return "", fmt.Errorf("redis get: %w", err)
	}
	atomic.AddInt64(&c.hits, 1)
	common.LogCacheHit("redis")
	return value, nil
}

func (c *RedisCache) Set(ctx context.Context, prompt string, value string) error {
	if err := c.client.Set(ctx, promptKey(prompt), value, c.cfg.TTL).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func (c *RedisCache) Stats() map[string]any {
	hits := atomic.LoadInt64(&c.hits)
	misses := atomic.LoadInt64(&c.misses)
	hitRatio := 0.0
	if hits+misses > 0 {
		hitRatio = float64(hits) / float64(hits+misses)
	}
	return map[string]any{
		"backend":   "redis",
		"hits":      hits,
		"misses":    misses,
		"hit_ratio": hitRatio,
	}
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}
