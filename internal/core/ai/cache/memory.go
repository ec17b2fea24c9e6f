package cache

import (
	"context"
	"sync"
	"time"

	"lazyfood/internal/infrastructure/config"
	"lazyfood/internal/pkg/common"

	"go.uber.org/zap"
)

// MemoryCache is an in-process prompt cache with TTL expiry and LRU eviction
// when full.
type MemoryCache struct {
	cfg   config.CacheConfig
	mu    sync.Mutex
	store map[string]memoryEntry
	stats cacheStats
	done  chan struct{}
}

type memoryEntry struct {
	value       string
	expiresAt   time.Time
	lastAccess  time.Time
	accessCount int
}

type cacheStats struct {
	hits      int64
	misses    int64
	evictions int64
}

func newMemoryCache(cfg *config.Config) *MemoryCache {
	c := &MemoryCache{
		cfg:   cfg.Cache,
		store: make(map[string]memoryEntry),
		done:  make(chan struct{}),
	}
	go c.cleanupLoop()

	common.LogInfo("memory cache initialized",
		zap.Int("max_size", cfg.Cache.MaxSize),
		zap.Duration("ttl", cfg.Cache.TTL),
		zap.Duration("cleanup_interval", cfg.Cache.CleanupInterval),
	)
	return c
}

func (c *MemoryCache) Get(_ context.Context, prompt string) (string, error) {
	key := promptKey(prompt)

	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.store[key]
	if !ok {
		c.stats.misses++
		common.LogCacheMiss("memory")
		return "", common.ErrCacheMiss
	}
	if time.Now().After(entry.expiresAt) {
		delete(c.store, key)
		c.stats.evictions++
		c.stats.misses++
		common.LogCacheMiss("memory")
		return "", common.ErrCacheMiss
	}

	entry.lastAccess = time.Now()
	entry.accessCount++
	c.store[key] = entry
	c.stats.hits++
	common.LogCacheHit("memory")
	return entry.value, nil
}

func (c *MemoryCache) Set(_ context.Context, prompt string, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.store) >= c.cfg.MaxSize {
		c.removeExpired()
		if len(c.store) >= c.cfg.MaxSize {
			c.evictLRU()
		}
		if len(c.store) >= c.cfg.MaxSize {
			common.LogWarn("cache full", zap.Int("size", len(c.store)))
			return common.ErrCacheFull
		}
	}

	now := time.Now()
	c.store[promptKey(prompt)] = memoryEntry{
		value:      value,
		expiresAt:  now.Add(c.cfg.TTL),
		lastAccess: now,
	}
	return nil
}

func (c *MemoryCache) cleanupLoop() {
	ticker := time.NewTicker(c.cfg.CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.mu.Lock()
			c.removeExpired()
			c.mu.Unlock()
		case <-c.done:
			return
		}
	}
}

// removeExpired must run with the lock held.
func (c *MemoryCache) removeExpired() {
	now := time.Now()
	for key, entry := range c.store {
		if now.After(entry.expiresAt) {
			delete(c.store, key)
			c.stats.evictions++
		}
	}
}

// evictLRU drops the least-used entry, ties broken by oldest access. Must run
// with the lock held.
func (c *MemoryCache) evictLRU() {
	var victim string
	var victimAccess time.Time
	var victimCount int

	for key, entry := range c.store {
		if victim == "" ||
			entry.accessCount < victimCount ||
			(entry.accessCount == victimCount && entry.lastAccess.Before(victimAccess)) {
			victim = key
			victimAccess = entry.lastAccess
			victimCount = entry.accessCount
		}
	}
	if victim != "" {
		delete(c.store, victim)
		c.stats.evictions++
	}
}

func (c *MemoryCache) Stats() map[string]any {
	c.mu.Lock()
	defer c.mu.Unlock()

	lookups := c.stats.hits + c.stats.misses
	hitRatio := 0.0
	if lookups > 0 {
		hitRatio = float64(c.stats.hits) / float64(lookups)
	}
	return map[string]any{
		"backend":   "memory",
		"size":      len(c.store),
		"max_size":  c.cfg.MaxSize,
		"hits":      c.stats.hits,
		"misses":    c.stats.misses,
		"evictions": c.stats.evictions,
		"hit_ratio": hitRatio,
	}
}

func (c *MemoryCache) Close() error {
	close(c.done)
	c.mu.Lock()
	defer c.mu.Unlock()
	c.store = make(map[string]memoryEntry)
	return nil
}
