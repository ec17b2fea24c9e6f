package cache

import (
	"context"
	"testing"
	"time"

	"lazyfood/internal/infrastructure/config"
	"lazyfood/internal/pkg/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(maxSize int, ttl time.Duration) *config.Config {
	return &config.Config{
		Cache: config.CacheConfig{
			Enabled:         true,
			Backend:         config.CacheBackendMemory,
			MaxSize:         maxSize,
			TTL:             ttl,
			CleanupInterval: time.Minute,
		},
	}
}

func TestMemoryCacheRoundtrip(t *testing.T) {
	c := newMemoryCache(testConfig(10, time.Minute))
	defer c.Close()
	ctx := context.Background()

	_, err := c.Get(ctx, "prompt uno")
	assert.ErrorIs(t, err, common.ErrCacheMiss)

	require.NoError(t, c.Set(ctx, "prompt uno", `{"text": "hola"}`))

	value, err := c.Get(ctx, "prompt uno")
	require.NoError(t, err)
	assert.Equal(t, `{"text": "hola"}`, value)

	_, err = c.Get(ctx, "otro prompt")
	assert.ErrorIs(t, err, common.ErrCacheMiss)
}

func TestMemoryCacheExpiry(t *testing.T) {
	c := newMemoryCache(testConfig(10, time.Millisecond))
	defer c.Close()
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "prompt", "valor"))
	time.Sleep(5 * time.Millisecond)

	_, err := c.Get(ctx, "prompt")
	assert.ErrorIs(t, err, common.ErrCacheMiss)
}

func TestMemoryCacheEvictsWhenFull(t *testing.T) {
	c := newMemoryCache(testConfig(2, time.Minute))
	defer c.Close()
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "a", "1"))
	require.NoError(t, c.Set(ctx, "b", "2"))

	// Touch "a" so "b" is the LRU victim.
	_, err := c.Get(ctx, "a")
	require.NoError(t, err)

	require.NoError(t, c.Set(ctx, "c", "3"))

	_, err = c.Get(ctx, "a")
	assert.NoError(t, err)
	_, err = c.Get(ctx, "b")
	assert.ErrorIs(t, err, common.ErrCacheMiss)
	_, err = c.Get(ctx, "c")
	assert.NoError(t, err)
}

func TestMemoryCacheStats(t *testing.T) {
	c := newMemoryCache(testConfig(10, time.Minute))
	defer c.Close()
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "p", "v"))
	_, _ = c.Get(ctx, "p")
	_, _ = c.Get(ctx, "desconocido")

	stats := c.Stats()
	assert.Equal(t, int64(1), stats["hits"])
	assert.Equal(t, int64(1), stats["misses"])
	assert.Equal(t, 1, stats["size"])
}
