package procure_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quotia-io/procure/pkg/procure"
)

func TestMemoryCache_SetAndGet(t *testing.T) {
	t.Parallel()

	cache := procure.NewMemoryCache(10)
	ctx := context.Background()

	entry := &procure.CacheEntry{
		Data:      []byte("test data"),
		ExpiresAt: time.Now().Add(1 * time.Hour),
		ETag:      "abc123",
	}

	err := cache.Set(ctx, "key1", entry)
	require.NoError(t, err)

	retrieved, err := cache.Get(ctx, "key1")
	require.NoError(t, err)
	assert.Equal(t, entry.Data, retrieved.Data)
	assert.Equal(t, entry.ETag, retrieved.ETag)
}

func TestMemoryCache_GetNonExistent(t *testing.T) {
	t.Parallel()

	cache := procure.NewMemoryCache(10)

	_, err := cache.Get(context.Background(), "nonexistent")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "key not found")
}

func TestMemoryCache_GetExpired(t *testing.T) {
	t.Parallel()

	cache := procure.NewMemoryCache(10)
	ctx := context.Background()

	entry := &procure.CacheEntry{
		Data:      []byte("test data"),
		ExpiresAt: time.Now().Add(-1 * time.Hour),
	}

	err := cache.Set(ctx, "key1", entry)
	require.NoError(t, err)

	_, err = cache.Get(ctx, "key1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "entry expired")

	// Expired entries are evicted on read
	assert.Equal(t, 0, cache.Len())
}

func TestMemoryCache_DeleteAndClear(t *testing.T) {
	t.Parallel()

	cache := procure.NewMemoryCache(10)
	ctx := context.Background()

	for i := range 3 {
		err := cache.Set(ctx, fmt.Sprintf("key%d", i), &procure.CacheEntry{
			Data:      []byte("data"),
			ExpiresAt: time.Now().Add(1 * time.Hour),
		})
		require.NoError(t, err)
	}

	err := cache.Delete(ctx, "key0")
	require.NoError(t, err)
	assert.False(t, cache.Has(ctx, "key0"))
	assert.Equal(t, 2, cache.Len())

	err = cache.Clear(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, cache.Len())
}

func TestMemoryCache_MaxSize(t *testing.T) {
	t.Parallel()

	cache := procure.NewMemoryCache(2)
	ctx := context.Background()

	set := func(key string, ttl time.Duration) {
		err := cache.Set(ctx, key, &procure.CacheEntry{
			Data:      []byte(key),
			ExpiresAt: time.Now().Add(ttl),
		})
		require.NoError(t, err)
	}

	set("short", 1*time.Minute)
	set("long", 1*time.Hour)
	set("third", 30*time.Minute)

	// The entry closest to expiry is evicted to make room
	assert.Equal(t, 2, cache.Len())
	assert.False(t, cache.Has(ctx, "short"))
	assert.True(t, cache.Has(ctx, "long"))
	assert.True(t, cache.Has(ctx, "third"))
}

func TestMemoryCache_Cleanup(t *testing.T) {
	t.Parallel()

	cache := procure.NewMemoryCache(10)
	ctx := context.Background()

	err := cache.Set(ctx, "live", &procure.CacheEntry{
		Data:      []byte("live"),
		ExpiresAt: time.Now().Add(1 * time.Hour),
	})
	require.NoError(t, err)

	err = cache.Set(ctx, "stale", &procure.CacheEntry{
		Data:      []byte("stale"),
		ExpiresAt: time.Now().Add(-1 * time.Minute),
	})
	require.NoError(t, err)

	cache.Cleanup()

	assert.Equal(t, 1, cache.Len())
	assert.True(t, cache.Has(ctx, "live"))
}

func TestCacheManager_GetCacheKey(t *testing.T) {
	t.Parallel()

	manager := procure.NewCacheManager(nil, nil)

	key := manager.GetCacheKey("GET", "/suppliers", nil)
	assert.Equal(t, "GET:/suppliers", key)

	// Params are sorted so equivalent requests share a key
	key = manager.GetCacheKey("GET", "/suppliers", map[string]string{
		"status": "active",
		"page":   "2",
	})
	assert.Equal(t, "GET:/suppliers:page=2&status=active", key)
}

func TestCacheManager_SetAndGet(t *testing.T) {
	t.Parallel()

	manager := procure.NewCacheManager(procure.NewMemoryCache(10), nil)
	ctx := context.Background()

	err := manager.Set(ctx, "key1", []byte("payload"), 1*time.Hour)
	require.NoError(t, err)

	data, err := manager.Get(ctx, "key1")
	require.NoError(t, err)
	assert.Equal(t, []byte("payload"), data)

	stats := manager.GetStats()
	assert.Equal(t, int64(1), stats.Hits)
	assert.Equal(t, int64(1), stats.Sets)
}

func TestCacheManager_Miss(t *testing.T) {
	t.Parallel()

	manager := procure.NewCacheManager(procure.NewMemoryCache(10), nil)

	_, err := manager.Get(context.Background(), "missing")
	require.Error(t, err)

	stats := manager.GetStats()
	assert.Equal(t, int64(0), stats.Hits)
	assert.Equal(t, int64(1), stats.Misses)
}

func TestCacheManager_NilCache(t *testing.T) {
	t.Parallel()

	manager := procure.NewCacheManager(nil, nil)
	ctx := context.Background()

	_, err := manager.Get(ctx, "key")
	require.ErrorIs(t, err, procure.ErrNoCacheConfigured)

	err = manager.Set(ctx, "key", []byte("data"), time.Minute)
	require.ErrorIs(t, err, procure.ErrNoCacheConfigured)
}

func TestCacheStats_GetHitRate(t *testing.T) {
	t.Parallel()

	stats := &procure.CacheStats{}
	assert.InDelta(t, 0.0, stats.GetHitRate(), 0.001)

	stats = &procure.CacheStats{Hits: 3, Misses: 1}
	assert.InDelta(t, 0.75, stats.GetHitRate(), 0.001)
}

func TestCachingPolicy_ShouldCache(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		policy     *procure.CachingPolicy
		method     string
		path       string
		statusCode int
		expected   bool
	}{
		{
			name:       "default caches successful GET",
			policy:     procure.DefaultCachingPolicy(),
			method:     "GET",
			path:       "/suppliers",
			statusCode: 200,
			expected:   true,
		},
		{
			name:       "default skips POST",
			policy:     procure.DefaultCachingPolicy(),
			method:     "POST",
			path:       "/suppliers",
			statusCode: 200,
			expected:   false,
		},
		{
			name:       "default skips errors",
			policy:     procure.DefaultCachingPolicy(),
			method:     "GET",
			path:       "/suppliers",
			statusCode: 404,
			expected:   false,
		},
		{
			name:       "default excludes stats paths",
			policy:     procure.DefaultCachingPolicy(),
			method:     "GET",
			path:       "/suppliers/stats",
			statusCode: 200,
			expected:   false,
		},
		{
			name: "include list restricts caching",
			policy: &procure.CachingPolicy{
				CacheGET:     true,
				IncludePaths: []string{"/manufacturers"},
			},
			method:     "GET",
			path:       "/suppliers",
			statusCode: 200,
			expected:   false,
		},
		{
			name: "errors cached when opted in",
			policy: &procure.CachingPolicy{
				CacheGET:    true,
				CacheErrors: true,
			},
			method:     "GET",
			path:       "/suppliers",
			statusCode: 500,
			expected:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := tt.policy.ShouldCache(tt.method, tt.path, tt.statusCode)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestNoOpCache(t *testing.T) {
	t.Parallel()

	cache := procure.NewNoOpCache()
	ctx := context.Background()

	err := cache.Set(ctx, "key", &procure.CacheEntry{Data: []byte("data")})
	require.NoError(t, err)

	_, err = cache.Get(ctx, "key")
	require.ErrorIs(t, err, procure.ErrNoCacheConfigured)
	assert.False(t, cache.Has(ctx, "key"))
}

func TestCacheChain_Promotion(t *testing.T) {
	t.Parallel()

	primary := procure.NewMemoryCache(10)
	secondary := procure.NewMemoryCache(10)
	chain := procure.NewCacheChain(primary, secondary)
	ctx := context.Background()

	entry := &procure.CacheEntry{
		Data:      []byte("shared"),
		ExpiresAt: time.Now().Add(1 * time.Hour),
	}

	// Seed only the second layer
	err := secondary.Set(ctx, "key1", entry)
	require.NoError(t, err)

	retrieved, err := chain.Get(ctx, "key1")
	require.NoError(t, err)
	assert.Equal(t, entry.Data, retrieved.Data)

	// The hit is promoted into the first layer
	assert.True(t, primary.Has(ctx, "key1"))
}
