package procure

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisCacheConfig configures the Redis cache backend.
type RedisCacheConfig struct {
	// Addr is the Redis server address ("host:port").
	Addr string

	// Password is optional.
	Password string

	// DB selects the logical database.
	DB int

	// KeyPrefix namespaces this cache's keys. Defaults to "procure:".
	KeyPrefix string

	// Client reuses an existing client instead of dialing Addr.
	Client redis.UniversalClient
}

// RedisCache stores JSON-encoded cache entries in Redis, letting Redis
// enforce the TTL so expired entries never need sweeping.
type RedisCache struct {
	client redis.UniversalClient
	prefix string
	owned  bool
}

// NewRedisCache builds a Redis-backed cache from the config.
func NewRedisCache(config *RedisCacheConfig) (*RedisCache, error) {
	if config == nil {
		return nil, fmt.Errorf("%w: redis configuration is required", ErrUnknownCacheBackend)
	}

	prefix := config.KeyPrefix
	if prefix == "" {
		prefix = "procure:"
	}

	client := config.Client
	owned := false

	if client == nil {
		if config.Addr == "" {
			return nil, fmt.Errorf("%w: redis address is required", ErrUnknownCacheBackend)
		}

		client = redis.NewClient(&redis.Options{
			Addr:     config.Addr,
			Password: config.Password,
			DB:       config.DB,
		})
		owned = true
	}

	return &RedisCache{
		client: client,
		prefix: prefix,
		owned:  owned,
	}, nil
}

// Get retrieves an entry. Redis TTL makes most expiries invisible here,
// but entries written close to their deadline are still checked.
func (c *RedisCache) Get(ctx context.Context, key string) (*CacheEntry, error) {
	data, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("%w: %s", ErrCacheKeyNotFound, key)
		}

		return nil, fmt.Errorf("failed to get redis entry: %w", err)
	}

	var entry CacheEntry

	err = json.Unmarshal(data, &entry)
	if err != nil {
		return nil, fmt.Errorf("failed to decode cache entry: %w", err)
	}

	if entry.IsExpired() {
		_ = c.client.Del(ctx, c.prefix+key).Err()

		return nil, fmt.Errorf("%w: %s", ErrCacheEntryExpired, key)
	}

	return &entry, nil
}

// Set stores an entry with its remaining TTL.
func (c *RedisCache) Set(ctx context.Context, key string, entry *CacheEntry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to encode cache entry: %w", err)
	}

	ttl := time.Until(entry.ExpiresAt)
	if ttl <= 0 {
		return nil
	}

	err = c.client.Set(ctx, c.prefix+key, data, ttl).Err()
	if err != nil {
		return fmt.Errorf("failed to set redis entry: %w", err)
	}

	return nil
}

// Delete removes an entry.
func (c *RedisCache) Delete(ctx context.Context, key string) error {
	err := c.client.Del(ctx, c.prefix+key).Err()
	if err != nil {
		return fmt.Errorf("failed to delete redis entry: %w", err)
	}

	return nil
}

// Clear removes every key under this cache's prefix.
func (c *RedisCache) Clear(ctx context.Context) error {
	iter := c.client.Scan(ctx, 0, c.prefix+"*", 0).Iterator()

	for iter.Next(ctx) {
		err := c.client.Del(ctx, iter.Val()).Err()
		if err != nil {
			return fmt.Errorf("failed to delete redis entry: %w", err)
		}
	}

	if err := iter.Err(); err != nil {
		return fmt.Errorf("failed to scan redis keys: %w", err)
	}

	return nil
}

// Has reports whether a live entry exists for the key.
func (c *RedisCache) Has(ctx context.Context, key string) bool {
	count, err := c.client.Exists(ctx, c.prefix+key).Result()

	return err == nil && count > 0
}

// Close releases the client when this cache dialed it.
func (c *RedisCache) Close() error {
	if c.owned {
		err := c.client.Close()
		if err != nil {
			return fmt.Errorf("failed to close redis client: %w", err)
		}
	}

	return nil
}
