package procure

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/nats-io/nats.go"
)

// NATSKVConfig configures the NATS JetStream key-value cache backend,
// useful when several dashboard processes should share one cache.
type NATSKVConfig struct {
	// URLs are the NATS server addresses.
	URLs []string

	// Bucket is the KV bucket name; created if it does not exist.
	Bucket string

	// Credentials is an optional path to a NATS credentials file.
	Credentials string

	// TTL is the bucket-level TTL applied when the bucket is created.
	TTL time.Duration

	// Conn reuses an existing connection instead of dialing URLs.
	Conn *nats.Conn
}

// NATSKVCache stores cache entries in a NATS JetStream KV bucket. Entries
// are JSON-encoded and keys are base64url-encoded to fit the KV key charset.
type NATSKVCache struct {
	conn   *nats.Conn
	kv     nats.KeyValue
	owned  bool
	bucket string
}

// NewNATSKVCache connects (or reuses the configured connection) and binds
// the bucket, creating it on first use.
func NewNATSKVCache(config *NATSKVConfig) (*NATSKVCache, error) {
	if config == nil || config.Bucket == "" {
		return nil, fmt.Errorf("%w: NATS bucket is required", ErrUnknownCacheBackend)
	}

	conn := config.Conn
	owned := false

	if conn == nil {
		var opts []nats.Option
		if config.Credentials != "" {
			opts = append(opts, nats.UserCredentials(config.Credentials))
		}

		var err error

		conn, err = nats.Connect(strings.Join(config.URLs, ","), opts...)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to NATS: %w", err)
		}

		owned = true
	}

	js, err := conn.JetStream()
	if err != nil {
		if owned {
			conn.Close()
		}

		return nil, fmt.Errorf("failed to get JetStream context: %w", err)
	}

	kv, err := js.KeyValue(config.Bucket)
	if errors.Is(err, nats.ErrBucketNotFound) {
		kv, err = js.CreateKeyValue(&nats.KeyValueConfig{
			Bucket: config.Bucket,
			TTL:    config.TTL,
		})
	}

	if err != nil {
		if owned {
			conn.Close()
		}

		return nil, fmt.Errorf("failed to bind KV bucket %q: %w", config.Bucket, err)
	}

	return &NATSKVCache{
		conn:   conn,
		kv:     kv,
		owned:  owned,
		bucket: config.Bucket,
	}, nil
}

func encodeKVKey(key string) string {
	return base64.URLEncoding.WithPadding(base64.NoPadding).EncodeToString([]byte(key))
}

// Get retrieves an entry, treating expired ones as misses.
func (c *NATSKVCache) Get(ctx context.Context, key string) (*CacheEntry, error) {
	kvEntry, err := c.kv.Get(encodeKVKey(key))
	if err != nil {
		if errors.Is(err, nats.ErrKeyNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrCacheKeyNotFound, key)
		}

		return nil, fmt.Errorf("failed to get KV entry: %w", err)
	}

	var entry CacheEntry

	err = json.Unmarshal(kvEntry.Value(), &entry)
	if err != nil {
		return nil, fmt.Errorf("failed to decode cache entry: %w", err)
	}

	if entry.IsExpired() {
		_ = c.kv.Delete(encodeKVKey(key))

		return nil, fmt.Errorf("%w: %s", ErrCacheEntryExpired, key)
	}

	return &entry, nil
}

// Set stores an entry.
func (c *NATSKVCache) Set(ctx context.Context, key string, entry *CacheEntry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to encode cache entry: %w", err)
	}

	_, err = c.kv.Put(encodeKVKey(key), data)
	if err != nil {
		return fmt.Errorf("failed to put KV entry: %w", err)
	}

	return nil
}

// Delete removes an entry.
func (c *NATSKVCache) Delete(ctx context.Context, key string) error {
	err := c.kv.Delete(encodeKVKey(key))
	if err != nil && !errors.Is(err, nats.ErrKeyNotFound) {
		return fmt.Errorf("failed to delete KV entry: %w", err)
	}

	return nil
}

// Clear purges every key in the bucket.
func (c *NATSKVCache) Clear(ctx context.Context) error {
	keys, err := c.kv.Keys()
	if err != nil {
		if errors.Is(err, nats.ErrNoKeysFound) {
			return nil
		}

		return fmt.Errorf("failed to list KV keys: %w", err)
	}

	for _, key := range keys {
		err = c.kv.Purge(key)
		if err != nil {
			return fmt.Errorf("failed to purge KV key: %w", err)
		}
	}

	return nil
}

// Has reports whether a live entry exists for the key.
func (c *NATSKVCache) Has(ctx context.Context, key string) bool {
	_, err := c.Get(ctx, key)

	return err == nil
}

// Close releases the connection when this cache dialed it.
func (c *NATSKVCache) Close() {
	if c.owned && c.conn != nil {
		c.conn.Close()
	}
}
