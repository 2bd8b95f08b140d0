package groupcache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisConfig mirrors the host's cache.Config shape, scoped to the one
// setting this domain needs (an address and a TTL) rather than the
// host's full partner-billing-aware configuration.
type RedisConfig struct {
	Addr string
	TTL  time.Duration
}

// RedisClient wraps a *redis.Client for the group/path cache. Unlike the
// host's package-level singleton (internal/cache/redis.go's GetClient),
// this is an explicit value the CLI constructs only when a Redis address
// is configured, since the cache is optional here rather than mandatory
// infrastructure.
type RedisClient struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRedisClient dials cfg.Addr and verifies connectivity with a PING,
// matching the host's GetClient dial-then-check pattern.
func NewRedisClient(ctx context.Context, cfg RedisConfig) (*RedisClient, error) {
	rdb := redis.NewClient(&redis.Options{Addr: cfg.Addr})
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connecting to redis at %s: %w", cfg.Addr, err)
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &RedisClient{rdb: rdb, ttl: ttl}, nil
}

// Load fetches and decodes the cache document stored at key. Returns
// ok=false if the key is absent.
func (c *RedisClient) Load(ctx context.Context, key string) (Document, bool, error) {
	data, err := c.rdb.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return Document{}, false, nil
	}
	if err != nil {
		return Document{}, false, fmt.Errorf("reading redis key %s: %w", key, err)
	}
	doc, err := Unmarshal(data)
	if err != nil {
		return Document{}, false, fmt.Errorf("parsing cached document at %s: %w", key, err)
	}
	return doc, true, nil
}

// Save encodes and stores doc at key with the client's configured TTL.
func (c *RedisClient) Save(ctx context.Context, key string, doc Document) error {
	data, err := Marshal(doc)
	if err != nil {
		return fmt.Errorf("encoding cache: %w", err)
	}
	if err := c.rdb.Set(ctx, key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("writing redis key %s: %w", key, err)
	}
	return nil
}

// Close releases the underlying connection pool.
func (c *RedisClient) Close() error { return c.rdb.Close() }
