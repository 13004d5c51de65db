// Package cache stores report results in Redis, keyed by the digest of the
// input dataset. The cache is an optimization only: every Redis failure
// degrades to a miss and is logged.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ahrav/go-gradebook/internal/config"
	"github.com/ahrav/go-gradebook/internal/domain"
)

const (
	// keyPrefix namespaces result keys.
	keyPrefix = "gradebook:result:"

	connectionTimeout = 5 * time.Second
	defaultPoolSize   = 4
)

// Client is the subset of *redis.Client used by the cache.
type Client interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
}

// ResultCache caches results by dataset digest. A nil *ResultCache or a
// disabled cache misses on every lookup and ignores stores.
type ResultCache struct {
	client  Client
	ttl     time.Duration
	enabled bool
	logger  *slog.Logger

	hits   atomic.Int64
	misses atomic.Int64
	errors atomic.Int64
}

// Stats is a snapshot of cache counters.
type Stats struct {
	Hits   int64
	Misses int64
	Errors int64
}

// New creates a cache over client. If client is nil and caching is enabled,
// a Redis client is created from cfg; when Redis does not answer a ping the
// client is closed and the cache is disabled.
func New(ctx context.Context, cfg config.CacheConfig, client Client) *ResultCache {
	logger := slog.Default().With("component", "cache")

	if client == nil && cfg.Enabled {
		rc := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
			PoolSize: defaultPoolSize,
		})

		timeoutCtx, cancel := context.WithTimeout(ctx, connectionTimeout)
		defer cancel()

		if err := rc.Ping(timeoutCtx).Err(); err != nil {
			logger.Warn("Redis connection failed, cache disabled", "addr", cfg.RedisAddr, "error", err)
			if cerr := rc.Close(); cerr != nil {
				logger.Debug("closing Redis client failed", "error", cerr)
			}
			return &ResultCache{ttl: cfg.TTL, logger: logger}
		}
		client = rc
	}

	return &ResultCache{
		client:  client,
		ttl:     cfg.TTL,
		enabled: cfg.Enabled && client != nil,
		logger:  logger,
	}
}

// Key returns the Redis key of a dataset digest.
func Key(digest string) string { return keyPrefix + digest }

// Get returns the cached result for digest.
func (c *ResultCache) Get(ctx context.Context, digest string) (domain.Result, bool) {
	if c == nil || !c.enabled {
		return domain.Result{}, false
	}

	data, err := c.client.Get(ctx, Key(digest)).Bytes()
	if errors.Is(err, redis.Nil) {
		c.misses.Add(1)
		return domain.Result{}, false
	}
	if err != nil {
		c.errors.Add(1)
		c.logger.Warn("cache get failed", "digest", digest, "error", err)
		return domain.Result{}, false
	}

	var result domain.Result
	if err := json.Unmarshal(data, &result); err != nil {
		c.errors.Add(1)
		c.logger.Warn("discarding corrupted cache entry", "digest", digest, "error", err)
		return domain.Result{}, false
	}

	c.hits.Add(1)
	c.logger.Debug("cache hit", "digest", digest)
	return result, true
}

// Put stores result under digest. Failures are logged and otherwise ignored.
func (c *ResultCache) Put(ctx context.Context, digest string, result domain.Result) {
	if c == nil || !c.enabled {
		return
	}

	if err := c.put(ctx, digest, result); err != nil {
		c.errors.Add(1)
		c.logger.Warn("cache put failed", "digest", digest, "error", err)
	}
}

func (c *ResultCache) put(ctx context.Context, digest string, result domain.Result) error {
	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}
	return c.client.Set(ctx, Key(digest), data, c.ttl).Err()
}

// Enabled reports whether lookups can hit.
func (c *ResultCache) Enabled() bool { return c != nil && c.enabled }

// Stats returns the cache counters.
func (c *ResultCache) Stats() Stats {
	if c == nil {
		return Stats{}
	}
	return Stats{Hits: c.hits.Load(), Misses: c.misses.Load(), Errors: c.errors.Load()}
}
