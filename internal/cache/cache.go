// Package cache is an optional Redis read-through cache for rendered results.
// A nil *ResultCache is valid and always computes.
package cache

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"askdata.insights.org/internal/logging"
	"askdata.insights.org/internal/metrics"
)

const (
	DefaultTTL = 24 * time.Hour
	keyPrefix  = "askdata:result:"
)

type ResultCache struct {
	client  *redis.Client
	ttl     time.Duration
	group   singleflight.Group
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// Open connects to Redis at addr. It returns nil when addr is empty.
func Open(addr string, ttl time.Duration, logger *slog.Logger, m *metrics.Metrics) *ResultCache {
	if addr == "" {
		return nil
	}
	return New(redis.NewClient(&redis.Options{Addr: addr}), ttl, logger, m)
}

func New(client *redis.Client, ttl time.Duration, logger *slog.Logger, m *metrics.Metrics) *ResultCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &ResultCache{client: client, ttl: ttl, logger: logger, metrics: m}
}

// Ping checks the connection.
func (c *ResultCache) Ping(ctx context.Context) error {
	if c == nil {
		return nil
	}
	return c.client.Ping(ctx).Err()
}

// GetOrCompute returns the cached value for key, or stores and returns the
// result of compute. Concurrent misses for one key share a single compute.
// Redis failures are logged and fall back to compute.
func (c *ResultCache) GetOrCompute(ctx context.Context, key string, compute func() ([]byte, error)) ([]byte, error) {
	if c == nil {
		return compute()
	}

	v, err, _ := c.group.Do(key, func() (interface{}, error) {
		data, err := c.client.Get(ctx, keyPrefix+key).Bytes()
		if err == nil {
			c.count(true)
			return data, nil
		}
		if !errors.Is(err, redis.Nil) {
			logging.LogError(c.logger, "cache_get_failed", err,
				slog.String("component", "result_cache"),
				slog.String("key", key))
		}
		c.count(false)

		data, err = compute()
		if err != nil {
			return nil, err
		}
		if err := c.client.Set(ctx, keyPrefix+key, data, c.ttl).Err(); err != nil {
			logging.LogError(c.logger, "cache_set_failed", err,
				slog.String("component", "result_cache"),
				slog.String("key", key))
		}
		return data, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]byte), nil
}

func (c *ResultCache) count(hit bool) {
	if c.metrics == nil {
		return
	}
	if hit {
		c.metrics.CacheHitsTotal.Inc()
	} else {
		c.metrics.CacheMissesTotal.Inc()
	}
}

func (c *ResultCache) Close() error {
	if c == nil {
		return nil
	}
	return c.client.Close()
}
