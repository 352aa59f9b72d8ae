package repo

import (
	"context"
	"encoding/json"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/light-bringer/menucat-service/internal/app/catalog/contracts"
	"github.com/light-bringer/menucat-service/internal/app/catalog/domain"
)

const (
	DefaultStatsCacheTTL    = 5 * time.Minute
	DefaultStatsCachePrefix = "menucat:"

	statsKey = "category_statistics"
)

// RedisStatisticsCache stores the category rollup in Redis under one key.
// Writes that change category, price or availability call Invalidate.
type RedisStatisticsCache struct {
	client *redis.Client
	ttl    time.Duration
	prefix string

	hits   int64
	misses int64
}

// StatsCacheOption customizes a RedisStatisticsCache.
type StatsCacheOption func(*RedisStatisticsCache)

// WithTTL sets how long a rollup stays cached.
func WithTTL(ttl time.Duration) StatsCacheOption {
	return func(c *RedisStatisticsCache) {
		c.ttl = ttl
	}
}

// WithPrefix sets the Redis key prefix.
func WithPrefix(prefix string) StatsCacheOption {
	return func(c *RedisStatisticsCache) {
		c.prefix = prefix
	}
}

// NewStatisticsCache creates a Redis-backed statistics cache.
func NewStatisticsCache(client *redis.Client, opts ...StatsCacheOption) *RedisStatisticsCache {
	c := &RedisStatisticsCache{
		client: client,
		ttl:    DefaultStatsCacheTTL,
		prefix: DefaultStatsCachePrefix,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var _ contracts.StatisticsCache = (*RedisStatisticsCache)(nil)

type cachedCategory struct {
	Category       string  `json:"category"`
	Count          int64   `json:"count"`
	AveragePrice   float64 `json:"average_price"`
	AvailableCount int64   `json:"available_count"`
}

func (c *RedisStatisticsCache) key() string {
	return c.prefix + statsKey
}

// Get returns the cached rollup. A missing or corrupt entry is a miss.
// Redis failures are returned so the caller can fall back to the store.
func (c *RedisStatisticsCache) Get(ctx context.Context) ([]domain.CategoryStatistics, bool, error) {
	val, err := c.client.Get(ctx, c.key()).Result()
	if err == redis.Nil {
		atomic.AddInt64(&c.misses, 1)
		return nil, false, nil
	}
	if err != nil {
		atomic.AddInt64(&c.misses, 1)
		return nil, false, fmt.Errorf("failed to read statistics from Redis: %w", err)
	}

	var cached []cachedCategory
	if err := json.Unmarshal([]byte(val), &cached); err != nil {
		atomic.AddInt64(&c.misses, 1)
		return nil, false, nil
	}

	stats := make([]domain.CategoryStatistics, 0, len(cached))
	for _, s := range cached {
		stats = append(stats, domain.CategoryStatistics{
			Category:       domain.Category(s.Category),
			Count:          s.Count,
			AveragePrice:   s.AveragePrice,
			AvailableCount: s.AvailableCount,
		})
	}

	atomic.AddInt64(&c.hits, 1)
	return stats, true, nil
}

// Set stores stats with the configured TTL.
func (c *RedisStatisticsCache) Set(ctx context.Context, stats []domain.CategoryStatistics) error {
	cached := make([]cachedCategory, 0, len(stats))
	for _, s := range stats {
		cached = append(cached, cachedCategory{
			Category:       string(s.Category),
			Count:          s.Count,
			AveragePrice:   s.AveragePrice,
			AvailableCount: s.AvailableCount,
		})
	}

	data, err := json.Marshal(cached)
	if err != nil {
		return fmt.Errorf("failed to marshal statistics: %w", err)
	}
	if err := c.client.Set(ctx, c.key(), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set statistics in Redis: %w", err)
	}
	return nil
}

// Invalidate drops the cached rollup.
func (c *RedisStatisticsCache) Invalidate(ctx context.Context) error {
	if err := c.client.Del(ctx, c.key()).Err(); err != nil {
		return fmt.Errorf("failed to invalidate statistics in Redis: %w", err)
	}
	return nil
}

// Stats returns hit/miss counters for monitoring.
func (c *RedisStatisticsCache) Stats() map[string]interface{} {
	hits := atomic.LoadInt64(&c.hits)
	misses := atomic.LoadInt64(&c.misses)
	total := hits + misses

	stats := map[string]interface{}{
		"hits":          hits,
		"misses":        misses,
		"total_lookups": total,
	}
	if total > 0 {
		stats["hit_rate"] = float64(hits) / float64(total)
	}
	return stats
}
