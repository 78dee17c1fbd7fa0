package cache

import (
	"context"
	"fmt"
	"time"

	"pawn-backend/internal/config"
	"pawn-backend/internal/logger"

	"github.com/redis/go-redis/v9"
)

// Stock summary cache keys
const (
	StockSummaryPattern   = "stock_summary:*"
	StockSummaryDashboard = "stock_summary:dashboard"
	SettingsPattern       = "settings:*"
	DateOverrideKey       = "settings:date_override"
)

var client *redis.Client

// Init initializes the Redis connection. On failure the client stays nil
// and every cache call becomes a no-op.
func Init(cfg *config.Config) error {
	if !cfg.Redis.Enabled {
		return nil
	}

	c := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := c.Ping(ctx).Err(); err != nil {
		c.Close()
		client = nil
		return err
	}
	client = c
	return nil
}

// SetClient replaces the process client; nil disables caching
func SetClient(c *redis.Client) {
	client = c
}

// GetClient returns the Redis client
func GetClient() *redis.Client {
	return client
}

// GetCached returns cached data for a key
func GetCached(ctx context.Context, key string) ([]byte, bool) {
	if client == nil {
		return nil, false
	}
	data, err := client.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	return data, true
}

// SetCached stores data with a TTL
func SetCached(ctx context.Context, key string, data []byte, ttl time.Duration) {
	if client == nil {
		return
	}
	if err := client.Set(ctx, key, data, ttl).Err(); err != nil {
		logger.Component("cache").WithError(err).WithField("key", key).Warn("cache set failed")
	}
}

// InvalidatePattern removes all keys matching a glob pattern
func InvalidatePattern(ctx context.Context, pattern string) {
	if client == nil {
		return
	}
	keys, err := client.Keys(ctx, pattern).Result()
	if err == nil && len(keys) > 0 {
		client.Del(ctx, keys...)
	}
}

// InvalidateStockSummaryCaches clears every cached stock summary response
// Called when: Sync, SweepOverdue, SetStatus, Reset
func InvalidateStockSummaryCaches(ctx context.Context) {
	InvalidatePattern(ctx, StockSummaryPattern)
}

// InvalidateSettingCaches clears cached settings
// Called when: date override set or cleared. The clock feeds overdue
// classification, so stock summary responses go too.
func InvalidateSettingCaches(ctx context.Context) {
	InvalidatePattern(ctx, SettingsPattern)
	InvalidateStockSummaryCaches(ctx)
}

// IsHealthy returns true if Redis connection is working
func IsHealthy() bool {
	if client == nil {
		return false
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	return client.Ping(ctx).Err() == nil
}

// PreWarmKey fills key in the background so the next request after an
// invalidation does not pay for the rebuild.
func PreWarmKey(key string, fetcher func(ctx context.Context) ([]byte, error), ttl time.Duration) {
	if client == nil {
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		data, err := fetcher(ctx)
		if err != nil {
			return
		}
		SetCached(ctx, key, data, ttl)
	}()
}
