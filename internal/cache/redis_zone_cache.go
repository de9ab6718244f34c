package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"eco-delivery-service/internal/logging"
)

// RedisZoneCache shares zone counts across replicas. Failures degrade to
// cache misses so a Redis outage only costs extra places lookups.
type RedisZoneCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisZoneCache(client *redis.Client, ttl time.Duration) *RedisZoneCache {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &RedisZoneCache{client: client, ttl: ttl}
}

func (r *RedisZoneCache) Get(ctx context.Context, key string) (int, bool) {
	count, err := r.client.Get(ctx, key).Int()
	if err != nil {
		if err != redis.Nil {
			logging.L().Warnw("zone cache get failed", "key", key, "error", err)
		}
		return 0, false
	}
	return count, true
}

func (r *RedisZoneCache) Set(ctx context.Context, key string, count int) {
	if err := r.client.Set(ctx, key, count, r.ttl).Err(); err != nil {
		logging.L().Warnw("zone cache set failed", "key", key, "error", err)
	}
}
