// Package cache provides the sensitive-zone count cache used by POI
// sampling. Nearby route samples round to the same key, so the cache cuts
// most redundant places lookups within and across routes.
package cache

import (
	"context"
	"fmt"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"eco-delivery-service/internal/domain"
)

// ZoneCountCache stores POI match counts keyed by rounded coordinate and
// category. Implementations must be safe for concurrent use. Lookup failures
// are treated as misses, never as errors.
type ZoneCountCache interface {
	Get(ctx context.Context, key string) (int, bool)
	Set(ctx context.Context, key string, count int)
}

// Key derives the cache key for a sampled point and category. Coordinates
// are rounded to 4 decimal places (~11 m), which matches the 100 m POI
// radius closely enough to merge adjacent samples.
func Key(point domain.Coordinate, category string) string {
	return fmt.Sprintf("zone:%.4f:%.4f:%s", point.Lat, point.Lng, category)
}

// MemoryZoneCache is the in-process default, backed by go-cache.
type MemoryZoneCache struct {
	cache *gocache.Cache
}

func NewMemoryZoneCache(ttl time.Duration) *MemoryZoneCache {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &MemoryZoneCache{cache: gocache.New(ttl, 2*ttl)}
}

func (m *MemoryZoneCache) Get(_ context.Context, key string) (int, bool) {
	v, ok := m.cache.Get(key)
	if !ok {
		return 0, false
	}
	count, ok := v.(int)
	return count, ok
}

func (m *MemoryZoneCache) Set(_ context.Context, key string, count int) {
	m.cache.SetDefault(key, count)
}
