package cache

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"eco-delivery-service/internal/logging"
)

// SQLZoneCache is a Postgres-backed zone count cache for deployments that
// want persistence across restarts without running Redis. Entries expire by
// timestamp on read.
type SQLZoneCache struct {
	DB  *sql.DB
	TTL time.Duration
}

func NewSQLZoneCache(db *sql.DB, ttl time.Duration) *SQLZoneCache {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &SQLZoneCache{DB: db, TTL: ttl}
}

func (s *SQLZoneCache) Get(ctx context.Context, key string) (int, bool) {
	if s.DB == nil {
		return 0, false
	}

	q := `
	SELECT zone_count
	FROM zone_cache
	WHERE cache_key = $1
		AND cached_at > $2;
	`

	var count int
	err := s.DB.QueryRowContext(ctx, q, key, time.Now().Add(-s.TTL)).Scan(&count)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			logging.L().Warnw("zone cache query failed", "key", key, "error", err)
		}
		return 0, false
	}
	return count, true
}

func (s *SQLZoneCache) Set(ctx context.Context, key string, count int) {
	if s.DB == nil {
		return
	}

	q := `
	INSERT INTO zone_cache (cache_key, zone_count, cached_at)
	VALUES ($1, $2, $3)
	ON CONFLICT (cache_key) DO UPDATE
	SET zone_count = EXCLUDED.zone_count,
		cached_at = EXCLUDED.cached_at;
	`

	if _, err := s.DB.ExecContext(ctx, q, key, count, time.Now()); err != nil {
		logging.L().Warnw("zone cache write failed", "key", key, "error", err)
	}
}
