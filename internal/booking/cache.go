package booking

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// AvailabilityCache keeps computed slot grids in Redis keyed by turf and
// date. Cached data is advisory only: booking creation always re-checks
// conflicts against the database, so a stale grid can never cause a
// double-booking. A nil cache disables caching entirely.
type AvailabilityCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewAvailabilityCache(rdb *redis.Client, ttl time.Duration) *AvailabilityCache {
	if rdb == nil {
		return nil
	}
	return &AvailabilityCache{rdb: rdb, ttl: ttl}
}

func cacheKey(turfID string, date time.Time) string {
	return fmt.Sprintf("availability:%s:%s", turfID, date.Format("2006-01-02"))
}

func (c *AvailabilityCache) Get(ctx context.Context, turfID string, date time.Time) ([]AvailableSlot, bool) {
	if c == nil {
		return nil, false
	}
	data, err := c.rdb.Get(ctx, cacheKey(turfID, date)).Bytes()
	if err != nil {
		return nil, false
	}
	var result []AvailableSlot
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, false
	}
	return result, true
}

func (c *AvailabilityCache) Set(ctx context.Context, turfID string, date time.Time, result []AvailableSlot) {
	if c == nil {
		return
	}
	data, err := json.Marshal(result)
	if err != nil {
		return
	}
	c.rdb.Set(ctx, cacheKey(turfID, date), data, c.ttl)
}

// Invalidate drops the cached grid for a turf/date after a booking mutation.
func (c *AvailabilityCache) Invalidate(ctx context.Context, turfID string, date time.Time) {
	if c == nil {
		return
	}
	c.rdb.Del(ctx, cacheKey(turfID, date))
}
