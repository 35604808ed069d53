package service

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/Mayank06R/our-voice-rights/internal/mgnrega/models"
	platformredis "github.com/Mayank06R/our-voice-rights/internal/platform/redis"
)

const districtCacheKeyPrefix = "ovr:districts:"

// DistrictCache caches the district-list view in Redis so repeated
// dashboard loads do not re-hit the upstream API. It is strictly an
// optimization: a nil cache, a miss, or a Redis failure all fall
// through to the live path.
type DistrictCache struct {
	client *platformredis.Client
	ttl    time.Duration
}

// NewDistrictCache wraps a Redis client; client may be nil (no cache).
func NewDistrictCache(client *platformredis.Client, ttl time.Duration) *DistrictCache {
	if client == nil {
		return nil
	}
	return &DistrictCache{client: client, ttl: ttl}
}

// Get returns the cached list for a state, or ok=false on miss or any
// Redis/decoding failure.
func (c *DistrictCache) Get(ctx context.Context, state string) ([]models.District, bool) {
	if c == nil {
		return nil, false
	}
	payload, err := c.client.Get(ctx, cacheKey(state)).Result()
	if err != nil {
		return nil, false
	}
	var list []models.District
	if err := json.Unmarshal([]byte(payload), &list); err != nil {
		return nil, false
	}
	return list, true
}

// Set stores the list for a state with the configured TTL, best-effort.
func (c *DistrictCache) Set(ctx context.Context, state string, list []models.District) {
	if c == nil {
		return
	}
	payload, err := json.Marshal(list)
	if err != nil {
		return
	}
	_ = c.client.Set(ctx, cacheKey(state), payload, c.ttl).Err()
}

func cacheKey(state string) string {
	return districtCacheKeyPrefix + strings.ToUpper(strings.TrimSpace(state))
}
