package geocoder

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const cachePrefix = "geocode:"

// Cache is the subset of *redis.Client the geocode cache needs.
type Cache interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

// CachedGeocoder serves repeat lookups from Redis. Cache failures fall back
// to the wrapped geocoder.
type CachedGeocoder struct {
	next   Geocoder
	cache  Cache
	ttl    time.Duration
	logger *zap.Logger
}

func NewCachedGeocoder(next Geocoder, cache Cache, ttl time.Duration, logger *zap.Logger) *CachedGeocoder {
	return &CachedGeocoder{next: next, cache: cache, ttl: ttl, logger: logger}
}

func (c *CachedGeocoder) Geocode(ctx context.Context, address string) (*Location, error) {
	key := cachePrefix + strings.ToLower(strings.TrimSpace(address))

	raw, err := c.cache.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var loc Location
		if jsonErr := json.Unmarshal(raw, &loc); jsonErr == nil {
			return &loc, nil
		}
		c.logger.Warn("Discarding corrupt geocode cache entry", zap.String("key", key))
	case err != redis.Nil:
		c.logger.Warn("Geocode cache read failed", zap.Error(err))
	}

	loc, err := c.next.Geocode(ctx, address)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(loc); err == nil {
		if err := c.cache.Set(ctx, key, data, c.ttl).Err(); err != nil {
			c.logger.Warn("Geocode cache write failed", zap.Error(err))
		}
	}
	return loc, nil
}
