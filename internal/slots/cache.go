package slots

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache stores generated suggestions per (date, party size).
type Cache interface {
	Get(ctx context.Context, key string) ([]string, bool, error)
	Set(ctx context.Context, key string, times []string, ttl time.Duration) error
}

// RedisCache keeps suggestions as JSON strings under prefix:key.
type RedisCache struct {
	rdb    *redis.Client
	prefix string
}

// NewRedisCache stores entries in rdb under prefix, "slots" by default.
func NewRedisCache(rdb *redis.Client, prefix string) *RedisCache {
	if prefix == "" {
		prefix = "slots"
	}
	return &RedisCache{rdb: rdb, prefix: prefix}
}

// Get returns the cached times for key.  A missing key is a miss, not an
// error.
func (c *RedisCache) Get(ctx context.Context, key string) ([]string, bool, error) {
	raw, err := c.rdb.Get(ctx, c.prefix+":"+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	var times []string
	if err := json.Unmarshal(raw, &times); err != nil {
		return nil, false, err
	}
	return times, len(times) > 0, nil
}

// Set stores times under key for ttl.
func (c *RedisCache) Set(ctx context.Context, key string, times []string, ttl time.Duration) error {
	raw, err := json.Marshal(times)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, c.prefix+":"+key, raw, ttl).Err()
}

// cacheKey identifies a suggestion request.
func cacheKey(date time.Time, partySize int) string {
	return fmt.Sprintf("%s:%d", date.Format("2006-01-02"), partySize)
}
