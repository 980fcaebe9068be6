// Package brandcache keeps brand display names in Redis.
package brandcache

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultTTL is how long a cached brand name lives.
const DefaultTTL = 10 * time.Minute

const keyPrefix = "catalog:brand:"

// client is the subset of *redis.Client the cache uses.
type client interface {
	MGet(ctx context.Context, keys ...string) *redis.SliceCmd
	Pipelined(ctx context.Context, fn func(redis.Pipeliner) error) ([]redis.Cmder, error)
}

// Cache stores brand names under "catalog:brand:<id>".
type Cache struct {
	client client
	ttl    time.Duration
}

// New creates a Cache on rdb. A non-positive ttl uses DefaultTTL.
func New(rdb *redis.Client, ttl time.Duration) *Cache {
	return newCache(rdb, ttl)
}

func newCache(c client, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{client: c, ttl: ttl}
}

// GetNames fetches all ids with one MGET. Missing keys are left out of the
// result.
func (c *Cache) GetNames(ctx context.Context, ids []int64) (map[int64]string, error) {
	names := make(map[int64]string, len(ids))
	if len(ids) == 0 {
		return names, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = key(id)
	}

	vals, err := c.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read brand names: %w", err)
	}

	for i, v := range vals {
		if name, ok := v.(string); ok {
			names[ids[i]] = name
		}
	}
	return names, nil
}

// SetNames writes names in one pipelined round trip.
func (c *Cache) SetNames(ctx context.Context, names map[int64]string) error {
	if len(names) == 0 {
		return nil
	}

	_, err := c.client.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		for id, name := range names {
			pipe.Set(ctx, key(id), name, c.ttl)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to write brand names: %w", err)
	}
	return nil
}

func key(id int64) string {
	return keyPrefix + strconv.FormatInt(id, 10)
}
