package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"route-view-service/internal/domain"
	"route-view-service/internal/platform/obs"
)

const redisKeyPrefix = "route:"

// RedisRouteCache is a Redis-backed cache for resolved road geometry.
// Entries expire after TTL so stale road data eventually falls out.
type RedisRouteCache struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisRouteCache(client *redis.Client, ttl time.Duration) *RedisRouteCache {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &RedisRouteCache{Client: client, TTL: ttl}
}

func (r *RedisRouteCache) Get(ctx context.Context, key string) (_ []domain.Coordinates, _ bool, err error) {
	defer obs.Time(ctx, "route.cache.redis.Get")(&err)

	if r.Client == nil {
		return nil, false, errors.New("route cache: redis client is nil")
	}
	if key == "" {
		return nil, false, errors.New("get route cache: key must not be empty")
	}

	raw, err := r.Client.Get(ctx, redisKeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get route cache: redis get: %w", err)
	}

	path, err := decodeGeometry(raw)
	if err != nil {
		return nil, false, fmt.Errorf("get route cache: %w", err)
	}

	return path, true, nil
}

func (r *RedisRouteCache) Put(ctx context.Context, key string, path []domain.Coordinates) error {
	if r.Client == nil {
		return errors.New("route cache: redis client is nil")
	}
	if key == "" {
		return errors.New("insert route cache: key must not be empty")
	}
	if len(path) == 0 {
		return nil
	}

	raw, err := encodeGeometry(path)
	if err != nil {
		return fmt.Errorf("insert route cache: %w", err)
	}

	if err := r.Client.Set(ctx, redisKeyPrefix+key, raw, r.TTL).Err(); err != nil {
		return fmt.Errorf("insert route cache key=%q: redis set: %w", key, err)
	}

	return nil
}
