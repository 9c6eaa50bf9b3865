package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const providerTokenKey = "amadeus:access_token"

// TokenCache stores the provider's short-lived bearer token so it can be
// reused across searches instead of being re-fetched per request.
type TokenCache interface {
	Get(ctx context.Context) (string, bool, error)
	Set(ctx context.Context, token string, ttl time.Duration) error
	Invalidate(ctx context.Context) error
}

type redisTokenCache struct {
	rdb *redis.Client
}

func NewRedisTokenCache(rdb *redis.Client) TokenCache {
	return &redisTokenCache{rdb: rdb}
}

func (c *redisTokenCache) Get(ctx context.Context) (string, bool, error) {
	token, err := c.rdb.Get(ctx, providerTokenKey).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("redisTokenCache.Get: %w", err)
	}
	return token, true, nil
}

func (c *redisTokenCache) Set(ctx context.Context, token string, ttl time.Duration) error {
	if err := c.rdb.Set(ctx, providerTokenKey, token, ttl).Err(); err != nil {
		return fmt.Errorf("redisTokenCache.Set: %w", err)
	}
	return nil
}

func (c *redisTokenCache) Invalidate(ctx context.Context) error {
	if err := c.rdb.Del(ctx, providerTokenKey).Err(); err != nil {
		return fmt.Errorf("redisTokenCache.Invalidate: %w", err)
	}
	return nil
}
