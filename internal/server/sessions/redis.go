package sessions

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/akozinov/filedepot/internal/common"
	"github.com/redis/go-redis/v9"
)

// RedisCache implements Cache over a Redis client. Expiry is delegated to
// Redis key TTLs; no explicit cleanup is needed.
type RedisCache struct {
	client *redis.Client
}

func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{client: client}
}

// Key returns the cache key under which the token's user id is stored.
func Key(token string) string {
	return common.SessionKeyPrefix + token
}

func (c *RedisCache) Resolve(ctx context.Context, token string) (string, error) {
	userID, err := c.client.Get(ctx, Key(token)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", common.ErrorNotFound
		}
		return "", fmt.Errorf("session lookup: %w", err)
	}
	return userID, nil
}

func (c *RedisCache) Create(ctx context.Context, token, userID string, ttl time.Duration) error {
	if err := c.client.Set(ctx, Key(token), userID, ttl).Err(); err != nil {
		return fmt.Errorf("session create: %w", err)
	}
	return nil
}

func (c *RedisCache) Delete(ctx context.Context, token string) error {
	if err := c.client.Del(ctx, Key(token)).Err(); err != nil {
		return fmt.Errorf("session delete: %w", err)
	}
	return nil
}

func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}
