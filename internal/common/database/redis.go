package database

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"supplychain-insights/internal/common/config"
)

// RedisClient wraps the Redis connection used for the narrative cache.
type RedisClient struct {
	Client redis.Cmdable
	closer func() error
}

func NewRedis(cfg config.RedisConfig) *RedisClient {
	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.Address,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 2,
	})
	return &RedisClient{Client: rdb, closer: rdb.Close}
}

// NewRedisFromCmdable wraps an existing client, e.g. one from redismock.
func NewRedisFromCmdable(c redis.Cmdable) *RedisClient {
	return &RedisClient{Client: c}
}

func (c *RedisClient) Ping(ctx context.Context) error {
	if err := c.Client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

func (c *RedisClient) Close() error {
	if c.closer != nil {
		return c.closer()
	}
	return nil
}

// Get returns the cached value; found is false on a miss.
func (c *RedisClient) Get(ctx context.Context, key string) (value string, found bool, err error) {
	value, err = c.Client.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

func (c *RedisClient) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	return c.Client.Set(ctx, key, value, expiration).Err()
}
