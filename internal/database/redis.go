package database

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisClient wraps the Redis client backing the API rate limiter
type RedisClient struct {
	*redis.Client
}

// NewRedisClient parses redisURL and pings the server before returning.
// ctx bounds the initial ping only.
func NewRedisClient(ctx context.Context, redisURL string) (*RedisClient, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	client := redis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", opt.Addr, err)
	}

	return &RedisClient{Client: client}, nil
}

// Health pings Redis. It satisfies the health check signature used by /health.
func (r *RedisClient) Health(ctx context.Context) error {
	return r.Ping(ctx).Err()
}
