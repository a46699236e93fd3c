package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Limiter is a fixed-window request limiter backed by Redis
type Limiter struct {
	client      *redis.Client
	window      time.Duration // Length of one counting window
	maxRequests int           // Requests allowed per client within a window
}

// NewLimiter creates a new rate limiter
func NewLimiter(client *redis.Client, window time.Duration, maxRequests int) *Limiter {
	return &Limiter{
		client:      client,
		window:      window,
		maxRequests: maxRequests,
	}
}

// RequestKey returns the Redis key counting requests for a client
func (l *Limiter) RequestKey(clientID string) string {
	return fmt.Sprintf("ratelimit:api:%s", clientID)
}

// Allow counts a request for clientID and reports whether it is within the limit.
// When it is not, retryAfter is how long until the window resets.
func (l *Limiter) Allow(ctx context.Context, clientID string) (allowed bool, retryAfter time.Duration, err error) {
	key := l.RequestKey(clientID)

	count, err := l.client.Incr(ctx, key).Result()
	if err != nil {
		return false, 0, fmt.Errorf("failed to increment request counter: %w", err)
	}

	// Start the window on the first request
	if count == 1 {
		if err := l.client.Expire(ctx, key, l.window).Err(); err != nil {
			return false, 0, fmt.Errorf("failed to set expiry: %w", err)
		}
	}

	if count <= int64(l.maxRequests) {
		return true, 0, nil
	}

	ttl, err := l.client.TTL(ctx, key).Result()
	if err != nil {
		return false, 0, fmt.Errorf("failed to read window expiry: %w", err)
	}
	if ttl <= 0 {
		// counter has no expiry; restart the window
		if err := l.client.Expire(ctx, key, l.window).Err(); err != nil {
			return false, 0, fmt.Errorf("failed to set expiry: %w", err)
		}
		ttl = l.window
	}

	return false, ttl, nil
}
