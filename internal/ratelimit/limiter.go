package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Limiter is a fixed-window request counter stored in Redis
type Limiter struct {
	client      *redis.Client
	maxRequests int64
	window      time.Duration
}

func NewLimiter(client *redis.Client, maxRequests int, window time.Duration) *Limiter {
	return &Limiter{
		client:      client,
		maxRequests: int64(maxRequests),
		window:      window,
	}
}

// getKey generates the Redis key for a rate limit bucket
func getKey(key string) string {
	return fmt.Sprintf("rate_limit:%s", key)
}

// Allow records one request for key and reports whether it is within the limit
func (l *Limiter) Allow(ctx context.Context, key string) (bool, error) {
	redisKey := getKey(key)

	pipe := l.client.TxPipeline()
	incr := pipe.Incr(ctx, redisKey)
	pipe.ExpireNX(ctx, redisKey, l.window)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, fmt.Errorf("failed to record rate limit hit: %w", err)
	}
	count := incr.Val()

	return count <= l.maxRequests, nil
}

// Reset clears the counter for key
func (l *Limiter) Reset(ctx context.Context, key string) error {
	if err := l.client.Del(ctx, getKey(key)).Err(); err != nil {
		return fmt.Errorf("failed to reset rate limit: %w", err)
	}
	return nil
}

// Noop allows every request; used when Redis is disabled
type Noop struct{}

func (Noop) Allow(context.Context, string) (bool, error) { return true, nil }

func (Noop) Reset(context.Context, string) error { return nil }
