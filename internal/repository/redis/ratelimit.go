package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const rateLimitPrefix = "ratelimit:"

// Verdict is the outcome of one rate limit check
type Verdict struct {
	Allowed   bool
	Limit     int
	Remaining int
	Reset     time.Time
}

// RateLimiter counts requests per key in fixed one-minute windows
type RateLimiter struct {
	client *Client
	scope  string
	limit  int
	now    func() time.Time
}

// NewRateLimiter creates a limiter for one scope allowing requestsPerMinute in each one-minute window
func NewRateLimiter(client *Client, scope string, requestsPerMinute int) *RateLimiter {
	return &RateLimiter{
		client: client,
		scope:  scope,
		limit:  requestsPerMinute,
		now:    time.Now,
	}
}

func (r *RateLimiter) key(subject string, window time.Time) string {
	return fmt.Sprintf("%s%s:%s:%d", rateLimitPrefix, r.scope, subject, window.Unix())
}

// Allow records one request for subject and reports whether it fits the current window
func (r *RateLimiter) Allow(ctx context.Context, subject string) (Verdict, error) {
	windowStart := r.now().Truncate(time.Minute)
	fullKey := r.key(subject, windowStart)

	pipe := r.client.rdb.TxPipeline()
	incrCmd := pipe.Incr(ctx, fullKey)
	pipe.ExpireNX(ctx, fullKey, time.Minute)
	if _, err := pipe.Exec(ctx); err != nil && err != redis.Nil {
		return Verdict{}, fmt.Errorf("failed to execute rate limit check: %w", err)
	}

	return verdict(incrCmd.Val(), r.limit, windowStart.Add(time.Minute)), nil
}

// Reset clears the current window for subject
func (r *RateLimiter) Reset(ctx context.Context, subject string) error {
	return r.client.rdb.Del(ctx, r.key(subject, r.now().Truncate(time.Minute))).Err()
}

func verdict(count int64, limit int, reset time.Time) Verdict {
	remaining := limit - int(count)
	if remaining < 0 {
		remaining = 0
	}
	return Verdict{
		Allowed:   count <= int64(limit),
		Limit:     limit,
		Remaining: remaining,
		Reset:     reset,
	}
}
