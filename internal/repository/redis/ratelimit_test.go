package redis

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerdict(t *testing.T) {
	reset := time.Date(2026, 10, 19, 12, 1, 0, 0, time.UTC)

	tests := []struct {
		name      string
		count     int64
		limit     int
		allowed   bool
		remaining int
	}{
		{name: "first request", count: 1, limit: 5, allowed: true, remaining: 4},
		{name: "at limit", count: 5, limit: 5, allowed: true, remaining: 0},
		{name: "over limit", count: 6, limit: 5, allowed: false, remaining: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := verdict(tt.count, tt.limit, reset)
			assert.Equal(t, tt.allowed, v.Allowed)
			assert.Equal(t, tt.remaining, v.Remaining)
			assert.Equal(t, tt.limit, v.Limit)
			assert.Equal(t, reset, v.Reset)
		})
	}
}

func TestRateLimiterKey(t *testing.T) {
	r := NewRateLimiter(nil, "media", 10)
	window := time.Unix(1_700_000_040, 0)

	assert.Equal(t, "ratelimit:media:203.0.113.7:1700000040", r.key("203.0.113.7", window))
	assert.Equal(t, 10, r.limit)
}

func TestRateLimiter_Allow(t *testing.T) {
	client, mr := newTestClient(t)
	limiter := NewRateLimiter(client, "media", 3)
	windowStart := time.Date(2026, time.October, 19, 12, 0, 0, 0, time.UTC)
	limiter.now = func() time.Time { return windowStart.Add(20 * time.Second) }
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		v, err := limiter.Allow(ctx, "203.0.113.7")
		require.NoError(t, err)
		assert.True(t, v.Allowed, "request %d", i)
		assert.Equal(t, 3-i, v.Remaining)
		assert.Equal(t, windowStart.Add(time.Minute), v.Reset)
	}

	v, err := limiter.Allow(ctx, "203.0.113.7")
	require.NoError(t, err)
	assert.False(t, v.Allowed)
	assert.Equal(t, 0, v.Remaining)

	other, err := limiter.Allow(ctx, "198.51.100.2")
	require.NoError(t, err)
	assert.True(t, other.Allowed, "limits are per subject")

	key := limiter.key("203.0.113.7", windowStart)
	assert.True(t, mr.Exists(key))
	assert.Equal(t, time.Minute, mr.TTL(key))
}

func TestRateLimiter_NextWindowStartsFresh(t *testing.T) {
	client, _ := newTestClient(t)
	limiter := NewRateLimiter(client, "media", 1)
	now := time.Date(2026, time.October, 19, 12, 0, 30, 0, time.UTC)
	limiter.now = func() time.Time { return now }
	ctx := context.Background()

	v, err := limiter.Allow(ctx, "ip")
	require.NoError(t, err)
	assert.True(t, v.Allowed)

	v, err = limiter.Allow(ctx, "ip")
	require.NoError(t, err)
	assert.False(t, v.Allowed)

	now = now.Add(time.Minute)
	v, err = limiter.Allow(ctx, "ip")
	require.NoError(t, err)
	assert.True(t, v.Allowed)

	require.NoError(t, limiter.Reset(ctx, "ip"))
	v, err = limiter.Allow(ctx, "ip")
	require.NoError(t, err)
	assert.True(t, v.Allowed)
}

func TestRateLimiter_RedisDown(t *testing.T) {
	limiter := NewRateLimiter(unreachableClient(t), "media", 1)

	_, err := limiter.Allow(context.Background(), "ip")
	assert.Error(t, err)
}

func TestPageKey(t *testing.T) {
	assert.Equal(t, "page:abc123xyz0", pageKey("abc123xyz0"))
}

func TestPageCache_DefaultTTL(t *testing.T) {
	c := NewPageCache(nil, nil, 0)
	assert.Equal(t, defaultPageTTL, c.ttl)
}
