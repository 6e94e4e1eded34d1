package middleware

import (
	"context"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/Rrens/birthday-builder/internal/api/response"
	"github.com/Rrens/birthday-builder/internal/repository/redis"
	"github.com/rs/zerolog/log"
)

// Limiter decides whether a subject may make another request
type Limiter interface {
	Allow(ctx context.Context, subject string) (redis.Verdict, error)
}

// RateLimitMiddleware limits requests per client IP
type RateLimitMiddleware struct {
	limiter Limiter
}

// NewRateLimitMiddleware creates a new rate limit middleware
func NewRateLimitMiddleware(limiter Limiter) *RateLimitMiddleware {
	return &RateLimitMiddleware{limiter: limiter}
}

// Limit applies rate limiting keyed by the client address
func (m *RateLimitMiddleware) Limit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := clientIP(r)

		verdict, err := m.limiter.Allow(r.Context(), ip)
		if err != nil {
			// fail open
			log.Warn().Err(err).Str("ip", ip).Msg("Rate limiter unavailable")
			next.ServeHTTP(w, r)
			return
		}

		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(verdict.Limit))
		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(verdict.Remaining))
		w.Header().Set("X-RateLimit-Reset", verdict.Reset.UTC().Format(time.RFC3339))

		if !verdict.Allowed {
			retry := int(time.Until(verdict.Reset).Seconds()) + 1
			w.Header().Set("Retry-After", strconv.Itoa(retry))
			response.TooManyRequests(w, "rate limit exceeded")
			return
		}

		next.ServeHTTP(w, r)
	})
}

// clientIP strips the port from RemoteAddr, which RealIP has already rewritten when proxied
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
