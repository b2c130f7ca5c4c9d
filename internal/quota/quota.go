// Package quota gates outgoing upstream requests with fixed-window counters.
// Counters are keyed per upstream, never per caller request, so gating
// does not couple the outcome of one request to the order of others.
package quota

import (
	"context"
	"time"
)

// Limiter decides whether another request to key fits the current window
type Limiter interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error)
	Reset(ctx context.Context) error
	Close() error
}

// New returns a Redis-backed limiter when redisURL is set, otherwise an in-memory one
func New(redisURL, prefix string) (Limiter, error) {
	if redisURL == "" {
		return NewMemoryLimiter(), nil
	}
	return NewRedisLimiter(redisURL, prefix)
}

func windowIndex(t time.Time, window time.Duration) int64 {
	return t.UnixNano() / int64(window)
}
