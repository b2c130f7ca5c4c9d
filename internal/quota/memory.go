package quota

import (
	"context"
	"sync"
	"time"
)

// MemoryLimiter is a process-local Limiter used when Redis is not configured
type MemoryLimiter struct {
	mu     sync.Mutex
	counts map[string]bucket
	now    func() time.Time
}

type bucket struct {
	window int64
	count  int
}

func NewMemoryLimiter() *MemoryLimiter {
	return &MemoryLimiter{
		counts: make(map[string]bucket),
		now:    time.Now,
	}
}

func (m *MemoryLimiter) Close() error {
	return nil
}

func (m *MemoryLimiter) Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	if limit <= 0 || window <= 0 {
		return true, nil
	}
	if err := ctx.Err(); err != nil {
		return false, err
	}

	idx := windowIndex(m.now(), window)

	m.mu.Lock()
	defer m.mu.Unlock()

	b := m.counts[key]
	if b.window != idx {
		b = bucket{window: idx}
	}
	b.count++
	m.counts[key] = b

	return b.count <= limit, nil
}

func (m *MemoryLimiter) Reset(ctx context.Context) error {
	m.mu.Lock()
	m.counts = make(map[string]bucket)
	m.mu.Unlock()
	return nil
}
