package quota

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestRedisLimiter connects to REDIS_URL under a prefix unique to the test
// and removes its keys afterwards.
func newTestRedisLimiter(t *testing.T) *RedisLimiter {
	t.Helper()
	if os.Getenv("GO_TEST_INTEGRATION") == "" {
		t.Skip("integration tests are disabled (set GO_TEST_INTEGRATION=1)")
	}
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = "redis://localhost:6379/0"
	}

	r, err := NewRedisLimiter(redisURL, "newsdeck-test:"+uuid.NewString()+":")
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = r.Reset(context.Background())
		_ = r.Close()
	})
	return r
}

func TestRedisLimiter_FixedWindow(t *testing.T) {
	r := newTestRedisLimiter(t)
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	r.now = func() time.Time { return now }
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		ok, err := r.Allow(ctx, "nytimes", 3, time.Minute)
		require.NoError(t, err)
		assert.True(t, ok, "request %d", i)
	}

	ok, err := r.Allow(ctx, "nytimes", 3, time.Minute)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = r.Allow(ctx, "newsapi", 3, time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)

	now = now.Add(time.Minute)
	ok, err = r.Allow(ctx, "nytimes", 3, time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRedisLimiter_CounterExpiresWithWindow(t *testing.T) {
	r := newTestRedisLimiter(t)
	ctx := context.Background()

	ok, err := r.Allow(ctx, "newsapi", 5, time.Minute)
	require.NoError(t, err)
	require.True(t, ok)

	keys, err := r.client.Keys(ctx, r.prefix+"newsapi:*").Result()
	require.NoError(t, err)
	require.Len(t, keys, 1)

	ttl, err := r.client.TTL(ctx, keys[0]).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))
	assert.LessOrEqual(t, ttl, time.Minute)
}

func TestRedisLimiter_ZeroLimitSkipsRedis(t *testing.T) {
	r := newTestRedisLimiter(t)
	ctx := context.Background()

	ok, err := r.Allow(ctx, "newsapi", 0, time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)

	keys, err := r.client.Keys(ctx, r.prefix+"*").Result()
	require.NoError(t, err)
	assert.Empty(t, keys)
}

func TestRedisLimiter_Reset(t *testing.T) {
	r := newTestRedisLimiter(t)
	ctx := context.Background()

	ok, _ := r.Allow(ctx, "k", 1, time.Hour)
	require.True(t, ok)
	ok, _ = r.Allow(ctx, "k", 1, time.Hour)
	require.False(t, ok)

	require.NoError(t, r.Reset(ctx))
	ok, err := r.Allow(ctx, "k", 1, time.Hour)
	require.NoError(t, err)
	assert.True(t, ok)
}
