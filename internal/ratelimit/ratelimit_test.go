package ratelimit

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	redis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryLimiter_FixedWindow(t *testing.T) {
	l := NewMemoryLimiter()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		ok, err := l.Allow(ctx, "u1", 5, time.Minute)
		require.NoError(t, err)
		assert.True(t, ok, "request %d", i+1)
	}

	ok, _ := l.Allow(ctx, "u1", 5, time.Minute)
	assert.False(t, ok)

	ok, _ = l.Allow(ctx, "u2", 5, time.Minute)
	assert.True(t, ok, "keys are independent")

	now = now.Add(time.Minute)
	ok, _ = l.Allow(ctx, "u1", 5, time.Minute)
	assert.True(t, ok, "window resets")
}

func TestMemoryLimiter_DropsExpiredWindows(t *testing.T) {
	l := NewMemoryLimiter()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }
	ctx := context.Background()

	for _, key := range []string{"u1", "u2", "u3"} {
		_, err := l.Allow(ctx, key, 5, time.Minute)
		require.NoError(t, err)
	}
	assert.Len(t, l.windows, 3)

	now = now.Add(30 * time.Second)
	_, _ = l.Allow(ctx, "u4", 5, time.Minute)
	assert.Len(t, l.windows, 4, "live windows are kept")

	now = now.Add(45 * time.Second)
	_, _ = l.Allow(ctx, "u5", 5, time.Minute)
	assert.Len(t, l.windows, 2, "expired windows are removed")
	assert.Contains(t, l.windows, "u4")
	assert.Contains(t, l.windows, "u5")
}

// Runs only if REDIS_ADDR is set.
func TestRedisLimiter_Integration(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set; skipping integration test")
	}

	client := redis.NewClient(&redis.Options{Addr: addr, Password: os.Getenv("REDIS_PASSWORD")})
	t.Cleanup(func() { client.Close() })

	l := NewRedisLimiter(client, "test_rl:")
	key := uuid.NewString()
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		ok, err := l.Allow(ctx, key, 2, 2*time.Second)
		require.NoError(t, err)
		assert.True(t, ok)
	}
	ok, err := l.Allow(ctx, key, 2, 2*time.Second)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisLimiter_FailsOpen(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", DialTimeout: 50 * time.Millisecond, MaxRetries: -1})
	t.Cleanup(func() { client.Close() })

	ok, err := NewRedisLimiter(client, "rl:").Allow(context.Background(), "u1", 1, time.Minute)
	assert.Error(t, err)
	assert.True(t, ok)
}
