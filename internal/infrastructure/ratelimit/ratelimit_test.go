package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"creator-api/internal/config"
)

func TestMemoryLimiterExhaustsAndRefills(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	l := NewMemoryLimiter(3)
	l.now = func() time.Time { return now }
	ctx := context.Background()

	for i := range 3 {
		res, err := l.Allow(ctx, "pid:a")
		require.NoError(t, err)
		assert.True(t, res.Allowed, "request %d", i)
	}

	res, err := l.Allow(ctx, "pid:a")
	require.NoError(t, err)
	assert.False(t, res.Allowed)
	assert.InDelta(t, float64(20*time.Second), float64(res.RetryAfter), float64(time.Millisecond))

	other, err := l.Allow(ctx, "pid:b")
	require.NoError(t, err)
	assert.True(t, other.Allowed)

	now = now.Add(21 * time.Second)
	res, err = l.Allow(ctx, "pid:a")
	require.NoError(t, err)
	assert.True(t, res.Allowed)
}

func TestNewFallsBackToMemory(t *testing.T) {
	l := New(context.Background(), &config.Config{RateLimitPerMinute: 10}, nil, zerolog.Nop())
	require.NotNil(t, l)
	assert.Equal(t, "memory", l.Backend())

	assert.Nil(t, New(context.Background(), &config.Config{}, nil, zerolog.Nop()))
}

func TestNewRedisClient(t *testing.T) {
	client, err := NewRedisClient(&config.Config{})
	require.NoError(t, err)
	assert.Nil(t, client)

	client, err = NewRedisClient(&config.Config{RedisURL: "redis://localhost:6379/2"})
	require.NoError(t, err)
	require.NotNil(t, client)
	assert.Equal(t, 2, client.Options().DB)
	require.NoError(t, client.Close())

	_, err = NewRedisClient(&config.Config{RedisURL: "http://nope"})
	assert.Error(t, err)
}
