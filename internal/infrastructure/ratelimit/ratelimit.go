// Package ratelimit throttles requests per caller, backed by redis when one is
// configured and by process memory otherwise.
package ratelimit

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"creator-api/internal/config"
)

const window = time.Minute

// Limiter decides whether the caller identified by key may proceed.
type Limiter interface {
	Allow(ctx context.Context, key string) (Result, error)
	Backend() string
}

// Result carries the decision and the hints for the rate-limit headers.
type Result struct {
	Allowed    bool
	Limit      int
	Remaining  int
	RetryAfter time.Duration
}

// New returns a redis limiter when REDIS_URL is set and reachable, otherwise
// an in-memory one. A nil limiter disables rate limiting.
func New(ctx context.Context, cfg *config.Config, client *redis.Client, log zerolog.Logger) Limiter {
	if cfg.RateLimitPerMinute <= 0 {
		log.Warn().Msg("rate limiting disabled")
		return nil
	}
	if client != nil {
		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()
		err := client.Ping(pingCtx).Err()
		if err == nil {
			return NewRedisLimiter(client, cfg.RateLimitPerMinute)
		}
		log.Warn().Err(err).Msg("redis unreachable, using in-memory rate limiter")
	}
	return NewMemoryLimiter(cfg.RateLimitPerMinute)
}

// NewRedisClient parses REDIS_URL; it returns nil when none is configured.
func NewRedisClient(cfg *config.Config) (*redis.Client, error) {
	raw := strings.TrimSpace(cfg.RedisURL)
	if raw == "" {
		return nil, nil
	}
	opts, err := redis.ParseURL(raw)
	if err != nil {
		return nil, fmt.Errorf("parse REDIS_URL: %w", err)
	}
	opts.MinIdleConns = 2
	return redis.NewClient(opts), nil
}

// RedisLimiter is a fixed one-minute window shared across replicas.
type RedisLimiter struct {
	client *redis.Client
	limit  int
	prefix string
	now    func() time.Time
}

func NewRedisLimiter(client *redis.Client, perMinute float64) *RedisLimiter {
	return &RedisLimiter{
		client: client,
		limit:  max(1, int(math.Floor(perMinute))),
		prefix: "creator-api:ratelimit:",
		now:    time.Now,
	}
}

func (l *RedisLimiter) Backend() string { return "redis" }

func (l *RedisLimiter) Allow(ctx context.Context, key string) (Result, error) {
	now := l.now()
	slot := now.Truncate(window)
	redisKey := l.prefix + key + ":" + strconv.FormatInt(slot.Unix(), 10)

	var incr *redis.IntCmd
	_, err := l.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, redisKey)
		pipe.Expire(ctx, redisKey, window+5*time.Second)
		return nil
	})
	if err != nil {
		return Result{}, fmt.Errorf("rate limit counter: %w", err)
	}

	count := int(incr.Val())
	res := Result{Limit: l.limit, Remaining: max(0, l.limit-count), Allowed: count <= l.limit}
	if !res.Allowed {
		res.RetryAfter = slot.Add(window).Sub(now)
	}
	return res, nil
}

type bucket struct {
	tokens     float64
	lastRefill time.Time
}

// MemoryLimiter is a per-process token bucket refilled continuously.
type MemoryLimiter struct {
	mu        sync.Mutex
	buckets   map[string]*bucket
	perMinute float64
	now       func() time.Time
}

func NewMemoryLimiter(perMinute float64) *MemoryLimiter {
	return &MemoryLimiter{
		buckets:   make(map[string]*bucket),
		perMinute: perMinute,
		now:       time.Now,
	}
}

func (l *MemoryLimiter) Backend() string { return "memory" }

func (l *MemoryLimiter) Allow(_ context.Context, key string) (Result, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	b, ok := l.buckets[key]
	if !ok {
		b = &bucket{tokens: l.perMinute, lastRefill: now}
		l.buckets[key] = b
	}

	rate := l.perMinute / window.Seconds()
	elapsed := now.Sub(b.lastRefill).Seconds()
	b.tokens = min(l.perMinute, b.tokens+elapsed*rate)
	b.lastRefill = now

	res := Result{Limit: int(l.perMinute)}
	if b.tokens < 1 {
		res.RetryAfter = time.Duration((1 - b.tokens) / rate * float64(time.Second))
		return res, nil
	}
	b.tokens--
	res.Allowed = true
	res.Remaining = int(b.tokens)
	return res, nil
}
