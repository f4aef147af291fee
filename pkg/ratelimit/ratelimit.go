// Package ratelimit admits or rejects grading requests against a per-user
// sliding-window quota backed by redis. The limiter deliberately fails open:
// grading must stay available when the counter store is unconfigured or
// unreachable, while normal operation still enforces the quota.
package ratelimit

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/johnkimo5/architect-design-ai/pkg/logger"

	gonanoid "github.com/matoous/go-nanoid/v2"
	redis "github.com/redis/go-redis/v9"
)

// Default admission policy: 5 grades per rolling hour per user.
const (
	DefaultLimit  = 5
	DefaultWindow = time.Hour

	// Remaining value reported when the limiter is failing open.
	openRemaining = 999
)

// Config configures redis access and the admission policy.
type Config struct {
	Addr     string
	Password string
	DB       int
	Prefix   string
	Limit    int
	Window   time.Duration
}

// Result is the outcome of one admission check.
type Result struct {
	Allowed   bool
	Remaining int
	ResetAt   time.Time
}

// Limiter tracks a sliding-window event count per key. A Limiter constructed
// without a redis address is disabled and admits everything.
type Limiter struct {
	client *redis.Client
	prefix string
	limit  int
	window time.Duration

	warnOnce sync.Once
}

// New constructs a limiter. An empty Addr yields a disabled limiter rather
// than an error: missing counter-store credentials are a configuration
// state, not a runtime failure.
func New(cfg Config) *Limiter {
	if cfg.Prefix == "" {
		cfg.Prefix = "grade:ratelimit"
	}
	if cfg.Limit <= 0 {
		cfg.Limit = DefaultLimit
	}
	if cfg.Window <= 0 {
		cfg.Window = DefaultWindow
	}

	limiter := &Limiter{
		prefix: cfg.Prefix,
		limit:  cfg.Limit,
		window: cfg.Window,
	}

	if cfg.Addr == "" {
		return limiter
	}

	limiter.client = redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	return limiter
}

// Enabled reports whether a counter store is configured.
func (l *Limiter) Enabled() bool {
	return l.client != nil
}

// Limit records one event for key and reports whether the call is admitted.
// Every call counts against the window exactly once, admitted or rejected;
// atomicity comes from the redis transaction, not in-process locking, so
// concurrent calls for the same key cannot under- or over-count.
//
// When the backend is disabled or unreachable the call is admitted with a
// sentinel Remaining and a one-time warning through the logger.
func (l *Limiter) Limit(ctx context.Context, key string) Result {
	if l.client == nil {
		l.warnOnce.Do(func() {
			logger.Warn("Rate limiting disabled: no redis address configured")
		})
		return openResult()
	}

	now := time.Now()
	windowKey := l.prefix + ":" + key
	cutoff := strconv.FormatInt(now.Add(-l.window).UnixMilli(), 10)

	member, err := gonanoid.New()
	if err != nil {
		member = strconv.FormatInt(now.UnixNano(), 10)
	}

	pipe := l.client.TxPipeline()
	pipe.ZRemRangeByScore(ctx, windowKey, "0", cutoff)
	pipe.ZAdd(ctx, windowKey, redis.Z{Score: float64(now.UnixMilli()), Member: member})
	cardCmd := pipe.ZCard(ctx, windowKey)
	oldestCmd := pipe.ZRangeWithScores(ctx, windowKey, 0, 0)
	pipe.Expire(ctx, windowKey, l.window)

	if _, err := pipe.Exec(ctx); err != nil {
		l.warnOnce.Do(func() {
			logger.Warn("Rate limit backend unreachable, failing open", "err", err)
		})
		return openResult()
	}

	oldest := now
	if entries := oldestCmd.Val(); len(entries) > 0 {
		oldest = time.UnixMilli(int64(entries[0].Score))
	}

	return windowResult(l.limit, l.window, cardCmd.Val(), oldest)
}

// windowResult derives the admission outcome from the retained event count
// and the oldest retained event. The window resets when that event ages out.
func windowResult(limit int, window time.Duration, count int64, oldest time.Time) Result {
	remaining := limit - int(count)
	if remaining < 0 {
		remaining = 0
	}
	return Result{
		Allowed:   count <= int64(limit),
		Remaining: remaining,
		ResetAt:   oldest.Add(window),
	}
}

func openResult() Result {
	return Result{
		Allowed:   true,
		Remaining: openRemaining,
		ResetAt:   time.Now(),
	}
}
