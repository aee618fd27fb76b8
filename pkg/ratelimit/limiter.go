package ratelimit

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strconv"
	"time"

	"github.com/alzentdigital/website/pkg/kvstore"
	"github.com/alzentdigital/website/pkg/logger"
)

// Storage key prefixes. The key suffix is the form id.
const (
	AttemptsKeyPrefix = "alzent_attempts_"
	BlockedKeyPrefix  = "alzent_blocked_"
)

// Limiter is a sliding window limiter with a cooldown lockout. Attempt
// timestamps (unix milliseconds) and the blocked-until instant live in a
// kvstore.Store, so state survives restarts when the store is durable.
//
// Check and RecordAttempt are separate: the caller records an attempt only
// after its own gates pass. Reads and writes are not atomic, so concurrent
// callers sharing a key may over-admit by a few attempts.
type Limiter struct {
	store  kvstore.Store
	cfg    Config
	now    func() time.Time
	logger *slog.Logger
}

// Option configures a Limiter.
type Option func(*Limiter)

// WithConfig replaces all limits at once.
func WithConfig(cfg Config) Option {
	return func(l *Limiter) {
		l.cfg = cfg
	}
}

// WithMaxAttempts overrides the attempt cap.
func WithMaxAttempts(n int) Option {
	return func(l *Limiter) {
		l.cfg.MaxAttempts = n
	}
}

// WithWindow overrides the window length.
func WithWindow(d time.Duration) Option {
	return func(l *Limiter) {
		l.cfg.Window = d
	}
}

// WithCooldown overrides the lockout duration.
func WithCooldown(d time.Duration) Option {
	return func(l *Limiter) {
		l.cfg.Cooldown = d
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(l *Limiter) {
		if now != nil {
			l.now = now
		}
	}
}

// WithLogger sets the logger used for corrupt state warnings.
func WithLogger(log *slog.Logger) Option {
	return func(l *Limiter) {
		if log != nil {
			l.logger = log
		}
	}
}

// New creates a Limiter with DefaultConfig unless overridden.
func New(store kvstore.Store, opts ...Option) (*Limiter, error) {
	if store == nil {
		return nil, ErrStoreRequired
	}

	l := &Limiter{
		store:  store,
		cfg:    DefaultConfig(),
		now:    time.Now,
		logger: logger.Discard(),
	}
	for _, opt := range opts {
		opt(l)
	}

	if l.cfg.MaxAttempts <= 0 {
		return nil, ErrInvalidLimit
	}
	if l.cfg.Window <= 0 || l.cfg.Cooldown <= 0 {
		return nil, ErrInvalidInterval
	}

	return l, nil
}

// Config returns the active limits.
func (l *Limiter) Config() Config {
	return l.cfg
}

// Check reports whether another attempt for key may proceed.
//
// An unexpired block denies with the time left. Otherwise attempts older
// than the window are ignored; when the remaining count has reached the cap
// the key is blocked for the cooldown, its attempt history is cleared and
// the call denies with the full cooldown.
func (l *Limiter) Check(ctx context.Context, key string) (*Result, error) {
	if key == "" {
		return nil, ErrKeyRequired
	}
	now := l.now()

	blockedUntil, blocked, err := l.blockedUntil(ctx, key)
	if err != nil {
		return nil, err
	}
	if blocked && now.Before(blockedUntil) {
		return &Result{
			Allowed:    false,
			Limit:      l.cfg.MaxAttempts,
			RetryAfter: blockedUntil.Sub(now),
			ResetAt:    blockedUntil,
		}, nil
	}

	attempts, err := l.attempts(ctx, key)
	if err != nil {
		return nil, err
	}
	recent := inWindow(attempts, now, l.cfg.Window)

	if len(recent) >= l.cfg.MaxAttempts {
		until := now.Add(l.cfg.Cooldown)
		if err := l.store.Set(ctx, BlockedKeyPrefix+key, strconv.FormatInt(until.UnixMilli(), 10)); err != nil {
			return nil, errors.Join(ErrStorage, err)
		}
		if err := l.store.Delete(ctx, AttemptsKeyPrefix+key); err != nil {
			return nil, errors.Join(ErrStorage, err)
		}
		return &Result{
			Allowed:    false,
			Limit:      l.cfg.MaxAttempts,
			RetryAfter: l.cfg.Cooldown,
			ResetAt:    until,
		}, nil
	}

	resetAt := now.Add(l.cfg.Window)
	if len(recent) > 0 {
		resetAt = time.UnixMilli(recent[0]).Add(l.cfg.Window)
	}

	return &Result{
		Allowed:   true,
		Limit:     l.cfg.MaxAttempts,
		Remaining: l.cfg.MaxAttempts - len(recent),
		ResetAt:   resetAt,
	}, nil
}

// RecordAttempt appends the current time to the attempt history of key.
// Entries already outside the window are dropped while rewriting.
func (l *Limiter) RecordAttempt(ctx context.Context, key string) error {
	if key == "" {
		return ErrKeyRequired
	}
	now := l.now()

	attempts, err := l.attempts(ctx, key)
	if err != nil {
		return err
	}
	attempts = append(inWindow(attempts, now, l.cfg.Window), now.UnixMilli())

	raw, err := json.Marshal(attempts)
	if err != nil {
		return errors.Join(ErrStorage, err)
	}
	if err := l.store.Set(ctx, AttemptsKeyPrefix+key, string(raw)); err != nil {
		return errors.Join(ErrStorage, err)
	}
	return nil
}

// Allow checks key and, when allowed, records the attempt.
func (l *Limiter) Allow(ctx context.Context, key string) (*Result, error) {
	res, err := l.Check(ctx, key)
	if err != nil || !res.Allowed {
		return res, err
	}
	if err := l.RecordAttempt(ctx, key); err != nil {
		return nil, err
	}
	res.Remaining--
	return res, nil
}

// Reset removes all state for key.
func (l *Limiter) Reset(ctx context.Context, key string) error {
	if key == "" {
		return ErrKeyRequired
	}
	if err := l.store.Delete(ctx, AttemptsKeyPrefix+key); err != nil {
		return errors.Join(ErrStorage, err)
	}
	if err := l.store.Delete(ctx, BlockedKeyPrefix+key); err != nil {
		return errors.Join(ErrStorage, err)
	}
	return nil
}

func (l *Limiter) blockedUntil(ctx context.Context, key string) (time.Time, bool, error) {
	raw, found, err := l.store.Get(ctx, BlockedKeyPrefix+key)
	if err != nil {
		return time.Time{}, false, errors.Join(ErrStorage, err)
	}
	if !found {
		return time.Time{}, false, nil
	}

	ms, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		l.logger.WarnContext(ctx, "ignoring corrupt rate limit block",
			logger.Component("ratelimit"),
			logger.FormID(key),
			logger.Error(err),
		)
		return time.Time{}, false, nil
	}
	return time.UnixMilli(ms), true, nil
}

func (l *Limiter) attempts(ctx context.Context, key string) ([]int64, error) {
	raw, found, err := l.store.Get(ctx, AttemptsKeyPrefix+key)
	if err != nil {
		return nil, errors.Join(ErrStorage, err)
	}
	if !found || raw == "" {
		return nil, nil
	}

	var attempts []int64
	if err := json.Unmarshal([]byte(raw), &attempts); err != nil {
		l.logger.WarnContext(ctx, "ignoring corrupt rate limit history",
			logger.Component("ratelimit"),
			logger.FormID(key),
			logger.Error(err),
		)
		return nil, nil
	}
	return attempts, nil
}

// inWindow keeps timestamps strictly newer than now-window.
func inWindow(attempts []int64, now time.Time, window time.Duration) []int64 {
	start := now.Add(-window).UnixMilli()
	recent := make([]int64, 0, len(attempts))
	for _, ts := range attempts {
		if ts > start {
			recent = append(recent, ts)
		}
	}
	return recent
}
