package formguard

import (
	"context"
	"log/slog"
	"time"

	"github.com/alzentdigital/website/pkg/dispatch"
	"github.com/alzentdigital/website/pkg/validator"
)

// Defaults for the dispatch call.
const (
	DefaultTimeout    = 30 * time.Second
	DefaultRetryDelay = 2 * time.Second
	DefaultMaxRetries = 1
)

// Option configures a Guard.
type Option func(*Guard)

// WithDispatcher sets where accepted payloads go. Without one every payload
// is reported as delivered.
func WithDispatcher(d dispatch.Dispatcher) Option {
	return func(g *Guard) {
		if d != nil {
			g.dispatcher = d
		}
	}
}

// WithLocalizer sets the message source. Defaults to the built-in catalogue.
func WithLocalizer(l Localizer) Option {
	return func(g *Guard) {
		if l != nil {
			g.localizer = l
		}
	}
}

// WithModal sets the card modal the guard closes after a card request.
func WithModal(m Modal) Option {
	return func(g *Guard) {
		if m != nil {
			g.modal = m
		}
	}
}

// WithRenderer receives every view the guard produces.
func WithRenderer(r Renderer) Option {
	return func(g *Guard) {
		if r != nil {
			g.renderer = r
		}
	}
}

// WithValidator replaces the field validator. Its messages come from the
// validator's own localizer.
func WithValidator(v *validator.Validator) Option {
	return func(g *Guard) {
		if v != nil {
			g.validator = v
		}
	}
}

// WithTimeout bounds each dispatcher call.
func WithTimeout(d time.Duration) Option {
	return func(g *Guard) {
		if d > 0 {
			g.timeout = d
		}
	}
}

// WithRetry sets how many times a network failure is retried and the pause
// before each retry.
func WithRetry(maxRetries int, delay time.Duration) Option {
	return func(g *Guard) {
		if maxRetries >= 0 {
			g.maxRetries = maxRetries
		}
		if delay >= 0 {
			g.retryDelay = delay
		}
	}
}

// WithSleeper replaces the retry pause. Tests use it to skip real waiting.
func WithSleeper(sleep func(ctx context.Context, d time.Duration) error) Option {
	return func(g *Guard) {
		if sleep != nil {
			g.sleep = sleep
		}
	}
}

// WithClock overrides time.Now for payload timestamps.
func WithClock(now func() time.Time) Option {
	return func(g *Guard) {
		if now != nil {
			g.now = now
		}
	}
}

// WithLogger sets the logger for state transitions and dispatch failures.
func WithLogger(l *slog.Logger) Option {
	return func(g *Guard) {
		if l != nil {
			g.log = l
		}
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
