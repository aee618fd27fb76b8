package ratelimit

import (
	"math"
	"time"
)

// Config holds the sliding window and cooldown parameters.
type Config struct {
	// MaxAttempts is the number of attempts tolerated inside Window.
	MaxAttempts int
	// Window is the trailing duration attempts are counted over.
	Window time.Duration
	// Cooldown is how long a key stays blocked once the window is full.
	Cooldown time.Duration
}

// DefaultConfig allows 5 attempts per minute and blocks for 5 minutes.
func DefaultConfig() Config {
	return Config{
		MaxAttempts: 5,
		Window:      time.Minute,
		Cooldown:    5 * time.Minute,
	}
}

// Result contains the outcome of a rate limit check.
type Result struct {
	// Allowed indicates whether another attempt may proceed.
	Allowed bool

	// Limit is the maximum number of attempts inside the window.
	Limit int

	// Remaining is the number of attempts left in the current window.
	Remaining int

	// RetryAfter is how long the caller must wait when not allowed.
	RetryAfter time.Duration

	// ResetAt is when the block lifts, or when the oldest counted attempt
	// leaves the window.
	ResetAt time.Time
}

// RemainingSeconds returns RetryAfter rounded up to whole seconds.
func (r *Result) RemainingSeconds() int {
	if r.Allowed || r.RetryAfter <= 0 {
		return 0
	}
	return int(math.Ceil(r.RetryAfter.Seconds()))
}

// RemainingMinutes returns RetryAfter rounded up to whole minutes.
func (r *Result) RemainingMinutes() int {
	return int(math.Ceil(float64(r.RemainingSeconds()) / 60))
}
