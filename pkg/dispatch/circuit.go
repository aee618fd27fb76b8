package dispatch

import (
	"sync"
	"time"
)

// CircuitState is the position of a CircuitBreaker.
type CircuitState int

const (
	CircuitClosed CircuitState = iota
	CircuitOpen
	CircuitHalfOpen
)

// String returns the lowercase state name used in logs.
func (s CircuitState) String() string {
	switch s {
	case CircuitClosed:
		return "closed"
	case CircuitOpen:
		return "open"
	case CircuitHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

// CircuitBreaker stops calling a dispatcher that keeps failing with server
// errors. After the recovery timeout a single trial call is let through
// while every other caller is refused; a success closes the circuit, a
// failure reopens it. Every allowed call must be followed by RecordSuccess
// or RecordFailure.
type CircuitBreaker struct {
	mu sync.Mutex

	threshold int
	recovery  time.Duration
	now       func() time.Time

	state       CircuitState
	failures    int
	lastFailure time.Time
	trial       bool
}

// NewCircuitBreaker opens after threshold consecutive failures and retries
// after recovery. Non-positive values default to 5 failures and 30s.
func NewCircuitBreaker(threshold int, recovery time.Duration) *CircuitBreaker {
	if threshold <= 0 {
		threshold = 5
	}
	if recovery <= 0 {
		recovery = 30 * time.Second
	}
	return &CircuitBreaker{threshold: threshold, recovery: recovery, now: time.Now}
}

// Allow reports whether a call may proceed, moving an expired open circuit
// to half-open. While half-open only the first caller is allowed until its
// outcome is recorded.
func (cb *CircuitBreaker) Allow() bool {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	if cb.state == CircuitOpen && cb.now().Sub(cb.lastFailure) > cb.recovery {
		cb.state = CircuitHalfOpen
		cb.trial = false
	}
	switch cb.state {
	case CircuitOpen:
		return false
	case CircuitHalfOpen:
		if cb.trial {
			return false
		}
		cb.trial = true
	}
	return true
}

// RecordSuccess closes the circuit and resets the failure count.
func (cb *CircuitBreaker) RecordSuccess() {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	cb.state = CircuitClosed
	cb.failures = 0
	cb.trial = false
}

// RecordFailure counts a server failure. It opens the circuit at the
// threshold, or at once while half-open.
func (cb *CircuitBreaker) RecordFailure() {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	cb.trial = false
	cb.lastFailure = cb.now()
	cb.failures++
	if cb.state == CircuitHalfOpen || cb.failures >= cb.threshold {
		cb.state = CircuitOpen
	}
}

// State returns the current state without advancing it.
func (cb *CircuitBreaker) State() CircuitState {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.state
}

// SetClock replaces the time source. Intended for tests.
func (cb *CircuitBreaker) SetClock(now func() time.Time) {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	if now != nil {
		cb.now = now
	}
}
