package dispatch_test

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alzentdigital/website/pkg/dispatch"
)

func TestCircuitBreaker(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	cb := dispatch.NewCircuitBreaker(3, 10*time.Second)
	cb.SetClock(func() time.Time { return now })

	for range 2 {
		cb.RecordFailure()
	}
	assert.True(t, cb.Allow())
	assert.Equal(t, dispatch.CircuitClosed, cb.State())

	cb.RecordFailure()
	assert.Equal(t, dispatch.CircuitOpen, cb.State())
	assert.False(t, cb.Allow())

	now = now.Add(11 * time.Second)
	assert.True(t, cb.Allow())
	assert.Equal(t, dispatch.CircuitHalfOpen, cb.State())

	// A failed trial reopens immediately.
	cb.RecordFailure()
	assert.Equal(t, dispatch.CircuitOpen, cb.State())

	now = now.Add(11 * time.Second)
	assert.True(t, cb.Allow())
	cb.RecordSuccess()
	assert.Equal(t, dispatch.CircuitClosed, cb.State())
	assert.Equal(t, "closed", cb.State().String())
}

func TestCircuitBreakerDefaults(t *testing.T) {
	t.Parallel()

	cb := dispatch.NewCircuitBreaker(0, 0)
	for range 4 {
		cb.RecordFailure()
	}
	assert.True(t, cb.Allow())
	cb.RecordFailure()
	assert.False(t, cb.Allow())
}

func TestCircuitBreakerHalfOpenAllowsOneTrial(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	cb := dispatch.NewCircuitBreaker(1, time.Second)
	cb.SetClock(func() time.Time { return now })

	cb.RecordFailure()
	require.Equal(t, dispatch.CircuitOpen, cb.State())

	now = now.Add(2 * time.Second)
	assert.True(t, cb.Allow(), "first caller runs the trial")
	assert.False(t, cb.Allow(), "concurrent callers are refused")
	assert.False(t, cb.Allow())
	assert.Equal(t, dispatch.CircuitHalfOpen, cb.State())

	cb.RecordSuccess()
	assert.True(t, cb.Allow())
	assert.True(t, cb.Allow(), "closed circuit admits everyone")
}

func TestCircuitBreakerConcurrentTrial(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	cb := dispatch.NewCircuitBreaker(1, time.Second)
	cb.SetClock(func() time.Time { return now })
	cb.RecordFailure()
	now = now.Add(2 * time.Second)

	var (
		wg      sync.WaitGroup
		allowed atomic.Int32
	)
	for range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if cb.Allow() {
				allowed.Add(1)
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, int32(1), allowed.Load())
}
