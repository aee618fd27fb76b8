package ratelimit_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alzentdigital/website/pkg/kvstore"
	"github.com/alzentdigital/website/pkg/ratelimit"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestMiddleware(t *testing.T) {
	t.Run("panics without key func", func(t *testing.T) {
		l := newLimiter(t, kvstore.NewMemory(), newClock())
		assert.Panics(t, func() { ratelimit.Middleware(l, nil) })
	})

	t.Run("sets headers and blocks after the cap", func(t *testing.T) {
		l := newLimiter(t, kvstore.NewMemory(), newClock(), ratelimit.WithMaxAttempts(2))
		handler := ratelimit.Middleware(l, ratelimit.ByClientIP)(okHandler())

		for i := range 2 {
			req := httptest.NewRequest(http.MethodPost, "/api/send-email", nil)
			req.RemoteAddr = "192.0.2.1:1000"
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, "2", rec.Header().Get("X-RateLimit-Limit"))
			assert.Equal(t, strconv.Itoa(1-i), rec.Header().Get("X-RateLimit-Remaining"))
		}

		req := httptest.NewRequest(http.MethodPost, "/api/send-email", nil)
		req.RemoteAddr = "192.0.2.1:1000"
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusTooManyRequests, rec.Code)
		assert.Equal(t, "300", rec.Header().Get("Retry-After"))

		other := httptest.NewRequest(http.MethodPost, "/api/send-email", nil)
		other.RemoteAddr = "192.0.2.2:1000"
		rec = httptest.NewRecorder()
		handler.ServeHTTP(rec, other)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("custom limit handler and skip", func(t *testing.T) {
		l := newLimiter(t, kvstore.NewMemory(), newClock(), ratelimit.WithMaxAttempts(1))
		handler := ratelimit.Middleware(l, ratelimit.ByPath,
			ratelimit.WithSkip(func(r *http.Request) bool { return r.Method == http.MethodOptions }),
			ratelimit.WithOnLimitReached(func(w http.ResponseWriter, r *http.Request, res *ratelimit.Result) {
				w.WriteHeader(http.StatusTeapot)
			}),
		)(okHandler())

		for range 3 {
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/x", nil))
			assert.Equal(t, http.StatusOK, rec.Code)
		}

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/x", nil))
		assert.Equal(t, http.StatusOK, rec.Code)

		rec = httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/x", nil))
		assert.Equal(t, http.StatusTeapot, rec.Code)
	})

	t.Run("empty key passes", func(t *testing.T) {
		l := newLimiter(t, kvstore.NewMemory(), newClock(), ratelimit.WithMaxAttempts(1))
		handler := ratelimit.Middleware(l, func(*http.Request) string { return "" })(okHandler())

		for range 3 {
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))
			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Empty(t, rec.Header().Get("X-RateLimit-Limit"))
		}
	})

	t.Run("storage failure fails open", func(t *testing.T) {
		l, err := ratelimit.New(failingStore{}, ratelimit.WithClock(time.Now))
		require.NoError(t, err)
		handler := ratelimit.Middleware(l, ratelimit.ByPath)(okHandler())

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestComposite(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/send-email", nil)
	req.RemoteAddr = "192.0.2.1:1000"

	assert.Equal(t, "", ratelimit.Composite()(req))
	assert.Equal(t, "192.0.2.1", ratelimit.Composite(ratelimit.ByClientIP)(req))
	assert.Equal(t, "192.0.2.1:/api/send-email", ratelimit.Composite(ratelimit.ByClientIP, ratelimit.ByPath)(req))

	long := httptest.NewRequest(http.MethodPost, "/api/forms/very-long-form-identifier-that-keeps-going/submit", nil)
	long.RemoteAddr = "192.0.2.1:1000"
	key := ratelimit.Composite(ratelimit.ByClientIP, ratelimit.ByPath)(long)
	assert.Len(t, key, 32)
}

type failingStore struct{}

func (failingStore) Get(context.Context, string) (string, bool, error) {
	return "", false, errors.New("down")
}
func (failingStore) Set(context.Context, string, string) error { return errors.New("down") }
func (failingStore) Delete(context.Context, string) error      { return errors.New("down") }
