package csrf_test

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alzentdigital/website/pkg/csrf"
	"github.com/alzentdigital/website/pkg/kvstore"
)

var hexToken = regexp.MustCompile(`^[0-9a-f]{64}$`)

type clock struct{ t time.Time }

func (c *clock) Now() time.Time          { return c.t }
func (c *clock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func TestStore_Token(t *testing.T) {
	ctx := context.Background()

	t.Run("issues a 64 character hex token", func(t *testing.T) {
		store := csrf.New(kvstore.NewMemory())
		token, err := store.Token(ctx)
		require.NoError(t, err)
		assert.Regexp(t, hexToken, token)
	})

	t.Run("reuses token within ttl", func(t *testing.T) {
		clk := &clock{t: time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)}
		store := csrf.New(kvstore.NewMemory(), csrf.WithClock(clk.Now))

		first, err := store.Token(ctx)
		require.NoError(t, err)

		clk.Advance(59 * time.Minute)
		second, err := store.Token(ctx)
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})

	t.Run("renews after ttl", func(t *testing.T) {
		clk := &clock{t: time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)}
		kv := kvstore.NewMemory()
		store := csrf.New(kv, csrf.WithClock(clk.Now))

		first, err := store.Token(ctx)
		require.NoError(t, err)

		clk.Advance(time.Hour)
		second, err := store.Token(ctx)
		require.NoError(t, err)
		assert.NotEqual(t, first, second)
		assert.Regexp(t, hexToken, second)

		expiry, found, err := kv.Get(ctx, csrf.ExpiryKey)
		require.NoError(t, err)
		require.True(t, found)
		assert.Equal(t, "1735740000000", expiry)
	})

	t.Run("persists the pair under known keys", func(t *testing.T) {
		kv := kvstore.NewMemory()
		token, err := csrf.New(kv).Token(ctx)
		require.NoError(t, err)

		stored, found, err := kv.Get(ctx, csrf.TokenKey)
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, token, stored)
	})

	t.Run("shared storage yields the same token", func(t *testing.T) {
		kv := kvstore.NewMemory()
		a, err := csrf.New(kv).Token(ctx)
		require.NoError(t, err)
		b, err := csrf.New(kv).Token(ctx)
		require.NoError(t, err)
		assert.Equal(t, a, b)
	})

	t.Run("corrupt expiry forces renewal", func(t *testing.T) {
		kv := kvstore.NewMemory()
		require.NoError(t, kv.Set(ctx, csrf.TokenKey, "stale"))
		require.NoError(t, kv.Set(ctx, csrf.ExpiryKey, "not-a-number"))

		token, err := csrf.New(kv).Token(ctx)
		require.NoError(t, err)
		assert.NotEqual(t, "stale", token)
	})

	t.Run("custom ttl", func(t *testing.T) {
		clk := &clock{t: time.Now()}
		store := csrf.New(kvstore.NewMemory(), csrf.WithClock(clk.Now), csrf.WithTTL(time.Minute))

		first, err := store.Token(ctx)
		require.NoError(t, err)
		clk.Advance(2 * time.Minute)
		second, err := store.Token(ctx)
		require.NoError(t, err)
		assert.NotEqual(t, first, second)
	})

	t.Run("random source failure", func(t *testing.T) {
		store := csrf.New(kvstore.NewMemory(), csrf.WithRandom(failingReader{}))
		_, err := store.Token(ctx)
		assert.ErrorIs(t, err, csrf.ErrGenerateToken)
	})

	t.Run("storage failure", func(t *testing.T) {
		store := csrf.New(brokenStore{})
		_, err := store.Token(ctx)
		assert.ErrorIs(t, err, csrf.ErrStorage)
	})
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("entropy exhausted") }

type brokenStore struct{}

func (brokenStore) Get(context.Context, string) (string, bool, error) {
	return "", false, errors.New("down")
}
func (brokenStore) Set(context.Context, string, string) error { return errors.New("down") }
func (brokenStore) Delete(context.Context, string) error      { return errors.New("down") }
