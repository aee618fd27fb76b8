package kvstore_test

import (
	"context"
	"errors"
	"os"
	"sync"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alzentdigital/website/pkg/kvstore"
)

// testStoreContract exercises the behaviour every Store implementation shares.
func testStoreContract(t *testing.T, store kvstore.Store) {
	t.Helper()
	ctx := context.Background()

	t.Run("missing key is not found", func(t *testing.T) {
		val, found, err := store.Get(ctx, "missing")
		require.NoError(t, err)
		assert.False(t, found)
		assert.Empty(t, val)
	})

	t.Run("set then get", func(t *testing.T) {
		require.NoError(t, store.Set(ctx, "alzent_csrf_token", "abc"))
		val, found, err := store.Get(ctx, "alzent_csrf_token")
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, "abc", val)
	})

	t.Run("overwrite", func(t *testing.T) {
		require.NoError(t, store.Set(ctx, "k", "one"))
		require.NoError(t, store.Set(ctx, "k", "two"))
		val, _, err := store.Get(ctx, "k")
		require.NoError(t, err)
		assert.Equal(t, "two", val)
	})

	t.Run("empty value is stored", func(t *testing.T) {
		require.NoError(t, store.Set(ctx, "empty", ""))
		_, found, err := store.Get(ctx, "empty")
		require.NoError(t, err)
		assert.True(t, found)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, store.Set(ctx, "gone", "x"))
		require.NoError(t, store.Delete(ctx, "gone"))
		_, found, err := store.Get(ctx, "gone")
		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("empty key is rejected", func(t *testing.T) {
		_, _, err := store.Get(ctx, "")
		assert.ErrorIs(t, err, kvstore.ErrEmptyKey)
		assert.ErrorIs(t, store.Set(ctx, "", "x"), kvstore.ErrEmptyKey)
		assert.ErrorIs(t, store.Delete(ctx, ""), kvstore.ErrEmptyKey)
	})

	t.Run("delete prefix", func(t *testing.T) {
		d, ok := store.(kvstore.PrefixDeleter)
		require.True(t, ok)

		require.NoError(t, store.Set(ctx, "visitor:9:alzent_csrf_token", "a"))
		require.NoError(t, store.Set(ctx, "visitor:9:alzent_csrf_expiry", "b"))
		require.NoError(t, store.Set(ctx, "visitor:90:alzent_csrf_token", "c"))

		n, err := d.DeletePrefix(ctx, "visitor:9:")
		require.NoError(t, err)
		assert.Equal(t, 2, n)

		_, found, err := store.Get(ctx, "visitor:9:alzent_csrf_token")
		require.NoError(t, err)
		assert.False(t, found)
		_, found, err = store.Get(ctx, "visitor:90:alzent_csrf_token")
		require.NoError(t, err)
		assert.True(t, found)

		_, err = d.DeletePrefix(ctx, "")
		assert.ErrorIs(t, err, kvstore.ErrEmptyKey)
	})
}

func TestMemory(t *testing.T) {
	testStoreContract(t, kvstore.NewMemory())
}

func TestMemory_Concurrent(t *testing.T) {
	store := kvstore.NewMemory()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = store.Set(ctx, "shared", "v")
			_, _, _ = store.Get(ctx, "shared")
			if i%5 == 0 {
				_ = store.Delete(ctx, "shared")
			}
		}(i)
	}
	wg.Wait()
	assert.LessOrEqual(t, store.Len(), 1)
}

func TestMemory_TTL(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	store := kvstore.NewMemory(
		kvstore.WithMemoryTTL(time.Hour),
		kvstore.WithMemoryClock(func() time.Time { return now }),
	)

	require.NoError(t, store.Set(ctx, "visitor:1:alzent_csrf_token", "a"))
	now = now.Add(30 * time.Minute)
	require.NoError(t, store.Set(ctx, "api:alzent_attempts_192.0.2.1", "[]"))

	_, found, err := store.Get(ctx, "visitor:1:alzent_csrf_token")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, 0, store.Prune())

	now = now.Add(45 * time.Minute)
	_, found, err = store.Get(ctx, "visitor:1:alzent_csrf_token")
	require.NoError(t, err)
	assert.False(t, found, "expired key reads as missing")
	assert.Equal(t, 2, store.Len(), "expired key is kept until pruned")

	assert.Equal(t, 1, store.Prune())
	assert.Equal(t, 1, store.Len())

	now = now.Add(time.Hour)
	assert.Equal(t, 1, store.Prune())
	assert.Zero(t, store.Len())
}

func TestMemory_NoTTL(t *testing.T) {
	store := kvstore.NewMemory()
	require.NoError(t, store.Set(context.Background(), "k", "v"))
	assert.Zero(t, store.Prune())
	assert.Equal(t, 1, store.Len())
}

type plainStore struct{ kvstore.Store }

func TestWithPrefix_DeletePrefixUnsupported(t *testing.T) {
	store := kvstore.WithPrefix(plainStore{kvstore.NewMemory()}, "visitor:")
	_, err := store.(kvstore.PrefixDeleter).DeletePrefix(context.Background(), "1:")
	assert.ErrorIs(t, err, errors.ErrUnsupported)
}

func TestWithPrefix(t *testing.T) {
	ctx := context.Background()
	base := kvstore.NewMemory()

	testStoreContract(t, kvstore.WithPrefix(base, "visitor:a:"))

	t.Run("namespaces do not collide", func(t *testing.T) {
		a := kvstore.WithPrefix(base, "visitor:1:")
		b := kvstore.WithPrefix(base, "visitor:2:")

		require.NoError(t, a.Set(ctx, "alzent_csrf_token", "token-a"))
		_, found, err := b.Get(ctx, "alzent_csrf_token")
		require.NoError(t, err)
		assert.False(t, found)

		raw, found, err := base.Get(ctx, "visitor:1:alzent_csrf_token")
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, "token-a", raw)
	})

	t.Run("empty prefix returns the store itself", func(t *testing.T) {
		assert.Same(t, base, kvstore.WithPrefix(base, ""))
	})
}

func TestRedis(t *testing.T) {
	url := os.Getenv("REDIS_URL")
	if url == "" {
		t.Skip("REDIS_URL not set")
	}

	opts, err := goredis.ParseURL(url)
	require.NoError(t, err)
	client := goredis.NewClient(opts)
	t.Cleanup(func() { _ = client.Close() })

	prefix := "kvstore_test:" + time.Now().Format("150405.000000") + ":"
	testStoreContract(t, kvstore.WithPrefix(kvstore.NewRedis(client, kvstore.WithKeyTTL(time.Minute)), prefix))
}
