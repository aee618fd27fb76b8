package kvstore

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis is a Store backed by a Redis server.
type Redis struct {
	client redis.UniversalClient
	ttl    time.Duration
}

// RedisOption configures a Redis store.
type RedisOption func(*Redis)

// WithKeyTTL makes every written key expire after ttl.
// Zero keeps keys until they are deleted.
func WithKeyTTL(ttl time.Duration) RedisOption {
	return func(r *Redis) {
		if ttl > 0 {
			r.ttl = ttl
		}
	}
}

// NewRedis wraps a connected Redis client.
func NewRedis(client redis.UniversalClient, opts ...RedisOption) *Redis {
	r := &Redis{client: client}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Redis) Get(ctx context.Context, key string) (string, bool, error) {
	if key == "" {
		return "", false, ErrEmptyKey
	}

	val, err := r.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, errors.Join(ErrStorageFailure, err)
	}
	return val, true, nil
}

func (r *Redis) Set(ctx context.Context, key, value string) error {
	if key == "" {
		return ErrEmptyKey
	}

	if err := r.client.Set(ctx, key, value, r.ttl).Err(); err != nil {
		return errors.Join(ErrStorageFailure, err)
	}
	return nil
}

func (r *Redis) Delete(ctx context.Context, key string) error {
	if key == "" {
		return ErrEmptyKey
	}

	if err := r.client.Del(ctx, key).Err(); err != nil {
		return errors.Join(ErrStorageFailure, err)
	}
	return nil
}

// scanBatch is the SCAN count hint and the DEL batch size.
const scanBatch = 100

// DeletePrefix removes every key starting with prefix. Keys are found with
// SCAN, so a concurrent writer may leave a key behind.
func (r *Redis) DeletePrefix(ctx context.Context, prefix string) (int, error) {
	if prefix == "" {
		return 0, ErrEmptyKey
	}

	var (
		n     int
		batch = make([]string, 0, scanBatch)
	)
	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		deleted, err := r.client.Del(ctx, batch...).Result()
		if err != nil {
			return errors.Join(ErrStorageFailure, err)
		}
		n += int(deleted)
		batch = batch[:0]
		return nil
	}

	iter := r.client.Scan(ctx, 0, globEscaper.Replace(prefix)+"*", scanBatch).Iterator()
	for iter.Next(ctx) {
		batch = append(batch, iter.Val())
		if len(batch) == scanBatch {
			if err := flush(); err != nil {
				return n, err
			}
		}
	}
	if err := iter.Err(); err != nil {
		return n, errors.Join(ErrStorageFailure, err)
	}
	return n, flush()
}

var globEscaper = strings.NewReplacer(`\`, `\\`, `*`, `\*`, `?`, `\?`, `[`, `\[`, `]`, `\]`)

// Close closes the underlying client.
func (r *Redis) Close() error {
	return r.client.Close()
}
