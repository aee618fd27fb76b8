package kvstore

import (
	"context"
	"errors"
)

// Store is a string key-value storage.
// Get reports found=false for missing keys without an error.
type Store interface {
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// PrefixDeleter is implemented by stores that can drop a whole namespace.
type PrefixDeleter interface {
	DeletePrefix(ctx context.Context, prefix string) (int, error)
}

// Pruner is implemented by stores that expire keys in process and need a
// periodic sweep.
type Pruner interface {
	Prune() int
}

type prefixed struct {
	store  Store
	prefix string
}

// WithPrefix returns a Store that prepends prefix to every key.
func WithPrefix(store Store, prefix string) Store {
	if prefix == "" {
		return store
	}
	return &prefixed{store: store, prefix: prefix}
}

func (p *prefixed) Get(ctx context.Context, key string) (string, bool, error) {
	if key == "" {
		return "", false, ErrEmptyKey
	}
	return p.store.Get(ctx, p.prefix+key)
}

func (p *prefixed) Set(ctx context.Context, key, value string) error {
	if key == "" {
		return ErrEmptyKey
	}
	return p.store.Set(ctx, p.prefix+key, value)
}

func (p *prefixed) Delete(ctx context.Context, key string) error {
	if key == "" {
		return ErrEmptyKey
	}
	return p.store.Delete(ctx, p.prefix+key)
}

// DeletePrefix forwards to the wrapped store, or fails with
// errors.ErrUnsupported when it cannot delete by prefix.
func (p *prefixed) DeletePrefix(ctx context.Context, prefix string) (int, error) {
	if prefix == "" {
		return 0, ErrEmptyKey
	}
	d, ok := p.store.(PrefixDeleter)
	if !ok {
		return 0, errors.ErrUnsupported
	}
	return d.DeletePrefix(ctx, p.prefix+prefix)
}
