package csrf

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"io"
	"strconv"
	"time"

	"github.com/alzentdigital/website/pkg/kvstore"
)

const (
	// FieldName is the name of the hidden form input carrying the token.
	FieldName = "_csrf_token"

	// TokenKey and ExpiryKey are the storage keys of the token and its
	// expiry in unix milliseconds.
	TokenKey  = "alzent_csrf_token"
	ExpiryKey = "alzent_csrf_expiry"

	// DefaultTTL is how long an issued token stays valid.
	DefaultTTL = time.Hour

	tokenBytes = 32
)

// Store issues and renews tokens.
type Store struct {
	kv     kvstore.Store
	ttl    time.Duration
	now    func() time.Time
	random io.Reader
}

// Option configures a Store.
type Option func(*Store)

// WithTTL overrides the token lifetime.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// WithRandom replaces crypto/rand as the token source.
func WithRandom(r io.Reader) Option {
	return func(s *Store) {
		if r != nil {
			s.random = r
		}
	}
}

// New creates a token store over kv.
func New(kv kvstore.Store, opts ...Option) *Store {
	s := &Store{
		kv:     kv,
		ttl:    DefaultTTL,
		now:    time.Now,
		random: rand.Reader,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Token returns the stored token while it is unexpired, otherwise issues,
// persists and returns a new one.
func (s *Store) Token(ctx context.Context) (string, error) {
	now := s.now()

	token, expiry, err := s.load(ctx)
	if err != nil {
		return "", err
	}
	if token != "" && now.Before(expiry) {
		return token, nil
	}

	buf := make([]byte, tokenBytes)
	if _, err := io.ReadFull(s.random, buf); err != nil {
		return "", errors.Join(ErrGenerateToken, err)
	}
	token = hex.EncodeToString(buf)

	if err := s.kv.Set(ctx, TokenKey, token); err != nil {
		return "", errors.Join(ErrStorage, err)
	}
	expiresAt := strconv.FormatInt(now.Add(s.ttl).UnixMilli(), 10)
	if err := s.kv.Set(ctx, ExpiryKey, expiresAt); err != nil {
		return "", errors.Join(ErrStorage, err)
	}

	return token, nil
}

// load reads the stored pair. A missing or unparseable expiry yields the
// zero time, which forces renewal.
func (s *Store) load(ctx context.Context) (string, time.Time, error) {
	token, found, err := s.kv.Get(ctx, TokenKey)
	if err != nil {
		return "", time.Time{}, errors.Join(ErrStorage, err)
	}
	if !found {
		return "", time.Time{}, nil
	}

	raw, found, err := s.kv.Get(ctx, ExpiryKey)
	if err != nil {
		return "", time.Time{}, errors.Join(ErrStorage, err)
	}
	if !found {
		return token, time.Time{}, nil
	}

	ms, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return token, time.Time{}, nil
	}
	return token, time.UnixMilli(ms), nil
}
