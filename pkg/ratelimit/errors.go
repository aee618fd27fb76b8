package ratelimit

import "errors"

var (
	ErrInvalidLimit    = errors.New("ratelimit: invalid limit")
	ErrInvalidInterval = errors.New("ratelimit: invalid interval")
	ErrKeyRequired     = errors.New("ratelimit: key is required")
	ErrStoreRequired   = errors.New("ratelimit: store is required")
	ErrStorage         = errors.New("ratelimit: storage failure")
)
