package site

import "errors"

var (
	ErrStoreRequired   = errors.New("site: storage is required")
	ErrCookiesRequired = errors.New("site: cookie manager is required")
	ErrInvalidConfig   = errors.New("site: invalid configuration")
)
