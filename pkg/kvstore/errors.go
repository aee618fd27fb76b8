package kvstore

import "errors"

var (
	// ErrEmptyKey is returned when an operation is called with an empty key.
	ErrEmptyKey = errors.New("kvstore: empty key")

	// ErrStorageFailure wraps errors coming from the underlying backend.
	ErrStorageFailure = errors.New("kvstore: storage failure")
)
