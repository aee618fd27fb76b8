package csrf

import "errors"

var (
	// ErrGenerateToken is returned when the random source fails.
	ErrGenerateToken = errors.New("csrf: failed to generate token")

	// ErrStorage wraps read and write failures of the backing store.
	ErrStorage = errors.New("csrf: storage failure")
)
