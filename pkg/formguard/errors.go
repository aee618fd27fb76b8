package formguard

import "errors"

var (
	ErrSubmitInProgress = errors.New("formguard: submission already in progress")
	ErrUnknownField     = errors.New("formguard: unknown field")
	ErrFormRequired     = errors.New("formguard: form is required")
	ErrTokensRequired   = errors.New("formguard: token source is required")
	ErrLimiterRequired  = errors.New("formguard: rate limiter is required")
)
