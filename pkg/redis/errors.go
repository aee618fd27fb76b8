package redis

import "errors"

var (
	// ErrEmptyConnectionURL is returned by Connect when REDIS_URL is unset.
	ErrEmptyConnectionURL = errors.New("redis: REDIS_URL is empty")

	ErrFailedToParseRedisConnString = errors.New("redis: invalid REDIS_URL")

	// ErrRedisNotReady is returned when no ping succeeded within the
	// configured retry budget.
	ErrRedisNotReady = errors.New("redis: server not ready")

	// ErrHealthcheckFailed makes the readiness check report the visitor
	// state store as down.
	ErrHealthcheckFailed = errors.New("redis: visitor state store unreachable")
)
