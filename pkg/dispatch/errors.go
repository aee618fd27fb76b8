package dispatch

import "errors"

var (
	ErrNetwork     = errors.New("dispatch: network error")
	ErrTimeout     = errors.New("dispatch: request timeout")
	ErrValidation  = errors.New("dispatch: payload rejected by dispatcher")
	ErrServer      = errors.New("dispatch: dispatcher server error")
	ErrCircuitOpen = errors.New("dispatch: circuit breaker is open")

	ErrInvalidEndpoint  = errors.New("dispatch: invalid endpoint")
	ErrInvalidPayload   = errors.New("dispatch: invalid payload")
	ErrInvalidSignature = errors.New("dispatch: invalid signature")
)

// Category groups dispatch failures by how the caller reacts to them.
type Category string

const (
	CategoryNone       Category = ""
	CategoryNetwork    Category = "network"
	CategoryValidation Category = "validation"
	CategoryServer     Category = "server"
)

// Classify maps err onto a Category. Timeouts count as network failures;
// anything unrecognised is a server failure.
func Classify(err error) Category {
	switch {
	case err == nil:
		return CategoryNone
	case errors.Is(err, ErrNetwork), errors.Is(err, ErrTimeout):
		return CategoryNetwork
	case errors.Is(err, ErrValidation):
		return CategoryValidation
	default:
		return CategoryServer
	}
}

// IsRetryable reports whether err is worth one more attempt.
func IsRetryable(err error) bool {
	return Classify(err) == CategoryNetwork
}
