package handler

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"
)

var (
	ErrNilResponse = errors.New("handler returned nil response")

	// ErrBinderNotApplicable tells Wrap to try the next binder.
	ErrBinderNotApplicable = errors.New("binder not applicable to this request")
	ErrMissingContentType  = errors.New("missing content type")
	ErrUnsupportedMedia    = errors.New("unsupported media type")
	ErrInvalidBody         = errors.New("invalid request body")
)

// HTTPError carries a status code and a machine-readable key.
type HTTPError struct {
	Code int
	Key  string
}

func (e HTTPError) Error() string { return e.Key }

// NewHTTPError returns an HTTPError for code. An empty key defaults to the
// status text.
func NewHTTPError(code int, key string) HTTPError {
	if key == "" {
		key = http.StatusText(code)
	}
	return HTTPError{Code: code, Key: key}
}

var (
	ErrBadRequest      = HTTPError{Code: http.StatusBadRequest, Key: "bad_request"}
	ErrNotFound        = HTTPError{Code: http.StatusNotFound, Key: "not_found"}
	ErrConflict        = HTTPError{Code: http.StatusConflict, Key: "conflict"}
	ErrTooManyRequests = HTTPError{Code: http.StatusTooManyRequests, Key: "too_many_requests"}
	ErrInternal        = HTTPError{Code: http.StatusInternalServerError, Key: "internal_server_error"}
)

// ValidationError maps field names to messages.
type ValidationError url.Values

func (e ValidationError) Error() string {
	if len(e) == 0 {
		return "validation failed"
	}
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		if msgs := e[f]; len(msgs) > 0 {
			parts = append(parts, fmt.Sprintf("%s: %s", f, msgs[0]))
		}
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

// Add appends a message for field.
func (e ValidationError) Add(field, message string) {
	url.Values(e).Add(field, message)
}

// Get returns the first message for field.
func (e ValidationError) Get(field string) string {
	return url.Values(e).Get(field)
}

func (e ValidationError) Has(field string) bool { return len(e[field]) > 0 }
