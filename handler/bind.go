package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"

	"github.com/starfederation/datastar-go/datastar"
)

// MaxJSONSize caps JSON request bodies.
const MaxJSONSize = 1 << 20

// BindJSON decodes an application/json body into v. Unknown fields are
// ignored; older form scripts send extra keys. DataStar requests are left
// to BindSignals.
func BindJSON() Bind {
	return func(r *http.Request, v any) error {
		if IsDataStar(r) {
			return ErrBinderNotApplicable
		}
		ct := r.Header.Get("Content-Type")
		if ct == "" {
			return fmt.Errorf("%w: expected application/json", ErrMissingContentType)
		}
		mediaType, _, err := mime.ParseMediaType(ct)
		if err != nil || mediaType != "application/json" {
			return fmt.Errorf("%w: %s", ErrUnsupportedMedia, ct)
		}

		body, err := io.ReadAll(io.LimitReader(r.Body, MaxJSONSize+1))
		if err != nil {
			return errors.Join(ErrInvalidBody, err)
		}
		if len(body) > MaxJSONSize {
			return fmt.Errorf("%w: body exceeds %d bytes", ErrInvalidBody, MaxJSONSize)
		}
		if len(body) == 0 {
			return fmt.Errorf("%w: empty body", ErrInvalidBody)
		}
		if err := json.Unmarshal(body, v); err != nil {
			return errors.Join(ErrInvalidBody, err)
		}
		return nil
	}
}

// BindSignals reads DataStar signals into v. Non-DataStar requests are left
// to the next binder.
func BindSignals() Bind {
	return func(r *http.Request, v any) error {
		if !IsDataStar(r) {
			return ErrBinderNotApplicable
		}
		if err := datastar.ReadSignals(r, v); err != nil {
			return errors.Join(ErrInvalidBody, err)
		}
		return nil
	}
}
