package cookie

import "errors"

var (
	ErrNoSecret         = errors.New("cookie: no signing secret")
	ErrSecretTooShort   = errors.New("cookie: signing secret too short")
	ErrCookieNotFound   = errors.New("cookie: not found")
	ErrInvalidFormat    = errors.New("cookie: invalid format")
	ErrInvalidSignature = errors.New("cookie: invalid signature")
)
