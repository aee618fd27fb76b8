package website

import "errors"

// ErrUnknownForm is returned by Session.Guard for an id with no form definition.
var ErrUnknownForm = errors.New("website: unknown form")
