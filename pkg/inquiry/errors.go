package inquiry

import (
	"errors"
	"strings"
)

var (
	ErrInvalidConfig     = errors.New("inquiry: invalid configuration")
	ErrNotificationEmail = errors.New("inquiry: failed to send notification email")
	ErrConfirmationEmail = errors.New("inquiry: failed to send confirmation email")
)

// ValidationError lists every problem found in a payload.
type ValidationError []string

func (e ValidationError) Error() string {
	return "inquiry: validation failed: " + strings.Join(e, "; ")
}
