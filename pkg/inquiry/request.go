package inquiry

import (
	"regexp"
	"strings"
	"time"

	"github.com/alzentdigital/website/pkg/dispatch"
	"github.com/alzentdigital/website/pkg/sanitizer"
	"github.com/alzentdigital/website/pkg/validator"
)

// Validation messages returned to the client.
const (
	MsgFormIDRequired     = "formId is required"
	MsgEmailRequired      = "Valid email is required"
	MsgEntityNameRequired = "Entity name is required"
)

const (
	maxEntityName   = 100
	defaultLanguage = "en"
)

// Request is a validated and sanitized payload.
type Request struct {
	FormID      string
	ServiceName string
	EntityName  string
	Email       string
	Amount      *float64
	Language    string
	Timestamp   time.Time
	FormData    map[string]string
}

var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Normalize validates p and returns its sanitized form. All problems are
// reported at once in a ValidationError.
func Normalize(p dispatch.Payload, now time.Time) (Request, error) {
	var errs ValidationError

	formID := sanitizer.Trim(p.FormID)
	if formID == "" {
		errs = append(errs, MsgFormIDRequired)
	}
	email := sanitizer.NormalizeEmail(p.Email)
	if !emailRegex.MatchString(email) {
		errs = append(errs, MsgEmailRequired)
	}
	entity := sanitizer.Apply(p.EntityName,
		sanitizer.RemoveNullBytes,
		sanitizer.NormalizeWhitespace,
	)
	if entity == "" {
		errs = append(errs, MsgEntityNameRequired)
	}
	if len(errs) > 0 {
		return Request{}, errs
	}

	req := Request{
		FormID:      formID,
		ServiceName: sanitizer.Trim(p.ServiceName),
		EntityName:  sanitizer.LimitLength(entity, maxEntityName),
		Email:       email,
		Amount:      parseAmount(p.Amount),
		Language:    normalizeLanguage(p.Language),
		Timestamp:   p.Time(),
		FormData:    make(map[string]string, len(p.FormData)),
	}
	if req.Timestamp.IsZero() {
		req.Timestamp = now
	}
	for k, v := range p.FormData {
		req.FormData[k] = sanitizer.SanitizeInput(v)
	}
	return req, nil
}

// parseAmount reads the leading number of s, so "1500 USD" yields 1500.
// Anything without a leading number is treated as absent.
func parseAmount(s *string) *float64 {
	if s == nil {
		return nil
	}
	f, ok := validator.ParseAmount(*s)
	if !ok {
		return nil
	}
	return &f
}

func normalizeLanguage(lang string) string {
	lang = strings.ToLower(sanitizer.Trim(lang))
	if lang == "" {
		return defaultLanguage
	}
	return sanitizer.LimitLength(lang, 2)
}
