package validator

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Error keys. Each maps to the translation key "validation.<key>".
const (
	KeyRequired  = "required"
	KeyEmail     = "email"
	KeyEntity    = "entity"
	KeyMaxLength = "maxlength"
	KeyMinAmount = "min_amount"
	KeyMaxAmount = "max_amount"
)

// Amount bounds accepted by amount fields.
const (
	MinAmount = 1.0
	MaxAmount = 1_000_000.0
)

// Entity name length bounds, in characters.
const (
	EntityNameMinLen    = 2
	EntityNameMaxLen    = 100
	ApplicantNameMinLen = 2
)

// space matches what browsers treat as whitespace in patterns: ASCII space
// plus every Unicode space separator, line separators and the BOM.
const space = `\s\v\p{Zs}\x{2028}\x{2029}\x{FEFF}`

var (
	emailRegex      = regexp.MustCompile(`^[^` + space + `@]+@[^` + space + `@]+\.[^` + space + `@]+$`)
	entityNameRegex = regexp.MustCompile(`^[a-zA-Z0-9` + space + `\-_.,&()]+$`)
	leadingNumber   = regexp.MustCompile(`^[+-]?(?:Infinity|(?:\d+\.?\d*|\.\d+)(?:[eE][+-]?\d+)?)`)
)

var defaultMessages = map[string]string{
	KeyRequired:  "This field is required",
	KeyEmail:     "Please enter a valid email address",
	KeyEntity:    "Please enter a valid entity name",
	KeyMaxLength: "This field is too long",
	KeyMinAmount: "Minimum amount is $1",
	KeyMaxAmount: "Maximum amount is $1,000,000",
}

// TranslationKey returns the localization key for an error key.
func TranslationKey(key string) string {
	return "validation." + key
}

// DefaultMessage returns the English message for an error key,
// falling back to the "required" message for unknown keys.
func DefaultMessage(key string) string {
	if msg, ok := defaultMessages[key]; ok {
		return msg
	}
	return defaultMessages[KeyRequired]
}

func newError(field, key string, values map[string]any) ValidationError {
	if values == nil {
		values = map[string]any{}
	}
	values["field"] = field
	return ValidationError{
		Field:             field,
		Key:               key,
		Message:           DefaultMessage(key),
		TranslationKey:    TranslationKey(key),
		TranslationValues: values,
	}
}

// IsEmail reports whether value has the shape local@domain.tld.
func IsEmail(value string) bool {
	return emailRegex.MatchString(value)
}

// IsEntityName reports whether value is 2-100 characters of letters, digits,
// whitespace and - _ . , & ( ).
func IsEntityName(value string) bool {
	n := utf8.RuneCountInString(value)
	if n < EntityNameMinLen || n > EntityNameMaxLen {
		return false
	}
	return entityNameRegex.MatchString(value)
}

// Required fails when value is empty.
func Required(field, value string) Rule {
	return Rule{
		Check: func() bool { return value != "" },
		Error: newError(field, KeyRequired, nil),
	}
}

// ValidEmail fails when a non-empty value is not an email address.
func ValidEmail(field, value string) Rule {
	return Rule{
		Check: func() bool { return value == "" || IsEmail(value) },
		Error: newError(field, KeyEmail, nil),
	}
}

// ValidEntityName fails when a non-empty value is not an acceptable
// organisation name.
func ValidEntityName(field, value string) Rule {
	return Rule{
		Check: func() bool { return value == "" || IsEntityName(value) },
		Error: newError(field, KeyEntity, map[string]any{
			"min": EntityNameMinLen,
			"max": EntityNameMaxLen,
		}),
	}
}

// ValidApplicantName fails when a non-empty value is shorter than two
// characters. It reports the "required" key.
func ValidApplicantName(field, value string) Rule {
	return Rule{
		Check: func() bool {
			return value == "" || utf8.RuneCountInString(value) >= ApplicantNameMinLen
		},
		Error: newError(field, KeyRequired, map[string]any{"min": ApplicantNameMinLen}),
	}
}

// MaxLength fails when value is longer than max characters.
// A max of zero or less disables the check.
func MaxLength(field, value string, max int) Rule {
	return Rule{
		Check: func() bool {
			return max <= 0 || utf8.RuneCountInString(value) <= max
		},
		Error: newError(field, KeyMaxLength, map[string]any{"max": max}),
	}
}

// MinAmountRule fails when value is not a number or is below MinAmount.
func MinAmountRule(field, value string) Rule {
	return Rule{
		Check: func() bool {
			amount, ok := ParseAmount(value)
			return ok && amount >= MinAmount
		},
		Error: newError(field, KeyMinAmount, map[string]any{"min": fmt.Sprintf("%.0f", MinAmount)}),
	}
}

// MaxAmountRule fails when value parses to a number above MaxAmount.
func MaxAmountRule(field, value string) Rule {
	return Rule{
		Check: func() bool {
			amount, ok := ParseAmount(value)
			return !ok || amount <= MaxAmount
		},
		Error: newError(field, KeyMaxAmount, map[string]any{"max": fmt.Sprintf("%.0f", MaxAmount)}),
	}
}

// ParseAmount reads the leading number of value the way a browser's
// parseFloat does: leading whitespace is skipped and trailing text ignored,
// so "1500 USD" is 1500 and "1,000" is 1. Values without a leading number
// are reported as not ok.
func ParseAmount(value string) (float64, bool) {
	m := leadingNumber.FindString(strings.TrimLeftFunc(value, isSpace))
	if m == "" {
		return 0, false
	}
	amount, err := strconv.ParseFloat(m, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, false
	}
	if math.IsNaN(amount) {
		return 0, false
	}
	return amount, true
}

func isSpace(r rune) bool {
	return unicode.IsSpace(r) || unicode.Is(unicode.Zs, r) || r == '\u2028' || r == '\u2029' || r == '\uFEFF'
}
