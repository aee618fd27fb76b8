package validator

import "strings"

// Localizer resolves a translation key for a language. Implementations fall
// back to a default language and finally to the key itself.
type Localizer interface {
	T(lang, key string, args ...string) string
}

type englishLocalizer struct{}

func (englishLocalizer) T(_, key string, _ ...string) string {
	return DefaultMessage(strings.TrimPrefix(key, "validation."))
}

// Validator validates form fields and localizes failure messages.
type Validator struct {
	localizer Localizer
}

// Option configures a Validator.
type Option func(*Validator)

// WithLocalizer sets the message localizer.
func WithLocalizer(l Localizer) Option {
	return func(v *Validator) {
		if l != nil {
			v.localizer = l
		}
	}
}

// New creates a Validator. Without a localizer messages are English.
func New(opts ...Option) *Validator {
	v := &Validator{localizer: englishLocalizer{}}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// ValidateField applies the field rules in order; the first failing rule wins.
func (v *Validator) ValidateField(lang string, f Field) Result {
	failed := First(Rules(f)...)
	if failed == nil {
		return Result{Valid: true}
	}

	return Result{
		Valid:    false,
		ErrorKey: failed.Key,
		Message:  v.Message(lang, failed.Key),
	}
}

// ValidateForm validates every applicable field and keeps failures in field order.
func (v *Validator) ValidateForm(lang string, fields []Field) FormResult {
	var errs []FieldError
	for _, f := range fields {
		if !shouldValidate(f) {
			continue
		}
		if res := v.ValidateField(lang, f); !res.Valid {
			errs = append(errs, FieldError{
				Field:    f.Name,
				ErrorKey: res.ErrorKey,
				Message:  res.Message,
			})
		}
	}

	return FormResult{Valid: len(errs) == 0, Errors: errs}
}

// Message returns the localized message for an error key.
func (v *Validator) Message(lang, key string) string {
	return v.localizer.T(lang, TranslationKey(key))
}
