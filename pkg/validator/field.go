package validator

import "strings"

// Input types that carry validation semantics.
const (
	TypeText   = "text"
	TypeEmail  = "email"
	TypeNumber = "number"
	TypeHidden = "hidden"
)

// Kind marks a field whose name implies extra rules.
type Kind int

const (
	KindNone Kind = iota
	KindEntityName
	KindApplicantName
	KindAmount
)

// DetectKind infers the field kind from its name.
func DetectKind(name string) Kind {
	switch {
	case strings.Contains(name, "entity"), strings.Contains(name, "inst_name"):
		return KindEntityName
	case strings.Contains(name, "applicant_name"):
		return KindApplicantName
	case strings.Contains(name, "amount"):
		return KindAmount
	default:
		return KindNone
	}
}

// Field is a single form input as seen by the validator.
type Field struct {
	Name      string
	Type      string
	Value     string
	Required  bool
	MaxLength int
	// Kind overrides name-based detection when not KindNone.
	Kind Kind
}

func (f Field) kind() Kind {
	if f.Kind != KindNone {
		return f.Kind
	}
	return DetectKind(f.Name)
}

// Result is the outcome of validating one field.
type Result struct {
	Valid    bool   `json:"valid"`
	ErrorKey string `json:"error_key,omitempty"`
	Message  string `json:"message,omitempty"`
}

// FieldError ties a failed result to its field name.
type FieldError struct {
	Field    string `json:"field"`
	ErrorKey string `json:"error_key"`
	Message  string `json:"message"`
}

// FormResult aggregates field errors in form order.
type FormResult struct {
	Valid  bool         `json:"valid"`
	Errors []FieldError `json:"errors,omitempty"`
}

// Err returns the failures as ValidationErrors, or nil when the form is valid.
func (r FormResult) Err() error {
	if r.Valid {
		return nil
	}
	errs := make(ValidationErrors, 0, len(r.Errors))
	for _, fe := range r.Errors {
		errs.Add(ValidationError{
			Field:          fe.Field,
			Key:            fe.ErrorKey,
			Message:        fe.Message,
			TranslationKey: TranslationKey(fe.ErrorKey),
		})
	}
	return errs
}

// Rules returns the ordered rules that apply to the field.
// The value is trimmed before any rule sees it.
func Rules(f Field) []Rule {
	value := strings.TrimSpace(f.Value)
	kind := f.kind()

	var rules []Rule
	if f.Required {
		rules = append(rules, Required(f.Name, value))
	}

	switch f.Type {
	case TypeEmail:
		rules = append(rules, ValidEmail(f.Name, value))
	case TypeText:
		switch kind {
		case KindEntityName:
			rules = append(rules, ValidEntityName(f.Name, value))
		case KindApplicantName:
			rules = append(rules, ValidApplicantName(f.Name, value))
		}
		rules = append(rules, MaxLength(f.Name, value, f.MaxLength))
	case TypeNumber:
		if kind == KindAmount {
			rules = append(rules,
				MinAmountRule(f.Name, value),
				MaxAmountRule(f.Name, value),
			)
		}
	}

	return rules
}

// ValidateField runs the field rules and reports the first failure with its
// English message.
func ValidateField(f Field) Result {
	return New().ValidateField("", f)
}

// ValidateForm validates every field that is required or of type email or
// text. Other fields are skipped.
func ValidateForm(fields []Field) FormResult {
	return New().ValidateForm("", fields)
}

func shouldValidate(f Field) bool {
	return f.Required || f.Type == TypeEmail || f.Type == TypeText
}
