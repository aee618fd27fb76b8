package formguard

import (
	"slices"

	"github.com/alzentdigital/website/pkg/csrf"
	"github.com/alzentdigital/website/pkg/validator"
)

const (
	// HoneypotField is the hidden input real users never fill in.
	HoneypotField = "website"

	// CSRFField is the hidden input carrying the CSRF token.
	CSRFField = csrf.FieldName

	// CardRequestFormID identifies the form shown inside the card modal.
	CardRequestFormID = "card-request"

	typeSubmit = "submit"
)

// Field is one input of a form.
type Field struct {
	Name      string `json:"name"`
	Type      string `json:"type"`
	Value     string `json:"value"`
	Required  bool   `json:"required,omitempty"`
	MaxLength int    `json:"maxLength,omitempty"`

	// Presentation attributes of injected fields.
	Hidden       bool   `json:"hidden,omitempty"`
	TabIndex     int    `json:"tabIndex,omitempty"`
	Autocomplete string `json:"autocomplete,omitempty"`
}

func (f Field) validatorField() validator.Field {
	return validator.Field{
		Name:      f.Name,
		Type:      f.Type,
		Value:     f.Value,
		Required:  f.Required,
		MaxLength: f.MaxLength,
	}
}

// security reports whether f is the CSRF or honeypot field.
func (f Field) security() bool {
	return f.Name == CSRFField || f.Name == HoneypotField
}

// visible reports whether f holds user-entered content.
func (f Field) visible() bool {
	return f.Type != validator.TypeHidden && f.Type != typeSubmit && !f.security()
}

// Button is the submit control.
type Button struct {
	Label    string `json:"label"`
	Disabled bool   `json:"disabled"`

	original string
}

// Form is the guard's model of a form element.
type Form struct {
	ID     string  `json:"id"`
	Fields []Field `json:"fields"`
	Submit Button  `json:"submit"`
}

// NewForm returns a form with a copy of fields and the given submit label.
func NewForm(id, submitLabel string, fields ...Field) *Form {
	return &Form{
		ID:     id,
		Fields: slices.Clone(fields),
		Submit: Button{Label: submitLabel},
	}
}

// Field returns the named field or nil.
func (f *Form) Field(name string) *Field {
	for i := range f.Fields {
		if f.Fields[i].Name == name {
			return &f.Fields[i]
		}
	}
	return nil
}

// Value returns the value of the named field, or "" when absent.
func (f *Form) Value(name string) string {
	if fld := f.Field(name); fld != nil {
		return fld.Value
	}
	return ""
}

// Set assigns values to the fields they name and reports the names that
// matched no field.
func (f *Form) Set(values map[string]string) []string {
	var unknown []string
	for name, v := range values {
		fld := f.Field(name)
		if fld == nil {
			unknown = append(unknown, name)
			continue
		}
		fld.Value = v
	}
	slices.Sort(unknown)
	return unknown
}

// Data returns field values keyed by name, without the CSRF and honeypot fields.
func (f *Form) Data() map[string]string {
	out := make(map[string]string, len(f.Fields))
	for _, fld := range f.Fields {
		if fld.security() || fld.Type == typeSubmit {
			continue
		}
		out[fld.Name] = fld.Value
	}
	return out
}

// Reset clears every value except the CSRF token.
func (f *Form) Reset() {
	for i := range f.Fields {
		if f.Fields[i].Name == CSRFField {
			continue
		}
		f.Fields[i].Value = ""
	}
}

// upsert replaces the field with the same name, keeping its value when keep
// is true, or appends fld.
func (f *Form) upsert(fld Field, keep bool) {
	if existing := f.Field(fld.Name); existing != nil {
		if keep {
			fld.Value = existing.Value
		}
		*existing = fld
		return
	}
	f.Fields = append(f.Fields, fld)
}

func (f *Form) validatorFields() []validator.Field {
	out := make([]validator.Field, 0, len(f.Fields))
	for _, fld := range f.Fields {
		if fld.security() {
			continue
		}
		out = append(out, fld.validatorField())
	}
	return out
}

// disable remembers the original label once and shows label instead.
func (b *Button) disable(label string) {
	if b.original == "" {
		b.original = b.Label
	}
	b.Disabled = true
	b.Label = label
}

func (b *Button) restore() {
	b.Disabled = false
	if b.original != "" {
		b.Label = b.original
	}
}

// Clone returns a deep copy of the form.
func (f *Form) Clone() *Form {
	c := *f
	c.Fields = slices.Clone(f.Fields)
	return &c
}
