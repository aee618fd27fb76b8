// Package validator checks form fields against the rules of the site's
// request forms and reports the first failure per field with a localizable
// message.
//
// Rules are small values pairing a Check func with error metadata. Rules
// builds the ordered rule list for a Field:
//
//  1. required and empty            -> "required"
//  2. email type, bad shape         -> "email"
//  3. entity name, bad pattern      -> "entity"
//  4. applicant name, too short     -> "required"
//  5. text over its max length      -> "maxlength"
//  6. amount below 1 or not numeric -> "min_amount"
//  7. amount above 1,000,000        -> "max_amount"
//
// The field kind is derived from its name (see DetectKind) unless set
// explicitly.
//
// # Usage
//
//	v := validator.New(validator.WithLocalizer(translator))
//	res := v.ValidateForm("es", []validator.Field{
//	    {Name: "email", Type: validator.TypeEmail, Value: email, Required: true},
//	    {Name: "entity_name", Type: validator.TypeText, Value: entity, Required: true},
//	})
//	if !res.Valid {
//	    // render res.Errors next to their fields
//	}
//
// Messages are looked up under "validation.<key>". The package-level
// ValidateField and ValidateForm use the built-in English messages.
//
// Apply and First are available for ad-hoc rule sets. Apply collects every
// failure into ValidationErrors, which satisfies errors.Is(err,
// ErrValidationFailed).
package validator
