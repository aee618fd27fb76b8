package website

import (
	"github.com/alzentdigital/website/pkg/formguard"
	"github.com/alzentdigital/website/pkg/validator"
)

// Form ids served by the site.
const (
	FormTrading      = "trading"
	FormTokenization = "tokenization"
	FormTreasury     = "treasury"
	FormOTC          = "otc"
	FormCardRequest  = formguard.CardRequestFormID
)

const (
	maxNameLength  = 100
	maxEmailLength = 254
)

// institutionalForm is the entity name plus email form shown under each
// institutional service.
func institutionalForm(id string) *formguard.Form {
	return formguard.NewForm(id, "Request Access",
		formguard.Field{Name: "entity_name", Type: validator.TypeText, Required: true, MaxLength: maxNameLength},
		formguard.Field{Name: "email", Type: validator.TypeEmail, Required: true, MaxLength: maxEmailLength},
	)
}

// DefaultForms returns fresh definitions of every form on the site.
func DefaultForms() []*formguard.Form {
	return []*formguard.Form{
		institutionalForm(FormTrading),
		institutionalForm(FormTokenization),
		institutionalForm(FormTreasury),
		institutionalForm(FormOTC),
		formguard.NewForm(FormCardRequest, "Submit Application",
			formguard.Field{Name: "applicant_name", Type: validator.TypeText, Required: true, MaxLength: maxNameLength},
			formguard.Field{Name: "email", Type: validator.TypeEmail, Required: true, MaxLength: maxEmailLength},
			formguard.Field{Name: "amount", Type: validator.TypeNumber, Required: true},
		),
	}
}
