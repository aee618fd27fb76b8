package formguard

import (
	"strings"
	"time"

	"github.com/alzentdigital/website/pkg/dispatch"
	"github.com/alzentdigital/website/pkg/sanitizer"
)

// ServiceNames maps form ids to the service named in emails.
var ServiceNames = map[string]string{
	"trading":         "Multi-Asset Trading",
	"tokenization":    "RWA Tokenization",
	"treasury":        "Treasury Management",
	"otc":             "OTC Desk",
	CardRequestFormID: "ALZENT Card Request",
}

// ServiceName returns the display name for formID, or formID itself.
func ServiceName(formID string) string {
	if name, ok := ServiceNames[formID]; ok {
		return name
	}
	return formID
}

// isoMillis matches the UTC millisecond timestamps the dispatcher expects.
const isoMillis = "2006-01-02T15:04:05.000Z"

// BuildPayload turns a sanitized form into the dispatcher payload.
func BuildPayload(form *Form, lang string, now time.Time) dispatch.Payload {
	data := form.Data()

	entity := data["entity_name"]
	if entity == "" {
		entity = data["applicant_name"]
	}

	p := dispatch.Payload{
		FormID:      form.ID,
		ServiceName: ServiceName(form.ID),
		EntityName:  sanitizer.NormalizeWhitespace(strings.TrimSpace(entity)),
		Email:       data["email"],
		Language:    lang,
		Timestamp:   now.UTC().Format(isoMillis),
		FormData:    data,
	}
	if amount := data["amount"]; amount != "" {
		p.Amount = &amount
	}
	return p
}
