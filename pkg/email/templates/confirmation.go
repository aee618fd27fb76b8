package templates

import "github.com/a-h/templ"

// ConfirmationData feeds the email confirming receipt to the requester.
// All strings are already localized.
type ConfirmationData struct {
	Lang      string
	Title     string
	Greeting  string
	Body      string
	Contact   string
	Signature string
}

// Confirmation thanks the requester and explains the next step.
func Confirmation(d ConfirmationData) templ.Component {
	return Layout(d.Lang, d.Title, Group(
		Text(d.Greeting),
		Text(d.Body),
		Text(d.Contact),
		Text(d.Signature),
	))
}
