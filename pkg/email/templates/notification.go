package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// Row is one labelled value of the notification table.
type Row struct {
	Label string
	Value string
}

// NotificationData feeds the internal new-request email.
type NotificationData struct {
	Lang  string
	Title string
	Rows  []Row
}

// Notification lists the submitted request for the team inbox.
func Notification(d NotificationData) templ.Component {
	return Layout(d.Lang, d.Title, Group(Heading(d.Title), detailsTable(d.Rows)))
}

func detailsTable(rows []Row) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<table role="presentation" width="100%" cellpadding="0" cellspacing="0">`); err != nil {
			return err
		}
		for _, r := range rows {
			if _, err := io.WriteString(w, `<tr><td style="padding:8px 0;color:`+mutedColor+`;width:35%;">`+
				templ.EscapeString(r.Label)+`</td><td style="padding:8px 0;font-weight:bold;">`+
				templ.EscapeString(r.Value)+`</td></tr>`); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</table>`)
		return err
	})
}
