package templates_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alzentdigital/website/pkg/email/templates"
)

func TestNotification(t *testing.T) {
	t.Parallel()

	html, err := templates.Render(context.Background(), templates.Notification(templates.NotificationData{
		Lang:  "en",
		Title: "New service request",
		Rows: []templates.Row{
			{Label: "Service", Value: "OTC Desk"},
			{Label: "Entity", Value: `Acme <script>alert(1)</script> & Co`},
		},
	}))
	require.NoError(t, err)

	assert.Contains(t, html, `<html lang="en">`)
	assert.Contains(t, html, "<title>New service request</title>")
	assert.Contains(t, html, "OTC Desk")
	assert.Contains(t, html, "Acme &lt;script&gt;alert(1)&lt;/script&gt; &amp; Co")
	assert.NotContains(t, html, "<script>")
}

func TestConfirmation(t *testing.T) {
	t.Parallel()

	html, err := templates.Render(context.Background(), templates.Confirmation(templates.ConfirmationData{
		Lang:      "es",
		Title:     "Confirmación",
		Greeting:  "Estimado Acme,",
		Body:      "Hemos recibido su solicitud.",
		Contact:   "Escríbanos a info@alzentdigital.com.",
		Signature: "El equipo de ALZENT",
	}))
	require.NoError(t, err)

	assert.Contains(t, html, `lang="es"`)
	for _, s := range []string{"Estimado Acme,", "Hemos recibido su solicitud.", "El equipo de ALZENT"} {
		assert.Contains(t, html, s)
	}
}
