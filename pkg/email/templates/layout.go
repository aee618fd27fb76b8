package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

const (
	brandColor = "#0b1f3a"
	mutedColor = "#6b7280"
)

// Layout wraps body in the shared email shell.
func Layout(lang, title string, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<!DOCTYPE html><html lang="`+templ.EscapeString(lang)+`"><head><meta charset="utf-8">`+
			`<meta name="viewport" content="width=device-width, initial-scale=1"><title>`+templ.EscapeString(title)+`</title></head>`+
			`<body style="margin:0;padding:0;background:#f4f5f7;font-family:Helvetica,Arial,sans-serif;">`+
			`<table role="presentation" width="100%" cellpadding="0" cellspacing="0"><tr><td align="center" style="padding:24px;">`+
			`<table role="presentation" width="600" cellpadding="0" cellspacing="0" style="background:#ffffff;border-radius:8px;">`+
			`<tr><td style="background:`+brandColor+`;color:#ffffff;padding:20px 32px;font-size:20px;font-weight:bold;letter-spacing:2px;">ALZENT</td></tr>`+
			`<tr><td style="padding:32px;color:#111827;font-size:15px;line-height:1.6;">`); err != nil {
			return err
		}
		if err := body.Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, `</td></tr><tr><td style="padding:16px 32px;color:`+mutedColor+`;font-size:12px;">`+
			`ALZENT Digital</td></tr></table></td></tr></table></body></html>`)
		return err
	})
}

// Text renders an escaped paragraph.
func Text(s string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := io.WriteString(w, `<p style="margin:0 0 16px;">`+templ.EscapeString(s)+`</p>`)
		return err
	})
}

// Heading renders an escaped section title.
func Heading(s string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := io.WriteString(w, `<h1 style="margin:0 0 24px;font-size:22px;color:`+brandColor+`;">`+templ.EscapeString(s)+`</h1>`)
		return err
	})
}

// Group renders components in order.
func Group(components ...templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		for _, c := range components {
			if err := c.Render(ctx, w); err != nil {
				return err
			}
		}
		return nil
	})
}
