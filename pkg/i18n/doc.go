// Package i18n translates the site's user-facing messages.
//
// Catalogues are nested key trees per language, loaded from YAML or JSON
// through a TranslationAdapter. The package embeds a built-in catalogue for
// en, es, pt, it, ru and zh covering validation messages, form status
// messages and email subjects:
//
//	tr, err := i18n.NewDefaultTranslator(ctx)
//	if err != nil {
//		return err
//	}
//	tr.T("es", "email.sending")                      // "Enviando..."
//	tr.N("en", "forms.rate_limited", 5)              // "... try again in 5 minutes."
//	tr.T("fr", "validation.required")                // English fallback
//	tr.T("en", "mail.subject.notification", "service", "OTC Desk")
//
// Lookups fall back from the requested language to the default language and
// finally to the key, so a missing entry is never rendered as an empty string.
//
// # HTTP
//
// Middleware negotiates the request language (cookie, query, Language header,
// Accept-Language) and stores it in the context; Tc and Nc read it back.
//
// # Audit
//
// Auditor scans catalogues for script injection patterns and for markup
// outside the allowed inline tags before they reach the page.
package i18n
