// Package email sends the transactional emails produced by the inquiry
// endpoint.
//
// EmailSender hides the provider. Postmark is used when a server token is
// configured; otherwise DevSender writes each email to disk as an HTML body
// plus a JSON metadata file so local runs never reach real inboxes:
//
//	sender, err := email.NewSender(cfg, log)
//	if err != nil {
//		return err
//	}
//	err = sender.SendEmail(ctx, email.SendEmailParams{
//		SendTo:   "info@alzentdigital.com",
//		Subject:  "[ALZENT] New Request: OTC Desk",
//		BodyHTML: html,
//		Tag:      "notification",
//	})
//
// Parameters are validated before any provider is contacted. Failures wrap
// ErrInvalidParams, ErrInvalidConfig or ErrFailedToSendEmail.
//
// FormatAmount and FormatTimestamp render the optional amount and the
// submission time the way the notification email shows them. The templates
// subpackage holds the email bodies.
package email
