// Package inquiry implements the send-email endpoint that receives form
// payloads from the site.
//
// Service validates and sanitizes a dispatch.Payload, then sends two emails
// through an email.EmailSender: a notification listing the request to the
// team inbox and a localized confirmation to the requester. Handler exposes
// it as POST /api/send-email with a CORS preflight and the JSON contract the
// site's dispatch client expects:
//
//	svc, err := inquiry.NewService(sender, translator, inquiry.WithRecipient(cfg.RecipientEmail))
//	if err != nil {
//		return err
//	}
//	inquiry.NewHandler(svc, cfg).Register(router)
//
// When Config.SigningSecret is set, POST bodies must carry a valid
// dispatch signature.
package inquiry
