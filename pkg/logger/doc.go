// Package logger builds the slog loggers used across the site.
//
// New creates a *slog.Logger from functional options. The handler is wrapped
// in LogHandlerDecorator, which runs ContextExtractor callbacks on every
// record so request-scoped values such as the request id and client ip show
// up without being passed around explicitly.
//
//	log := logger.NewFromConfig(cfg,
//	    logger.WithContextExtractors(requestid.LogExtractor(), clientip.LogExtractor()),
//	)
//	log.InfoContext(ctx, "form submitted", logger.FormID("card-request"))
//
// Attribute helpers in attr.go keep key names consistent. Helpers taking an
// error or an optional identifier return an empty Attr for nil or empty
// input, so they can be passed unconditionally.
//
// Components that accept a logger default to Discard.
package logger
