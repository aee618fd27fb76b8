package email

import "log/slog"

// NewSender returns the Postmark client when credentials are configured and a
// DevSender writing to cfg.DevOutputDir otherwise.
func NewSender(cfg Config, log *slog.Logger) (EmailSender, error) {
	if cfg.UsePostmark() {
		return NewPostmarkClient(cfg)
	}
	if log != nil {
		log.Warn("postmark not configured, emails are written to disk", slog.String("dir", cfg.DevOutputDir))
	}
	return NewDevSender(cfg.DevOutputDir), nil
}
