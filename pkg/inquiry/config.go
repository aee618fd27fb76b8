package inquiry

import "time"

// Config configures the send-email endpoint.
type Config struct {
	RecipientEmail  string        `env:"RECIPIENT_EMAIL" envDefault:"info@alzentdigital.com"`
	SigningSecret   string        `env:"DISPATCH_SIGNING_SECRET"`
	SignatureMaxAge time.Duration `env:"DISPATCH_SIGNATURE_MAX_AGE" envDefault:"5m"`
	AllowOrigin     string        `env:"CORS_ALLOW_ORIGIN" envDefault:"*"`
}
