package site

import "time"

// Config holds the site server settings.
type Config struct {
	VisitorCookie  string `env:"SITE_VISITOR_COOKIE" envDefault:"alzent_vid"`
	LanguageCookie string `env:"SITE_LANGUAGE_COOKIE" envDefault:"alzent_lang"`

	// Sessions are cached in memory; their durable state lives in the store.
	SessionCapacity int           `env:"SITE_SESSION_CAPACITY" envDefault:"10000"`
	SessionTTL      time.Duration `env:"SITE_SESSION_TTL" envDefault:"30m"`

	// Per client IP limit on /api, counted on every request.
	APIRequestsPerMinute int           `env:"SITE_API_REQUESTS_PER_MINUTE" envDefault:"120"`
	APICooldown          time.Duration `env:"SITE_API_COOLDOWN" envDefault:"1m"`

	// StaticDir, when set, is served at / behind the security headers.
	StaticDir string `env:"SITE_STATIC_DIR"`
}

// DefaultConfig mirrors the envDefault tags.
func DefaultConfig() Config {
	return Config{
		VisitorCookie:        "alzent_vid",
		LanguageCookie:       "alzent_lang",
		SessionCapacity:      10_000,
		SessionTTL:           30 * time.Minute,
		APIRequestsPerMinute: 120,
		APICooldown:          time.Minute,
	}
}
