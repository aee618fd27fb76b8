package cookie

import (
	"strings"
	"time"
)

// Config is the environment configuration of the visitor cookie.
type Config struct {
	// Secrets is a comma-separated list; the first signs, all verify.
	Secrets string        `env:"COOKIE_SECRETS"`
	Domain  string        `env:"COOKIE_DOMAIN"`
	MaxAge  time.Duration `env:"COOKIE_MAX_AGE" envDefault:"8760h"`
	Secure  bool          `env:"COOKIE_SECURE" envDefault:"true"`
}

func (c Config) secrets() []string {
	var out []string
	for s := range strings.SplitSeq(c.Secrets, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// NewFromConfig builds a Manager from cfg; opts are applied last.
func NewFromConfig(cfg Config, opts ...Option) (*Manager, error) {
	base := []Option{
		WithMaxAge(int(cfg.MaxAge / time.Second)),
		WithSecure(cfg.Secure),
	}
	if cfg.Domain != "" {
		base = append(base, WithDomain(cfg.Domain))
	}
	return New(cfg.secrets(), append(base, opts...)...)
}
