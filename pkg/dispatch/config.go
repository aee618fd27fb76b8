package dispatch

import "time"

// Config describes the dispatcher endpoint used by the site.
type Config struct {
	Endpoint         string        `env:"DISPATCH_ENDPOINT"`
	Timeout          time.Duration `env:"DISPATCH_TIMEOUT" envDefault:"30s"`
	SigningSecret    string        `env:"DISPATCH_SIGNING_SECRET"`
	BreakerThreshold int           `env:"DISPATCH_BREAKER_THRESHOLD" envDefault:"5"`
	BreakerRecovery  time.Duration `env:"DISPATCH_BREAKER_RECOVERY" envDefault:"30s"`
}

// Enabled reports whether a remote endpoint is configured.
func (c Config) Enabled() bool { return c.Endpoint != "" }
