package redis

import "time"

// Config describes how to reach the Redis server backing visitor storage.
// An empty ConnectionURL disables Redis.
type Config struct {
	ConnectionURL  string        `env:"REDIS_URL"`
	RetryAttempts  int           `env:"REDIS_RETRY_ATTEMPTS" envDefault:"3"`
	RetryInterval  time.Duration `env:"REDIS_RETRY_INTERVAL" envDefault:"2s"`
	ConnectTimeout time.Duration `env:"REDIS_CONNECT_TIMEOUT" envDefault:"30s"`
	KeyTTL         time.Duration `env:"REDIS_KEY_TTL" envDefault:"24h"`
	KeyPrefix      string        `env:"REDIS_KEY_PREFIX" envDefault:"alzent:"`
}

// Enabled reports whether a connection URL is configured.
func (c Config) Enabled() bool {
	return c.ConnectionURL != ""
}
