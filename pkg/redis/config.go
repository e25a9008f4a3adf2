package redis

import "time"

// Config describes the optional shared cache connection. An empty
// ConnectionURL disables Redis.
type Config struct {
	ConnectionURL  string        `env:"REDIS_URL"`                              // redis://:password@localhost:6379/0
	RetryAttempts  int           `env:"REDIS_RETRY_ATTEMPTS" envDefault:"3"`    // connection attempts before giving up
	RetryInterval  time.Duration `env:"REDIS_RETRY_INTERVAL" envDefault:"1s"`   // delay between attempts
	ConnectTimeout time.Duration `env:"REDIS_CONNECT_TIMEOUT" envDefault:"10s"` // overall deadline for Connect
	TTL            time.Duration `env:"REDIS_TTL" envDefault:"24h"`             // cache entry lifetime, 0 keeps entries forever
	KeyPrefix      string        `env:"REDIS_KEY_PREFIX" envDefault:"locparse:"`
}

// Enabled reports whether a connection URL is configured.
func (c Config) Enabled() bool {
	return c.ConnectionURL != ""
}
