// internal/views/detail/config.go
package detail

import "time"

type Config struct {
	// Timeout bounds one detail fetch. Zero leaves it to the HTTP client.
	Timeout time.Duration
}

func LoadConfig() *Config {
	return &Config{}
}
