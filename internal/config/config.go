// internal/config/config.go
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

const (
	SubmitModeSimulated = "simulated"
	SubmitModeStore     = "store"
)

type Config struct {
	ServerPort  string        `env:"SERVER_PORT" envDefault:":8080"`
	DBUrl       string        `env:"DATABASE_URL"`
	RedisURL    string        `env:"REDIS_ADDR"`
	SubmitMode  string        `env:"SUBMIT_MODE" envDefault:"simulated"`
	SubmitDelay time.Duration `env:"SUBMIT_DELAY" envDefault:"2s"`
	LoginDelay  time.Duration `env:"LOGIN_DELAY" envDefault:"2s"`
	LoginURL    string        `env:"LOGIN_URL" envDefault:"/login"`
	GuardTTL    time.Duration `env:"SUBMIT_GUARD_TTL" envDefault:"30s"`
	LogLevel    string        `env:"LOG_LEVEL" envDefault:"info"`
}

// Load reads the configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.SubmitMode {
	case SubmitModeSimulated:
	case SubmitModeStore:
		if c.DBUrl == "" {
			return fmt.Errorf("DATABASE_URL is required when SUBMIT_MODE=%s", SubmitModeStore)
		}
	default:
		return fmt.Errorf("unknown SUBMIT_MODE %q", c.SubmitMode)
	}
	if c.SubmitDelay < 0 || c.LoginDelay < 0 {
		return fmt.Errorf("delays must not be negative")
	}
	return nil
}
