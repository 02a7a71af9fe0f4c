package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/rs/zerolog"
)

// Config holds the SDK-wide settings supplied by the host application.
type Config struct {
	APIBaseURL       string        `env:"COLLECTOR_API_BASE_URL"`
	RequestTimeout   time.Duration `env:"COLLECTOR_REQUEST_TIMEOUT"    envDefault:"10s"`
	MaxLoginAttempts int           `env:"COLLECTOR_MAX_LOGIN_ATTEMPTS" envDefault:"5"`
	LockoutCooldown  time.Duration `env:"COLLECTOR_LOCKOUT_COOLDOWN"   envDefault:"5m"`
	StorageDir       string        `env:"COLLECTOR_STORAGE_DIR"`
	StorageSecret    string        `env:"COLLECTOR_STORAGE_SECRET"`
}

// New creates a Config instance from environment variables.
func New(logger *zerolog.Logger) *Config {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to parse environment variables")
	}

	if err := cfg.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("failed to validate SDK configuration")
	}

	return &cfg
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.APIBaseURL == "" {
		return fmt.Errorf("missing COLLECTOR_API_BASE_URL environment variable")
	}
	if c.StorageDir == "" {
		return fmt.Errorf("missing COLLECTOR_STORAGE_DIR environment variable")
	}
	if c.StorageSecret == "" {
		return fmt.Errorf("missing COLLECTOR_STORAGE_SECRET environment variable")
	}
	if c.MaxLoginAttempts <= 0 {
		return fmt.Errorf("COLLECTOR_MAX_LOGIN_ATTEMPTS must be positive")
	}
	if c.LockoutCooldown <= 0 {
		return fmt.Errorf("COLLECTOR_LOCKOUT_COOLDOWN must be positive")
	}

	return nil
}
