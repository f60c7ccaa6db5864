package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Config is the service configuration, populated from the environment.
type Config struct {
	Port        string   `envconfig:"PORT" default:"8080"`
	CORSOrigins []string `envconfig:"CORS_ORIGINS" default:"*"`
	// MaxMessageBytes caps one inbound WebSocket message.
	MaxMessageBytes int64 `envconfig:"MAX_MESSAGE_BYTES" default:"4096"`
}

// Load reads configuration from environment variables, applying defaults.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if cfg.MaxMessageBytes <= 0 {
		return nil, fmt.Errorf("MAX_MESSAGE_BYTES must be positive, got %d", cfg.MaxMessageBytes)
	}
	return &cfg, nil
}

// Addr returns the listen address for the HTTP server.
func (c *Config) Addr() string {
	return ":" + c.Port
}
