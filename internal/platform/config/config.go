package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds the server configuration.
type Config struct {
	Addr            string        `env:"ADDR"              envDefault:":8080"`
	TokenServiceURL string        `env:"TOKEN_SERVICE_URL" envDefault:"http://localhost:8081"`
	RoomServiceURL  string        `env:"ROOM_SERVICE_URL"`
	RequestTimeout  time.Duration `env:"REQUEST_TIMEOUT"   envDefault:"10s"`
	SessionTTL      time.Duration `env:"SESSION_TTL"       envDefault:"12h"`
	AppTitle        string        `env:"APP_TITLE"         envDefault:"Azure Communication Services - Calling Sample"`
	StaticDir       string        `env:"STATIC_DIR"        envDefault:"./static"`
	LogLevel        string        `env:"LOG_LEVEL"         envDefault:"info"`
	LogFormat       string        `env:"LOG_FORMAT"        envDefault:"console"`
}

// Load reads configuration from a .env file (if present) and environment variables.
// Environment variables take precedence over .env values.
func Load() (*Config, error) {
	// godotenv.Load does not overwrite existing env vars
	_ = godotenv.Load()

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
	c.TokenServiceURL = strings.TrimSpace(c.TokenServiceURL)
	if c.TokenServiceURL == "" {
		return fmt.Errorf("TOKEN_SERVICE_URL is required")
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("REQUEST_TIMEOUT must be positive")
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be positive")
	}
	switch c.LogFormat {
	case "console", "json":
	default:
		return fmt.Errorf("LOG_FORMAT must be console or json, got %q", c.LogFormat)
	}
	return nil
}

// RoomsInMemory reports whether rooms are served by the in-process registry.
func (c *Config) RoomsInMemory() bool {
	return strings.TrimSpace(c.RoomServiceURL) == ""
}
