// Package config loads application configuration from environment variables.
package config

import (
	"encoding/hex"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds the application configuration loaded from environment variables.
type Config struct {
	// APIBaseURL is prefixed to every backend path.
	APIBaseURL string `env:"TRAILTAIL_API_BASE_URL" envDefault:"http://127.0.0.1:8001/api/v1"`

	// UseBackendAPI is the global toggle. When false no backend call is
	// ever attempted and the app runs on demo content.
	UseBackendAPI bool `env:"TRAILTAIL_USE_BACKEND_API" envDefault:"true"`

	RequestTimeout        time.Duration `env:"TRAILTAIL_REQUEST_TIMEOUT" envDefault:"5s"`
	OfflineNoticeDuration time.Duration `env:"TRAILTAIL_OFFLINE_NOTICE_DURATION" envDefault:"5s"`
	CriticalPathPrefix    string        `env:"TRAILTAIL_CRITICAL_PATH_PREFIX" envDefault:"/routes"`

	ListenAddr string `env:"TRAILTAIL_LISTEN_ADDR" envDefault:"127.0.0.1:8080"`
	DBPath     string `env:"TRAILTAIL_DB_PATH" envDefault:"trailtail.db"`
	LogLevel   string `env:"TRAILTAIL_LOG_LEVEL" envDefault:"info"`

	SecretKeyHex string `env:"TRAILTAIL_SECRET_KEY"`

	// SecretKey is the decoded AES-256 key for encrypting the stored token.
	// Nil when TRAILTAIL_SECRET_KEY is unset; the token is then stored as
	// plaintext.
	SecretKey []byte
}

// Load reads configuration from environment variables and returns a validated Config.
// Every variable is optional; see the struct tags for defaults.
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
	u, err := url.Parse(c.APIBaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("TRAILTAIL_API_BASE_URL must be an absolute http(s) URL, got %q", c.APIBaseURL)
	}
	c.APIBaseURL = strings.TrimRight(c.APIBaseURL, "/")

	if c.RequestTimeout <= 0 {
		return fmt.Errorf("TRAILTAIL_REQUEST_TIMEOUT must be positive, got %s", c.RequestTimeout)
	}
	if c.OfflineNoticeDuration < 0 {
		return fmt.Errorf("TRAILTAIL_OFFLINE_NOTICE_DURATION must not be negative, got %s", c.OfflineNoticeDuration)
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return fmt.Errorf("TRAILTAIL_LOG_LEVEL has invalid level %q: %w", c.LogLevel, err)
	}

	if c.SecretKeyHex != "" {
		key, err := hex.DecodeString(c.SecretKeyHex)
		if err != nil {
			return fmt.Errorf("TRAILTAIL_SECRET_KEY is not valid hex: %w", err)
		}
		if len(key) != 32 {
			return fmt.Errorf("TRAILTAIL_SECRET_KEY must be 64 hex characters (32 bytes), got %d bytes", len(key))
		}
		c.SecretKey = key
	}

	return nil
}

// SlogLevel returns the configured log level. Load has already validated it.
func (c *Config) SlogLevel() slog.Level {
	var level slog.Level
	_ = level.UnmarshalText([]byte(c.LogLevel))
	return level
}
