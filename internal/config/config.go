// Package config loads application configuration from environment variables.
//
// All process-wide settings (signing secrets, token lifetimes, bcrypt cost)
// are read exactly once at startup into a Config struct, which is then passed
// into constructors. Nothing reads os.Getenv at call sites - if a value isn't
// in Config, the application doesn't use it.
package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
)

// Config holds all application configuration.
// Fields are populated from environment variables by Load.
type Config struct {
	Port     int    `env:"PORT" envDefault:"8080"`
	DBPath   string `env:"DB_PATH" envDefault:"data/photoapp.db"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// Token signing. The two secrets MUST differ - an access token must never
	// verify against the refresh secret or vice versa.
	AccessTokenSecret    string        `env:"ACCESS_TOKEN_SECRET,required"`
	RefreshTokenSecret   string        `env:"REFRESH_TOKEN_SECRET,required"`
	AccessTokenLifetime  time.Duration `env:"ACCESS_TOKEN_LIFETIME" envDefault:"2h"`
	RefreshTokenLifetime time.Duration `env:"REFRESH_TOKEN_LIFETIME" envDefault:"4h"`

	// SaltRounds is the bcrypt cost factor used when hashing passwords.
	SaltRounds int `env:"SALT_ROUNDS" envDefault:"10"`
}

// Load reads configuration from the environment.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: parsing environment: %w", err)
	}
	if cfg.AccessTokenSecret == cfg.RefreshTokenSecret {
		return nil, fmt.Errorf("config: ACCESS_TOKEN_SECRET and REFRESH_TOKEN_SECRET must differ")
	}
	return cfg, nil
}

// SlogLevel maps the LOG_LEVEL string to a slog.Level.
// Unknown values fall back to Info rather than failing startup.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
