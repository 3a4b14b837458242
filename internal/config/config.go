// Package config loads runtime configuration from environment variables.
package config

import (
	"errors"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds runtime configuration for the application.
type Config struct {
	AppEnv   string `envconfig:"APP_ENV" default:"development"`
	AppPort  string `envconfig:"APP_PORT" default:"9000"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	// ReportingDSN points at the read-only point-of-sale database.
	// AuthDSN points at the web-users database.
	ReportingDSN string `envconfig:"REPORTING_DATABASE_URL" required:"true"`
	AuthDSN      string `envconfig:"AUTH_DATABASE_URL" required:"true"`

	JWTSecret string        `envconfig:"JWT_SECRET" required:"true"`
	JWTTTL    time.Duration `envconfig:"JWT_TTL" default:"12h"`

	CatalogCacheTTL  time.Duration `envconfig:"CATALOG_CACHE_TTL" default:"10m"`
	CatalogCacheSize int           `envconfig:"CATALOG_CACHE_SIZE" default:"128"`

	CORSOrigins []string `envconfig:"CORS_ORIGINS" default:"http://localhost:5173,http://127.0.0.1:5173"`

	ReadTimeout  time.Duration `envconfig:"APP_READ_TIMEOUT" default:"15s"`
	WriteTimeout time.Duration `envconfig:"APP_WRITE_TIMEOUT" default:"60s"`
	IdleTimeout  time.Duration `envconfig:"APP_IDLE_TIMEOUT" default:"60s"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if cfg.JWTSecret == "" {
		return nil, errors.New("jwt secret must be provided")
	}
	if cfg.CatalogCacheSize <= 0 {
		cfg.CatalogCacheSize = 128
	}
	return &cfg, nil
}

// IsDevelopment returns true outside production.
func (c *Config) IsDevelopment() bool {
	return c != nil && c.AppEnv != "production"
}
