// Package config handles configuration loading from a YAML file and
// environment variables. Environment variables win over the file.
package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration values for the application.
type Config struct {
	// Database connection string
	DatabaseURL string

	// HTTP server port
	HTTPPort int

	// Secret for the business-onboarding endpoint
	AdminSecret string

	// OTLP collector endpoint for traces
	OTELEndpoint string

	// How long to wait for in-flight requests on shutdown
	ShutdownTimeout time.Duration
}

// Load reads configuration from the given file (optional) and the
// environment.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("http_port", 8080)
	v.SetDefault("otel_endpoint", "localhost:4317")
	v.SetDefault("shutdown_timeout", 5*time.Second)

	// Environment variables override file values.
	v.BindEnv("database_url", "DATABASE_URL")
	v.BindEnv("http_port", "PORT")
	v.BindEnv("admin_secret", "ADMIN_SECRET")
	v.BindEnv("otel_endpoint", "OTEL_EXPORTER_OTLP_ENDPOINT")
	v.BindEnv("shutdown_timeout", "SHUTDOWN_TIMEOUT")

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	cfg := &Config{
		DatabaseURL:     v.GetString("database_url"),
		HTTPPort:        v.GetInt("http_port"),
		AdminSecret:     v.GetString("admin_secret"),
		OTELEndpoint:    v.GetString("otel_endpoint"),
		ShutdownTimeout: v.GetDuration("shutdown_timeout"),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("database_url is required (env: DATABASE_URL)")
	}
	if cfg.AdminSecret == "" {
		return nil, fmt.Errorf("admin_secret is required (env: ADMIN_SECRET)")
	}
	if cfg.HTTPPort <= 0 || cfg.HTTPPort > 65535 {
		return nil, fmt.Errorf("invalid http_port %d", cfg.HTTPPort)
	}

	return cfg, nil
}
