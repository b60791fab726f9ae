// Package config provides configuration loading using koanf.
// Precedence: environment variables over compiled defaults.
package config

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"

	"github.com/aelexs/timepal/internal/domain"
	"github.com/aelexs/timepal/pkg/timepal"
)

// EnvPrefix scopes the environment variables read by Load. The first "_"
// after the prefix separates the section from the key, so
// TIMEPAL_TIME_DEFAULT_OFFSET sets time.default_offset.
const EnvPrefix = "TIMEPAL_"

var (
	ErrConfigRequired = errors.New("required configuration key missing")
	ErrConfigInvalid  = errors.New("invalid configuration value")
)

// Config holds all service configuration.
type Config struct {
	// Environment identifier: "local", "dev", "prod"
	Environment string `koanf:"environment"`

	Log  LogConfig  `koanf:"log"`
	HTTP HTTPConfig `koanf:"http"`
	Time TimeConfig `koanf:"time"`
	OTEL OTELConfig `koanf:"otel"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"` // "json" or "text"
}

// HTTPConfig holds timepald HTTP server configuration.
type HTTPConfig struct {
	Port         int           `koanf:"port"`
	ReadTimeout  time.Duration `koanf:"read_timeout"`
	WriteTimeout time.Duration `koanf:"write_timeout"`
	IdleTimeout  time.Duration `koanf:"idle_timeout"`
}

// TimeConfig holds the process-wide facade defaults. They are read once at
// start-up and never change afterwards.
type TimeConfig struct {
	DefaultOffset  string `koanf:"default_offset"`  // "Z", "+05:30", ...
	DefaultPattern string `koanf:"default_pattern"` // pattern text or a predefined name
}

// OTELConfig holds OpenTelemetry configuration.
type OTELConfig struct {
	Endpoint    string `koanf:"endpoint"` // Empty disables OTLP export
	ServiceName string `koanf:"service_name"`
}

// defaults returns a Config with compiled default values.
func defaults() *Config {
	return &Config{
		Environment: "local",
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
		HTTP: HTTPConfig{
			Port:         8080,
			ReadTimeout:  domain.HTTPReadTimeout,
			WriteTimeout: domain.HTTPWriteTimeout,
			IdleTimeout:  domain.HTTPIdleTimeout,
		},
		Time: TimeConfig{
			DefaultOffset:  "Z",
			DefaultPattern: "ISO_LOCAL_DATE_TIME",
		},
		OTEL: OTELConfig{
			ServiceName: "timepal",
		},
	}
}

// Load loads configuration following the precedence:
// 1. Environment variables (highest)
// 2. Compiled defaults (lowest)
//
// Required keys missing or time defaults that do not compile fail start-up.
func Load(ctx context.Context) (*Config, error) {
	k := koanf.New(".")

	cfg := defaults()

	err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil)
	if err != nil {
		return nil, fmt.Errorf("load env vars: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := validateRequired(cfg); err != nil {
		return nil, err
	}
	if _, err := cfg.TimeDefaults(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// envKey maps TIMEPAL_HTTP_READ_TIMEOUT to http.read_timeout.
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.Replace(key, "_", ".", 1)
}

// validateRequired checks that required configuration is present.
func validateRequired(cfg *Config) error {
	if cfg.Environment == "local" {
		return nil
	}

	if cfg.HTTP.Port <= 0 {
		return fmt.Errorf("%w: http.port", ErrConfigRequired)
	}
	if cfg.IsProd() && cfg.OTEL.Endpoint == "" {
		return fmt.Errorf("%w: otel.endpoint", ErrConfigRequired)
	}

	return nil
}

// TimeDefaults builds the facade configuration from the time section.
func (c *Config) TimeDefaults() (timepal.Config, error) {
	offset, err := timepal.ParseZoneOffset(c.Time.DefaultOffset)
	if err != nil {
		return timepal.Config{}, fmt.Errorf("%w: time.default_offset: %w", ErrConfigInvalid, err)
	}
	pattern, err := timepal.LookupPattern(c.Time.DefaultPattern)
	if err != nil {
		return timepal.Config{}, fmt.Errorf("%w: time.default_pattern: %w", ErrConfigInvalid, err)
	}
	return timepal.Config{Offset: offset, Pattern: pattern}, nil
}

// Facade builds the process-wide facade. Call it once at start-up and
// share the result.
func (c *Config) Facade(opts ...timepal.Option) (*timepal.Facade, error) {
	tc, err := c.TimeDefaults()
	if err != nil {
		return nil, err
	}
	return timepal.New(tc, opts...)
}

// IsLocal returns true if running in local development environment.
func (c *Config) IsLocal() bool {
	return c.Environment == "local"
}

// IsProd returns true if running in production environment.
func (c *Config) IsProd() bool {
	return c.Environment == "prod"
}
