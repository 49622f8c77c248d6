// Package config loads service configuration from the environment.
//
// Values are read once at start-up. A .env file, when present, is loaded by
// the service mains before Load* is called.
package config

import (
	"fmt"
	"strings"
	"time"

	env "github.com/Netflix/go-env"
)

// ServerEnvironment holds the settings shared by both services.
type ServerEnvironment struct {
	GinMode         string        `env:"GIN_MODE"`
	LogLevel        string        `env:"LOG_LEVEL,default=info"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT,default=10s"`

	// http middleware
	AllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS,separator=|"`
	RateLimitRPS   int32    `env:"RATE_LIMIT_RPS,default=0"`
	RateLimitBurst int32    `env:"RATE_LIMIT_BURST,default=50"`

	// database settings
	DatabaseURL      string        `env:"DATABASE_URL,required=true"`
	DBMaxConnections int32         `env:"DB_MAX_CONNECTIONS,default=10"`
	DBConnectRetries int           `env:"DB_CONNECT_RETRIES,default=5"`
	DBRetryDelay     time.Duration `env:"DB_RETRY_DELAY,default=1s"`

	// tracing is disabled when empty
	OTLPEndpoint string `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
}

// IndustryEnvironment configures the industry connect service.
type IndustryEnvironment struct {
	Port   int `env:"PORT,default=8001"`
	Server ServerEnvironment
}

// IntegrationEnvironment configures the integration service.
type IntegrationEnvironment struct {
	Port               int    `env:"PORT,default=8004"`
	ProcessServiceURL  string `env:"PROCESS_SERVICE_URL,default=http://localhost:8000"`
	IndustryServiceURL string `env:"INDUSTRY_SERVICE_URL,default=http://localhost:8001"`
	Server             ServerEnvironment
}

var validLogLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// LoadIndustry decodes and validates the industry connect service environment.
func LoadIndustry() (*IndustryEnvironment, error) {
	var cfg IndustryEnvironment
	if _, err := env.UnmarshalFromEnviron(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal environment variables: %w", err)
	}
	if err := validatePort(cfg.Port); err != nil {
		return nil, err
	}
	if err := cfg.Server.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadIntegration decodes and validates the integration service environment.
func LoadIntegration() (*IntegrationEnvironment, error) {
	var cfg IntegrationEnvironment
	if _, err := env.UnmarshalFromEnviron(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal environment variables: %w", err)
	}
	if err := validatePort(cfg.Port); err != nil {
		return nil, err
	}
	if err := validateBaseURL("PROCESS_SERVICE_URL", cfg.ProcessServiceURL); err != nil {
		return nil, err
	}
	if err := validateBaseURL("INDUSTRY_SERVICE_URL", cfg.IndustryServiceURL); err != nil {
		return nil, err
	}
	cfg.ProcessServiceURL = strings.TrimRight(cfg.ProcessServiceURL, "/")
	cfg.IndustryServiceURL = strings.TrimRight(cfg.IndustryServiceURL, "/")
	if err := cfg.Server.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (s *ServerEnvironment) validate() error {
	if strings.TrimSpace(s.DatabaseURL) == "" {
		return fmt.Errorf("DATABASE_URL must be set")
	}
	s.LogLevel = strings.ToLower(s.LogLevel)
	if !validLogLevels[s.LogLevel] {
		return fmt.Errorf("invalid LOG_LEVEL: %s", s.LogLevel)
	}
	if s.DBMaxConnections < 1 {
		return fmt.Errorf("DB_MAX_CONNECTIONS must be at least 1")
	}
	if s.DBConnectRetries < 1 {
		return fmt.Errorf("DB_CONNECT_RETRIES must be at least 1")
	}
	if s.RateLimitRPS < 0 {
		return fmt.Errorf("RATE_LIMIT_RPS must be 0 or greater")
	}
	if s.RateLimitRPS > 0 && s.RateLimitBurst < 1 {
		return fmt.Errorf("RATE_LIMIT_BURST must be at least 1 when rate limiting is enabled")
	}
	return nil
}

func validatePort(port int) error {
	if port < 1 || port > 65535 {
		return fmt.Errorf("PORT must be between 1 and 65535")
	}
	return nil
}

func validateBaseURL(name, value string) error {
	if !strings.HasPrefix(value, "http://") && !strings.HasPrefix(value, "https://") {
		return fmt.Errorf("%s must be an http(s) URL, got %q", name, value)
	}
	return nil
}
