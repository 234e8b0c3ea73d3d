// internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"

	"fraud-check/internal/service"
)

type Config struct {
	Port            string
	Environment     string
	FraudAPIURL     string
	FailSafePolicy  service.FailSafeMode
	IncludeTime     bool
	OracleTimeout   time.Duration
	CORSOrigin      string
	RateLimit       int
	RateLimitWindow time.Duration
	RedisURL        string
}

var ErrMissingFraudAPIURL = errors.New("FRAUD_API_URL is not set")

// Load reads the configuration from the environment. A missing or invalid
// oracle URL is a startup error.
func Load() (*Config, error) {
	return load(os.Getenv)
}

func load(lookup func(string) string) (*Config, error) {
	getEnv := func(key, fallback string) string {
		if value := lookup(key); value != "" {
			return value
		}
		return fallback
	}

	cfg := &Config{
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "development"),
		FraudAPIURL: getEnv("FRAUD_API_URL", ""),
		CORSOrigin:  getEnv("CORS_ORIGIN", "http://localhost:3000"),
		RedisURL:    getEnv("REDIS_URL", ""),
	}

	if cfg.FraudAPIURL == "" {
		return nil, ErrMissingFraudAPIURL
	}
	u, err := url.Parse(cfg.FraudAPIURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("FRAUD_API_URL must be an absolute http(s) URL, got %q", cfg.FraudAPIURL)
	}

	cfg.FailSafePolicy, err = service.ParseFailSafeMode(getEnv("FAIL_SAFE_POLICY", "closed"))
	if err != nil {
		return nil, fmt.Errorf("FAIL_SAFE_POLICY: %w", err)
	}

	if cfg.IncludeTime, err = strconv.ParseBool(getEnv("INCLUDE_TIME", "false")); err != nil {
		return nil, fmt.Errorf("INCLUDE_TIME: %w", err)
	}

	if cfg.OracleTimeout, err = time.ParseDuration(getEnv("ORACLE_TIMEOUT", "10s")); err != nil {
		return nil, fmt.Errorf("ORACLE_TIMEOUT: %w", err)
	}
	if cfg.OracleTimeout <= 0 {
		return nil, fmt.Errorf("ORACLE_TIMEOUT must be positive, got %s", cfg.OracleTimeout)
	}

	if cfg.RateLimit, err = strconv.Atoi(getEnv("RATE_LIMIT", "30")); err != nil || cfg.RateLimit < 1 {
		return nil, fmt.Errorf("RATE_LIMIT must be a positive integer, got %q", lookup("RATE_LIMIT"))
	}

	if cfg.RateLimitWindow, err = time.ParseDuration(getEnv("RATE_LIMIT_WINDOW", "1m")); err != nil {
		return nil, fmt.Errorf("RATE_LIMIT_WINDOW: %w", err)
	}
	if cfg.RateLimitWindow <= 0 {
		return nil, fmt.Errorf("RATE_LIMIT_WINDOW must be positive, got %s", cfg.RateLimitWindow)
	}

	return cfg, nil
}

// IsProduction reports whether production logging should be used.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
