package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

var ErrMissingStripeKey = errors.New("STRIPE_SECRET_KEY is required")

type Config struct {
	HTTPPort           string
	RequestTimeout     time.Duration
	ShutdownTimeout    time.Duration
	MaxRequestBodySize int64
	LogLevel           string

	// StripeSecretKey must come from the environment or a secret store.
	StripeSecretKey         string
	StripeMaxNetworkRetries int64
	ProviderTimeout         time.Duration

	BreakerFailures uint32
	BreakerTimeout  time.Duration

	// AllowedOrigin defaults to "*", which is only acceptable for demos.
	AllowedOrigin     string
	SuccessURL        string
	CancelURL         string
	ShippingCountries []string
	CatalogPath       string
}

func Load() (*Config, error) {
	cfg := &Config{
		HTTPPort:           getEnv("HTTP_PORT", "8080"),
		MaxRequestBodySize: 1 << 20, // 1MB
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		StripeSecretKey:    strings.TrimSpace(os.Getenv("STRIPE_SECRET_KEY")),
		AllowedOrigin:      getEnv("ALLOWED_ORIGIN", "*"),
		SuccessURL:         getEnv("SUCCESS_URL", "http://localhost:3000/success"),
		CancelURL:          getEnv("CANCEL_URL", "http://localhost:3000"),
		ShippingCountries:  getEnvList("SHIPPING_COUNTRIES", []string{"US", "CA"}),
		CatalogPath:        os.Getenv("CATALOG_PATH"),
	}

	var err error
	if cfg.RequestTimeout, err = getEnvDuration("REQUEST_TIMEOUT", 30*time.Second); err != nil {
		return nil, err
	}
	if cfg.ShutdownTimeout, err = getEnvDuration("SHUTDOWN_TIMEOUT", 10*time.Second); err != nil {
		return nil, err
	}
	if cfg.ProviderTimeout, err = getEnvDuration("PROVIDER_TIMEOUT", 10*time.Second); err != nil {
		return nil, err
	}
	if cfg.BreakerTimeout, err = getEnvDuration("BREAKER_TIMEOUT", 30*time.Second); err != nil {
		return nil, err
	}
	if cfg.StripeMaxNetworkRetries, err = getEnvInt("STRIPE_MAX_NETWORK_RETRIES", 2); err != nil {
		return nil, err
	}
	failures, err := getEnvInt("BREAKER_FAILURES", 5)
	if err != nil {
		return nil, err
	}
	if failures <= 0 {
		return nil, fmt.Errorf("invalid BREAKER_FAILURES: must be positive")
	}
	cfg.BreakerFailures = uint32(failures)

	// The request deadline has to outlast the provider call, otherwise the
	// router's timeout answers 504 over a checkout that already replied.
	if cfg.RequestTimeout <= cfg.ProviderTimeout {
		return nil, fmt.Errorf("invalid REQUEST_TIMEOUT: %s must exceed PROVIDER_TIMEOUT %s",
			cfg.RequestTimeout, cfg.ProviderTimeout)
	}

	if cfg.StripeMaxNetworkRetries < 0 {
		return nil, fmt.Errorf("invalid STRIPE_MAX_NETWORK_RETRIES: must not be negative")
	}
	if cfg.StripeSecretKey == "" {
		return nil, ErrMissingStripeKey
	}

	return cfg, nil
}

// PermissiveCORS reports whether any origin may call the API.
func (c *Config) PermissiveCORS() bool {
	return c.AllowedOrigin == "*"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int64) (int64, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("invalid %s: must be positive", key)
	}
	return d, nil
}

// getEnvList splits a comma separated value, e.g. "US,CA,GB".
func getEnvList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, strings.ToUpper(part))
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
