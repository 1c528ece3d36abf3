package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"
)

const (
	defaultPort                = "8080"
	defaultMinFillDuration     = "3s"
	defaultMinResubmitInterval = "3s"
	defaultDeliveryTimeout     = "10s"
	defaultAutoResetDelay      = "5s"
	defaultSessionTTL          = "30m"
	defaultJWTAccessTTL        = "24h"
	defaultJWTSecret           = "change-me-jwt-secret"
	defaultCRMBearerSecret     = "change-me-crm-secret"
)

// Config holds the runtime configuration for the API process.
type Config struct {
	AppEnv      string
	Port        string
	DatabaseURL string

	// CRM delivery (primary enquiry channel)
	CRMBaseURL      string
	CRMBearerSecret string

	// Enquiry pipeline timings
	MinFillDuration     time.Duration
	MinResubmitInterval time.Duration
	DeliveryTimeout     time.Duration
	AutoResetDelay      time.Duration
	SessionTTL          time.Duration

	// Admin auth
	JWTSecret    string
	JWTAccessTTL time.Duration
}

func Load() (*Config, error) {
	cfg := &Config{}

	appEnv := strings.TrimSpace(os.Getenv("APP_ENV"))
	if appEnv == "" {
		appEnv = strings.TrimSpace(os.Getenv("ENV"))
	}
	if appEnv == "" {
		appEnv = "dev"
	}
	cfg.AppEnv = strings.ToLower(appEnv)

	cfg.Port = strings.TrimSpace(getEnv("PORT", defaultPort))
	cfg.DatabaseURL = strings.TrimSpace(os.Getenv("DATABASE_URL"))
	cfg.CRMBaseURL = strings.TrimSpace(os.Getenv("CRM_BASE_URL"))
	cfg.CRMBearerSecret = strings.TrimSpace(getEnv("CRM_BEARER_SECRET", defaultCRMBearerSecret))
	cfg.JWTSecret = strings.TrimSpace(getEnv("JWT_SECRET", defaultJWTSecret))

	var err error
	cfg.MinFillDuration, err = parseDurationEnv("MIN_FILL_DURATION", defaultMinFillDuration)
	if err != nil {
		return nil, err
	}

	cfg.MinResubmitInterval, err = parseDurationEnv("MIN_RESUBMIT_INTERVAL", defaultMinResubmitInterval)
	if err != nil {
		return nil, err
	}

	cfg.DeliveryTimeout, err = parseDurationEnv("DELIVERY_TIMEOUT", defaultDeliveryTimeout)
	if err != nil {
		return nil, err
	}

	cfg.AutoResetDelay, err = parseDurationEnv("AUTO_RESET_DELAY", defaultAutoResetDelay)
	if err != nil {
		return nil, err
	}

	cfg.SessionTTL, err = parseDurationEnv("SESSION_TTL", defaultSessionTTL)
	if err != nil {
		return nil, err
	}

	cfg.JWTAccessTTL, err = parseDurationEnv("JWT_ACCESS_TTL", defaultJWTAccessTTL)
	if err != nil {
		return nil, err
	}

	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	log.Printf("pipeline config: min_fill=%v, min_resubmit=%v, delivery_timeout=%v, auto_reset=%v",
		cfg.MinFillDuration, cfg.MinResubmitInterval, cfg.DeliveryTimeout, cfg.AutoResetDelay)

	return cfg, nil
}

func validateConfig(cfg *Config) error {
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL must not be empty")
	}
	if cfg.MinFillDuration <= 0 {
		return fmt.Errorf("MIN_FILL_DURATION must be > 0")
	}
	if cfg.MinResubmitInterval <= 0 {
		return fmt.Errorf("MIN_RESUBMIT_INTERVAL must be > 0")
	}
	if cfg.DeliveryTimeout <= 0 {
		return fmt.Errorf("DELIVERY_TIMEOUT must be > 0")
	}
	if cfg.AutoResetDelay <= 0 {
		return fmt.Errorf("AUTO_RESET_DELAY must be > 0")
	}
	if cfg.SessionTTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be > 0")
	}
	if cfg.JWTAccessTTL <= 0 {
		return fmt.Errorf("JWT_ACCESS_TTL must be > 0")
	}

	if isProdLike(cfg.AppEnv) {
		if cfg.CRMBaseURL == "" {
			return fmt.Errorf("in prod/release CRM_BASE_URL must be set")
		}
		if isEmptyOrDefault(cfg.CRMBearerSecret, defaultCRMBearerSecret) {
			return fmt.Errorf("in prod/release CRM_BEARER_SECRET must be set and not default")
		}
		if isEmptyOrDefault(cfg.JWTSecret, defaultJWTSecret) {
			return fmt.Errorf("in prod/release JWT_SECRET must be set and not default")
		}
	}

	return nil
}

func isProdLike(env string) bool {
	env = strings.ToLower(strings.TrimSpace(env))
	return env == "prod" || env == "production" || env == "release"
}

func isEmptyOrDefault(v, def string) bool {
	trimmed := strings.TrimSpace(v)
	return trimmed == "" || trimmed == def
}

func parseDurationEnv(name, fallback string) (time.Duration, error) {
	value := strings.TrimSpace(getEnv(name, fallback))
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return d, nil
}

func getEnv(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}
