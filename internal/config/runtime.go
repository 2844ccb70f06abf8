package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

const (
	defaultHTTPAddr       = ":8080"
	defaultJWTAccessTTL   = "24h"
	defaultHoldTTL        = "24h"
	defaultJWTSecret      = "change-me-jwt-secret"
	defaultMailFrom       = "reservations@moffatbaylodge.com"
	defaultCacheTTL       = "30s"
	defaultPublicIDPrefix = "MBL"
)

type RuntimeConfig struct {
	AppEnv         string
	HTTPAddr       string
	DatabaseURL    string
	JWTSecret      string
	JWTAccessTTL   time.Duration
	HoldTTL        time.Duration
	PublicIDPrefix string

	MailFrom     string
	SMTPAddr     string
	SMTPUsername string
	SMTPPassword string

	RedisAddr     string
	RedisPassword string
	CacheTTL      time.Duration

	AMQPURL string
}

func Load() (*RuntimeConfig, error) {
	cfg := &RuntimeConfig{}

	appEnv := strings.TrimSpace(os.Getenv("APP_ENV"))
	if appEnv == "" {
		appEnv = "dev"
	}
	cfg.AppEnv = strings.ToLower(appEnv)

	cfg.HTTPAddr = getEnv("HTTP_ADDR", defaultHTTPAddr)
	cfg.DatabaseURL = strings.TrimSpace(os.Getenv("DATABASE_URL"))
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = "moffatbay.db"
	}

	cfg.JWTSecret = strings.TrimSpace(getEnv("JWT_SECRET", defaultJWTSecret))
	cfg.PublicIDPrefix = strings.TrimSpace(getEnv("PUBLIC_ID_PREFIX", defaultPublicIDPrefix))

	var err error
	cfg.JWTAccessTTL, err = parseDurationEnv("JWT_ACCESS_TTL", defaultJWTAccessTTL)
	if err != nil {
		return nil, err
	}

	cfg.HoldTTL, err = parseDurationEnv("HOLD_TTL", defaultHoldTTL)
	if err != nil {
		return nil, err
	}

	cfg.CacheTTL, err = parseDurationEnv("AVAILABILITY_CACHE_TTL", defaultCacheTTL)
	if err != nil {
		return nil, err
	}

	cfg.MailFrom = strings.TrimSpace(getEnv("MAIL_FROM", defaultMailFrom))
	cfg.SMTPAddr = strings.TrimSpace(os.Getenv("SMTP_ADDR"))
	cfg.SMTPUsername = os.Getenv("SMTP_USERNAME")
	cfg.SMTPPassword = os.Getenv("SMTP_PASSWORD")

	cfg.RedisAddr = strings.TrimSpace(os.Getenv("REDIS_ADDR"))
	cfg.RedisPassword = os.Getenv("REDIS_PASSWORD")

	cfg.AMQPURL = strings.TrimSpace(os.Getenv("AMQP_URL"))

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func validate(cfg *RuntimeConfig) error {
	if cfg.JWTAccessTTL <= 0 {
		return fmt.Errorf("JWT_ACCESS_TTL must be > 0")
	}
	if cfg.HoldTTL <= 0 {
		return fmt.Errorf("HOLD_TTL must be > 0")
	}
	if cfg.PublicIDPrefix == "" {
		return fmt.Errorf("PUBLIC_ID_PREFIX must not be empty")
	}

	if isProdLike(cfg.AppEnv) {
		if cfg.JWTSecret == "" || cfg.JWTSecret == defaultJWTSecret {
			return fmt.Errorf("in prod/release JWT_SECRET must be set and not default")
		}
		if cfg.SMTPAddr == "" {
			return fmt.Errorf("in prod/release SMTP_ADDR must be set")
		}
	}

	return nil
}

func isProdLike(env string) bool {
	env = strings.ToLower(strings.TrimSpace(env))
	return env == "prod" || env == "production" || env == "release"
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
