package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	Port     string
	Env      string
	LogLevel string

	// Remote accounting API
	APIBaseURL       string
	APITimeout       time.Duration
	DashboardTimeout time.Duration

	// Credential cookie
	CookieName     string
	CookieHashKey  string
	CookieBlockKey string

	DocumentsPerPage     int
	BackendCheckSchedule string
}

func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		log.Warn().Msg(".env file not found, using system environment variables")
	}

	cfg := &Config{
		Port:                 os.Getenv("PORT"),
		Env:                  os.Getenv("ENV"),
		LogLevel:             os.Getenv("LOG_LEVEL"),
		APIBaseURL:           strings.TrimRight(os.Getenv("API_BASE_URL"), "/"),
		APITimeout:           durationEnv("API_TIMEOUT", 15*time.Second),
		DashboardTimeout:     durationEnv("DASHBOARD_TIMEOUT", 20*time.Second),
		CookieName:           os.Getenv("COOKIE_NAME"),
		CookieHashKey:        os.Getenv("COOKIE_HASH_KEY"),
		CookieBlockKey:       os.Getenv("COOKIE_BLOCK_KEY"),
		DocumentsPerPage:     intEnv("DOCUMENTS_PER_PAGE", 5),
		BackendCheckSchedule: os.Getenv("BACKEND_CHECK_SCHEDULE"),
	}

	// Default values
	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.Env == "" {
		cfg.Env = "development"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.APIBaseURL == "" {
		cfg.APIBaseURL = "https://comptaonline.linkpc.net"
	}
	if cfg.CookieName == "" {
		cfg.CookieName = "compta_token"
	}
	if cfg.CookieHashKey == "" {
		cfg.CookieHashKey = "dev-only-change-me-please-0123456789ABCDEF"
	}
	if cfg.DocumentsPerPage <= 0 {
		cfg.DocumentsPerPage = 5
	}
	if cfg.BackendCheckSchedule == "" {
		cfg.BackendCheckSchedule = "@every 1m"
	}

	return cfg
}

// IsProduction reports whether secure cookies and strict checks apply.
func (c *Config) IsProduction() bool {
	return c.Env == "production" || c.Env == "prod"
}

// Validate rejects settings the service cannot start with.
func (c *Config) Validate() error {
	u, err := url.Parse(c.APIBaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid API_BASE_URL %q", c.APIBaseURL)
	}

	if c.IsProduction() {
		if len(c.CookieHashKey) < 32 {
			return errors.New("COOKIE_HASH_KEY must be at least 32 bytes in production")
		}
		switch len(c.CookieBlockKey) {
		case 16, 24, 32:
		default:
			return errors.New("COOKIE_BLOCK_KEY must be 16, 24 or 32 bytes in production")
		}
	}

	return nil
}

func durationEnv(key string, fallback time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		log.Warn().Str("key", key).Str("value", raw).Msg("invalid duration, using default")
		return fallback
	}
	return d
}

func intEnv(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		log.Warn().Str("key", key).Str("value", raw).Msg("invalid integer, using default")
		return fallback
	}
	return n
}
