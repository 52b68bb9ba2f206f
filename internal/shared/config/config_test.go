package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "ENV", "LOG_LEVEL", "API_BASE_URL", "API_TIMEOUT", "COOKIE_NAME", "DOCUMENTS_PER_PAGE", "BACKEND_CHECK_SCHEDULE"} {
		t.Setenv(key, "")
	}

	cfg := LoadConfig()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, 15*time.Second, cfg.APITimeout)
	assert.Equal(t, 5, cfg.DocumentsPerPage)
	assert.Equal(t, "compta_token", cfg.CookieName)
	assert.Equal(t, "@every 1m", cfg.BackendCheckSchedule)
	require.NoError(t, cfg.Validate())
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("API_BASE_URL", "http://api.local:9000/")
	t.Setenv("API_TIMEOUT", "3s")
	t.Setenv("DOCUMENTS_PER_PAGE", "not-a-number")

	cfg := LoadConfig()

	assert.Equal(t, "http://api.local:9000", cfg.APIBaseURL)
	assert.Equal(t, 3*time.Second, cfg.APITimeout)
	assert.Equal(t, 5, cfg.DocumentsPerPage)
}

func TestValidate(t *testing.T) {
	cfg := &Config{APIBaseURL: "not a url", Env: "development"}
	assert.Error(t, cfg.Validate())

	cfg = &Config{APIBaseURL: "https://api.example.com", Env: "production", CookieHashKey: "short"}
	assert.Error(t, cfg.Validate())

	cfg = &Config{
		APIBaseURL:     "https://api.example.com",
		Env:            "production",
		CookieHashKey:  "0123456789abcdef0123456789abcdef",
		CookieBlockKey: "0123456789abcdef",
	}
	assert.NoError(t, cfg.Validate())
}
