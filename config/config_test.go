package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/octabyte/campus-portal/navigation"
)

func TestDefaults(t *testing.T) {
	cfg, err := FromMap(nil)
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8000/api", cfg.APIBaseURL)
	assert.Equal(t, 500*time.Millisecond, cfg.LoginRedirectDelay)
	assert.Equal(t, StoreFile, cfg.Session.Store)
	assert.Equal(t, "campus-portal:", cfg.Redis.KeyPrefix)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.False(t, cfg.Otel.Enabled)
	assert.Equal(t, navigation.DefaultRoutes(), cfg.NavigationRoutes())
	assert.True(t, cfg.IsDevelopment())
	assert.Equal(t, "127.0.0.1:8080", cfg.PortalAddr)
	assert.False(t, cfg.PortalAllowRemote)
}

func TestOverrides(t *testing.T) {
	cfg, err := FromMap(map[string]string{
		"API_BASE_URL":         "https://api.amit.edu/api",
		"LOGIN_REDIRECT_DELAY": "1s",
		"SESSION_STORE":        "redis",
		"REDIS_ADDR":           "cache:6379",
		"REDIS_DB":             "2",
		"LOG_LEVEL":            "debug",
		"LOG_ENV":              "production",
		"OTEL_ENABLED":         "true",
		"OTEL_ENDPOINT":        "collector:4318",
		"OTEL_HEADERS":         "authorization:secret,x-team:portal",
		"OTEL_SAMPLE_RATE":     "0.25",
		"ADMIN_CONSOLE_URL":    "https://api.amit.edu/admin/",
	})
	require.NoError(t, err)

	assert.Equal(t, time.Second, cfg.LoginRedirectDelay)
	assert.Equal(t, StoreRedis, cfg.Session.Store)
	assert.Equal(t, 2, cfg.Redis.DB)
	assert.False(t, cfg.IsDevelopment())

	oc := cfg.OtelConfig()
	assert.True(t, oc.Enabled)
	assert.Equal(t, "secret", oc.Headers["authorization"])
	assert.Equal(t, 0.25, oc.SampleRate)
	assert.Equal(t, "production", oc.Environment)

	cc := cfg.ClientConfig()
	assert.Equal(t, "https://api.amit.edu/api", cc.BaseURL)
	assert.Equal(t, "https://api.amit.edu/admin/", cc.Routes.AdminConsole)
	assert.NoError(t, cc.Validate())
}

func TestInvalid(t *testing.T) {
	tests := map[string]map[string]string{
		"unknown store":       {"SESSION_STORE": "sqlite"},
		"bad base url":        {"API_BASE_URL": "localhost"},
		"bad log level":       {"LOG_LEVEL": "verbose"},
		"negative delay":      {"LOGIN_REDIRECT_DELAY": "-1s"},
		"sample rate":         {"OTEL_SAMPLE_RATE": "2"},
		"otel no endpoint":    {"OTEL_ENABLED": "true"},
		"unparsable duration": {"LOGIN_REDIRECT_DELAY": "soon"},
	}
	for name, vars := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := FromMap(vars)
			assert.Error(t, err)
		})
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "portal.env")
	require.NoError(t, os.WriteFile(path, []byte("PORTAL_ADDR=:9191\n"), 0o600))
	t.Setenv("PORTAL_ADDR", "")
	require.NoError(t, os.Unsetenv("PORTAL_ADDR"))

	cfg, err := Load(path, filepath.Join(dir, "missing.env"))
	require.NoError(t, err)
	assert.Equal(t, ":9191", cfg.PortalAddr)
}
