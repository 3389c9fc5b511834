package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnv_OverridesFields(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvAddr, ":4000")
	t.Setenv(EnvDatabaseDSN, "memory")
	t.Setenv(EnvLogLevel, "debug")
	t.Setenv(EnvCookieSecure, "true")
	t.Setenv(EnvCORSOrigins, "http://a, http://b")
	t.Setenv(EnvShutdownTimeout, "2s")

	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg, "")

	assert.Equal(t, ":4000", cfg.EndpointAddrHTTP)
	assert.Equal(t, "memory", cfg.DatabaseDSN)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.True(t, cfg.CookieSecure)
	assert.Equal(t, []string{"http://a", "http://b"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, 2*time.Second, cfg.ShutdownTimeout)
}

func TestParseEnv_IgnoresMalformedValues(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvCookieSecure, "maybe")
	t.Setenv(EnvShutdownTimeout, "later")

	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg, "")

	assert.False(t, cfg.CookieSecure)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
}

func TestParseEnv_LoadsDotEnvFile(t *testing.T) {
	clearEnv(t)
	require.NoError(t, os.Unsetenv(EnvLogLevel))

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("DAILYDIET_LOG_LEVEL=error\n"), 0o600))
	t.Cleanup(func() { _ = os.Unsetenv(EnvLogLevel) })

	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg, path)

	assert.Equal(t, "error", cfg.LogLevel)
}

func TestParseEnv_MissingDotEnvIsFine(t *testing.T) {
	clearEnv(t)

	cfg := &Config{}
	cfg.LoadDefaults()
	require.NotPanics(t, func() { parseEnv(cfg, filepath.Join(t.TempDir(), "absent.env")) })
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestParseEnv_PanicsOnMalformedEnvFile(t *testing.T) {
	clearEnv(t)

	envFile := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("DAILYDIET_ADDR=\":5000\nDAILYDIET_LOG_LEVEL=debug\n"), 0o600))

	cfg := &Config{}
	cfg.LoadDefaults()
	assert.Panics(t, func() { parseEnv(cfg, envFile) })
}
