package config

import (
	"os"
	"strconv"
	"time"

	"github.com/dmitrijs2005/dailydiet/internal/flagx"
	"github.com/joho/godotenv"
)

// Environment variables understood by parseEnv.
const (
	EnvAddr            = "DAILYDIET_ADDR"
	EnvDatabaseDSN     = "DAILYDIET_DATABASE_DSN"
	EnvLogLevel        = "DAILYDIET_LOG_LEVEL"
	EnvCookieSecure    = "DAILYDIET_COOKIE_SECURE"
	EnvCORSOrigins     = "DAILYDIET_CORS_ORIGINS"
	EnvShutdownTimeout = "DAILYDIET_SHUTDOWN_TIMEOUT"
)

// parseEnv overlays config with DAILYDIET_* variables. If envFile exists it is
// loaded first; variables already present in the process environment win.
// Malformed boolean or duration values are ignored; a malformed envFile
// panics, like an invalid JSON config.
func parseEnv(config *Config, envFile string) {
	if envFile != "" {
		if _, err := os.Stat(envFile); err == nil {
			if err := godotenv.Load(envFile); err != nil {
				panic(err)
			}
		}
	}

	if v, ok := os.LookupEnv(EnvAddr); ok && v != "" {
		config.EndpointAddrHTTP = v
	}
	if v, ok := os.LookupEnv(EnvDatabaseDSN); ok && v != "" {
		config.DatabaseDSN = v
	}
	if v, ok := os.LookupEnv(EnvLogLevel); ok && v != "" {
		config.LogLevel = v
	}
	if v, ok := os.LookupEnv(EnvCookieSecure); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			config.CookieSecure = b
		}
	}
	if v, ok := os.LookupEnv(EnvCORSOrigins); ok {
		config.CORSAllowedOrigins = flagx.SplitList(v)
	}
	if v, ok := os.LookupEnv(EnvShutdownTimeout); ok {
		if d, err := time.ParseDuration(v); err == nil {
			config.ShutdownTimeout = d
		}
	}
}
