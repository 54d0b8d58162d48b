package app

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Issuer       string // Required: issuer claim for admin session tokens
	AdminKeyHash string // Required: argon2id PHC hash of the shared admin key
	JWTSecret    string // Required: HS256 secret for admin session tokens (min 32 bytes)

	DatabaseFile         string        // Optional: path to SQLite database file (default: ./keyward.db)
	SessionTTL           time.Duration // Optional: admin session lifetime (default: 1h)
	Env                  string        // Environment (dev, staging, prod) (default: dev)
	LogLevel             string        // Log level (debug, info, warn, error) (default: info)
	LogFormat            string        // Log format (json, text) (default: json)
	Port                 int           // HTTP server port (default: 8080)
	ShutdownGracePeriod  time.Duration // Graceful shutdown timeout (default: 10s)
	HousekeepingInterval time.Duration // Housekeeping interval (default: 1h)
}

func LoadConfig() Config {
	cfg := Config{
		Issuer:               getEnvOrDefault("LICENSE_ISSUER", "keyward"),
		AdminKeyHash:         os.Getenv("LICENSE_ADMIN_KEY_HASH"),
		JWTSecret:            os.Getenv("LICENSE_JWT_SECRET"),
		DatabaseFile:         getEnvOrDefault("LICENSE_DATABASE_FILE", "keyward.db"),
		SessionTTL:           getEnvDurationOrDefault("LICENSE_SESSION_TTL", 1*time.Hour),
		Env:                  getEnvOrDefault("ENV", "dev"),
		LogLevel:             getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:            getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                 getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod:  getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
		HousekeepingInterval: getEnvDurationOrDefault("HOUSEKEEPING_INTERVAL", 1*time.Hour),
	}

	return cfg
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// Try parsing as duration (e.g., "1h", "30m", "90s")
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Try parsing as integer minutes (for backwards compatibility)
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}
