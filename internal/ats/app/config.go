package app

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	TokenSecret string // Required: HMAC secret for access tokens
	Issuer      string // Optional: issuer claim for tokens (default: talentpipe)

	DatabaseFile         string        // Optional: path to SQLite database file (default: ./talentpipe.db)
	Env                  string        // Environment (dev, staging, prod) (default: dev)
	LogLevel             string        // Log level (debug, info, warn, error) (default: info)
	LogFormat            string        // Log format (json, text) (default: json)
	Port                 int           // HTTP server port (default: 8080)
	ShutdownGracePeriod  time.Duration // Graceful shutdown timeout (default: 10s)
	AccessTokenTTL       time.Duration // Access token lifetime (default: 1h)
	HousekeepingInterval time.Duration // Housekeeping interval (default: 1h)
	DeletedRetention     time.Duration // How long soft-deleted rows are kept (default: 30 days)
}

func LoadConfig() Config {
	// A local .env is a development convenience; missing files are fine.
	_ = godotenv.Load()

	return Config{
		TokenSecret:          os.Getenv("TP_TOKEN_SECRET"),
		Issuer:               getEnvOrDefault("TP_ISSUER", "talentpipe"),
		DatabaseFile:         getEnvOrDefault("TP_DATABASE_FILE", "talentpipe.db"),
		Env:                  getEnvOrDefault("ENV", "dev"),
		LogLevel:             getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:            getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                 getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod:  getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
		AccessTokenTTL:       getEnvDurationOrDefault("TP_ACCESS_TOKEN_TTL", 1*time.Hour),
		HousekeepingInterval: getEnvDurationOrDefault("TP_HOUSEKEEPING_INTERVAL", 1*time.Hour),
		DeletedRetention:     getEnvDurationOrDefault("TP_DELETED_RETENTION", 30*24*time.Hour),
	}
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

	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	return defaultValue
}
