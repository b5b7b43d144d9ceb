package app

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	APIBaseURL      string // Required-ish: marketplace backend base URL (default: http://localhost:8091)
	DatabaseFile    string // Optional: path to SQLite session database file (default: ./console.db)
	OfflineFallback bool   // Optional: serve generated data when the backend is down (default: true)

	APITimeout time.Duration // Optional: per-request timeout for backend calls (default: 10s)

	Env                 string        // Environment (dev, staging, prod) (default: dev)
	LogLevel            string        // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        // Log format (json, text) (default: json)
	Port                int           // HTTP server port (default: 8090)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)
}

func LoadConfig() Config {
	return Config{
		APIBaseURL:          getEnvOrDefault("CONSOLE_API_BASE_URL", "http://localhost:8091"),
		DatabaseFile:        getEnvOrDefault("CONSOLE_DATABASE_FILE", "console.db"),
		OfflineFallback:     getEnvBoolOrDefault("CONSOLE_OFFLINE_FALLBACK", true),
		APITimeout:          getEnvDurationOrDefault("CONSOLE_API_TIMEOUT", 10*time.Second),
		Env:                 getEnvOrDefault("ENV", "dev"),
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                getEnvIntOrDefault("PORT", 8090),
		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
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

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if boolValue, err := strconv.ParseBool(value); err == nil {
		return boolValue
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

	// Try parsing as integer seconds
	if seconds, err := strconv.Atoi(value); err == nil {
		return time.Duration(seconds) * time.Second
	}

	return defaultValue
}
