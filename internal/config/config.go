// Package config loads application configuration from environment
// variables with development defaults.
package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all runtime settings for the sync service.
type Config struct {
	SpannerDB string

	SAPBaseURL  string
	SAPUsername string
	SAPPassword string
	SAPTimeout  time.Duration

	CatalogDBPath string

	HTTPPort string

	Workers   int
	QueueSize int

	LockTTL time.Duration

	// StaleAfter is how long a run may stay in_progress before the reaper
	// fails it.
	StaleAfter time.Duration

	LogLevel string
}

// Load reads the configuration from the environment.
func Load() Config {
	return Config{
		SpannerDB: getEnvOrDefault("SPANNER_DATABASE",
			"projects/test-project/instances/dev-instance/databases/sapsync-db"),

		SAPBaseURL:  getEnvOrDefault("SAP_BASE_URL", "http://localhost:8000/api"),
		SAPUsername: os.Getenv("SAP_USERNAME"),
		SAPPassword: os.Getenv("SAP_PASSWORD"),
		SAPTimeout:  getDurationOrDefault("SAP_TIMEOUT", 30*time.Second),

		CatalogDBPath: getEnvOrDefault("CATALOG_DB_PATH", "catalog.db"),

		HTTPPort: getEnvOrDefault("HTTP_PORT", "8080"),

		Workers:   getIntOrDefault("SYNC_WORKERS", 8),
		QueueSize: getIntOrDefault("SYNC_QUEUE_SIZE", 1024),

		LockTTL:    getDurationOrDefault("SYNC_LOCK_TTL", 600*time.Second),
		StaleAfter: getDurationOrDefault("SYNC_STALE_AFTER", 30*time.Minute),

		LogLevel: getEnvOrDefault("LOG_LEVEL", "info"),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}

func getDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return d
}
