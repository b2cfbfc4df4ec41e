package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	// Storage
	StorageType   string // "mongo", "postgres" or "sqlite"
	MongoURI      string
	MongoDatabase string
	PostgresURL   string
	SQLitePath    string

	// Dashboard gate
	DashboardPassword string
	SessionTTLMinutes int

	// API Server
	APIPort string
	APIHost string

	// CLI
	APIEndpoint string
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	return &Config{
		StorageType:       getEnv("STORAGE_TYPE", "mongo"),
		MongoURI:          getEnv("MONGODB_URI", ""),
		MongoDatabase:     getEnv("MONGODB_DATABASE", "github_trends"),
		PostgresURL:       getEnv("POSTGRES_URL", ""),
		SQLitePath:        getEnv("SQLITE_PATH", "./trends.db"),
		DashboardPassword: getEnv("DASHBOARD_PASSWORD", ""),
		SessionTTLMinutes: getEnvInt("SESSION_TTL_MINUTES", 60),
		APIPort:           getEnv("API_PORT", "8080"),
		APIHost:           getEnv("API_HOST", "localhost"),
		APIEndpoint:       getEnv("API_ENDPOINT", "http://localhost:8080"),
	}, nil
}

// getEnv returns the value of an environment variable or a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt returns an integer environment variable or a default value
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil && n > 0 {
			return n
		}
	}
	return defaultValue
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.DashboardPassword == "" {
		return &ConfigError{Field: "DASHBOARD_PASSWORD", Message: "dashboard password is required"}
	}
	if c.StorageType != "mongo" && c.StorageType != "postgres" && c.StorageType != "sqlite" {
		return &ConfigError{Field: "STORAGE_TYPE", Message: "must be 'mongo', 'postgres' or 'sqlite'"}
	}
	if c.StorageType == "mongo" && c.MongoURI == "" {
		return &ConfigError{Field: "MONGODB_URI", Message: "MongoDB URI is required when STORAGE_TYPE is 'mongo'"}
	}
	if c.StorageType == "postgres" && c.PostgresURL == "" {
		return &ConfigError{Field: "POSTGRES_URL", Message: "PostgreSQL URL is required when STORAGE_TYPE is 'postgres'"}
	}
	return nil
}

// ConfigError represents a configuration error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Field + ": " + e.Message
}
