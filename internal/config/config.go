// Package config loads settings from the environment. A .env file in the
// working directory (or its parent) is read first when present.
package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds every setting used by the server, the migrate tool and the CLI.
type Config struct {
	// DatabaseURL selects PostgreSQL. Empty means the in-memory repository.
	DatabaseURL        string
	ServerAddr         string
	FrontendURL        string
	UploadDir          string
	RateLimitPerMinute int

	ContactsAPIURL   string
	ContactsPageSize int

	LogLevel  string
	LogFormat string
}

// Load reads .env files (missing files are ignored) and then the environment.
func Load() *Config {
	_ = godotenv.Load()
	_ = godotenv.Load("../.env")

	return &Config{
		DatabaseURL:        os.Getenv("DATABASE_URL"),
		ServerAddr:         getEnv("SERVER_ADDR", ":9000"),
		FrontendURL:        getEnv("FRONTEND_URL", "http://localhost:3000"),
		UploadDir:          getEnv("UPLOAD_DIR", "./uploads"),
		RateLimitPerMinute: getEnvInt("RATE_LIMIT_PER_MINUTE", 300),
		ContactsAPIURL:     getEnv("CONTACTS_API_URL", "http://localhost:9000/api/users"),
		ContactsPageSize:   getEnvInt("CONTACTS_PAGE_SIZE", 6),
		LogLevel:           getEnv("LOG_LEVEL", "INFO"),
		LogFormat:          getEnv("LOG_FORMAT", "json"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
