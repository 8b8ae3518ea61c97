package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the storefront core's runtime configuration.
type Config struct {
	APIBaseURL  string // remote storefront backend
	Hostname    string // network origin, drives the dev identity fallback
	DataDir     string // base dir of the file-backed durable store
	RedisURL    string // optional redis backend
	MongoURI    string // optional mongo backend
	HTTPTimeout time.Duration
	Environment string
	LogLevel    string
}

// Load reads configuration from a .env file (when present) and the
// environment. Every value has a default so the core runs with no
// configuration at all.
func Load() Config {
	// A missing .env file is fine; env vars still apply.
	_ = godotenv.Load()

	return Config{
		APIBaseURL:  GetEnv("API_BASE_URL", "http://localhost:8000"),
		Hostname:    GetEnv("APP_HOSTNAME", "localhost"),
		DataDir:     GetEnv("DATA_DIR", ".shopfront"),
		RedisURL:    GetEnv("REDIS_URL", ""),
		MongoURI:    GetEnv("MONGO_URI", ""),
		HTTPTimeout: getDuration("HTTP_TIMEOUT", 30*time.Second),
		Environment: GetEnv("ENVIRONMENT", "development"),
		LogLevel:    GetEnv("LOG_LEVEL", "info"),
	}
}

// GetEnv returns the variable's value or the fallback when unset.
func GetEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}
