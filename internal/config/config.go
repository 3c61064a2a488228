// Package config loads shared settings for every binary in this module
// from an optional .env file, environment variables, and CLI flag
// defaults, in that layering order.
package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds the settings every binary (CLI, server, lambda adapter)
// may need. The batch CLI itself only ever reads TargetCreditsPerTerm
// and CacheDir; the rest exist for the optional server/lambda binaries.
type Config struct {
	TargetCreditsPerTerm float64
	CacheDir             string

	DatabaseURL string
	RedisURL    string
	JWTSecret   string
	ClientID    string
	// APIKey is the raw, pre-hash secret a client must present; it is
	// bcrypt-hashed once at server startup, never stored in the clear.
	APIKey string

	Addr string
}

// Load reads a .env file if present, then layers environment variables
// over documented defaults.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		TargetCreditsPerTerm: getEnvFloat("CURRICULARACE_TARGET_CREDITS", 15),
		CacheDir:             getEnv("CURRICULARACE_CACHE_DIR", ""),
		DatabaseURL:          getEnv("DATABASE_URL", "postgres://localhost:5432/curricularace?sslmode=disable"),
		RedisURL:             getEnv("REDIS_URL", "redis://localhost:6379"),
		JWTSecret:            getEnv("JWT_SECRET", ""),
		ClientID:             getEnv("CURRICULARACE_CLIENT_ID", "default"),
		APIKey:               getEnv("CURRICULARACE_API_KEY", ""),
		Addr:                 getEnv("CURRICULARACE_ADDR", ":8090"),
	}
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if v, ok := os.LookupEnv(key); ok {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}
