// Package config loads application configuration from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application.
type Config struct {
	GitHubToken string
	ServerPort  string
	ServerHost  string
	FanoutLimit int
	SeedFile    string
}

// Load reads configuration from a .env file when present, falling back to
// process environment variables. The GitHub token is optional; without it
// requests run unauthenticated against lower rate limits.
func Load() (*Config, error) {
	// The .env file is optional.
	_ = godotenv.Load()

	cfg := &Config{
		GitHubToken: os.Getenv("GITHUB_TOKEN"),
		ServerPort:  getEnv("SERVER_PORT", "8080"),
		ServerHost:  getEnv("SERVER_HOST", "0.0.0.0"),
		FanoutLimit: getEnvAsInt("FANOUT_LIMIT", 10),
		SeedFile:    getEnv("SEED_FILE", ""),
	}
	if cfg.FanoutLimit < 1 {
		return nil, fmt.Errorf("FANOUT_LIMIT must be positive, got %d", cfg.FanoutLimit)
	}
	return cfg, nil
}

// ServerAddress returns the host:port the HTTP server binds to.
func (c *Config) ServerAddress() string {
	return fmt.Sprintf("%s:%s", c.ServerHost, c.ServerPort)
}

// getEnv gets an environment variable with a fallback value.
func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// getEnvAsInt gets an environment variable as integer with a fallback value.
func getEnvAsInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return fallback
}
