// Package config loads process-wide settings from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Defaults applied when the environment leaves a value unset.
const (
	// DefaultToken matches the fixture sentinel: an unconfigured process
	// serves demo data instead of calling GitHub.
	DefaultToken  = "demo"
	DefaultAPIURL = "https://api.github.com"
	DefaultPort   = 8000
)

// Config holds the adapter's settings. The token is read once at startup
// and is read-only afterwards; individual calls may override it with an
// api_key argument.
type Config struct {
	GitHubToken  string
	GitHubAPIURL string
	Port         int
}

// Load reads configuration from the environment after a best-effort load
// of a local .env file.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		GitHubToken:  getEnv("GITHUB_TOKEN", DefaultToken),
		GitHubAPIURL: getEnv("GITHUB_API_URL", DefaultAPIURL),
		Port:         DefaultPort,
	}

	if port := os.Getenv("PORT"); port != "" {
		p, err := strconv.Atoi(port)
		if err != nil {
			return nil, fmt.Errorf("invalid PORT %q: %w", port, err)
		}
		cfg.Port = p
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
