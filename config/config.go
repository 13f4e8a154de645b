// Package config loads service configuration from the environment, with an
// optional .env file for local development.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// DefaultBaseURL is the Montana cadastral portal's property-details
// endpoint; the geocode is appended as the query value.
const DefaultBaseURL = "https://svc.mt.gov/msl/cadastral/?page=PropertyDetails&geocode="

// Fetch modes.
const (
	ModeBrowser = "browser"
	ModeHTTP    = "http"
)

type Config struct {
	Port                string
	LogLevel            string
	FetchMode           string // "browser" (headless Chrome) or "http" (plain GET)
	BaseURL             string
	NavTimeout          time.Duration
	EnableKnownFallback bool // answer known parcels from the static table as a last resort
}

// Load reads configuration from the environment. A missing .env file is not
// an error.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		slog.Debug(".env file not found, using environment variables and defaults")
	}

	cfg := &Config{
		Port:                getEnv("PORT", "5000"),
		LogLevel:            getEnv("LOG_LEVEL", "info"),
		FetchMode:           getEnv("FETCH_MODE", ModeBrowser),
		BaseURL:             getEnv("CADASTRAL_BASE_URL", DefaultBaseURL),
		NavTimeout:          time.Duration(getEnvInt("NAV_TIMEOUT_SECONDS", 45)) * time.Second,
		EnableKnownFallback: getEnvBool("ENABLE_KNOWN_FALLBACK", false),
	}

	if cfg.FetchMode != ModeBrowser && cfg.FetchMode != ModeHTTP {
		slog.Warn("invalid FETCH_MODE, falling back to browser", slog.String("value", cfg.FetchMode))
		cfg.FetchMode = ModeBrowser
	}

	return cfg
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		var intValue int
		if _, err := fmt.Sscanf(value, "%d", &intValue); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		return value == "true" || value == "1" || value == "yes"
	}
	return defaultValue
}
