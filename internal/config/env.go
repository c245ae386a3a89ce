package config

import (
	"os"
	"strconv"
	"strings"
)

// Environment variable names.
const (
	EnvAPIURL    = "LEADERBOARD_API_URL"
	EnvLogLevel  = "LEADERBOARD_LOG_LEVEL"
	EnvLogFile   = "LEADERBOARD_LOG_FILE"
	EnvRateLimit = "LEADERBOARD_RATE_LIMIT"
	EnvNoColor   = "NO_COLOR"
)

// ApplyEnvironment applies environment variable overrides to the configuration.
func ApplyEnvironment(cfg *Config) {
	if v := os.Getenv(EnvAPIURL); v != "" {
		cfg.API.BaseURL = strings.TrimSpace(v)
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.Log.Level = strings.ToLower(strings.TrimSpace(v))
	}
	if v := os.Getenv(EnvLogFile); v != "" {
		cfg.Log.FileName = v
	}
	if v := os.Getenv(EnvRateLimit); v != "" {
		if r, err := strconv.ParseFloat(v, 64); err == nil && r >= 0 {
			cfg.API.RateLimit = r
		}
	}
	// NO_COLOR disables colored output
	if _, ok := os.LookupEnv(EnvNoColor); ok {
		cfg.View.Color = "never"
	}
}
