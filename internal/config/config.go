// Package config loads and validates the leaderboard client configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration.
type Config struct {
	API  APIConfig  `yaml:"api"`
	View ViewConfig `yaml:"view"`
	Log  LogConfig  `yaml:"log"`
}

// APIConfig defines how the backend is reached.
type APIConfig struct {
	BaseURL        string        `yaml:"base-url" validate:"required,url"`
	Timeout        time.Duration `yaml:"timeout" validate:"gt=0"`
	RateLimit      float64       `yaml:"rate-limit" validate:"gte=0"`
	RateBurst      int           `yaml:"rate-burst" validate:"gte=1"`
	ServerPageSize int           `yaml:"server-page-size" validate:"min=1,max=1000"`
}

// ViewConfig defines terminal rendering options.
type ViewConfig struct {
	PageSize    int    `yaml:"page-size" validate:"min=1,max=100"`
	AltScreen   bool   `yaml:"alt-screen"`
	LogScale    bool   `yaml:"log-scale"`
	Stats       bool   `yaml:"stats"`
	StatsWindow int    `yaml:"stats-window" validate:"min=1"`
	ViewSplit   int    `yaml:"view-split" validate:"min=20,max=80"`
	MostActive  int    `yaml:"most-active" validate:"gte=0"`
	Color       string `yaml:"color" validate:"oneof=auto always never"`
	Demo        bool   `yaml:"demo"`
}

// LogConfig defines the rotating log file.
type LogConfig struct {
	Level      string `yaml:"level" validate:"oneof=debug info warn error"`
	FileName   string `yaml:"file-name"`
	MaxSize    int    `yaml:"max-size" validate:"gte=0"`
	MaxBackups int    `yaml:"max-backups" validate:"gte=0"`
	MaxAge     int    `yaml:"max-age" validate:"gte=0"`
	Compress   bool   `yaml:"compress"`
	LocalTime  bool   `yaml:"local-time"`
}

// Defaults returns the built-in configuration.
func Defaults() *Config {
	return &Config{
		API: APIConfig{
			BaseURL:        "http://localhost:3000/api/v1",
			Timeout:        15 * time.Second,
			RateLimit:      5,
			RateBurst:      5,
			ServerPageSize: 100,
		},
		View: ViewConfig{
			PageSize:    10,
			AltScreen:   true,
			Stats:       true,
			StatsWindow: 64,
			ViewSplit:   55,
			MostActive:  3,
			Color:       "auto",
		},
		Log: LogConfig{
			Level:      "info",
			MaxSize:    10,
			MaxBackups: 3,
			MaxAge:     28,
		},
	}
}

// DefaultPath returns the default config file location.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return filepath.Join(".leaderboard-tui", "config.yaml")
	}
	return filepath.Join(dir, "leaderboard-tui", "config.yaml")
}

// Load reads configuration from path on top of the defaults. A missing file
// is not an error.
func Load(path string) (*Config, error) {
	cfg := Defaults()
	if path == "" {
		return cfg, nil
	}
	// #nosec G304 -- config file path comes from the user
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes cfg to path, creating parent directories.
func Save(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

var validate = validator.New()

// Validate reports every invalid field at once.
func (c *Config) Validate() error {
	var errs error
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return err
		}
		for _, fe := range verrs {
			errs = multierr.Append(errs, fmt.Errorf("%s: failed %q (value %v)", fe.Namespace(), fe.Tag(), fe.Value()))
		}
	}
	if c.API.ServerPageSize < c.View.PageSize {
		errs = multierr.Append(errs, fmt.Errorf("api.server-page-size (%d) must be at least view.page-size (%d)", c.API.ServerPageSize, c.View.PageSize))
	}
	return errs
}
