package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
)

func TestDefaultsAreValid(t *testing.T) {
	t.Parallel()

	cfg := Defaults()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 100, cfg.API.ServerPageSize)
	assert.Equal(t, 10, cfg.View.PageSize)
}

func TestLoad(t *testing.T) {
	t.Parallel()

	t.Run("missing file yields defaults", func(t *testing.T) {
		t.Parallel()
		cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		require.NoError(t, err)
		assert.Equal(t, Defaults(), cfg)
	})

	t.Run("empty path yields defaults", func(t *testing.T) {
		t.Parallel()
		cfg, err := Load("")
		require.NoError(t, err)
		assert.Equal(t, Defaults(), cfg)
	})

	t.Run("file overrides defaults", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte(`
api:
  base-url: https://lb.example.com/api/v1
  timeout: 3s
view:
  page-size: 20
  demo: true
log:
  level: debug
`), 0o600))

		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "https://lb.example.com/api/v1", cfg.API.BaseURL)
		assert.Equal(t, 3*time.Second, cfg.API.Timeout)
		assert.Equal(t, 20, cfg.View.PageSize)
		assert.True(t, cfg.View.Demo)
		assert.Equal(t, "debug", cfg.Log.Level)
		// untouched keys keep their defaults
		assert.Equal(t, 100, cfg.API.ServerPageSize)
		require.NoError(t, cfg.Validate())
	})

	t.Run("malformed yaml fails", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("api: [unclosed"), 0o600))
		_, err := Load(path)
		assert.Error(t, err)
	})
}

func TestSaveRoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := Defaults()
	cfg.API.BaseURL = "https://saved.example.com"
	require.NoError(t, Save(cfg, path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestValidateCollectsAllErrors(t *testing.T) {
	t.Parallel()

	cfg := Defaults()
	cfg.API.BaseURL = "not a url"
	cfg.View.PageSize = 0
	cfg.Log.Level = "loud"

	err := cfg.Validate()
	require.Error(t, err)
	errs := multierr.Errors(err)
	assert.Len(t, errs, 3)
	assert.Contains(t, err.Error(), "BaseURL")
	assert.Contains(t, err.Error(), "PageSize")
	assert.Contains(t, err.Error(), "Level")
}

func TestValidateServerPageCoversViewPage(t *testing.T) {
	t.Parallel()

	cfg := Defaults()
	cfg.API.ServerPageSize = 5
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "server-page-size")
}

//nolint:paralleltest // mutates process environment
func TestApplyEnvironment(t *testing.T) {
	t.Setenv(EnvAPIURL, " https://env.example.com/api/v1 ")
	t.Setenv(EnvLogLevel, "DEBUG")
	t.Setenv(EnvLogFile, "/tmp/lb.log")
	t.Setenv(EnvRateLimit, "2.5")
	t.Setenv(EnvNoColor, "")

	cfg := Defaults()
	ApplyEnvironment(cfg)

	assert.Equal(t, "https://env.example.com/api/v1", cfg.API.BaseURL)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "/tmp/lb.log", cfg.Log.FileName)
	assert.InDelta(t, 2.5, cfg.API.RateLimit, 1e-9)
	assert.Equal(t, "never", cfg.View.Color)
}

//nolint:paralleltest // mutates process environment
func TestApplyEnvironmentIgnoresBadRate(t *testing.T) {
	t.Setenv(EnvRateLimit, "fast")

	cfg := Defaults()
	ApplyEnvironment(cfg)
	assert.InDelta(t, 5.0, cfg.API.RateLimit, 1e-9)
}

func TestNewLogger(t *testing.T) {
	t.Parallel()

	t.Run("no file is a no-op logger", func(t *testing.T) {
		t.Parallel()
		logger, err := NewLogger(LogConfig{Level: "info"})
		require.NoError(t, err)
		assert.NotNil(t, logger)
	})

	t.Run("writes to the configured file", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "logs", "lb.log")
		logger, err := NewLogger(LogConfig{Level: "debug", FileName: path, MaxSize: 1})
		require.NoError(t, err)

		logger.Info("hello")
		_ = logger.Sync()

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(data), `"msg":"hello"`)
		assert.Contains(t, string(data), `"service":"leaderboard-tui"`)
	})

	t.Run("rejects unknown level", func(t *testing.T) {
		t.Parallel()
		_, err := NewLogger(LogConfig{Level: "loud", FileName: filepath.Join(t.TempDir(), "x.log")})
		assert.Error(t, err)
	})
}
