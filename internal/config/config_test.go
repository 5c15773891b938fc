package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	t.Setenv("ALCHEMIST_BASE_URL", "")
	t.Setenv("ALCHEMIST_TOKEN", "")

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:3001/api", cfg.API.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.ShortTimeout())
	assert.Equal(t, 30*time.Second, cfg.DefaultTimeout())
	assert.Equal(t, 120*time.Second, cfg.LongTimeout())
	assert.Contains(t, cfg.Notifications.QuietPaths, "/upload/status")
}

func TestLoad_FileValues(t *testing.T) {
	t.Setenv("ALCHEMIST_BASE_URL", "")
	t.Setenv("ALCHEMIST_TOKEN", "")

	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte(`
api:
  base_url: https://alchemist.example.com/api
  token: file-token
  long_timeout: 90s
`)
	require.NoError(t, os.WriteFile(path, data, 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "https://alchemist.example.com/api", cfg.API.BaseURL)
	assert.Equal(t, "file-token", cfg.API.Token)
	assert.Equal(t, 90*time.Second, cfg.LongTimeout())
	// Unset fields keep defaults.
	assert.Equal(t, 30*time.Second, cfg.DefaultTimeout())
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Run("env beats file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("api:\n  token: file-token\n"), 0o600))

		t.Setenv("ALCHEMIST_TOKEN", "env-token")
		t.Setenv("ALCHEMIST_BASE_URL", "http://env:9000")

		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "env-token", cfg.API.Token)
		assert.Equal(t, "http://env:9000", cfg.API.BaseURL)
	})

	t.Run("empty env does not override", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("api:\n  token: file-token\n"), 0o600))

		t.Setenv("ALCHEMIST_TOKEN", "")

		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "file-token", cfg.API.Token)
	})
}

func TestParseTimeout_Invalid(t *testing.T) {
	cfg := DefaultConfig()
	cfg.API.DefaultTimeout = "not-a-duration"
	assert.Equal(t, 30*time.Second, cfg.DefaultTimeout())

	cfg.API.DefaultTimeout = "-5s"
	assert.Equal(t, 30*time.Second, cfg.DefaultTimeout())
}

func TestSaveRoundTrip(t *testing.T) {
	t.Setenv("ALCHEMIST_BASE_URL", "")
	t.Setenv("ALCHEMIST_TOKEN", "")

	path := filepath.Join(t.TempDir(), "sub", "config.yaml")
	cfg := DefaultConfig()
	cfg.API.Token = "saved-token"
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "saved-token", loaded.API.Token)
}

func TestValidate(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())

	cfg.API.BaseURL = ""
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.Output.PageLimit = 0
	assert.Error(t, cfg.Validate())
}
