package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/idilsaglam/gacha/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, BackendFile, cfg.Storage.Backend)
	assert.Equal(t, "topics", cfg.Storage.Key)
	assert.Equal(t, 500*time.Millisecond, cfg.Sync.PollInterval)
	assert.True(t, cfg.Sync.Notify)
	assert.Equal(t, time.Second, cfg.Draw.Delay)
	assert.Equal(t, 3*time.Second, cfg.Draw.Celebration)
	assert.True(t, cfg.Export.Enabled)
	assert.Equal(t, "topics.json", cfg.Export.FileName)
	assert.NotContains(t, cfg.Storage.Dir, "~", "home should be expanded")
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, `
storage:
  backend: sqlite
  dir: `+dir+`
  key: prompts
sync:
  poll_interval: 2s
draw:
  delay: 250ms
export:
  enabled: false
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, BackendSQLite, cfg.Storage.Backend)
	assert.Equal(t, dir, cfg.Storage.Dir)
	assert.Equal(t, "prompts", cfg.Storage.Key)
	assert.Equal(t, 2*time.Second, cfg.Sync.PollInterval)
	assert.Equal(t, 250*time.Millisecond, cfg.Draw.Delay)
	assert.Equal(t, 3*time.Second, cfg.Draw.Celebration, "unset keys keep defaults")
	assert.False(t, cfg.Export.Enabled)
	assert.Equal(t, filepath.Join(dir, "export"), cfg.ExportDir())
	assert.Equal(t, filepath.Join(dir, "gacha.log"), cfg.LogFile())
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("GACHA_STORAGE_BACKEND", "sqlite")
	t.Setenv("GACHA_DRAW_DELAY", "10ms")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, BackendSQLite, cfg.Storage.Backend)
	assert.Equal(t, 10*time.Millisecond, cfg.Draw.Delay)
}

func TestLoadInvalidYAML(t *testing.T) {
	path := writeConfig(t, "storage: [unclosed")
	_, err := Load(path)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrConfig))
}

func TestFindExplicitMissing(t *testing.T) {
	_, err := Find(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrConfig))
}

func TestFindExplicit(t *testing.T) {
	path := writeConfig(t, "ui:\n  theme: neon\n")
	found, err := Find(path)
	require.NoError(t, err)
	assert.Equal(t, path, found)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"unknown backend", func(c *Config) { c.Storage.Backend = "redis" }},
		{"empty key", func(c *Config) { c.Storage.Key = "  " }},
		{"key with separator", func(c *Config) { c.Storage.Key = "a/b" }},
		{"zero poll interval", func(c *Config) { c.Sync.PollInterval = 0 }},
		{"negative delay", func(c *Config) { c.Draw.Delay = -time.Second }},
		{"export name with dir", func(c *Config) { c.Export.FileName = "../x.json" }},
		{"empty export name", func(c *Config) { c.Export.FileName = "" }},
		{"bad color", func(c *Config) { c.UI.Color = "rainbow" }},
	}

	require.NoError(t, Validate(DefaultConfig()))

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := Validate(cfg)
			require.Error(t, err)
			assert.True(t, errors.IsCode(err, errors.ErrConfig))
		})
	}
}

func TestWriteDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", ConfigFileName)

	require.NoError(t, WriteDefault(path, false))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().Draw.Delay, cfg.Draw.Delay)

	err = WriteDefault(path, false)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrConfig))

	assert.NoError(t, WriteDefault(path, true))
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, "x"), ExpandHome("~/x"))
	assert.Equal(t, "/abs", ExpandHome("/abs"))
	assert.Equal(t, "", ExpandHome(""))
	assert.Equal(t, "~user/x", ExpandHome("~user/x"))
}
