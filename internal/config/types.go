package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Storage backends.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// Config is the complete gacha configuration.
type Config struct {
	Storage StorageConfig `yaml:"storage" mapstructure:"storage"`
	Sync    SyncConfig    `yaml:"sync" mapstructure:"sync"`
	Draw    DrawConfig    `yaml:"draw" mapstructure:"draw"`
	Export  ExportConfig  `yaml:"export" mapstructure:"export"`
	UI      UIConfig      `yaml:"ui" mapstructure:"ui"`
	Log     LogConfig     `yaml:"log" mapstructure:"log"`
}

// StorageConfig selects and locates the durable slot.
type StorageConfig struct {
	// Backend is "file" (one JSON file per key) or "sqlite".
	Backend string `yaml:"backend" mapstructure:"backend"`

	// Dir holds the slot files, the sqlite database and, by default, logs and exports.
	Dir string `yaml:"dir" mapstructure:"dir"`

	// Key names the slot the topic list lives under.
	Key string `yaml:"key" mapstructure:"key"`

	// DefaultsFile replaces the bundled default list when set.
	DefaultsFile string `yaml:"defaults_file" mapstructure:"defaults_file"`
}

// SyncConfig controls how readers pick up changes made elsewhere.
type SyncConfig struct {
	PollInterval time.Duration `yaml:"poll_interval" mapstructure:"poll_interval"`

	// Notify enables native change notification when the backend has one.
	Notify bool `yaml:"notify" mapstructure:"notify"`
}

// DrawConfig holds roulette timings.
type DrawConfig struct {
	Delay       time.Duration `yaml:"delay" mapstructure:"delay"`
	Celebration time.Duration `yaml:"celebration" mapstructure:"celebration"`
}

// ExportConfig controls the file written after every successful change.
type ExportConfig struct {
	Enabled  bool   `yaml:"enabled" mapstructure:"enabled"`
	Dir      string `yaml:"dir" mapstructure:"dir"` // empty means <storage.dir>/export
	FileName string `yaml:"file_name" mapstructure:"file_name"`
}

// UIConfig controls terminal output.
type UIConfig struct {
	Theme string `yaml:"theme" mapstructure:"theme"` // classic | neon | mono
	Color string `yaml:"color" mapstructure:"color"` // auto | always | never
}

// LogConfig controls the zap logger.
type LogConfig struct {
	Level string `yaml:"level" mapstructure:"level"`
	File  string `yaml:"file" mapstructure:"file"` // empty means <storage.dir>/gacha.log
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Storage: StorageConfig{
			Backend: BackendFile,
			Dir:     "~/.local/share/gacha",
			Key:     "topics",
		},
		Sync: SyncConfig{
			PollInterval: 500 * time.Millisecond,
			Notify:       true,
		},
		Draw: DrawConfig{
			Delay:       time.Second,
			Celebration: 3 * time.Second,
		},
		Export: ExportConfig{
			Enabled:  true,
			FileName: "topics.json",
		},
		UI: UIConfig{
			Theme: "classic",
			Color: "auto",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// ExportDir resolves the export directory.
func (c *Config) ExportDir() string {
	if c.Export.Dir != "" {
		return c.Export.Dir
	}
	return filepath.Join(c.Storage.Dir, "export")
}

// LogFile resolves the log file path.
func (c *Config) LogFile() string {
	if c.Log.File != "" {
		return c.Log.File
	}
	return filepath.Join(c.Storage.Dir, "gacha.log")
}

// ExpandHome replaces a leading "~" with the user's home directory.
func ExpandHome(p string) string {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, strings.TrimPrefix(p, "~"))
}
