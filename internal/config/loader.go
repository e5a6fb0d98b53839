package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/idilsaglam/gacha/internal/errors"
	"github.com/spf13/viper"
)

const (
	// ConfigFileName is the project-local config file name.
	ConfigFileName = ".gacha.yaml"
	// GlobalConfigDir is the directory for the global config, relative to home.
	GlobalConfigDir = ".config/gacha"
	// GlobalConfigFile is the global config file name.
	GlobalConfigFile = "config.yaml"
	// EnvPrefix prefixes environment overrides, e.g. GACHA_STORAGE_BACKEND.
	EnvPrefix = "GACHA"
)

// Find locates the config file:
// 1. explicit path (from --config)
// 2. .gacha.yaml in the current directory
// 3. ~/.config/gacha/config.yaml
//
// Returns "" when nothing is found.
func Find(explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			if os.IsNotExist(err) {
				return "", errors.WrapWithCode(err, errors.ErrConfig,
					"Specified config file not found: "+explicit,
					"Check the path is correct")
			}
			return "", errors.WrapWithCode(err, errors.ErrConfig,
				"Cannot access config file: "+explicit,
				"Check file permissions")
		}
		return explicit, nil
	}

	if cwd, err := os.Getwd(); err == nil {
		local := filepath.Join(cwd, ConfigFileName)
		if _, err := os.Stat(local); err == nil {
			return local, nil
		}
	}

	if home, err := os.UserHomeDir(); err == nil {
		global := filepath.Join(home, GlobalConfigDir, GlobalConfigFile)
		if _, err := os.Stat(global); err == nil {
			return global, nil
		}
	}
	return "", nil
}

// Load reads config from path. An empty path yields the defaults with
// environment overrides applied.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			if os.IsNotExist(err) {
				return nil, errors.WrapWithCode(err, errors.ErrConfig,
					"Config file not found",
					"Run 'gacha config init' to create one, or specify one with --config")
			}
			return nil, errors.WrapWithCode(err, errors.ErrConfig,
				"Failed to read config file",
				"Check the file exists and is valid YAML")
		}
	}

	cfg := DefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Invalid config format",
			"Check the YAML syntax in "+path)
	}

	cfg.Storage.Dir = ExpandHome(cfg.Storage.Dir)
	cfg.Storage.DefaultsFile = ExpandHome(cfg.Storage.DefaultsFile)
	cfg.Export.Dir = ExpandHome(cfg.Export.Dir)
	cfg.Log.File = ExpandHome(cfg.Log.File)

	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadOrDefault finds and loads the config, honoring an explicit path.
func LoadOrDefault(explicit string) (*Config, error) {
	path, err := Find(explicit)
	if err != nil {
		return nil, err
	}
	return Load(path)
}

// setDefaults registers every key so AutomaticEnv can override keys the
// file does not mention.
func setDefaults(v *viper.Viper) {
	d := DefaultConfig()
	v.SetDefault("storage.backend", d.Storage.Backend)
	v.SetDefault("storage.dir", d.Storage.Dir)
	v.SetDefault("storage.key", d.Storage.Key)
	v.SetDefault("storage.defaults_file", d.Storage.DefaultsFile)
	v.SetDefault("sync.poll_interval", d.Sync.PollInterval.String())
	v.SetDefault("sync.notify", d.Sync.Notify)
	v.SetDefault("draw.delay", d.Draw.Delay.String())
	v.SetDefault("draw.celebration", d.Draw.Celebration.String())
	v.SetDefault("export.enabled", d.Export.Enabled)
	v.SetDefault("export.dir", d.Export.Dir)
	v.SetDefault("export.file_name", d.Export.FileName)
	v.SetDefault("ui.theme", d.UI.Theme)
	v.SetDefault("ui.color", d.UI.Color)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.file", d.Log.File)
}
