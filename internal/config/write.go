package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/idilsaglam/gacha/internal/errors"
	"gopkg.in/yaml.v3"
)

// Marshal renders cfg as YAML.
func Marshal(cfg *Config) ([]byte, error) {
	return yaml.Marshal(cfg)
}

// WriteDefault writes the default config to path. It refuses to
// overwrite an existing file unless force is set.
func WriteDefault(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return errors.New(errors.ErrConfig,
				fmt.Sprintf("%s already exists", path),
				"Use --force to overwrite it")
		}
	}
	b, err := Marshal(DefaultConfig())
	if err != nil {
		return fmt.Errorf("yaml marshal: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig, "Cannot create config directory", "")
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig, "Cannot write config file", "Check directory permissions")
	}
	return nil
}
