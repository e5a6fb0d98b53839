package config

import (
	"fmt"
	"strings"

	"github.com/idilsaglam/gacha/internal/errors"
)

// Validate checks a loaded config for values the app cannot run with.
func Validate(cfg *Config) error {
	switch cfg.Storage.Backend {
	case BackendFile, BackendSQLite:
	default:
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("Unknown storage backend %q", cfg.Storage.Backend),
			"Use 'file' or 'sqlite'")
	}
	if strings.TrimSpace(cfg.Storage.Key) == "" {
		return errors.New(errors.ErrConfig, "storage.key is empty",
			"Set storage.key, e.g. 'topics'")
	}
	if strings.ContainsAny(cfg.Storage.Key, `/\`) {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("storage.key %q contains a path separator", cfg.Storage.Key), "")
	}
	if cfg.Sync.PollInterval <= 0 {
		return errors.New(errors.ErrConfig, "sync.poll_interval must be positive",
			"Use a duration like '500ms'")
	}
	if cfg.Draw.Delay < 0 || cfg.Draw.Celebration < 0 {
		return errors.New(errors.ErrConfig, "draw timings cannot be negative", "")
	}
	if cfg.Export.FileName == "" || strings.ContainsAny(cfg.Export.FileName, `/\`) {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("export.file_name %q is not a plain file name", cfg.Export.FileName),
			"Use a name like 'topics.json'")
	}
	switch strings.ToLower(cfg.UI.Color) {
	case "auto", "always", "never":
	default:
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("Unknown ui.color %q", cfg.UI.Color),
			"Use 'auto', 'always' or 'never'")
	}
	return nil
}
