package store

import (
	"path/filepath"

	"github.com/idilsaglam/gacha/internal/config"
	"github.com/idilsaglam/gacha/internal/errors"
	"github.com/idilsaglam/gacha/internal/store/jsonstore"
	"github.com/idilsaglam/gacha/internal/store/sqlitestore"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// Open builds the store described by cfg on the OS filesystem.
func Open(cfg *config.Config, logger *zap.Logger) (*Store, error) {
	return OpenFs(afero.NewOsFs(), cfg, logger)
}

// OpenFs is Open on an explicit filesystem. The sqlite backend always
// uses the OS filesystem.
func OpenFs(fs afero.Fs, cfg *config.Config, logger *zap.Logger) (*Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	var slot Slot
	switch cfg.Storage.Backend {
	case config.BackendSQLite:
		s, err := sqlitestore.Open(filepath.Join(cfg.Storage.Dir, sqlitestore.DBFileName), cfg.Storage.Key)
		if err != nil {
			return nil, errors.WrapWithCode(err, errors.ErrStorage,
				"Cannot open topic database",
				"Check storage.dir is writable")
		}
		slot = s
	default:
		slot = jsonstore.New(fs, cfg.Storage.Dir, cfg.Storage.Key, logger)
	}

	opts := []Option{WithLogger(logger)}
	if cfg.Storage.DefaultsFile != "" {
		defs, err := LoadDefaultsFile(fs, cfg.Storage.DefaultsFile)
		if err != nil {
			if c, ok := slot.(interface{ Close() error }); ok {
				c.Close()
			}
			return nil, err
		}
		opts = append(opts, WithDefaults(defs))
	}
	if cfg.Export.Enabled {
		opts = append(opts, WithExporter(NewFileExporter(fs, cfg.ExportDir(), cfg.Export.FileName)))
	}
	return New(slot, opts...), nil
}
