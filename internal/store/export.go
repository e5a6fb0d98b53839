package store

import (
	"context"
	"encoding/json"
	"path/filepath"

	"github.com/idilsaglam/gacha/internal/errors"
	"github.com/idilsaglam/gacha/internal/model"
	"github.com/spf13/afero"
)

// Exporter receives the full list after every successful persist.
type Exporter interface {
	Export(ctx context.Context, list model.TopicList) (path string, err error)
}

// FileExporter writes the list as indented JSON to a fixed file name, so
// the result can be dropped in as the default list of the next build.
type FileExporter struct {
	fs   afero.Fs
	dir  string
	name string
}

// NewFileExporter creates an exporter writing <dir>/<name>. A nil fs means
// the OS filesystem.
func NewFileExporter(fs afero.Fs, dir, name string) *FileExporter {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &FileExporter{fs: fs, dir: dir, name: name}
}

// Path is the export target.
func (e *FileExporter) Path() string {
	return filepath.Join(e.dir, e.name)
}

func (e *FileExporter) Export(ctx context.Context, list model.TopicList) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	b, err := json.MarshalIndent(list.Clone(), "", "  ")
	if err != nil {
		return "", errors.WrapWithCode(err, errors.ErrExport, "Cannot encode export", "")
	}
	b = append(b, '\n')
	if err := e.fs.MkdirAll(e.dir, 0o755); err != nil {
		return "", errors.WrapWithCode(err, errors.ErrExport, "Cannot create export directory "+e.dir, "")
	}
	if err := afero.WriteFile(e.fs, e.Path(), b, 0o644); err != nil {
		return "", errors.WrapWithCode(err, errors.ErrExport, "Cannot write "+e.Path(), "")
	}
	return e.Path(), nil
}
