package jsonstore

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// JSON-file slot. One file per key, human-readable, portable.
// No cross-process locking: concurrent writers race and the last
// rename wins.

// ErrNotifyUnsupported is returned by Notify when the filesystem is not
// the OS filesystem (fsnotify cannot watch it).
var ErrNotifyUnsupported = errors.New("change notification unsupported on this filesystem")

// Slot stores raw bytes under <dir>/<key>.json.
type Slot struct {
	fs     afero.Fs
	dir    string
	key    string
	logger *zap.Logger
}

// New creates a slot on fs. A nil fs means the OS filesystem.
func New(fs afero.Fs, dir, key string, logger *zap.Logger) *Slot {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Slot{fs: fs, dir: dir, key: key, logger: logger}
}

// Path is the file backing the slot.
func (s *Slot) Path() string {
	return filepath.Join(s.dir, s.key+".json")
}

// Read returns the slot content. present is false when the file does not exist.
func (s *Slot) Read(ctx context.Context) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	b, err := afero.ReadFile(s.fs, s.Path())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("read file: %w", err)
	}
	return b, true, nil
}

// Write replaces the slot content. The data lands in a temp file first
// and is renamed over the target, so readers never see a partial write.
func (s *Slot) Write(ctx context.Context, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.fs.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}
	tmp, err := afero.TempFile(s.fs, s.dir, "."+s.key+"-*.tmp")
	if err != nil {
		return fmt.Errorf("temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		_ = s.fs.Remove(tmpName)
		return fmt.Errorf("write file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = s.fs.Remove(tmpName)
		return fmt.Errorf("close file: %w", err)
	}
	if err := s.fs.Rename(tmpName, s.Path()); err != nil {
		_ = s.fs.Remove(tmpName)
		return fmt.Errorf("rename: %w", err)
	}
	return nil
}

// Notify signals on the returned channel whenever the slot file is
// created, written, renamed over or removed. The channel is closed when
// ctx ends. Only available on the OS filesystem.
func (s *Slot) Notify(ctx context.Context) (<-chan struct{}, error) {
	if _, ok := s.fs.(*afero.OsFs); !ok {
		return nil, ErrNotifyUnsupported
	}
	if err := s.fs.MkdirAll(s.dir, 0o755); err != nil {
		return nil, fmt.Errorf("mkdir: %w", err)
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("fsnotify: %w", err)
	}
	// Watch the directory: the rename in Write replaces the file inode.
	if err := w.Add(s.dir); err != nil {
		w.Close()
		return nil, fmt.Errorf("watch %s: %w", s.dir, err)
	}

	out := make(chan struct{}, 1)
	target := filepath.Clean(s.Path())
	go func() {
		defer close(out)
		defer w.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != target {
					continue
				}
				if ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename|fsnotify.Remove) == 0 {
					continue
				}
				select {
				case out <- struct{}{}:
				default:
					// a signal is already pending
				}
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				s.logger.Warn("slot watcher error", zap.String("path", target), zap.Error(err))
			}
		}
	}()
	return out, nil
}
