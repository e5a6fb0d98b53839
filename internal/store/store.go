package store

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/idilsaglam/gacha/internal/errors"
	"github.com/idilsaglam/gacha/internal/model"
	"go.uber.org/zap"
)

// Store owns the topic list of one reader/writer. Several stores (in this
// process or others) may share a slot; writes replace the whole value and
// the last writer wins.
type Store struct {
	mu       sync.Mutex
	slot     Slot
	defaults model.TopicList
	exporter Exporter
	logger   *zap.Logger

	items      model.TopicList
	loaded     bool
	lastExport string
}

// Option configures a Store.
type Option func(*Store)

// WithDefaults replaces the bundled default list.
func WithDefaults(l model.TopicList) Option {
	return func(s *Store) { s.defaults = l.Clone() }
}

// WithExporter sets the hook run after each successful persist. nil disables it.
func WithExporter(e Exporter) Option {
	return func(s *Store) { s.exporter = e }
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// New creates a store over slot.
func New(slot Slot, opts ...Option) *Store {
	s := &Store{
		slot:     slot,
		defaults: DefaultTopics(),
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Snapshot reads the slot without touching the in-memory list. An empty
// slot yields the defaults; read failures and corrupt content are errors.
func (s *Store) Snapshot(ctx context.Context) (model.TopicList, error) {
	b, present, err := s.slot.Read(ctx)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrStorage, "Cannot read saved topics", "")
	}
	if !present {
		return s.defaults.Clone(), nil
	}
	l, err := Decode(b)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrCorrupt, "Saved topics are corrupt", "")
	}
	return l, nil
}

// Load refreshes the in-memory list from the slot and returns it. It
// never fails: unreadable or corrupt content is logged and the default
// list is used instead.
func (s *Store) Load(ctx context.Context) model.TopicList {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loadLocked(ctx)
	return s.items.Clone()
}

func (s *Store) loadLocked(ctx context.Context) {
	l, err := s.Snapshot(ctx)
	if err != nil {
		s.logger.Warn("falling back to default topics", zap.Error(err))
		l = s.defaults.Clone()
	}
	s.items = l
	s.loaded = true
}

// List returns the in-memory list, loading it on first use.
func (s *Store) List(ctx context.Context) model.TopicList {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		s.loadLocked(ctx)
	}
	return s.items.Clone()
}

// Append adds text (trimmed) at the end.
func (s *Store) Append(ctx context.Context, text string) (model.TopicList, error) {
	return s.mutate(ctx, func(l model.TopicList) (model.TopicList, error) {
		t, err := validText(text)
		if err != nil {
			return nil, err
		}
		return append(l, t), nil
	})
}

// UpdateAt replaces the topic at index (0-based) with text (trimmed).
func (s *Store) UpdateAt(ctx context.Context, index int, text string) (model.TopicList, error) {
	return s.mutate(ctx, func(l model.TopicList) (model.TopicList, error) {
		t, err := validText(text)
		if err != nil {
			return nil, err
		}
		if !l.InBounds(index) {
			return nil, outOfBounds(index, len(l))
		}
		l[index] = t
		return l, nil
	})
}

// DeleteAt removes the topic at index (0-based); later topics shift left.
func (s *Store) DeleteAt(ctx context.Context, index int) (model.TopicList, error) {
	return s.mutate(ctx, func(l model.TopicList) (model.TopicList, error) {
		if !l.InBounds(index) {
			return nil, outOfBounds(index, len(l))
		}
		return append(l[:index], l[index+1:]...), nil
	})
}

// Persist writes list to the slot and runs the export hook.
func (s *Store) Persist(ctx context.Context, list model.TopicList) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.persistLocked(ctx, list); err != nil {
		return err
	}
	s.items = list.Clone()
	s.loaded = true
	return nil
}

// LastExport is the path written by the most recent successful export.
func (s *Store) LastExport() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastExport
}

// Notify exposes the slot's change notification, if it has one.
func (s *Store) Notify(ctx context.Context) (<-chan struct{}, error) {
	n, ok := s.slot.(Notifier)
	if !ok {
		return nil, ErrNoNotifier
	}
	return n.Notify(ctx)
}

// Close releases the slot when it holds resources.
func (s *Store) Close() error {
	if c, ok := s.slot.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// mutate applies fn to a copy of the current list. On a validation or
// bounds failure nothing changes. On a persist failure the in-memory list
// keeps the change and the PERSIST error is returned with it.
func (s *Store) mutate(ctx context.Context, fn func(model.TopicList) (model.TopicList, error)) (model.TopicList, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		s.loadLocked(ctx)
	}

	next, err := fn(s.items.Clone())
	if err != nil {
		return s.items.Clone(), err
	}
	s.items = next
	if err := s.persistLocked(ctx, next); err != nil {
		s.logger.Error("persist failed", zap.Int("topics", len(next)), zap.Error(err))
		return next.Clone(), err
	}
	return next.Clone(), nil
}

func (s *Store) persistLocked(ctx context.Context, list model.TopicList) error {
	b, err := Encode(list)
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrPersist, "Could not encode topics", "")
	}
	if err := s.slot.Write(ctx, b); err != nil {
		return errors.WrapWithCode(err, errors.ErrPersist,
			"Could not save topics; the change may not have been saved",
			"Check free disk space and permissions on the storage directory")
	}
	s.logger.Debug("topics saved", zap.Int("topics", len(list)))

	if s.exporter == nil {
		return nil
	}
	path, err := s.exporter.Export(ctx, list)
	if err != nil {
		s.logger.Warn("export failed", zap.Error(err))
		return nil
	}
	s.lastExport = path
	s.logger.Debug("topics exported", zap.String("path", path))
	return nil
}

func validText(text string) (string, error) {
	t := strings.TrimSpace(text)
	if t == "" {
		return "", errors.New(errors.ErrValidation, "Topic text cannot be empty", "Type something before saving")
	}
	return t, nil
}

func outOfBounds(index, n int) error {
	return errors.New(errors.ErrBounds,
		fmt.Sprintf("No topic at position %d (have %d)", index+1, n),
		"Run 'gacha ls' to see valid numbers")
}
