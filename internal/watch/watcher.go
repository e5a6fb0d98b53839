// Package watch keeps a reader's copy of the topic list in step with the
// durable slot when other views or processes write to it.
package watch

import (
	"context"
	"time"

	"github.com/idilsaglam/gacha/internal/model"
	"go.uber.org/zap"
)

// DefaultInterval is the poll period.
const DefaultInterval = 500 * time.Millisecond

// Source yields the current persisted snapshot.
type Source interface {
	Snapshot(ctx context.Context) (model.TopicList, error)
}

// notifier is the optional push side of a Source.
type notifier interface {
	Notify(ctx context.Context) (<-chan struct{}, error)
}

// Watcher polls a Source on a fixed interval, and also on native change
// signals when the source offers them, emitting each snapshot that
// differs by content from the last one seen. Concurrent writers are not
// reconciled: whatever was written last is what readers converge to.
type Watcher struct {
	src      Source
	interval time.Duration
	notify   bool
	logger   *zap.Logger
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithInterval sets the poll period.
func WithInterval(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.interval = d
		}
	}
}

// WithNotify toggles use of native change signals.
func WithNotify(on bool) Option {
	return func(w *Watcher) { w.notify = on }
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(w *Watcher) {
		if l != nil {
			w.logger = l
		}
	}
}

// New creates a watcher over src.
func New(src Source, opts ...Option) *Watcher {
	w := &Watcher{
		src:      src,
		interval: DefaultInterval,
		notify:   true,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Run starts watching in a goroutine. last is the caller's current copy.
// The returned channel carries changed snapshots and is closed once ctx
// ends. Checks run one at a time; a slow reader delays the next check
// rather than queueing snapshots.
func (w *Watcher) Run(ctx context.Context, last model.TopicList) <-chan model.TopicList {
	out := make(chan model.TopicList)
	known := last.Clone()

	var events <-chan struct{}
	if n, ok := w.src.(notifier); ok && w.notify {
		ch, err := n.Notify(ctx)
		if err != nil {
			w.logger.Debug("native change notification unavailable, polling only", zap.Error(err))
		} else {
			events = ch
		}
	}

	go func() {
		defer close(out)
		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			case _, ok := <-events:
				if !ok {
					events = nil
					continue
				}
				w.logger.Debug("slot change signalled")
			}

			snap, changed := w.check(ctx, known)
			if !changed {
				continue
			}
			known = snap
			select {
			case out <- snap.Clone():
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}

func (w *Watcher) check(ctx context.Context, known model.TopicList) (model.TopicList, bool) {
	snap, err := w.src.Snapshot(ctx)
	if err != nil {
		if ctx.Err() == nil {
			w.logger.Warn("snapshot read failed, keeping current list", zap.Error(err))
		}
		return nil, false
	}
	if snap.Equal(known) {
		return nil, false
	}
	return snap, true
}
