// Package draw picks topics at random, one draw at a time.
package draw

import (
	"math/rand/v2"
	"sync"
	"time"

	"github.com/idilsaglam/gacha/internal/model"
)

// DefaultDelay is the pause between a draw request and its result.
const DefaultDelay = time.Second

// Pick selects uniformly over [0, len(list)). ok is false for an empty list.
// A nil rng uses the global source.
func Pick(list model.TopicList, rng *rand.Rand) (model.DrawResult, bool) {
	if len(list) == 0 {
		return model.DrawResult{}, false
	}
	var i int
	if rng == nil {
		i = rand.IntN(len(list))
	} else {
		i = rng.IntN(len(list))
	}
	return model.DrawResult{Ordinal: i + 1, Text: list[i]}, true
}

// Engine guards draws so only one is in flight at a time. Extra requests
// made while one is pending are dropped, not queued.
type Engine struct {
	mu       sync.Mutex
	rng      *rand.Rand
	delay    time.Duration
	inFlight bool
}

// Option configures an Engine.
type Option func(*Engine)

// WithRand sets the random source.
func WithRand(r *rand.Rand) Option {
	return func(e *Engine) { e.rng = r }
}

// WithDelay sets the draw delay.
func WithDelay(d time.Duration) Option {
	return func(e *Engine) { e.delay = d }
}

// NewEngine creates an engine.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{delay: DefaultDelay}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Delay is the configured pause between Begin and the result reveal.
func (e *Engine) Delay() time.Duration { return e.delay }

// InFlight reports whether a draw is pending.
func (e *Engine) InFlight() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.inFlight
}

// Begin picks a result from list and holds the in-flight guard until
// Complete. ok is false, and nothing changes, when list is empty or a
// draw is already pending. The caller reveals the result after Delay.
func (e *Engine) Begin(list model.TopicList) (model.DrawResult, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.inFlight {
		return model.DrawResult{}, false
	}
	res, ok := Pick(list, e.rng)
	if !ok {
		return model.DrawResult{}, false
	}
	e.inFlight = true
	return res, true
}

// Complete releases the in-flight guard.
func (e *Engine) Complete() {
	e.mu.Lock()
	e.inFlight = false
	e.mu.Unlock()
}

// Draw runs a whole draw: Begin, wait Delay, Complete. It cannot be
// cancelled once started.
func (e *Engine) Draw(list model.TopicList) (model.DrawResult, bool) {
	res, ok := e.Begin(list)
	if !ok {
		return res, false
	}
	if e.delay > 0 {
		time.Sleep(e.delay)
	}
	e.Complete()
	return res, true
}
