package store

import (
	"context"
	"errors"
)

// Slot is a durable key-value slot holding one serialized topic list.
// Writes replace the whole value.
type Slot interface {
	// Read returns the stored bytes; present is false when nothing is stored.
	Read(ctx context.Context) (data []byte, present bool, err error)
	Write(ctx context.Context, data []byte) error
}

// Notifier is implemented by slots that can push change signals.
// The channel is closed when ctx ends.
type Notifier interface {
	Notify(ctx context.Context) (<-chan struct{}, error)
}

// ErrNoNotifier is returned by Store.Notify when the slot cannot push changes.
var ErrNoNotifier = errors.New("slot has no change notification")
