// Package watch defines the shape of a filesystem change watcher for
// downstream code to depend on. Watching is out of scope for this module;
// New always returns ErrNotImplemented, following the same pattern as an
// unsupported native watch backend rather than omitting the symbol.
package watch

import "github.com/pkg/errors"

// ErrNotImplemented is returned by New. Filesystem watching is not provided
// by this module.
var ErrNotImplemented = errors.New("filesystem watching is not implemented")

// Event describes a single change notification a Watcher would deliver.
type Event struct {
	Path string
}

// Watcher reports filesystem changes under a root path. No implementation
// is provided; New always fails.
type Watcher interface {
	// Events returns the channel on which change events are delivered.
	Events() <-chan Event
	// Close stops the watcher and releases its resources.
	Close() error
}

// New would construct a Watcher rooted at path. It always returns
// ErrNotImplemented.
func New(path string) (Watcher, error) {
	return nil, ErrNotImplemented
}
