package filesystem

import (
	"io"
	"path/filepath"
	"strings"
)

// Iterator is a single-step, non-copyable resource that reads a directory's
// entries one at a time, preserving each entry's raw name exactly as
// returned by the kernel. It owns a kernel directory handle - a file
// descriptor on POSIX, a search handle on Windows - which Close releases.
// Like the rest of this package, an Iterator is not safe for concurrent
// use and is not sharable across goroutines.
type Iterator struct {
	state  iteratorState
	closed bool
}

// iteratorState is the platform-specific half of Iterator: one
// implementation opens a directory fd and parses raw getdents(2) records
// on POSIX, the other drives FindFirstFileW/FindNextFileW on Windows.
type iteratorState interface {
	// next returns the next entry, or (nil, nil) once the directory is
	// exhausted. "." and ".." are never returned.
	next() (*DirectoryEntry, error)
	// close releases the underlying kernel handle.
	close() error
}

// OpenIterator opens path for directory iteration.
func OpenIterator(path string) (*Iterator, error) {
	state, err := openIteratorState(path)
	if err != nil {
		return nil, err
	}
	return &Iterator{state: state}, nil
}

// Next returns the next directory entry, or (nil, nil) when the directory
// has been exhausted. Entries named "." or ".." are never emitted.
func (it *Iterator) Next() (*DirectoryEntry, error) {
	entry, err := it.state.next()
	if err == io.EOF {
		return nil, nil
	}
	return entry, err
}

// Close releases the iterator's kernel directory handle. It is safe to
// call more than once; only the first call has any effect.
func (it *Iterator) Close() error {
	if it.closed {
		return nil
	}
	it.closed = true
	return it.state.close()
}

// isValidPathComponent reports whether decoded can be joined onto a parent
// path to form a usable path: non-empty, no embedded NUL, and no path
// separator of the current platform. Name's raw-bytes constructor already
// guarantees no embedded NUL and no empty result for kernel-returned names,
// but this is re-checked here since it gates the Absolute/Relative location
// decision independent of how the decoded string was obtained.
func isValidPathComponent(decoded string) bool {
	if decoded == "" {
		return false
	}
	if strings.IndexByte(decoded, 0) != -1 {
		return false
	}
	if strings.ContainsRune(decoded, filepath.Separator) {
		return false
	}
	if filepath.Separator != '/' && strings.ContainsRune(decoded, '/') {
		return false
	}
	return true
}

// classifyLocation decodes name and builds its EntryLocation: Absolute when
// the name decodes and validates as a usable path component, Relative
// otherwise.
func classifyLocation(parent string, name Name) EntryLocation {
	decoded, ok := name.DecodeStrict()
	if !ok || !isValidPathComponent(decoded) {
		return Relative(parent)
	}
	return Absolute(parent, filepath.Join(parent, decoded))
}
