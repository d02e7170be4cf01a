package filesystem

import (
	"io"
)

// ReadableFile is a union of io.Reader, io.Seeker, and io.Closer. It's the
// file half of Open's result set (the other being Directory).
type ReadableFile interface {
	io.Reader
	io.Seeker
	io.Closer
}
