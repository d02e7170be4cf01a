package filesystem

import (
	"github.com/pkg/errors"
)

// ErrUnsupportedOpenType indicates that the filesystem entry at the
// specified path is neither a directory nor a regular file, and so can't
// be returned by Open.
var ErrUnsupportedOpenType = errors.New("unsupported entry type for open")
