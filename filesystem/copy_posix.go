//go:build !windows

package filesystem

import (
	"os"

	"github.com/pkg/errors"

	"golang.org/x/sys/unix"
)

// readlinkInitialBufferSize specifies the initial buffer size to use for
// readlinkat operations. It should be large enough to accommodate most
// symbolic links but not so large that every readlinkat operation incurs an
// inordinate amount of allocation overhead.
const readlinkInitialBufferSize = 128

// readSymbolicLinkTarget reads the target of the symbolic link at path.
// readlink and its ilk provide no way to query the untruncated target
// length, so the buffer is grown until a read comes back with space to
// spare.
func readSymbolicLinkTarget(path string) (string, error) {
	for size := readlinkInitialBufferSize; ; size *= 2 {
		buffer := make([]byte, size)

		count, err := readlinkatRetryingOnEINTR(unix.AT_FDCWD, path, buffer)
		if err != nil {
			return "", &os.PathError{
				Op:   "readlinkat",
				Path: path,
				Err:  err,
			}
		}
		if count < 0 {
			return "", errors.New("unknown readlinkat failure occurred")
		}

		if count < size {
			return string(buffer[:count]), nil
		}
	}
}

// createSymbolicLink creates a symbolic link at path pointing at target,
// reporting an existing path as DestinationExistsError (symlink creation
// never replaces).
func createSymbolicLink(target, path string) error {
	if err := symlinkatRetryingOnEINTR(target, unix.AT_FDCWD, path); err != nil {
		if err == unix.EEXIST {
			return &DestinationExistsError{Path: path}
		}
		return err
	}
	return nil
}
