//go:build !windows

package filesystem

import (
	"os"

	"golang.org/x/sys/unix"
)

// prepareTempForPublish readies a streaming write's temp file for its
// rename. On POSIX there's nothing to do: the dot-prefixed temp name is the
// only "hidden" state, and it disappears with the rename itself.
func prepareTempForPublish(tempPath string) error {
	return nil
}

// openDirectDestination opens path for a direct (non-atomic) streaming
// write, creating or truncating it according to strategy.
func openDirectDestination(path string, strategy DirectStrategy) (*os.File, error) {
	flags := unix.O_WRONLY | unix.O_CLOEXEC | extraOpenFlags
	switch strategy {
	case DirectCreate:
		flags |= unix.O_CREAT | unix.O_EXCL
	case DirectTruncate:
		flags |= unix.O_CREAT | unix.O_TRUNC
	}

	fd, err := openatRetryingOnEINTR(unix.AT_FDCWD, path, flags, 0600)
	if err != nil {
		if strategy == DirectCreate && err == unix.EEXIST {
			return nil, &DestinationExistsError{Path: path}
		}
		return nil, &DirectOpenError{Path: path, Code: PlatformCode{Errno: int(errnoOf(err))}, Err: err}
	}
	return os.NewFile(uintptr(fd), path), nil
}
