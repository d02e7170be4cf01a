//go:build !windows && !linux && !darwin

package filesystem

import (
	"golang.org/x/sys/unix"
)

// syncFilePlatform implements the generic POSIX durability mapping: a
// plain fsync for both Full and DataOnly, since these platforms don't
// distinguish a cheaper data-only sync the way Linux's fdatasync or
// Darwin's F_BARRIERFSYNC do.
func syncFilePlatform(fd uintptr, durability Durability) error {
	if durability == None {
		return nil
	}
	if err := fsyncRetryingOnEINTR(int(fd)); err != nil {
		return &SyncError{Operation: "fsync", Code: PlatformCode{Errno: int(errnoOf(err))}, Err: err}
	}
	return nil
}

// syncDirectoryPlatform opens path and fsyncs it.
func syncDirectoryPlatform(path string) error {
	fd, err := openatRetryingOnEINTR(unix.AT_FDCWD, path, unix.O_RDONLY|unix.O_CLOEXEC, 0)
	if err != nil {
		return &DirectorySyncError{Path: path, Code: PlatformCode{Errno: int(errnoOf(err))}, Err: err}
	}
	defer closeConsideringEINTR(fd)

	if err := fsyncRetryingOnEINTR(fd); err != nil {
		return &DirectorySyncError{Path: path, Code: PlatformCode{Errno: int(errnoOf(err))}, Err: err}
	}
	return nil
}
