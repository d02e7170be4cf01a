package filesystem

import (
	"golang.org/x/sys/unix"
)

// fdatasyncRetryingOnEINTR is a wrapper around the fdatasync system call
// that retries on EINTR errors and returns on the first successful call or
// non-EINTR error.
func fdatasyncRetryingOnEINTR(file int) error {
	for {
		err := unix.Fdatasync(file)
		if err == unix.EINTR {
			continue
		}
		return err
	}
}

// syncFilePlatform implements the Linux durability mapping: fsync for
// Full, fdatasync for DataOnly.
func syncFilePlatform(fd uintptr, durability Durability) error {
	switch durability {
	case Full:
		if err := fsyncRetryingOnEINTR(int(fd)); err != nil {
			return &SyncError{Operation: "fsync", Code: PlatformCode{Errno: int(errnoOf(err))}, Err: err}
		}
	case DataOnly:
		if err := fdatasyncRetryingOnEINTR(int(fd)); err != nil {
			return &SyncError{Operation: "fdatasync", Code: PlatformCode{Errno: int(errnoOf(err))}, Err: err}
		}
	}
	return nil
}

// syncDirectoryPlatform opens path (which must be a directory) with
// O_DIRECTORY and fsyncs it, the mechanism required on Linux to persist a
// rename into the directory's entry list.
func syncDirectoryPlatform(path string) error {
	fd, err := openatRetryingOnEINTR(unix.AT_FDCWD, path, unix.O_RDONLY|unix.O_DIRECTORY|unix.O_CLOEXEC, 0)
	if err != nil {
		return &DirectorySyncError{Path: path, Code: PlatformCode{Errno: int(errnoOf(err))}, Err: err}
	}
	defer closeConsideringEINTR(fd)

	if err := fsyncRetryingOnEINTR(fd); err != nil {
		return &DirectorySyncError{Path: path, Code: PlatformCode{Errno: int(errnoOf(err))}, Err: err}
	}
	return nil
}
