package filesystem

import (
	"golang.org/x/sys/unix"
)

// fBarrierFSync is F_BARRIERFSYNC from <sys/fcntl.h>, not currently
// exposed by golang.org/x/sys/unix on Darwin. It asks the kernel to issue
// a write barrier without the full volume flush that F_FULLFSYNC performs,
// which is cheaper and sufficient for DataOnly durability.
const fBarrierFSync = 0x55

// syncFilePlatform implements the Darwin durability mapping. Darwin's
// fsync only flushes to the drive's write cache, not to the physical
// medium, so Full durability needs F_FULLFSYNC; DataOnly uses the cheaper
// F_BARRIERFSYNC. Both fall back to a plain fsync if the fcntl is
// rejected (e.g. on filesystems that don't support it), since fsync is
// still better than nothing and is what a caller without platform-specific
// knowledge would expect.
func syncFilePlatform(fd uintptr, durability Durability) error {
	var primary int
	switch durability {
	case Full:
		primary = unix.F_FULLFSYNC
	case DataOnly:
		primary = fBarrierFSync
	default:
		return nil
	}

	if _, err := unix.FcntlInt(fd, primary, 0); err == nil {
		return nil
	}

	if err := fsyncRetryingOnEINTR(int(fd)); err != nil {
		return &SyncError{Operation: "fsync", Code: PlatformCode{Errno: int(errnoOf(err))}, Err: err}
	}
	return nil
}

// syncDirectoryPlatform opens path and syncs it with F_FULLFSYNC, falling
// back to a plain fsync if the fcntl is rejected.
func syncDirectoryPlatform(path string) error {
	fd, err := openatRetryingOnEINTR(unix.AT_FDCWD, path, unix.O_RDONLY|unix.O_CLOEXEC, 0)
	if err != nil {
		return &DirectorySyncError{Path: path, Code: PlatformCode{Errno: int(errnoOf(err))}, Err: err}
	}
	defer closeConsideringEINTR(fd)

	if _, err := unix.FcntlInt(uintptr(fd), unix.F_FULLFSYNC, 0); err == nil {
		return nil
	}
	if err := fsyncRetryingOnEINTR(fd); err != nil {
		return &DirectorySyncError{Path: path, Code: PlatformCode{Errno: int(errnoOf(err))}, Err: err}
	}
	return nil
}
