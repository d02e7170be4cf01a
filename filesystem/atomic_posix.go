//go:build !windows

package filesystem

import (
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sys/unix"
)

// destinationStat records the parts of the destination's pre-write stat
// result that metadata preservation needs. It's captured once, before the
// temp file is created, so that preservation reflects the destination's
// state at the start of the operation rather than anything that may have
// changed concurrently.
type destinationStat struct {
	exists bool
	path   string
	mode   uint32
	uid    int
	gid    int
	atime  unix.Timespec
	mtime  unix.Timespec
}

// statDestination lstats path (not stat - the destination's own symlink-ness
// matters, since we refuse to clobber a directory but a symlink destination
// is just an ordinary rename target). A non-existent destination is not an
// error; destinationStat.exists is false in that case.
func statDestination(path string) (*destinationStat, error) {
	var st unix.Stat_t
	if err := unix.Lstat(path, &st); err != nil {
		if err == unix.ENOENT {
			return &destinationStat{}, nil
		}
		return nil, &DestinationStatError{Path: path, Code: PlatformCode{Errno: int(errnoOf(err))}, Err: err}
	}

	if Mode(st.Mode)&ModeTypeMask == ModeTypeDirectory {
		return nil, &DestinationIsDirectoryError{Path: path}
	}

	return &destinationStat{
		exists: true,
		path:   path,
		mode:   st.Mode,
		uid:    int(st.Uid),
		gid:    int(st.Gid),
		atime:  extractAccessTime(&st),
		mtime:  extractModificationTime(&st),
	}, nil
}

// createAtomicTempFile creates a new temp file in directory, following the
// ".{basename}.atomic.{pid}.{random_hex}.tmp" naming convention, retrying
// up to maxTempFileCreateAttempts times on EEXIST with a freshly generated
// random token each time.
func createAtomicTempFile(directory, basename string) (string, *os.File, error) {
	var lastErr error
	for attempt := 0; attempt < maxTempFileCreateAttempts; attempt++ {
		token, err := randomToken()
		if err != nil {
			return "", nil, err
		}

		name := fmt.Sprintf(".%s.atomic.%d.%s.tmp", basename, os.Getpid(), token)
		path := filepath.Join(directory, name)

		fd, err := openatRetryingOnEINTR(
			unix.AT_FDCWD, path,
			unix.O_CREAT|unix.O_EXCL|unix.O_RDWR|unix.O_CLOEXEC|extraOpenFlags,
			0600,
		)
		if err == nil {
			// Best-effort: the naming convention already dot-prefixes the
			// temp file, which is all MarkHidden requires on POSIX.
			_ = MarkHidden(path)
			return path, os.NewFile(uintptr(fd), path), nil
		}
		if err != unix.EEXIST {
			return "", nil, &TempFileCreationError{Directory: directory, Attempts: attempt + 1, Code: PlatformCode{Errno: int(errnoOf(err))}, Err: err}
		}
		lastErr = err
	}

	return "", nil, &TempFileCreationError{Directory: directory, Attempts: maxTempFileCreateAttempts, Code: PlatformCode{Errno: int(errnoOf(lastErr))}, Err: lastErr}
}

// preserveDestinationMetadata copies permissions, ownership, and timestamps
// from the destination's pre-write stat onto the temp file, according to
// which preservation flags are set in options. It operates on the open file
// descriptor rather than by path, avoiding a TOCTOU race against whatever
// ends up at the temp path.
func preserveDestinationMetadata(file *os.File, destination *destinationStat, options AtomicWriteOptions, _ string) error {
	fd := int(file.Fd())

	if options.PreservePermissions {
		mode := destination.mode & uint32(ModePermissionsMask)
		if err := fchmodRetryingOnEINTR(fd, mode); err != nil {
			return &MetadataPreservationError{Operation: "permissions", Code: PlatformCode{Errno: int(errnoOf(err))}, Err: err}
		}
	}

	if options.PreserveOwnership {
		if err := unix.Fchown(fd, destination.uid, destination.gid); err != nil {
			// Non-root callers can't generally chown to an arbitrary owner;
			// unless strict ownership was requested, EPERM here is the
			// expected, silently-ignored case.
			if options.StrictOwnership || err != unix.EPERM {
				return &MetadataPreservationError{Operation: "ownership", Code: PlatformCode{Errno: int(errnoOf(err))}, Err: err}
			}
		}
	}

	if options.PreserveTimestamps {
		times := [2]unix.Timespec{destination.atime, destination.mtime}
		if err := unix.Futimens(fd, &times); err != nil {
			return &MetadataPreservationError{Operation: "timestamps", Code: PlatformCode{Errno: int(errnoOf(err))}, Err: err}
		}
	}

	if options.PreserveExtendedAttributes {
		if err := preserveExtendedAttributes(fd, destination.path); err != nil {
			return err
		}
	}

	return nil
}

// applyNewFilePermissions sets the permission bits requested in options on
// a freshly created temp file, used when the destination didn't already
// exist (so there's nothing to preserve from).
func applyNewFilePermissions(file *os.File, permissions Mode, _ string) error {
	mode := uint32(permissions & ModePermissionsMask)
	if mode == 0 {
		return nil
	}
	if err := fchmodRetryingOnEINTR(int(file.Fd()), mode); err != nil {
		return &MetadataPreservationError{Operation: "permissions", Code: PlatformCode{Errno: int(errnoOf(err))}, Err: err}
	}
	return nil
}
