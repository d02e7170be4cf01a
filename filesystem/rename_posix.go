//go:build !windows

package filesystem

import (
	"golang.org/x/sys/unix"

	"github.com/crashsafe/atomicfs/internal/logging"
	"github.com/crashsafe/atomicfs/internal/must"
)

// publishRename performs the publish-time rename from tempPath to destPath
// according to strategy, implementing the POSIX fallback ladder described
// in the rename semantics section: a fast atomic no-clobber primitive where
// the platform provides one, falling back to a link+unlink pair (itself
// atomic with respect to EEXIST, though racy with respect to anything else
// observing the directory mid-fallback) where it doesn't.
func publishRename(tempPath, destPath string, strategy Strategy, logger *logging.Logger) error {
	if strategy == ReplaceExisting {
		if err := renameatRetryingOnEINTR(unix.AT_FDCWD, tempPath, unix.AT_FDCWD, destPath); err != nil {
			return &RenameError{Source: tempPath, Destination: destPath, Code: PlatformCode{Errno: int(errnoOf(err))}, Err: err}
		}
		return nil
	}

	err := renameatNoReplaceRetryingOnEINTR(unix.AT_FDCWD, tempPath, unix.AT_FDCWD, destPath)
	switch err {
	case nil:
		return nil
	case unix.EEXIST:
		return &DestinationExistsError{Path: destPath}
	// On Linux EOPNOTSUPP has the same value as ENOTSUP, so a second case for
	// it would be a duplicate and only ENOTSUP is listed. On Darwin and some
	// BSDs the two values differ, and EOPNOTSUPP is not matched here.
	case unix.ENOSYS, unix.EINVAL, unix.ENOTSUP:
		return linkUnlinkFallback(tempPath, destPath, nil, logger)
	case unix.EPERM:
		return linkUnlinkFallback(tempPath, destPath, err, logger)
	default:
		return &RenameError{Source: tempPath, Destination: destPath, Code: PlatformCode{Errno: int(errnoOf(err))}, Err: err}
	}
}

// linkUnlinkFallback implements the link(2)-then-unlink(2) no-clobber
// fallback: link is itself atomic with respect to an existing destination
// (it fails EEXIST rather than replacing), so this preserves the no-clobber
// guarantee even though the subsequent unlink of the temp path is a
// separate, non-atomic step. ambiguousErr, if non-nil, is the original
// error from the fast-path primitive (e.g. EPERM) that should be surfaced
// in preference to a generic fallback failure if the fallback also fails.
func linkUnlinkFallback(tempPath, destPath string, ambiguousErr error, logger *logging.Logger) error {
	err := unix.Link(tempPath, destPath)
	if err == unix.EEXIST {
		return &DestinationExistsError{Path: destPath}
	}
	if err != nil {
		if ambiguousErr != nil {
			return &RenameError{
				Source:      tempPath,
				Destination: destPath,
				Code:        PlatformCode{Errno: int(errnoOf(ambiguousErr))},
				Err:         ambiguousErr,
			}
		}
		return &RenameError{Source: tempPath, Destination: destPath, Code: PlatformCode{Errno: int(errnoOf(err))}, Err: err}
	}

	must.OSRemove(tempPath, logger)
	return nil
}
