//go:build !windows

package filesystem

import (
	"golang.org/x/sys/unix"
)

// verifyOrCreateParent implements VerifyOrCreateParent on POSIX platforms
// using stat(2), so that a final path component that's a symlink to a
// directory is accepted.
func verifyOrCreateParent(directory string, createIntermediates bool) error {
	var stat unix.Stat_t
	err := unix.Stat(directory, &stat)
	if err == nil {
		if Mode(stat.Mode)&ModeTypeMask != ModeTypeDirectory {
			return &ParentError{
				Kind:      ParentNotDirectory,
				Path:      directory,
				Operation: "stat",
				Err:       errStat("path exists but is not a directory"),
			}
		}
		return nil
	}

	switch err {
	case unix.ENOENT:
		if !createIntermediates {
			return &ParentError{
				Kind:      ParentMissing,
				Path:      directory,
				Operation: "stat",
				Code:      PlatformCode{Errno: int(unix.ENOENT)},
				Err:       err,
			}
		}
		if createErr := createIntermediateDirectories(directory); createErr != nil {
			return &ParentError{
				Kind:      ParentCreationFailed,
				Path:      directory,
				Operation: "mkdir",
				Err:       createErr,
			}
		}
		return nil
	case unix.EACCES:
		return &ParentError{
			Kind:      ParentAccessDenied,
			Path:      directory,
			Operation: "stat",
			Code:      PlatformCode{Errno: int(unix.EACCES)},
			Err:       err,
		}
	case unix.ENOTDIR:
		return &ParentError{
			Kind:      ParentNotDirectory,
			Path:      directory,
			Operation: "stat",
			Code:      PlatformCode{Errno: int(unix.ENOTDIR)},
			Err:       err,
		}
	default:
		return &ParentError{
			Kind:      ParentStatFailed,
			Path:      directory,
			Operation: "stat",
			Code:      PlatformCode{Errno: int(errnoOf(err))},
			Err:       err,
		}
	}
}

// mkdirTolerateExists creates directory with user-only permissions,
// treating the case where it already exists as a directory as success
// rather than as an error, so that a concurrent creator doesn't turn into a
// spurious failure.
func mkdirTolerateExists(directory string) error {
	if err := mkdiratRetryingOnEINTR(unix.AT_FDCWD, directory, 0700); err != nil {
		if err != unix.EEXIST {
			return err
		}
		var stat unix.Stat_t
		if statErr := unix.Stat(directory, &stat); statErr != nil {
			return statErr
		}
		if Mode(stat.Mode)&ModeTypeMask != ModeTypeDirectory {
			return err
		}
	}
	return nil
}

// errStat constructs a plain error for stat-classification failures that
// have no corresponding errno (e.g. a type mismatch we detected ourselves
// rather than one the kernel reported).
func errStat(message string) error {
	return statClassificationError(message)
}

type statClassificationError string

func (e statClassificationError) Error() string { return string(e) }

// errnoOf extracts a raw errno value from an error returned by
// golang.org/x/sys/unix, which represents syscall errors as unix.Errno.
func errnoOf(err error) unix.Errno {
	if errno, ok := err.(unix.Errno); ok {
		return errno
	}
	return 0
}
