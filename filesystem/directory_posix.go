//go:build !windows

package filesystem

import (
	"os"
	"strings"

	"github.com/pkg/errors"

	"golang.org/x/sys/unix"
)

// ensureValidName verifies that the provided name does not reference the
// current directory, the parent directory, or contain a path separator
// character.
func ensureValidName(name string) error {
	// Verify that the name does not reference the directory itself or the
	// parent directory.
	if name == "." {
		return errors.New("name is directory reference")
	} else if name == ".." {
		return errors.New("name is parent directory reference")
	}

	// Verify that the path separator character does not appear in the name.
	if strings.IndexByte(name, os.PathSeparator) != -1 {
		return errors.New("path separator appears in name")
	}

	// Success.
	return nil
}

// Directory represents an open directory, returned by Open for directory
// paths. Its operations are descriptor-relative (POSIX *at calls), so they
// don't re-traverse the directory's own path and don't follow a symbolic
// link substituted for the directory after it was opened.
type Directory struct {
	// descriptor is the file descriptor for the directory, designed to be used
	// in conjunction with POSIX *at functions. It is wrapped by the os.File
	// object below (file) and should not be closed directly.
	descriptor int
	// file is an os.File object which wraps the directory descriptor. It is
	// required for its Readdirnames function, since there's no other portable
	// way to do this from Go.
	file *os.File
}

// Close closes the directory.
func (d *Directory) Close() error {
	return d.file.Close()
}

// ReadContentNames queries the directory contents and returns their base
// names as decoded strings. It does not return "." or ".." entries. Callers
// that need raw-byte name fidelity or per-entry kinds should use Iterator
// instead; this is the lightweight listing used for name-pattern sweeps
// like PruneTemporaries.
func (d *Directory) ReadContentNames() ([]string, error) {
	// Read content names. Fortunately we can use the os.File implementation for
	// this since it operates on the underlying file descriptor directly.
	names, err := d.file.Readdirnames(0)
	if err != nil {
		return nil, err
	}

	// Seek the directory back to the beginning since the Readdirnames operation
	// will have exhausted its "content".
	if offset, err := seekConsideringEINTR(d.descriptor, 0, 0); err != nil {
		return nil, errors.Wrap(err, "unable to reset directory read pointer")
	} else if offset != 0 {
		return nil, errors.New("directory offset is non-zero after seek operation")
	}

	// Filter names (without allocating a new slice).
	results := names[:0]
	for _, name := range names {
		// Watch for names that reference the directory itself or the parent
		// directory. The implementation underlying os.File.Readdirnames does
		// filter these out, but that's not guaranteed by its documentation, so
		// it's better to do this explicitly.
		if name == "." || name == ".." {
			continue
		}

		// Store the name.
		results = append(results, name)
	}

	// Success.
	return results, nil
}

// RemoveFile deletes a file with the specified name inside the directory.
func (d *Directory) RemoveFile(name string) error {
	// Verify that the name is valid.
	if err := ensureValidName(name); err != nil {
		return err
	}

	// Remove the file.
	return unlinkatRetryingOnEINTR(d.descriptor, name, 0)
}

// Rename performs an atomic rename operation from one filesystem location (the
// source) to another (the target). Each location can be specified in one of two
// ways: either by a combination of directory and (non-path) name or by path
// (with corresponding nil Directory object). Different specification mechanisms
// can be used for each location.
//
// This function does not support cross-device renames. To detect whether or not
// an error is due to an attempted cross-device rename, use the
// IsCrossDeviceError function.
func Rename(
	sourceDirectory *Directory, sourceNameOrPath string,
	targetDirectory *Directory, targetNameOrPath string,
) error {
	// If a source directory has been provided, then verify that the source name
	// is a valid name and not a path.
	if sourceDirectory != nil {
		if err := ensureValidName(sourceNameOrPath); err != nil {
			return errors.Wrap(err, "source name invalid")
		}
	}

	// If a target directory has been provided, then verify that the target name
	// is a valid name and not a path.
	if targetDirectory != nil {
		if err := ensureValidName(targetNameOrPath); err != nil {
			return errors.Wrap(err, "target name invalid")
		}
	}

	// Extract the file descriptors to pass to renameat. Absolute paths ignore
	// their descriptor, so AT_FDCWD is only meaningful for the name-relative
	// cases above and for relative paths.
	sourceDescriptor, targetDescriptor := unix.AT_FDCWD, unix.AT_FDCWD
	if sourceDirectory != nil {
		sourceDescriptor = sourceDirectory.descriptor
	}
	if targetDirectory != nil {
		targetDescriptor = targetDirectory.descriptor
	}

	// Perform an atomic rename.
	return renameatRetryingOnEINTR(
		sourceDescriptor, sourceNameOrPath,
		targetDescriptor, targetNameOrPath,
	)
}

// IsCrossDeviceError checks whether or not an error returned from rename
// represents a cross-device error.
func IsCrossDeviceError(err error) bool {
	return err == unix.EXDEV
}
