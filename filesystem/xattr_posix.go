//go:build darwin || linux

package filesystem

import (
	"golang.org/x/sys/unix"
)

// validateAtomicWriteOptions rejects option combinations this platform
// can't honor. ACL preservation needs a platform shim that isn't wired in,
// so requesting it fails before any content is written; extended attribute
// preservation is natively supported here.
func validateAtomicWriteOptions(options AtomicWriteOptions) error {
	if options.PreserveACLs {
		return &PlatformIncompatibleError{Feature: "ACL preservation"}
	}
	return nil
}

// preserveExtendedAttributes copies the extended attributes present on the
// destination's prior content onto the temp file descriptor. Attributes
// that vanish between listing and reading are skipped, and a destination
// filesystem without extended attribute support ends the copy silently;
// any other failure is surfaced as a metadata preservation error before
// the rename, so the destination stays untouched.
func preserveExtendedAttributes(fd int, destinationPath string) error {
	names, err := listExtendedAttributes(destinationPath)
	if err != nil {
		if isXattrUnsupported(err) {
			return nil
		}
		return &MetadataPreservationError{Operation: "xattrs", Code: PlatformCode{Errno: int(errnoOf(err))}, Err: err}
	}

	for _, name := range names {
		value, err := readExtendedAttribute(destinationPath, name)
		if err != nil {
			if isXattrVanished(err) || isXattrUnsupported(err) {
				continue
			}
			return &MetadataPreservationError{Operation: "xattrs", Code: PlatformCode{Errno: int(errnoOf(err))}, Err: err}
		}
		if err := unix.Fsetxattr(fd, name, value, 0); err != nil {
			if isXattrUnsupported(err) {
				return nil
			}
			return &MetadataPreservationError{Operation: "xattrs", Code: PlatformCode{Errno: int(errnoOf(err))}, Err: err}
		}
	}

	return nil
}

// listExtendedAttributes returns the extended attribute names present on
// path, growing the listing buffer until it fits (another process can add
// attributes between the size query and the listing itself).
func listExtendedAttributes(path string) ([]string, error) {
	size, err := unix.Listxattr(path, nil)
	if err != nil {
		return nil, err
	}
	if size == 0 {
		return nil, nil
	}

	for {
		buffer := make([]byte, size)
		n, err := unix.Listxattr(path, buffer)
		if err == unix.ERANGE {
			size *= 2
			continue
		} else if err != nil {
			return nil, err
		}
		return splitAttributeNames(buffer[:n]), nil
	}
}

// splitAttributeNames splits a NUL-separated attribute name listing into
// individual names.
func splitAttributeNames(buffer []byte) []string {
	var names []string
	start := 0
	for i, b := range buffer {
		if b == 0 {
			if i > start {
				names = append(names, string(buffer[start:i]))
			}
			start = i + 1
		}
	}
	return names
}

// readExtendedAttribute reads the value of a single extended attribute,
// growing the buffer until the value fits.
func readExtendedAttribute(path, name string) ([]byte, error) {
	size, err := unix.Getxattr(path, name, nil)
	if err != nil {
		return nil, err
	}
	if size == 0 {
		return nil, nil
	}

	for {
		buffer := make([]byte, size)
		n, err := unix.Getxattr(path, name, buffer)
		if err == unix.ERANGE {
			size *= 2
			continue
		} else if err != nil {
			return nil, err
		}
		return buffer[:n], nil
	}
}

// isXattrUnsupported reports whether err indicates a filesystem without
// extended attribute support, reported as ENOTSUP. On Linux EOPNOTSUPP has
// the same value; on Darwin it is a distinct value that this comparison
// does not match.
func isXattrUnsupported(err error) bool {
	return err == unix.ENOTSUP
}
