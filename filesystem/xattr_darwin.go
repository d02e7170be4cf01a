package filesystem

import "golang.org/x/sys/unix"

// isXattrVanished reports whether err indicates that an extended attribute
// disappeared between listing and reading.
func isXattrVanished(err error) bool {
	return err == unix.ENOATTR
}
