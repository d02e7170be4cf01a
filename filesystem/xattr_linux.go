package filesystem

import "golang.org/x/sys/unix"

// isXattrVanished reports whether err indicates that an extended attribute
// disappeared between listing and reading. Linux reports a missing
// attribute as ENODATA rather than the BSD ENOATTR.
func isXattrVanished(err error) bool {
	return err == unix.ENODATA
}
