//go:build !darwin

package filesystem

import "os"

// maybePreallocate is a no-op on platforms without a preallocation
// primitive wired in. A size hint on these platforms simply has no effect;
// the file's length is exactly the number of bytes written, just without the fragmentation-avoidance benefit F_PREALLOCATE gives Darwin.
func maybePreallocate(file *os.File, expectedSize int64) error {
	return nil
}
