package filesystem

import (
	"os"
	"unsafe"

	"golang.org/x/sys/unix"
)

// maybePreallocate pre-extends file's allocation to expectedSize using
// F_PREALLOCATE, trying a contiguous allocation first and falling back to
// a non-contiguous one if the filesystem can't satisfy it. Preallocation
// never changes the file's apparent length (EOF); only bytes actually
// written via WriteChunk do that, so callers see the same file size as if
// no hint had been given, just with less fragmentation and fewer
// individual extent-growth syscalls along the way. Failure to preallocate
// is never reported as an error - it's purely a performance hint.
func maybePreallocate(file *os.File, expectedSize int64) error {
	if expectedSize <= 0 {
		return nil
	}

	store := unix.Fstore_t{
		Flags:   unix.F_ALLOCATECONTIG,
		Posmode: unix.F_PEOFPOSMODE,
		Length:  expectedSize,
	}
	if _, err := fcntlFstore(file.Fd(), unix.F_PREALLOCATE, &store); err == nil {
		return nil
	}

	store.Flags = unix.F_ALLOCATEALL
	fcntlFstore(file.Fd(), unix.F_PREALLOCATE, &store)

	return nil
}

// fcntlFstore issues an fcntl(F_PREALLOCATE) with a unix.Fstore_t argument.
// golang.org/x/sys/unix doesn't expose a typed FcntlFstore helper, so the
// pointer is passed through FcntlInt's generic path.
func fcntlFstore(fd uintptr, cmd int, store *unix.Fstore_t) (int, error) {
	return unix.FcntlInt(fd, cmd, int(uintptr(unsafe.Pointer(store))))
}
