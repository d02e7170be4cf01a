//go:build !windows

package filesystem

import (
	"bytes"
	"io"
	"unsafe"

	"golang.org/x/sys/unix"
)

// direntBufferSize is the size of the buffer used to batch getdents(2)
// reads. It's large enough to amortize the syscall cost over many entries
// for ordinary directories without holding an unreasonable amount of
// memory per open Iterator.
const direntBufferSize = 32 * 1024

// direntNameOffset is the byte offset of the Name field within
// unix.Dirent, computed once so per-entry parsing doesn't reconstruct it.
const direntNameOffset = int(unsafe.Offsetof(unix.Dirent{}.Name))

// posixIteratorState implements iteratorState by reading raw getdents(2)
// records directly, rather than going through os.File.Readdirnames (which
// would hand back decoded-as-UTF-8 Go strings and lose the d_type fast
// path). Each record's name bytes are copied out before the buffer is
// reused.
type posixIteratorState struct {
	fd     int
	parent string
	buf    []byte
	off    int
	end    int
}

// readDirentRetryingOnEINTR wraps unix.ReadDirent, retrying on EINTR.
func readDirentRetryingOnEINTR(fd int, buf []byte) (int, error) {
	for {
		n, err := unix.ReadDirent(fd, buf)
		if err == unix.EINTR {
			continue
		}
		return n, err
	}
}

// openIteratorState opens path as a directory for iteration.
func openIteratorState(path string) (iteratorState, error) {
	fd, err := openatRetryingOnEINTR(unix.AT_FDCWD, path, unix.O_RDONLY|unix.O_DIRECTORY|unix.O_CLOEXEC|extraOpenFlags, 0)
	if err != nil {
		return nil, &ParentError{Kind: ParentStatFailed, Path: path, Operation: "openat", Code: PlatformCode{Errno: int(errnoOf(err))}, Err: err}
	}
	return &posixIteratorState{fd: fd, parent: path, buf: make([]byte, direntBufferSize)}, nil
}

// fill refills the buffer with a fresh batch of getdents(2) records.
func (s *posixIteratorState) fill() error {
	n, err := readDirentRetryingOnEINTR(s.fd, s.buf)
	if err != nil {
		return err
	}
	s.off = 0
	s.end = n
	return nil
}

// next implements iteratorState.next.
func (s *posixIteratorState) next() (*DirectoryEntry, error) {
	for {
		if s.off >= s.end {
			if err := s.fill(); err != nil {
				return nil, err
			}
			if s.end == 0 {
				return nil, io.EOF
			}
		}

		record := s.buf[s.off:s.end]
		if len(record) < direntNameOffset {
			// A short trailing fragment shouldn't occur in a well-formed
			// getdents buffer; treat it as end-of-batch defensively rather
			// than reading past what we have.
			s.off = s.end
			continue
		}

		dirent := (*unix.Dirent)(unsafe.Pointer(&record[0]))
		reclen := int(dirent.Reclen)
		if reclen <= 0 || reclen > len(record) {
			s.off = s.end
			continue
		}
		s.off += reclen

		nameBytes := direntNameBytes(record, reclen)
		name := NewNameFromBytes(nameBytes)
		if name.IsDotOrDotDot() {
			continue
		}

		kind := kindFromDirentType(dirent.Type, s.fd, nameBytes)
		return &DirectoryEntry{
			Name:     name,
			Location: classifyLocation(s.parent, name),
			Kind:     kind,
		}, nil
	}
}

// direntNameBytes extracts the name bytes from a single getdents(2) record,
// stopping at the first NUL terminator within the record's declared
// length. It never reads past reclen, which is itself bounds-checked
// against the buffer before this is called.
func direntNameBytes(record []byte, reclen int) []byte {
	raw := record[direntNameOffset:reclen]
	if i := bytes.IndexByte(raw, 0); i >= 0 {
		raw = raw[:i]
	}
	out := make([]byte, len(raw))
	copy(out, raw)
	return out
}

// kindFromDirentType classifies an entry's kind from its d_type field,
// falling back to an lstat when the type is DT_UNKNOWN (the case on some
// Linux filesystems that don't populate d_type).
func kindFromDirentType(dtype uint8, dirfd int, nameBytes []byte) EntryKind {
	switch dtype {
	case unix.DT_DIR:
		return EntryDirectory
	case unix.DT_LNK:
		return EntrySymbolicLink
	case unix.DT_REG:
		return EntryFile
	case unix.DT_UNKNOWN:
		return kindFromLstat(dirfd, nameBytes)
	default:
		return EntryOther
	}
}

// kindFromLstat falls back to an fstatat(AT_SYMLINK_NOFOLLOW) call when
// d_type didn't resolve the entry's kind. The raw name bytes are converted
// to a string and used directly as the syscall path component; Linux
// doesn't validate path bytes as UTF-8, so this works even for names that
// fail Name.DecodeStrict.
func kindFromLstat(dirfd int, nameBytes []byte) EntryKind {
	var metadata unix.Stat_t
	if err := fstatatRetryingOnEINTR(dirfd, string(nameBytes), &metadata, unix.AT_SYMLINK_NOFOLLOW); err != nil {
		return EntryOther
	}
	switch Mode(metadata.Mode) & ModeTypeMask {
	case ModeTypeDirectory:
		return EntryDirectory
	case ModeTypeSymbolicLink:
		return EntrySymbolicLink
	case ModeTypeFile:
		return EntryFile
	default:
		return EntryOther
	}
}

// close implements iteratorState.close.
func (s *posixIteratorState) close() error {
	return closeConsideringEINTR(s.fd)
}
