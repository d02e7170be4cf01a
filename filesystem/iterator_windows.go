package filesystem

import (
	"io"
	"path/filepath"

	"golang.org/x/sys/windows"
)

// windowsIteratorState implements iteratorState with direct
// FindFirstFileW/FindNextFileW calls, one step at a time, rather than
// batching an entire directory's contents up front. This matters for the
// ordering requirement documented on next: FindNextFileW overwrites the
// shared WIN32_FIND_DATAW buffer it's given, so the current entry's name
// and attributes must be snapshotted into locals before the next call, and
// GetLastError must be read immediately after FindNextFileW with no
// intervening API calls.
type windowsIteratorState struct {
	handle  windows.Handle
	parent  string
	pending *windows.Win32finddata
	done    bool
	err     error
}

// openIteratorState opens path for directory iteration via
// FindFirstFileW("path\*").
func openIteratorState(path string) (iteratorState, error) {
	pattern := filepath.Join(path, "*")
	pattern16, err := windows.UTF16PtrFromString(fixLongPath(pattern))
	if err != nil {
		return nil, &ParentError{Kind: ParentInvalidPath, Path: path, Operation: "FindFirstFileW", Err: err}
	}

	var data windows.Win32finddata
	handle, err := windows.FindFirstFile(pattern16, &data)
	if err != nil {
		if err == windows.ERROR_FILE_NOT_FOUND {
			// An empty directory still has "." and "..", so ERROR_FILE_NOT_FOUND
			// here means the pattern matched nothing at all, which happens for
			// a directory containing only those two entries on some drivers.
			return &windowsIteratorState{parent: path, done: true}, nil
		}
		return nil, &ParentError{Kind: ParentStatFailed, Path: path, Operation: "FindFirstFileW", Code: PlatformCode{Windows: true, Win32: win32CodeOf(err)}, Err: err}
	}

	return &windowsIteratorState{handle: handle, parent: path, pending: &data}, nil
}

// next implements iteratorState.next.
func (s *windowsIteratorState) next() (*DirectoryEntry, error) {
	for {
		if s.done {
			if s.err != nil {
				err := s.err
				s.err = nil
				return nil, err
			}
			return nil, io.EOF
		}

		// Snapshot the current entry's name and attributes into locals before
		// calling FindNextFileW, which will overwrite s.pending's buffer.
		data := *s.pending
		name := NewNameFromUTF16(utf16CopyUntilNull(data.FileName[:]))

		// GetLastError must be consulted immediately after FindNextFileW with
		// no intervening calls; golang.org/x/sys/windows.FindNextFile already
		// does this internally and returns the result as advanceErr, so no
		// separate windows.GetLastError call is needed or safe to insert here.
		advanceErr := windows.FindNextFile(s.handle, s.pending)
		if advanceErr != nil {
			// The enumeration is over either way; release the search handle
			// now and record any real failure so it surfaces after the entry
			// snapshotted above has been delivered.
			s.done = true
			windows.FindClose(s.handle)
			s.handle = 0
			if advanceErr != windows.ERROR_NO_MORE_FILES {
				s.err = advanceErr
			}
		}

		if name.IsDotOrDotDot() {
			continue
		}

		kind := kindFromFindData(&data)
		return &DirectoryEntry{
			Name:     name,
			Location: classifyLocation(s.parent, name),
			Kind:     kind,
		}, nil
	}
}

// kindFromFindData classifies an entry's kind from its WIN32_FIND_DATAW
// attributes: directories by FILE_ATTRIBUTE_DIRECTORY, any reparse point
// (junction, mount point, cloud-storage placeholder, or symbolic link) as
// EntryOther per the conservative classification this package uses, and
// everything else as a file.
func kindFromFindData(data *windows.Win32finddata) EntryKind {
	if data.FileAttributes&windows.FILE_ATTRIBUTE_REPARSE_POINT != 0 {
		return EntryOther
	}
	if data.FileAttributes&windows.FILE_ATTRIBUTE_DIRECTORY != 0 {
		return EntryDirectory
	}
	return EntryFile
}

// close implements iteratorState.close.
func (s *windowsIteratorState) close() error {
	if s.handle == 0 || s.handle == windows.InvalidHandle {
		return nil
	}
	handle := s.handle
	s.handle = 0
	return windows.FindClose(handle)
}
