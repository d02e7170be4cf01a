package filesystem

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"golang.org/x/sys/windows"
)

// ensureValidName verifies that the provided name does not reference the
// current directory, the parent directory, or contain a path separator
// character. Unlike the POSIX implementation, both "/" and "\" are rejected
// since Windows treats both as separators.
func ensureValidName(name string) error {
	if name == "." {
		return errors.New("name is directory reference")
	} else if name == ".." {
		return errors.New("name is parent directory reference")
	}
	if strings.IndexByte(name, '/') != -1 || strings.IndexByte(name, '\\') != -1 {
		return errors.New("path separator appears in name")
	}
	return nil
}

// Directory represents an open directory, returned by Open for directory
// paths. Unlike the POSIX implementation, there's no portable equivalent of
// descriptor-relative (*at) operations on Windows, so the Directory tracks
// its own fully-resolved path and child operations are performed by joining
// that path with the requested name.
type Directory struct {
	// handle is the open Windows handle for the directory, opened with
	// FILE_FLAG_BACKUP_SEMANTICS.
	handle windows.Handle
	// file wraps handle for convenient Close behavior.
	file *os.File
	// path is the fully-resolved path used to open the directory.
	path string
}

// Close closes the directory.
func (d *Directory) Close() error {
	return d.file.Close()
}

// child computes the joined, long-path-fixed path for a child name.
func (d *Directory) child(name string) string {
	return fixLongPath(filepath.Join(d.path, name))
}

// ReadContentNames queries the directory contents and returns their base
// names as decoded strings, skipping "." and "..". Callers that need
// raw-code-unit name fidelity or per-entry kinds should use Iterator
// instead; this is the lightweight listing used for name-pattern sweeps
// like PruneTemporaries.
func (d *Directory) ReadContentNames() ([]string, error) {
	entries, err := d.findEntries()
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.name)
	}
	return names, nil
}

// findEntry captures one FindFirstFile/FindNextFile result: the entry's
// decoded name alongside its find data. Raw-code-unit name fidelity is
// Iterator's job; this listing exists for decoded-name sweeps.
type findEntry struct {
	name string
	findData
}

type findData = windows.Win32finddata

// findEntries performs the FindFirstFileW/FindNextFileW enumeration and
// returns one findEntry per child, skipping "." and "..". The snapshot
// reflects directory state at a single point in time; no effort is made to
// merge it with concurrent modifications.
func (d *Directory) findEntries() ([]findEntry, error) {
	pattern := filepath.Join(d.path, "*")
	pattern16, err := windows.UTF16PtrFromString(fixLongPath(pattern))
	if err != nil {
		return nil, errors.Wrap(err, "unable to convert pattern to UTF-16")
	}

	var data windows.Win32finddata
	handle, err := windows.FindFirstFile(pattern16, &data)
	if err != nil {
		if err == windows.ERROR_FILE_NOT_FOUND {
			return nil, nil
		}
		return nil, errors.Wrap(err, "unable to enumerate directory")
	}
	defer windows.FindClose(handle)

	var results []findEntry
	for {
		name := windows.UTF16ToString(data.FileName[:])
		if name != "." && name != ".." {
			results = append(results, findEntry{name: name, findData: data})
		}

		if err := windows.FindNextFile(handle, &data); err != nil {
			if err == windows.ERROR_NO_MORE_FILES {
				break
			}
			return nil, errors.Wrap(err, "unable to continue directory enumeration")
		}
	}

	return results, nil
}

// utf16CopyUntilNull copies units up to (but not including) the first null
// terminator, so raw Name construction from a fixed-size WIN32_FIND_DATA
// buffer doesn't carry trailing zero padding.
func utf16CopyUntilNull(units []uint16) []uint16 {
	for i, u := range units {
		if u == 0 {
			out := make([]uint16, i)
			copy(out, units[:i])
			return out
		}
	}
	out := make([]uint16, len(units))
	copy(out, units)
	return out
}

// RemoveFile deletes a file with the specified name inside the directory.
func (d *Directory) RemoveFile(name string) error {
	if err := ensureValidName(name); err != nil {
		return err
	}
	return os.Remove(d.child(name))
}

// Rename performs a rename operation from one filesystem location (the
// source) to another (the target). Each location can be specified either by
// a combination of directory and (non-path) name or by path (with
// corresponding nil Directory object).
//
// This function does not support cross-device renames. To detect whether or
// not an error is due to an attempted cross-device rename, use the
// IsCrossDeviceError function.
func Rename(
	sourceDirectory *Directory, sourceNameOrPath string,
	targetDirectory *Directory, targetNameOrPath string,
) error {
	if sourceDirectory != nil {
		if err := ensureValidName(sourceNameOrPath); err != nil {
			return errors.Wrap(err, "source name invalid")
		}
		sourceNameOrPath = sourceDirectory.child(sourceNameOrPath)
	}
	if targetDirectory != nil {
		if err := ensureValidName(targetNameOrPath); err != nil {
			return errors.Wrap(err, "target name invalid")
		}
		targetNameOrPath = targetDirectory.child(targetNameOrPath)
	}

	source16, err := windows.UTF16PtrFromString(fixLongPath(sourceNameOrPath))
	if err != nil {
		return errors.Wrap(err, "unable to convert source path to UTF-16")
	}
	target16, err := windows.UTF16PtrFromString(fixLongPath(targetNameOrPath))
	if err != nil {
		return errors.Wrap(err, "unable to convert target path to UTF-16")
	}

	return windows.MoveFileEx(source16, target16, windows.MOVEFILE_REPLACE_EXISTING|windows.MOVEFILE_WRITE_THROUGH)
}

// IsCrossDeviceError checks whether or not an error returned from rename
// represents a cross-device error.
func IsCrossDeviceError(err error) bool {
	return err == windows.ERROR_NOT_SAME_DEVICE
}
