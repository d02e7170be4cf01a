package filesystem

import (
	"os"
	"path/filepath"
	"strconv"

	"golang.org/x/sys/windows"

	"github.com/hectane/go-acl"
)

// validateAtomicWriteOptions rejects option combinations this platform
// can't honor: Windows has no extended attribute analogue at this layer,
// and ACL preservation (beyond the permission-bit mapping go-acl provides)
// needs a security-descriptor shim that isn't wired in.
func validateAtomicWriteOptions(options AtomicWriteOptions) error {
	if options.PreserveExtendedAttributes {
		return &PlatformIncompatibleError{Feature: "extended attribute preservation"}
	}
	if options.PreserveACLs {
		return &PlatformIncompatibleError{Feature: "ACL preservation"}
	}
	return nil
}

// destinationStat records the parts of the destination's pre-write state
// that metadata preservation needs, captured before the temp file is
// created so preservation reflects the destination's state at the start of
// the operation.
type destinationStat struct {
	exists     bool
	attributes uint32
	creation   windows.Filetime
	lastAccess windows.Filetime
	lastWrite  windows.Filetime
}

// statDestination queries path's attributes and timestamps. A non-existent
// destination is not an error; destinationStat.exists is false in that
// case.
func statDestination(path string) (*destinationStat, error) {
	path16, err := windows.UTF16PtrFromString(fixLongPath(path))
	if err != nil {
		return nil, &DestinationStatError{Path: path, Err: err}
	}

	var data windows.Win32finddata
	handle, findErr := windows.FindFirstFile(path16, &data)
	if findErr != nil {
		if findErr == windows.ERROR_FILE_NOT_FOUND || findErr == windows.ERROR_PATH_NOT_FOUND {
			return &destinationStat{}, nil
		}
		return nil, &DestinationStatError{Path: path, Code: PlatformCode{Windows: true, Win32: win32CodeOf(findErr)}, Err: findErr}
	}
	windows.FindClose(handle)

	if data.FileAttributes&windows.FILE_ATTRIBUTE_DIRECTORY != 0 {
		return nil, &DestinationIsDirectoryError{Path: path}
	}

	return &destinationStat{
		exists:     true,
		attributes: data.FileAttributes,
		creation:   data.CreationTime,
		lastAccess: data.LastAccessTime,
		lastWrite:  data.LastWriteTime,
	}, nil
}

// createAtomicTempFile creates a new temp file in directory, following the
// ".{basename}.atomic.{pid}.{random_hex}.tmp" naming convention, retrying up
// to maxTempFileCreateAttempts times on a name collision with a freshly
// generated random token each time. The file is created hidden (so an
// in-progress write doesn't show up in ordinary directory listings) and with
// the temporary attribute (so the cache manager deprioritizes flushing data
// that may be discarded); both attributes are replaced with the final
// attribute set before the rename publishes the file.
func createAtomicTempFile(directory, basename string) (string, *os.File, error) {
	var lastErr error
	for attempt := 0; attempt < maxTempFileCreateAttempts; attempt++ {
		token, err := randomToken()
		if err != nil {
			return "", nil, err
		}

		name := "." + basename + ".atomic." + strconv.Itoa(os.Getpid()) + "." + token + ".tmp"
		path := fixLongPath(filepath.Join(directory, name))

		path16, err := windows.UTF16PtrFromString(path)
		if err != nil {
			return "", nil, &TempFileCreationError{Directory: directory, Attempts: attempt + 1, Err: err}
		}

		handle, err := windows.CreateFile(
			path16,
			windows.GENERIC_READ|windows.GENERIC_WRITE,
			0,
			nil,
			windows.CREATE_NEW,
			windows.FILE_ATTRIBUTE_HIDDEN|windows.FILE_ATTRIBUTE_TEMPORARY,
			0,
		)
		if err == nil {
			return path, os.NewFile(uintptr(handle), path), nil
		}
		if err != windows.ERROR_FILE_EXISTS && err != windows.ERROR_ALREADY_EXISTS {
			return "", nil, &TempFileCreationError{Directory: directory, Attempts: attempt + 1, Code: PlatformCode{Windows: true, Win32: win32CodeOf(err)}, Err: err}
		}
		lastErr = err
	}

	return "", nil, &TempFileCreationError{Directory: directory, Attempts: maxTempFileCreateAttempts, Code: PlatformCode{Windows: true, Win32: win32CodeOf(lastErr)}, Err: lastErr}
}

// setTempAttributes replaces the temp file's attributes (which include the
// hidden and temporary bits set at creation) with the final attribute set
// that should ride through the rename to the destination. A zero value for
// attributes means "no special attributes" and maps to
// FILE_ATTRIBUTE_NORMAL, which is only valid when used alone.
func setTempAttributes(tempPath string, attributes uint32) error {
	if attributes == 0 {
		attributes = windows.FILE_ATTRIBUTE_NORMAL
	}
	path16, err := windows.UTF16PtrFromString(fixLongPath(tempPath))
	if err != nil {
		return err
	}
	return windows.SetFileAttributes(path16, attributes)
}

// preserveDestinationMetadata copies timestamps and the preservable
// attribute subset (read-only, hidden, system) from the destination's
// pre-write state onto the temp file, so they ride through the rename. All
// changes target the temp file; the destination itself is never modified
// before the rename. Even when no preservation is requested, the temp
// file's hidden/temporary creation attributes are still replaced here so
// they don't leak onto the published file.
func preserveDestinationMetadata(file *os.File, destination *destinationStat, options AtomicWriteOptions, tempPath string) error {
	handle := windows.Handle(file.Fd())

	if options.PreserveTimestamps {
		if err := windows.SetFileTime(handle, &destination.creation, &destination.lastAccess, &destination.lastWrite); err != nil {
			return &MetadataPreservationError{Operation: "timestamps", Code: PlatformCode{Windows: true, Win32: win32CodeOf(err)}, Err: err}
		}
	}

	var attributes uint32
	if options.PreservePermissions {
		attributes = destination.attributes & (windows.FILE_ATTRIBUTE_READONLY | windows.FILE_ATTRIBUTE_HIDDEN | windows.FILE_ATTRIBUTE_SYSTEM)
	}
	if err := setTempAttributes(tempPath, attributes); err != nil {
		return &MetadataPreservationError{Operation: "attributes", Code: PlatformCode{Windows: true, Win32: win32CodeOf(err)}, Err: err}
	}

	return nil
}

// applyNewFilePermissions sets up a freshly created temp file (one with no
// pre-existing destination to preserve from) for publish: the temp-only
// creation attributes are cleared and, if permission bits were requested,
// they're applied via go-acl's mode-to-ACL mapping (the read-only bit plus
// owner/group/world access entries; Windows has no direct analogue of the
// executable bits).
func applyNewFilePermissions(file *os.File, permissions Mode, tempPath string) error {
	if err := setTempAttributes(tempPath, 0); err != nil {
		return &MetadataPreservationError{Operation: "attributes", Code: PlatformCode{Windows: true, Win32: win32CodeOf(err)}, Err: err}
	}

	mode := permissions & ModePermissionsMask
	if mode == 0 {
		return nil
	}
	if err := acl.Chmod(tempPath, os.FileMode(mode)); err != nil {
		return &MetadataPreservationError{Operation: "permissions", Err: err}
	}
	return nil
}
