package filesystem

import (
	"os"

	"golang.org/x/sys/windows"
)

// prepareTempForPublish readies a streaming write's temp file for its
// rename by replacing the hidden/temporary creation attributes, which would
// otherwise ride through the rename onto the published file.
func prepareTempForPublish(tempPath string) error {
	if err := setTempAttributes(tempPath, 0); err != nil {
		return &MetadataPreservationError{Operation: "attributes", Code: PlatformCode{Windows: true, Win32: win32CodeOf(err)}, Err: err}
	}
	return nil
}

// openDirectDestination opens path for a direct (non-atomic) streaming
// write, creating or truncating it according to strategy.
func openDirectDestination(path string, strategy DirectStrategy) (*os.File, error) {
	path16, err := windows.UTF16PtrFromString(fixLongPath(path))
	if err != nil {
		return nil, &DirectOpenError{Path: path, Err: err}
	}

	var disposition uint32
	switch strategy {
	case DirectCreate:
		disposition = windows.CREATE_NEW
	case DirectTruncate:
		disposition = windows.CREATE_ALWAYS
	}

	handle, err := windows.CreateFile(
		path16,
		windows.GENERIC_WRITE,
		0,
		nil,
		disposition,
		windows.FILE_ATTRIBUTE_NORMAL,
		0,
	)
	if err != nil {
		if strategy == DirectCreate && (err == windows.ERROR_FILE_EXISTS || err == windows.ERROR_ALREADY_EXISTS) {
			return nil, &DestinationExistsError{Path: path}
		}
		return nil, &DirectOpenError{Path: path, Code: PlatformCode{Windows: true, Win32: win32CodeOf(err)}, Err: err}
	}
	return os.NewFile(uintptr(handle), path), nil
}
