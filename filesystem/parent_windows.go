package filesystem

import (
	"os"

	"golang.org/x/sys/windows"
)

// verifyOrCreateParent implements VerifyOrCreateParent on Windows using
// GetFileAttributesW.
func verifyOrCreateParent(directory string, createIntermediates bool) error {
	path16, err := windows.UTF16PtrFromString(fixLongPath(directory))
	if err != nil {
		return &ParentError{
			Kind:      ParentInvalidPath,
			Path:      directory,
			Operation: "GetFileAttributesW",
			Err:       err,
		}
	}

	attributes, err := windows.GetFileAttributes(path16)
	if err == nil {
		if attributes&windows.FILE_ATTRIBUTE_DIRECTORY == 0 {
			return &ParentError{
				Kind:      ParentNotDirectory,
				Path:      directory,
				Operation: "GetFileAttributesW",
			}
		}
		return nil
	}

	code := PlatformCode{Windows: true, Win32: win32CodeOf(err)}

	switch err {
	case windows.ERROR_FILE_NOT_FOUND, windows.ERROR_PATH_NOT_FOUND:
		if !createIntermediates {
			return &ParentError{
				Kind:      ParentMissing,
				Path:      directory,
				Operation: "GetFileAttributesW",
				Code:      code,
				Err:       err,
			}
		}
		if createErr := createIntermediateDirectories(directory); createErr != nil {
			return &ParentError{
				Kind:      ParentCreationFailed,
				Path:      directory,
				Operation: "CreateDirectoryW",
				Err:       createErr,
			}
		}
		return nil
	case windows.ERROR_ACCESS_DENIED:
		return &ParentError{
			Kind:      ParentAccessDenied,
			Path:      directory,
			Operation: "GetFileAttributesW",
			Code:      code,
			Err:       err,
		}
	case windows.ERROR_INVALID_NAME, windows.ERROR_BAD_PATHNAME, windows.ERROR_INVALID_DRIVE:
		return &ParentError{
			Kind:      ParentInvalidPath,
			Path:      directory,
			Operation: "GetFileAttributesW",
			Code:      code,
			Err:       err,
		}
	case windows.ERROR_BAD_NETPATH, windows.ERROR_BAD_NET_NAME:
		return &ParentError{
			Kind:      ParentNetworkPathNotFound,
			Path:      directory,
			Operation: "GetFileAttributesW",
			Code:      code,
			Err:       err,
		}
	default:
		return &ParentError{
			Kind:      ParentStatFailed,
			Path:      directory,
			Operation: "GetFileAttributesW",
			Code:      code,
			Err:       err,
		}
	}
}

// win32CodeOf extracts the raw Win32 error code from an error returned by
// golang.org/x/sys/windows, if any.
func win32CodeOf(err error) uint32 {
	if errno, ok := err.(windows.Errno); ok {
		return uint32(errno)
	}
	return 0
}

// mkdirTolerateExists creates directory, treating the case where it already
// exists as a directory as success.
func mkdirTolerateExists(directory string) error {
	if err := os.Mkdir(directory, 0700); err != nil {
		if !os.IsExist(err) {
			return err
		}
		path16, convErr := windows.UTF16PtrFromString(fixLongPath(directory))
		if convErr != nil {
			return err
		}
		attributes, attrErr := windows.GetFileAttributes(path16)
		if attrErr != nil || attributes&windows.FILE_ATTRIBUTE_DIRECTORY == 0 {
			return err
		}
	}
	return nil
}
