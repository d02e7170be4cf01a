package filesystem

import (
	"golang.org/x/sys/windows"
)

// syncFilePlatform implements the Windows durability mapping: both Full and
// DataOnly flush to disk via FlushFileBuffers, since Windows doesn't expose
// a cheaper data-only variant at this layer.
func syncFilePlatform(fd uintptr, durability Durability) error {
	if durability == None {
		return nil
	}
	if err := windows.FlushFileBuffers(windows.Handle(fd)); err != nil {
		return &SyncError{Operation: "FlushFileBuffers", Code: PlatformCode{Windows: true, Win32: win32CodeOf(err)}, Err: err}
	}
	return nil
}

// syncDirectoryPlatform opens a handle to the directory at path and flushes
// it, so that the preceding rename's directory-entry update is durable.
func syncDirectoryPlatform(path string) error {
	path16, err := windows.UTF16PtrFromString(fixLongPath(path))
	if err != nil {
		return &DirectorySyncError{Path: path, Err: err}
	}

	handle, err := windows.CreateFile(
		path16,
		windows.GENERIC_READ,
		windows.FILE_SHARE_READ|windows.FILE_SHARE_WRITE|windows.FILE_SHARE_DELETE,
		nil,
		windows.OPEN_EXISTING,
		windows.FILE_FLAG_BACKUP_SEMANTICS,
		0,
	)
	if err != nil {
		return &DirectorySyncError{Path: path, Code: PlatformCode{Windows: true, Win32: win32CodeOf(err)}, Err: err}
	}
	defer windows.CloseHandle(handle)

	if err := windows.FlushFileBuffers(handle); err != nil {
		return &DirectorySyncError{Path: path, Code: PlatformCode{Windows: true, Win32: win32CodeOf(err)}, Err: err}
	}
	return nil
}
