package filesystem

import (
	"golang.org/x/sys/windows"

	"github.com/crashsafe/atomicfs/internal/logging"
)

// publishRename performs the publish-time rename from tempPath to destPath
// according to strategy. ReplaceExisting uses MoveFileExW with
// MOVEFILE_REPLACE_EXISTING; NoClobber omits that flag so the call fails if
// the destination exists. ERROR_ACCESS_DENIED is deliberately never mapped
// to DestinationExistsError - it is too ambiguous (it can equally mean a
// real permission problem) and masking it would hide genuine failures.
func publishRename(tempPath, destPath string, strategy Strategy, logger *logging.Logger) error {
	source16, err := windows.UTF16PtrFromString(fixLongPath(tempPath))
	if err != nil {
		return &RenameError{Source: tempPath, Destination: destPath, Err: err}
	}
	dest16, err := windows.UTF16PtrFromString(fixLongPath(destPath))
	if err != nil {
		return &RenameError{Source: tempPath, Destination: destPath, Err: err}
	}

	flags := uint32(windows.MOVEFILE_WRITE_THROUGH)
	if strategy == ReplaceExisting {
		flags |= windows.MOVEFILE_REPLACE_EXISTING
	}

	err = windows.MoveFileEx(source16, dest16, flags)
	if err == nil {
		return nil
	}

	switch err {
	case windows.ERROR_ALREADY_EXISTS, windows.ERROR_FILE_EXISTS:
		return &DestinationExistsError{Path: destPath}
	default:
		return &RenameError{
			Source:      tempPath,
			Destination: destPath,
			Code:        PlatformCode{Windows: true, Win32: win32CodeOf(err)},
			Err:         err,
		}
	}
}
