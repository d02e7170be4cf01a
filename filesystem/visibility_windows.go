package filesystem

import (
	"fmt"

	"golang.org/x/sys/windows"
)

// MarkHidden ensures that a path is hidden, adding the hidden attribute to
// whatever attributes the path already carries.
func MarkHidden(path string) error {
	// Convert the path to UTF-16 encoding for the system call.
	path16, err := windows.UTF16PtrFromString(fixLongPath(path))
	if err != nil {
		return fmt.Errorf("unable to convert path encoding: %w", err)
	}

	// Get the existing file attributes.
	attributes, err := windows.GetFileAttributes(path16)
	if err != nil {
		return fmt.Errorf("unable to get file attributes: %w", err)
	}

	// Mark the hidden bit.
	attributes |= windows.FILE_ATTRIBUTE_HIDDEN

	// Set the updated attributes.
	if err := windows.SetFileAttributes(path16, attributes); err != nil {
		return fmt.Errorf("unable to set file attributes: %w", err)
	}

	// Success.
	return nil
}
