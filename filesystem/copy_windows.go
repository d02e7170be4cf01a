package filesystem

import (
	"os"
)

// readSymbolicLinkTarget reads the target of the symbolic link at path.
func readSymbolicLinkTarget(path string) (string, error) {
	return os.Readlink(path)
}

// createSymbolicLink creates a symbolic link at path pointing at target,
// reporting an existing path as DestinationExistsError (symlink creation
// never replaces).
func createSymbolicLink(target, path string) error {
	if err := os.Symlink(target, path); err != nil {
		if os.IsExist(err) {
			return &DestinationExistsError{Path: path}
		}
		return err
	}
	return nil
}
