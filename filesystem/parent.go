package filesystem

import "path/filepath"

// VerifyOrCreateParent verifies that directory exists and is a directory,
// optionally creating it (and any missing intermediate directories) when
// createIntermediates is true. It is the Parent Check step of the atomic
// and streaming write protocols: reached via stat (not lstat) on POSIX, so
// the final path component may itself be a symlink to a directory.
//
// Only ENOENT (POSIX) / ERROR_FILE_NOT_FOUND|ERROR_PATH_NOT_FOUND (Windows)
// ever triggers creation; every other stat failure is terminal, since
// creating directories cannot repair a permissions problem, a loop, or a
// name that's too long. A race where some other actor creates the
// directory between our stat and our mkdir is treated as success, not as
// an error - the postcondition ("directory exists") still holds.
func VerifyOrCreateParent(directory string, createIntermediates bool) error {
	return verifyOrCreateParent(directory, createIntermediates)
}

// createIntermediateDirectories creates directory and any missing parents,
// tolerating the case where a concurrent actor wins the race and creates it
// first.
func createIntermediateDirectories(directory string) error {
	parent := filepath.Dir(directory)
	if parent != directory {
		if err := verifyOrCreateParent(parent, true); err != nil {
			return err
		}
	}
	return mkdirTolerateExists(directory)
}
