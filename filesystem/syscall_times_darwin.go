package filesystem

import (
	"golang.org/x/sys/unix"
)

// extractModificationTime is a convenience function for extracting the
// modification time specification from a Stat_t structure. Darwin's Stat_t
// uses Mtimespec rather than Mtim.
func extractModificationTime(metadata *unix.Stat_t) unix.Timespec {
	return metadata.Mtimespec
}

// extractAccessTime extracts the access time specification from a Stat_t
// structure.
func extractAccessTime(metadata *unix.Stat_t) unix.Timespec {
	return metadata.Atimespec
}
