package filesystem

// syncFile forces the content of the open file descriptor/handle fd to
// stable storage according to durability, using the platform's preferred
// primitive (see syncFilePlatform in the platform-specific files).
func syncFile(fd uintptr, durability Durability) error {
	if durability == None {
		return nil
	}
	return syncFilePlatform(fd, durability)
}

// syncDirectory forces the directory entry for path (typically the parent
// directory a rename just occurred in) to stable storage. It is only ever
// called when durability is Full.
func syncDirectory(path string) error {
	return syncDirectoryPlatform(path)
}
