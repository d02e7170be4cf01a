//go:build !windows && !linux

package filesystem

// extraOpenFlags specifies platform specific flags to include in open
// calls. Only Linux needs anything here (O_LARGEFILE); other POSIX
// platforms have no extra bits to add.
const extraOpenFlags = 0
