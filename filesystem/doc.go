// Package filesystem provides cross-platform primitives for crash-safe file
// publication and directory traversal. Its core guarantee is that, after any
// crash, power loss, or cancellation, a path written via WriteFileAtomic or
// OpenStreamingWrite contains either the complete new content or the prior
// content - never a partial or corrupted file. This is achieved with a
// temp-file/sync/rename/directory-sync protocol unified across POSIX
// (Darwin/Linux/BSD) and Windows (NTFS).
//
// A secondary, interacting facility is directory iteration with
// raw-byte/raw-code-unit name fidelity: names that can't be validly decoded
// in the platform's native filesystem encoding are still preserved, compared,
// and usable to form syscall paths, rather than being silently mangled.
//
// The package is synchronous and blocking; all exported functions perform
// direct syscalls on the calling goroutine and make no internal concurrency
// decisions. Concurrency, if wanted, is the caller's responsibility.
package filesystem
