package filesystem

import "fmt"

// PlatformCode tags a platform-specific error code so that callers can
// distinguish POSIX errno values from Windows GetLastError values without
// parsing an error string. Exactly one of the two fields is meaningful,
// selected by Windows.
type PlatformCode struct {
	// Errno is the POSIX errno value, meaningful when Windows is false.
	Errno int
	// Win32 is the Windows GetLastError value, meaningful when Windows is
	// true.
	Win32 uint32
	// Windows indicates which of Errno/Win32 is populated.
	Windows bool
}

// String renders the platform code for diagnostic messages.
func (c PlatformCode) String() string {
	if c.Windows {
		return fmt.Sprintf("win32:%d", c.Win32)
	}
	return fmt.Sprintf("errno:%d", c.Errno)
}

// phaseError is embedded by the write-path error kinds in this taxonomy to
// record whether they occurred before or after the publish point, per the
// phase grouping in the design's error-handling section.
// DirectorySyncFailedAfterCommitError does not embed it and reports its
// phase through its own Published method; DecodeError and
// UndecodableEntryError carry no phase.
type phaseError struct {
	published bool
}

// Published reports whether the error occurred after the destination was
// already published (phase >= PhaseRenamedPublished). Pre-publish errors
// guarantee the destination is untouched; post-publish errors mean the
// destination holds the new content but some later step (durability) failed.
func (e phaseError) Published() bool { return e.published }

// ParentErrorKind enumerates the ways Parent Check can fail.
type ParentErrorKind int

const (
	ParentAccessDenied ParentErrorKind = iota
	ParentNotDirectory
	ParentMissing
	ParentStatFailed
	ParentInvalidPath
	ParentNetworkPathNotFound
	ParentCreationFailed
)

// ParentError indicates that the parent-directory verification or creation
// step failed. The destination is always untouched when this error is
// returned.
type ParentError struct {
	phaseError
	Kind      ParentErrorKind
	Path      string
	Operation string
	Code      PlatformCode
	Err       error
}

func (e *ParentError) Error() string {
	return fmt.Sprintf("parent check failed for %q (%s): %v", e.Path, e.Operation, e.Err)
}

func (e *ParentError) Unwrap() error { return e.Err }

// DestinationStatError indicates that the lstat of the destination path
// (step 3 of the atomic write protocol) failed for a reason other than
// non-existence.
type DestinationStatError struct {
	phaseError
	Path string
	Code PlatformCode
	Err  error
}

func (e *DestinationStatError) Error() string {
	return fmt.Sprintf("unable to stat destination %q: %v", e.Path, e.Err)
}

func (e *DestinationStatError) Unwrap() error { return e.Err }

// DestinationIsDirectoryError indicates that the destination path names an
// existing directory, which this package refuses to clobber with a file.
type DestinationIsDirectoryError struct {
	phaseError
	Path string
}

func (e *DestinationIsDirectoryError) Error() string {
	return fmt.Sprintf("destination %q is a directory", e.Path)
}

// TempFileCreationError indicates that a temp file could not be created
// after exhausting the retry budget (or on the first non-EEXIST failure).
type TempFileCreationError struct {
	phaseError
	Directory string
	Attempts  int
	Code      PlatformCode
	Err       error
}

func (e *TempFileCreationError) Error() string {
	return fmt.Sprintf("unable to create temp file in %q after %d attempts: %v", e.Directory, e.Attempts, e.Err)
}

func (e *TempFileCreationError) Unwrap() error { return e.Err }

// WriteError indicates that writing the payload to the temp file failed,
// recording how many bytes were successfully written before the failure.
type WriteError struct {
	phaseError
	BytesWritten  int64
	BytesExpected int64
	Code          PlatformCode
	Err           error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("write failed after %d/%d bytes: %v", e.BytesWritten, e.BytesExpected, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// SyncError indicates that a durability-related sync syscall (fsync,
// fdatasync, F_FULLFSYNC, F_BARRIERFSYNC, FlushFileBuffers) failed on the
// temp file.
type SyncError struct {
	phaseError
	Operation string
	Code      PlatformCode
	Err       error
}

func (e *SyncError) Error() string {
	return fmt.Sprintf("sync (%s) failed: %v", e.Operation, e.Err)
}

func (e *SyncError) Unwrap() error { return e.Err }

// CloseError indicates that closing the temp file descriptor failed. Per
// the EINTR discipline, close is never retried, so this always reflects a
// single, authoritative close attempt.
type CloseError struct {
	phaseError
	Code PlatformCode
	Err  error
}

func (e *CloseError) Error() string {
	return fmt.Sprintf("close failed: %v", e.Err)
}

func (e *CloseError) Unwrap() error { return e.Err }

// MetadataPreservationError indicates that copying one piece of metadata
// (permissions, ownership, timestamps, xattrs, ACLs) from the destination's
// prior stat onto the temp file failed. Operation names the specific
// preservation step that failed (e.g. "permissions", "ownership",
// "timestamps", "xattrs", "acl").
type MetadataPreservationError struct {
	phaseError
	Operation string
	Code      PlatformCode
	Err       error
}

func (e *MetadataPreservationError) Error() string {
	return fmt.Sprintf("unable to preserve %s: %v", e.Operation, e.Err)
}

func (e *MetadataPreservationError) Unwrap() error { return e.Err }

// RenameError indicates that the rename syscall (or its link+unlink
// fallback) failed for a reason other than destination-exists.
type RenameError struct {
	phaseError
	Source      string
	Destination string
	Code        PlatformCode
	Err         error
}

func (e *RenameError) Error() string {
	return fmt.Sprintf("rename %q -> %q failed: %v", e.Source, e.Destination, e.Err)
}

func (e *RenameError) Unwrap() error { return e.Err }

// DestinationExistsError indicates that a NoClobber write found the
// destination already present. The destination's content is unchanged.
type DestinationExistsError struct {
	phaseError
	Path string
}

func (e *DestinationExistsError) Error() string {
	return fmt.Sprintf("destination %q already exists", e.Path)
}

// DirectorySyncError indicates that opening or syncing the destination's
// parent directory failed. The only directory sync this package performs
// runs after the rename, so this error reaches callers wrapped in
// DirectorySyncFailedAfterCommitError rather than on its own.
type DirectorySyncError struct {
	phaseError
	Path string
	Code PlatformCode
	Err  error
}

func (e *DirectorySyncError) Error() string {
	return fmt.Sprintf("directory sync failed for %q: %v", e.Path, e.Err)
}

func (e *DirectorySyncError) Unwrap() error { return e.Err }

// DirectorySyncFailedAfterCommitError indicates that the post-rename
// directory sync failed. This is a post-publish error: the destination
// exists and holds the new content, but its durability (specifically, that
// the rename itself survives a crash) is not guaranteed. Callers must not
// attempt to "finish" durability by retrying; the publish already happened.
type DirectorySyncFailedAfterCommitError struct {
	Path string
	Code PlatformCode
	Err  error
}

func (e *DirectorySyncFailedAfterCommitError) Error() string {
	return fmt.Sprintf("directory sync failed after commit for %q (file is published but durability unconfirmed): %v", e.Path, e.Err)
}

func (e *DirectorySyncFailedAfterCommitError) Unwrap() error { return e.Err }

// Published always returns true: this error kind can only occur after the
// rename has already succeeded.
func (e *DirectorySyncFailedAfterCommitError) Published() bool { return true }

// RandomGenerationError indicates that generating the random temp-file name
// suffix failed (e.g. getrandom() hard failure on Linux/Musl).
type RandomGenerationError struct {
	phaseError
	Err error
}

func (e *RandomGenerationError) Error() string {
	return fmt.Sprintf("unable to generate random temp name: %v", e.Err)
}

func (e *RandomGenerationError) Unwrap() error { return e.Err }

// PlatformIncompatibleError indicates that a requested option combination
// cannot be honored on the current platform (e.g. preserve-ACLs without the
// optional platform shim).
type PlatformIncompatibleError struct {
	phaseError
	Feature string
}

func (e *PlatformIncompatibleError) Error() string {
	return fmt.Sprintf("%s is not supported on this platform", e.Feature)
}

// DirectOpenError indicates that opening (or creating/truncating) the
// destination for a direct-mode streaming write failed, for a reason other
// than destination-exists (which is reported as DestinationExistsError).
type DirectOpenError struct {
	phaseError
	Path string
	Code PlatformCode
	Err  error
}

func (e *DirectOpenError) Error() string {
	return fmt.Sprintf("unable to open %q for direct write: %v", e.Path, e.Err)
}

func (e *DirectOpenError) Unwrap() error { return e.Err }

// DecodeError indicates that a Name could not be strictly decoded in the
// platform's native filesystem encoding. It carries the original Name so
// that callers can emit hex dumps or otherwise inspect the raw bytes.
type DecodeError struct {
	Name Name
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("name is not validly encoded: %s", e.Name.Hex())
}

// UndecodableEntryError indicates that a walk with the StopAndThrow
// undecodable-entry policy encountered an entry whose name could not be
// decoded and validated as a path component.
type UndecodableEntryError struct {
	Parent string
	Name   Name
}

func (e *UndecodableEntryError) Error() string {
	return fmt.Sprintf("undecodable directory entry %s in %q", e.Name.Hex(), e.Parent)
}
