package filesystem

// Strategy controls what happens when the destination path already exists
// at commit time.
type Strategy uint8

const (
	// ReplaceExisting allows the new content to replace whatever currently
	// occupies the destination path, atomically.
	ReplaceExisting Strategy = iota
	// NoClobber refuses to replace an existing destination. The write
	// proceeds through temp-file creation and syncing, but the final
	// publish step fails with DestinationExistsError and the destination
	// is left untouched.
	NoClobber
)

// String renders the strategy name.
func (s Strategy) String() string {
	switch s {
	case ReplaceExisting:
		return "replace-existing"
	case NoClobber:
		return "no-clobber"
	default:
		return "unknown"
	}
}

// Durability controls how aggressively the publish protocol forces data to
// stable storage before returning.
type Durability uint8

const (
	// Full syncs the temp file's content before rename and syncs the
	// destination directory after rename, so that both the content and the
	// rename itself survive a crash.
	Full Durability = iota
	// DataOnly syncs the temp file's content before rename but skips the
	// directory sync, so the rename may not survive a crash even though the
	// content, once visible, is intact.
	DataOnly
	// None skips both syncs. Useful for scratch or cache writes where
	// crash-consistency is not required and the extra latency is unwanted.
	None
)

// String renders the durability name.
func (d Durability) String() string {
	switch d {
	case Full:
		return "full"
	case DataOnly:
		return "data-only"
	case None:
		return "none"
	default:
		return "unknown"
	}
}

// AtomicWriteOptions configures WriteFileAtomic.
type AtomicWriteOptions struct {
	// Strategy controls clobber behavior at publish time.
	Strategy Strategy
	// Durability controls how forcefully the new content is synced to
	// stable storage.
	Durability Durability
	// CreateIntermediates causes missing parent directories to be created
	// (non-recursively verified, recursively created) before the write is
	// attempted.
	CreateIntermediates bool
	// PreservePermissions copies the destination's existing permission bits
	// onto the new content, if the destination already exists.
	PreservePermissions bool
	// PreserveOwnership copies the destination's existing owner/group onto
	// the new content, if the destination already exists and the platform
	// and privilege level allow it.
	PreserveOwnership bool
	// StrictOwnership causes ownership-preservation failures to fail the
	// write. Without it, the permission errors that unprivileged callers
	// normally hit when restoring another user's ownership are silently
	// ignored.
	StrictOwnership bool
	// PreserveTimestamps copies the destination's existing modification
	// time onto the new content, if the destination already exists.
	PreserveTimestamps bool
	// PreserveExtendedAttributes copies the destination's extended
	// attributes onto the new content, on platforms that support them.
	// Attributes the destination filesystem can't represent, and
	// attributes that vanish mid-copy, are skipped.
	PreserveExtendedAttributes bool
	// PreserveACLs copies the destination's access control lists onto the
	// new content, where a platform shim for doing so is available.
	// Requesting it without such a shim fails with
	// PlatformIncompatibleError before any content is written.
	PreserveACLs bool
	// Permissions specifies the permission bits to apply to the new file
	// when the destination does not yet exist. It is not applied when the
	// destination already exists, whether or not PreservePermissions is set.
	Permissions Mode
}

// DefaultAtomicWriteOptions returns the options used when none are supplied
// explicitly: replace existing content, sync fully, and don't attempt to
// preserve metadata.
func DefaultAtomicWriteOptions() AtomicWriteOptions {
	return AtomicWriteOptions{
		Strategy:    ReplaceExisting,
		Durability:  Full,
		Permissions: Mode(0o600),
	}
}

// CommitMode selects how a streaming write's Commit step publishes content.
type CommitMode uint8

const (
	// CommitAtomic renames the temp file into place, following the same
	// protocol as WriteFileAtomic.
	CommitAtomic CommitMode = iota
	// CommitDirect writes are already targeting the destination path
	// in-place (no temp file, no rename); Commit only performs the
	// requested durability syncs. This mode is for callers that have
	// already decided they don't need crash-atomicity (e.g. append-only
	// logs) but still want controlled durability. There is no atomic
	// guarantee on crash in this mode.
	CommitDirect
)

// DirectStrategy controls how a direct (non-atomic) streaming write treats
// an existing destination.
type DirectStrategy uint8

const (
	// DirectCreate fails if the destination already exists.
	DirectCreate DirectStrategy = iota
	// DirectTruncate creates the destination if absent, or truncates it to
	// zero length if present, before the first chunk is written.
	DirectTruncate
)

// String renders the direct strategy name.
func (s DirectStrategy) String() string {
	switch s {
	case DirectCreate:
		return "create"
	case DirectTruncate:
		return "truncate"
	default:
		return "unknown"
	}
}

// DirectWriteOptions configures a CommitDirect streaming write.
type DirectWriteOptions struct {
	// Strategy controls what happens to an existing destination.
	Strategy DirectStrategy
	// Durability controls how forcefully the content is synced to stable
	// storage once all chunks have been written. Directory sync is never
	// performed in direct mode, since there is no rename to make durable.
	Durability Durability
	// ExpectedSize is a best-effort size hint (in bytes) used to
	// pre-extend the destination's allocation on platforms that support it
	// (e.g. F_PREALLOCATE on Darwin). A value of zero means no hint is
	// given. Preallocation never changes the file's apparent length - only
	// bytes actually written do - and failure to preallocate is never an
	// error; it's purely a performance hint.
	ExpectedSize int64
}

// StreamingWriteOptions configures OpenStreamingWrite.
type StreamingWriteOptions struct {
	// Commit selects the publish mode.
	Commit CommitMode
	// Atomic holds the options used when Commit is CommitAtomic.
	Atomic AtomicWriteOptions
	// Direct holds the options used when Commit is CommitDirect.
	Direct DirectWriteOptions
	// CreateIntermediates causes missing parent directories to be created
	// before the write is attempted, in either commit mode.
	CreateIntermediates bool
}

// DefaultStreamingWriteOptions returns the options used when none are
// supplied explicitly.
func DefaultStreamingWriteOptions() StreamingWriteOptions {
	return StreamingWriteOptions{
		Commit: CommitAtomic,
		Atomic: DefaultAtomicWriteOptions(),
	}
}

// UndecodableEntryPolicy controls how Walk handles directory entries whose
// raw name cannot be decoded and validated as a usable path component.
type UndecodableEntryPolicy uint8

const (
	// SkipUndecodable silently omits undecodable entries from the walk.
	SkipUndecodable UndecodableEntryPolicy = iota
	// EmitUndecodable reports undecodable entries to the callback like any
	// other entry, using Name's raw-byte identity rather than a decoded
	// string.
	EmitUndecodable
	// StopAndThrowUndecodable aborts the walk and returns
	// *UndecodableEntryError as soon as an undecodable entry is found.
	StopAndThrowUndecodable
)

// WalkOptions configures Walk.
type WalkOptions struct {
	// MaxDepth limits recursion depth below the walk root. A value of zero
	// means only the root's direct children are visited; a negative value
	// means unlimited depth.
	MaxDepth int
	// FollowSymbolicLinks causes symbolic links to directories to be
	// traversed as directories rather than reported as leaf entries.
	FollowSymbolicLinks bool
	// DetectCycles tracks visited (device, inode) pairs while following
	// symbolic links and stops descending into a directory that is already
	// an ancestor on the current branch of the walk. Ignored unless
	// FollowSymbolicLinks is true.
	DetectCycles bool
	// SkipHidden causes entries whose name is hidden by a leading dot (per
	// Name.IsHiddenByDotPrefix) to be omitted, along with their descendants.
	SkipHidden bool
	// UndecodableEntryPolicy controls handling of entries with
	// undecodable names.
	UndecodableEntryPolicy UndecodableEntryPolicy
}

// DefaultWalkOptions returns the options used when none are supplied
// explicitly: unlimited depth, don't follow symbolic links, don't skip
// hidden entries, and skip undecodable entries.
func DefaultWalkOptions() WalkOptions {
	return WalkOptions{
		MaxDepth:               -1,
		UndecodableEntryPolicy: SkipUndecodable,
	}
}
