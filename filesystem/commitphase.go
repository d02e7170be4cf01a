package filesystem

// CommitPhase tracks the progress of a publish operation (a single-shot
// atomic write or an atomic streaming write). It is a totally ordered value:
// every step in the publish protocol only ever advances it, never rewinds
// it, and the cleanup epilogue consults it to decide whether the temp path or
// the destination is the cleanup target.
//
// Never delete the destination once the phase has reached RenamedPublished:
// from that point on, the destination holds the new content and any further
// error is a post-publish error, not a pre-publish one.
type CommitPhase int

const (
	// PhasePending is the initial phase, before any action has been taken.
	PhasePending CommitPhase = iota
	// PhaseWriting indicates that a temp file has been created and writes
	// may be in progress.
	PhaseWriting
	// PhaseSyncedFile indicates that the temp file's content has been
	// synced according to the requested durability.
	PhaseSyncedFile
	// PhaseClosed indicates that the temp file descriptor has been closed.
	PhaseClosed
	// PhaseRenamedPublished indicates that the rename (or link+unlink
	// fallback) has completed: the destination now holds the new content.
	// This is the publish point referenced throughout this package.
	PhaseRenamedPublished
	// PhaseDirectorySyncAttempted indicates that a directory sync has been
	// attempted following publish (only reached when durability is Full).
	PhaseDirectorySyncAttempted
	// PhaseSyncedDirectory indicates that the directory sync succeeded.
	PhaseSyncedDirectory
)

// String returns a human-readable name for the phase.
func (p CommitPhase) String() string {
	switch p {
	case PhasePending:
		return "pending"
	case PhaseWriting:
		return "writing"
	case PhaseSyncedFile:
		return "synced-file"
	case PhaseClosed:
		return "closed"
	case PhaseRenamedPublished:
		return "renamed-published"
	case PhaseDirectorySyncAttempted:
		return "directory-sync-attempted"
	case PhaseSyncedDirectory:
		return "synced-directory"
	default:
		return "unknown"
	}
}

// Published reports whether the phase indicates that the destination holds
// the new content, i.e. that the rename has succeeded. Once true for a given
// publish attempt, it stays true: cleanup logic must never unlink the
// destination once this predicate holds.
func (p CommitPhase) Published() bool {
	return p >= PhaseRenamedPublished
}

// DurabilityAttempted reports whether a directory-sync attempt has been made
// as part of achieving Full durability.
func (p CommitPhase) DurabilityAttempted() bool {
	return p >= PhaseDirectorySyncAttempted
}

// advance moves *p to next, panicking if next would not be a forward move.
// It exists to make the monotonicity invariant of the commit protocol an
// executable assertion rather than a convention enforced only by code review.
func (p *CommitPhase) advance(next CommitPhase) {
	if next < *p {
		panic("commit phase must advance monotonically")
	}
	*p = next
}
