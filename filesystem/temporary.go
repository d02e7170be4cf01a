package filesystem

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/crashsafe/atomicfs/internal/logging"
	"github.com/crashsafe/atomicfs/internal/must"
)

const (
	// TemporaryNamePrefix is a generic file name prefix available for
	// scratch files and directories that callers want excluded from
	// ordinary directory listings by convention. The atomic and streaming
	// write paths use their own more specific naming scheme (see
	// createAtomicTempFile) rather than this prefix, since they need to encode a
	// pid and random token alongside the destination's base name.
	TemporaryNamePrefix = ".atomicfs-temporary-"

	// temporaryInfix appears in every name createAtomicTempFile produces,
	// between the destination's base name and the pid/token suffix.
	temporaryInfix = ".atomic."
	// temporarySuffix is the fixed suffix createAtomicTempFile appends.
	temporarySuffix = ".tmp"
)

// IsTemporaryNameString reports whether a decoded file name matches the
// ".<basename>.atomic.<pid>.<token>.tmp" pattern produced by the atomic and
// streaming write paths' temp file naming convention, or carries the
// generic TemporaryNamePrefix. A walk policy or startup sweep can use this
// to recognize files left behind by a crash between temp-file creation and
// rename.
func IsTemporaryNameString(name string) bool {
	if strings.HasPrefix(name, TemporaryNamePrefix) {
		return true
	}
	return strings.HasPrefix(name, ".") &&
		strings.Contains(name, temporaryInfix) &&
		strings.HasSuffix(name, temporarySuffix)
}

// IsTemporaryName is the raw-name form of IsTemporaryNameString. The check
// is a best-effort lossy-decode match, not a filesystem operation, so it's
// safe to use even on names that fail strict decoding.
func IsTemporaryName(name Name) bool {
	return IsTemporaryNameString(name.String())
}

// PruneTemporaries removes abandoned temp files from directory: files whose
// names match the atomic/streaming temp naming convention (or the generic
// TemporaryNamePrefix) and which therefore can only be leftovers from a
// process that aborted between temp-file creation and rename. It returns
// the number of files removed. Individual removal failures are logged and
// skipped rather than aborting the sweep, since a prune-on-startup caller
// wants whatever cleanup is achievable.
func PruneTemporaries(directory string, logger *logging.Logger) (int, error) {
	resolved, err := Normalize(directory)
	if err != nil {
		return 0, errors.Wrap(err, "unable to resolve directory")
	}

	object, _, err := Open(resolved, false)
	if err != nil {
		return 0, errors.Wrap(err, "unable to open directory")
	}
	defer must.Close(object, logger)

	root, ok := object.(*Directory)
	if !ok {
		return 0, errors.New("path is not a directory")
	}

	names, err := root.ReadContentNames()
	if err != nil {
		return 0, errors.Wrap(err, "unable to read directory contents")
	}

	var pruned int
	for _, name := range names {
		if !IsTemporaryNameString(name) {
			continue
		}
		if err := root.RemoveFile(name); err != nil {
			logger.Warnf("unable to remove temporary file '%s': %s", name, err.Error())
			continue
		}
		pruned++
	}

	return pruned, nil
}
