package filesystem

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/crashsafe/atomicfs/internal/logging"
	"github.com/crashsafe/atomicfs/internal/must"
)

// maxTempFileCreateAttempts bounds the retry loop used when creating the
// intermediate temp file: each attempt regenerates the random token, so an
// EEXIST collision just means trying again with a fresh name.
const maxTempFileCreateAttempts = 64

// WriteFileAtomic publishes data at path using the temp-file/sync/rename/
// directory-sync protocol: a fresh temp file in the same directory as path
// is written, synced, and renamed into place, so that at every observable
// point path contains either its prior content or the complete new
// content, never a partial write.
//
// A nil logger disables logging entirely; non-nil loggers only ever
// receive best-effort cleanup warnings, never anything that should
// influence control flow.
func WriteFileAtomic(path string, data []byte, options AtomicWriteOptions, logger *logging.Logger) error {
	if err := validateAtomicWriteOptions(options); err != nil {
		return err
	}

	resolved, err := Normalize(path)
	if err != nil {
		return fmt.Errorf("unable to resolve path: %w", err)
	}
	parent := filepath.Dir(resolved)

	if err := VerifyOrCreateParent(parent, options.CreateIntermediates); err != nil {
		return err
	}

	destination, err := statDestination(resolved)
	if err != nil {
		return err
	}

	tempPath, file, err := createAtomicTempFile(parent, filepath.Base(resolved))
	if err != nil {
		return err
	}

	phase := PhasePending
	phase.advance(PhaseWriting)
	closed := false

	defer func() {
		if !closed {
			must.Close(file, logger)
		}
		if !phase.Published() {
			must.OSRemove(tempPath, logger)
		}
	}()

	if n, writeErr := writeAll(file, data); writeErr != nil {
		return &WriteError{BytesWritten: int64(n), BytesExpected: int64(len(data)), Err: writeErr}
	}

	if err := syncFile(file.Fd(), options.Durability); err != nil {
		return err
	}
	phase.advance(PhaseSyncedFile)

	if destination.exists {
		if err := preserveDestinationMetadata(file, destination, options, tempPath); err != nil {
			return err
		}
	} else if err := applyNewFilePermissions(file, options.Permissions, tempPath); err != nil {
		return err
	}

	if err := file.Close(); err != nil {
		closed = true
		return &CloseError{Err: err}
	}
	closed = true
	phase.advance(PhaseClosed)

	if err := publishRename(tempPath, resolved, options.Strategy, logger); err != nil {
		return err
	}
	phase.advance(PhaseRenamedPublished)

	if options.Durability == Full {
		phase.advance(PhaseDirectorySyncAttempted)
		if err := syncDirectory(parent); err != nil {
			return &DirectorySyncFailedAfterCommitError{Path: parent, Err: err}
		}
		phase.advance(PhaseSyncedDirectory)
	}

	return nil
}

// writeAll writes the full contents of data to file, looping on short
// writes. *os.File.Write already loops internally and only returns a short
// count alongside a non-nil error, but we loop explicitly to document and
// enforce the "all bytes or a typed error" contract regardless of that
// internal behavior.
func writeAll(file *os.File, data []byte) (int, error) {
	var written int
	for written < len(data) {
		n, err := file.Write(data[written:])
		written += n
		if err != nil {
			return written, err
		}
		if n == 0 {
			return written, fmt.Errorf("zero-length write with no error")
		}
	}
	return written, nil
}
