package filesystem

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/crashsafe/atomicfs/internal/logging"
	"github.com/crashsafe/atomicfs/internal/must"
)

// ChunkSource supplies a finite sequence of byte chunks to a streaming
// write. Each chunk is written to the underlying file descriptor as a
// single contiguous region; chunks are never buffered or split across
// calls, which is what lets a streaming write process content of unbounded
// size in bounded memory.
type ChunkSource interface {
	// NextChunk returns the next chunk to write, or (nil, io.EOF) once the
	// sequence is exhausted. The returned slice is not retained past the
	// call that produced it.
	NextChunk() ([]byte, error)
}

// ChunkSourceFunc adapts a plain function to the ChunkSource interface.
type ChunkSourceFunc func() ([]byte, error)

// NextChunk implements ChunkSource.NextChunk.
func (f ChunkSourceFunc) NextChunk() ([]byte, error) {
	return f()
}

// SliceChunkSource iterates over a pre-built slice of chunks. It exists for
// callers that already have the full chunk sequence in memory (tests,
// small in-memory payloads split for preallocation purposes), as opposed
// to callers generating chunks on the fly from some other stream.
type SliceChunkSource struct {
	chunks [][]byte
	index  int
}

// NewSliceChunkSource wraps chunks as a ChunkSource. The slice is not
// copied; callers should not mutate it concurrently with iteration.
func NewSliceChunkSource(chunks [][]byte) *SliceChunkSource {
	return &SliceChunkSource{chunks: chunks}
}

// NextChunk implements ChunkSource.NextChunk.
func (s *SliceChunkSource) NextChunk() ([]byte, error) {
	if s.index >= len(s.chunks) {
		return nil, io.EOF
	}
	chunk := s.chunks[s.index]
	s.index++
	return chunk, nil
}

// StreamingWriteContext is the multi-phase handle returned by
// OpenStreamingWrite. It carries the open file descriptor, the temp path
// (when the commit mode is atomic), the destination's parent directory,
// and the options the write was opened with. Commit publishes the write;
// Cleanup is called on any failure path, including after a failed Commit.
// Once a Commit has succeeded or Cleanup has run, further calls to Commit
// return nil without doing anything, and Cleanup after a successful Commit
// does nothing.
//
// A StreamingWriteContext is not safe for concurrent use; like the rest of
// this package, streaming writes are synchronous and single-threaded.
type StreamingWriteContext struct {
	file     *os.File
	tempPath string
	destPath string
	parent   string
	options  StreamingWriteOptions
	isAtomic bool
	phase    CommitPhase
	closed   bool
	retired  bool
	logger   *logging.Logger
}

// OpenStreamingWrite begins a streaming write to path. In CommitAtomic mode
// it creates a fresh temp file in path's parent directory, following the
// same naming convention and retry-on-EEXIST protocol as WriteFileAtomic.
// In CommitDirect mode it opens (or creates/truncates) path itself, with no
// crash-atomicity guarantee.
func OpenStreamingWrite(path string, options StreamingWriteOptions, logger *logging.Logger) (*StreamingWriteContext, error) {
	resolved, err := Normalize(path)
	if err != nil {
		return nil, fmt.Errorf("unable to resolve path: %w", err)
	}
	parent := filepath.Dir(resolved)

	if err := VerifyOrCreateParent(parent, options.CreateIntermediates); err != nil {
		return nil, err
	}

	if options.Commit == CommitAtomic {
		// statDestination's only purpose here is the refuse-to-clobber-a-
		// directory check; unlike WriteFileAtomic, streaming writes never
		// preserve destination metadata, so the stat result itself is
		// otherwise discarded.
		if _, err := statDestination(resolved); err != nil {
			return nil, err
		}

		tempPath, file, err := createAtomicTempFile(parent, filepath.Base(resolved))
		if err != nil {
			return nil, err
		}

		return &StreamingWriteContext{
			file:     file,
			tempPath: tempPath,
			destPath: resolved,
			parent:   parent,
			options:  options,
			isAtomic: true,
			phase:    PhaseWriting,
			logger:   logger,
		}, nil
	}

	file, err := openDirectDestination(resolved, options.Direct.Strategy)
	if err != nil {
		return nil, err
	}

	if err := maybePreallocate(file, options.Direct.ExpectedSize); err != nil {
		must.Close(file, logger)
		return nil, err
	}

	return &StreamingWriteContext{
		file:     file,
		destPath: resolved,
		parent:   parent,
		options:  options,
		isAtomic: false,
		phase:    PhaseWriting,
		logger:   logger,
	}, nil
}

// WriteChunk writes a single chunk to the underlying file descriptor,
// looping on short writes the same way WriteFileAtomic does for a single-
// shot write.
func (c *StreamingWriteContext) WriteChunk(chunk []byte) error {
	if n, err := writeAll(c.file, chunk); err != nil {
		return &WriteError{BytesWritten: int64(n), BytesExpected: int64(len(chunk)), Err: err}
	}
	return nil
}

// WriteAll drains source, writing each chunk in turn, stopping at the first
// error or at io.EOF.
func (c *StreamingWriteContext) WriteAll(source ChunkSource) error {
	for {
		chunk, err := source.NextChunk()
		if err == io.EOF {
			return nil
		} else if err != nil {
			return err
		}
		if err := c.WriteChunk(chunk); err != nil {
			return err
		}
	}
}

// Commit syncs, closes, and (in atomic mode) renames the temp file into
// place, following the same phase progression as WriteFileAtomic's tail
// end. Once Commit returns successfully in atomic mode, the destination
// holds the new content; in direct mode, the destination has held the new
// content incrementally all along, and Commit only finalizes durability.
func (c *StreamingWriteContext) Commit() error {
	if c.retired {
		return nil
	}

	durability := c.commitDurability()
	if err := syncFile(c.file.Fd(), durability); err != nil {
		return err
	}
	c.phase.advance(PhaseSyncedFile)

	if !c.isAtomic {
		c.retired = true
		closeErr := c.file.Close()
		c.closed = true
		if closeErr != nil {
			return &CloseError{Err: closeErr}
		}
		c.phase.advance(PhaseClosed)
		return nil
	}

	if err := prepareTempForPublish(c.tempPath); err != nil {
		return err
	}

	closeErr := c.file.Close()
	c.closed = true
	if closeErr != nil {
		c.retired = true
		return &CloseError{Err: closeErr}
	}
	c.phase.advance(PhaseClosed)

	if err := publishRename(c.tempPath, c.destPath, c.options.Atomic.Strategy, c.logger); err != nil {
		c.retired = true
		return err
	}
	c.phase.advance(PhaseRenamedPublished)
	c.retired = true

	if durability == Full {
		c.phase.advance(PhaseDirectorySyncAttempted)
		if err := syncDirectory(c.parent); err != nil {
			return &DirectorySyncFailedAfterCommitError{Path: c.parent, Err: err}
		}
		c.phase.advance(PhaseSyncedDirectory)
	}

	return nil
}

// commitDurability selects the durability mode that applies to this
// context's commit mode.
func (c *StreamingWriteContext) commitDurability() Durability {
	if c.isAtomic {
		return c.options.Atomic.Durability
	}
	return c.options.Direct.Durability
}

// Cleanup releases the context's resources for a failure path: it closes
// the file descriptor if still open and, in atomic mode, unlinks the temp
// file if it was never published. It is safe to call after a failed
// Commit, and safe to call more than once.
func (c *StreamingWriteContext) Cleanup() {
	if !c.closed {
		must.Close(c.file, c.logger)
		c.closed = true
	}
	if c.isAtomic && !c.phase.Published() {
		must.OSRemove(c.tempPath, c.logger)
	}
	c.retired = true
}

// WriteStreaming is the single-call convenience wrapper around the
// multi-phase streaming API: it opens a context, drains chunks into it,
// and commits, cleaning up on any failure along the way.
func WriteStreaming(chunks ChunkSource, path string, options StreamingWriteOptions, logger *logging.Logger) error {
	ctx, err := OpenStreamingWrite(path, options, logger)
	if err != nil {
		return err
	}

	if err := ctx.WriteAll(chunks); err != nil {
		ctx.Cleanup()
		return err
	}

	if err := ctx.Commit(); err != nil {
		ctx.Cleanup()
		return err
	}

	return nil
}
