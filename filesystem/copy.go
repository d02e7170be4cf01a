package filesystem

import (
	"io"
	"os"

	"github.com/pkg/errors"

	"github.com/crashsafe/atomicfs/internal/logging"
	"github.com/crashsafe/atomicfs/internal/must"
)

// copyBufferSize is the chunk size used when streaming a source file's
// content to its destination. It bounds the memory used by a copy
// regardless of the source's size.
const copyBufferSize = 64 * 1024

// CopyFile copies the regular file at source to destination using the
// streaming write protocol, so the destination gets the same crash-safety
// envelope as any other streaming write: with an atomic commit mode, it
// holds either its prior content or the complete copy, never a partial one.
//
// The source is opened through Open with leaf symbolic link resolution
// allowed, since CopyFile's contract is to copy content; CopyEntry is the
// layer that decides whether a link should be replicated instead.
func CopyFile(source, destination string, options StreamingWriteOptions, logger *logging.Logger) error {
	resolvedSource, err := Normalize(source)
	if err != nil {
		return errors.Wrap(err, "unable to resolve copy source")
	}

	object, metadata, err := Open(resolvedSource, true)
	if err != nil {
		return errors.Wrap(err, "unable to open copy source")
	}
	defer must.Close(object, logger)

	file, ok := object.(ReadableFile)
	if !ok {
		return errors.New("copy source is not a regular file")
	}

	// The source's size makes a natural preallocation hint for direct-mode
	// destinations that haven't specified one of their own.
	if options.Commit == CommitDirect && options.Direct.ExpectedSize == 0 {
		options.Direct.ExpectedSize = int64(metadata.Size)
	}

	buffer := make([]byte, copyBufferSize)
	chunks := ChunkSourceFunc(func() ([]byte, error) {
		n, err := file.Read(buffer)
		if n > 0 {
			return buffer[:n], nil
		}
		if err == nil {
			err = io.EOF
		}
		return nil, err
	})

	return WriteStreaming(chunks, destination, options, logger)
}

// CopySymbolicLink replicates the symbolic link at source as a new link at
// destination, copying the link itself (its target string) rather than the
// content it points to. An existing destination is reported as
// DestinationExistsError, since symlink creation is inherently no-clobber.
func CopySymbolicLink(source, destination string) error {
	target, err := readSymbolicLinkTarget(source)
	if err != nil {
		return errors.Wrap(err, "unable to read symbolic link target")
	}
	if err := createSymbolicLink(target, destination); err != nil {
		if exists, ok := err.(*DestinationExistsError); ok {
			return exists
		}
		return errors.Wrap(err, "unable to create symbolic link")
	}
	return nil
}

// CopyEntry copies the filesystem entry at source to destination. When
// source is a symbolic link and followSymlinks is false, the link itself is
// replicated; otherwise the (possibly link-resolved) file content is copied
// per CopyFile. Directories are refused; callers wanting recursive copies
// should drive Walk and copy entries individually.
func CopyEntry(source, destination string, followSymlinks bool, options StreamingWriteOptions, logger *logging.Logger) error {
	info, err := os.Lstat(source)
	if err != nil {
		return errors.Wrap(err, "unable to stat copy source")
	}

	if info.Mode()&os.ModeSymlink != 0 && !followSymlinks {
		return CopySymbolicLink(source, destination)
	}
	if info.IsDir() {
		return errors.New("copy source is a directory")
	}

	return CopyFile(source, destination, options, logger)
}

// MoveFile moves the entry at source to destination. On a single
// filesystem this is one atomic rename. Across filesystems, where the
// kernel refuses the rename, it falls back to copy-and-delete: the content
// is republished at destination via the atomic streaming protocol and the
// source is then removed. The fallback is not atomic as a whole - a crash
// can leave both source and destination present - but the destination is
// never left partial.
func MoveFile(source, destination string, logger *logging.Logger) error {
	source, err := Normalize(source)
	if err != nil {
		return errors.Wrap(err, "unable to resolve move source")
	}
	destination, err = Normalize(destination)
	if err != nil {
		return errors.Wrap(err, "unable to resolve move destination")
	}

	renameErr := Rename(nil, source, nil, destination)
	if renameErr == nil {
		return nil
	}
	if !IsCrossDeviceError(renameErr) {
		return errors.Wrap(renameErr, "unable to rename")
	}

	if err := CopyEntry(source, destination, false, DefaultStreamingWriteOptions(), logger); err != nil {
		return errors.Wrap(err, "unable to copy across devices")
	}
	if err := os.Remove(source); err != nil {
		return errors.Wrap(err, "unable to remove move source after copy")
	}
	return nil
}
