package filesystem

import (
	"bytes"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"
)

func TestWriteStreamingAtomic(t *testing.T) {
	directory, err := ioutil.TempDir("", "atomicfs_streaming_atomic")
	if err != nil {
		t.Fatal("unable to create temporary directory:", err)
	}
	defer os.RemoveAll(directory)

	target := filepath.Join(directory, "file")
	chunks := NewSliceChunkSource([][]byte{
		[]byte("hello, "),
		[]byte("streaming "),
		[]byte("world"),
	})

	if err := WriteStreaming(chunks, target, DefaultStreamingWriteOptions(), nil); err != nil {
		t.Fatal("streaming write failed:", err)
	}

	data, err := ioutil.ReadFile(target)
	if err != nil {
		t.Fatal("unable to read back file:", err)
	}
	want := "hello, streaming world"
	if string(data) != want {
		t.Errorf("file contents = %q, want %q", data, want)
	}

	entries, err := ioutil.ReadDir(directory)
	if err != nil {
		t.Fatal("unable to list directory:", err)
	}
	if len(entries) != 1 || entries[0].Name() != "file" {
		t.Errorf("directory contains unexpected entries after commit: %v", entries)
	}
}

func TestWriteStreamingAtomicCleansUpOnWriteFailure(t *testing.T) {
	directory, err := ioutil.TempDir("", "atomicfs_streaming_atomic_fail")
	if err != nil {
		t.Fatal("unable to create temporary directory:", err)
	}
	defer os.RemoveAll(directory)

	target := filepath.Join(directory, "file")
	failing := ChunkSourceFunc(func() ([]byte, error) {
		return nil, errBoom
	})

	if err := WriteStreaming(failing, target, DefaultStreamingWriteOptions(), nil); err == nil {
		t.Fatal("streaming write did not fail")
	}

	if _, err := os.Stat(target); !os.IsNotExist(err) {
		t.Errorf("destination exists after failed streaming write")
	}

	entries, err := ioutil.ReadDir(directory)
	if err != nil {
		t.Fatal("unable to list directory:", err)
	}
	if len(entries) != 0 {
		t.Errorf("temp file left behind after failed streaming write: %v", entries)
	}
}

func TestWriteStreamingDirectTruncate(t *testing.T) {
	directory, err := ioutil.TempDir("", "atomicfs_streaming_direct")
	if err != nil {
		t.Fatal("unable to create temporary directory:", err)
	}
	defer os.RemoveAll(directory)

	target := filepath.Join(directory, "file")
	if err := ioutil.WriteFile(target, []byte("previous content that is longer"), 0600); err != nil {
		t.Fatal("unable to seed destination:", err)
	}

	options := StreamingWriteOptions{
		Commit: CommitDirect,
		Direct: DirectWriteOptions{Strategy: DirectTruncate, Durability: Full},
	}
	chunks := NewSliceChunkSource([][]byte{[]byte("short")})

	if err := WriteStreaming(chunks, target, options, nil); err != nil {
		t.Fatal("direct streaming write failed:", err)
	}

	data, err := ioutil.ReadFile(target)
	if err != nil {
		t.Fatal("unable to read back file:", err)
	}
	if string(data) != "short" {
		t.Errorf("file contents = %q, want %q", data, "short")
	}
}

func TestWriteStreamingDirectCreateRefusesExisting(t *testing.T) {
	directory, err := ioutil.TempDir("", "atomicfs_streaming_direct_create")
	if err != nil {
		t.Fatal("unable to create temporary directory:", err)
	}
	defer os.RemoveAll(directory)

	target := filepath.Join(directory, "file")
	if err := ioutil.WriteFile(target, []byte("existing"), 0600); err != nil {
		t.Fatal("unable to seed destination:", err)
	}

	options := StreamingWriteOptions{
		Commit: CommitDirect,
		Direct: DirectWriteOptions{Strategy: DirectCreate},
	}

	if err := WriteStreaming(NewSliceChunkSource(nil), target, options, nil); err == nil {
		t.Fatal("direct create write did not fail for existing destination")
	}
}

func TestStreamingWriteContextMultiPhase(t *testing.T) {
	directory, err := ioutil.TempDir("", "atomicfs_streaming_multiphase")
	if err != nil {
		t.Fatal("unable to create temporary directory:", err)
	}
	defer os.RemoveAll(directory)

	target := filepath.Join(directory, "file")
	ctx, err := OpenStreamingWrite(target, DefaultStreamingWriteOptions(), nil)
	if err != nil {
		t.Fatal("unable to open streaming write:", err)
	}

	if err := ctx.WriteChunk([]byte("abc")); err != nil {
		t.Fatal("write chunk failed:", err)
	}
	if err := ctx.WriteChunk([]byte("def")); err != nil {
		t.Fatal("write chunk failed:", err)
	}
	if err := ctx.Commit(); err != nil {
		t.Fatal("commit failed:", err)
	}
	// Cleanup after a successful Commit must be a no-op.
	ctx.Cleanup()

	data, err := ioutil.ReadFile(target)
	if err != nil {
		t.Fatal("unable to read back file:", err)
	}
	if !bytes.Equal(data, []byte("abcdef")) {
		t.Errorf("file contents = %q, want %q", data, "abcdef")
	}
}

type boomError struct{}

func (boomError) Error() string { return "boom" }

var errBoom = boomError{}
