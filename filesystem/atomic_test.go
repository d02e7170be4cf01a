package filesystem

import (
	"bytes"
	"errors"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"
)

func TestWriteFileAtomicNonExistentDirectory(t *testing.T) {
	if WriteFileAtomic("/does/not/exist/file", []byte{}, DefaultAtomicWriteOptions(), nil) == nil {
		t.Error("atomic file write did not fail for non-existent parent directory")
	}
}

func TestWriteFileAtomic(t *testing.T) {
	directory, err := ioutil.TempDir("", "atomicfs_write_file_atomic")
	if err != nil {
		t.Fatal("unable to create temporary directory:", err)
	}
	defer os.RemoveAll(directory)

	target := filepath.Join(directory, "file")
	contents := []byte{0, 1, 2, 3, 4, 5, 6}

	if err := WriteFileAtomic(target, contents, DefaultAtomicWriteOptions(), nil); err != nil {
		t.Fatal("atomic file write failed:", err)
	}

	data, err := ioutil.ReadFile(target)
	if err != nil {
		t.Fatal("unable to read back file:", err)
	} else if !bytes.Equal(data, contents) {
		t.Error("file contents did not match expected")
	}

	// No temp file should be left behind in the directory.
	entries, err := ioutil.ReadDir(directory)
	if err != nil {
		t.Fatal("unable to list directory:", err)
	}
	if len(entries) != 1 || entries[0].Name() != "file" {
		t.Errorf("directory contains unexpected entries after commit: %v", entries)
	}
}

func TestWriteFileAtomicReplacesExistingContent(t *testing.T) {
	directory, err := ioutil.TempDir("", "atomicfs_write_file_atomic_replace")
	if err != nil {
		t.Fatal("unable to create temporary directory:", err)
	}
	defer os.RemoveAll(directory)

	target := filepath.Join(directory, "file")
	if err := ioutil.WriteFile(target, []byte("old"), 0600); err != nil {
		t.Fatal("unable to seed destination:", err)
	}

	if err := WriteFileAtomic(target, []byte("new"), DefaultAtomicWriteOptions(), nil); err != nil {
		t.Fatal("atomic file write failed:", err)
	}

	data, err := ioutil.ReadFile(target)
	if err != nil {
		t.Fatal("unable to read back file:", err)
	} else if string(data) != "new" {
		t.Errorf("destination content = %q, want %q", data, "new")
	}
}

func TestWriteFileAtomicNoClobberRefusesExistingDestination(t *testing.T) {
	directory, err := ioutil.TempDir("", "atomicfs_write_file_atomic_noclobber")
	if err != nil {
		t.Fatal("unable to create temporary directory:", err)
	}
	defer os.RemoveAll(directory)

	target := filepath.Join(directory, "file")
	if err := ioutil.WriteFile(target, []byte("old"), 0600); err != nil {
		t.Fatal("unable to seed destination:", err)
	}

	options := DefaultAtomicWriteOptions()
	options.Strategy = NoClobber

	err = WriteFileAtomic(target, []byte("new"), options, nil)
	if err == nil {
		t.Fatal("no-clobber write did not fail for existing destination")
	}
	var exists *DestinationExistsError
	if !errors.As(err, &exists) {
		t.Fatalf("error type = %T, want *DestinationExistsError", err)
	}

	data, err := ioutil.ReadFile(target)
	if err != nil {
		t.Fatal("unable to read back file:", err)
	} else if string(data) != "old" {
		t.Errorf("destination was modified despite no-clobber failure: %q", data)
	}

	// The failed write must not leave a temp file behind either.
	entries, err := ioutil.ReadDir(directory)
	if err != nil {
		t.Fatal("unable to list directory:", err)
	}
	if len(entries) != 1 || entries[0].Name() != "file" {
		t.Errorf("directory contains unexpected entries after failed no-clobber write: %v", entries)
	}
}

func TestWriteFileAtomicEmptyPayload(t *testing.T) {
	directory, err := ioutil.TempDir("", "atomicfs_write_file_atomic_empty")
	if err != nil {
		t.Fatal("unable to create temporary directory:", err)
	}
	defer os.RemoveAll(directory)

	target := filepath.Join(directory, "file")
	if err := WriteFileAtomic(target, nil, DefaultAtomicWriteOptions(), nil); err != nil {
		t.Fatal("atomic file write failed:", err)
	}

	info, err := os.Stat(target)
	if err != nil {
		t.Fatal("unable to stat destination:", err)
	}
	if info.Size() != 0 {
		t.Errorf("destination size = %d, want 0", info.Size())
	}
}

func TestWriteFileAtomicCreatesIntermediateDirectories(t *testing.T) {
	directory, err := ioutil.TempDir("", "atomicfs_write_file_atomic_intermediates")
	if err != nil {
		t.Fatal("unable to create temporary directory:", err)
	}
	defer os.RemoveAll(directory)

	target := filepath.Join(directory, "a", "b", "file")
	options := DefaultAtomicWriteOptions()
	options.CreateIntermediates = true

	if err := WriteFileAtomic(target, []byte("nested"), options, nil); err != nil {
		t.Fatal("atomic file write failed:", err)
	}

	data, err := ioutil.ReadFile(target)
	if err != nil {
		t.Fatal("unable to read back file:", err)
	}
	if string(data) != "nested" {
		t.Errorf("file contents = %q, want %q", data, "nested")
	}
}

func TestWriteFileAtomicRefusesDirectoryDestination(t *testing.T) {
	directory, err := ioutil.TempDir("", "atomicfs_write_file_atomic_dir_dest")
	if err != nil {
		t.Fatal("unable to create temporary directory:", err)
	}
	defer os.RemoveAll(directory)

	target := filepath.Join(directory, "sub")
	if err := os.Mkdir(target, 0700); err != nil {
		t.Fatal("unable to create destination directory:", err)
	}

	if err := WriteFileAtomic(target, []byte("data"), DefaultAtomicWriteOptions(), nil); err == nil {
		t.Fatal("atomic write did not fail when destination is a directory")
	}
}
