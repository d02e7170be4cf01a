package filesystem

import (
	"bytes"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"
)

func TestCopyFileStreamsContent(t *testing.T) {
	directory, err := ioutil.TempDir("", "atomicfs_copy_file")
	if err != nil {
		t.Fatal("unable to create temporary directory:", err)
	}
	defer os.RemoveAll(directory)

	source := filepath.Join(directory, "source")
	destination := filepath.Join(directory, "destination")

	// Content larger than one copy buffer, to exercise chunking.
	content := bytes.Repeat([]byte("0123456789abcdef"), 8192)
	if err := ioutil.WriteFile(source, content, 0600); err != nil {
		t.Fatal("unable to seed source:", err)
	}

	if err := CopyFile(source, destination, DefaultStreamingWriteOptions(), nil); err != nil {
		t.Fatal("copy failed:", err)
	}

	data, err := ioutil.ReadFile(destination)
	if err != nil {
		t.Fatal("unable to read back destination:", err)
	}
	if !bytes.Equal(data, content) {
		t.Error("destination content does not match source")
	}
}

func TestCopyEntryReplicatesSymbolicLink(t *testing.T) {
	directory, err := ioutil.TempDir("", "atomicfs_copy_symlink")
	if err != nil {
		t.Fatal("unable to create temporary directory:", err)
	}
	defer os.RemoveAll(directory)

	target := filepath.Join(directory, "target")
	if err := ioutil.WriteFile(target, []byte("t"), 0600); err != nil {
		t.Fatal("unable to seed link target:", err)
	}

	source := filepath.Join(directory, "link")
	if err := os.Symlink(target, source); err != nil {
		t.Skip("symbolic links not supported in this environment:", err)
	}

	destination := filepath.Join(directory, "copied")
	if err := CopyEntry(source, destination, false, DefaultStreamingWriteOptions(), nil); err != nil {
		t.Fatal("copy failed:", err)
	}

	copied, err := os.Readlink(destination)
	if err != nil {
		t.Fatal("destination is not a symbolic link:", err)
	}
	if copied != target {
		t.Errorf("copied link target = %q, want %q", copied, target)
	}
}

func TestCopyEntryRefusesDirectory(t *testing.T) {
	directory, err := ioutil.TempDir("", "atomicfs_copy_dir")
	if err != nil {
		t.Fatal("unable to create temporary directory:", err)
	}
	defer os.RemoveAll(directory)

	if err := CopyEntry(directory, filepath.Join(directory, "out"), false, DefaultStreamingWriteOptions(), nil); err == nil {
		t.Error("copying a directory should fail")
	}
}

func TestMoveFileSameFilesystem(t *testing.T) {
	directory, err := ioutil.TempDir("", "atomicfs_move_file")
	if err != nil {
		t.Fatal("unable to create temporary directory:", err)
	}
	defer os.RemoveAll(directory)

	source := filepath.Join(directory, "source")
	destination := filepath.Join(directory, "destination")
	if err := ioutil.WriteFile(source, []byte("payload"), 0600); err != nil {
		t.Fatal("unable to seed source:", err)
	}

	if err := MoveFile(source, destination, nil); err != nil {
		t.Fatal("move failed:", err)
	}

	if _, err := os.Lstat(source); !os.IsNotExist(err) {
		t.Error("source still exists after move")
	}
	data, err := ioutil.ReadFile(destination)
	if err != nil {
		t.Fatal("unable to read back destination:", err)
	}
	if string(data) != "payload" {
		t.Errorf("destination content = %q, want %q", data, "payload")
	}
}
