//go:build !windows

package filesystem

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"
)

func TestWalkUndecodableEntryEmitPolicy(t *testing.T) {
	root, err := ioutil.TempDir("", "atomicfs_walk_undecodable")
	if err != nil {
		t.Fatal("unable to create temporary directory:", err)
	}
	defer os.RemoveAll(root)

	// Invalid UTF-8 byte sequence used directly as a path component; Linux
	// doesn't validate filenames as UTF-8, so this is a legal file name at
	// the syscall level even though it can't be strictly decoded.
	badName := string([]byte{0xFF, 0xFE})
	if err := ioutil.WriteFile(filepath.Join(root, badName), []byte("x"), 0600); err != nil {
		t.Skip("unable to create undecodable file name on this filesystem:", err)
	}

	options := DefaultWalkOptions()
	options.UndecodableEntryPolicy = EmitUndecodable

	var emitted []DirectoryEntry
	err = Walk(root, options, func(entry *DirectoryEntry, depth int) error {
		emitted = append(emitted, *entry)
		return nil
	})
	if err != nil {
		t.Fatal("walk failed:", err)
	}

	if len(emitted) != 1 {
		t.Fatalf("emitted = %v, want exactly one undecodable entry", emitted)
	}
	if emitted[0].Location.IsAbsolute() {
		t.Errorf("undecodable entry should have a relative location")
	}
	if emitted[0].Location.Parent() != root {
		t.Errorf("undecodable entry parent = %q, want %q", emitted[0].Location.Parent(), root)
	}
}

func TestWalkUndecodableEntryStopPolicy(t *testing.T) {
	root, err := ioutil.TempDir("", "atomicfs_walk_undecodable_stop")
	if err != nil {
		t.Fatal("unable to create temporary directory:", err)
	}
	defer os.RemoveAll(root)

	badName := string([]byte{0xFF, 0xFE})
	if err := ioutil.WriteFile(filepath.Join(root, badName), []byte("x"), 0600); err != nil {
		t.Skip("unable to create undecodable file name on this filesystem:", err)
	}

	options := DefaultWalkOptions()
	options.UndecodableEntryPolicy = StopAndThrowUndecodable

	err = Walk(root, options, func(entry *DirectoryEntry, depth int) error {
		return nil
	})
	if _, ok := err.(*UndecodableEntryError); !ok {
		t.Fatalf("walk error = %v, want *UndecodableEntryError", err)
	}
}
