package filesystem

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"
)

func TestIsTemporaryNameStringMatchesAtomicWritePattern(t *testing.T) {
	cases := map[string]bool{
		".file.atomic.1234.abcdef012345.tmp": true,
		".atomicfs-temporary-scratch":        true,
		"file":                               false,
		".hidden":                            false,
		".file.tmp":                          false,
	}
	for name, want := range cases {
		if got := IsTemporaryNameString(name); got != want {
			t.Errorf("IsTemporaryNameString(%q) = %v, want %v", name, got, want)
		}
	}
}

func TestPruneTemporaries(t *testing.T) {
	directory, err := ioutil.TempDir("", "atomicfs_prune")
	if err != nil {
		t.Fatal("unable to create temporary directory:", err)
	}
	defer os.RemoveAll(directory)

	abandoned := ".victim.atomic.1234.abcdef012345.tmp"
	if err := ioutil.WriteFile(filepath.Join(directory, abandoned), []byte("partial"), 0600); err != nil {
		t.Fatal("unable to create abandoned temp file:", err)
	}
	if err := ioutil.WriteFile(filepath.Join(directory, "keep"), []byte("k"), 0600); err != nil {
		t.Fatal("unable to create ordinary file:", err)
	}

	pruned, err := PruneTemporaries(directory, nil)
	if err != nil {
		t.Fatal("prune failed:", err)
	}
	if pruned != 1 {
		t.Errorf("pruned = %d, want 1", pruned)
	}

	if _, err := os.Lstat(filepath.Join(directory, abandoned)); !os.IsNotExist(err) {
		t.Error("abandoned temp file still present after prune")
	}
	if _, err := os.Lstat(filepath.Join(directory, "keep")); err != nil {
		t.Error("ordinary file was removed by prune:", err)
	}
}

func TestPruneTemporariesRefusesFile(t *testing.T) {
	directory, err := ioutil.TempDir("", "atomicfs_prune_file")
	if err != nil {
		t.Fatal("unable to create temporary directory:", err)
	}
	defer os.RemoveAll(directory)

	file := filepath.Join(directory, "file")
	if err := ioutil.WriteFile(file, []byte("f"), 0600); err != nil {
		t.Fatal("unable to create file:", err)
	}

	if _, err := PruneTemporaries(file, nil); err == nil {
		t.Error("prune succeeded against a non-directory path")
	}
}
