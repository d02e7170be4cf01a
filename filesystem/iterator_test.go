package filesystem

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"sort"
	"testing"
)

func TestIteratorListsEntriesExcludingDotAndDotDot(t *testing.T) {
	directory, err := ioutil.TempDir("", "atomicfs_iterator")
	if err != nil {
		t.Fatal("unable to create temporary directory:", err)
	}
	defer os.RemoveAll(directory)

	if err := ioutil.WriteFile(filepath.Join(directory, "a"), []byte("a"), 0600); err != nil {
		t.Fatal(err)
	}
	if err := ioutil.WriteFile(filepath.Join(directory, "b"), []byte("b"), 0600); err != nil {
		t.Fatal(err)
	}
	if err := os.Mkdir(filepath.Join(directory, "sub"), 0700); err != nil {
		t.Fatal(err)
	}

	iterator, err := OpenIterator(directory)
	if err != nil {
		t.Fatal("unable to open iterator:", err)
	}
	defer iterator.Close()

	var names []string
	kinds := map[string]EntryKind{}
	for {
		entry, err := iterator.Next()
		if err != nil {
			t.Fatal("iterator.Next failed:", err)
		}
		if entry == nil {
			break
		}
		decoded := entry.Name.String()
		if decoded == "." || decoded == ".." {
			t.Fatalf("iterator emitted %q, which must be skipped", decoded)
		}
		names = append(names, decoded)
		kinds[decoded] = entry.Kind
		if !entry.Location.IsAbsolute() {
			t.Errorf("entry %q should have an absolute location", decoded)
		}
	}
	sort.Strings(names)

	want := []string{"a", "b", "sub"}
	if len(names) != len(want) {
		t.Fatalf("names = %v, want %v", names, want)
	}
	for i, n := range want {
		if names[i] != n {
			t.Errorf("names[%d] = %q, want %q", i, names[i], n)
		}
	}
	if kinds["a"] != EntryFile || kinds["b"] != EntryFile {
		t.Errorf("file entries misclassified: %v", kinds)
	}
	if kinds["sub"] != EntryDirectory {
		t.Errorf("directory entry misclassified: %v", kinds)
	}
}

func TestIteratorEmptyDirectory(t *testing.T) {
	directory, err := ioutil.TempDir("", "atomicfs_iterator_empty")
	if err != nil {
		t.Fatal("unable to create temporary directory:", err)
	}
	defer os.RemoveAll(directory)

	iterator, err := OpenIterator(directory)
	if err != nil {
		t.Fatal("unable to open iterator:", err)
	}
	defer iterator.Close()

	entry, err := iterator.Next()
	if err != nil {
		t.Fatal("iterator.Next failed:", err)
	}
	if entry != nil {
		t.Errorf("expected no entries in empty directory, got %v", entry)
	}
}

func TestIteratorCloseIsIdempotent(t *testing.T) {
	directory, err := ioutil.TempDir("", "atomicfs_iterator_close")
	if err != nil {
		t.Fatal("unable to create temporary directory:", err)
	}
	defer os.RemoveAll(directory)

	iterator, err := OpenIterator(directory)
	if err != nil {
		t.Fatal("unable to open iterator:", err)
	}
	if err := iterator.Close(); err != nil {
		t.Fatal("first close failed:", err)
	}
	if err := iterator.Close(); err != nil {
		t.Error("second close should be a no-op, got error:", err)
	}
}
