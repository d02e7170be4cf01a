package filesystem

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"
)

func TestWalkOrderingAndHiddenFilter(t *testing.T) {
	root, err := ioutil.TempDir("", "atomicfs_walk")
	if err != nil {
		t.Fatal("unable to create temporary directory:", err)
	}
	defer os.RemoveAll(root)

	if err := ioutil.WriteFile(filepath.Join(root, "a"), []byte("a"), 0600); err != nil {
		t.Fatal(err)
	}
	if err := ioutil.WriteFile(filepath.Join(root, ".hidden"), []byte("h"), 0600); err != nil {
		t.Fatal(err)
	}
	if err := os.Mkdir(filepath.Join(root, "sub"), 0700); err != nil {
		t.Fatal(err)
	}
	if err := ioutil.WriteFile(filepath.Join(root, "sub", "x"), []byte("x"), 0600); err != nil {
		t.Fatal(err)
	}

	options := DefaultWalkOptions()
	options.SkipHidden = true

	var paths []string
	err = Walk(root, options, func(entry *DirectoryEntry, depth int) error {
		paths = append(paths, entry.Location.Path())
		return nil
	})
	if err != nil {
		t.Fatal("walk failed:", err)
	}

	for _, p := range paths {
		if filepath.Base(p) == ".hidden" {
			t.Errorf("hidden entry was emitted: %v", paths)
		}
	}

	want := []string{
		filepath.Join(root, "a"),
		filepath.Join(root, "sub"),
		filepath.Join(root, "sub", "x"),
	}
	if len(paths) != len(want) {
		t.Fatalf("paths = %v, want %v", paths, want)
	}
	for i := range want {
		if paths[i] != want[i] {
			t.Errorf("paths[%d] = %q, want %q", i, paths[i], want[i])
		}
	}
}

func TestWalkMaxDepthZeroOnlyDirectChildren(t *testing.T) {
	root, err := ioutil.TempDir("", "atomicfs_walk_depth")
	if err != nil {
		t.Fatal("unable to create temporary directory:", err)
	}
	defer os.RemoveAll(root)

	if err := os.Mkdir(filepath.Join(root, "sub"), 0700); err != nil {
		t.Fatal(err)
	}
	if err := ioutil.WriteFile(filepath.Join(root, "sub", "x"), []byte("x"), 0600); err != nil {
		t.Fatal(err)
	}

	options := DefaultWalkOptions()
	options.MaxDepth = 0

	var paths []string
	err = Walk(root, options, func(entry *DirectoryEntry, depth int) error {
		paths = append(paths, entry.Location.Path())
		return nil
	})
	if err != nil {
		t.Fatal("walk failed:", err)
	}

	want := []string{filepath.Join(root, "sub")}
	if len(paths) != len(want) || paths[0] != want[0] {
		t.Errorf("paths = %v, want %v", paths, want)
	}
}

func TestWalkFollowSymbolicLinksToDirectory(t *testing.T) {
	root, err := ioutil.TempDir("", "atomicfs_walk_symlink")
	if err != nil {
		t.Fatal("unable to create temporary directory:", err)
	}
	defer os.RemoveAll(root)

	target := filepath.Join(root, "target")
	if err := os.Mkdir(target, 0700); err != nil {
		t.Fatal(err)
	}
	if err := ioutil.WriteFile(filepath.Join(target, "inner"), []byte("i"), 0600); err != nil {
		t.Fatal(err)
	}

	link := filepath.Join(root, "link")
	if err := os.Symlink(target, link); err != nil {
		t.Skip("symbolic links not supported in this environment:", err)
	}

	options := DefaultWalkOptions()
	options.FollowSymbolicLinks = true

	found := map[string]bool{}
	err = Walk(root, options, func(entry *DirectoryEntry, depth int) error {
		found[entry.Location.Path()] = true
		return nil
	})
	if err != nil {
		t.Fatal("walk failed:", err)
	}

	if !found[filepath.Join(link, "inner")] {
		t.Errorf("walk did not descend into symbolic link target: %v", found)
	}
}

func TestWalkDoesNotDescendSymbolicLinksByDefault(t *testing.T) {
	root, err := ioutil.TempDir("", "atomicfs_walk_nosymlink")
	if err != nil {
		t.Fatal("unable to create temporary directory:", err)
	}
	defer os.RemoveAll(root)

	target := filepath.Join(root, "target")
	if err := os.Mkdir(target, 0700); err != nil {
		t.Fatal(err)
	}
	if err := ioutil.WriteFile(filepath.Join(target, "inner"), []byte("i"), 0600); err != nil {
		t.Fatal(err)
	}

	link := filepath.Join(root, "link")
	if err := os.Symlink(target, link); err != nil {
		t.Skip("symbolic links not supported in this environment:", err)
	}

	var paths []string
	err = Walk(root, DefaultWalkOptions(), func(entry *DirectoryEntry, depth int) error {
		paths = append(paths, entry.Location.Path())
		return nil
	})
	if err != nil {
		t.Fatal("walk failed:", err)
	}

	for _, p := range paths {
		if p == filepath.Join(link, "inner") {
			t.Errorf("walk descended into symbolic link without FollowSymbolicLinks: %v", paths)
		}
	}
}
