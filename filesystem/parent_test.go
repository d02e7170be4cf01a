package filesystem

import (
	"errors"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"
)

func TestVerifyOrCreateParentExistingDirectory(t *testing.T) {
	directory, err := ioutil.TempDir("", "atomicfs_parent_existing")
	if err != nil {
		t.Fatal("unable to create temporary directory:", err)
	}
	defer os.RemoveAll(directory)

	if err := VerifyOrCreateParent(directory, false); err != nil {
		t.Error("verification failed for existing directory:", err)
	}
	// With creation enabled, an existing directory must be a no-op success.
	if err := VerifyOrCreateParent(directory, true); err != nil {
		t.Error("verification failed for existing directory with creation enabled:", err)
	}
}

func TestVerifyOrCreateParentMissing(t *testing.T) {
	directory, err := ioutil.TempDir("", "atomicfs_parent_missing")
	if err != nil {
		t.Fatal("unable to create temporary directory:", err)
	}
	defer os.RemoveAll(directory)

	missing := filepath.Join(directory, "a", "b")
	err = VerifyOrCreateParent(missing, false)
	if err == nil {
		t.Fatal("verification did not fail for missing directory")
	}
	var parentErr *ParentError
	if !errors.As(err, &parentErr) {
		t.Fatalf("error type = %T, want *ParentError", err)
	}
	if parentErr.Kind != ParentMissing {
		t.Errorf("error kind = %v, want ParentMissing", parentErr.Kind)
	}
}

func TestVerifyOrCreateParentCreatesIntermediates(t *testing.T) {
	directory, err := ioutil.TempDir("", "atomicfs_parent_create")
	if err != nil {
		t.Fatal("unable to create temporary directory:", err)
	}
	defer os.RemoveAll(directory)

	nested := filepath.Join(directory, "a", "b", "c")
	if err := VerifyOrCreateParent(nested, true); err != nil {
		t.Fatal("creation failed:", err)
	}

	info, err := os.Stat(nested)
	if err != nil {
		t.Fatal("created directory is not statable:", err)
	}
	if !info.IsDir() {
		t.Error("created path is not a directory")
	}

	// Repeating the call must remain a success.
	if err := VerifyOrCreateParent(nested, true); err != nil {
		t.Error("repeat verification failed:", err)
	}
}

func TestVerifyOrCreateParentNotDirectory(t *testing.T) {
	directory, err := ioutil.TempDir("", "atomicfs_parent_notdir")
	if err != nil {
		t.Fatal("unable to create temporary directory:", err)
	}
	defer os.RemoveAll(directory)

	file := filepath.Join(directory, "file")
	if err := ioutil.WriteFile(file, []byte("f"), 0600); err != nil {
		t.Fatal("unable to create file:", err)
	}

	err = VerifyOrCreateParent(file, false)
	if err == nil {
		t.Fatal("verification did not fail for non-directory")
	}
	var parentErr *ParentError
	if !errors.As(err, &parentErr) {
		t.Fatalf("error type = %T, want *ParentError", err)
	}
	if parentErr.Kind != ParentNotDirectory {
		t.Errorf("error kind = %v, want ParentNotDirectory", parentErr.Kind)
	}
}
