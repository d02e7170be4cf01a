//go:build !windows

package filesystem

import (
	"errors"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"
)

func TestWriteFileAtomicPreservesPermissions(t *testing.T) {
	directory, err := ioutil.TempDir("", "atomicfs_preserve_permissions")
	if err != nil {
		t.Fatal("unable to create temporary directory:", err)
	}
	defer os.RemoveAll(directory)

	target := filepath.Join(directory, "file")
	if err := ioutil.WriteFile(target, []byte("old"), 0640); err != nil {
		t.Fatal("unable to seed destination:", err)
	}
	if err := os.Chmod(target, 0640); err != nil {
		t.Fatal("unable to set destination permissions:", err)
	}

	options := DefaultAtomicWriteOptions()
	options.PreservePermissions = true

	if err := WriteFileAtomic(target, []byte("new"), options, nil); err != nil {
		t.Fatal("atomic file write failed:", err)
	}

	info, err := os.Stat(target)
	if err != nil {
		t.Fatal("unable to stat destination:", err)
	}
	if info.Mode().Perm() != 0640 {
		t.Errorf("destination permissions = %o, want %o", info.Mode().Perm(), 0640)
	}
}

func TestWriteFileAtomicAppliesRequestedPermissionsToNewFile(t *testing.T) {
	directory, err := ioutil.TempDir("", "atomicfs_new_permissions")
	if err != nil {
		t.Fatal("unable to create temporary directory:", err)
	}
	defer os.RemoveAll(directory)

	target := filepath.Join(directory, "file")
	options := DefaultAtomicWriteOptions()
	options.Permissions = Mode(0644)

	if err := WriteFileAtomic(target, []byte("data"), options, nil); err != nil {
		t.Fatal("atomic file write failed:", err)
	}

	info, err := os.Stat(target)
	if err != nil {
		t.Fatal("unable to stat destination:", err)
	}
	if info.Mode().Perm() != 0644 {
		t.Errorf("destination permissions = %o, want %o", info.Mode().Perm(), 0644)
	}
}

func TestWriteFileAtomicPreserveACLsUnsupported(t *testing.T) {
	directory, err := ioutil.TempDir("", "atomicfs_preserve_acls")
	if err != nil {
		t.Fatal("unable to create temporary directory:", err)
	}
	defer os.RemoveAll(directory)

	target := filepath.Join(directory, "file")
	options := DefaultAtomicWriteOptions()
	options.PreserveACLs = true

	err = WriteFileAtomic(target, []byte("data"), options, nil)
	var incompatible *PlatformIncompatibleError
	if !errors.As(err, &incompatible) {
		t.Fatalf("error = %v, want *PlatformIncompatibleError", err)
	}
	if _, statErr := os.Lstat(target); !os.IsNotExist(statErr) {
		t.Error("destination was created despite incompatible options")
	}
}
