package testutil

import (
	"io/fs"
	"testing"

	"github.com/arthur-debert/pkgactions/pkg/filesystem"
)

// AssertFileContent checks that path is a regular file with content
func AssertFileContent(t *testing.T, fsys filesystem.FS, path, content string) {
	t.Helper()

	data, err := fsys.ReadFile(path)
	if err != nil {
		t.Errorf("Expected file %s to be readable: %v", path, err)
		return
	}
	if string(data) != content {
		t.Errorf("File %s content mismatch\nExpected: %q\nActual: %q", path, content, string(data))
	}
}

// AssertSymlink checks that link is a symlink whose text is target
func AssertSymlink(t *testing.T, fsys filesystem.FS, link, target string) {
	t.Helper()

	info, err := fsys.Lstat(link)
	if err != nil {
		t.Errorf("Expected symlink %s to exist: %v", link, err)
		return
	}
	if info.Mode()&fs.ModeSymlink == 0 {
		t.Errorf("Expected %s to be a symlink, mode is %v", link, info.Mode())
		return
	}

	actual, err := fsys.Readlink(link)
	if err != nil {
		t.Errorf("Failed to read symlink %s: %v", link, err)
		return
	}
	if actual != target {
		t.Errorf("Symlink %s target mismatch\nExpected: %s\nActual: %s", link, target, actual)
	}
}

// AssertNotExists checks that nothing, not even a dangling link, is at path
func AssertNotExists(t *testing.T, fsys filesystem.FS, path string) {
	t.Helper()

	if filesystem.Exists(fsys, path) {
		t.Errorf("Expected %s not to exist", path)
	}
}

// AssertDirMode checks that path is a directory with the given permission bits
func AssertDirMode(t *testing.T, fsys filesystem.FS, path string, perm fs.FileMode) {
	t.Helper()

	info, err := fsys.Stat(path)
	if err != nil {
		t.Errorf("Expected directory %s to exist: %v", path, err)
		return
	}
	if !info.IsDir() {
		t.Errorf("Expected %s to be a directory", path)
		return
	}
	if info.Mode().Perm() != perm {
		t.Errorf("Directory %s mode mismatch\nExpected: %o\nActual: %o", path, perm, info.Mode().Perm())
	}
}
