package filesystem

import (
	"io/fs"
	"path/filepath"
)

// Exists reports whether anything, including a dangling symlink, is
// present at path.
func Exists(fsys FS, path string) bool {
	_, err := fsys.Lstat(path)
	return err == nil
}

// IsDir reports whether path resolves to a directory
func IsDir(fsys FS, path string) bool {
	info, err := fsys.Stat(path)
	return err == nil && info.IsDir()
}

// SkipFunc reports whether an entry of a copied directory is left out.
// rel is slash-separated and relative to the copy source.
type SkipFunc func(rel string, info fs.FileInfo) bool

// Copy copies src to dst. Directories are copied recursively, keeping the
// permission bits of every entry; symlinks inside a copied tree are
// recreated with the same target. Parent directories of dst are created.
func Copy(fsys FS, src, dst string) error {
	return CopyFiltered(fsys, src, dst, nil)
}

// CopyFiltered is Copy with entries of a source directory filtered by
// skip. A skipped directory is not descended into.
func CopyFiltered(fsys FS, src, dst string, skip SkipFunc) error {
	info, err := fsys.Stat(src)
	if err != nil {
		return err
	}

	if !info.IsDir() {
		if err := fsys.MkdirAll(filepath.Dir(dst), 0755); err != nil {
			return err
		}
		return copyFile(fsys, src, dst, info.Mode().Perm())
	}

	return fsys.Walk(src, func(path string, info fs.FileInfo, err error) error {
		if err != nil {
			return err
		}

		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)

		if skip != nil && rel != "." && skip(filepath.ToSlash(rel), info) {
			if info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		switch {
		case info.Mode()&fs.ModeSymlink != 0:
			link, err := fsys.Readlink(path)
			if err != nil {
				return err
			}
			return fsys.Symlink(link, target)
		case info.IsDir():
			return fsys.MkdirAll(target, info.Mode().Perm())
		default:
			return copyFile(fsys, path, target, info.Mode().Perm())
		}
	})
}

func copyFile(fsys FS, src, dst string, perm fs.FileMode) error {
	data, err := fsys.ReadFile(src)
	if err != nil {
		return err
	}
	return fsys.WriteFile(dst, data, perm)
}
