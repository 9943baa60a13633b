package filesystem

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/spf13/afero"
)

// aferoFS implements FS using afero. Backends that implement afero.Linker,
// afero.LinkReader and afero.Lstater (OsFs) get real symlinks; the others
// get a simulated link recorded next to a placeholder file.
type aferoFS struct {
	fs afero.Fs

	mu    sync.Mutex
	links map[string]string
}

// NewAferoFS creates a new afero filesystem implementation
func NewAferoFS(fs afero.Fs) FS {
	return &aferoFS{fs: fs, links: make(map[string]string)}
}

func (a *aferoFS) Stat(name string) (fs.FileInfo, error) {
	if target, ok := a.link(name); ok {
		if !filepath.IsAbs(target) {
			target = filepath.Join(filepath.Dir(name), target)
		}
		return a.Stat(target)
	}
	return a.fs.Stat(name)
}

func (a *aferoFS) Lstat(name string) (fs.FileInfo, error) {
	if target, ok := a.link(name); ok {
		return &linkInfo{name: filepath.Base(name), target: target}, nil
	}
	if lstater, ok := a.fs.(afero.Lstater); ok {
		info, _, err := lstater.LstatIfPossible(name)
		return info, err
	}
	return a.fs.Stat(name)
}

func (a *aferoFS) ReadFile(name string) ([]byte, error) {
	info, err := a.Stat(name)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, &fs.PathError{Op: "read", Path: name, Err: fs.ErrInvalid}
	}
	if target, ok := a.link(name); ok {
		if !filepath.IsAbs(target) {
			target = filepath.Join(filepath.Dir(name), target)
		}
		return a.ReadFile(target)
	}
	return afero.ReadFile(a.fs, name)
}

func (a *aferoFS) WriteFile(name string, data []byte, perm fs.FileMode) error {
	return afero.WriteFile(a.fs, name, data, perm)
}

func (a *aferoFS) MkdirAll(path string, perm fs.FileMode) error {
	return a.fs.MkdirAll(path, perm)
}

func (a *aferoFS) Symlink(oldname, newname string) error {
	if linker, ok := a.fs.(afero.Linker); ok {
		return linker.SymlinkIfPossible(oldname, newname)
	}

	if _, err := a.Lstat(newname); err == nil {
		return &os.LinkError{Op: "symlink", Old: oldname, New: newname, Err: fs.ErrExist}
	}
	if _, err := a.fs.Stat(filepath.Dir(newname)); err != nil {
		return &os.LinkError{Op: "symlink", Old: oldname, New: newname, Err: fs.ErrNotExist}
	}

	// MemMapFs has no symlinks; keep a placeholder so directory listings
	// see the entry and remember the target here.
	if err := afero.WriteFile(a.fs, newname, []byte(oldname), 0777); err != nil {
		return err
	}
	a.mu.Lock()
	a.links[filepath.Clean(newname)] = oldname
	a.mu.Unlock()
	return nil
}

func (a *aferoFS) Readlink(name string) (string, error) {
	if target, ok := a.link(name); ok {
		return target, nil
	}
	if reader, ok := a.fs.(afero.LinkReader); ok {
		return reader.ReadlinkIfPossible(name)
	}
	return "", &fs.PathError{Op: "readlink", Path: name, Err: fs.ErrInvalid}
}

func (a *aferoFS) Remove(name string) error {
	a.forget(name)
	return a.fs.Remove(name)
}

func (a *aferoFS) RemoveAll(path string) error {
	a.mu.Lock()
	prefix := filepath.Clean(path)
	for link := range a.links {
		if link == prefix || isUnder(prefix, link) {
			delete(a.links, link)
		}
	}
	a.mu.Unlock()
	return a.fs.RemoveAll(path)
}

func (a *aferoFS) Rename(oldpath, newpath string) error {
	if target, ok := a.link(oldpath); ok {
		a.mu.Lock()
		delete(a.links, filepath.Clean(oldpath))
		a.links[filepath.Clean(newpath)] = target
		a.mu.Unlock()
	}
	return a.fs.Rename(oldpath, newpath)
}

func (a *aferoFS) ReadDir(name string) ([]fs.DirEntry, error) {
	entries, err := afero.ReadDir(a.fs, name)
	if err != nil {
		return nil, err
	}
	dirEntries := make([]fs.DirEntry, len(entries))
	for i, entry := range entries {
		if target, ok := a.link(filepath.Join(name, entry.Name())); ok {
			dirEntries[i] = fs.FileInfoToDirEntry(&linkInfo{name: entry.Name(), target: target})
			continue
		}
		dirEntries[i] = fs.FileInfoToDirEntry(entry)
	}
	return dirEntries, nil
}

func (a *aferoFS) Walk(root string, fn filepath.WalkFunc) error {
	return afero.Walk(a.fs, root, func(path string, info fs.FileInfo, err error) error {
		if err == nil {
			if target, ok := a.link(path); ok {
				info = &linkInfo{name: info.Name(), target: target}
			}
		}
		return fn(path, info, err)
	})
}

func (a *aferoFS) link(name string) (string, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	target, ok := a.links[filepath.Clean(name)]
	return target, ok
}

func (a *aferoFS) forget(name string) {
	a.mu.Lock()
	delete(a.links, filepath.Clean(name))
	a.mu.Unlock()
}

func isUnder(parent, child string) bool {
	rel, err := filepath.Rel(parent, child)
	return err == nil && rel != "." && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// linkInfo describes a simulated symlink
type linkInfo struct {
	name   string
	target string
}

func (l *linkInfo) Name() string       { return l.name }
func (l *linkInfo) Size() int64        { return int64(len(l.target)) }
func (l *linkInfo) Mode() fs.FileMode  { return fs.ModeSymlink | 0777 }
func (l *linkInfo) ModTime() time.Time { return time.Time{} }
func (l *linkInfo) IsDir() bool        { return false }
func (l *linkInfo) Sys() interface{}   { return nil }
