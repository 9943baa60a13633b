package actions

import (
	"context"
	"path/filepath"
	"sort"

	"github.com/arthur-debert/pkgactions/pkg/filesystem"
	"github.com/arthur-debert/pkgactions/pkg/manifest"
	"github.com/arthur-debert/pkgactions/pkg/output"
	"github.com/arthur-debert/pkgactions/pkg/paths"
)

// ActionType is one of the supported file actions
type ActionType int

const (
	ActionCopy ActionType = iota
	ActionRemove
	ActionCreate
	ActionSymlink
)

var actionNames = map[ActionType]string{
	ActionCopy:    "copy",
	ActionRemove:  "remove",
	ActionCreate:  "create",
	ActionSymlink: "symlink",
}

// String returns the manifest name of the action
func (a ActionType) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "unknown"
}

// ParseActionType maps a manifest action name to its type. Names are
// matched exactly, as they appear in composer.json.
func ParseActionType(name string) (ActionType, bool) {
	for t, n := range actionNames {
		if n == name {
			return t, true
		}
	}
	return 0, false
}

// ActionTypes returns every action type in declaration order
func ActionTypes() []ActionType {
	types := make([]ActionType, 0, len(actionNames))
	for t := range actionNames {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	return types
}

// Options are the configurable parts of action behavior
type Options struct {
	// RelativeSymlinks makes symlink targets relative to the link location
	RelativeSymlinks bool
	// Overwrite lets copy replace an existing destination
	Overwrite bool
	// DefaultMode is used by create when an entry has no mode
	DefaultMode uint32
	// Umask is the file-creation mask in effect while create runs
	Umask int
	// CopyExclude holds gitignore-style patterns skipped when copying
	// directories
	CopyExclude []string
}

// DefaultOptions mirrors the embedded configuration defaults
func DefaultOptions() Options {
	return Options{
		RelativeSymlinks: true,
		DefaultMode:      0755,
	}
}

// Env is what a handler needs to run the actions of one package
type Env struct {
	FS          filesystem.FS
	IO          output.IO
	ProjectRoot string
	Package     string
	InstallPath string
	DryRun      bool
	Options     Options
}

// ProjectPath resolves a manifest path against the project root
func (e *Env) ProjectPath(rel string) string {
	return filepath.Join(e.ProjectRoot, filepath.FromSlash(rel))
}

// PackagePath resolves a manifest path against the package install root
func (e *Env) PackagePath(rel string) string {
	return filepath.Join(e.InstallPath, filepath.FromSlash(rel))
}

// Display shortens path for messages
func (e *Env) Display(path string) string {
	return filepath.ToSlash(paths.DisplayPath(e.ProjectRoot, path))
}

// Handler applies one kind of action
type Handler interface {
	Type() ActionType
	Apply(ctx context.Context, env *Env, entry manifest.Entry) error
}
