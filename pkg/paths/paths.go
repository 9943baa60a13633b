package paths

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/pkgactions/pkg/errors"
)

// Environment variable names
const (
	// EnvProjectRoot is the primary environment variable for the project location
	EnvProjectRoot = "PKGACTIONS_PROJECT_ROOT"

	// EnvComposerFile overrides the manifest file name, as Composer does
	EnvComposerFile = "COMPOSER"

	// EnvVendorDir overrides the vendor directory, as Composer does
	EnvVendorDir = "COMPOSER_VENDOR_DIR"

	// EnvHome is the standard home directory variable
	EnvHome = "HOME"
)

// Default directories and files
const (
	// AppDirName is the directory name for pkgactions-specific files
	AppDirName = "pkgactions"

	// DefaultManifestFile is the root project manifest
	DefaultManifestFile = "composer.json"

	// DefaultVendorDir is where packages are installed
	DefaultVendorDir = "vendor"

	// InstalledFile is the installed packages list, relative to the vendor dir
	InstalledFile = "composer/installed.json"

	// ProjectConfigBase is the base name of the per-project tool config
	ProjectConfigBase = ".pkgactions"
)

// Paths provides centralized path management for a project
type Paths interface {
	ProjectRoot() string
	UsedFallback() bool
	ManifestPath() string
	VendorDir() string
	InstalledPath() string
	PackageDir(packageName string) string
	ProjectPath(rel string) string
	Display(path string) string
	ConfigDir() string
	IsInProject(path string) bool
}

type paths struct {
	projectRoot  string
	manifestFile string
	vendorDir    string
	xdgConfig    string
	usedFallback bool
}

// New creates a new Paths instance. An empty projectRoot is resolved from
// the environment or by walking up from the working directory; an empty
// vendorDir falls back to COMPOSER_VENDOR_DIR and then "vendor".
func New(projectRoot, vendorDir string) (Paths, error) {
	p := &paths{
		manifestFile: DefaultManifestFile,
	}
	if name := os.Getenv(EnvComposerFile); name != "" {
		p.manifestFile = name
	}

	if projectRoot == "" {
		root, usedFallback, err := findProjectRoot(p.manifestFile)
		if err != nil {
			return nil, err
		}
		p.projectRoot = root
		p.usedFallback = usedFallback
	} else {
		p.projectRoot = expandHome(projectRoot)
	}

	absRoot, err := filepath.Abs(p.projectRoot)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to get absolute path for project root")
	}
	p.projectRoot = absRoot

	if vendorDir == "" {
		vendorDir = os.Getenv(EnvVendorDir)
	}
	if vendorDir == "" {
		vendorDir = DefaultVendorDir
	}
	p.SetVendorDir(vendorDir)

	p.xdgConfig = filepath.Join(xdg.ConfigHome, AppDirName)

	return p, nil
}

// SetVendorDir changes the vendor directory; relative values are resolved
// against the project root. composer.json may declare config.vendor-dir,
// which is only known after Paths exists.
func (p *paths) SetVendorDir(vendorDir string) {
	vendorDir = expandHome(vendorDir)
	if !filepath.IsAbs(vendorDir) {
		vendorDir = filepath.Join(p.projectRoot, vendorDir)
	}
	p.vendorDir = filepath.Clean(vendorDir)
}

// VendorDirSetter is implemented by Paths values whose vendor dir can be
// changed after construction.
type VendorDirSetter interface {
	SetVendorDir(vendorDir string)
}

// findProjectRoot determines the project root using the following priority:
// 1. PKGACTIONS_PROJECT_ROOT environment variable
// 2. The nearest ancestor of the working directory holding the manifest file
// 3. Current working directory (fallback)
func findProjectRoot(manifestFile string) (string, bool, error) {
	if root := os.Getenv(EnvProjectRoot); root != "" {
		return expandHome(root), false, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", false, errors.Wrapf(err, errors.ErrFileAccess, "failed to get current directory")
	}

	dir := cwd
	for {
		if info, err := os.Stat(filepath.Join(dir, manifestFile)); err == nil && !info.IsDir() {
			return dir, false, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return cwd, true, nil
}

// expandHome expands ~ to the home directory
func expandHome(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = os.Getenv(EnvHome)
		if homeDir == "" {
			return path
		}
	}

	if len(path) == 1 {
		return homeDir
	}
	if path[1] == '/' || path[1] == filepath.Separator {
		return filepath.Join(homeDir, path[2:])
	}

	// ~something (not the user's home)
	return path
}

// ExpandHome is a utility function that expands ~ in paths
func ExpandHome(path string) string {
	return expandHome(path)
}

// ProjectRoot returns the root directory of the project
func (p *paths) ProjectRoot() string {
	return p.projectRoot
}

// UsedFallback returns true if the current working directory was used as fallback
func (p *paths) UsedFallback() bool {
	return p.usedFallback
}

// ManifestPath returns the path of the root composer.json
func (p *paths) ManifestPath() string {
	return filepath.Join(p.projectRoot, p.manifestFile)
}

// VendorDir returns the absolute vendor directory
func (p *paths) VendorDir() string {
	return p.vendorDir
}

// InstalledPath returns the path of the installed packages list
func (p *paths) InstalledPath() string {
	return filepath.Join(p.vendorDir, filepath.FromSlash(InstalledFile))
}

// PackageDir returns the default install root of a package
func (p *paths) PackageDir(packageName string) string {
	return filepath.Join(p.vendorDir, filepath.FromSlash(packageName))
}

// ProjectPath joins a manifest-relative path onto the project root
func (p *paths) ProjectPath(rel string) string {
	return filepath.Join(p.projectRoot, filepath.FromSlash(rel))
}

// ConfigDir returns the XDG config directory for pkgactions
func (p *paths) ConfigDir() string {
	return p.xdgConfig
}

// Display shortens a path for user-facing messages by making it relative
// to the project root. Paths outside the project are returned unchanged.
func (p *paths) Display(path string) string {
	return DisplayPath(p.projectRoot, path)
}

// IsInProject checks if a path is within the project root
func (p *paths) IsInProject(path string) bool {
	return ContainsPath(p.projectRoot, path)
}

// DisplayPath is Display for an arbitrary root
func DisplayPath(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return path
	}
	return rel
}

// ContainsPath checks if child is contained within parent.
// Both paths are cleaned before comparison.
func ContainsPath(parent, child string) bool {
	rel, err := filepath.Rel(filepath.Clean(parent), filepath.Clean(child))
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
