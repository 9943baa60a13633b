// Package composer reads the parts of a Composer project pkgactions needs:
// the root composer.json and the installed packages list.
package composer

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"

	"github.com/arthur-debert/pkgactions/pkg/errors"
	"github.com/arthur-debert/pkgactions/pkg/filesystem"
	"github.com/arthur-debert/pkgactions/pkg/logging"
	"github.com/arthur-debert/pkgactions/pkg/paths"
)

var log = logging.GetLogger("composer")

// Package is an installed dependency
type Package struct {
	Name    string          `json:"name"`
	Version string          `json:"version,omitempty"`
	Type    string          `json:"type,omitempty"`
	Extra   json.RawMessage `json:"extra,omitempty"`

	// RawInstallPath is install-path as written in installed.json,
	// relative to <vendor>/composer
	RawInstallPath string `json:"install-path,omitempty"`

	// InstallPath is the absolute package installation root
	InstallPath string `json:"-"`
}

// manifestFile is the subset of composer.json that is read
type manifestFile struct {
	Name   string          `json:"name"`
	Extra  json.RawMessage `json:"extra"`
	Config struct {
		VendorDir string `json:"vendor-dir"`
	} `json:"config"`
}

// Project is the root package and its vendor directory
type Project struct {
	Root      string
	Name      string
	Extra     json.RawMessage
	VendorDir string

	fs        filesystem.FS
	installed []*Package
	loaded    bool
}

// LoadProject reads composer.json from root. A missing file yields a
// project without extras. vendorDir, when set, takes precedence over
// COMPOSER_VENDOR_DIR and config.vendor-dir.
func LoadProject(fsys filesystem.FS, root, vendorDir string) (*Project, error) {
	p := &Project{Root: root, fs: fsys}

	manifestPath := filepath.Join(root, paths.DefaultManifestFile)
	if name := os.Getenv(paths.EnvComposerFile); name != "" {
		manifestPath = filepath.Join(root, name)
	}

	var mf manifestFile
	data, err := fsys.ReadFile(manifestPath)
	switch {
	case err == nil:
		if err := json.Unmarshal(data, &mf); err != nil {
			return nil, errors.Wrapf(err, errors.ErrManifestParse, "failed to parse %s", manifestPath).
				WithDetail("path", manifestPath)
		}
	case os.IsNotExist(err):
		log.Debug().Str("path", manifestPath).Msg("No root manifest, using empty project")
	default:
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to read %s", manifestPath)
	}

	p.Name = mf.Name
	p.Extra = mf.Extra

	switch {
	case vendorDir != "":
	case os.Getenv(paths.EnvVendorDir) != "":
		vendorDir = os.Getenv(paths.EnvVendorDir)
	case mf.Config.VendorDir != "":
		vendorDir = mf.Config.VendorDir
	default:
		vendorDir = paths.DefaultVendorDir
	}
	vendorDir = paths.ExpandHome(vendorDir)
	if !filepath.IsAbs(vendorDir) {
		vendorDir = filepath.Join(root, vendorDir)
	}
	p.VendorDir = filepath.Clean(vendorDir)

	log.Debug().
		Str("root", p.Root).
		Str("name", p.Name).
		Str("vendorDir", p.VendorDir).
		Msg("Project loaded")

	return p, nil
}

// InstalledPath returns the location of installed.json
func (p *Project) InstalledPath() string {
	return filepath.Join(p.VendorDir, filepath.FromSlash(paths.InstalledFile))
}

// DefaultInstallPath is where Composer puts a package without a custom installer
func (p *Project) DefaultInstallPath(name string) string {
	return filepath.Join(p.VendorDir, filepath.FromSlash(name))
}

// Packages returns the installed packages in installed.json order
func (p *Project) Packages() ([]*Package, error) {
	if !p.loaded {
		pkgs, err := LoadInstalled(p.fs, p)
		if err != nil {
			return nil, err
		}
		p.installed = pkgs
		p.loaded = true
	}
	return p.installed, nil
}

// Package looks a package up in installed.json, falling back to the
// composer.json inside its default install path.
func (p *Project) Package(name string) (*Package, error) {
	pkgs, err := p.Packages()
	if err != nil {
		return nil, err
	}
	for _, pkg := range pkgs {
		if pkg.Name == name {
			return pkg, nil
		}
	}

	installPath := p.DefaultInstallPath(name)
	data, err := p.fs.ReadFile(filepath.Join(installPath, paths.DefaultManifestFile))
	if err != nil {
		return nil, errors.Newf(errors.ErrPackageNotFound, "package %s is not installed", name).
			WithDetail("package", name)
	}

	var pkg Package
	if err := json.Unmarshal(data, &pkg); err != nil {
		return nil, errors.Wrapf(err, errors.ErrManifestParse, "failed to parse composer.json of %s", name)
	}
	if pkg.Name == "" {
		pkg.Name = name
	}
	pkg.InstallPath = installPath
	return &pkg, nil
}

// PackageNames returns the sorted names of installed packages
func (p *Project) PackageNames() ([]string, error) {
	pkgs, err := p.Packages()
	if err != nil {
		return nil, err
	}
	names := make([]string, len(pkgs))
	for i, pkg := range pkgs {
		names[i] = pkg.Name
	}
	sort.Strings(names)
	return names, nil
}
