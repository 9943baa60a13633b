package composer

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/arthur-debert/pkgactions/pkg/errors"
	"github.com/arthur-debert/pkgactions/pkg/filesystem"
)

// installedV2 is the Composer 2 layout; Composer 1 writes a bare array
type installedV2 struct {
	Packages []*Package `json:"packages"`
	Dev      bool       `json:"dev"`
}

// LoadInstalled reads <vendor>/composer/installed.json. A missing file
// means nothing is installed.
func LoadInstalled(fsys filesystem.FS, project *Project) ([]*Package, error) {
	path := project.InstalledPath()

	data, err := fsys.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Debug().Str("path", path).Msg("No installed.json")
			return nil, nil
		}
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to read %s", path)
	}

	pkgs, err := parseInstalled(data)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrManifestParse, "failed to parse %s", path).
			WithDetail("path", path)
	}

	composerDir := filepath.Dir(path)
	for _, pkg := range pkgs {
		switch {
		case pkg.RawInstallPath == "":
			pkg.InstallPath = project.DefaultInstallPath(pkg.Name)
		case filepath.IsAbs(pkg.RawInstallPath):
			pkg.InstallPath = filepath.Clean(pkg.RawInstallPath)
		default:
			pkg.InstallPath = filepath.Join(composerDir, filepath.FromSlash(pkg.RawInstallPath))
		}
	}

	log.Debug().Int("count", len(pkgs)).Str("path", path).Msg("Installed packages loaded")
	return pkgs, nil
}

func parseInstalled(data []byte) ([]*Package, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, nil
	}

	if trimmed[0] == '[' {
		var pkgs []*Package
		if err := json.Unmarshal(trimmed, &pkgs); err != nil {
			return nil, err
		}
		return pkgs, nil
	}

	var v2 installedV2
	if err := json.Unmarshal(trimmed, &v2); err != nil {
		return nil, err
	}
	return v2.Packages, nil
}
