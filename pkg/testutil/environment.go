package testutil

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/pkgactions/pkg/filesystem"
	"github.com/spf13/afero"
)

// EnvType defines the type of test environment
type EnvType int

const (
	EnvMemoryOnly EnvType = iota // Pure in-memory, no real filesystem
	EnvIsolated                  // Real filesystem in temp directory
)

// ProjectEnvironment is a Composer project fixture
type ProjectEnvironment struct {
	Root      string
	VendorDir string
	FS        filesystem.FS
	Type      EnvType

	t         *testing.T
	name      string
	rootExtra json.RawMessage
	installed []map[string]interface{}
}

// NewProjectEnvironment creates an empty project with a vendor directory
func NewProjectEnvironment(t *testing.T, envType EnvType) *ProjectEnvironment {
	t.Helper()

	env := &ProjectEnvironment{t: t, Type: envType, name: "acme/app"}

	switch envType {
	case EnvMemoryOnly:
		env.Root = "/virtual/project"
		env.FS = filesystem.NewAferoFS(afero.NewMemMapFs())
	case EnvIsolated:
		root, err := filepath.EvalSymlinks(t.TempDir())
		if err != nil {
			t.Fatalf("Failed to resolve temp dir: %v", err)
		}
		env.Root = filepath.Join(root, "project")
		env.FS = filesystem.NewOS()
	}

	env.VendorDir = filepath.Join(env.Root, "vendor")
	if err := env.FS.MkdirAll(env.VendorDir, 0755); err != nil {
		t.Fatalf("Failed to create vendor directory: %v", err)
	}

	// Keep the environment from leaking into config and path discovery
	t.Setenv("COMPOSER", "")
	t.Setenv("COMPOSER_VENDOR_DIR", "")
	t.Setenv("PKGACTIONS_PROJECT_ROOT", env.Root)

	env.writeRootManifest()
	env.writeInstalled()
	return env
}

// WithRootExtra sets the root composer.json extra section
func (env *ProjectEnvironment) WithRootExtra(extra string) *ProjectEnvironment {
	env.t.Helper()
	env.rootExtra = mustRawJSON(env.t, extra)
	env.writeRootManifest()
	return env
}

// WithPackage installs a package under vendor/<name> with the given extra
// section and files, and records it in installed.json
func (env *ProjectEnvironment) WithPackage(name string, extra map[string]interface{}, files map[string]string) *ProjectEnvironment {
	env.t.Helper()

	pkgDir := filepath.Join(env.VendorDir, filepath.FromSlash(name))
	if err := env.FS.MkdirAll(pkgDir, 0755); err != nil {
		env.t.Fatalf("Failed to create package directory: %v", err)
	}
	createFileTree(env.t, env.FS, pkgDir, files)

	entry := map[string]interface{}{
		"name":         name,
		"version":      "1.0.0",
		"type":         "library",
		"install-path": "../" + name,
	}
	if extra != nil {
		entry["extra"] = extra
	}
	env.installed = append(env.installed, entry)
	env.writeInstalled()
	return env
}

// WithFiles creates files relative to the project root
func (env *ProjectEnvironment) WithFiles(files map[string]string) *ProjectEnvironment {
	env.t.Helper()
	createFileTree(env.t, env.FS, env.Root, files)
	return env
}

// Path joins a slash-separated relative path onto the project root
func (env *ProjectEnvironment) Path(rel string) string {
	return filepath.Join(env.Root, filepath.FromSlash(rel))
}

// PackageDir returns the install root of a package
func (env *ProjectEnvironment) PackageDir(name string) string {
	return filepath.Join(env.VendorDir, filepath.FromSlash(name))
}

func (env *ProjectEnvironment) writeRootManifest() {
	env.t.Helper()

	manifest := map[string]interface{}{"name": env.name}
	if len(env.rootExtra) > 0 {
		manifest["extra"] = env.rootExtra
	}
	env.writeJSON(filepath.Join(env.Root, "composer.json"), manifest)
}

func (env *ProjectEnvironment) writeInstalled() {
	env.t.Helper()

	packages := env.installed
	if packages == nil {
		packages = []map[string]interface{}{}
	}
	env.writeJSON(filepath.Join(env.VendorDir, "composer", "installed.json"), map[string]interface{}{
		"packages": packages,
		"dev":      true,
	})
}

func (env *ProjectEnvironment) writeJSON(path string, v interface{}) {
	env.t.Helper()

	data, err := json.MarshalIndent(v, "", "    ")
	if err != nil {
		env.t.Fatalf("Failed to encode %s: %v", path, err)
	}
	if err := env.FS.MkdirAll(filepath.Dir(path), 0755); err != nil {
		env.t.Fatalf("Failed to create directory for %s: %v", path, err)
	}
	if err := env.FS.WriteFile(path, data, 0644); err != nil {
		env.t.Fatalf("Failed to write %s: %v", path, err)
	}
}

func mustRawJSON(t *testing.T, s string) json.RawMessage {
	t.Helper()
	if !json.Valid([]byte(s)) {
		t.Fatalf("invalid JSON fixture: %s", s)
	}
	return json.RawMessage(s)
}

func createFileTree(t *testing.T, fsys filesystem.FS, base string, files map[string]string) {
	t.Helper()

	for rel, content := range files {
		full := filepath.Join(base, filepath.FromSlash(rel))
		if err := fsys.MkdirAll(filepath.Dir(full), 0755); err != nil {
			t.Fatalf("Failed to create directory for %s: %v", rel, err)
		}
		if err := fsys.WriteFile(full, []byte(content), 0644); err != nil {
			t.Fatalf("Failed to write file %s: %v", rel, err)
		}
	}
}
