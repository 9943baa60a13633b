package composer_test

import (
	"path/filepath"
	"testing"

	"github.com/arthur-debert/pkgactions/pkg/composer"
	"github.com/arthur-debert/pkgactions/pkg/errors"
	"github.com/arthur-debert/pkgactions/pkg/filesystem"
	"github.com/arthur-debert/pkgactions/pkg/testutil"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadProject(t *testing.T) {
	env := testutil.NewProjectEnvironment(t, testutil.EnvMemoryOnly)
	env.WithRootExtra(`{"post-package-install": {"symlink": {}}}`)

	project, err := composer.LoadProject(env.FS, env.Root, "")
	require.NoError(t, err)

	assert.Equal(t, env.Root, project.Root)
	assert.Equal(t, "acme/app", project.Name)
	assert.Equal(t, env.VendorDir, project.VendorDir)
	assert.JSONEq(t, `{"post-package-install": {"symlink": {}}}`, string(project.Extra))
}

func TestLoadProject_VendorDir(t *testing.T) {
	newFS := func(t *testing.T) filesystem.FS {
		fsys := filesystem.NewAferoFS(afero.NewMemMapFs())
		require.NoError(t, fsys.MkdirAll("/p", 0755))
		require.NoError(t, fsys.WriteFile("/p/composer.json", []byte(`{"config": {"vendor-dir": "lib/vendor"}}`), 0644))
		return fsys
	}

	t.Run("from composer.json", func(t *testing.T) {
		t.Setenv("COMPOSER_VENDOR_DIR", "")
		project, err := composer.LoadProject(newFS(t), "/p", "")
		require.NoError(t, err)
		assert.Equal(t, "/p/lib/vendor", project.VendorDir)
	})

	t.Run("environment beats composer.json", func(t *testing.T) {
		t.Setenv("COMPOSER_VENDOR_DIR", "deps")
		project, err := composer.LoadProject(newFS(t), "/p", "")
		require.NoError(t, err)
		assert.Equal(t, "/p/deps", project.VendorDir)
	})

	t.Run("explicit beats everything", func(t *testing.T) {
		t.Setenv("COMPOSER_VENDOR_DIR", "deps")
		project, err := composer.LoadProject(newFS(t), "/p", "/opt/vendor")
		require.NoError(t, err)
		assert.Equal(t, "/opt/vendor", project.VendorDir)
	})
}

func TestLoadProject_Missing(t *testing.T) {
	t.Setenv("COMPOSER_VENDOR_DIR", "")
	t.Setenv("COMPOSER", "")
	fsys := filesystem.NewAferoFS(afero.NewMemMapFs())

	project, err := composer.LoadProject(fsys, "/empty", "")
	require.NoError(t, err)
	assert.Empty(t, project.Name)
	assert.Nil(t, project.Extra)
	assert.Equal(t, "/empty/vendor", project.VendorDir)

	pkgs, err := project.Packages()
	require.NoError(t, err)
	assert.Empty(t, pkgs)
}

func TestLoadProject_Malformed(t *testing.T) {
	t.Setenv("COMPOSER", "")
	fsys := filesystem.NewAferoFS(afero.NewMemMapFs())
	require.NoError(t, fsys.MkdirAll("/p", 0755))
	require.NoError(t, fsys.WriteFile("/p/composer.json", []byte(`{"name": `), 0644))

	_, err := composer.LoadProject(fsys, "/p", "")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrManifestParse))
}

func TestProject_Package(t *testing.T) {
	env := testutil.NewProjectEnvironment(t, testutil.EnvMemoryOnly)
	env.WithPackage("acme/pkg", map[string]interface{}{"post-package-install": map[string]interface{}{}}, map[string]string{"dist/lib.js": "js"})
	env.WithPackage("acme/tools", nil, nil)

	// not in installed.json, but present on disk
	env.WithFiles(map[string]string{
		"vendor/legacy/pkg/composer.json": `{"name": "legacy/pkg", "extra": {"a": 1}}`,
	})

	project, err := composer.LoadProject(env.FS, env.Root, "")
	require.NoError(t, err)

	t.Run("installed", func(t *testing.T) {
		pkg, err := project.Package("acme/pkg")
		require.NoError(t, err)
		assert.Equal(t, "acme/pkg", pkg.Name)
		assert.Equal(t, "1.0.0", pkg.Version)
		assert.Equal(t, env.PackageDir("acme/pkg"), pkg.InstallPath)
		assert.JSONEq(t, `{"post-package-install": {}}`, string(pkg.Extra))
	})

	t.Run("fallback to vendor composer.json", func(t *testing.T) {
		pkg, err := project.Package("legacy/pkg")
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(env.VendorDir, "legacy", "pkg"), pkg.InstallPath)
		assert.JSONEq(t, `{"a": 1}`, string(pkg.Extra))
	})

	t.Run("not found", func(t *testing.T) {
		_, err := project.Package("ghost/pkg")
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrPackageNotFound))
	})

	t.Run("names", func(t *testing.T) {
		names, err := project.PackageNames()
		require.NoError(t, err)
		assert.Equal(t, []string{"acme/pkg", "acme/tools"}, names)
	})
}
