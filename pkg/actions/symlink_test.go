package actions_test

import (
	"context"
	"io/fs"
	"testing"

	"github.com/arthur-debert/pkgactions/pkg/actions"
	"github.com/arthur-debert/pkgactions/pkg/errors"
	"github.com/arthur-debert/pkgactions/pkg/output"
	"github.com/arthur-debert/pkgactions/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fsMode(m uint32) fs.FileMode { return fs.FileMode(m) }

func TestSymlink_RelativeFile(t *testing.T) {
	for _, envType := range []testutil.EnvType{testutil.EnvMemoryOnly, testutil.EnvIsolated} {
		project, env, buf := newEnv(t, envType, map[string]string{"dist/lib.js": "lib()"})

		err := actions.NewDispatcher().Dispatch(context.Background(), env, entry("symlink", map[string]interface{}{
			"dist/lib.js": "public/js/lib.js",
		}))
		require.NoError(t, err)

		testutil.AssertSymlink(t, project.FS, project.Path("public/js/lib.js"), "../../vendor/acme/pkg/dist/lib.js")
		testutil.AssertFileContent(t, project.FS, project.Path("public/js/lib.js"), "lib()")
		assert.Equal(t, []string{
			"  - Symlinking vendor/acme/pkg/dist/lib.js to public/js/lib.js",
		}, buf.Messages(output.LevelInfo))
	}
}

func TestSymlink_DirectoryAndMultipleTargets(t *testing.T) {
	project, env, _ := newEnv(t, testutil.EnvIsolated, map[string]string{"assets/app.css": "css"})

	err := actions.NewDispatcher().Dispatch(context.Background(), env, entry("symlink", map[string]interface{}{
		"assets": []interface{}{"public/assets", "web/static/assets"},
	}))
	require.NoError(t, err)

	testutil.AssertSymlink(t, project.FS, project.Path("public/assets"), "../vendor/acme/pkg/assets")
	testutil.AssertSymlink(t, project.FS, project.Path("web/static/assets"), "../../vendor/acme/pkg/assets")
	testutil.AssertFileContent(t, project.FS, project.Path("web/static/assets/app.css"), "css")
}

func TestSymlink_ReplacesExisting(t *testing.T) {
	project, env, _ := newEnv(t, testutil.EnvIsolated, map[string]string{"lib.js": "new"})
	project.WithFiles(map[string]string{"public/lib.js/old.txt": "old"})

	err := actions.NewDispatcher().Dispatch(context.Background(), env, entry("symlink", map[string]interface{}{
		"lib.js": "public/lib.js",
	}))
	require.NoError(t, err)

	testutil.AssertSymlink(t, project.FS, project.Path("public/lib.js"), "../vendor/acme/pkg/lib.js")
}

func TestSymlink_Absolute(t *testing.T) {
	project, env, _ := newEnv(t, testutil.EnvIsolated, map[string]string{"lib.js": "lib"})
	env.Options.RelativeSymlinks = false

	err := actions.NewDispatcher().Dispatch(context.Background(), env, entry("symlink", map[string]interface{}{
		"lib.js": "public/lib.js",
	}))
	require.NoError(t, err)

	testutil.AssertSymlink(t, project.FS, project.Path("public/lib.js"), project.PackageDir(pkgName)+"/lib.js")
}

func TestSymlink_MissingOrigin(t *testing.T) {
	project, env, _ := newEnv(t, testutil.EnvMemoryOnly, nil)

	err := actions.NewDispatcher().Dispatch(context.Background(), env, entry("symlink", map[string]interface{}{
		"dist/lib.js": "public/js/lib.js",
	}))

	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrMissingTarget))
	assert.Contains(t, err.Error(),
		"The origin path 'vendor/acme/pkg/dist/lib.js' for package 'acme/pkg' does not exist.")
	testutil.AssertNotExists(t, project.FS, project.Path("public/js/lib.js"))
}

func TestSymlink_DryRun(t *testing.T) {
	project, env, buf := newEnv(t, testutil.EnvMemoryOnly, map[string]string{"lib.js": "lib"})
	env.DryRun = true

	err := actions.NewDispatcher().Dispatch(context.Background(), env, entry("symlink", map[string]interface{}{
		"lib.js": "public/lib.js",
	}))
	require.NoError(t, err)

	testutil.AssertNotExists(t, project.FS, project.Path("public/lib.js"))
	assert.Equal(t, []string{"  - Would symlink vendor/acme/pkg/lib.js to public/lib.js"}, buf.Messages(output.LevelInfo))
}
