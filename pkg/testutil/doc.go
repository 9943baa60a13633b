// Package testutil builds throwaway Composer projects for tests.
//
// A ProjectEnvironment is either purely in memory (afero MemMapFs, fast,
// no real symlinks) or isolated on disk under t.TempDir(). Both expose the
// same builder methods: root extras, installed packages, vendor files.
//
//	env := testutil.NewProjectEnvironment(t, testutil.EnvIsolated)
//	env.WithPackage("acme/pkg", nil, map[string]string{"dist/lib.js": "js"})
//	env.WithRootExtra(`{"post-package-install": {"symlink": {"acme/pkg": {"dist/lib.js": "public/js/lib.js"}}}}`)
package testutil
