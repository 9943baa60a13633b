package composer_test

import (
	"testing"

	"github.com/arthur-debert/pkgactions/pkg/composer"
	"github.com/arthur-debert/pkgactions/pkg/errors"
	"github.com/arthur-debert/pkgactions/pkg/filesystem"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadInstalled_Layouts(t *testing.T) {
	tests := []struct {
		name      string
		installed string
		want      map[string]string
	}{
		{
			name: "composer 1 array",
			installed: `[
				{"name": "acme/pkg", "version": "1.2.0"},
				{"name": "acme/other", "version": "2.0.0"}
			]`,
			want: map[string]string{
				"acme/pkg":   "/p/vendor/acme/pkg",
				"acme/other": "/p/vendor/acme/other",
			},
		},
		{
			name: "composer 2 object",
			installed: `{
				"packages": [
					{"name": "acme/pkg", "install-path": "../acme/pkg"},
					{"name": "acme/theme", "type": "wordpress-theme", "install-path": "../../web/themes/theme"}
				],
				"dev": true
			}`,
			want: map[string]string{
				"acme/pkg":   "/p/vendor/acme/pkg",
				"acme/theme": "/p/web/themes/theme",
			},
		},
		{
			name:      "empty file",
			installed: "  ",
			want:      map[string]string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("COMPOSER_VENDOR_DIR", "")
			t.Setenv("COMPOSER", "")

			fsys := filesystem.NewAferoFS(afero.NewMemMapFs())
			require.NoError(t, fsys.MkdirAll("/p/vendor/composer", 0755))
			require.NoError(t, fsys.WriteFile("/p/vendor/composer/installed.json", []byte(tt.installed), 0644))

			project, err := composer.LoadProject(fsys, "/p", "")
			require.NoError(t, err)

			pkgs, err := composer.LoadInstalled(fsys, project)
			require.NoError(t, err)

			got := make(map[string]string, len(pkgs))
			for _, pkg := range pkgs {
				got[pkg.Name] = pkg.InstallPath
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoadInstalled_Malformed(t *testing.T) {
	t.Setenv("COMPOSER_VENDOR_DIR", "")
	t.Setenv("COMPOSER", "")

	fsys := filesystem.NewAferoFS(afero.NewMemMapFs())
	require.NoError(t, fsys.MkdirAll("/p/vendor/composer", 0755))
	require.NoError(t, fsys.WriteFile("/p/vendor/composer/installed.json", []byte(`{"packages": [`), 0644))

	project, err := composer.LoadProject(fsys, "/p", "")
	require.NoError(t, err)

	_, err = project.Packages()
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrManifestParse))
}
