package manifest_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/arthur-debert/pkgactions/pkg/errors"
	"github.com/arthur-debert/pkgactions/pkg/manifest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func sampleManifest(t *testing.T) *manifest.Manifest {
	t.Helper()
	b := manifest.NewBuilder(defaultEvents)
	m, err := b.ForPackage("post-package-install", "acme/pkg", nil, json.RawMessage(`{
		"post-package-install": {
			"symlink": {"acme/pkg": {"dist/z.js": "public/z.js", "dist/a.js": ["public/a.js", "web/a.js"]}},
			"create": {"acme/pkg": {"var/cache": 755}}
		}
	}`))
	require.NoError(t, err)
	return m
}

func TestRender_YAMLKeepsOrder(t *testing.T) {
	out, err := sampleManifest(t).Render("yaml")
	require.NoError(t, err)

	text := string(out)

	assert.Less(t, strings.Index(text, "action: symlink"), strings.Index(text, "action: create"))
	assert.Less(t, strings.Index(text, "dist/z.js"), strings.Index(text, "dist/a.js"))
	assert.Contains(t, text, "var/cache: 755")
	assert.Less(t, strings.Index(text, "event:"), strings.Index(text, "entries:"))

	var decoded map[string]interface{}
	require.NoError(t, yaml.Unmarshal(out, &decoded))
	assert.Equal(t, "acme/pkg", decoded["package"])
	entries := decoded["entries"].([]interface{})
	require.Len(t, entries, 2)
	args := entries[0].(map[string]interface{})["args"].(map[string]interface{})
	assert.Equal(t, []interface{}{"public/a.js", "web/a.js"}, args["dist/a.js"])
}

func TestRender_JSON(t *testing.T) {
	out, err := sampleManifest(t).Render("json")
	require.NoError(t, err)

	var decoded struct {
		Package string `json:"package"`
		Entries []struct {
			Action string `json:"action"`
		} `json:"entries"`
	}
	require.NoError(t, json.Unmarshal(out, &decoded))
	assert.Equal(t, "acme/pkg", decoded.Package)
	require.Len(t, decoded.Entries, 2)
	assert.Equal(t, "symlink", decoded.Entries[0].Action)
}

func TestRender_TOML(t *testing.T) {
	out, err := sampleManifest(t).Render("toml")
	require.NoError(t, err)
	assert.Contains(t, string(out), "package = 'acme/pkg'")
	assert.Contains(t, string(out), "[[entries]]")
}

func TestRender_UnknownFormat(t *testing.T) {
	_, err := sampleManifest(t).Render("xml")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}
