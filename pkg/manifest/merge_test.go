package manifest

import (
	"encoding/json"
	"testing"

	"github.com/arthur-debert/pkgactions/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadKeyOrder(t *testing.T) {
	order, err := readKeyOrder([]byte(`{
		"z": {"b.txt": 1, "a.txt": [ {"y": 1, "x": 2} ]},
		"a": null,
		"z": {"c": 1}
	}`))
	require.NoError(t, err)

	assert.Equal(t, []string{"z", "a"}, order[pathKey(nil)])
	assert.Equal(t, []string{"b.txt", "a.txt", "c"}, order[pathKey([]string{"z"})])
	assert.Equal(t, []string{"y", "x"}, order[pathKey([]string{"z", "a.txt", "0"})])
}

func TestReadKeyOrder_Invalid(t *testing.T) {
	_, err := readKeyOrder([]byte(`{"a": 1} {"b": 2}`))
	assert.Error(t, err)

	_, err = readKeyOrder([]byte(`{"a": `))
	assert.Error(t, err)
}

func TestMerge(t *testing.T) {
	pkg := json.RawMessage(`{
		"post-package-install": {
			"copy": {"acme/pkg": {"b.dist": "b", "a.dist": "a"}},
			"remove": {"acme/pkg": ["var/cache", "var/log"]}
		}
	}`)
	root := json.RawMessage(`{
		"post-package-install": {
			"symlink": {"acme/pkg": {"dist/lib.js": "public/js/lib.js"}},
			"copy": {"acme/pkg": {"a.dist": "config/a"}},
			"remove": {"acme/pkg": ["tmp"]}
		}
	}`)

	doc, err := Merge(pkg, root)
	require.NoError(t, err)

	t.Run("root wins on conflicts", func(t *testing.T) {
		v, ok := doc.Get("post-package-install", "copy", "acme/pkg", "a.dist")
		require.True(t, ok)
		assert.Equal(t, "config/a", v)

		v, ok = doc.Get("post-package-install", "copy", "acme/pkg", "b.dist")
		require.True(t, ok)
		assert.Equal(t, "b", v)
	})

	t.Run("lists merge by index", func(t *testing.T) {
		v, ok := doc.Get("post-package-install", "remove", "acme/pkg")
		require.True(t, ok)
		assert.Equal(t, []interface{}{"tmp", "var/log"}, v)
	})

	t.Run("declared order", func(t *testing.T) {
		assert.Equal(t, []string{"copy", "remove", "symlink"}, doc.Keys("post-package-install"))
		assert.Equal(t, []string{"b.dist", "a.dist"}, doc.Keys("post-package-install", "copy", "acme/pkg"))
	})

	t.Run("dotted keys are not split", func(t *testing.T) {
		assert.True(t, doc.Has("post-package-install", "symlink", "acme/pkg", "dist/lib.js"))
		assert.False(t, doc.Has("post-package-install", "symlink", "acme/pkg", "dist/lib"))
	})

	t.Run("missing paths", func(t *testing.T) {
		assert.Nil(t, doc.Keys("nope"))
		assert.Nil(t, doc.Keys("post-package-install", "remove", "acme/pkg"))
	})
}

func TestMerge_Lists(t *testing.T) {
	tests := []struct {
		name     string
		pkg      string
		root     string
		expected interface{}
	}{
		{
			name:     "root replaces leading elements",
			pkg:      `{"a": ["a", "b"]}`,
			root:     `{"a": ["c"]}`,
			expected: []interface{}{"c", "b"},
		},
		{
			name:     "root extends a shorter list",
			pkg:      `{"a": ["a"]}`,
			root:     `{"a": ["c", "d"]}`,
			expected: []interface{}{"c", "d"},
		},
		{
			name:     "objects inside lists merge",
			pkg:      `{"a": [{"x": "1", "y": "2"}]}`,
			root:     `{"a": [{"y": "3"}]}`,
			expected: []interface{}{map[string]interface{}{"x": "1", "y": "3"}},
		},
		{
			name:     "string replaces list",
			pkg:      `{"a": ["a", "b"]}`,
			root:     `{"a": "c"}`,
			expected: "c",
		},
		{
			name:     "list replaces string",
			pkg:      `{"a": "c"}`,
			root:     `{"a": ["a"]}`,
			expected: []interface{}{"a"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := Merge(json.RawMessage(tt.pkg), json.RawMessage(tt.root))
			require.NoError(t, err)

			v, ok := doc.Get("a")
			require.True(t, ok)
			assert.Equal(t, tt.expected, v)
		})
	}
}

func TestMerge_EmptyInputs(t *testing.T) {
	for _, extra := range []string{"", "null", "[]", "  {}  "} {
		doc, err := Merge(json.RawMessage(extra), nil)
		require.NoError(t, err, "extra %q", extra)
		assert.Empty(t, doc.Raw())
	}
}

func TestMerge_Errors(t *testing.T) {
	tests := []struct {
		name string
		pkg  string
		root string
	}{
		{name: "package not an object", pkg: `["a"]`},
		{name: "root not an object", root: `"x"`},
		{name: "malformed root", root: `{"a": }`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Merge(json.RawMessage(tt.pkg), json.RawMessage(tt.root))
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, errors.ErrManifestParse))
		})
	}
}

func TestOrderedKeys(t *testing.T) {
	m := map[string]interface{}{"a": 1, "b": 2, "c": 3, "d": 4, "e": 5}
	got := orderedKeys(m, []string{"c", "x", "a"}, []string{"e", "a"})
	assert.Equal(t, []string{"c", "a", "e", "b", "d"}, got)
}
