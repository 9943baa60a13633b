package manifest

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"sort"

	"github.com/arthur-debert/pkgactions/pkg/errors"
	kjson "github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/v2"
)

// koanfDelim is never looked up with Get: keys are file paths and contain
// dots, so the merged tree is walked directly. A delimiter that cannot
// occur in a key keeps koanf's flattened index harmless.
const koanfDelim = "\x1f"

// rawBytesProvider feeds an extra section to koanf
type rawBytesProvider struct{ bytes []byte }

func (r *rawBytesProvider) ReadBytes() ([]byte, error) { return r.bytes, nil }
func (r *rawBytesProvider) Read() (map[string]interface{}, error) {
	return nil, stderrors.New("not implemented")
}

// Document is the result of merging package extras with root extras
type Document struct {
	data      map[string]interface{}
	pkgOrder  keyOrder
	rootOrder keyOrder
}

// Merge loads the package extras, then the root extras on top. Either
// may be empty or JSON null. Root values win; lists are merged by index.
func Merge(pkgExtra, rootExtra json.RawMessage) (*Document, error) {
	k := koanf.NewWithConf(koanf.Conf{Delim: koanfDelim})

	doc := &Document{}
	var err error

	if doc.pkgOrder, err = load(k, pkgExtra, "package"); err != nil {
		return nil, err
	}
	if doc.rootOrder, err = load(k, rootExtra, "root"); err != nil {
		return nil, err
	}

	doc.data = k.Raw()
	return doc, nil
}

func load(k *koanf.Koanf, extra json.RawMessage, source string) (keyOrder, error) {
	trimmed := bytes.TrimSpace(extra)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return keyOrder{}, nil
	}

	// Composer writes an empty extra as []
	if bytes.Equal(trimmed, []byte("[]")) {
		return keyOrder{}, nil
	}
	if trimmed[0] != '{' {
		return nil, errors.Newf(errors.ErrManifestParse, "%s extra must be a JSON object", source).
			WithDetail("source", source)
	}

	if err := k.Load(&rawBytesProvider{bytes: trimmed}, kjson.Parser(), koanf.WithMergeFunc(replaceRecursive)); err != nil {
		return nil, errors.Wrapf(err, errors.ErrManifestParse, "failed to parse %s extra", source).
			WithDetail("source", source)
	}

	order, err := readKeyOrder(trimmed)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrManifestParse, "failed to read %s extra key order", source)
	}
	return order, nil
}

// replaceRecursive merges src into dest. Objects merge key by key and
// lists merge index by index: element i of src replaces element i of dest
// and the tail of the longer dest list is kept.
func replaceRecursive(src, dest map[string]interface{}) error {
	for key, v := range src {
		if cur, ok := dest[key]; ok {
			dest[key] = replaceValue(cur, v)
			continue
		}
		dest[key] = v
	}
	return nil
}

func replaceValue(cur, v interface{}) interface{} {
	switch next := v.(type) {
	case map[string]interface{}:
		if m, ok := cur.(map[string]interface{}); ok {
			_ = replaceRecursive(next, m)
			return m
		}
	case []interface{}:
		if list, ok := cur.([]interface{}); ok {
			merged := make([]interface{}, len(list), max(len(list), len(next)))
			copy(merged, list)
			for i, item := range next {
				if i < len(merged) {
					merged[i] = replaceValue(merged[i], item)
					continue
				}
				merged = append(merged, item)
			}
			return merged
		}
	}
	return v
}

// Get walks the merged tree along path
func (d *Document) Get(path ...string) (interface{}, bool) {
	var cur interface{} = d.data
	for _, segment := range path {
		m, ok := cur.(map[string]interface{})
		if !ok {
			return nil, false
		}
		if cur, ok = m[segment]; !ok {
			return nil, false
		}
	}
	return cur, true
}

// Has reports whether path exists in the merged tree
func (d *Document) Has(path ...string) bool {
	_, ok := d.Get(path...)
	return ok
}

// Keys returns the keys of the object at path: the package's declared
// order first, then keys only the root declares in its order, then
// anything left in sorted order.
func (d *Document) Keys(path ...string) []string {
	v, ok := d.Get(path...)
	if !ok {
		return nil
	}
	m, ok := v.(map[string]interface{})
	if !ok {
		return nil
	}
	return orderedKeys(m, d.pkgOrder[pathKey(path)], d.rootOrder[pathKey(path)])
}

// Raw returns the merged tree
func (d *Document) Raw() map[string]interface{} {
	return d.data
}

// ordering returns the key order of objects below path, for values handed
// to actions
func (d *Document) ordering(path []string) func(sub []string, m map[string]interface{}) []string {
	return func(sub []string, m map[string]interface{}) []string {
		full := pathKey(append(append([]string(nil), path...), sub...))
		return orderedKeys(m, d.pkgOrder[full], d.rootOrder[full])
	}
}

func orderedKeys(m map[string]interface{}, first, second []string) []string {
	keys := make([]string, 0, len(m))
	seen := make(map[string]bool, len(m))

	for _, list := range [][]string{first, second} {
		for _, k := range list {
			if _, ok := m[k]; ok && !seen[k] {
				keys = append(keys, k)
				seen[k] = true
			}
		}
	}

	var rest []string
	for k := range m {
		if !seen[k] {
			rest = append(rest, k)
		}
	}
	sort.Strings(rest)
	return append(keys, rest...)
}
