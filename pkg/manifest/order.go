package manifest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// pathSep joins JSON object paths in keyOrder; it cannot appear in JSON text
// without escaping and never in a Composer key.
const pathSep = "\x00"

// keyOrder records the declared key order of every object in a JSON
// document, keyed by the path of the object.
type keyOrder map[string][]string

func pathKey(path []string) string {
	return strings.Join(path, pathSep)
}

// readKeyOrder walks the token stream of data. Arrays are descended into
// so that objects nested in lists keep their order too; their path
// segment is the element index.
func readKeyOrder(data []byte) (keyOrder, error) {
	order := make(keyOrder)
	if len(bytes.TrimSpace(data)) == 0 {
		return order, nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := walkValue(dec, nil, order); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("unexpected data after top-level value")
	}
	return order, nil
}

func walkValue(dec *json.Decoder, path []string, order keyOrder) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}

	delim, ok := tok.(json.Delim)
	if !ok {
		return nil
	}

	switch delim {
	case '{':
		key := pathKey(path)
		for dec.More() {
			nameTok, err := dec.Token()
			if err != nil {
				return err
			}
			name, ok := nameTok.(string)
			if !ok {
				return fmt.Errorf("expected object key, got %v", nameTok)
			}
			order[key] = appendUnique(order[key], name)
			if err := walkValue(dec, appendPath(path, name), order); err != nil {
				return err
			}
		}
	case '[':
		for i := 0; dec.More(); i++ {
			if err := walkValue(dec, appendPath(path, fmt.Sprint(i)), order); err != nil {
				return err
			}
		}
	}

	// closing delimiter
	_, err = dec.Token()
	return err
}

func appendPath(path []string, segment string) []string {
	out := make([]string, len(path), len(path)+1)
	copy(out, path)
	return append(out, segment)
}

// appendUnique keeps the first position of a duplicated key; the decoded
// value is the last one, as with encoding/json.
func appendUnique(keys []string, key string) []string {
	for _, k := range keys {
		if k == key {
			return keys
		}
	}
	return append(keys, key)
}
