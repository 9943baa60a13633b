package manifest

import (
	"fmt"
	"sort"

	"github.com/arthur-debert/pkgactions/pkg/errors"
	"github.com/go-viper/mapstructure/v2"
)

// Pair is one key of an object argument with its value
type Pair struct {
	Key   string
	Value interface{}
}

// Decode converts a manifest value with weak typing: a single string
// becomes a one-element list and numbers become strings where a string is
// expected.
func Decode(input, output interface{}) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           output,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return err
	}
	return decoder.Decode(input)
}

// Pairs returns the keys of an object argument in declared order
func (e Entry) Pairs() ([]Pair, error) {
	m, ok := e.Args.(map[string]interface{})
	if !ok {
		return nil, errors.Newf(errors.ErrActionInvalid,
			"%s action for package '%s' expects an object, got %s", e.Action, e.Package, describe(e.Args)).
			WithDetail("action", e.Action).
			WithDetail("package", e.Package)
	}

	var keys []string
	if e.order != nil {
		keys = e.order(nil, m)
	} else {
		keys = make([]string, 0, len(m))
		for k := range m {
			keys = append(keys, k)
		}
		sort.Strings(keys)
	}

	pairs := make([]Pair, len(keys))
	for i, k := range keys {
		pairs[i] = Pair{Key: k, Value: m[k]}
	}
	return pairs, nil
}

// Strings decodes a list argument; a single string is accepted
func (e Entry) Strings() ([]string, error) {
	return DecodeStrings(e.Args)
}

// DecodeString decodes a scalar manifest value as a string
func DecodeString(v interface{}) (string, error) {
	switch v.(type) {
	case map[string]interface{}, []interface{}, nil:
		return "", errors.Newf(errors.ErrActionInvalid, "expected a string, got %s", describe(v))
	}
	var out string
	if err := Decode(v, &out); err != nil {
		return "", errors.Wrap(err, errors.ErrActionInvalid, "expected a string")
	}
	return out, nil
}

// DecodeStrings decodes a list of strings; a single string is accepted
func DecodeStrings(v interface{}) ([]string, error) {
	switch v.(type) {
	case map[string]interface{}, nil:
		return nil, errors.Newf(errors.ErrActionInvalid, "expected a list of strings, got %s", describe(v))
	}
	var out []string
	if err := Decode(v, &out); err != nil {
		return nil, errors.Wrap(err, errors.ErrActionInvalid, "expected a list of strings")
	}
	return out, nil
}

func describe(v interface{}) string {
	switch v.(type) {
	case nil:
		return "null"
	case map[string]interface{}:
		return "an object"
	case []interface{}:
		return "a list"
	case string:
		return "a string"
	case bool:
		return "a boolean"
	case float64:
		return "a number"
	default:
		return fmt.Sprintf("%T", v)
	}
}
