package manifest

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/arthur-debert/pkgactions/pkg/errors"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// view is the serializable form of a manifest
type view struct {
	Event   string      `json:"event" toml:"event" yaml:"event"`
	Key     string      `json:"key,omitempty" toml:"key,omitempty" yaml:"key,omitempty"`
	Package string      `json:"package" toml:"package" yaml:"package"`
	Entries []entryView `json:"entries" toml:"entries" yaml:"entries"`
}

type entryView struct {
	Action string      `json:"action" toml:"action" yaml:"action"`
	Args   interface{} `json:"args" toml:"args" yaml:"args"`
}

func (m *Manifest) view() view {
	v := view{Event: m.Event, Key: m.Key, Package: m.Package, Entries: []entryView{}}
	for _, e := range m.Entries {
		v.Entries = append(v.Entries, entryView{Action: e.Action, Args: e.Args})
	}
	return v
}

// Render serializes the manifest as yaml, json or toml. YAML output keeps
// the declared key order; the other formats sort object keys.
func (m *Manifest) Render(format string) ([]byte, error) {
	switch format {
	case "yaml", "yml", "":
		return m.renderYAML()
	case "json":
		data, err := json.MarshalIndent(m.view(), "", "  ")
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrInternal, "failed to render manifest")
		}
		return append(data, '\n'), nil
	case "toml":
		data, err := toml.Marshal(m.view())
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrInternal, "failed to render manifest")
		}
		return data, nil
	default:
		return nil, errors.Newf(errors.ErrInvalidInput, "unknown output format %q", format)
	}
}

func (m *Manifest) renderYAML() ([]byte, error) {
	entries := &yaml.Node{Kind: yaml.SequenceNode}
	for _, e := range m.Entries {
		entries.Content = append(entries.Content, mapping(
			"action", scalar(e.Action),
			"args", orderedNode(e, nil, e.Args),
		))
	}

	pairs := []interface{}{"event", scalar(m.Event)}
	if m.Key != "" {
		pairs = append(pairs, "key", scalar(m.Key))
	}
	pairs = append(pairs, "package", scalar(m.Package), "entries", entries)

	data, err := yaml.Marshal(mapping(pairs...))
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "failed to render manifest")
	}
	return data, nil
}

func orderedNode(e Entry, path []string, v interface{}) *yaml.Node {
	switch val := v.(type) {
	case map[string]interface{}:
		node := &yaml.Node{Kind: yaml.MappingNode}
		var keys []string
		if e.order != nil {
			keys = e.order(path, val)
		} else {
			keys = orderedKeys(val, nil, nil)
		}
		for _, k := range keys {
			node.Content = append(node.Content, scalar(k), orderedNode(e, appendPath(path, k), val[k]))
		}
		return node
	case []interface{}:
		node := &yaml.Node{Kind: yaml.SequenceNode}
		for i, item := range val {
			node.Content = append(node.Content, orderedNode(e, appendPath(path, strconv.Itoa(i)), item))
		}
		return node
	case nil:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
	case bool:
		return &yaml.Node{Kind: yaml.ScalarNode, Value: strconv.FormatBool(val)}
	case float64:
		return &yaml.Node{Kind: yaml.ScalarNode, Value: strconv.FormatFloat(val, 'f', -1, 64)}
	default:
		return scalar(fmt.Sprint(val))
	}
}

func scalar(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
}

// mapping builds a mapping node from alternating keys and value nodes
func mapping(pairs ...interface{}) *yaml.Node {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for i := 0; i+1 < len(pairs); i += 2 {
		node.Content = append(node.Content, scalar(pairs[i].(string)), pairs[i+1].(*yaml.Node))
	}
	return node
}
