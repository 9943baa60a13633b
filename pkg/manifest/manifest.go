package manifest

import (
	"encoding/json"
	"fmt"

	"github.com/arthur-debert/pkgactions/pkg/errors"
	"github.com/arthur-debert/pkgactions/pkg/logging"
)

var log = logging.GetLogger("manifest")

// Entry is one action declared for one package
type Entry struct {
	Action  string
	Package string
	Args    interface{}

	order func(sub []string, m map[string]interface{}) []string
}

// Manifest is the ordered list of entries for one package and one event
type Manifest struct {
	Event   string
	Key     string
	Package string
	Entries []Entry
}

// Builder resolves manifests using the extra keys configured per event
type Builder struct {
	eventKeys map[string][]string
}

// NewBuilder creates a builder. eventKeys maps an event name to the extra
// keys that hold its actions, in priority order.
func NewBuilder(eventKeys map[string][]string) *Builder {
	return &Builder{eventKeys: eventKeys}
}

// CheckEvent fails with ErrUnknownEvent when event has no configured keys
func (b *Builder) CheckEvent(event string) error {
	if keys, ok := b.eventKeys[event]; !ok || len(keys) == 0 {
		return errors.Newf(errors.ErrUnknownEvent, "unknown event %q", event).
			WithDetail("event", event)
	}
	return nil
}

// SectionKey returns the first configured key of event present in doc
func (b *Builder) SectionKey(doc *Document, event string) (string, bool, error) {
	if err := b.CheckEvent(event); err != nil {
		return "", false, err
	}
	for _, key := range b.eventKeys[event] {
		if doc.Has(key) {
			return key, true, nil
		}
	}
	return "", false, nil
}

// ForPackage merges the package and root extras and returns the entries
// declared for pkgName under event. A package without actions yields an
// empty manifest.
func (b *Builder) ForPackage(event, pkgName string, pkgExtra, rootExtra json.RawMessage) (*Manifest, error) {
	doc, err := Merge(pkgExtra, rootExtra)
	if err != nil {
		return nil, err
	}

	m := &Manifest{Event: event, Package: pkgName}

	key, found, err := b.SectionKey(doc, event)
	if err != nil || !found {
		return m, err
	}
	m.Key = key

	for _, action := range doc.Keys(key) {
		byPackage, ok := b.actionSection(doc, key, action)
		if !ok {
			continue
		}
		args, ok := byPackage[pkgName]
		if !ok {
			continue
		}
		m.Entries = append(m.Entries, Entry{
			Action:  action,
			Package: pkgName,
			Args:    args,
			order:   doc.ordering([]string{key, action, pkgName}),
		})
	}

	log.Debug().
		Str("event", event).
		Str("key", key).
		Str("package", pkgName).
		Int("entries", len(m.Entries)).
		Msg("Manifest built")

	return m, nil
}

// ForRoot returns one manifest per package named in the root extras under
// event, in first-declared order. It serves events that have no installed
// package to merge with.
func (b *Builder) ForRoot(event string, rootExtra json.RawMessage) ([]*Manifest, error) {
	doc, err := Merge(nil, rootExtra)
	if err != nil {
		return nil, err
	}

	key, found, err := b.SectionKey(doc, event)
	if err != nil || !found {
		return nil, err
	}

	var manifests []*Manifest
	byName := make(map[string]*Manifest)

	for _, action := range doc.Keys(key) {
		byPackage, ok := b.actionSection(doc, key, action)
		if !ok {
			continue
		}
		for _, pkgName := range doc.Keys(key, action) {
			m, ok := byName[pkgName]
			if !ok {
				m = &Manifest{Event: event, Key: key, Package: pkgName}
				byName[pkgName] = m
				manifests = append(manifests, m)
			}
			m.Entries = append(m.Entries, Entry{
				Action:  action,
				Package: pkgName,
				Args:    byPackage[pkgName],
				order:   doc.ordering([]string{key, action, pkgName}),
			})
		}
	}

	return manifests, nil
}

func (b *Builder) actionSection(doc *Document, key, action string) (map[string]interface{}, bool) {
	v, _ := doc.Get(key, action)
	byPackage, ok := v.(map[string]interface{})
	if !ok {
		log.Warn().
			Str("key", key).
			Str("action", action).
			Str("type", fmt.Sprintf("%T", v)).
			Msg("Action section is not keyed by package, ignoring")
	}
	return byPackage, ok
}

// Actions returns the action names in declaration order
func (m *Manifest) Actions() []string {
	names := make([]string, len(m.Entries))
	for i, e := range m.Entries {
		names[i] = e.Action
	}
	return names
}

// Empty reports whether the manifest has no entries
func (m *Manifest) Empty() bool {
	return len(m.Entries) == 0
}
