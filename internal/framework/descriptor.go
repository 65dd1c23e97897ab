// ABOUTME: Framework descriptor sum type: a bare package name or a {name, options} value
// ABOUTME: Normalize reduces any preset value to an optional framework identifier

package framework

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// UndefinedName is substituted for a framework that could not be resolved.
// It matches what Storybook tooling prints for a missing framework value.
const UndefinedName = "undefined"

// Descriptor is the raw value of the "framework" preset.
// Implemented by PlainName and Named only.
type Descriptor interface {
	frameworkName() (string, bool)
}

// PlainName is a framework given directly by its package name.
type PlainName string

func (p PlainName) frameworkName() (string, bool) { return string(p), true }

// Named is a framework given as an object, e.g. {name: "@storybook/nextjs", options: {}}.
type Named struct {
	Name    string         `json:"name" yaml:"name"`
	Options map[string]any `json:"options,omitempty" yaml:"options,omitempty"`
}

// An empty Name is present, exactly like PlainName("").
func (n Named) frameworkName() (string, bool) { return n.Name, true }

// Normalize extracts the framework identifier from a preset value.
// Strings and Descriptors are handled directly; a generic map is read through
// its "name" key. Any other shape yields ("", false), never an error.
func Normalize(v any) (string, bool) {
	switch v := v.(type) {
	case nil:
		return "", false
	case string:
		return v, true
	case *Named:
		if v == nil {
			return "", false
		}
		return v.frameworkName()
	case Descriptor:
		return v.frameworkName()
	case map[string]any:
		name, ok := v["name"].(string)
		return name, ok
	default:
		return "", false
	}
}

// NameOrUndefined is Normalize with the unresolved case mapped to UndefinedName.
func NameOrUndefined(v any) string {
	if name, ok := Normalize(v); ok {
		return name
	}
	return UndefinedName
}

// Preset wraps a Descriptor so it can be decoded from JSON or YAML, where the
// value may be either a string or a mapping.
type Preset struct {
	Descriptor Descriptor
}

// Value returns the wrapped descriptor, or nil when none is set.
func (p Preset) Value() any {
	if p.Descriptor == nil {
		return nil
	}
	return p.Descriptor
}

// IsZero reports whether no descriptor is set.
func (p Preset) IsZero() bool { return p.Descriptor == nil }

func (p *Preset) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		p.Descriptor = nil
		return nil
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		p.Descriptor = PlainName(s)
		return nil
	case len(data) > 0 && data[0] == '{':
		var n Named
		if err := json.Unmarshal(data, &n); err != nil {
			return err
		}
		p.Descriptor = n
		return nil
	default:
		return fmt.Errorf("framework preset: expected string or object, got %s", data)
	}
}

func (p Preset) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.Value())
}

func (p *Preset) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		if node.Tag == "!!null" {
			p.Descriptor = nil
			return nil
		}
		p.Descriptor = PlainName(node.Value)
		return nil
	case yaml.MappingNode:
		var n Named
		if err := node.Decode(&n); err != nil {
			return err
		}
		p.Descriptor = n
		return nil
	default:
		return fmt.Errorf("framework preset: line %d: expected string or mapping", node.Line)
	}
}

func (p Preset) MarshalYAML() (any, error) {
	return p.Value(), nil
}
