package sfmodel

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// DecodeYAML parses a single YAML document and extracts an instance.
func (m *Model) DecodeYAML(data []byte, strict bool) (*Object, error) {
	var node any
	if err := yaml.NewDecoder(bytes.NewReader(data)).Decode(&node); err != nil && !errors.Is(err, io.EOF) {
		return nil, issuesFromErr("/", err)
	}
	return m.extractValue(yamlNormalizeValue(node), strict)
}

// yamlNormalizeValue converts YAML-decoded values (which may contain map[any]any)
// into JSON-like values recursively.
func yamlNormalizeValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, vv := range t {
			out[k] = yamlNormalizeValue(vv)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, vv := range t {
			out[fmt.Sprint(k)] = yamlNormalizeValue(vv)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i := range t {
			out[i] = yamlNormalizeValue(t[i])
		}
		return out
	default:
		return v
	}
}

// Description documents a model for humans.
type Description struct {
	Name       string                `yaml:"name"`
	Properties []PropertyDescription `yaml:"properties"`
}

// PropertyDescription documents one field.
type PropertyDescription struct {
	Name          string `yaml:"name"`
	Wire          string `yaml:"wire"`
	Type          string `yaml:"type"`
	Array         bool   `yaml:"array,omitempty"`
	Optional      bool   `yaml:"optional,omitempty"`
	Default       any    `yaml:"default"`
	Documentation string `yaml:"documentation"`
}

// Describe lists every field in local-name order.
func (m *Model) Describe() Description {
	d := Description{Name: m.name, Properties: make([]PropertyDescription, 0, len(m.fields))}
	for _, f := range m.fields {
		p := f.Property
		pd := PropertyDescription{
			Name:          f.Name,
			Wire:          p.wire,
			Type:          p.ElemType().String(),
			Array:         p.IsArray(),
			Optional:      p.optional,
			Documentation: p.Documentation(),
		}
		if dv, ok := p.KnownDefault(); ok {
			pd.Default = dv
		}
		d.Properties = append(d.Properties, pd)
	}
	return d
}

// DescribeYAML renders Describe as YAML.
func (m *Model) DescribeYAML() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(m.Describe()); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
