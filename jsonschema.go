package sfmodel

import (
	"sort"

	js "github.com/solidfire/sfmodel/jsonschema"
)

// JSONSchema projects the model into a JSON Schema. Required lists the wire
// names strict extraction insists on (non-optional, non-array). Models reached
// through ObjectRef are emitted once under $defs.
func (m *Model) JSONSchema() (*js.Schema, error) {
	defs := map[string]*js.Schema{}
	root, err := m.jsonSchema(defs)
	if err != nil {
		return nil, err
	}
	if len(defs) > 0 {
		root.Defs = defs
	}
	return root, nil
}

func (m *Model) jsonSchema(defs map[string]*js.Schema) (*js.Schema, error) {
	s := &js.Schema{Title: m.name, Type: "object", Properties: make(map[string]*js.Schema, len(m.fields))}
	for _, f := range m.fields {
		ps, err := typeSchema(f.Property.typ, defs)
		if err != nil {
			return nil, err
		}
		ps.Description = f.Property.Documentation()
		s.Properties[f.Property.wire] = ps
		if !f.Property.optional && !f.Property.IsArray() {
			s.Required = append(s.Required, f.Property.wire)
		}
	}
	sort.Strings(s.Required)
	return s, nil
}

func typeSchema(t MemberType, defs map[string]*js.Schema) (*js.Schema, error) {
	switch v := t.(type) {
	case scalarType:
		switch v.kind {
		case KindInteger:
			return &js.Schema{Type: "integer"}, nil
		case KindFloat:
			return &js.Schema{Type: "number"}, nil
		case KindString:
			return &js.Schema{Type: "string"}, nil
		case KindBoolean:
			return &js.Schema{Type: "boolean"}, nil
		}
	case objectType:
		return v.model.jsonSchema(defs)
	case *refType:
		ref := &js.Schema{Ref: "#/$defs/" + v.name}
		if _, done := defs[v.name]; done {
			return ref, nil
		}
		m, err := v.Model()
		if err != nil {
			return nil, err
		}
		// placeholder first so self references terminate
		defs[v.name] = &js.Schema{}
		ds, err := m.jsonSchema(defs)
		if err != nil {
			return nil, err
		}
		defs[v.name] = ds
		return ref, nil
	case arrayType:
		items, err := typeSchema(v.elem, defs)
		if err != nil {
			return nil, err
		}
		return &js.Schema{Type: "array", Items: items}, nil
	}
	return &js.Schema{}, nil
}
