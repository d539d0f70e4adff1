package sfmodel

import (
	"sort"

	"github.com/getkin/kin-openapi/openapi3"
)

const componentsPrefix = "#/components/schemas/"

// OpenAPIComponents projects m, and every model it reaches, into OpenAPI 3
// component schemas keyed by model name. Nested models are referenced with
// #/components/schemas/<name>.
func (m *Model) OpenAPIComponents() (openapi3.Schemas, error) {
	comps := openapi3.Schemas{}
	if err := m.addComponent(comps); err != nil {
		return nil, err
	}
	return comps, nil
}

func (m *Model) addComponent(comps openapi3.Schemas) error {
	if _, done := comps[m.name]; done {
		return nil
	}
	s := openapi3.NewObjectSchema()
	s.Title = m.name
	comps[m.name] = openapi3.NewSchemaRef("", s)
	for _, f := range m.fields {
		ref, err := openAPIRef(f.Property.typ, comps)
		if err != nil {
			delete(comps, m.name)
			return err
		}
		if ref.Value != nil {
			ref.Value.Description = f.Property.Documentation()
		}
		s.WithPropertyRef(f.Property.wire, ref)
		if !f.Property.optional && !f.Property.IsArray() {
			s.Required = append(s.Required, f.Property.wire)
		}
	}
	sort.Strings(s.Required)
	return nil
}

func openAPIRef(t MemberType, comps openapi3.Schemas) (*openapi3.SchemaRef, error) {
	var nested *Model
	switch v := t.(type) {
	case scalarType:
		switch v.kind {
		case KindInteger:
			return openapi3.NewSchemaRef("", openapi3.NewInt64Schema()), nil
		case KindFloat:
			return openapi3.NewSchemaRef("", openapi3.NewFloat64Schema()), nil
		case KindString:
			return openapi3.NewSchemaRef("", openapi3.NewStringSchema()), nil
		case KindBoolean:
			return openapi3.NewSchemaRef("", openapi3.NewBoolSchema()), nil
		}
	case objectType:
		nested = v.model
	case *refType:
		m, err := v.Model()
		if err != nil {
			return nil, err
		}
		nested = m
	case arrayType:
		items, err := openAPIRef(v.elem, comps)
		if err != nil {
			return nil, err
		}
		arr := openapi3.NewArraySchema()
		arr.Items = items
		return openapi3.NewSchemaRef("", arr), nil
	}
	if nested != nil {
		if err := nested.addComponent(comps); err != nil {
			return nil, err
		}
		return openapi3.NewSchemaRef(componentsPrefix+nested.name, nil), nil
	}
	return openapi3.NewSchemaRef("", openapi3.NewSchema()), nil
}
