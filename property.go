package sfmodel

// Property describes one named field of a model: its wire name, semantic type,
// optionality and documentation. Property values are immutable; the modifier
// methods return copies.
type Property struct {
	wire     string
	typ      MemberType
	optional bool
	doc      string
}

// Prop declares a required, non-array property stored under wire.
func Prop(wire string, typ MemberType) Property {
	return Property{wire: wire, typ: typ}
}

// Optional returns a copy of p that may be absent from the wire form.
func (p Property) Optional() Property {
	p.optional = true
	return p
}

// Array returns a copy of p holding a sequence of its current type.
func (p Property) Array() Property {
	if p.typ != nil && p.typ.Kind() != KindArray {
		p.typ = ArrayOf(p.typ)
	}
	return p
}

// Doc returns a copy of p with documentation text.
func (p Property) Doc(s string) Property {
	p.doc = s
	return p
}

func (p Property) WireName() string { return p.wire }

// Type returns the declared type; for array properties this is the ArrayOf variant.
func (p Property) Type() MemberType { return p.typ }

// ElemType returns the element type of array properties and Type otherwise.
func (p Property) ElemType() MemberType { return elemType(p.typ) }

func (p Property) IsArray() bool    { return p.typ != nil && p.typ.Kind() == KindArray }
func (p Property) IsOptional() bool { return p.optional }

// Documentation returns the declared text or "Property of type <type>".
func (p Property) Documentation() string {
	if p.doc != "" {
		return p.doc
	}
	if p.typ == nil {
		return "Property of type any"
	}
	return "Property of type " + p.typ.String()
}

// ExtendJSON writes value into out under the wire name:
//   - null: required properties write an explicit null, optional ones write nothing
//   - arrays: every element is serialized
//   - optional: the key is omitted when the value serializes to null
func (p Property) ExtendJSON(out map[string]any, value any) {
	switch {
	case isNull(value):
		if !p.optional {
			out[p.wire] = nil
		}
	case p.IsArray():
		seq := arrayElements(value)
		vals := make([]any, len(seq))
		for i, el := range seq {
			vals[i] = Serialize(el)
		}
		out[p.wire] = vals
	case p.optional:
		if v := Serialize(value); !isNull(v) {
			out[p.wire] = v
		}
	default:
		out[p.wire] = Serialize(value)
	}
}

// ExtractFrom reads the property out of a decoded JSON value. Arrays yield an
// empty sequence for null; other types yield nil for null.
func (p Property) ExtractFrom(raw any) (any, error) {
	if p.typ == nil {
		return raw, nil
	}
	if p.IsArray() {
		return p.typ.extract(raw)
	}
	if isNull(raw) {
		return nil, nil
	}
	return p.typ.extract(raw)
}

// KnownDefault returns the zero value of scalar element types. ok is false for
// objects and Any.
func (p Property) KnownDefault() (v any, ok bool) {
	et := p.ElemType()
	if et == nil {
		return nil, false
	}
	switch et.Kind() {
	case KindInteger:
		return int64(0), true
	case KindFloat:
		return 0.0, true
	case KindString:
		return "", true
	case KindBoolean:
		return false, true
	}
	return nil, false
}

// arrayElements returns the elements written for an array property: sequences
// as-is, known conversions that yield a sequence (sets), and any other value as
// a single element.
func arrayElements(v any) []any {
	if seq, ok := asSequence(v); ok {
		return seq
	}
	if conv, ok := convertKnown(v); ok {
		if seq, ok := asSequence(conv); ok {
			return seq
		}
	}
	return []any{v}
}
