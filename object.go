package sfmodel

import (
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"

	j "github.com/goccy/go-json"

	"github.com/solidfire/sfmodel/i18n"
)

// Object is one instance of a Model. Each attribute is either absent, bound to
// nil, or bound to a value.
type Object struct {
	model  *Model
	values map[string]any
}

var _ WireMarshaler = (*Object)(nil)

// New constructs an instance from local attribute names. Unknown names fail
// the whole construction; attributes not passed remain absent.
func (m *Model) New(values map[string]any) (*Object, error) {
	var unknown []string
	for k := range values {
		if _, ok := m.index[k]; !ok {
			unknown = append(unknown, k)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		iss := make(Issues, 0, len(unknown))
		for _, k := range unknown {
			iss = append(iss, m.unknownIssue(k))
		}
		return nil, iss
	}
	o := &Object{model: m, values: make(map[string]any, len(values))}
	for k, v := range values {
		o.values[k] = v
	}
	return o, nil
}

// MustNew is like New but panics on error.
func (m *Model) MustNew(values map[string]any) *Object {
	o, err := m.New(values)
	if err != nil {
		panic(err)
	}
	return o
}

func (m *Model) unknownIssue(key string) Issue {
	return Issue{
		Path:    "/" + key,
		Code:    CodeUnknownProperty,
		Message: i18n.T(CodeUnknownProperty, map[string]string{"key": key, "type": m.name}),
		Params:  map[string]any{"type": m.name, "key": key},
		Cause:   ErrUnknownProperty,
	}
}

// Model returns the instance's model.
func (o *Object) Model() *Model { return o.model }

// Set binds an attribute.
func (o *Object) Set(name string, v any) error {
	if _, ok := o.model.index[name]; !ok {
		return Issues{o.model.unknownIssue(name)}
	}
	o.values[name] = v
	return nil
}

// Get returns the bound value and whether the attribute is present.
func (o *Object) Get(name string) (any, bool) {
	v, ok := o.values[name]
	return v, ok
}

// Has reports whether the attribute has been bound, including to nil.
func (o *Object) Has(name string) bool {
	_, ok := o.values[name]
	return ok
}

// Unset returns the attribute to the absent state.
func (o *Object) Unset(name string) { delete(o.values, name) }

// ToJSON renders the instance as a JSON-compatible mapping keyed by wire names.
func (o *Object) ToJSON() map[string]any {
	out := make(map[string]any, len(o.model.fields))
	for _, f := range o.model.fields {
		f.Property.ExtendJSON(out, o.values[f.Name])
	}
	return out
}

// WireValue implements WireMarshaler.
func (o *Object) WireValue() any {
	if o == nil {
		return nil
	}
	return o.ToJSON()
}

// MarshalJSON encodes ToJSON with go-json; map keys are sorted.
func (o *Object) MarshalJSON() ([]byte, error) {
	if o == nil {
		return []byte("null"), nil
	}
	return j.Marshal(o.ToJSON())
}

// MarshalYAML renders ToJSON for gopkg.in/yaml.v3.
func (o *Object) MarshalYAML() (any, error) {
	if o == nil {
		return nil, nil
	}
	return o.ToJSON(), nil
}

// Equal reports whether both instances share a model and hold the same
// attributes. Values are compared the way they travel on the wire, so int(5)
// equals int64(5) for an Integer field and a []string equals the []any
// extraction produces.
func (o *Object) Equal(other *Object) bool {
	if o == nil || other == nil {
		return o == other
	}
	if o.model != other.model {
		return false
	}
	for _, f := range o.model.fields {
		v, ok := o.values[f.Name]
		ov, ook := other.values[f.Name]
		if ok != ook {
			return false
		}
		if ok && !valuesEqual(f.Property.typ, v, ov) {
			return false
		}
	}
	return true
}

func valuesEqual(t MemberType, a, b any) bool {
	if isNull(a) || isNull(b) {
		return isNull(a) && isNull(b)
	}
	switch v := t.(type) {
	case arrayType:
		as, bs := arrayElements(a), arrayElements(b)
		if len(as) != len(bs) {
			return false
		}
		for i := range as {
			if !valuesEqual(v.elem, as[i], bs[i]) {
				return false
			}
		}
		return true
	case scalarType:
		switch v.kind {
		case KindInteger:
			ai, aok := toInt64(a)
			bi, bok := toInt64(b)
			if aok && bok {
				return ai == bi
			}
		case KindFloat:
			af, aok := toFloat64(a)
			bf, bok := toFloat64(b)
			if aok && bok {
				return af == bf
			}
		}
		return reflect.DeepEqual(a, b)
	case objectType, *refType:
		ao, aok := a.(*Object)
		bo, bok := b.(*Object)
		if aok && bok {
			return ao.Equal(bo)
		}
	}
	return reflect.DeepEqual(Serialize(a), Serialize(b))
}

// String renders TypeName(attr=val, ...) with attributes sorted by local name.
// Absent attributes render as <unset>.
func (o *Object) String() string {
	if o == nil {
		return "null"
	}
	b := &strings.Builder{}
	b.WriteString(o.model.name)
	b.WriteByte('(')
	for i, f := range o.model.fields {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(f.Name)
		b.WriteByte('=')
		v, ok := o.values[f.Name]
		switch {
		case !ok:
			b.WriteString("<unset>")
		case f.Property.IsArray() && !isNull(v):
			seq := arrayElements(v)
			parts := make([]string, len(seq))
			for i, el := range seq {
				parts[i] = repr(el)
			}
			b.WriteString("[" + strings.Join(parts, ", ") + "]")
		default:
			b.WriteString(repr(v))
		}
	}
	b.WriteByte(')')
	return b.String()
}

func repr(v any) string {
	if isNull(v) {
		return "null"
	}
	switch t := v.(type) {
	case string:
		return strconv.Quote(t)
	case fmt.Stringer:
		return t.String()
	}
	return fmt.Sprintf("%v", v)
}
