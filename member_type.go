package sfmodel

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
	"sync/atomic"

	j "github.com/goccy/go-json"

	"github.com/solidfire/sfmodel/i18n"
)

// MemberType is the semantic type of a property. The set of variants is closed:
// scalars (Integer, Float, String, Boolean), Any, ObjectOf/ObjectRef and ArrayOf.
type MemberType interface {
	Kind() Kind
	// String returns the name used in documentation, e.g. "integer" or "Person[]".
	String() string
	extract(raw any) (any, error)
}

var (
	_ MemberType = scalarType{}
	_ MemberType = anyType{}
	_ MemberType = objectType{}
	_ MemberType = (*refType)(nil)
	_ MemberType = arrayType{}
)

// Integer values are normalized to int64 on extraction.
func Integer() MemberType { return scalarType{kind: KindInteger} }

// Float values are normalized to float64 on extraction.
func Float() MemberType { return scalarType{kind: KindFloat} }

func String() MemberType  { return scalarType{kind: KindString} }
func Boolean() MemberType { return scalarType{kind: KindBoolean} }

// Any passes raw values through unchanged.
func Any() MemberType { return anyType{} }

// ObjectOf declares a nested object of model m.
func ObjectOf(m *Model) MemberType { return objectType{model: m} }

// ObjectRef declares a nested object whose model is looked up in the registry
// by name on first use. It allows self-referencing models.
func ObjectRef(name string) MemberType { return &refType{name: name} }

// ArrayOf declares a sequence of elem.
func ArrayOf(elem MemberType) MemberType { return arrayType{elem: elem} }

type scalarType struct{ kind Kind }

func (s scalarType) Kind() Kind     { return s.kind }
func (s scalarType) String() string { return s.kind.String() }

func (s scalarType) extract(raw any) (any, error) {
	switch s.kind {
	case KindInteger:
		if i, ok := toInt64(raw); ok {
			return i, nil
		}
	case KindFloat:
		if f, ok := toFloat64(raw); ok {
			return f, nil
		}
	}
	return raw, nil
}

type anyType struct{}

func (anyType) Kind() Kind                   { return KindAny }
func (anyType) String() string               { return "any" }
func (anyType) extract(raw any) (any, error) { return raw, nil }

type objectType struct{ model *Model }

func (o objectType) Kind() Kind     { return KindObject }
func (o objectType) String() string { return o.model.Name() }

func (o objectType) extract(raw any) (any, error) {
	return extractNested(o.model, raw)
}

type refType struct {
	name     string
	resolved atomic.Pointer[Model]
}

func (r *refType) Kind() Kind     { return KindObject }
func (r *refType) String() string { return r.name }

// Model resolves the referenced model. Successful lookups are cached.
func (r *refType) Model() (*Model, error) {
	if m := r.resolved.Load(); m != nil {
		return m, nil
	}
	m, ok := Lookup(r.name)
	if !ok {
		return nil, Issues{Issue{
			Path:    "/",
			Code:    CodeUnknownModel,
			Message: i18n.T(CodeUnknownModel, map[string]string{"type": r.name}),
			Params:  map[string]any{"type": r.name},
			Cause:   ErrInvalidModel,
		}}
	}
	r.resolved.Store(m)
	log().Debug().Str("model", r.name).Msg("resolved model reference")
	return m, nil
}

func (r *refType) extract(raw any) (any, error) {
	m, err := r.Model()
	if err != nil {
		return nil, err
	}
	return extractNested(m, raw)
}

type arrayType struct{ elem MemberType }

func (a arrayType) Kind() Kind     { return KindArray }
func (a arrayType) String() string { return a.elem.String() + "[]" }

// extract maps every element through the element type; null becomes an empty
// sequence.
func (a arrayType) extract(raw any) (any, error) {
	out := []any{}
	if isNull(raw) {
		return out, nil
	}
	seq, ok := asSequence(raw)
	if !ok {
		return nil, invalidType("array", raw)
	}
	var iss Issues
	for i, el := range seq {
		if isNull(el) {
			out = append(out, nil)
			continue
		}
		v, err := a.elem.extract(el)
		if err != nil {
			iss = AppendIssues(iss, rebase("/"+strconv.Itoa(i), issuesFromErr("/", err))...)
			continue
		}
		out = append(out, v)
	}
	if len(iss) > 0 {
		return nil, iss
	}
	return out, nil
}

func extractNested(m *Model, raw any) (any, error) {
	src, ok := asMapping(raw)
	if !ok {
		return nil, invalidType("object", raw)
	}
	return m.Extract(src, false)
}

func invalidType(expected string, got any) Issues {
	return Issues{Issue{
		Path:    "/",
		Code:    CodeInvalidType,
		Message: i18n.T(CodeInvalidType, map[string]string{"expected": expected}),
		Params:  map[string]any{"expected": expected, "got": fmt.Sprintf("%T", got)},
		Cause:   ErrInvalidType,
	}}
}

// elemType unwraps one array level.
func elemType(t MemberType) MemberType {
	if a, ok := t.(arrayType); ok {
		return a.elem
	}
	return t
}

// isNull treats untyped nil and nil pointers, maps, slices and interfaces as null.
func isNull(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}

func asSequence(v any) ([]any, bool) {
	if s, ok := v.([]any); ok {
		return s, true
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}

func asMapping(v any) (map[string]any, bool) {
	if m, ok := v.(map[string]any); ok {
		return m, true
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
		return nil, false
	}
	out := make(map[string]any, rv.Len())
	it := rv.MapRange()
	for it.Next() {
		out[it.Key().String()] = it.Value().Interface()
	}
	return out, true
}

func toInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case j.Number:
		if i, err := n.Int64(); err == nil {
			return i, true
		}
		f, err := n.Float64()
		if err != nil {
			return 0, false
		}
		return floatToInt64(f)
	case float64:
		return floatToInt64(n)
	case float32:
		return floatToInt64(float64(n))
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int(), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		if u := rv.Uint(); u <= math.MaxInt64 {
			return int64(u), true
		}
	}
	return 0, false
}

func floatToInt64(f float64) (int64, bool) {
	if f != math.Trunc(f) || f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, false
	}
	return int64(f), true
}

func toFloat64(v any) (float64, bool) {
	switch n := v.(type) {
	case j.Number:
		f, err := n.Float64()
		return f, err == nil
	case float64:
		return n, true
	case float32:
		return float64(n), true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		i := rv.Int()
		f := float64(i)
		// float64(MaxInt64) rounds up to 2^63, which has no int64 form
		if f >= math.MaxInt64 || int64(f) != i {
			return 0, false
		}
		return f, true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		u := rv.Uint()
		f := float64(u)
		if f >= math.MaxUint64 || uint64(f) != u {
			return 0, false
		}
		return f, true
	}
	return 0, false
}
