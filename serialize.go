package sfmodel

import (
	"cmp"
	"reflect"
	"slices"
	"sync"
	"time"
)

// WireMarshaler is implemented by values that render their own wire form.
// *Object implements it.
type WireMarshaler interface {
	WireValue() any
}

// OptionalMarker is implemented by values that can report themselves as an
// optional placeholder; those serialize to null. Property implements it.
type OptionalMarker interface {
	IsOptional() bool
}

// Conversion turns a runtime value into a JSON-compatible form.
type Conversion func(v any) any

var (
	conversionsMu sync.RWMutex
	conversions   = map[reflect.Type]Conversion{}
)

func init() {
	RegisterConversion(orderedSet[string])
	RegisterConversion(orderedSet[int])
	RegisterConversion(orderedSet[int64])
	RegisterConversion(orderedSet[float64])
	RegisterConversion(func(t time.Time) any { return t.UTC().Format(time.RFC3339Nano) })
}

// RegisterConversion installs fn as the known conversion for values whose
// dynamic type is exactly T, replacing any previous rule for T.
func RegisterConversion[T any](fn func(T) any) {
	t := reflect.TypeFor[T]()
	conversionsMu.Lock()
	conversions[t] = func(v any) any { return fn(v.(T)) }
	conversionsMu.Unlock()
}

// orderedSet renders a Go set as a sorted sequence.
func orderedSet[K cmp.Ordered](s map[K]struct{}) any {
	keys := make([]K, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	out := make([]any, len(keys))
	for i, k := range keys {
		out[i] = k
	}
	return out
}

func convertKnown(v any) (any, bool) {
	conversionsMu.RLock()
	fn, ok := conversions[reflect.TypeOf(v)]
	conversionsMu.RUnlock()
	if !ok {
		return nil, false
	}
	return fn(v), true
}

// Serialize converts v into a JSON-compatible value. The first matching rule
// wins: WireMarshaler, known conversion, mapping (values serialized
// recursively, keys kept), OptionalMarker reporting true (null), pass-through.
func Serialize(v any) any {
	if v == nil {
		return nil
	}
	if wm, ok := v.(WireMarshaler); ok {
		return wm.WireValue()
	}
	if out, ok := convertKnown(v); ok {
		return out
	}
	if m, ok := asMapping(v); ok {
		if isNull(v) {
			return nil
		}
		out := make(map[string]any, len(m))
		for k, vv := range m {
			out[k] = Serialize(vv)
		}
		return out
	}
	if om, ok := v.(OptionalMarker); ok && om.IsOptional() {
		return nil
	}
	return v
}
