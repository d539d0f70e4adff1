package sfmodel_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	sf "github.com/solidfire/sfmodel"
)

// customMap is a mapping that also renders its own wire form.
type customMap map[string]any

func (customMap) WireValue() any { return "custom" }

type celsius float64

type optionalFlag bool

func (o optionalFlag) IsOptional() bool { return bool(o) }

func TestSerialize_Precedence(t *testing.T) {
	sf.RegisterConversion(func(c celsius) any { return fmt.Sprintf("%.1fC", float64(c)) })

	cases := []struct {
		name string
		in   any
		want any
	}{
		{"nil", nil, nil},
		{"wire marshaler beats mapping", customMap{"a": 1}, "custom"},
		{"nested object", person("Bo", "b", int64(3)), map[string]any{"name": "Bo", "nick": "b", "age": int64(3)}},
		{"set conversion beats mapping", map[string]struct{}{"b": {}, "a": {}}, []any{"a", "b"}},
		{"int set", map[int64]struct{}{3: {}, 1: {}}, []any{int64(1), int64(3)}},
		{"registered conversion", celsius(21.5), "21.5C"},
		{"time", time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC), "2024-01-02T03:04:05Z"},
		{"mapping recursed", map[string]any{"p": person("Cy", nil, nil), "n": 1}, map[string]any{"p": map[string]any{"name": "Cy"}, "n": 1}},
		{"string keyed map", map[string]int{"x": 1}, map[string]any{"x": 1}},
		{"optional marker true", optionalFlag(true), nil},
		{"optional marker false passes through", optionalFlag(false), optionalFlag(false)},
		{"scalar pass-through", 3, 3},
		{"slice pass-through", []any{1, "a"}, []any{1, "a"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if diff := cmp.Diff(tc.want, sf.Serialize(tc.in)); diff != "" {
				t.Fatalf("Serialize mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSerialize_PropertyIsOptionalMarker(t *testing.T) {
	if got := sf.Serialize(sf.Prop("x", sf.String()).Optional()); got != nil {
		t.Fatalf("optional property should serialize to nil, got %v", got)
	}
	req := sf.Prop("x", sf.String())
	if got, ok := sf.Serialize(req).(sf.Property); !ok || got.WireName() != "x" {
		t.Fatalf("required property should pass through, got %#v", got)
	}
}
