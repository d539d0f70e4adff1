package gojson

import (
	"errors"
	"io"
	"testing"

	"github.com/google/go-cmp/cmp"

	eng "github.com/solidfire/sfmodel/internal/engine"
)

func TestNextToken_KeysAndValues(t *testing.T) {
	src := NewBytes([]byte(`{"a": "s", "b": [1.5, true, null], "c": {}}`))
	var kinds []eng.Kind
	var strs []string
	for {
		tok, err := src.NextToken()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			t.Fatalf("token: %v", err)
		}
		kinds = append(kinds, tok.Kind)
		if tok.Kind == eng.KindKey || tok.Kind == eng.KindString {
			strs = append(strs, tok.String)
		}
		if tok.Kind == eng.KindNumber && tok.Number != "1.5" {
			t.Fatalf("number text = %q", tok.Number)
		}
	}
	want := []eng.Kind{
		eng.KindBeginObject,
		eng.KindKey, eng.KindString,
		eng.KindKey, eng.KindBeginArray, eng.KindNumber, eng.KindBool, eng.KindNull, eng.KindEndArray,
		eng.KindKey, eng.KindBeginObject, eng.KindEndObject,
		eng.KindEndObject,
	}
	if diff := cmp.Diff(want, kinds); diff != "" {
		t.Fatalf("kinds mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"a", "s", "b", "c"}, strs); diff != "" {
		t.Fatalf("strings mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeAny_ThroughGoJSON(t *testing.T) {
	v, err := eng.DecodeAny(NewBytes([]byte(`{"n": 10, "list": ["x"]}`)))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	m := v.(map[string]any)
	if n, ok := m["n"].(interface{ Int64() (int64, error) }); !ok {
		t.Fatalf("expected a json number, got %T", m["n"])
	} else if i, _ := n.Int64(); i != 10 {
		t.Fatalf("n = %d", i)
	}
}
