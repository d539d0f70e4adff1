package sfmodel_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/rs/zerolog"

	sf "github.com/solidfire/sfmodel"
)

func TestModel_FieldsOrderedByLocalName(t *testing.T) {
	m := sf.Define("Sorted").
		Field("zeta", sf.Prop("z", sf.String())).
		Field("alpha", sf.Prop("a", sf.Integer())).
		Field("mid", sf.Prop("m", sf.Boolean())).
		MustBuild()
	if diff := cmp.Diff([]string{"alpha", "mid", "zeta"}, m.Keys()); diff != "" {
		t.Fatalf("keys mismatch (-want +got):\n%s", diff)
	}
	p, ok := m.Property("alpha")
	if !ok || p.WireName() != "a" {
		t.Fatalf("Property(alpha) = %v, %v", p.WireName(), ok)
	}
	if _, ok := m.Property("a"); ok {
		t.Fatalf("lookup must use the local name, not the wire name")
	}
	if fs := m.Fields(); len(fs) != 3 || fs[0].Name != "alpha" {
		t.Fatalf("unexpected fields: %+v", fs)
	}
}

func TestModel_BuildErrors(t *testing.T) {
	cases := []struct {
		name string
		b    *sf.ModelBuilder
		code string
	}{
		{"duplicate local name", sf.Define("DupLocal").Field("a", sf.Prop("a", sf.String())).Field("a", sf.Prop("b", sf.String())), sf.CodeDuplicateProperty},
		{"duplicate wire name", sf.Define("DupWire").Field("a", sf.Prop("x", sf.String())).Field("b", sf.Prop("x", sf.String())), sf.CodeDuplicateProperty},
		{"empty wire name", sf.Define("EmptyWire").Field("a", sf.Prop("", sf.String())), sf.CodeParseError},
		{"nil type", sf.Define("NilType").Field("a", sf.Prop("a", nil)), sf.CodeParseError},
		{"empty model name", sf.Define("").Field("a", sf.Prop("a", sf.String())), sf.CodeParseError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m, err := tc.b.Build()
			if err == nil || m != nil {
				t.Fatalf("expected build error, got model %v", m)
			}
			iss, ok := sf.AsIssues(err)
			if !ok || !iss.HasCode(tc.code) {
				t.Fatalf("expected code %s, got %v", tc.code, err)
			}
			if !errors.Is(err, sf.ErrInvalidModel) {
				t.Fatalf("expected ErrInvalidModel, got %v", err)
			}
		})
	}
}

func TestModel_MustBuildPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic")
		}
	}()
	sf.Define("Broken").Field("a", sf.Prop("", sf.String())).MustBuild()
}

func TestModel_ExtendsInheritsAndShadows(t *testing.T) {
	base := sf.Define("Base").
		Field("id", sf.Prop("id", sf.Integer())).
		Field("name", sf.Prop("name", sf.String())).
		MustBuild()
	child := sf.Define("Child").
		Extends(base).
		Field("name", sf.Prop("displayName", sf.String()).Optional()).
		Field("extra", sf.Prop("extra", sf.Boolean())).
		MustBuild()
	if diff := cmp.Diff([]string{"extra", "id", "name"}, child.Keys()); diff != "" {
		t.Fatalf("keys mismatch (-want +got):\n%s", diff)
	}
	name, _ := child.Property("name")
	if name.WireName() != "displayName" || !name.IsOptional() {
		t.Fatalf("child declaration should shadow the parent: %q optional=%v", name.WireName(), name.IsOptional())
	}
	if p, _ := base.Property("name"); p.WireName() != "name" {
		t.Fatalf("parent model must not change")
	}
}

func TestRegistry_RegisterOnceAndLookup(t *testing.T) {
	name := uniqueName("Registered")
	m := sf.Define(name).Field("a", sf.Prop("a", sf.String())).MustBuild()
	if err := sf.Register(m); err != nil {
		t.Fatalf("register: %v", err)
	}
	err := sf.Register(m)
	iss, ok := sf.AsIssues(err)
	if !ok || !iss.HasCode(sf.CodeDuplicateModel) {
		t.Fatalf("expected duplicate_model, got %v", err)
	}
	got, ok := sf.Lookup(name)
	if !ok || got != m {
		t.Fatalf("Lookup(%s) = %v, %v", name, got, ok)
	}
	if _, ok := sf.Lookup(uniqueName("Missing")); ok {
		t.Fatalf("unexpected hit for unregistered model")
	}
	if err := sf.Register(nil); err == nil {
		t.Fatalf("expected error for nil model")
	}
}

func TestRegistry_FixturesRegistered(t *testing.T) {
	for _, name := range []string{"Person", "Widget", "Team", "Node"} {
		if _, ok := sf.Lookup(name); !ok {
			t.Fatalf("%s not registered", name)
		}
	}
}

func TestObjectRef_SelfReference(t *testing.T) {
	raw := map[string]any{
		"name": "root",
		"children": []any{
			map[string]any{"name": "leaf", "children": nil},
		},
	}
	n, err := Node.Extract(raw, true)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	want := map[string]any{
		"name": "root",
		"children": []any{
			map[string]any{"name": "leaf", "children": []any{}},
		},
	}
	if diff := cmp.Diff(want, n.ToJSON()); diff != "" {
		t.Fatalf("ToJSON mismatch (-want +got):\n%s", diff)
	}
}

func TestObjectRef_UnknownModel(t *testing.T) {
	m := sf.Define("Dangling").Field("x", sf.Prop("x", sf.ObjectRef(uniqueName("NoSuchModel")))).MustBuild()
	_, err := m.Extract(map[string]any{"x": map[string]any{}}, true)
	iss, ok := sf.AsIssues(err)
	if !ok || len(iss) != 1 || iss[0].Code != sf.CodeUnknownModel || iss[0].Path != "/x" {
		t.Fatalf("expected unknown_model at /x, got %v", err)
	}
}

func TestLogger_DebugEvents(t *testing.T) {
	var buf bytes.Buffer
	sf.SetLogger(zerolog.New(&buf))
	defer sf.SetLogger(zerolog.Nop())

	if _, err := Widget.Extract(map[string]any{}, false); err != nil {
		t.Fatalf("lenient extract: %v", err)
	}
	sf.MustRegister(sf.Define(uniqueName("Logged")).MustBuild())

	out := buf.String()
	for _, want := range []string{"missing required property, binding null", "model registered", `"component":"sfmodel"`} {
		if !strings.Contains(out, want) {
			t.Fatalf("log output missing %q:\n%s", want, out)
		}
	}
}
