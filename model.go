package sfmodel

import (
	"sort"
	"sync"

	"github.com/solidfire/sfmodel/i18n"
)

// Field binds a local attribute name to its Property.
type Field struct {
	Name     string
	Property Property
}

// Model is the immutable schema of one model type: its name and the fields it
// declares or inherits, ordered by local name.
type Model struct {
	name   string
	fields []Field
	index  map[string]int
}

// Name returns the model type name.
func (m *Model) Name() string { return m.name }

// Fields returns a copy of the fields ordered by local name.
func (m *Model) Fields() []Field { return append([]Field(nil), m.fields...) }

// Keys returns the local attribute names in order.
func (m *Model) Keys() []string {
	out := make([]string, len(m.fields))
	for i, f := range m.fields {
		out[i] = f.Name
	}
	return out
}

// Property looks up the descriptor declared for a local attribute name.
func (m *Model) Property(name string) (Property, bool) {
	i, ok := m.index[name]
	if !ok {
		return Property{}, false
	}
	return m.fields[i].Property, true
}

// ModelBuilder accumulates a model declaration. Declaration errors are
// collected and reported together by Build.
type ModelBuilder struct {
	name      string
	inherited map[string]Property
	declared  map[string]Property
	iss       Issues
}

// Define starts the schema declaration of a model type.
func Define(name string) *ModelBuilder {
	return &ModelBuilder{name: name, inherited: map[string]Property{}, declared: map[string]Property{}}
}

// Extends inherits every field of parent. Fields declared on the builder
// shadow inherited ones with the same local name.
func (b *ModelBuilder) Extends(parent *Model) *ModelBuilder {
	if parent == nil {
		return b
	}
	for _, f := range parent.fields {
		b.inherited[f.Name] = f.Property
	}
	return b
}

// Field declares the local attribute name bound to p.
func (b *ModelBuilder) Field(name string, p Property) *ModelBuilder {
	if _, dup := b.declared[name]; dup {
		b.iss = AppendIssues(b.iss, buildIssue(CodeDuplicateProperty, b.name, name))
		return b
	}
	b.declared[name] = p
	return b
}

// Build validates the declaration and returns the model.
func (b *ModelBuilder) Build() (*Model, error) {
	iss := append(Issues(nil), b.iss...)
	if b.name == "" {
		iss = AppendIssues(iss, Issue{Path: "/", Code: CodeParseError, Message: "model name must not be empty", Cause: ErrInvalidModel})
	}
	merged := make(map[string]Property, len(b.inherited)+len(b.declared))
	for k, p := range b.inherited {
		merged[k] = p
	}
	for k, p := range b.declared {
		merged[k] = p
	}
	names := make([]string, 0, len(merged))
	for k := range merged {
		names = append(names, k)
	}
	sort.Strings(names)

	m := &Model{name: b.name, fields: make([]Field, 0, len(names)), index: make(map[string]int, len(names))}
	wires := make(map[string]string, len(names))
	for _, k := range names {
		p := merged[k]
		switch {
		case k == "" || p.wire == "":
			iss = AppendIssues(iss, Issue{Path: "/" + k, Code: CodeParseError, Message: "property and wire names must not be empty", Cause: ErrInvalidModel})
			continue
		case p.typ == nil:
			iss = AppendIssues(iss, Issue{Path: "/" + k, Code: CodeParseError, Message: "property type must not be nil", Cause: ErrInvalidModel})
			continue
		}
		if other, dup := wires[p.wire]; dup {
			iss = AppendIssues(iss, buildIssue(CodeDuplicateProperty, b.name, p.wire))
			log().Debug().Str("model", b.name).Str("wire", p.wire).Str("first", other).Str("second", k).Msg("wire name declared twice")
			continue
		}
		wires[p.wire] = k
		m.index[k] = len(m.fields)
		m.fields = append(m.fields, Field{Name: k, Property: p})
	}
	if len(iss) > 0 {
		return nil, iss
	}
	return m, nil
}

// MustBuild is like Build but panics on error.
func (b *ModelBuilder) MustBuild() *Model {
	m, err := b.Build()
	if err != nil {
		panic(err)
	}
	return m
}

func buildIssue(code, model, name string) Issue {
	return Issue{
		Path:    "/" + name,
		Code:    code,
		Message: i18n.T(code, map[string]string{"type": model, "name": name}),
		Params:  map[string]any{"type": model, "name": name},
		Cause:   ErrInvalidModel,
	}
}

var (
	registryMu sync.RWMutex
	registry   = map[string]*Model{}
)

// Register publishes m in the process-wide registry under its name. Each name
// can be registered once.
func Register(m *Model) error {
	if m == nil {
		return Issues{Issue{Path: "/", Code: CodeParseError, Message: "nil model", Cause: ErrInvalidModel}}
	}
	registryMu.Lock()
	defer registryMu.Unlock()
	if _, dup := registry[m.name]; dup {
		return Issues{Issue{
			Path:    "/",
			Code:    CodeDuplicateModel,
			Message: i18n.T(CodeDuplicateModel, map[string]string{"type": m.name}),
			Params:  map[string]any{"type": m.name},
			Cause:   ErrInvalidModel,
		}}
	}
	registry[m.name] = m
	log().Debug().Str("model", m.name).Int("properties", len(m.fields)).Msg("model registered")
	return nil
}

// MustRegister is like Register but panics on error. It returns m so it can
// initialize package-level variables.
func MustRegister(m *Model) *Model {
	if err := Register(m); err != nil {
		panic(err)
	}
	return m
}

// Lookup returns the registered model called name.
func Lookup(name string) (*Model, bool) {
	registryMu.RLock()
	m, ok := registry[name]
	registryMu.RUnlock()
	return m, ok
}
