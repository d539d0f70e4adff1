package sfmodel

import (
	"fmt"

	j "github.com/goccy/go-json"

	"github.com/solidfire/sfmodel/i18n"
	eng "github.com/solidfire/sfmodel/internal/engine"
)

// Extract reconstructs an instance from a decoded JSON mapping. For each field:
//   - raw is nil: the attribute stays absent
//   - the wire name is present: ExtractFrom binds the value
//   - otherwise optional fields bind nil, array fields bind an empty sequence,
//     lenient extraction binds nil and strict extraction records a required issue
//
// All issues are collected; no instance is returned when any occurs.
func (m *Model) Extract(raw map[string]any, strict bool) (*Object, error) {
	values := make(map[string]any, len(m.fields))
	var iss Issues
	if raw != nil {
		for _, f := range m.fields {
			p := f.Property
			if rv, ok := raw[p.wire]; ok {
				v, err := p.ExtractFrom(rv)
				if err != nil {
					iss = AppendIssues(iss, rebase(eng.JoinPointer("", p.wire), issuesFromErr("/", err))...)
					continue
				}
				values[f.Name] = v
				continue
			}
			switch {
			case p.optional:
				values[f.Name] = nil
			case p.IsArray():
				values[f.Name] = []any{}
			case !strict:
				log().Debug().Str("model", m.name).Str("wire", p.wire).Msg("missing required property, binding null")
				values[f.Name] = nil
			default:
				iss = AppendIssues(iss, m.missingIssue(p.wire, raw))
			}
		}
	}
	if len(iss) > 0 {
		return nil, iss
	}
	return m.New(values)
}

func (m *Model) missingIssue(wire string, raw map[string]any) Issue {
	data := renderRaw(raw)
	return Issue{
		Path:    eng.JoinPointer("", wire),
		Code:    CodeRequired,
		Message: i18n.T(CodeRequired, map[string]string{"type": m.name, "name": wire, "data": data}),
		Params:  map[string]any{"type": m.name, "name": wire, "data": data},
		Cause:   ErrMissingProperty,
	}
}

// renderRaw renders the input for error messages, falling back to %v for
// values JSON cannot encode.
func renderRaw(raw map[string]any) string {
	b, err := j.Marshal(raw)
	if err != nil {
		return fmt.Sprintf("%v", raw)
	}
	return string(b)
}
