// Package sfmodel provides declarative models for API client SDKs:
//
// - Property descriptors with wire names, semantic types, array-ness and optionality
// - Model types declared once and registered process-wide
// - Bidirectional conversion between instances and JSON-compatible mappings
// - Strict and lenient extraction with a stable error model (Issues)
//
// Design policy:
// - Declarations are explicit builders evaluated once, usually in package-level vars.
// - Member types are a closed set of variants (scalars, Any, objects, arrays).
// - Decoding internals live under internal/; token sources under source/.
//
// Typical usage:
//
//	var Person = sfmodel.MustRegister(sfmodel.Define("Person").
//	    Field("name", sfmodel.Prop("name", sfmodel.String())).
//	    MustBuild())
//
//	var Widget = sfmodel.MustRegister(sfmodel.Define("Widget").
//	    Field("id", sfmodel.Prop("id", sfmodel.Integer())).
//	    Field("tags", sfmodel.Prop("tags", sfmodel.String()).Array()).
//	    Field("owner", sfmodel.Prop("owner", sfmodel.ObjectOf(Person)).Optional()).
//	    MustBuild())
//
//	w, err := Widget.Extract(map[string]any{"id": 5, "tags": nil}, true)
//	out := w.ToJSON() // {"id": 5, "tags": []}
//
// Schemas can be exported with JSONSchema, OpenAPIComponents and DescribeYAML.
//
// Wire rules: a required property bound to null is written as null, an
// optional one is omitted, and extraction turns a null or missing array into an
// empty sequence.
package sfmodel
