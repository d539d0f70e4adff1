package sfmodel_test

import (
	"fmt"
	"sync/atomic"

	sf "github.com/solidfire/sfmodel"
)

var Person = sf.MustRegister(sf.Define("Person").
	Field("name", sf.Prop("name", sf.String())).
	Field("nickname", sf.Prop("nick", sf.String()).Optional()).
	Field("age", sf.Prop("age", sf.Integer()).Optional().Doc("Age in years")).
	MustBuild())

var Widget = sf.MustRegister(sf.Define("Widget").
	Field("id", sf.Prop("id", sf.Integer())).
	Field("tags", sf.Prop("tags", sf.String()).Array()).
	Field("owner", sf.Prop("owner", sf.ObjectOf(Person)).Optional()).
	MustBuild())

var Team = sf.MustRegister(sf.Define("Team").
	Field("lead", sf.Prop("lead", sf.ObjectOf(Person))).
	Field("members", sf.Prop("members", sf.ObjectOf(Person)).Array()).
	Field("score", sf.Prop("score", sf.Float())).
	Field("active", sf.Prop("active", sf.Boolean())).
	Field("labels", sf.Prop("labels", sf.Any()).Optional()).
	MustBuild())

var Node = sf.MustRegister(sf.Define("Node").
	Field("name", sf.Prop("name", sf.String())).
	Field("children", sf.Prop("children", sf.ObjectRef("Node")).Array()).
	MustBuild())

var modelSeq atomic.Int64

// uniqueName keeps registry names distinct across repeated test runs in one process.
func uniqueName(prefix string) string {
	return fmt.Sprintf("%s_%d", prefix, modelSeq.Add(1))
}

func person(name string, nickname any, age any) *sf.Object {
	return Person.MustNew(map[string]any{"name": name, "nickname": nickname, "age": age})
}
