// Package binding declares the qualifiers used to tell apart injected values
// of the same type, and the helpers that carry them into fx and dig.
//
// A qualifier is a pure marker. It is attached to an injection site with the
// struct tag returned by Tag, which keeps it visible to reflection at runtime:
//
//	type ServerParams struct {
//		fx.In
//
//		Name string `name:"appName"`
//	}
//
// In source it may also be written as the comment annotation "@appName",
// which the qualifiercheck analyzer and the dix generator understand.
package binding

import (
	"strconv"
	"strings"
)

// Target is a set of injection-site kinds.
type Target uint8

const (
	Field Target = 1 << iota
	Parameter
	Method

	// Kinds a qualifier can be written on but never accepts.
	Type
	Variable
	Constant
)

var targetNames = []struct {
	t    Target
	name string
}{
	{Field, "field"},
	{Parameter, "parameter"},
	{Method, "method"},
	{Type, "type"},
	{Variable, "variable"},
	{Constant, "constant"},
}

// Has reports whether every kind in o is also in t.
func (t Target) Has(o Target) bool {
	return o != 0 && t&o == o
}

func (t Target) String() string {
	if t == 0 {
		return "none"
	}
	var parts []string
	for _, n := range targetNames {
		if t&n.t != 0 {
			parts = append(parts, n.name)
		}
	}
	return strings.Join(parts, "|")
}

// Qualifier distinguishes one binding from others of the same type.
type Qualifier interface {
	// Name is the dig value name the qualifier binds under.
	Name() string
	// Targets lists the injection sites the qualifier may annotate.
	Targets() Target
}

// AppName qualifies the application name string.
type AppName struct{}

func (AppName) Name() string { return "appName" }

func (AppName) Targets() Target { return Field | Parameter | Method }

// Permits reports whether q may annotate a site of kind t.
func Permits(q Qualifier, t Target) bool {
	if t == 0 || t&(t-1) != 0 {
		return false
	}
	return q.Targets().Has(t)
}

// Tag returns the struct tag carrying q.
func Tag(q Qualifier) string {
	return "name:" + strconv.Quote(q.Name())
}

// Annotation returns the source comment spelling of q.
func Annotation(q Qualifier) string {
	return "@" + q.Name()
}
