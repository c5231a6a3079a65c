// Package annotation parses the comment annotations understood by dix:
//
//	// @factory: NewServer -> server
//	// @wire: server(config, ^logger, @appName)
//	// @final
//	// @appName
//
// and works out which declaration each one is attached to.
package annotation

import (
	"go/token"
)

const (
	KeyFactory = "factory"
	KeyWire    = "wire"
	KeyFinal   = "final"
	KeyDisable = "disable"
)

type Metadata struct {
	Key   string
	Value string
	File  string
	Line  int
	Path  string
	Pos   token.Pos
}

type Annotation interface {
	Type() string
}

type WireAnnotation struct {
	Path   string
	Target string
	Deps   []string
}

func (w *WireAnnotation) Type() string {
	return "Wire"
}

type FactoryAnnotation struct {
	Path      string
	Function  string
	Alias     string
	File      string
	Line      int
	Final     bool
	Disable   bool
	Qualifier string
}

func (f *FactoryAnnotation) Type() string {
	return "Factory"
}

// QualifierAnnotation records a qualifier written on a declaration.
type QualifierAnnotation struct {
	Path      string
	File      string
	Line      int
	Qualifier string
	Site      Site
}

func (q *QualifierAnnotation) Type() string {
	return "Qualifier"
}
