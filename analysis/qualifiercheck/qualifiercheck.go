// Package qualifiercheck defines an analyzer that reports qualifiers written
// where no container can honour them.
package qualifiercheck

import (
	"go/ast"
	"go/types"
	"reflect"
	"strconv"

	"golang.org/x/tools/go/analysis"

	"github.com/smtdfc/bootstrap/annotation"
	"github.com/smtdfc/bootstrap/binding"
)

const doc = `check placement of binding qualifiers

A qualifier such as @appName may annotate a struct field, a function
parameter or a function/method. The analyzer reports qualifier annotations
on other declarations, annotated fields whose struct tag does not carry the
qualifier, and qualifier tags on structs that embed neither fx.In/fx.Out nor
dig.In/dig.Out.`

var Analyzer = &analysis.Analyzer{
	Name: "qualifiercheck",
	Doc:  doc,
	Run:  run,
}

var markerPkgs = map[string]bool{
	"go.uber.org/dig": true,
	"go.uber.org/fx":  true,
}

func run(pass *analysis.Pass) (any, error) {
	for _, file := range pass.Files {
		checkAnnotations(pass, file)
		checkTags(pass, file)
	}
	return nil, nil
}

func checkAnnotations(pass *analysis.Pass, file *ast.File) {
	for _, site := range annotation.Attach(file) {
		q, ok := binding.Lookup(site.Key)
		if !ok {
			continue
		}
		if msg := annotation.Misplaced(q, site); msg != "" {
			pass.Reportf(site.Decl, "%s", msg)
			continue
		}
		if site.Target == binding.Field && site.Tag().Get("name") != q.Name() {
			pass.Reportf(site.Decl, "field %s is annotated %s but its tag lacks %s",
				site.Name, binding.Annotation(q), binding.Tag(q))
		}
	}
}

func checkTags(pass *analysis.Pass, file *ast.File) {
	ast.Inspect(file, func(n ast.Node) bool {
		st, ok := n.(*ast.StructType)
		if !ok || embedsMarker(pass, st) {
			return true
		}
		for _, f := range st.Fields.List {
			if f.Tag == nil {
				continue
			}
			raw, err := strconv.Unquote(f.Tag.Value)
			if err != nil {
				continue
			}
			q, ok := binding.Lookup(reflect.StructTag(raw).Get("name"))
			if !ok {
				continue
			}
			pass.Reportf(f.Tag.Pos(), "%s has no effect outside an fx.In or fx.Out struct", binding.Tag(q))
		}
		return true
	})
}

func embedsMarker(pass *analysis.Pass, st *ast.StructType) bool {
	for _, f := range st.Fields.List {
		if len(f.Names) != 0 {
			continue
		}
		t := pass.TypesInfo.TypeOf(f.Type)
		if t == nil {
			continue
		}
		named, ok := unalias(t).(*types.Named)
		if !ok {
			continue
		}
		obj := named.Obj()
		if obj.Pkg() == nil || !markerPkgs[obj.Pkg().Path()] {
			continue
		}
		if obj.Name() == "In" || obj.Name() == "Out" {
			return true
		}
	}
	return false
}
