package annotation

import (
	"fmt"
	"go/ast"
	"go/token"
	"go/types"
	"reflect"
	"strconv"
	"strings"

	"github.com/smtdfc/bootstrap/binding"
)

// Site is an annotation comment together with the declaration it annotates.
// Target is zero when the comment is not attached to anything.
type Site struct {
	Key     string
	Value   string
	Target  binding.Target
	Name    string
	Decl    token.Pos
	Comment *ast.Comment
	Group   *ast.CommentGroup

	// Func is set for Method and Parameter sites on declared functions.
	Func *ast.FuncDecl
	// Field is set for Field and Parameter sites.
	Field *ast.Field
}

// Tag returns the struct tag of a Field site.
func (s Site) Tag() reflect.StructTag {
	if s.Field == nil || s.Field.Tag == nil {
		return ""
	}
	raw, err := strconv.Unquote(s.Field.Tag.Value)
	if err != nil {
		return ""
	}
	return reflect.StructTag(raw)
}

// Misplaced explains why q may not annotate s. It returns "" when q is
// allowed there.
func Misplaced(q binding.Qualifier, s Site) string {
	if binding.Permits(q, s.Target) {
		return ""
	}
	if s.Target == 0 {
		return fmt.Sprintf("%s is not attached to a declaration", binding.Annotation(q))
	}
	return fmt.Sprintf("%s cannot annotate %s %s; allowed targets: %s", binding.Annotation(q), s.Target, s.Name, q.Targets())
}

type owner struct {
	target binding.Target
	name   string
	decl   token.Pos
	fn     *ast.FuncDecl
	field  *ast.Field
}

type paramList struct {
	fields *ast.FieldList
	fn     *ast.FuncDecl
	name   string
}

// Attach returns every annotation comment in file with its attachment.
func Attach(file *ast.File) []Site {
	owners := map[*ast.CommentGroup]owner{}
	typeNames := map[ast.Expr]string{}
	var params []paramList

	own := func(cg *ast.CommentGroup, o owner) {
		if cg != nil {
			owners[cg] = o
		}
	}

	ast.Inspect(file, func(n ast.Node) bool {
		switch n := n.(type) {
		case *ast.FuncDecl:
			name := FuncName(n)
			own(n.Doc, owner{target: binding.Method, name: name, decl: n.Name.Pos(), fn: n})
			params = append(params, paramList{fields: n.Type.Params, fn: n, name: name})
		case *ast.FuncLit:
			params = append(params, paramList{fields: n.Type.Params, name: "func"})
		case *ast.GenDecl:
			attachGenDecl(n, own, typeNames)
		case *ast.StructType:
			prefix := typeNames[n]
			for _, f := range n.Fields.List {
				o := owner{target: binding.Field, name: join(prefix, fieldName(f)), decl: f.Pos(), field: f}
				own(f.Doc, o)
				own(f.Comment, o)
			}
		case *ast.InterfaceType:
			prefix := typeNames[n]
			for _, f := range n.Methods.List {
				if _, ok := f.Type.(*ast.FuncType); !ok {
					continue
				}
				o := owner{target: binding.Method, name: join(prefix, fieldName(f)), decl: f.Pos(), field: f}
				own(f.Doc, o)
				own(f.Comment, o)
			}
		}
		return true
	})

	var out []Site
	for _, cg := range file.Comments {
		o, ok := owners[cg]
		if !ok {
			o = paramOwner(cg, params)
		}
		for _, c := range cg.List {
			key, value, ok := Parse(c)
			if !ok {
				continue
			}
			s := Site{
				Key:     key,
				Value:   value,
				Target:  o.target,
				Name:    o.name,
				Decl:    o.decl,
				Comment: c,
				Group:   cg,
				Func:    o.fn,
				Field:   o.field,
			}
			if s.Decl == token.NoPos {
				s.Decl = c.Pos()
			}
			out = append(out, s)
		}
	}
	return out
}

func attachGenDecl(d *ast.GenDecl, own func(*ast.CommentGroup, owner), typeNames map[ast.Expr]string) {
	var target binding.Target
	switch d.Tok {
	case token.TYPE:
		target = binding.Type
	case token.VAR:
		target = binding.Variable
	case token.CONST:
		target = binding.Constant
	default:
		return
	}

	var first *owner
	for _, spec := range d.Specs {
		var o owner
		switch s := spec.(type) {
		case *ast.TypeSpec:
			switch s.Type.(type) {
			case *ast.StructType, *ast.InterfaceType:
				typeNames[s.Type] = s.Name.Name
			}
			o = owner{target: target, name: s.Name.Name, decl: s.Name.Pos()}
			own(s.Doc, o)
			own(s.Comment, o)
		case *ast.ValueSpec:
			o = owner{target: target, name: identNames(s.Names), decl: s.Names[0].Pos()}
			own(s.Doc, o)
			own(s.Comment, o)
		default:
			continue
		}
		if first == nil {
			first = &o
		}
	}
	if first != nil {
		own(d.Doc, *first)
	}
}

// paramOwner attaches a comment written inside a parameter list to the
// parameter that follows it.
func paramOwner(cg *ast.CommentGroup, lists []paramList) owner {
	var best *paramList
	for i := range lists {
		l := &lists[i]
		if l.fields == nil || !l.fields.Opening.IsValid() {
			continue
		}
		if cg.Pos() <= l.fields.Opening || cg.End() > l.fields.Closing {
			continue
		}
		if best == nil || l.fields.Opening > best.fields.Opening {
			best = l
		}
	}
	if best == nil {
		return owner{}
	}
	for _, f := range best.fields.List {
		if len(f.Names) == 0 {
			if f.Pos() >= cg.End() {
				return owner{target: binding.Parameter, name: join(best.name, fieldName(f)), decl: f.Pos(), fn: best.fn, field: f}
			}
			continue
		}
		// a, /* @q */ b string: the comment belongs to b only.
		for _, id := range f.Names {
			if id.Pos() >= cg.End() {
				return owner{target: binding.Parameter, name: join(best.name, id.Name), decl: id.Pos(), fn: best.fn, field: f}
			}
		}
	}
	return owner{}
}

// FuncName renders a function or method name as Name or Recv.Name.
func FuncName(fn *ast.FuncDecl) string {
	if fn.Recv == nil || len(fn.Recv.List) == 0 {
		return fn.Name.Name
	}
	return join(recvName(fn.Recv.List[0].Type), fn.Name.Name)
}

func recvName(expr ast.Expr) string {
	switch e := expr.(type) {
	case *ast.StarExpr:
		return recvName(e.X)
	case *ast.IndexExpr:
		return recvName(e.X)
	case *ast.IndexListExpr:
		return recvName(e.X)
	case *ast.Ident:
		return e.Name
	}
	return types.ExprString(expr)
}

func fieldName(f *ast.Field) string {
	if len(f.Names) == 0 {
		return types.ExprString(f.Type)
	}
	return identNames(f.Names)
}

func identNames(ids []*ast.Ident) string {
	names := make([]string, len(ids))
	for i, id := range ids {
		names[i] = id.Name
	}
	return strings.Join(names, ",")
}

func join(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + "." + name
}
