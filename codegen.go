package bootstrap

import (
	"bytes"
	"fmt"
	"go/ast"
	"go/format"
	"go/token"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

const (
	markImportPath = "github.com/smtdfc/bootstrap"
	markAlias      = "bootstrap"
	generatedBy    = "// Code generated by dix. DO NOT EDIT.\n\n"
	importPrefix   = "id_"
)

// checkAlias rejects aliases that are not identifiers or that would shadow
// an import of the generated file.
func checkAlias(alias string) error {
	switch {
	case !token.IsIdentifier(alias):
		return fmt.Errorf("alias %q is not a Go identifier", alias)
	case alias == markAlias, strings.HasPrefix(alias, importPrefix):
		return fmt.Errorf("alias %q is reserved by the generated file", alias)
	}
	return nil
}

// GenOptions controls the generated file.
type GenOptions struct {
	// Package is the package clause of the generated file.
	Package string
	// ImportPath is the import path of the generated package. Factories
	// living in it are called without a qualifier.
	ImportPath string
}

func (o GenOptions) pkg() string {
	if o.Package == "" {
		return "main"
	}
	return o.Package
}

// BuildOrder performs a topological sort using Kahn’s algorithm
// and returns the items in dependency order.
func BuildOrder(container map[string]*Factory) ([]string, error) {
	aliases := make([]string, 0, len(container))
	for alias := range container {
		aliases = append(aliases, alias)
	}
	sort.Strings(aliases)

	indegree := map[string]int{}
	graph := map[string][]string{}

	// Build indegree + adjacency
	for _, alias := range aliases {
		f := container[alias]
		if _, ok := indegree[alias]; !ok {
			indegree[alias] = 0
		}
		for _, dep := range f.Deps {
			d, ok := container[dep.Name]
			if !ok {
				return nil, fmt.Errorf("unknown dependency %s of %s", dep.Name, alias)
			}
			if d.Final {
				return nil, fmt.Errorf("final item %s cannot be a dependency of %s", dep.Name, alias)
			}

			if d.Disable {
				return nil, fmt.Errorf("disable item %s cannot be a dependency of %s", dep.Name, alias)
			}

			graph[dep.Name] = append(graph[dep.Name], alias)
			indegree[alias]++
		}
	}

	// Queue nodes with indegree 0
	queue := []string{}
	for _, n := range aliases {
		if indegree[n] == 0 {
			queue = append(queue, n)
		}
	}

	order := []string{}
	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]
		order = append(order, node)

		for _, next := range graph[node] {
			indegree[next]--
			if indegree[next] == 0 {
				queue = append(queue, next)
			}
		}
	}

	if len(order) != len(container) {
		return nil, fmt.Errorf("circular dependency detected")
	}

	normal := []string{}
	finals := []string{}
	for _, alias := range order {
		if container[alias].Final {
			finals = append(finals, alias)
		} else {
			normal = append(normal, alias)
		}
	}

	return append(normal, finals...), nil
}

type GenContext struct {
	ImportID  map[string]string // module path -> alias
	Container map[string]string // alias -> var id
	Counter   int
	Local     string // import path of the generated package
}

// GenUID generates a unique variable name.
func (c *GenContext) GenUID() string {
	c.Counter++
	return importPrefix + strconv.Itoa(c.Counter)
}

// ResolveImport ensures the import path has an alias and
// returns the alias for the given module path. Factories of the
// generated package itself resolve to "".
func (c *GenContext) ResolveImport(module string) string {
	if c.Local != "" && module == c.Local {
		return ""
	}
	if _, ok := c.ImportID[module]; !ok {
		c.ImportID[module] = c.GenUID()
	}
	return c.ImportID[module]
}

func callExpr(ctx *GenContext, importPath, function string, args []ast.Expr) *ast.CallExpr {
	var fun ast.Expr = ast.NewIdent(function)
	if alias := ctx.ResolveImport(importPath); alias != "" {
		fun = &ast.SelectorExpr{
			X:   ast.NewIdent(alias),
			Sel: ast.NewIdent(function),
		}
	}
	return &ast.CallExpr{Fun: fun, Args: args}
}

// generateDepExpr generates an AST expression for a dependency.
func generateDepExpr(ctx *GenContext, dep *Dependency, config *DIConfig, imports map[string]string) ast.Expr {
	if dep.Standalone {
		// create new instance
		factory := config.Container[dep.Name]
		args := []ast.Expr{}
		for _, sub := range factory.Deps {
			args = append(args, generateDepExpr(ctx, sub, config, imports))
		}
		return callExpr(ctx, imports[dep.Name], factory.Function, args)
	}
	//reuse container
	return ast.NewIdent(ctx.Container[dep.Name])
}

// sanitizeModulePath maps an absolute filesystem path to a proper import path
// relative to the project root, prefixed with moduleName.
func sanitizeModulePath(absPath, root, moduleName string) string {
	absPath = filepath.ToSlash(absPath)
	root = filepath.ToSlash(root)

	rel, err := filepath.Rel(root, absPath)
	if err != nil {
		// fallback: return moduleName only
		return moduleName
	}
	rel = filepath.ToSlash(rel)
	rel = strings.TrimPrefix(rel, "./")
	if rel == "." {
		return moduleName
	}
	return moduleName + "/" + rel
}

// GenerateCode generates Go source code that wires all items
// in the dependency injection container.
func GenerateCode(root string, moduleName string, config *DIConfig, opts GenOptions) (string, error) {
	ctx := &GenContext{
		ImportID:  make(map[string]string),
		Container: make(map[string]string),
		Counter:   0,
		Local:     opts.ImportPath,
	}

	order, err := BuildOrder(config.Container)
	if err != nil {
		return "", err
	}

	imports := make(map[string]string, len(config.Container))
	for alias, f := range config.Container {
		if err := checkAlias(alias); err != nil {
			return "", err
		}
		imports[alias] = sanitizeModulePath(f.Module, root, moduleName)
	}

	file := &ast.File{
		Name:  ast.NewIdent(opts.pkg()),
		Decls: []ast.Decl{},
	}

	stmts := []ast.Stmt{}
	var depIdents []ast.Expr

	for _, item := range order {
		factory := config.Container[item]
		if factory.Disable {
			continue
		}
		id := factory.Alias
		ctx.Container[item] = id

		args := []ast.Expr{}
		for _, dep := range factory.Deps {
			args = append(args, generateDepExpr(ctx, dep, config, imports))
		}

		stmt := &ast.DeclStmt{
			Decl: &ast.GenDecl{
				Tok: token.VAR,
				Specs: []ast.Spec{
					&ast.ValueSpec{
						Names:  []*ast.Ident{ast.NewIdent(id)},
						Values: []ast.Expr{callExpr(ctx, imports[item], factory.Function, args)},
					},
				},
			},
		}

		stmts = append(stmts, stmt)
		depIdents = append(depIdents, ast.NewIdent(id))
	}

	markPkg := markAlias
	if opts.ImportPath == markImportPath {
		markPkg = ""
	}
	if len(depIdents) > 0 {
		var fun ast.Expr = ast.NewIdent("Mark")
		if markPkg != "" {
			fun = &ast.SelectorExpr{X: ast.NewIdent(markPkg), Sel: ast.NewIdent("Mark")}
		}
		stmts = append(stmts, &ast.ExprStmt{X: &ast.CallExpr{Fun: fun, Args: depIdents}})
	}

	rootFn := &ast.FuncDecl{
		Name: ast.NewIdent("Root"),
		Type: &ast.FuncType{
			Params:  &ast.FieldList{},
			Results: nil,
		},
		Body: &ast.BlockStmt{
			List: stmts,
		},
	}
	file.Decls = append(file.Decls, rootFn)

	// imports
	specs := []ast.Spec{}
	if len(depIdents) > 0 && markPkg != "" {
		specs = append(specs, importSpec(markAlias, markImportPath))
	}
	paths := make([]string, 0, len(ctx.ImportID))
	for mod := range ctx.ImportID {
		paths = append(paths, mod)
	}
	sort.Strings(paths)
	for _, mod := range paths {
		specs = append(specs, importSpec(ctx.ImportID[mod], mod))
	}
	if len(specs) > 0 {
		importDecl := &ast.GenDecl{
			Tok:   token.IMPORT,
			Specs: specs,
		}
		file.Decls = append([]ast.Decl{importDecl}, file.Decls...)
	}

	fset := token.NewFileSet()
	src, err := ASTToString(fset, file)
	if err != nil {
		return "", err
	}
	return generatedBy + src, nil
}

func importSpec(name, path string) *ast.ImportSpec {
	return &ast.ImportSpec{
		Name: ast.NewIdent(name),
		Path: &ast.BasicLit{
			Kind:  token.STRING,
			Value: strconv.Quote(path),
		},
	}
}

// ASTToString converts an AST tree to its string representation.
func ASTToString(fset *token.FileSet, file *ast.File) (string, error) {
	var buf bytes.Buffer
	err := format.Node(&buf, fset, file)
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}

// WriteGoFile writes generated source to outPath.
func WriteGoFile(src, outPath string) error {
	return os.WriteFile(outPath, []byte(src), 0o644)
}
