package bootstrap

import (
	"errors"
	"fmt"
	"go/ast"
	"go/parser"
	"go/scanner"
	"go/token"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/mod/modfile"

	"github.com/smtdfc/bootstrap/annotation"
	"github.com/smtdfc/bootstrap/binding"
)

// Project is the result of scanning a module for annotations.
type Project struct {
	Root   string
	Module string
	Config *DIConfig
	Sites  []*annotation.QualifierAnnotation
}

type Scanner struct {
	log *zap.Logger
}

func NewScanner(log *zap.Logger) *Scanner {
	if log == nil {
		log = zap.NewNop()
	}
	return &Scanner{log: log}
}

func (s *Scanner) parseFileComments(path string) ([]annotation.Annotation, error) {
	fset := token.NewFileSet()
	f, err := parser.ParseFile(fset, path, nil, parser.ParseComments)
	if err != nil {
		return nil, err
	}

	dir := filepath.ToSlash(filepath.Dir(path))
	var (
		out       []annotation.Annotation
		factories = map[*ast.CommentGroup]*annotation.FactoryAnnotation{}
		modifiers []annotation.Site
		providers []annotation.Site
	)
	for _, site := range annotation.Attach(f) {
		pos := fset.Position(site.Comment.Pos())
		metadata := &annotation.Metadata{
			Key:   site.Key,
			Value: site.Value,
			File:  path,
			Line:  pos.Line,
			Path:  dir,
			Pos:   site.Comment.Pos(),
		}

		switch site.Key {
		case annotation.KeyFactory:
			factory, err := annotation.ParseFactory(metadata)
			if err != nil {
				return nil, err
			}
			factories[site.Group] = factory
			out = append(out, factory)
		case annotation.KeyWire:
			wire, err := annotation.ParseWire(metadata)
			if err != nil {
				return nil, err
			}
			out = append(out, wire)
		case annotation.KeyFinal, annotation.KeyDisable:
			modifiers = append(modifiers, site)
		default:
			q, ok := binding.Lookup(site.Key)
			if !ok {
				s.log.Debug("ignoring unknown annotation", zap.String("key", site.Key), zap.String("file", path), zap.Int("line", pos.Line))
				continue
			}
			if msg := annotation.Misplaced(q, site); msg != "" {
				return nil, fmt.Errorf("%s:%d: %s", path, pos.Line, msg)
			}
			out = append(out, &annotation.QualifierAnnotation{
				Path:      dir,
				File:      path,
				Line:      fset.Position(site.Decl).Line,
				Qualifier: q.Name(),
				Site:      site,
			})
			if site.Target == binding.Method {
				providers = append(providers, site)
			}
		}
	}

	for _, m := range modifiers {
		factory, ok := factories[m.Group]
		if !ok {
			return nil, fmt.Errorf("%s:%d: @%s must share a comment with @factory", path, fset.Position(m.Comment.Pos()).Line, m.Key)
		}
		if m.Key == annotation.KeyFinal {
			factory.Final = true
		} else {
			factory.Disable = true
		}
	}

	for _, site := range providers {
		if site.Func == nil {
			// interface method; nothing to call
			continue
		}
		if site.Func.Recv != nil {
			s.log.Warn("qualified method is not wired by the generator, bind it with binding.Provide",
				zap.String("method", site.Name), zap.String("qualifier", site.Key), zap.String("file", path))
			continue
		}
		if factory, ok := factories[site.Group]; ok {
			factory.Qualifier = site.Key
			continue
		}
		out = append(out, &annotation.FactoryAnnotation{
			Path:      dir,
			Function:  site.Func.Name.Name,
			Alias:     site.Key,
			File:      path,
			Line:      fset.Position(site.Decl).Line,
			Qualifier: site.Key,
		})
	}
	return out, nil
}

func skipDir(root, p string, d fs.DirEntry) bool {
	if p == root {
		return false
	}
	name := d.Name()
	return name == "vendor" || name == "testdata" || strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_")
}

func (s *Scanner) scanDir(root string) ([]annotation.Annotation, error) {
	var res []annotation.Annotation
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if skipDir(root, p, d) {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(p) != ".go" || strings.HasSuffix(p, "_test.go") {
			return nil
		}
		s.log.Debug("scanning file", zap.String("file", p))
		anns, err := s.parseFileComments(p)
		if err != nil {
			var syntax scanner.ErrorList
			if errors.As(err, &syntax) {
				// syntax errors: report and keep going
				s.log.Warn("parse error", zap.String("file", p), zap.Error(err))
				return nil
			}
			return err
		}
		res = append(res, anns...)
		return nil
	})
	return res, err
}

// Scan reads the module rooted at root and resolves its annotations.
func (s *Scanner) Scan(root string) (*Project, error) {
	data, err := os.ReadFile(filepath.Join(root, "go.mod"))
	if err != nil {
		return nil, fmt.Errorf("read go.mod: %w", err)
	}

	f, err := modfile.Parse("go.mod", data, nil)
	if err != nil {
		return nil, fmt.Errorf("parse go.mod: %w", err)
	}
	if f.Module == nil {
		return nil, errors.New("go.mod has no module directive")
	}
	modPath := f.Module.Mod.Path

	s.log.Info("scanning module", zap.String("module", modPath), zap.String("root", root))

	anns, err := s.scanDir(root)
	if err != nil {
		return nil, fmt.Errorf("scan error: %w", err)
	}

	project := &Project{
		Root:   root,
		Module: modPath,
		Config: NewDIConfig(),
	}
	diConfig := project.Config

	for _, a := range anns {
		switch a := a.(type) {
		case *annotation.FactoryAnnotation:
			if err := checkAlias(a.Alias); err != nil {
				return nil, fmt.Errorf("%s:%d: %w", a.File, a.Line, err)
			}
			s.log.Debug("detect factory", zap.String("function", a.Function), zap.String("alias", a.Alias), zap.String("path", a.Path))
			if a.Qualifier != "" {
				if prev, ok := diConfig.Qualified[a.Qualifier]; ok {
					return nil, fmt.Errorf("@%s bound twice: %s and %s", a.Qualifier, prev, a.Alias)
				}
			}
			if existing, ok := diConfig.Container[a.Alias]; ok {
				if existing.Module == a.Path {
					return nil, fmt.Errorf("duplicate alias %s in %s", a.Alias, existing.Module)
				}
				return nil, fmt.Errorf("alias %s used by %s", a.Alias, existing.Module)
			}
			if a.Qualifier != "" {
				diConfig.Qualified[a.Qualifier] = a.Alias
			}
			diConfig.Container[a.Alias] = &Factory{
				Function:  a.Function,
				Alias:     a.Alias,
				Deps:      make([]*Dependency, 0),
				Module:    a.Path,
				File:      a.File,
				Line:      a.Line,
				Final:     a.Final,
				Disable:   a.Disable,
				Qualifier: a.Qualifier,
			}
		case *annotation.QualifierAnnotation:
			project.Sites = append(project.Sites, a)
		}
	}

	for _, a := range anns {
		wire, ok := a.(*annotation.WireAnnotation)
		if !ok {
			continue
		}
		target, ok := diConfig.Container[wire.Target]
		if !ok {
			s.log.Warn("wire target has no factory", zap.String("target", wire.Target), zap.String("path", wire.Path))
			continue
		}
		s.log.Debug("detect dependency", zap.Strings("deps", wire.Deps), zap.String("target", wire.Target), zap.String("path", target.Module))
		deps := []*Dependency{}
		for _, d := range wire.Deps {
			dep, err := resolveDependency(diConfig, d)
			if err != nil {
				return nil, fmt.Errorf("can't resolve dependency %s of %s in %s: %w", d, wire.Target, target.Module, err)
			}
			deps = append(deps, dep)
		}
		target.Deps = deps
	}
	return project, nil
}

var (
	errUnknownAlias     = errors.New("no factory with this alias")
	errUnknownQualifier = errors.New("unknown qualifier")
	errUnboundQualifier = errors.New("no provider bound under qualifier")
)

func resolveDependency(cfg *DIConfig, raw string) (*Dependency, error) {
	name := strings.TrimSpace(raw)
	dep := &Dependency{}
	if strings.HasPrefix(name, "^") {
		dep.Standalone = true
		name = strings.TrimPrefix(name, "^")
	}
	if strings.HasPrefix(name, "@") {
		qualifier := strings.TrimPrefix(name, "@")
		if _, ok := binding.Lookup(qualifier); !ok {
			return nil, errUnknownQualifier
		}
		alias, ok := cfg.Qualified[qualifier]
		if !ok {
			return nil, errUnboundQualifier
		}
		dep.Qualifier = qualifier
		name = alias
	}
	if _, ok := cfg.Container[name]; !ok {
		return nil, errUnknownAlias
	}
	dep.Name = name
	return dep, nil
}

// ScanProjectAndGenerateDI scans root and returns the generated wiring file.
func (s *Scanner) ScanProjectAndGenerateDI(root string, opts GenOptions) (string, error) {
	project, err := s.Scan(root)
	if err != nil {
		return "", err
	}
	return GenerateCode(project.Root, project.Module, project.Config, opts)
}
