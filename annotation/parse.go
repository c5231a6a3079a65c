package annotation

import (
	"fmt"
	"go/ast"
	"regexp"
	"strings"
)

var (
	annRe  = regexp.MustCompile(`^@([A-Za-z0-9_]+)(?::\s*(.+))?$`)
	wireRe = regexp.MustCompile(`^([A-Za-z0-9_]+)\(([^)]*)\)$`)
)

// Text returns the body of c without comment markers.
func Text(c *ast.Comment) string {
	txt := strings.TrimSpace(c.Text)
	// remove leading // or /* and trailing */
	txt = strings.TrimPrefix(txt, "//")
	txt = strings.TrimPrefix(txt, "/*")
	txt = strings.TrimSuffix(txt, "*/")
	return strings.TrimSpace(txt)
}

// Parse reports the key and value of the annotation written in c, if any.
func Parse(c *ast.Comment) (key, value string, ok bool) {
	txt := Text(c)
	if !strings.HasPrefix(txt, "@") {
		return "", "", false
	}
	m := annRe.FindStringSubmatch(txt)
	if m == nil {
		return "", "", false
	}
	return m[1], strings.TrimSpace(m[2]), true
}

func ParseFactory(ann *Metadata) (*FactoryAnnotation, error) {
	value := strings.TrimSpace(ann.Value)
	splitted := strings.Split(value, "->")
	if len(splitted) != 2 {
		return nil, fmt.Errorf("%s:%d: malformed @factory %q, want Function -> alias", ann.File, ann.Line, value)
	}
	funcName := strings.TrimSpace(splitted[0])
	alias := strings.TrimSpace(splitted[1])
	if funcName == "" || alias == "" {
		return nil, fmt.Errorf("%s:%d: malformed @factory %q, want Function -> alias", ann.File, ann.Line, value)
	}
	return &FactoryAnnotation{
		Path:     ann.Path,
		Function: funcName,
		Alias:    alias,
		File:     ann.File,
		Line:     ann.Line,
	}, nil
}

func ParseWire(ann *Metadata) (*WireAnnotation, error) {
	m := wireRe.FindStringSubmatch(strings.TrimSpace(ann.Value))
	if m == nil {
		return nil, fmt.Errorf("%s:%d: malformed @wire %q, want alias(dep, ...)", ann.File, ann.Line, ann.Value)
	}

	funcName := m[1]
	var depsOut []string
	if strings.TrimSpace(m[2]) != "" {
		depsOut = strings.Split(m[2], ",")
		for i := range depsOut {
			depsOut[i] = strings.TrimSpace(depsOut[i])
		}
	}

	return &WireAnnotation{
		Path:   ann.Path,
		Target: funcName,
		Deps:   depsOut,
	}, nil
}
