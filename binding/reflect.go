package binding

import (
	"errors"
	"fmt"
	"reflect"

	"go.uber.org/dig"
)

// ErrNotParamStruct is returned by Validate for qualifier tags that no
// container would read.
var ErrNotParamStruct = errors.New("qualifier tag outside a dig.In or dig.Out struct")

var (
	inType  = reflect.TypeOf(dig.In{})
	outType = reflect.TypeOf(dig.Out{})
)

// Site is a struct field carrying a qualifier.
type Site struct {
	Field     reflect.StructField
	Index     []int
	Qualifier Qualifier
}

// Has reports whether f is annotated with q.
func Has(f reflect.StructField, q Qualifier) bool {
	name, ok := f.Tag.Lookup("name")
	return ok && name == q.Name()
}

// Sites returns the fields of struct type t annotated with q, descending
// into embedded structs. Pointers to structs are accepted.
func Sites(t reflect.Type, q Qualifier) []Site {
	t = indirect(t)
	if t.Kind() != reflect.Struct {
		return nil
	}
	var out []Site
	collectSites(t, q, nil, map[reflect.Type]bool{}, &out)
	return out
}

// collectSites skips embedded types already on the current path so
// self-embedding structs terminate.
func collectSites(t reflect.Type, q Qualifier, prefix []int, seen map[reflect.Type]bool, out *[]Site) {
	seen[t] = true
	defer delete(seen, t)
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		index := append(append([]int(nil), prefix...), i)
		if Has(f, q) {
			*out = append(*out, Site{Field: f, Index: index, Qualifier: q})
			continue
		}
		if f.Anonymous && f.Type != inType && f.Type != outType {
			if ft := indirect(f.Type); ft.Kind() == reflect.Struct && !seen[ft] {
				collectSites(ft, q, index, seen, out)
			}
		}
	}
}

// Validate checks that every registered qualifier tag on struct type t sits
// in a parameter or result struct.
func Validate(t reflect.Type) error {
	t = indirect(t)
	if t.Kind() != reflect.Struct {
		return nil
	}
	if embeds(t, inType) || embeds(t, outType) {
		return nil
	}
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		name, ok := f.Tag.Lookup("name")
		if !ok {
			continue
		}
		if _, known := Lookup(name); known {
			return fmt.Errorf("%s.%s: %w", t.String(), f.Name, ErrNotParamStruct)
		}
	}
	return nil
}

func embeds(t, marker reflect.Type) bool {
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if f.Anonymous && f.Type == marker {
			return true
		}
	}
	return false
}

func indirect(t reflect.Type) reflect.Type {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t
}
