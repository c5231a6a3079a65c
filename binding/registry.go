package binding

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

var (
	ErrEmptyName          = errors.New("qualifier name is empty")
	ErrDuplicateQualifier = errors.New("qualifier already registered")
)

var registry = struct {
	sync.RWMutex
	byName map[string]Qualifier
}{byName: map[string]Qualifier{}}

func init() {
	if err := Register(AppName{}); err != nil {
		panic(err)
	}
}

// Register makes q known to Lookup, Validate and the source tooling.
func Register(q Qualifier) error {
	name := q.Name()
	if name == "" {
		return ErrEmptyName
	}

	registry.Lock()
	defer registry.Unlock()
	if _, ok := registry.byName[name]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateQualifier, name)
	}
	registry.byName[name] = q
	return nil
}

// Lookup returns the qualifier registered under name.
func Lookup(name string) (Qualifier, bool) {
	registry.RLock()
	defer registry.RUnlock()
	q, ok := registry.byName[name]
	return q, ok
}

// Known returns every registered qualifier ordered by name.
func Known() []Qualifier {
	registry.RLock()
	out := make([]Qualifier, 0, len(registry.byName))
	for _, q := range registry.byName {
		out = append(out, q)
	}
	registry.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })
	return out
}
