package bootstrap

import (
	"go/parser"
	"go/token"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dep(name string) *Dependency { return &Dependency{Name: name} }

func TestBuildOrder(t *testing.T) {
	container := map[string]*Factory{
		"a": {Alias: "a"},
		"b": {Alias: "b", Deps: []*Dependency{dep("a")}},
		"z": {Alias: "z", Final: true, Deps: []*Dependency{dep("a")}},
		"c": {Alias: "c", Deps: []*Dependency{dep("b")}},
	}

	order, err := BuildOrder(container)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c", "z"}, order)
}

func TestBuildOrderErrors(t *testing.T) {
	tests := []struct {
		name      string
		container map[string]*Factory
		want      string
	}{
		{
			name: "cycle",
			container: map[string]*Factory{
				"a": {Deps: []*Dependency{dep("b")}},
				"b": {Deps: []*Dependency{dep("a")}},
			},
			want: "circular dependency detected",
		},
		{
			name: "final dependency",
			container: map[string]*Factory{
				"a": {Final: true},
				"b": {Deps: []*Dependency{dep("a")}},
			},
			want: "final item a cannot be a dependency of b",
		},
		{
			name: "disabled dependency",
			container: map[string]*Factory{
				"a": {Disable: true},
				"b": {Deps: []*Dependency{dep("a")}},
			},
			want: "disable item a cannot be a dependency of b",
		},
		{
			name: "unknown dependency",
			container: map[string]*Factory{
				"b": {Deps: []*Dependency{dep("a")}},
			},
			want: "unknown dependency a of b",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := BuildOrder(tt.container)
			assert.EqualError(t, err, tt.want)
		})
	}
}

func shopConfig() *DIConfig {
	cfg := NewDIConfig()
	cfg.Container["cfg"] = &Factory{Alias: "cfg", Function: "NewConfig", Module: "/proj/config"}
	cfg.Container["clock"] = &Factory{Alias: "clock", Function: "NewClock", Module: "/proj/server"}
	cfg.Container["server"] = &Factory{
		Alias:    "server",
		Function: "NewServer",
		Module:   "/proj/server",
		Deps:     []*Dependency{dep("cfg"), {Name: "clock", Standalone: true}},
	}
	cfg.Container["legacy"] = &Factory{Alias: "legacy", Function: "NewLegacy", Module: "/proj/legacy", Disable: true}
	return cfg
}

func TestGenerateCode(t *testing.T) {
	src, err := GenerateCode("/proj", "example.com/shop", shopConfig(), GenOptions{})
	require.NoError(t, err)

	_, err = parser.ParseFile(token.NewFileSet(), "dix_gen.go", src, 0)
	require.NoError(t, err, src)

	assert.Contains(t, src, "// Code generated by dix. DO NOT EDIT.")
	assert.Contains(t, src, "package main")
	assert.Contains(t, src, `bootstrap "github.com/smtdfc/bootstrap"`)
	assert.Contains(t, src, `id_1 "example.com/shop/config"`)
	assert.Contains(t, src, `id_2 "example.com/shop/server"`)
	assert.Contains(t, src, "var cfg = id_1.NewConfig()")
	assert.Contains(t, src, "var clock = id_2.NewClock()")
	assert.Contains(t, src, "var server = id_2.NewServer(cfg, id_2.NewClock())")
	assert.Contains(t, src, "bootstrap.Mark(cfg, clock, server)")
	assert.NotContains(t, src, "NewLegacy")
}

func TestGenerateCodeLocalPackage(t *testing.T) {
	src, err := GenerateCode("/proj", "example.com/shop", shopConfig(), GenOptions{
		Package:    "server",
		ImportPath: "example.com/shop/server",
	})
	require.NoError(t, err)

	assert.Contains(t, src, "package server")
	assert.Contains(t, src, "var server = NewServer(cfg, NewClock())")
	assert.NotContains(t, src, `"example.com/shop/server"`)
}

func TestGenerateCodeReservedAlias(t *testing.T) {
	for _, alias := range []string{"bootstrap", "id_1"} {
		config := NewDIConfig()
		config.Container[alias] = &Factory{Function: "New", Alias: alias, Module: "/proj/app"}

		_, err := GenerateCode("/proj", "example.com/shop", config, GenOptions{})
		assert.ErrorContains(t, err, "is reserved by the generated file", alias)
	}
}

func TestGenerateCodeEmpty(t *testing.T) {
	src, err := GenerateCode("/proj", "example.com/shop", NewDIConfig(), GenOptions{Package: "wiring"})
	require.NoError(t, err)

	assert.Contains(t, src, "func Root()")
	assert.NotContains(t, src, "import")
}

func TestSanitizeModulePath(t *testing.T) {
	assert.Equal(t, "m/a/b", sanitizeModulePath("/proj/a/b", "/proj", "m"))
	assert.Equal(t, "m", sanitizeModulePath("/proj", "/proj", "m"))
	assert.Equal(t, "m/pkg", sanitizeModulePath("pkg", ".", "m"))
}
