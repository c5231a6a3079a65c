package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeProject(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	files := map[string]string{
		"go.mod": "module example.com/notes\n\ngo 1.22\n",
		"notes/notes.go": `package notes

// @appName
func Name() string { return "notes" }

// @factory: NewStore -> store
// @wire: store(@appName)
func NewStore(name string) *Store { return &Store{Name: name} }

type Store struct {
	// @appName
	Name string ` + "`name:\"appName\"`" + `
}
`,
	}
	for name, content := range files {
		p := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	}
	return root
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	color.NoColor = true

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestGenStdout(t *testing.T) {
	root := writeProject(t)

	out, err := execute(t, "gen", root, "--out", "-", "--package", "wiring")
	require.NoError(t, err)

	assert.Contains(t, out, "package wiring")
	assert.Contains(t, out, "var appName = id_1.Name()")
	assert.Contains(t, out, "var store = id_1.NewStore(appName)")
}

func TestGenWritesFile(t *testing.T) {
	root := writeProject(t)

	out, err := execute(t, "gen", root)
	require.NoError(t, err)

	path := filepath.Join(root, "dix_gen.go")
	assert.Contains(t, out, "wrote "+path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "package main")
}

func TestSites(t *testing.T) {
	root := writeProject(t)

	out, err := execute(t, "sites", root)
	require.NoError(t, err)

	assert.Contains(t, out, "Store.Name")
	assert.Contains(t, out, "field")
	assert.Contains(t, out, "method")
	assert.Contains(t, out, "2 qualifier site(s)")
	assert.NotContains(t, out, "\x1b[")
}

func TestSitesMissingModule(t *testing.T) {
	_, err := execute(t, "sites", t.TempDir())
	assert.ErrorContains(t, err, "read go.mod")
}
