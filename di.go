package bootstrap

type Dependency struct {
	Name       string
	Standalone bool
	// Qualifier is set when the dependency was written as @name.
	Qualifier string
}

type Factory struct {
	Function  string
	Alias     string
	Deps      []*Dependency
	Module    string
	File      string
	Line      int
	Final     bool
	Disable   bool
	Qualifier string
}

type DIConfig struct {
	Container map[string]*Factory
	// Qualified maps a qualifier name to the alias of its provider.
	Qualified map[string]string
}

func NewDIConfig() *DIConfig {
	return &DIConfig{
		Container: make(map[string]*Factory),
		Qualified: make(map[string]string),
	}
}

// Mark is referenced by generated code so every provided value is used.
func Mark(values ...any) {}
