package a

import (
	"go.uber.org/dig"
	"go.uber.org/fx"
)

type Params struct {
	fx.In

	// @appName
	Name string `name:"appName"`
	Port int
}

type DigParams struct {
	dig.In

	Name string `name:"appName"`
}

type Result struct {
	fx.Out

	Name string `name:"appName"`
}

type Plain struct {
	Name string `name:"appName"` // want `name:"appName" has no effect outside an fx.In or fx.Out struct`
	Role string `name:"role"`
}

type Missing struct {
	fx.In

	// @appName
	Name string // want `field Missing.Name is annotated @appName but its tag lacks name:"appName"`
}

// @appName
type Bad struct{} // want `@appName cannot annotate type Bad; allowed targets: field\|parameter\|method`

// @appName
var defaultName = "x" // want `@appName cannot annotate variable defaultName`

const (
	// @appName
	fallback = "y" // want `@appName cannot annotate constant fallback`
)

// NewServer takes the qualified name as its first parameter.
func NewServer( /* @appName */ name string, port int) string { return name }

// Name provides the application name.
// @appName
func Name() string { return defaultName + fallback }

type Settings struct{ name string }

// @appName
func (s Settings) AppName() string { return s.name }

type Namer interface {
	// @appName
	AppName() string
}

func run() int {
	/* @appName */ // want `@appName is not attached to a declaration`
	x := 1
	f := func(a int, /* @appName */ b string) string { return b }
	_ = f
	return x
}
