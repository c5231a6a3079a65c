package binding

import (
	"go.uber.org/dig"
	"go.uber.org/fx"
)

// Provide registers the result of constructor under q. The constructor may
// be a function or a method value.
func Provide(q Qualifier, constructor any) fx.Option {
	return fx.Provide(fx.Annotate(constructor, fx.ResultTags(Tag(q))))
}

// Supply binds v under q.
func Supply[T any](q Qualifier, v T) fx.Option {
	return Provide(q, func() T { return v })
}

// Annotate qualifies the parameters of constructor by position. A nil entry
// leaves the parameter at that position unqualified.
func Annotate(constructor any, quals ...Qualifier) any {
	tags := make([]string, len(quals))
	for i, q := range quals {
		if q != nil {
			tags[i] = Tag(q)
		}
	}
	return fx.Annotate(constructor, fx.ParamTags(tags...))
}

// ProvideWith provides constructor with its parameters qualified by position.
func ProvideWith(constructor any, quals ...Qualifier) fx.Option {
	return fx.Provide(Annotate(constructor, quals...))
}

// Bind registers constructor under q on a bare dig container.
func Bind(c *dig.Container, q Qualifier, constructor any) error {
	return c.Provide(constructor, dig.Name(q.Name()))
}
