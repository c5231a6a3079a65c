package binding

import (
	"errors"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type tenantID struct{}

func (tenantID) Name() string { return "tenantIDTest" }

func (tenantID) Targets() Target { return Field }

func TestAppNameMarker(t *testing.T) {
	q := AppName{}

	assert.Equal(t, "appName", q.Name())
	assert.Equal(t, Field|Parameter|Method, q.Targets())
	assert.Zero(t, reflect.TypeOf(q).NumField(), "marker must carry no data")
	assert.Zero(t, reflect.TypeOf(q).Size())
}

func TestPermits(t *testing.T) {
	q := AppName{}

	for _, target := range []Target{Field, Parameter, Method} {
		assert.True(t, Permits(q, target), target.String())
	}
	for _, target := range []Target{Type, Variable, Constant, 0, Field | Method} {
		assert.False(t, Permits(q, target), target.String())
	}
}

func TestTargetString(t *testing.T) {
	assert.Equal(t, "none", Target(0).String())
	assert.Equal(t, "field|parameter|method", AppName{}.Targets().String())
	assert.Equal(t, "type", Type.String())
}

func TestTargetHas(t *testing.T) {
	all := Field | Parameter | Method
	assert.True(t, all.Has(Parameter))
	assert.True(t, all.Has(Field|Method))
	assert.False(t, all.Has(Type))
	assert.False(t, all.Has(0))
}

func TestTagAndAnnotation(t *testing.T) {
	tag := Tag(AppName{})

	assert.Equal(t, `name:"appName"`, tag)
	assert.Equal(t, "appName", reflect.StructTag(tag).Get("name"))
	assert.Equal(t, "@appName", Annotation(AppName{}))
}

func TestRegistry(t *testing.T) {
	q, ok := Lookup("appName")
	require.True(t, ok)
	assert.Equal(t, AppName{}, q)

	_, ok = Lookup("missing")
	assert.False(t, ok)

	err := Register(AppName{})
	assert.True(t, errors.Is(err, ErrDuplicateQualifier), "got %v", err)

	if err := Register(tenantID{}); err != nil {
		require.ErrorIs(t, err, ErrDuplicateQualifier)
	}
	names := []string{}
	for _, q := range Known() {
		names = append(names, q.Name())
	}
	assert.Equal(t, []string{"appName", "tenantIDTest"}, names)
}

type unnamed struct{}

func (unnamed) Name() string    { return "" }
func (unnamed) Targets() Target { return Field }

func TestRegisterEmptyName(t *testing.T) {
	assert.ErrorIs(t, Register(unnamed{}), ErrEmptyName)
}
