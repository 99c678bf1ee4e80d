package env_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/funvibe/cparse/config"
	"github.com/funvibe/cparse/env"
)

func TestNewDefaultsToGNUOnClangOff(t *testing.T) {
	e := env.New()
	assert.True(t, e.Features().Has(config.FeatureGNU))
	assert.False(t, e.Features().Has(config.FeatureClang))
}

func TestIsTypenameUnknownByDefault(t *testing.T) {
	e := env.New()
	assert.False(t, e.IsTypename("Foo"))
}

func TestAddTypenameThenIsTypename(t *testing.T) {
	e := env.New()
	e.AddTypename("Foo")
	assert.True(t, e.IsTypename("Foo"))
}

func TestAddIdentDoesNotMakeTypename(t *testing.T) {
	e := env.New()
	e.AddIdent("x")
	assert.False(t, e.IsTypename("x"))
}

func TestScopeShadowing(t *testing.T) {
	e := env.New()
	e.AddTypename("Foo")

	e.EnterScope()
	assert.True(t, e.IsTypename("Foo"), "inner scope sees outer typedef")
	e.AddIdent("Foo") // shadow as an ordinary identifier
	assert.False(t, e.IsTypename("Foo"), "inner redeclaration shadows the outer typedef")
	e.ExitScope()

	assert.True(t, e.IsTypename("Foo"), "outer binding unaffected by the inner shadow")
}

func TestExitScopeOnOutermostPanics(t *testing.T) {
	e := env.New()
	assert.Panics(t, func() { e.ExitScope() })
}

func TestWithGNUAndWithClangChaining(t *testing.T) {
	e := env.New().WithGNU(false).WithClang(true)
	assert.False(t, e.Features().Has(config.FeatureGNU))
	assert.True(t, e.Features().Has(config.FeatureClang))

	_, gnuOk := e.Keywords().Lookup("__asm__")
	assert.False(t, gnuOk, "disabling GNU removes its keyword synonyms from the compiled set")

	_, clangOk := e.Keywords().Lookup("_Nullable")
	assert.True(t, clangOk)
}

func TestCloneIsIndependentOfOriginal(t *testing.T) {
	e := env.New()
	e.AddTypename("Foo")
	e.EnterScope()
	e.AddTypename("Bar")

	clone := e.Clone()
	require.True(t, clone.IsTypename("Foo"))
	require.True(t, clone.IsTypename("Bar"))

	clone.AddIdent("Baz")
	assert.False(t, clone.IsTypename("Baz"))
	assert.False(t, e.IsTypename("Baz"), "mutating the clone must not affect the original")

	e.AddTypename("Quux")
	assert.False(t, clone.IsTypename("Quux"), "mutating the original after cloning must not affect the clone")
}

func TestCloneSurvivesOriginalPoppingScopes(t *testing.T) {
	e := env.New()
	e.EnterScope()
	e.AddTypename("Inner")
	clone := e.Clone()

	e.ExitScope() // pop the scope on the original; the clone keeps its own copy
	assert.True(t, clone.IsTypename("Inner"))
}
