package parser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/funvibe/cparse/ast"
	"github.com/funvibe/cparse/env"
	"github.com/funvibe/cparse/parser"
)

// K&R vs prototype (Testable Property 5).
func TestKRFunctionDefinitionHasDeclarations(t *testing.T) {
	tu, err := parser.TranslationUnit("int f(x) int x; { return x; }", env.New())
	require.NoError(t, err)
	require.Len(t, tu.Node.ExternalDeclarations, 1)

	def, ok := tu.Node.ExternalDeclarations[0].Node.(ast.FunctionDefinitionExternal)
	require.True(t, ok)
	assert.NotEmpty(t, def.Definition.Declarations, "K&R form must carry its separate parameter-type declarations")

	kr, ok := def.Definition.Declarator.Node.Derived[0].(ast.KRFunctionDerived)
	require.True(t, ok)
	require.Len(t, kr.Identifiers, 1)
	assert.Equal(t, "x", kr.Identifiers[0].Name)
}

// K&R parameter-type declarations are registered into the function's
// own scope, not the enclosing file scope: a parameter redeclaration
// must not permanently shadow an outer typedef of the same name.
func TestKRParameterDeclarationScopedToFunctionNotFileScope(t *testing.T) {
	e := env.New()
	tu, err := parser.TranslationUnit("typedef int x; int f(x) int x; { x; } x y;", e)
	require.NoError(t, err)
	require.Len(t, tu.Node.ExternalDeclarations, 3)

	_, ok := tu.Node.ExternalDeclarations[2].Node.(ast.DeclarationExternal)
	assert.True(t, ok, "the trailing `x y;` must still resolve x as a typename, not as the shadowed int parameter")
}

func TestPrototypeFunctionDefinitionHasNoDeclarations(t *testing.T) {
	tu, err := parser.TranslationUnit("int f(int x) { return x; }", env.New())
	require.NoError(t, err)
	def, ok := tu.Node.ExternalDeclarations[0].Node.(ast.FunctionDefinitionExternal)
	require.True(t, ok)
	assert.Empty(t, def.Definition.Declarations)

	fn, ok := def.Definition.Declarator.Node.Derived[0].(ast.FunctionDerived)
	require.True(t, ok)
	require.Len(t, fn.Parameters, 1)
}

func TestFunctionReturningPointerIsStillFunctionShaped(t *testing.T) {
	// `*f(void)`: the pointer derivation is outermost, the function
	// derivation innermost, but this must still resolve as a function
	// definition rather than a plain declaration.
	tu, err := parser.TranslationUnit("int *f(void) { return 0; }", env.New())
	require.NoError(t, err)
	require.Len(t, tu.Node.ExternalDeclarations, 1)

	def, ok := tu.Node.ExternalDeclarations[0].Node.(ast.FunctionDefinitionExternal)
	require.True(t, ok)

	derived := def.Definition.Declarator.Node.Derived
	require.Len(t, derived, 2)
	_, isFn := derived[0].(ast.FunctionDerived)
	assert.True(t, isFn, "function derivation must be innermost")
	_, isPtr := derived[1].(ast.PointerDerived)
	assert.True(t, isPtr, "pointer derivation must be outermost")
}

func TestPlainDeclarationIsNotFunctionDefinition(t *testing.T) {
	tu, err := parser.TranslationUnit("int x;", env.New())
	require.NoError(t, err)
	_, ok := tu.Node.ExternalDeclarations[0].Node.(ast.DeclarationExternal)
	assert.True(t, ok)
}

func TestFunctionPrototypeDeclarationIsNotDefinition(t *testing.T) {
	// A function prototype with no body is a plain declaration, not a
	// function definition, even though its declarator is function-shaped.
	tu, err := parser.TranslationUnit("int f(int x);", env.New())
	require.NoError(t, err)
	_, ok := tu.Node.ExternalDeclarations[0].Node.(ast.DeclarationExternal)
	assert.True(t, ok)
}

func TestMultipleExternalDeclarationsInOrder(t *testing.T) {
	tu, err := parser.TranslationUnit("int a; int b;", env.New())
	require.NoError(t, err)
	require.Len(t, tu.Node.ExternalDeclarations, 2)
}

// Function parameters and K&R parameter names are pre-populated into
// the function body's own scope as ordinary identifiers.
func TestFunctionParametersVisibleInBody(t *testing.T) {
	e := env.New()
	e.AddTypename("T")
	tu, err := parser.TranslationUnit("void f(int T) { T * y; }", e)
	require.NoError(t, err)
	def, ok := tu.Node.ExternalDeclarations[0].Node.(ast.FunctionDefinitionExternal)
	require.True(t, ok)
	body, ok := def.Definition.Body.Node.(*ast.CompoundStatement)
	require.True(t, ok)
	require.Len(t, body.Items, 1)
	_, isStmt := body.Items[0].Node.(ast.StatementItem)
	assert.True(t, isStmt, "the parameter T is an ordinary identifier in the body, so `T * y;` is a multiplication, not a declaration")
	assert.True(t, e.IsTypename("T"), "the parameter's binding ends with the function body")
}

func TestStaticAssertAsExternalDeclaration(t *testing.T) {
	tu, err := parser.TranslationUnit(`_Static_assert(1, "message");`, env.New())
	require.NoError(t, err)
	sa, ok := tu.Node.ExternalDeclarations[0].Node.(ast.StaticAssertExternal)
	require.True(t, ok)
	assert.Equal(t, ast.StringLiteral{`"message"`}, sa.StaticAssert.Message)
}
