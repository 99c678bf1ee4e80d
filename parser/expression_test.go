package parser_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/funvibe/cparse/ast"
	"github.com/funvibe/cparse/env"
	"github.com/funvibe/cparse/parser"
	"github.com/funvibe/cparse/span"
)

func ignoreSpans() cmp.Option {
	return cmpopts.IgnoreFields(span.Span{}, "Begin", "End")
}

func mustExpression(t *testing.T, source string) ast.Expression {
	t.Helper()
	result, err := parser.Expression(source, env.New())
	require.NoError(t, err)
	return result.Node
}

func TestOctalZeroRule(t *testing.T) {
	c, err := parser.Constant("0", env.New())
	require.NoError(t, err)
	assert.Equal(t, ast.IntegerConstant{Base: ast.Octal, Value: "0"}, c)
}

func TestDecimalConstantIsNotOctal(t *testing.T) {
	c, err := parser.Constant("42", env.New())
	require.NoError(t, err)
	assert.Equal(t, ast.IntegerConstant{Base: ast.Decimal, Value: "42"}, c)
}

func TestOctalDigitOutOfRangeIsRejected(t *testing.T) {
	// "08" lexes as one complete INTEGER token (unlike "1a", which leaves
	// a dangling identifier), so the digit-range check has to happen in
	// constant classification, not just at the entry point's
	// full-input-consumption check.
	for _, lexeme := range []string{"08", "09", "0178"} {
		t.Run(lexeme, func(t *testing.T) {
			_, err := parser.Constant(lexeme, env.New())
			assert.Error(t, err, "%q has an out-of-range octal digit and must be rejected", lexeme)
		})
	}
}

func TestHexConstant(t *testing.T) {
	c, err := parser.Constant("0x1A", env.New())
	require.NoError(t, err)
	assert.Equal(t, ast.IntegerConstant{Base: ast.Hexadecimal, Value: "0x1A"}, c)
}

// Round-trip of lexemes (Testable Property 1): the preserved lexeme
// equals the original source slice of the token, suffixes included.
func TestConstantRoundTripsLexeme(t *testing.T) {
	for _, lexeme := range []string{"0755", "10UL", "3.14f", "1e10", ".5"} {
		t.Run(lexeme, func(t *testing.T) {
			c, err := parser.Constant(lexeme, env.New())
			require.NoError(t, err)
			switch v := c.(type) {
			case ast.IntegerConstant:
				assert.Equal(t, lexeme, v.Value)
			case ast.FloatConstant:
				assert.Equal(t, lexeme, v.Value)
			default:
				t.Fatalf("unexpected constant type %T", c)
			}
		})
	}
}

func TestPostfixChainOverMemberAndIndex(t *testing.T) {
	// "a.b->c[d[e]]++" — postfix increment over a chain of member and
	// index accesses (end-to-end scenario 2).
	expr := mustExpression(t, "a.b->c[d[e]]++")

	inc, ok := expr.(ast.UnaryOperatorExpr)
	require.True(t, ok, "outermost node must be the postfix ++")
	assert.Equal(t, ast.PostIncrement, inc.Operator)

	index, ok := inc.Operand.Node.(ast.BinaryOperatorExpr)
	require.True(t, ok, "c[...] must be an Index binary expression")
	assert.Equal(t, ast.Index, index.Operator)

	innerIndex, ok := index.RHS.Node.(ast.BinaryOperatorExpr)
	require.True(t, ok, "d[e] must itself be an Index expression")
	assert.Equal(t, ast.Index, innerIndex.Operator)

	arrow, ok := index.LHS.Node.(ast.MemberExpr)
	require.True(t, ok, "a.b->c must end in an indirect member access")
	assert.Equal(t, ast.Indirect, arrow.Operator)
	assert.Equal(t, "c", arrow.Identifier.Name)

	dot, ok := arrow.Expression.Node.(ast.MemberExpr)
	require.True(t, ok, "a.b must be a direct member access")
	assert.Equal(t, ast.Direct, dot.Operator)
	assert.Equal(t, "b", dot.Identifier.Name)

	root, ok := dot.Expression.Node.(ast.IdentifierExpr)
	require.True(t, ok)
	assert.Equal(t, "a", root.Identifier.Name)
}

func TestAssignmentIsRightAssociative(t *testing.T) {
	expr := mustExpression(t, "a = b = c")
	outer, ok := expr.(ast.BinaryOperatorExpr)
	require.True(t, ok)
	assert.Equal(t, ast.Assign, outer.Operator)

	_, lhsIsIdent := outer.LHS.Node.(ast.IdentifierExpr)
	assert.True(t, lhsIsIdent, "a = (b = c): lhs is a bare identifier")

	inner, ok := outer.RHS.Node.(ast.BinaryOperatorExpr)
	require.True(t, ok, "rhs must itself be an assignment: a = (b = c)")
	assert.Equal(t, ast.Assign, inner.Operator)
}

func TestMultiplyBindsTighterThanPlus(t *testing.T) {
	expr := mustExpression(t, "a + b * c")
	plus, ok := expr.(ast.BinaryOperatorExpr)
	require.True(t, ok)
	assert.Equal(t, ast.BinaryPlus, plus.Operator)

	mul, ok := plus.RHS.Node.(ast.BinaryOperatorExpr)
	require.True(t, ok, "b * c must nest under the +")
	assert.Equal(t, ast.Multiply, mul.Operator)
}

func TestConditionalIsRightAssociativeAndLowPrecedence(t *testing.T) {
	expr := mustExpression(t, "a ? b : c ? d : e")
	outer, ok := expr.(ast.ConditionalExpr)
	require.True(t, ok)

	_, elseIsConditional := outer.Else.Node.(ast.ConditionalExpr)
	assert.True(t, elseIsConditional, "a ? b : (c ? d : e)")
}

func TestCommaExpressionGathersAllElements(t *testing.T) {
	expr := mustExpression(t, "a, b, c")
	comma, ok := expr.(ast.CommaExpr)
	require.True(t, ok)
	assert.Len(t, comma.Expressions, 3)
}

func TestStatementExpression(t *testing.T) {
	// "({ int p = 0; p; })" as an expression (end-to-end scenario 5).
	expr := mustExpression(t, "({ int p = 0; p; })")
	stmtExpr, ok := expr.(ast.StatementExpr)
	require.True(t, ok)
	require.Len(t, stmtExpr.Statement.Node.Items, 2)

	declItem, ok := stmtExpr.Statement.Node.Items[0].Node.(ast.DeclarationItem)
	require.True(t, ok, "first block item must be the `int p = 0;` declaration")
	require.Len(t, declItem.Declaration.Node.Declarators, 1)
	require.NotNil(t, declItem.Declaration.Node.Declarators[0].Initializer)

	exprItem, ok := stmtExpr.Statement.Node.Items[1].Node.(ast.StatementItem)
	require.True(t, ok, "second block item must be the trailing `p;` expression statement")
	exprStmt, ok := exprItem.Statement.Node.(ast.ExpressionStatement)
	require.True(t, ok)
	require.NotNil(t, exprStmt.Expression)
	ident, ok := exprStmt.Expression.Node.(ast.IdentifierExpr)
	require.True(t, ok)
	assert.Equal(t, "p", ident.Identifier.Name)
}

func TestOffsetOfWithAnonymousStructAndIndirectMember(t *testing.T) {
	// "__builtin_offsetof(struct { struct { int b; } a[2]; }, a->b)"
	// (end-to-end scenario 6).
	expr := mustExpression(t, "__builtin_offsetof(struct { struct { int b; } a[2]; }, a->b)")
	off, ok := expr.(ast.OffsetOfExpr)
	require.True(t, ok)

	assert.Equal(t, "a", off.Designator.Base.Name)
	require.Len(t, off.Designator.Path, 1)
	step, ok := off.Designator.Path[0].(ast.OffsetMemberStep)
	require.True(t, ok)
	assert.Equal(t, ast.Indirect, step.Operator)
	assert.Equal(t, "b", step.Identifier.Name)

	// The type name is an anonymous struct with one member "a", itself
	// an array of two anonymous structs each with one member "b".
	tn := off.TypeName.Node
	require.Len(t, tn.Specifiers, 1)
	structSpec, ok := tn.Specifiers[0].Node.(ast.StructSpecifier)
	require.True(t, ok)
	require.NotNil(t, structSpec.Struct.Declarations)
	require.Len(t, *structSpec.Struct.Declarations, 1)
}

func TestOffsetOfWithDirectMemberAndIndex(t *testing.T) {
	expr := mustExpression(t, "__builtin_offsetof(struct foo, bar[3].baz)")
	off, ok := expr.(ast.OffsetOfExpr)
	require.True(t, ok)
	require.Len(t, off.Designator.Path, 2)

	_, isIndex := off.Designator.Path[0].(ast.OffsetIndexStep)
	assert.True(t, isIndex)

	member, isMember := off.Designator.Path[1].(ast.OffsetMemberStep)
	require.True(t, isMember)
	assert.Equal(t, ast.Direct, member.Operator)
	assert.Equal(t, "baz", member.Identifier.Name)
}

func TestCastVsParenthesizedExpressionDisambiguation(t *testing.T) {
	e := env.New()
	e.AddTypename("T")

	cast, err := parser.Expression("(T) x", e)
	require.NoError(t, err)
	_, isCast := cast.Node.(ast.CastExpr)
	assert.True(t, isCast, "(T) x must parse as a cast when T is a typename")

	notCast, err := parser.Expression("(x) + 1", e)
	require.NoError(t, err)
	_, isBinary := notCast.Node.(ast.BinaryOperatorExpr)
	assert.True(t, isBinary, "(x) + 1 must not be parsed as a cast")
}

func TestEqualityIgnoringSpans(t *testing.T) {
	want, err := parser.Expression("a+b", env.New())
	require.NoError(t, err)
	got, err := parser.Expression("a + b", env.New())
	require.NoError(t, err)

	if diff := cmp.Diff(want.Node, got.Node, ignoreSpans()); diff != "" {
		t.Fatalf("AST shapes differ (-want +got):\n%s", diff)
	}
}
