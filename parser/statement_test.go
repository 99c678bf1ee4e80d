package parser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/funvibe/cparse/ast"
	"github.com/funvibe/cparse/env"
	"github.com/funvibe/cparse/parser"
)

func mustStatement(t *testing.T, source string, e *env.Environment) ast.Statement {
	t.Helper()
	result, err := parser.Statement(source, e)
	require.NoError(t, err)
	return result.Node
}

func TestIfElseStatement(t *testing.T) {
	stmt := mustStatement(t, "if (a) b; else c;", env.New())
	ifStmt, ok := stmt.(ast.IfStatement)
	require.True(t, ok)
	require.NotNil(t, ifStmt.Else)
}

func TestIfWithoutElse(t *testing.T) {
	stmt := mustStatement(t, "if (a) b;", env.New())
	ifStmt, ok := stmt.(ast.IfStatement)
	require.True(t, ok)
	assert.Nil(t, ifStmt.Else)
}

func TestDanglingElseBindsToNearestIf(t *testing.T) {
	stmt := mustStatement(t, "if (a) if (b) c; else d;", env.New())
	outer, ok := stmt.(ast.IfStatement)
	require.True(t, ok)
	assert.Nil(t, outer.Else, "the else must bind to the inner if")

	inner, ok := outer.Then.Node.(ast.IfStatement)
	require.True(t, ok)
	assert.NotNil(t, inner.Else)
}

func TestForStatementAllClauses(t *testing.T) {
	stmt := mustStatement(t, "for (int i = 0; i < 10; i++) body;", env.New())
	forStmt, ok := stmt.(ast.ForStatement)
	require.True(t, ok)

	_, isDeclInit := forStmt.Init.(ast.DeclarationForInit)
	assert.True(t, isDeclInit)
	require.NotNil(t, forStmt.Condition)
	require.NotNil(t, forStmt.Step)
}

func TestForStatementEmptyClauses(t *testing.T) {
	stmt := mustStatement(t, "for (;;) body;", env.New())
	forStmt, ok := stmt.(ast.ForStatement)
	require.True(t, ok)
	_, isEmptyInit := forStmt.Init.(ast.EmptyForInit)
	assert.True(t, isEmptyInit)
	assert.Nil(t, forStmt.Condition)
	assert.Nil(t, forStmt.Step)
}

func TestForLoopTypedefScopedToLoop(t *testing.T) {
	e := env.New()
	_, err := parser.Statement("for (typedef int Z; 0;) ;", e)
	require.NoError(t, err)
	assert.False(t, e.IsTypename("Z"), "a typedef in a for-init must not leak past the loop's scope")
}

func TestCaseRangeLabel(t *testing.T) {
	stmt := mustStatement(t, "switch (x) { case 1 ... 3: break; }", env.New().WithGNU(true))
	sw, ok := stmt.(ast.SwitchStatement)
	require.True(t, ok)
	body, ok := sw.Body.Node.(*ast.CompoundStatement)
	require.True(t, ok)
	require.Len(t, body.Items, 1)
	item, ok := body.Items[0].Node.(ast.StatementItem)
	require.True(t, ok)
	labeled, ok := item.Statement.Node.(ast.LabeledStatement)
	require.True(t, ok)
	_, isRange := labeled.Label.(ast.CaseRangeLabel)
	assert.True(t, isRange)
}

func TestGotoAndLabeledStatement(t *testing.T) {
	stmt := mustStatement(t, "done: goto done;", env.New())
	labeled, ok := stmt.(ast.LabeledStatement)
	require.True(t, ok)
	idLabel, ok := labeled.Label.(ast.IdentifierLabel)
	require.True(t, ok)
	assert.Equal(t, "done", idLabel.Identifier.Name)

	gotoStmt, ok := labeled.Statement.Node.(ast.GotoStatement)
	require.True(t, ok)
	assert.Equal(t, "done", gotoStmt.Identifier.Name)
}

func TestReturnWithAndWithoutExpression(t *testing.T) {
	withExpr := mustStatement(t, "return 1;", env.New())
	ret, ok := withExpr.(ast.ReturnStatement)
	require.True(t, ok)
	require.NotNil(t, ret.Expression)

	bare := mustStatement(t, "return;", env.New())
	ret, ok = bare.(ast.ReturnStatement)
	require.True(t, ok)
	assert.Nil(t, ret.Expression)
}

func TestEmptyStatementIsBareSemicolon(t *testing.T) {
	stmt := mustStatement(t, ";", env.New())
	exprStmt, ok := stmt.(ast.ExpressionStatement)
	require.True(t, ok)
	assert.Nil(t, exprStmt.Expression)
}

func TestBasicAsmStatement(t *testing.T) {
	stmt := mustStatement(t, `asm("nop");`, env.New())
	asmStmt, ok := stmt.(ast.AsmStatement)
	require.True(t, ok)
	basic, ok := asmStmt.Asm.(ast.GnuBasicAsm)
	require.True(t, ok)
	assert.Equal(t, ast.StringLiteral{`"nop"`}, basic.Template)
}

func TestExtendedAsmStatementWithOperandsAndClobbers(t *testing.T) {
	stmt := mustStatement(t, `asm volatile ("add %1, %0" : "=r" (result) : "r" (value) : "cc");`, env.New())
	asmStmt, ok := stmt.(ast.AsmStatement)
	require.True(t, ok)
	ext, ok := asmStmt.Asm.(ast.GnuExtendedAsm)
	require.True(t, ok)
	assert.Equal(t, ast.AsmVolatile, ext.Qualifier)
	require.Len(t, ext.Outputs, 1)
	require.Len(t, ext.Inputs, 1)
	require.Len(t, ext.Clobbers, 1)
}
