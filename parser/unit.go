package parser

import (
	"github.com/funvibe/cparse/ast"
	"github.com/funvibe/cparse/span"
	"github.com/funvibe/cparse/token"
)

// parseTranslationUnit parses a sequence of external declarations
// until end of input.
func (p *Parser) parseTranslationUnit() span.Spanned[*ast.TranslationUnit] {
	start := p.cur.Offset
	tu := &ast.TranslationUnit{}
	for !p.curIs(token.EOF) {
		tu.ExternalDeclarations = append(tu.ExternalDeclarations, p.parseExternalDeclaration())
	}
	return span.New(tu, p.spanFrom(start))
}

// parseExternalDeclaration resolves the function-definition-vs-plain-
// declaration ambiguity (SPEC_FULL.md §4.7): both begin with
// declaration-specifiers followed by a declarator, and only trailing
// context (a compound statement, or a K&R declaration-list leading to
// one) tells them apart.
func (p *Parser) parseExternalDeclaration() span.Spanned[ast.ExternalDeclaration] {
	start := p.cur.Offset

	if p.curIs(token.STATIC_ASSERT) {
		sa := p.parseStaticAssert()
		return span.New[ast.ExternalDeclaration](ast.StaticAssertExternal{StaticAssert: sa}, p.spanFrom(start))
	}

	specifiers, isTypedef := p.parseDeclarationSpecifiers()

	if p.curIs(token.SEMI) {
		p.advance()
		return span.New[ast.ExternalDeclaration](ast.DeclarationExternal{Declaration: &ast.Declaration{Specifiers: specifiers}}, p.spanFrom(start))
	}

	declarator := p.parseDeclarator()

	if isFunctionShaped(declarator.Node) && (p.curIs(token.LBRACE) || p.isDeclarationSpecifierStart()) {
		p.registerDeclaredName(ast.InitDeclarator{Declarator: declarator}, false)

		// The K&R parameter-type declaration list belongs to the
		// function's own scope, not the enclosing one: entering the
		// scope before parsing it (rather than after) keeps a
		// redeclaration like `int f(x) int x; { ... }` from shadowing an
		// outer-scope binding of the same name past the function.
		p.env.EnterScope()

		var krDecls []span.Spanned[*ast.Declaration]
		for !p.curIs(token.LBRACE) && p.isDeclarationSpecifierStart() {
			d := p.parseDeclaration()
			p.expect(token.SEMI)
			krDecls = append(krDecls, d)
		}

		for _, param := range functionParameterNames(declarator.Node) {
			p.env.AddIdent(param)
		}
		body := p.parseCompoundStatementBodyInScope()
		p.env.ExitScope()

		def := &ast.FunctionDefinition{Specifiers: specifiers, Declarator: declarator, Declarations: krDecls, Body: body}
		return span.New[ast.ExternalDeclaration](ast.FunctionDefinitionExternal{Definition: def}, p.spanFrom(start))
	}

	decl := &ast.Declaration{Specifiers: specifiers}
	id := p.finishInitDeclarator(declarator)
	decl.Declarators = append(decl.Declarators, id)
	p.registerDeclaredName(id, isTypedef)

	for p.curIs(token.COMMA) {
		p.advance()
		next := p.parseInitDeclarator()
		decl.Declarators = append(decl.Declarators, next)
		p.registerDeclaredName(next, isTypedef)
	}
	p.expect(token.SEMI)

	return span.New[ast.ExternalDeclaration](ast.DeclarationExternal{Declaration: decl}, p.spanFrom(start))
}

// finishInitDeclarator completes an InitDeclarator whose Declarator
// has already been parsed, reading a trailing `= initializer` if
// present.
func (p *Parser) finishInitDeclarator(d span.Spanned[*ast.Declarator]) ast.InitDeclarator {
	var init *span.Spanned[ast.Initializer]
	if p.curIs(token.ASSIGN) {
		p.advance()
		v := p.parseInitializer()
		init = &v
	}
	return ast.InitDeclarator{Declarator: d, Initializer: init}
}

// parseCompoundStatementBodyInScope parses a function body's `{ ... }`
// reusing the scope the caller already pushed for the parameter
// names, rather than pushing a second nested scope the way an
// ordinary nested block would.
func (p *Parser) parseCompoundStatementBodyInScope() span.Spanned[ast.Statement] {
	start := p.cur.Offset
	p.expect(token.LBRACE)
	var items []span.Spanned[ast.BlockItem]
	for !p.curIs(token.RBRACE) && !p.curIs(token.EOF) {
		items = append(items, p.parseBlockItem())
	}
	p.expect(token.RBRACE)
	return span.New[ast.Statement](&ast.CompoundStatement{Items: items}, p.spanFrom(start))
}

// outermostNonPointer returns the rightmost Derived entry that is not
// a pointer: since Derived is stored innermost-to-outermost (array/
// function suffixes before any pointer prefix, SPEC_FULL.md §4.5), a
// function-shaped declarator has its Function/KRFunction derivation
// here, with zero or more trailing Pointer derivations after it (e.g.
// `*f(void)` is derived = [Function, Pointer]).
func outermostNonPointer(d *ast.Declarator) ast.DerivedDeclarator {
	for i := len(d.Derived) - 1; i >= 0; i-- {
		if _, isPointer := d.Derived[i].(ast.PointerDerived); !isPointer {
			return d.Derived[i]
		}
	}
	return nil
}

func isFunctionShaped(d *ast.Declarator) bool {
	switch outermostNonPointer(d).(type) {
	case ast.FunctionDerived, ast.KRFunctionDerived:
		return true
	}
	return false
}

func isKRShaped(d *ast.Declarator) bool {
	_, ok := outermostNonPointer(d).(ast.KRFunctionDerived)
	return ok
}

// functionParameterNames collects the parameter names a function
// definition's own scope should pre-populate as ordinary identifiers
// before its body is parsed (both prototype-form named parameters and
// K&R identifier-list parameters).
func functionParameterNames(d *ast.Declarator) []string {
	switch last := outermostNonPointer(d).(type) {
	case ast.KRFunctionDerived:
		names := make([]string, 0, len(last.Identifiers))
		for _, id := range last.Identifiers {
			names = append(names, id.Name)
		}
		return names
	case ast.FunctionDerived:
		var names []string
		for _, param := range last.Parameters {
			if name, ok := declaredName(param.Declarator.Node); ok {
				names = append(names, name)
			}
		}
		return names
	}
	return nil
}
