package parser

import (
	"github.com/funvibe/cparse/ast"
	"github.com/funvibe/cparse/span"
	"github.com/funvibe/cparse/token"
)

// parseStatement dispatches to the correct statement production,
// using one token of lookahead to recognize labels (identifier
// followed by ':') ahead of an expression statement that merely
// starts with an identifier.
func (p *Parser) parseStatement() span.Spanned[ast.Statement] {
	start := p.cur.Offset
	switch p.cur.Type {
	case token.LBRACE:
		s := p.parseCompoundStatement()
		return span.New[ast.Statement](s.Node, s.Span)
	case token.IF:
		return p.parseIfStatement(start)
	case token.SWITCH:
		return p.parseSwitchStatement(start)
	case token.WHILE:
		return p.parseWhileStatement(start)
	case token.DO:
		return p.parseDoWhileStatement(start)
	case token.FOR:
		return p.parseForStatement(start)
	case token.GOTO:
		p.advance()
		name, _ := p.expect(token.IDENTIFIER)
		p.expect(token.SEMI)
		return span.New[ast.Statement](ast.GotoStatement{Identifier: ast.Identifier{Name: name.Lexeme}}, p.spanFrom(start))
	case token.CONTINUE:
		p.advance()
		p.expect(token.SEMI)
		return span.New[ast.Statement](ast.ContinueStatement{}, p.spanFrom(start))
	case token.BREAK:
		p.advance()
		p.expect(token.SEMI)
		return span.New[ast.Statement](ast.BreakStatement{}, p.spanFrom(start))
	case token.RETURN:
		p.advance()
		var expr *span.Spanned[ast.Expression]
		if !p.curIs(token.SEMI) {
			e := p.parseExpression()
			expr = &e
		}
		p.expect(token.SEMI)
		return span.New[ast.Statement](ast.ReturnStatement{Expression: expr}, p.spanFrom(start))
	case token.CASE:
		return p.parseCaseLabel(start)
	case token.DEFAULT:
		p.advance()
		p.expect(token.COLON)
		stmt := p.parseStatement()
		return span.New[ast.Statement](ast.LabeledStatement{Label: ast.DefaultLabel{}, Statement: stmt}, p.spanFrom(start))
	case token.ASM:
		return p.parseAsmStatement(start)
	case token.SEMI:
		p.advance()
		return span.New[ast.Statement](ast.ExpressionStatement{}, p.spanFrom(start))
	case token.IDENTIFIER:
		if p.peekIs(token.COLON) {
			name := p.cur.Lexeme
			p.advance()
			p.advance()
			stmt := p.parseStatement()
			return span.New[ast.Statement](ast.LabeledStatement{Label: ast.IdentifierLabel{Identifier: ast.Identifier{Name: name}}, Statement: stmt}, p.spanFrom(start))
		}
	}
	return p.parseExpressionStatement(start)
}

func (p *Parser) parseExpressionStatement(start int) span.Spanned[ast.Statement] {
	expr := p.parseExpression()
	p.expect(token.SEMI)
	return span.New[ast.Statement](ast.ExpressionStatement{Expression: &expr}, p.spanFrom(start))
}

func (p *Parser) parseCaseLabel(start int) span.Spanned[ast.Statement] {
	p.advance() // case
	low := p.parseConditionalOnlyExpression()
	var label ast.Label = ast.CaseLabel{Expression: low}
	if p.curIs(token.ELLIPSIS) {
		p.advance()
		high := p.parseConditionalOnlyExpression()
		label = ast.CaseRangeLabel{Low: low, High: high}
	}
	p.expect(token.COLON)
	stmt := p.parseStatement()
	return span.New[ast.Statement](ast.LabeledStatement{Label: label, Statement: stmt}, p.spanFrom(start))
}

func (p *Parser) parseCompoundStatement() span.Spanned[*ast.CompoundStatement] {
	start := p.cur.Offset
	p.expect(token.LBRACE)
	p.env.EnterScope()
	defer p.env.ExitScope()

	var items []span.Spanned[ast.BlockItem]
	for !p.curIs(token.RBRACE) && !p.curIs(token.EOF) {
		items = append(items, p.parseBlockItem())
	}
	p.expect(token.RBRACE)
	return span.New(&ast.CompoundStatement{Items: items}, p.spanFrom(start))
}

func (p *Parser) parseBlockItem() span.Spanned[ast.BlockItem] {
	start := p.cur.Offset
	if p.curIs(token.STATIC_ASSERT) {
		sa := p.parseStaticAssert()
		return span.New[ast.BlockItem](ast.StaticAssertItem{StaticAssert: span.New(sa, p.spanFrom(start))}, p.spanFrom(start))
	}
	if p.isDeclarationSpecifierStart() {
		d := p.parseDeclaration()
		p.expect(token.SEMI)
		return span.New[ast.BlockItem](ast.DeclarationItem{Declaration: d}, p.spanFrom(start))
	}
	s := p.parseStatement()
	return span.New[ast.BlockItem](ast.StatementItem{Statement: s}, p.spanFrom(start))
}

func (p *Parser) parseIfStatement(start int) span.Spanned[ast.Statement] {
	p.advance() // if
	p.expect(token.LPAREN)
	cond := p.parseExpression()
	p.expect(token.RPAREN)
	then := p.parseStatement()
	var elseStmt *span.Spanned[ast.Statement]
	if p.curIs(token.ELSE) {
		p.advance()
		e := p.parseStatement()
		elseStmt = &e
	}
	return span.New[ast.Statement](ast.IfStatement{Condition: cond, Then: then, Else: elseStmt}, p.spanFrom(start))
}

func (p *Parser) parseSwitchStatement(start int) span.Spanned[ast.Statement] {
	p.advance() // switch
	p.expect(token.LPAREN)
	cond := p.parseExpression()
	p.expect(token.RPAREN)
	body := p.parseStatement()
	return span.New[ast.Statement](ast.SwitchStatement{Condition: cond, Body: body}, p.spanFrom(start))
}

func (p *Parser) parseWhileStatement(start int) span.Spanned[ast.Statement] {
	p.advance() // while
	p.expect(token.LPAREN)
	cond := p.parseExpression()
	p.expect(token.RPAREN)
	body := p.parseStatement()
	return span.New[ast.Statement](ast.WhileStatement{Condition: cond, Body: body}, p.spanFrom(start))
}

func (p *Parser) parseDoWhileStatement(start int) span.Spanned[ast.Statement] {
	p.advance() // do
	body := p.parseStatement()
	p.expect(token.WHILE)
	p.expect(token.LPAREN)
	cond := p.parseExpression()
	p.expect(token.RPAREN)
	p.expect(token.SEMI)
	return span.New[ast.Statement](ast.DoWhileStatement{Body: body, Condition: cond}, p.spanFrom(start))
}

func (p *Parser) parseForStatement(start int) span.Spanned[ast.Statement] {
	p.advance() // for
	p.expect(token.LPAREN)
	p.env.EnterScope()
	defer p.env.ExitScope()

	var init ast.ForInitializer
	switch {
	case p.curIs(token.SEMI):
		init = ast.EmptyForInit{}
		p.advance()
	case p.isDeclarationSpecifierStart():
		d := p.parseDeclaration()
		p.expect(token.SEMI)
		init = ast.DeclarationForInit{Declaration: d}
	default:
		e := p.parseExpression()
		p.expect(token.SEMI)
		init = ast.ExpressionForInit{Expression: e}
	}

	var cond *span.Spanned[ast.Expression]
	if !p.curIs(token.SEMI) {
		c := p.parseExpression()
		cond = &c
	}
	p.expect(token.SEMI)

	var step *span.Spanned[ast.Expression]
	if !p.curIs(token.RPAREN) {
		s := p.parseExpression()
		step = &s
	}
	p.expect(token.RPAREN)

	body := p.parseStatement()
	return span.New[ast.Statement](ast.ForStatement{Init: init, Condition: cond, Step: step, Body: body}, p.spanFrom(start))
}

// parseAsmStatement parses either a basic `asm("template");` or an
// extended `asm volatile ("template" : outputs : inputs : clobbers);`.
func (p *Parser) parseAsmStatement(start int) span.Spanned[ast.Statement] {
	p.advance() // asm

	qualifier := ast.AsmNone
	switch p.cur.Type {
	case token.VOLATILE:
		qualifier = ast.AsmVolatile
		p.advance()
	case token.INLINE:
		qualifier = ast.AsmInline
		p.advance()
	case token.GOTO:
		qualifier = ast.AsmGoto
		p.advance()
	}

	p.expect(token.LPAREN)
	template := p.parseAdjacentStringLiteral()

	if !p.curIs(token.COLON) {
		p.expect(token.RPAREN)
		p.expect(token.SEMI)
		return span.New[ast.Statement](ast.AsmStatement{Asm: ast.GnuBasicAsm{Template: template}}, p.spanFrom(start))
	}

	var outputs, inputs []ast.GnuAsmOperand
	var clobbers []ast.StringLiteral

	p.advance() // :
	if !p.curIs(token.COLON) && !p.curIs(token.RPAREN) {
		outputs = p.parseAsmOperandList()
	}
	if p.curIs(token.COLON) {
		p.advance()
		if !p.curIs(token.COLON) && !p.curIs(token.RPAREN) {
			inputs = p.parseAsmOperandList()
		}
	}
	if p.curIs(token.COLON) {
		p.advance()
		for !p.curIs(token.RPAREN) && !p.curIs(token.EOF) {
			clobbers = append(clobbers, p.parseAdjacentStringLiteral())
			if p.curIs(token.COMMA) {
				p.advance()
				continue
			}
			break
		}
	}

	p.expect(token.RPAREN)
	p.expect(token.SEMI)
	return span.New[ast.Statement](ast.AsmStatement{Asm: ast.GnuExtendedAsm{
		Qualifier: qualifier, Template: template, Outputs: outputs, Inputs: inputs, Clobbers: clobbers,
	}}, p.spanFrom(start))
}

func (p *Parser) parseAsmOperandList() []ast.GnuAsmOperand {
	var operands []ast.GnuAsmOperand
	for {
		operands = append(operands, p.parseAsmOperand())
		if p.curIs(token.COMMA) {
			p.advance()
			continue
		}
		break
	}
	return operands
}

func (p *Parser) parseAsmOperand() ast.GnuAsmOperand {
	var op ast.GnuAsmOperand
	if p.curIs(token.LBRACKET) {
		p.advance()
		name, _ := p.expect(token.IDENTIFIER)
		op.SymbolicName = &ast.Identifier{Name: name.Lexeme}
		p.expect(token.RBRACKET)
	}
	op.Constraints = p.parseAdjacentStringLiteral()
	p.expect(token.LPAREN)
	op.Variable = p.parseExpression()
	p.expect(token.RPAREN)
	return op
}

func (p *Parser) parseAdjacentStringLiteral() ast.StringLiteral {
	tok, _ := p.expect(token.STRING)
	parts := ast.StringLiteral{tok.Lexeme}
	for p.curIs(token.STRING) {
		parts = append(parts, p.cur.Lexeme)
		p.advance()
	}
	return parts
}
