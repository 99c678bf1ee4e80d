// Package parser implements the context-sensitive recursive-descent
// and precedence-climbing grammar engine: the five public entry
// points of SPEC_FULL.md §6.1, each of which lexes and parses a
// complete input against a caller-supplied Environment.
package parser

import (
	"fmt"

	"github.com/funvibe/cparse/ast"
	"github.com/funvibe/cparse/config"
	"github.com/funvibe/cparse/diagnostics"
	"github.com/funvibe/cparse/env"
	"github.com/funvibe/cparse/lexer"
	"github.com/funvibe/cparse/pipeline"
	"github.com/funvibe/cparse/span"
	"github.com/funvibe/cparse/token"
)

// Parser consumes a pipeline.TokenStream and an Environment to build
// the typed AST. It is not safe for concurrent use (SPEC_FULL.md §5).
type Parser struct {
	stream pipeline.TokenStream
	env    *env.Environment
	errors *diagnostics.Sink

	cur  token.Token
	peek token.Token
}

// New builds a Parser reading from ctx.TokenStream, consulting and
// mutating ctx.Environment, and recording failures into ctx.Errors.
func New(ctx *pipeline.Context) *Parser {
	p := &Parser{stream: ctx.TokenStream, env: ctx.Environment, errors: ctx.Errors}
	p.advance()
	p.advance()
	return p
}

func (p *Parser) advance() {
	p.cur = p.peek
	p.peek = p.stream.Next()
}

func (p *Parser) curIs(t token.Type) bool  { return p.cur.Type == t }
func (p *Parser) peekIs(t token.Type) bool { return p.peek.Type == t }

// expect consumes the current token if it has type t, recording a
// ParseError and leaving the cursor in place otherwise.
func (p *Parser) expect(t token.Type) (token.Token, bool) {
	if p.cur.Type != t {
		p.fail(string(t))
		return p.cur, false
	}
	tok := p.cur
	p.advance()
	return tok, true
}

// fail records a ParseError at the current token's position. Per the
// furthest-offset-wins policy (SPEC_FULL.md §7), the Sink keeps only
// the deepest failure across every alternative the parser tried.
func (p *Parser) fail(expected ...string) *diagnostics.ParseError {
	err := diagnostics.New(p.cur.Offset, p.cur.Line, p.cur.Column, expected...)
	p.errors.Record(err)
	return err
}

func (p *Parser) spanFrom(start int) span.Span {
	return span.Span{Begin: start, End: p.cur.Offset}
}

func (p *Parser) spanUpTo(start, end int) span.Span {
	return span.Span{Begin: start, End: end}
}

// isDeclarationSpecifierStart reports whether the current token can begin a
// declaration-specifiers sequence, consulting the Environment for the
// typedef-name case (SPEC_FULL.md §4.5, §3.7).
func (p *Parser) isDeclarationSpecifierStart() bool {
	switch p.cur.Type {
	case token.TYPEDEF, token.EXTERN, token.STATIC, token.THREAD_LOCAL, token.AUTO, token.REGISTER,
		token.VOID, token.CHAR_KW, token.SHORT, token.INT, token.LONG, token.FLOAT_KW, token.DOUBLE,
		token.SIGNED, token.UNSIGNED, token.BOOL, token.COMPLEX,
		token.FLOAT16, token.INT128, token.DECIMAL32, token.DECIMAL64, token.DECIMAL128,
		token.ATOMIC, token.STRUCT, token.UNION, token.ENUM,
		token.CONST, token.RESTRICT, token.VOLATILE, token.NULLABLE, token.NONNULL, token.NULL_UNSPEC,
		token.INLINE, token.NORETURN, token.ALIGNAS,
		token.TYPEOF, token.EXTENSION, token.ATTRIBUTE:
		return true
	case token.IDENTIFIER:
		return p.env.IsTypename(p.cur.Lexeme)
	}
	return false
}

// --- Public entry points (SPEC_FULL.md §6.1) ---

func newParser(source string, environment *env.Environment) (*Parser, *pipeline.Context) {
	ctx := pipeline.NewContext(source, environment)
	ctx = pipeline.New(&lexer.Processor{}).Run(ctx)
	return New(ctx), ctx
}

// checkTrailing ensures the whole input was consumed: after skipping
// trivia the lexer itself already did, only EOF may remain.
func (p *Parser) checkTrailing() *diagnostics.ParseError {
	if !p.curIs(token.EOF) {
		return p.fail("end of input")
	}
	return nil
}

func furthestOrNil(ctx *pipeline.Context) error {
	if err := ctx.Errors.Furthest(); err != nil {
		return err
	}
	return nil
}

// TranslationUnit parses an entire translation unit.
func TranslationUnit(source string, environment *env.Environment) (span.Spanned[*ast.TranslationUnit], error) {
	p, ctx := newParser(source, environment)
	result := p.parseTranslationUnit()
	p.checkTrailing()
	if err := furthestOrNil(ctx); err != nil {
		return span.Spanned[*ast.TranslationUnit]{}, err
	}
	return result, nil
}

// Declaration parses a single top-level declaration.
func Declaration(source string, environment *env.Environment) (span.Spanned[*ast.Declaration], error) {
	p, ctx := newParser(source, environment)
	result := p.parseDeclaration()
	p.expect(token.SEMI)
	p.checkTrailing()
	if err := furthestOrNil(ctx); err != nil {
		return span.Spanned[*ast.Declaration]{}, err
	}
	return result, nil
}

// Statement parses a single statement.
func Statement(source string, environment *env.Environment) (span.Spanned[ast.Statement], error) {
	p, ctx := newParser(source, environment)
	result := p.parseStatement()
	p.checkTrailing()
	if err := furthestOrNil(ctx); err != nil {
		return span.Spanned[ast.Statement]{}, err
	}
	return result, nil
}

// Expression parses a single (comma-)expression.
func Expression(source string, environment *env.Environment) (span.Spanned[ast.Expression], error) {
	p, ctx := newParser(source, environment)
	result := p.parseExpression()
	p.checkTrailing()
	if err := furthestOrNil(ctx); err != nil {
		return span.Spanned[ast.Expression]{}, err
	}
	return result, nil
}

// Constant parses a single lexical constant.
func Constant(source string, environment *env.Environment) (ast.Constant, error) {
	p, ctx := newParser(source, environment)
	result := p.parseConstantToken()
	p.checkTrailing()
	if err := furthestOrNil(ctx); err != nil {
		return nil, err
	}
	return result, nil
}

func (p *Parser) parseConstantToken() ast.Constant {
	switch p.cur.Type {
	case token.INTEGER:
		lexeme := p.cur.Lexeme
		base := ast.Decimal
		switch {
		case len(lexeme) > 1 && (lexeme[1] == 'x' || lexeme[1] == 'X') && lexeme[0] == '0':
			base = ast.Hexadecimal
		case lexeme[0] == '0':
			// A bare "0" is octal, not decimal: C11 §6.4.4.1 defines octal
			// constants as 0 followed by zero or more octal digits — so a
			// digit 8 or 9 anywhere in the run makes the lexeme invalid,
			// not decimal.
			base = ast.Octal
			for i := 1; i < len(lexeme) && lexeme[i] >= '0' && lexeme[i] <= '9'; i++ {
				if lexeme[i] > '7' {
					p.fail("octal digit")
					return nil
				}
			}
		}
		p.advance()
		return ast.IntegerConstant{Base: base, Value: lexeme}
	case token.FLOAT:
		lexeme := p.cur.Lexeme
		base := ast.FloatDecimal
		if len(lexeme) > 1 && (lexeme[1] == 'x' || lexeme[1] == 'X') {
			base = ast.FloatHexadecimal
		}
		p.advance()
		return ast.FloatConstant{Base: base, Value: lexeme}
	case token.CHAR:
		lexeme := p.cur.Lexeme
		p.advance()
		return ast.CharacterConstant{Value: lexeme}
	}
	p.fail("integer constant", "floating constant", "character constant")
	return nil
}

// --- Expression parsing (precedence climbing, SPEC_FULL.md §4.4) ---

func (p *Parser) parseExpression() span.Spanned[ast.Expression] {
	return p.parseCommaExpression()
}

func (p *Parser) parseCommaExpression() span.Spanned[ast.Expression] {
	start := p.cur.Offset
	first := p.parseAssignmentExpression()
	if !p.curIs(token.COMMA) {
		return first
	}
	exprs := []span.Spanned[ast.Expression]{first}
	for p.curIs(token.COMMA) {
		p.advance()
		exprs = append(exprs, p.parseAssignmentExpression())
	}
	return span.New[ast.Expression](ast.CommaExpr{Expressions: exprs}, p.spanFrom(start))
}

func (p *Parser) parseAssignmentExpression() span.Spanned[ast.Expression] {
	return p.parseBinaryExpression(config.PrecAssign)
}

// parseBinaryExpression implements precedence climbing for every
// binary and assignment operator above the comma operator. Assignment
// and the ternary conditional are right-associative; everything else
// is left-associative (config.RightAssociative/config.BinaryPrecedence
// are the single source of truth for both, SPEC_FULL.md §10.2).
func (p *Parser) parseBinaryExpression(minPrec int) span.Spanned[ast.Expression] {
	start := p.cur.Offset
	left := p.parseConditionalPrefix()

	for {
		prec, ok := config.BinaryPrecedence[p.cur.Type]
		if !ok || prec < minPrec {
			return left
		}
		if p.curIs(token.QUESTION) {
			left = p.parseConditionalTail(start, left)
			continue
		}

		opTok := p.cur
		nextMin := prec + 1
		if config.RightAssociative[opTok.Type] {
			nextMin = prec
		}
		p.advance()
		right := p.parseBinaryExpression(nextMin)

		if isAssignOp(opTok.Type) {
			left = span.New[ast.Expression](ast.BinaryOperatorExpr{
				Operator: assignOperatorFor(opTok.Type), LHS: left, RHS: right,
			}, p.spanFrom(start))
			continue
		}
		left = span.New[ast.Expression](ast.BinaryOperatorExpr{
			Operator: binaryOperatorFor(opTok.Type), LHS: left, RHS: right,
		}, p.spanFrom(start))
	}
}

// parseConditionalPrefix parses the cast-expression operand that
// parseBinaryExpression's loop starts from; the loop itself handles
// every binary operator and the ternary.
func (p *Parser) parseConditionalPrefix() span.Spanned[ast.Expression] {
	return p.parseUnaryChainAsBinary()
}

// parseUnaryChainAsBinary is the entry into the precedence-climbing
// table from its tightest level (cast/unary).
func (p *Parser) parseUnaryChainAsBinary() span.Spanned[ast.Expression] {
	return p.parseCastExpression()
}

func (p *Parser) parseConditionalTail(start int, cond span.Spanned[ast.Expression]) span.Spanned[ast.Expression] {
	p.advance() // '?'
	then := p.parseExpression()
	p.expect(token.COLON)
	elseExpr := p.parseAssignmentExpression()
	return span.New[ast.Expression](ast.ConditionalExpr{Condition: cond, Then: then, Else: elseExpr}, p.spanFrom(start))
}

func isAssignOp(t token.Type) bool {
	switch t {
	case token.ASSIGN, token.MUL_ASSN, token.DIV_ASSN, token.MOD_ASSN, token.ADD_ASSN, token.SUB_ASSN,
		token.SHL_ASSN, token.SHR_ASSN, token.AND_ASSN, token.XOR_ASSN, token.OR_ASSN:
		return true
	}
	return false
}

func assignOperatorFor(t token.Type) ast.BinaryOperator {
	switch t {
	case token.ASSIGN:
		return ast.Assign
	case token.MUL_ASSN:
		return ast.AssignMultiply
	case token.DIV_ASSN:
		return ast.AssignDivide
	case token.MOD_ASSN:
		return ast.AssignModulo
	case token.ADD_ASSN:
		return ast.AssignPlus
	case token.SUB_ASSN:
		return ast.AssignMinus
	case token.SHL_ASSN:
		return ast.AssignShiftLeft
	case token.SHR_ASSN:
		return ast.AssignShiftRight
	case token.AND_ASSN:
		return ast.AssignBitwiseAnd
	case token.XOR_ASSN:
		return ast.AssignBitwiseXor
	case token.OR_ASSN:
		return ast.AssignBitwiseOr
	}
	panic(fmt.Sprintf("parser: not an assignment operator: %s", t))
}

func binaryOperatorFor(t token.Type) ast.BinaryOperator {
	switch t {
	case token.OR_OR:
		return ast.LogicalOr
	case token.AND_AND:
		return ast.LogicalAnd
	case token.PIPE:
		return ast.BitwiseOr
	case token.CARET:
		return ast.BitwiseXor
	case token.AMP:
		return ast.BitwiseAnd
	case token.EQ:
		return ast.Equals
	case token.NE:
		return ast.NotEquals
	case token.LT:
		return ast.Less
	case token.GT:
		return ast.Greater
	case token.LE:
		return ast.LessOrEqual
	case token.GE:
		return ast.GreaterOrEqual
	case token.LSHIFT:
		return ast.ShiftLeft
	case token.RSHIFT:
		return ast.ShiftRight
	case token.PLUS:
		return ast.BinaryPlus
	case token.MINUS:
		return ast.BinaryMinus
	case token.STAR:
		return ast.Multiply
	case token.SLASH:
		return ast.Divide
	case token.PERCENT:
		return ast.Modulo
	}
	panic(fmt.Sprintf("parser: not a binary operator: %s", t))
}

// parseCastExpression handles `(type-name) expr` by speculating: it
// parses a parenthesized type name only when the Environment resolves
// the content as a type; a parenthesized expression takes priority
// otherwise, exactly the ambiguity §4.4 calls out.
func (p *Parser) parseCastExpression() span.Spanned[ast.Expression] {
	if p.curIs(token.LPAREN) && p.startsTypeNameAfterParen() {
		start := p.cur.Offset
		p.advance()
		tn := p.parseTypeName()
		p.expect(token.RPAREN)
		if p.curIs(token.LBRACE) {
			// compound literal, not a cast
			items := p.parseBracedInitializerList()
			return span.New[ast.Expression](ast.CompoundLiteralExpr{TypeName: tn, Initializer: items}, p.spanFrom(start))
		}
		operand := p.parseCastExpression()
		return span.New[ast.Expression](ast.CastExpr{TypeName: tn, Expression: operand}, p.spanFrom(start))
	}
	return p.parseUnaryExpression()
}

// startsTypeNameAfterParen peeks past '(' to see whether a
// declaration-specifier token follows, which is the only lookahead
// needed because a type-name can never begin with an expression
// token.
func (p *Parser) startsTypeNameAfterParen() bool {
	// p.cur is the '(' itself, so the token right after it is p.peek.
	return startsDeclarationSpecifier(p.peek, p.env)
}

func startsDeclarationSpecifier(t token.Token, environment *env.Environment) bool {
	switch t.Type {
	case token.VOID, token.CHAR_KW, token.SHORT, token.INT, token.LONG, token.FLOAT_KW, token.DOUBLE,
		token.SIGNED, token.UNSIGNED, token.BOOL, token.COMPLEX,
		token.FLOAT16, token.INT128, token.DECIMAL32, token.DECIMAL64, token.DECIMAL128,
		token.ATOMIC, token.STRUCT, token.UNION, token.ENUM,
		token.CONST, token.RESTRICT, token.VOLATILE, token.NULLABLE, token.NONNULL, token.NULL_UNSPEC,
		token.TYPEOF:
		return true
	case token.IDENTIFIER:
		return environment.IsTypename(t.Lexeme)
	}
	return false
}

func (p *Parser) parseUnaryExpression() span.Spanned[ast.Expression] {
	start := p.cur.Offset
	switch p.cur.Type {
	case token.INCR:
		p.advance()
		operand := p.parseUnaryExpression()
		return span.New[ast.Expression](ast.UnaryOperatorExpr{Operator: ast.PreIncrement, Operand: operand}, p.spanFrom(start))
	case token.DECR:
		p.advance()
		operand := p.parseUnaryExpression()
		return span.New[ast.Expression](ast.UnaryOperatorExpr{Operator: ast.PreDecrement, Operand: operand}, p.spanFrom(start))
	case token.AMP:
		p.advance()
		return span.New[ast.Expression](ast.UnaryOperatorExpr{Operator: ast.Address, Operand: p.parseCastExpression()}, p.spanFrom(start))
	case token.STAR:
		p.advance()
		return span.New[ast.Expression](ast.UnaryOperatorExpr{Operator: ast.Indirection, Operand: p.parseCastExpression()}, p.spanFrom(start))
	case token.PLUS:
		p.advance()
		return span.New[ast.Expression](ast.UnaryOperatorExpr{Operator: ast.Plus, Operand: p.parseCastExpression()}, p.spanFrom(start))
	case token.MINUS:
		p.advance()
		return span.New[ast.Expression](ast.UnaryOperatorExpr{Operator: ast.Minus, Operand: p.parseCastExpression()}, p.spanFrom(start))
	case token.TILDE:
		p.advance()
		return span.New[ast.Expression](ast.UnaryOperatorExpr{Operator: ast.Complement, Operand: p.parseCastExpression()}, p.spanFrom(start))
	case token.BANG:
		p.advance()
		return span.New[ast.Expression](ast.UnaryOperatorExpr{Operator: ast.Negate, Operand: p.parseCastExpression()}, p.spanFrom(start))
	case token.SIZEOF:
		return p.parseSizeOf(start)
	case token.ALIGNOF:
		p.advance()
		p.expect(token.LPAREN)
		tn := p.parseTypeName()
		p.expect(token.RPAREN)
		return span.New[ast.Expression](ast.AlignOfExpr{TypeName: tn}, p.spanFrom(start))
	}
	return p.parsePostfixExpression()
}

func (p *Parser) parseSizeOf(start int) span.Spanned[ast.Expression] {
	p.advance() // 'sizeof'
	if p.curIs(token.LPAREN) && p.startsTypeNameAfterParen() {
		p.advance()
		tn := p.parseTypeName()
		p.expect(token.RPAREN)
		return span.New[ast.Expression](ast.SizeOfTyExpr{TypeName: tn}, p.spanFrom(start))
	}
	operand := p.parseUnaryExpression()
	return span.New[ast.Expression](ast.SizeOfValExpr{Expression: operand}, p.spanFrom(start))
}

func (p *Parser) parsePostfixExpression() span.Spanned[ast.Expression] {
	start := p.cur.Offset
	expr := p.parsePrimaryExpression()
	for {
		switch p.cur.Type {
		case token.LBRACKET:
			p.advance()
			index := p.parseExpression()
			p.expect(token.RBRACKET)
			expr = span.New[ast.Expression](ast.BinaryOperatorExpr{Operator: ast.Index, LHS: expr, RHS: index}, p.spanFrom(start))
		case token.LPAREN:
			p.advance()
			var args []span.Spanned[ast.Expression]
			if !p.curIs(token.RPAREN) {
				args = append(args, p.parseAssignmentExpression())
				for p.curIs(token.COMMA) {
					p.advance()
					args = append(args, p.parseAssignmentExpression())
				}
			}
			p.expect(token.RPAREN)
			expr = span.New[ast.Expression](ast.CallExpr{Callee: expr, Arguments: args}, p.spanFrom(start))
		case token.DOT:
			p.advance()
			name, _ := p.expect(token.IDENTIFIER)
			expr = span.New[ast.Expression](ast.MemberExpr{Operator: ast.Direct, Expression: expr, Identifier: ast.Identifier{Name: name.Lexeme}}, p.spanFrom(start))
		case token.ARROW:
			p.advance()
			name, _ := p.expect(token.IDENTIFIER)
			expr = span.New[ast.Expression](ast.MemberExpr{Operator: ast.Indirect, Expression: expr, Identifier: ast.Identifier{Name: name.Lexeme}}, p.spanFrom(start))
		case token.INCR:
			p.advance()
			expr = span.New[ast.Expression](ast.UnaryOperatorExpr{Operator: ast.PostIncrement, Operand: expr}, p.spanFrom(start))
		case token.DECR:
			p.advance()
			expr = span.New[ast.Expression](ast.UnaryOperatorExpr{Operator: ast.PostDecrement, Operand: expr}, p.spanFrom(start))
		default:
			return expr
		}
	}
}

func (p *Parser) parsePrimaryExpression() span.Spanned[ast.Expression] {
	start := p.cur.Offset
	switch p.cur.Type {
	case token.IDENTIFIER:
		name := p.cur.Lexeme
		if p.env.Features().Has(config.FeatureGNU) {
			switch name {
			case "__builtin_offsetof":
				return p.parseOffsetOf(start)
			case "__builtin_va_arg":
				return p.parseVaArg(start)
			}
		}
		p.advance()
		return span.New[ast.Expression](ast.IdentifierExpr{Identifier: ast.Identifier{Name: name}}, p.spanFrom(start))
	case token.INTEGER, token.FLOAT, token.CHAR:
		c := p.parseConstantToken()
		return span.New[ast.Expression](ast.ConstantExpr{Constant: c}, p.spanFrom(start))
	case token.STRING:
		var parts StringLiteralParts
		parts = append(parts, p.cur.Lexeme)
		p.advance()
		for p.curIs(token.STRING) {
			parts = append(parts, p.cur.Lexeme)
			p.advance()
		}
		return span.New[ast.Expression](ast.StringLiteralExpr{Value: ast.StringLiteral(parts)}, p.spanFrom(start))
	case token.GENERIC:
		return p.parseGenericSelection(start)
	case token.LPAREN:
		p.advance()
		if p.curIs(token.LBRACE) {
			stmt := p.parseCompoundStatement()
			p.expect(token.RPAREN)
			return span.New[ast.Expression](ast.StatementExpr{Statement: stmt}, p.spanFrom(start))
		}
		inner := p.parseExpression()
		p.expect(token.RPAREN)
		return span.New[ast.Expression](inner.Node, p.spanFrom(start))
	}
	p.fail("expression")
	p.advance()
	return span.New[ast.Expression](ast.IdentifierExpr{}, p.spanFrom(start))
}

// StringLiteralParts is the slice type parsePrimaryExpression builds
// adjacent string-literal spellings into.
type StringLiteralParts = []string

// parseOffsetOf parses `__builtin_offsetof(type-name, member-designator)`.
func (p *Parser) parseOffsetOf(start int) span.Spanned[ast.Expression] {
	p.advance() // identifier
	p.expect(token.LPAREN)
	tn := p.parseTypeName()
	p.expect(token.COMMA)
	base, _ := p.expect(token.IDENTIFIER)
	designator := ast.OffsetDesignator{Base: ast.Identifier{Name: base.Lexeme}}
	for {
		switch p.cur.Type {
		case token.DOT:
			p.advance()
			member, _ := p.expect(token.IDENTIFIER)
			designator.Path = append(designator.Path, ast.OffsetMemberStep{Operator: ast.Direct, Identifier: ast.Identifier{Name: member.Lexeme}})
		case token.ARROW:
			p.advance()
			member, _ := p.expect(token.IDENTIFIER)
			designator.Path = append(designator.Path, ast.OffsetMemberStep{Operator: ast.Indirect, Identifier: ast.Identifier{Name: member.Lexeme}})
		case token.LBRACKET:
			p.advance()
			idx := p.parseExpression()
			p.expect(token.RBRACKET)
			designator.Path = append(designator.Path, ast.OffsetIndexStep{Expression: idx})
		default:
			p.expect(token.RPAREN)
			return span.New[ast.Expression](ast.OffsetOfExpr{TypeName: tn, Designator: designator}, p.spanFrom(start))
		}
	}
}

// parseVaArg parses `__builtin_va_arg(va_list, type-name)`.
func (p *Parser) parseVaArg(start int) span.Spanned[ast.Expression] {
	p.advance() // identifier
	p.expect(token.LPAREN)
	vaList := p.parseAssignmentExpression()
	p.expect(token.COMMA)
	tn := p.parseTypeName()
	p.expect(token.RPAREN)
	return span.New[ast.Expression](ast.VaArgExpr{VaList: vaList, TypeName: tn}, p.spanFrom(start))
}

func (p *Parser) parseGenericSelection(start int) span.Spanned[ast.Expression] {
	p.advance() // _Generic
	p.expect(token.LPAREN)
	controlling := p.parseAssignmentExpression()
	var assocs []ast.GenericAssociation
	for p.curIs(token.COMMA) {
		p.advance()
		var a ast.GenericAssociation
		if p.curIs(token.DEFAULT) {
			p.advance()
		} else {
			tn := p.parseTypeName()
			a.TypeName = &tn
		}
		p.expect(token.COLON)
		expr := p.parseAssignmentExpression()
		a.Expr = expr
		assocs = append(assocs, a)
	}
	p.expect(token.RPAREN)
	return span.New[ast.Expression](ast.GenericSelectionExpr{Controlling: controlling, Associations: assocs}, p.spanFrom(start))
}
