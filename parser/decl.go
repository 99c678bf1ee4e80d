package parser

import (
	"github.com/funvibe/cparse/ast"
	"github.com/funvibe/cparse/config"
	"github.com/funvibe/cparse/span"
	"github.com/funvibe/cparse/token"
)

// parseDeclaration parses `declaration-specifiers init-declarator-list?`
// (the caller consumes the trailing `;`) and registers each declared
// name with the Environment as soon as its init-declarator has been
// parsed: a typedef storage class registers each declarator's name as
// a type name, any other (or absent) storage class registers it as an
// ordinary identifier (SPEC_FULL.md §3.7, §11.4 — registrations made so
// far are not rolled back if a later declarator in the same list fails
// to parse).
func (p *Parser) parseDeclaration() span.Spanned[*ast.Declaration] {
	start := p.cur.Offset
	specifiers, isTypedef := p.parseDeclarationSpecifiers()

	decl := &ast.Declaration{Specifiers: specifiers}

	if p.curIs(token.SEMI) {
		return span.New(decl, p.spanFrom(start))
	}

	for {
		id := p.parseInitDeclarator()
		decl.Declarators = append(decl.Declarators, id)
		p.registerDeclaredName(id, isTypedef)
		if !p.curIs(token.COMMA) {
			break
		}
		p.advance()
	}

	return span.New(decl, p.spanFrom(start))
}

// registerDeclaredName extracts the declared identifier from a
// declarator's core and records it in the Environment.
func (p *Parser) registerDeclaredName(id ast.InitDeclarator, isTypedef bool) {
	name, ok := declaredName(id.Declarator.Node)
	if !ok {
		return
	}
	if isTypedef {
		p.env.AddTypename(name)
	} else {
		p.env.AddIdent(name)
	}
}

func declaredName(d *ast.Declarator) (string, bool) {
	switch k := d.Kind.(type) {
	case ast.IdentifierDeclaratorKind:
		return k.Identifier.Name, true
	case ast.NestedDeclaratorKind:
		return declaredName(k.Declarator.Node)
	}
	return "", false
}

// parseDeclarationSpecifiers parses the unordered
// declaration-specifier sequence (SPEC_FULL.md §3.4, §9) and reports
// whether a `typedef` storage-class specifier was among them.
func (p *Parser) parseDeclarationSpecifiers() ([]span.Spanned[ast.DeclarationSpecifier], bool) {
	var specifiers []span.Spanned[ast.DeclarationSpecifier]
	isTypedef := false
	hasTypeSpecifier := false

	for {
		start := p.cur.Offset
		switch p.cur.Type {
		case token.TYPEDEF, token.EXTERN, token.STATIC, token.THREAD_LOCAL, token.AUTO, token.REGISTER:
			class := storageClassFor(p.cur.Type)
			if class == ast.Typedef {
				isTypedef = true
			}
			p.advance()
			specifiers = append(specifiers, span.New[ast.DeclarationSpecifier](ast.StorageClassSpecifier{Class: class}, p.spanFrom(start)))
			continue
		case token.CONST, token.RESTRICT, token.VOLATILE, token.NULLABLE, token.NONNULL, token.NULL_UNSPEC:
			q := typeQualifierFor(p.cur.Type)
			p.advance()
			specifiers = append(specifiers, span.New[ast.DeclarationSpecifier](ast.TypeQualifierSpecifier{Qualifier: q}, p.spanFrom(start)))
			continue
		case token.ATOMIC:
			// `_Atomic` alone is a qualifier; `_Atomic(type-name)` is a specifier.
			if p.peekIs(token.LPAREN) {
				p.advance()
				p.advance()
				tn := p.parseTypeName()
				p.expect(token.RPAREN)
				specifiers = append(specifiers, span.New[ast.DeclarationSpecifier](ast.AtomicTypeSpecifier{TypeName: tn}, p.spanFrom(start)))
				hasTypeSpecifier = true
			} else {
				p.advance()
				specifiers = append(specifiers, span.New[ast.DeclarationSpecifier](ast.TypeQualifierSpecifier{Qualifier: ast.AtomicQualifier}, p.spanFrom(start)))
			}
			continue
		case token.INLINE, token.NORETURN:
			kind := ast.Inline
			if p.cur.Type == token.NORETURN {
				kind = ast.Noreturn
			}
			p.advance()
			specifiers = append(specifiers, span.New[ast.DeclarationSpecifier](ast.FunctionSpecifierNode{Kind: kind}, p.spanFrom(start)))
			continue
		case token.ALIGNAS:
			p.advance()
			p.expect(token.LPAREN)
			var node ast.AlignmentSpecifierNode
			if p.startsTypeNameHere() {
				tn := p.parseTypeName()
				node.TypeName = &tn
			} else {
				e := p.parseAssignmentExpression()
				node.Expr = &e
			}
			p.expect(token.RPAREN)
			specifiers = append(specifiers, span.New[ast.DeclarationSpecifier](node, p.spanFrom(start)))
			continue
		case token.VOID:
			p.advance()
			specifiers = append(specifiers, span.New[ast.DeclarationSpecifier](ast.VoidSpecifier{}, p.spanFrom(start)))
			hasTypeSpecifier = true
			continue
		case token.CHAR_KW:
			p.advance()
			specifiers = append(specifiers, span.New[ast.DeclarationSpecifier](ast.CharSpecifier{}, p.spanFrom(start)))
			hasTypeSpecifier = true
			continue
		case token.SHORT:
			p.advance()
			specifiers = append(specifiers, span.New[ast.DeclarationSpecifier](ast.ShortSpecifier{}, p.spanFrom(start)))
			hasTypeSpecifier = true
			continue
		case token.INT:
			p.advance()
			specifiers = append(specifiers, span.New[ast.DeclarationSpecifier](ast.IntSpecifier{}, p.spanFrom(start)))
			hasTypeSpecifier = true
			continue
		case token.LONG:
			p.advance()
			specifiers = append(specifiers, span.New[ast.DeclarationSpecifier](ast.LongSpecifier{}, p.spanFrom(start)))
			hasTypeSpecifier = true
			continue
		case token.FLOAT_KW:
			p.advance()
			specifiers = append(specifiers, span.New[ast.DeclarationSpecifier](ast.FloatSpecifier{}, p.spanFrom(start)))
			hasTypeSpecifier = true
			continue
		case token.DOUBLE:
			p.advance()
			specifiers = append(specifiers, span.New[ast.DeclarationSpecifier](ast.DoubleSpecifier{}, p.spanFrom(start)))
			hasTypeSpecifier = true
			continue
		case token.SIGNED:
			p.advance()
			specifiers = append(specifiers, span.New[ast.DeclarationSpecifier](ast.SignedSpecifier{}, p.spanFrom(start)))
			hasTypeSpecifier = true
			continue
		case token.UNSIGNED:
			p.advance()
			specifiers = append(specifiers, span.New[ast.DeclarationSpecifier](ast.UnsignedSpecifier{}, p.spanFrom(start)))
			hasTypeSpecifier = true
			continue
		case token.BOOL:
			p.advance()
			specifiers = append(specifiers, span.New[ast.DeclarationSpecifier](ast.BoolSpecifier{}, p.spanFrom(start)))
			hasTypeSpecifier = true
			continue
		case token.COMPLEX:
			p.advance()
			specifiers = append(specifiers, span.New[ast.DeclarationSpecifier](ast.ComplexSpecifier{}, p.spanFrom(start)))
			hasTypeSpecifier = true
			continue
		case token.FLOAT16:
			p.advance()
			specifiers = append(specifiers, span.New[ast.DeclarationSpecifier](ast.Float16Specifier{}, p.spanFrom(start)))
			hasTypeSpecifier = true
			continue
		case token.INT128:
			p.advance()
			specifiers = append(specifiers, span.New[ast.DeclarationSpecifier](ast.Int128Specifier{}, p.spanFrom(start)))
			hasTypeSpecifier = true
			continue
		case token.DECIMAL32:
			p.advance()
			specifiers = append(specifiers, span.New[ast.DeclarationSpecifier](ast.Decimal32Specifier{}, p.spanFrom(start)))
			hasTypeSpecifier = true
			continue
		case token.DECIMAL64:
			p.advance()
			specifiers = append(specifiers, span.New[ast.DeclarationSpecifier](ast.Decimal64Specifier{}, p.spanFrom(start)))
			hasTypeSpecifier = true
			continue
		case token.DECIMAL128:
			p.advance()
			specifiers = append(specifiers, span.New[ast.DeclarationSpecifier](ast.Decimal128Specifier{}, p.spanFrom(start)))
			hasTypeSpecifier = true
			continue
		case token.STRUCT, token.UNION:
			st := p.parseStructOrUnionSpecifier()
			specifiers = append(specifiers, span.New[ast.DeclarationSpecifier](ast.StructSpecifier{Struct: st}, p.spanFrom(start)))
			hasTypeSpecifier = true
			continue
		case token.ENUM:
			et := p.parseEnumSpecifier()
			specifiers = append(specifiers, span.New[ast.DeclarationSpecifier](ast.EnumSpecifier{Enum: et}, p.spanFrom(start)))
			hasTypeSpecifier = true
			continue
		case token.TYPEOF:
			p.advance()
			p.expect(token.LPAREN)
			var node ast.TypeOfSpecifier
			if p.startsTypeNameHere() {
				tn := p.parseTypeName()
				node.Kind = ast.TypeOfType
				node.TypeName = &tn
			} else {
				e := p.parseExpression()
				node.Kind = ast.TypeOfExpression
				node.Expr = &e
			}
			p.expect(token.RPAREN)
			specifiers = append(specifiers, span.New[ast.DeclarationSpecifier](node, p.spanFrom(start)))
			hasTypeSpecifier = true
			continue
		case token.EXTENSION, token.ATTRIBUTE:
			exts := p.parseExtensionList()
			specifiers = append(specifiers, span.New[ast.DeclarationSpecifier](ast.ExtensionSpecifiers{Extensions: exts}, p.spanFrom(start)))
			continue
		case token.IDENTIFIER:
			// An identifier is a type-specifier only if it names a typename
			// and no type-specifier has been accepted into this list yet:
			// once one has, a further typename-shaped identifier is the
			// declarator being declared, not a second specifier
			// (`typedef int foo; int foo;` must parse `foo` as the
			// declarator, not as a second TypedefNameSpecifier).
			if !hasTypeSpecifier && p.env.IsTypename(p.cur.Lexeme) {
				name := p.cur.Lexeme
				p.advance()
				specifiers = append(specifiers, span.New[ast.DeclarationSpecifier](ast.TypedefNameSpecifier{Identifier: ast.Identifier{Name: name}}, p.spanFrom(start)))
				hasTypeSpecifier = true
				continue
			}
		}
		break
	}

	if len(specifiers) == 0 {
		p.fail("declaration specifier")
	}
	return specifiers, isTypedef
}

func (p *Parser) startsTypeNameHere() bool {
	return startsDeclarationSpecifier(p.cur, p.env)
}

func storageClassFor(t token.Type) ast.StorageClass {
	switch t {
	case token.TYPEDEF:
		return ast.Typedef
	case token.EXTERN:
		return ast.Extern
	case token.STATIC:
		return ast.Static
	case token.THREAD_LOCAL:
		return ast.ThreadLocal
	case token.AUTO:
		return ast.Auto
	case token.REGISTER:
		return ast.Register
	}
	panic("parser: not a storage class token")
}

func typeQualifierFor(t token.Type) ast.TypeQualifier {
	switch t {
	case token.CONST:
		return ast.Const
	case token.RESTRICT:
		return ast.Restrict
	case token.VOLATILE:
		return ast.Volatile
	case token.NULLABLE:
		return ast.Nullable
	case token.NONNULL:
		return ast.Nonnull
	case token.NULL_UNSPEC:
		return ast.NullUnspecified
	}
	panic("parser: not a type qualifier token")
}

// parseExtensionList parses a run of `__extension__` markers and
// `__attribute__((...))` groups.
func (p *Parser) parseExtensionList() []ast.Extension {
	var exts []ast.Extension
	for {
		switch p.cur.Type {
		case token.EXTENSION:
			p.advance()
		case token.ATTRIBUTE:
			exts = append(exts, p.parseAttributeGroup()...)
		case token.ASM:
			exts = append(exts, p.parseAsmLabel())
		default:
			return exts
		}
	}
}

// parseAttributeGroup parses `__attribute__((attr, attr(args), ...))`.
func (p *Parser) parseAttributeGroup() []ast.Extension {
	p.advance() // __attribute__
	p.expect(token.LPAREN)
	p.expect(token.LPAREN)
	var exts []ast.Extension
	for !p.curIs(token.RPAREN) && !p.curIs(token.EOF) {
		exts = append(exts, p.parseOneAttribute())
		if p.curIs(token.COMMA) {
			p.advance()
			continue
		}
		break
	}
	p.expect(token.RPAREN)
	p.expect(token.RPAREN)
	return exts
}

func (p *Parser) parseOneAttribute() ast.Extension {
	nameTok, _ := p.expect(token.IDENTIFIER)
	name := nameTok.Lexeme

	if name == "availability" && p.curIs(token.LPAREN) {
		return p.parseAvailability()
	}

	var args []span.Spanned[ast.Expression]
	if p.curIs(token.LPAREN) {
		p.advance()
		for !p.curIs(token.RPAREN) && !p.curIs(token.EOF) {
			// A bare identifier argument (e.g. `packed`) is accepted
			// even where it wouldn't otherwise be a valid primary
			// expression (SPEC_FULL.md §11.3).
			args = append(args, p.parseAssignmentExpression())
			if p.curIs(token.COMMA) {
				p.advance()
				continue
			}
			break
		}
		p.expect(token.RPAREN)
	}
	return ast.AttributeExtension{Name: name, Arguments: args}
}

func (p *Parser) parseAvailability() ast.Extension {
	p.advance() // (
	platform, _ := p.expect(token.IDENTIFIER)
	ext := ast.AvailabilityExtension{Platform: platform.Lexeme}
	for p.curIs(token.COMMA) {
		p.advance()
		key, _ := p.expect(token.IDENTIFIER)
		clause := ast.AvailabilityClause{Key: key.Lexeme}
		if p.curIs(token.ASSIGN) {
			p.advance()
			switch p.cur.Type {
			case token.IDENTIFIER, token.INTEGER, token.FLOAT, token.STRING:
				clause.Value = p.cur.Lexeme
				p.advance()
			}
		}
		ext.Clauses = append(ext.Clauses, clause)
	}
	p.expect(token.RPAREN)
	return ext
}

func (p *Parser) parseAsmLabel() ast.Extension {
	p.advance() // asm
	p.expect(token.LPAREN)
	var parts []string
	str, _ := p.expect(token.STRING)
	parts = append(parts, str.Lexeme)
	p.expect(token.RPAREN)
	return ast.AsmLabelExtension{Label: ast.StringLiteral(parts)}
}

// parseInitDeclarator parses `declarator initializer?`.
func (p *Parser) parseInitDeclarator() ast.InitDeclarator {
	d := p.parseDeclarator()
	var init *span.Spanned[ast.Initializer]
	if p.curIs(token.ASSIGN) {
		p.advance()
		v := p.parseInitializer()
		init = &v
	}
	return ast.InitDeclarator{Declarator: d, Initializer: init}
}

// parseDeclarator parses a declarator, concrete or abstract: its
// pointer prefix, core (absent for an abstract declarator), and
// trailing array/function derivations.
func (p *Parser) parseDeclarator() span.Spanned[*ast.Declarator] {
	start := p.cur.Offset
	var pointers []ast.DerivedDeclarator
	for p.curIs(token.STAR) {
		p.advance()
		pointers = append(pointers, ast.PointerDerived{Qualifiers: p.parsePointerQualifiers()})
	}

	core := p.parseDirectDeclarator()
	// Stored in application order, innermost to outermost: the
	// direct-declarator's own array/function suffixes bind to the core
	// first, so they precede the pointer-chain prefix in Derived (e.g.
	// `int *p[3]` is derived = [Array, Pointer], SPEC_FULL.md §4.5).
	core.Node.Derived = append(core.Node.Derived, pointers...)
	core.Node.Extensions = append(core.Node.Extensions, p.parseExtensionList()...)
	return span.New(core.Node, p.spanFrom(start))
}

func (p *Parser) parsePointerQualifiers() []ast.PointerQualifier {
	var quals []ast.PointerQualifier
	for {
		switch p.cur.Type {
		case token.CONST, token.RESTRICT, token.VOLATILE, token.NULLABLE, token.NONNULL, token.NULL_UNSPEC:
			q := typeQualifierFor(p.cur.Type)
			p.advance()
			quals = append(quals, ast.TypeQualifierSpecifier{Qualifier: q})
		case token.ATTRIBUTE:
			for _, e := range p.parseAttributeGroup() {
				quals = append(quals, ast.ExtensionPointerQualifier{Extension: e})
			}
		default:
			return quals
		}
	}
}

// parseDirectDeclarator parses the core (identifier or parenthesized
// nested declarator) plus any array/function derivations.
func (p *Parser) parseDirectDeclarator() span.Spanned[*ast.Declarator] {
	start := p.cur.Offset
	d := &ast.Declarator{}

	switch {
	case p.curIs(token.IDENTIFIER):
		d.Kind = ast.IdentifierDeclaratorKind{Identifier: ast.Identifier{Name: p.cur.Lexeme}}
		p.advance()
	case p.curIs(token.LPAREN):
		p.advance()
		nested := p.parseDeclarator()
		p.expect(token.RPAREN)
		d.Kind = ast.NestedDeclaratorKind{Declarator: nested}
	default:
		d.Kind = ast.AbstractDeclaratorKind{}
	}

	for {
		switch p.cur.Type {
		case token.LBRACKET:
			d.Derived = append(d.Derived, p.parseArrayDerivation())
		case token.LPAREN:
			d.Derived = append(d.Derived, p.parseFunctionDerivation())
		default:
			return span.New(d, p.spanFrom(start))
		}
	}
}

// parseArrayDerivation parses a `[...]` array derivation. C11 §6.7.6.2
// allows `static` either before the qualifier list (`[static const 10]`)
// or after it (`[const static 10]`); the two orderings are semantically
// identical but the grammar distinguishes them syntactically, so the
// AST keeps StaticExpressionArraySize and StaticVariableExpressionArraySize
// as separate forms (SPEC_FULL.md §3.4) rather than collapsing them.
func (p *Parser) parseArrayDerivation() ast.DerivedDeclarator {
	p.advance() // [
	staticFirst := false
	if p.curIs(token.STATIC) {
		staticFirst = true
		p.advance()
	}
	var quals []ast.TypeQualifier
	for p.cur.Type == token.CONST || p.cur.Type == token.RESTRICT || p.cur.Type == token.VOLATILE {
		quals = append(quals, typeQualifierFor(p.cur.Type))
		p.advance()
	}
	staticAfter := false
	if !staticFirst && p.curIs(token.STATIC) {
		staticAfter = true
		p.advance()
	}
	isStatic := staticFirst || staticAfter

	var size ast.ArraySize
	switch {
	case p.curIs(token.RBRACKET):
		size = ast.UnknownArraySize{}
	case p.curIs(token.STAR) && !isStatic:
		p.advance()
		size = ast.VariableUnknownArraySize{}
	default:
		e := p.parseAssignmentExpression()
		switch {
		case staticAfter:
			size = ast.StaticVariableExpressionArraySize{Expression: e}
		case staticFirst:
			size = ast.StaticExpressionArraySize{Expression: e}
		default:
			size = ast.VariableExpressionArraySize{Expression: e}
		}
	}
	p.expect(token.RBRACKET)
	return ast.ArrayDerived{Qualifiers: quals, Size: size}
}

// parseFunctionDerivation parses `( parameter-type-list | identifier-list? )`.
func (p *Parser) parseFunctionDerivation() ast.DerivedDeclarator {
	p.advance() // (
	p.env.EnterScope()
	defer p.env.ExitScope()

	if p.curIs(token.RPAREN) {
		p.advance()
		return ast.FunctionDerived{}
	}

	// `(void)` is preserved literally as a single void parameter.
	if p.curIs(token.VOID) && p.peekIs(token.RPAREN) {
		start := p.cur.Offset
		p.advance()
		p.advance()
		return ast.FunctionDerived{Parameters: []ast.ParameterDeclaration{{
			Specifiers: []span.Spanned[ast.DeclarationSpecifier]{span.New[ast.DeclarationSpecifier](ast.VoidSpecifier{}, p.spanUpTo(start, start+4))},
			Declarator: span.Unspanned[*ast.Declarator](&ast.Declarator{Kind: ast.AbstractDeclaratorKind{}}),
		}}}
	}

	if p.curIs(token.IDENTIFIER) && !p.env.IsTypename(p.cur.Lexeme) {
		// Could be a K&R identifier-list, unless the next token shows
		// this is actually the start of a parameter-type-list whose
		// first parameter happens to be a single bare identifier used
		// as an (invalid outside env) type — in standard grammars a
		// bare non-typedef identifier in a parameter list can only be
		// a K&R name, so commit to that reading.
		var idents []ast.Identifier
		for {
			name, _ := p.expect(token.IDENTIFIER)
			idents = append(idents, ast.Identifier{Name: name.Lexeme})
			if p.curIs(token.COMMA) {
				p.advance()
				continue
			}
			break
		}
		p.expect(token.RPAREN)
		return ast.KRFunctionDerived{Identifiers: idents}
	}

	var params []ast.ParameterDeclaration
	ellipsis := false
	for {
		if p.curIs(token.ELLIPSIS) {
			ellipsis = true
			p.advance()
			break
		}
		specifiers, _ := p.parseDeclarationSpecifiers()
		declarator := p.parseDeclarator()
		params = append(params, ast.ParameterDeclaration{Specifiers: specifiers, Declarator: declarator})
		if !p.curIs(token.COMMA) {
			break
		}
		p.advance()
	}
	p.expect(token.RPAREN)
	return ast.FunctionDerived{Parameters: params, Ellipsis: ellipsis}
}

// parseTypeName parses a specifier-qualifier-list followed by an
// (abstract) declarator, as used in casts, sizeof, _Generic, and
// compound literals.
func (p *Parser) parseTypeName() span.Spanned[*ast.TypeName] {
	start := p.cur.Offset
	specifiers, _ := p.parseDeclarationSpecifiers()
	declarator := p.parseDeclarator()
	return span.New(&ast.TypeName{Specifiers: specifiers, Declarator: declarator}, p.spanFrom(start))
}

// parseStructOrUnionSpecifier parses `struct|union identifier? ( {
// struct-declaration-list } )?`.
func (p *Parser) parseStructOrUnionSpecifier() *ast.StructType {
	kind := ast.Struct
	if p.curIs(token.UNION) {
		kind = ast.Union
	}
	p.advance()

	var ident *ast.Identifier
	if p.curIs(token.IDENTIFIER) {
		ident = &ast.Identifier{Name: p.cur.Lexeme}
		p.advance()
	}

	if !p.curIs(token.LBRACE) {
		return &ast.StructType{Kind: kind, Identifier: ident}
	}

	p.advance() // {
	p.env.EnterScope()
	defer p.env.ExitScope()

	var decls []span.Spanned[ast.StructDeclaration]
	for !p.curIs(token.RBRACE) && !p.curIs(token.EOF) {
		decls = append(decls, p.parseStructDeclaration())
	}
	p.expect(token.RBRACE)

	return &ast.StructType{Kind: kind, Identifier: ident, Declarations: &decls}
}

func (p *Parser) parseStructDeclaration() span.Spanned[ast.StructDeclaration] {
	start := p.cur.Offset

	if p.curIs(token.STATIC_ASSERT) {
		sa := p.parseStaticAssert()
		return span.New[ast.StructDeclaration](ast.StaticAssertStructDeclaration{StaticAssert: sa}, p.spanFrom(start))
	}
	if p.curIs(token.EXTENSION) {
		exts := p.parseExtensionList()
		p.expect(token.SEMI)
		return span.New[ast.StructDeclaration](ast.ExtensionStructDeclaration{Extensions: exts}, p.spanFrom(start))
	}

	specifiers, _ := p.parseDeclarationSpecifiers()
	var declarators []ast.StructDeclarator
	if !p.curIs(token.SEMI) {
		for {
			declarators = append(declarators, p.parseStructDeclarator())
			if !p.curIs(token.COMMA) {
				break
			}
			p.advance()
		}
	}
	p.expect(token.SEMI)
	return span.New[ast.StructDeclaration](ast.FieldDeclaration{Specifiers: specifiers, Declarators: declarators}, p.spanFrom(start))
}

func (p *Parser) parseStructDeclarator() ast.StructDeclarator {
	var sd ast.StructDeclarator
	if !p.curIs(token.COLON) {
		d := p.parseDeclarator()
		sd.Declarator = &d
	}
	if p.curIs(token.COLON) {
		p.advance()
		e := p.parseConditionalOnlyExpression()
		sd.BitWidth = &e
	}
	return sd
}

// parseConditionalOnlyExpression parses a constant-expression
// (conditional-expression grammar rule, excluding comma and
// assignment), the form bit-field widths and array sizes use.
func (p *Parser) parseConditionalOnlyExpression() span.Spanned[ast.Expression] {
	return p.parseBinaryExpression(config.PrecConditional)
}

func (p *Parser) parseStaticAssert() *ast.StaticAssert {
	p.advance() // _Static_assert
	p.expect(token.LPAREN)
	expr := p.parseAssignmentExpression()
	p.expect(token.COMMA)
	msg, _ := p.expect(token.STRING)
	p.expect(token.RPAREN)
	p.expect(token.SEMI)
	return &ast.StaticAssert{Expression: expr, Message: ast.StringLiteral{msg.Lexeme}}
}

// parseEnumSpecifier parses `enum identifier? ( { enumerator-list } )?`.
func (p *Parser) parseEnumSpecifier() *ast.EnumType {
	p.advance() // enum

	var ident *ast.Identifier
	if p.curIs(token.IDENTIFIER) {
		ident = &ast.Identifier{Name: p.cur.Lexeme}
		p.advance()
	}

	if !p.curIs(token.LBRACE) {
		return &ast.EnumType{Identifier: ident}
	}
	p.advance() // {

	var enumerators []ast.Enumerator
	for !p.curIs(token.RBRACE) && !p.curIs(token.EOF) {
		name, _ := p.expect(token.IDENTIFIER)
		p.env.AddIdent(name.Lexeme)
		e := ast.Enumerator{Identifier: ast.Identifier{Name: name.Lexeme}}
		if p.curIs(token.ASSIGN) {
			p.advance()
			v := p.parseConditionalOnlyExpression()
			e.Expression = &v
		}
		enumerators = append(enumerators, e)
		if p.curIs(token.COMMA) {
			p.advance()
			continue
		}
		break
	}
	p.expect(token.RBRACE)
	return &ast.EnumType{Identifier: ident, Enumerators: enumerators}
}

// parseInitializer parses `assignment-expression | { initializer-list ,? }`.
func (p *Parser) parseInitializer() span.Spanned[ast.Initializer] {
	start := p.cur.Offset
	if p.curIs(token.LBRACE) {
		items := p.parseBracedInitializerList()
		return span.New[ast.Initializer](ast.ListInitializer{Items: items}, p.spanFrom(start))
	}
	e := p.parseAssignmentExpression()
	return span.New[ast.Initializer](ast.ExpressionInitializer{Expression: e}, p.spanFrom(start))
}

func (p *Parser) parseBracedInitializerList() []ast.InitializerListItem {
	p.expect(token.LBRACE)
	var items []ast.InitializerListItem
	for !p.curIs(token.RBRACE) && !p.curIs(token.EOF) {
		items = append(items, p.parseInitializerListItem())
		if p.curIs(token.COMMA) {
			p.advance()
			continue
		}
		break
	}
	p.expect(token.RBRACE)
	return items
}

func (p *Parser) parseInitializerListItem() ast.InitializerListItem {
	var designation []ast.Designator
	for {
		switch p.cur.Type {
		case token.LBRACKET:
			p.advance()
			lo := p.parseConditionalOnlyExpression()
			if p.curIs(token.ELLIPSIS) {
				p.advance()
				hi := p.parseConditionalOnlyExpression()
				p.expect(token.RBRACKET)
				designation = append(designation, ast.RangeDesignator{From: lo, To: hi})
				continue
			}
			p.expect(token.RBRACKET)
			designation = append(designation, ast.IndexDesignator{Expression: lo})
		case token.DOT:
			p.advance()
			name, _ := p.expect(token.IDENTIFIER)
			designation = append(designation, ast.MemberDesignator{Identifier: ast.Identifier{Name: name.Lexeme}})
		default:
			if len(designation) > 0 {
				p.expect(token.ASSIGN)
			}
			init := p.parseInitializer()
			return ast.InitializerListItem{Designation: designation, Initializer: init}
		}
	}
}
