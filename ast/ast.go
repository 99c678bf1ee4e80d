// Package ast defines the C abstract syntax tree: a sum-of-products
// tree of expressions, declarations, statements, and types, with every
// node reachable from a translation unit wrapped in a span.Spanned
// envelope by the parser that built it.
package ast

import "github.com/funvibe/cparse/span"

// Identifier is a bare name: a variable, a tag, a label, a member.
type Identifier struct {
	Name string
}

// StringLiteral is an ordered sequence of adjacent string-literal
// source spellings; adjacent-string concatenation is syntactic, so
// "foo" "bar" is a two-element literal, not a pre-concatenated one.
type StringLiteral []string

// IntegerBase records which radix an integer constant's source
// spelling used, since the lexeme (including suffix) is preserved
// verbatim rather than evaluated.
type IntegerBase int

const (
	Decimal IntegerBase = iota
	Octal
	Hexadecimal
)

// FloatBase records whether a floating constant was written in
// decimal or C99 hexadecimal-float form.
type FloatBase int

const (
	FloatDecimal FloatBase = iota
	FloatHexadecimal
)

// Constant is a lexical constant: an integer, a float, or a character
// constant, each preserving its full original spelling (suffixes,
// encoding prefixes) rather than an evaluated value.
type Constant interface {
	constantNode()
}

// IntegerConstant is a numeric integer constant in the given base,
// including any integer-suffix (u/l/ll, any case/order).
type IntegerConstant struct {
	Base  IntegerBase
	Value string
}

// FloatConstant is a floating constant, including any suffix and
// exponent form.
type FloatConstant struct {
	Base  FloatBase
	Value string
}

// CharacterConstant is a character constant's full source spelling,
// including the surrounding quotes and any encoding prefix
// (L'x', u'x', U'x', u8'x').
type CharacterConstant struct {
	Value string
}

func (IntegerConstant) constantNode()   {}
func (FloatConstant) constantNode()     {}
func (CharacterConstant) constantNode() {}

// BlockItem is one element of a compound statement's body: a nested
// declaration, a static assertion, or a statement.
type BlockItem interface {
	blockItemNode()
}

// DeclarationItem is a declaration appearing inside a block.
type DeclarationItem struct {
	Declaration span.Spanned[*Declaration]
}

// StaticAssertItem is a `_Static_assert` appearing inside a block.
type StaticAssertItem struct {
	StaticAssert span.Spanned[*StaticAssert]
}

// StatementItem is an ordinary statement inside a block.
type StatementItem struct {
	Statement span.Spanned[Statement]
}

func (DeclarationItem) blockItemNode()   {}
func (StaticAssertItem) blockItemNode()  {}
func (StatementItem) blockItemNode()     {}

// StaticAssert is a `_Static_assert(expression, "message")`.
type StaticAssert struct {
	Expression span.Spanned[Expression]
	Message    StringLiteral
}

// TranslationUnit is the root of the tree: an ordered sequence of
// top-level declarations and function definitions.
type TranslationUnit struct {
	ExternalDeclarations []span.Spanned[ExternalDeclaration]
}

// ExternalDeclaration is one top-level construct: a declaration, a
// static assertion, or a function definition.
type ExternalDeclaration interface {
	externalDeclarationNode()
}

// DeclarationExternal is a top-level declaration.
type DeclarationExternal struct {
	Declaration *Declaration
}

// StaticAssertExternal is a top-level `_Static_assert`.
type StaticAssertExternal struct {
	StaticAssert *StaticAssert
}

// FunctionDefinitionExternal is a function definition, in either
// modern prototype form or K&R form (Declarations is non-empty only
// for the K&R form, where parameter types are declared separately
// between the parameter-name list and the function body).
type FunctionDefinitionExternal struct {
	Definition *FunctionDefinition
}

func (DeclarationExternal) externalDeclarationNode()       {}
func (StaticAssertExternal) externalDeclarationNode()      {}
func (FunctionDefinitionExternal) externalDeclarationNode() {}

// FunctionDefinition is a function body together with the specifiers
// and declarator that introduce it.
type FunctionDefinition struct {
	Specifiers   []span.Spanned[DeclarationSpecifier]
	Declarator   span.Spanned[*Declarator]
	Declarations []span.Spanned[*Declaration]
	Body         span.Spanned[Statement]
}
