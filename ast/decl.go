package ast

import "github.com/funvibe/cparse/span"

// Declaration is `declaration-specifiers init-declarator-list? ;`.
type Declaration struct {
	Specifiers  []span.Spanned[DeclarationSpecifier]
	Declarators []InitDeclarator
}

// DeclarationSpecifier is one element of a declaration-specifier list:
// a storage class, a type specifier, a type qualifier, a function
// specifier, an alignment specifier, or a gathered extension list.
// The list is kept as an unordered slice rather than encoded in the
// type system, matching the grammar's own "declaration-specifiers is
// an unordered sequence" shape (SPEC_FULL.md §9).
type DeclarationSpecifier interface {
	declarationSpecifierNode()
}

// StorageClass enumerates the storage-class specifiers.
type StorageClass int

const (
	Typedef StorageClass = iota
	Extern
	Static
	ThreadLocal
	Auto
	Register
)

// StorageClassSpecifier wraps a StorageClass as a DeclarationSpecifier.
type StorageClassSpecifier struct {
	Class StorageClass
}

// TypeSpecifier is one type-specifier token or construct.
type TypeSpecifier interface {
	typeSpecifierNode()
	declarationSpecifierNode()
}

type (
	VoidSpecifier     struct{}
	CharSpecifier     struct{}
	ShortSpecifier    struct{}
	IntSpecifier      struct{}
	LongSpecifier     struct{}
	FloatSpecifier    struct{}
	DoubleSpecifier   struct{}
	SignedSpecifier   struct{}
	UnsignedSpecifier struct{}
	BoolSpecifier     struct{}
	ComplexSpecifier  struct{}
	// GNU/Clang extended arithmetic-type specifiers (SPEC_FULL.md §11.3).
	Float16Specifier    struct{}
	Int128Specifier     struct{}
	Decimal32Specifier  struct{}
	Decimal64Specifier  struct{}
	Decimal128Specifier struct{}
)

// AtomicTypeSpecifier is `_Atomic(type-name)` used in specifier
// position (as opposed to the `_Atomic` qualifier).
type AtomicTypeSpecifier struct {
	TypeName span.Spanned[*TypeName]
}

// StructSpecifier is a `struct`/`union` specifier, either a reference
// to a previously-defined tag or a definition with a member list.
type StructSpecifier struct {
	Struct *StructType
}

// EnumSpecifier is an `enum` specifier.
type EnumSpecifier struct {
	Enum *EnumType
}

// TypedefNameSpecifier is a bare identifier used as a type specifier
// because the Environment resolved it to a typedef name at parse time.
type TypedefNameSpecifier struct {
	Identifier Identifier
}

// TypeOfKind distinguishes `typeof(expr)` from `typeof(type-name)`.
type TypeOfKind int

const (
	TypeOfExpression TypeOfKind = iota
	TypeOfType
)

// TypeOfSpecifier is the GNU `typeof` extension.
type TypeOfSpecifier struct {
	Kind     TypeOfKind
	Expr     *span.Spanned[Expression]
	TypeName *span.Spanned[*TypeName]
}

func (VoidSpecifier) typeSpecifierNode()        {}
func (CharSpecifier) typeSpecifierNode()        {}
func (ShortSpecifier) typeSpecifierNode()       {}
func (IntSpecifier) typeSpecifierNode()         {}
func (LongSpecifier) typeSpecifierNode()        {}
func (FloatSpecifier) typeSpecifierNode()       {}
func (DoubleSpecifier) typeSpecifierNode()      {}
func (SignedSpecifier) typeSpecifierNode()      {}
func (UnsignedSpecifier) typeSpecifierNode()    {}
func (BoolSpecifier) typeSpecifierNode()        {}
func (ComplexSpecifier) typeSpecifierNode()     {}
func (Float16Specifier) typeSpecifierNode()     {}
func (Int128Specifier) typeSpecifierNode()      {}
func (Decimal32Specifier) typeSpecifierNode()   {}
func (Decimal64Specifier) typeSpecifierNode()   {}
func (Decimal128Specifier) typeSpecifierNode()  {}
func (AtomicTypeSpecifier) typeSpecifierNode()  {}
func (StructSpecifier) typeSpecifierNode()      {}
func (EnumSpecifier) typeSpecifierNode()        {}
func (TypedefNameSpecifier) typeSpecifierNode() {}
func (TypeOfSpecifier) typeSpecifierNode()      {}

func (VoidSpecifier) declarationSpecifierNode()        {}
func (CharSpecifier) declarationSpecifierNode()        {}
func (ShortSpecifier) declarationSpecifierNode()       {}
func (IntSpecifier) declarationSpecifierNode()         {}
func (LongSpecifier) declarationSpecifierNode()        {}
func (FloatSpecifier) declarationSpecifierNode()       {}
func (DoubleSpecifier) declarationSpecifierNode()      {}
func (SignedSpecifier) declarationSpecifierNode()      {}
func (UnsignedSpecifier) declarationSpecifierNode()    {}
func (BoolSpecifier) declarationSpecifierNode()        {}
func (ComplexSpecifier) declarationSpecifierNode()     {}
func (Float16Specifier) declarationSpecifierNode()     {}
func (Int128Specifier) declarationSpecifierNode()      {}
func (Decimal32Specifier) declarationSpecifierNode()   {}
func (Decimal64Specifier) declarationSpecifierNode()   {}
func (Decimal128Specifier) declarationSpecifierNode()  {}
func (AtomicTypeSpecifier) declarationSpecifierNode()  {}
func (StructSpecifier) declarationSpecifierNode()      {}
func (EnumSpecifier) declarationSpecifierNode()        {}
func (TypedefNameSpecifier) declarationSpecifierNode() {}
func (TypeOfSpecifier) declarationSpecifierNode()      {}
func (StorageClassSpecifier) declarationSpecifierNode() {}
func (TypeQualifierSpecifier) declarationSpecifierNode() {}
func (FunctionSpecifierNode) declarationSpecifierNode()  {}
func (AlignmentSpecifierNode) declarationSpecifierNode() {}
func (ExtensionSpecifiers) declarationSpecifierNode()    {}

// TypeQualifier enumerates the type qualifiers.
type TypeQualifier int

const (
	Const TypeQualifier = iota
	Restrict
	Volatile
	AtomicQualifier
	Nonnull
	NullUnspecified
	Nullable
)

// TypeQualifierSpecifier wraps a TypeQualifier as a
// DeclarationSpecifier (and, separately, as a PointerQualifier).
type TypeQualifierSpecifier struct {
	Qualifier TypeQualifier
}

// FunctionSpecifierKind enumerates the function specifiers.
type FunctionSpecifierKind int

const (
	Inline FunctionSpecifierKind = iota
	Noreturn
)

// FunctionSpecifierNode wraps a FunctionSpecifierKind as a
// DeclarationSpecifier.
type FunctionSpecifierNode struct {
	Kind FunctionSpecifierKind
}

// AlignmentSpecifierNode is `_Alignas(type-name)` or
// `_Alignas(expression)`.
type AlignmentSpecifierNode struct {
	TypeName *span.Spanned[*TypeName]
	Expr     *span.Spanned[Expression]
}

// ExtensionSpecifiers gathers `__attribute__`/`__extension__` tokens
// that appear at specifier position (as opposed to attached to a
// particular declarator).
type ExtensionSpecifiers struct {
	Extensions []Extension
}

// PointerQualifier is either a type qualifier or an attribute
// attached directly to a `*` in a pointer derived-declarator.
type PointerQualifier interface {
	pointerQualifierNode()
}

func (TypeQualifierSpecifier) pointerQualifierNode() {}

// ExtensionPointerQualifier wraps an Extension used as a pointer
// qualifier.
type ExtensionPointerQualifier struct {
	Extension Extension
}

func (ExtensionPointerQualifier) pointerQualifierNode() {}

// Extension is a GNU/Clang extension attached at one of the four
// attachment points the grammar allows: specifier position, a
// declarator, a pointer's qualifier list, or a struct/union member
// list.
type Extension interface {
	extensionNode()
}

// AttributeExtension is `__attribute__((name(args...)))`.
type AttributeExtension struct {
	Name      string
	Arguments []span.Spanned[Expression]
}

// AsmLabelExtension is the trailing `asm("label")` on a declarator.
type AsmLabelExtension struct {
	Label StringLiteral
}

// AvailabilityClause is one `key=value` (or bare `key`) clause inside
// a Clang `availability` attribute.
type AvailabilityClause struct {
	Key   string
	Value string
}

// AvailabilityExtension is Clang's
// `__attribute__((availability(platform, clause, ...)))`.
type AvailabilityExtension struct {
	Platform string
	Clauses  []AvailabilityClause
}

func (AttributeExtension) extensionNode()     {}
func (AsmLabelExtension) extensionNode()      {}
func (AvailabilityExtension) extensionNode()  {}

// DeclaratorKind is the core of a declarator: either abstract (no
// name), a plain identifier, or a parenthesized nested declarator.
type DeclaratorKind interface {
	declaratorKindNode()
}

type AbstractDeclaratorKind struct{}

type IdentifierDeclaratorKind struct {
	Identifier Identifier
}

type NestedDeclaratorKind struct {
	Declarator span.Spanned[*Declarator]
}

func (AbstractDeclaratorKind) declaratorKindNode()   {}
func (IdentifierDeclaratorKind) declaratorKindNode() {}
func (NestedDeclaratorKind) declaratorKindNode()     {}

// Declarator is a declarator's core plus its chain of derived-type
// constructors (pointer/array/function) and any attached extensions.
// Derivation order in Derived is application order, innermost to
// outermost: a direct-declarator's own array/function suffixes precede
// the pointer-chain prefix (so `int *p[3]` is derived = [Array,
// Pointer]), which the declaration parser is responsible for building
// correctly (see SPEC_FULL.md §4.5).
type Declarator struct {
	Kind       DeclaratorKind
	Derived    []DerivedDeclarator
	Extensions []Extension
}

// DerivedDeclarator is one pointer/array/function constructor layered
// onto a declarator core.
type DerivedDeclarator interface {
	derivedDeclaratorNode()
}

// PointerDerived is a `*` with its qualifier list.
type PointerDerived struct {
	Qualifiers []PointerQualifier
}

// ArraySize is the bracketed size expression of an array declarator.
type ArraySize interface {
	arraySizeNode()
}

type (
	UnknownArraySize                struct{}
	VariableUnknownArraySize        struct{} // `[*]`
	VariableExpressionArraySize     struct{ Expression span.Spanned[Expression] }
	StaticExpressionArraySize       struct{ Expression span.Spanned[Expression] }
	StaticVariableExpressionArraySize struct{ Expression span.Spanned[Expression] }
)

func (UnknownArraySize) arraySizeNode()                    {}
func (VariableUnknownArraySize) arraySizeNode()             {}
func (VariableExpressionArraySize) arraySizeNode()          {}
func (StaticExpressionArraySize) arraySizeNode()            {}
func (StaticVariableExpressionArraySize) arraySizeNode()    {}

// ArrayDerived is a `[...]` array derivation.
type ArrayDerived struct {
	Qualifiers []TypeQualifier
	Size       ArraySize
}

// FunctionDerived is a `(...)` prototype-form function derivation.
type FunctionDerived struct {
	Parameters []ParameterDeclaration
	Ellipsis   bool
}

// KRFunctionDerived is a `(identifier-list)` K&R-style function
// derivation: parameter names with no types, typed separately in the
// declaration-list preceding the function body.
type KRFunctionDerived struct {
	Identifiers []Identifier
}

func (PointerDerived) derivedDeclaratorNode()     {}
func (ArrayDerived) derivedDeclaratorNode()       {}
func (FunctionDerived) derivedDeclaratorNode()    {}
func (KRFunctionDerived) derivedDeclaratorNode()  {}

// ParameterDeclaration is one entry of a function-derivation parameter
// list. Declarator.Kind == AbstractDeclaratorKind{} with an empty
// Derived slice represents a parameter given only as a type (e.g. the
// lone `int` in `f(int)`).
type ParameterDeclaration struct {
	Specifiers []span.Spanned[DeclarationSpecifier]
	Declarator span.Spanned[*Declarator]
}

// TypeName is an abstract declarator together with its
// specifier-qualifier list, as used in casts, sizeof, compound
// literals, and _Generic associations.
type TypeName struct {
	Specifiers []span.Spanned[DeclarationSpecifier]
	Declarator span.Spanned[*Declarator]
}

// InitDeclarator is one `declarator initializer?` entry of a
// declaration's init-declarator-list.
type InitDeclarator struct {
	Declarator  span.Spanned[*Declarator]
	Initializer *span.Spanned[Initializer]
}

// Initializer is either a single expression or a brace-enclosed
// initializer list.
type Initializer interface {
	initializerNode()
}

// ExpressionInitializer is a plain `= expr` initializer.
type ExpressionInitializer struct {
	Expression span.Spanned[Expression]
}

// ListInitializer is a brace-enclosed initializer list, possibly with
// designators.
type ListInitializer struct {
	Items []InitializerListItem
}

func (ExpressionInitializer) initializerNode() {}
func (ListInitializer) initializerNode()       {}

// InitializerListItem is one element of a brace-enclosed initializer
// list: an optional designation followed by the initializer it sets.
type InitializerListItem struct {
	Designation []Designator
	Initializer span.Spanned[Initializer]
}

// Designator is one `.member` or `[index]` (or GNU `[lo ... hi]`
// range) element of a designation.
type Designator interface {
	designatorNode()
}

type IndexDesignator struct {
	Expression span.Spanned[Expression]
}

type MemberDesignator struct {
	Identifier Identifier
}

// RangeDesignator is the GNU `[lo ... hi]` array-range designator.
type RangeDesignator struct {
	From span.Spanned[Expression]
	To   span.Spanned[Expression]
}

func (IndexDesignator) designatorNode()  {}
func (MemberDesignator) designatorNode() {}
func (RangeDesignator) designatorNode()  {}

// StructKind distinguishes `struct` from `union`.
type StructKind int

const (
	Struct StructKind = iota
	Union
)

// StructType is a struct/union specifier. Declarations is nil for a
// bare tag reference (`struct foo x;`) and non-nil (possibly empty)
// for a definition (`struct foo { ... } x;`), per SPEC_FULL.md §3.4:
// only a definition introduces a new tag binding.
type StructType struct {
	Kind         StructKind
	Identifier   *Identifier
	Declarations *[]span.Spanned[StructDeclaration]
}

// StructDeclaration is one member-list entry of a struct/union
// definition.
type StructDeclaration interface {
	structDeclarationNode()
}

// FieldDeclaration is an ordinary member declaration,
// `specifier-qualifier-list struct-declarator-list? ;`.
type FieldDeclaration struct {
	Specifiers  []span.Spanned[DeclarationSpecifier]
	Declarators []StructDeclarator
}

// StaticAssertStructDeclaration is a `_Static_assert` inside a member
// list.
type StaticAssertStructDeclaration struct {
	StaticAssert *StaticAssert
}

// ExtensionStructDeclaration gathers `__extension__`/attribute tokens
// appearing where a member declaration is expected.
type ExtensionStructDeclaration struct {
	Extensions []Extension
}

func (FieldDeclaration) structDeclarationNode()              {}
func (StaticAssertStructDeclaration) structDeclarationNode() {}
func (ExtensionStructDeclaration) structDeclarationNode()    {}

// StructDeclarator is one member of a FieldDeclaration's
// struct-declarator-list: a declarator, a bit-field width, or both
// (an anonymous bit field omits the declarator).
type StructDeclarator struct {
	Declarator *span.Spanned[*Declarator]
	BitWidth   *span.Spanned[Expression]
}

// EnumType is an `enum` specifier.
type EnumType struct {
	Identifier  *Identifier
	Enumerators []Enumerator
}

// Enumerator is one `identifier (= expression)?` entry of an enum
// body.
type Enumerator struct {
	Identifier Identifier
	Expression *span.Spanned[Expression]
}
