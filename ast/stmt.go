package ast

import "github.com/funvibe/cparse/span"

// Statement is any C statement-grammar production.
type Statement interface {
	statementNode()
}

// Label is the label prefix of a LabeledStatement.
type Label interface {
	labelNode()
}

type IdentifierLabel struct {
	Identifier Identifier
}

type CaseLabel struct {
	Expression span.Spanned[Expression]
}

// CaseRangeLabel is the GNU `case lo ... hi:` extension.
type CaseRangeLabel struct {
	Low  span.Spanned[Expression]
	High span.Spanned[Expression]
}

type DefaultLabel struct{}

func (IdentifierLabel) labelNode() {}
func (CaseLabel) labelNode()       {}
func (CaseRangeLabel) labelNode()  {}
func (DefaultLabel) labelNode()    {}

// LabeledStatement is `label: statement`.
type LabeledStatement struct {
	Label     Label
	Statement span.Spanned[Statement]
}

// CompoundStatement is a brace-enclosed block.
type CompoundStatement struct {
	Items []span.Spanned[BlockItem]
}

// ExpressionStatement is `expr? ;` (nil Expression is the empty
// statement, a bare `;`).
type ExpressionStatement struct {
	Expression *span.Spanned[Expression]
}

// IfStatement is `if (cond) then (else ...)?`.
type IfStatement struct {
	Condition span.Spanned[Expression]
	Then      span.Spanned[Statement]
	Else      *span.Spanned[Statement]
}

// SwitchStatement is `switch (cond) body`.
type SwitchStatement struct {
	Condition span.Spanned[Expression]
	Body      span.Spanned[Statement]
}

// WhileStatement is `while (cond) body`.
type WhileStatement struct {
	Condition span.Spanned[Expression]
	Body      span.Spanned[Statement]
}

// DoWhileStatement is `do body while (cond) ;`.
type DoWhileStatement struct {
	Body      span.Spanned[Statement]
	Condition span.Spanned[Expression]
}

// ForInitializer is the first clause of a `for` statement.
type ForInitializer interface {
	forInitNode()
}

type EmptyForInit struct{}

type ExpressionForInit struct {
	Expression span.Spanned[Expression]
}

type DeclarationForInit struct {
	Declaration span.Spanned[*Declaration]
}

func (EmptyForInit) forInitNode()      {}
func (ExpressionForInit) forInitNode() {}
func (DeclarationForInit) forInitNode() {}

// ForStatement is the full C99 `for (init; cond?; step?) body`.
type ForStatement struct {
	Init      ForInitializer
	Condition *span.Spanned[Expression]
	Step      *span.Spanned[Expression]
	Body      span.Spanned[Statement]
}

// GotoStatement is `goto label;`.
type GotoStatement struct {
	Identifier Identifier
}

type ContinueStatement struct{}
type BreakStatement struct{}

// ReturnStatement is `return expr?;`.
type ReturnStatement struct {
	Expression *span.Spanned[Expression]
}

// AsmStatementNode is a GNU `asm` statement, basic or extended.
type AsmStatementNode interface {
	asmStatementNode()
}

// AsmQualifier is the optional qualifier preceding the asm template
// in an extended asm statement.
type AsmQualifier int

const (
	AsmNone AsmQualifier = iota
	AsmVolatile
	AsmInline
	AsmGoto
)

// GnuBasicAsm is `asm("template");` with no operand lists.
type GnuBasicAsm struct {
	Template StringLiteral
}

// GnuAsmOperand is one `[name] "constraint" (expr)` entry of an
// extended asm statement's input or output list.
type GnuAsmOperand struct {
	SymbolicName *Identifier
	Constraints  StringLiteral
	Variable     span.Spanned[Expression]
}

// GnuExtendedAsm is `asm qualifier? ( "template" : outputs : inputs :
// clobbers );`.
type GnuExtendedAsm struct {
	Qualifier AsmQualifier
	Template  StringLiteral
	Outputs   []GnuAsmOperand
	Inputs    []GnuAsmOperand
	Clobbers  []StringLiteral
}

func (GnuBasicAsm) asmStatementNode()    {}
func (GnuExtendedAsm) asmStatementNode() {}

// AsmStatement is a GNU inline-assembly statement.
type AsmStatement struct {
	Asm AsmStatementNode
}

func (LabeledStatement) statementNode()    {}
func (CompoundStatement) statementNode()   {}
func (ExpressionStatement) statementNode() {}
func (IfStatement) statementNode()         {}
func (SwitchStatement) statementNode()     {}
func (WhileStatement) statementNode()      {}
func (DoWhileStatement) statementNode()    {}
func (ForStatement) statementNode()        {}
func (GotoStatement) statementNode()       {}
func (ContinueStatement) statementNode()   {}
func (BreakStatement) statementNode()      {}
func (ReturnStatement) statementNode()     {}
func (AsmStatement) statementNode()        {}
