package config

import "github.com/funvibe/cparse/token"

// Precedence levels for C's binary operators (higher binds tighter).
// Unlike the interpreter this table pattern is borrowed from, C's
// operator set is fixed by the grammar and is never user-extensible,
// so there is no registration loop here — just the ladder itself.
const (
	PrecNone       = 0
	PrecComma      = 1  // ,
	PrecAssign     = 2  // = += -= *= /= %= <<= >>= &= ^= |=
	PrecConditional = 3 // ?:
	PrecLogicOr    = 4  // ||
	PrecLogicAnd   = 5  // &&
	PrecBitwiseOr  = 6  // |
	PrecBitwiseXor = 7  // ^
	PrecBitwiseAnd = 8  // &
	PrecEquality   = 9  // == !=
	PrecRelational = 10 // < > <= >=
	PrecShift      = 11 // << >>
	PrecAdditive   = 12 // + -
	PrecMultiply   = 13 // * / %
	PrecUnary      = 14 // ! ~ (prefix) + - & * sizeof _Alignof
	PrecPostfix    = 15 // f(x) x[i] x.y x->y x++ x--
)

// BinaryPrecedence maps each binary-operator token to its precedence
// level. Associativity is recorded separately in RightAssociative (all
// C binary operators except assignment and the ternary conditional are
// left-associative; assignment and conditional are right-associative).
var BinaryPrecedence = map[token.Type]int{
	token.COMMA:     PrecComma,
	token.ASSIGN:    PrecAssign,
	token.MUL_ASSN:  PrecAssign,
	token.DIV_ASSN:  PrecAssign,
	token.MOD_ASSN:  PrecAssign,
	token.ADD_ASSN:  PrecAssign,
	token.SUB_ASSN:  PrecAssign,
	token.SHL_ASSN:  PrecAssign,
	token.SHR_ASSN:  PrecAssign,
	token.AND_ASSN:  PrecAssign,
	token.XOR_ASSN:  PrecAssign,
	token.OR_ASSN:   PrecAssign,
	token.QUESTION:  PrecConditional,
	token.OR_OR:     PrecLogicOr,
	token.AND_AND:   PrecLogicAnd,
	token.PIPE:      PrecBitwiseOr,
	token.CARET:     PrecBitwiseXor,
	token.AMP:       PrecBitwiseAnd,
	token.EQ:        PrecEquality,
	token.NE:        PrecEquality,
	token.LT:        PrecRelational,
	token.GT:        PrecRelational,
	token.LE:        PrecRelational,
	token.GE:        PrecRelational,
	token.LSHIFT:    PrecShift,
	token.RSHIFT:    PrecShift,
	token.PLUS:      PrecAdditive,
	token.MINUS:     PrecAdditive,
	token.STAR:      PrecMultiply,
	token.SLASH:     PrecMultiply,
	token.PERCENT:   PrecMultiply,
}

// RightAssociative is the set of binary-position tokens that
// associate right-to-left: assignment and the ternary conditional.
var RightAssociative = map[token.Type]bool{
	token.ASSIGN:   true,
	token.MUL_ASSN: true,
	token.DIV_ASSN: true,
	token.MOD_ASSN: true,
	token.ADD_ASSN: true,
	token.SUB_ASSN: true,
	token.SHL_ASSN: true,
	token.SHR_ASSN: true,
	token.AND_ASSN: true,
	token.XOR_ASSN: true,
	token.OR_ASSN:  true,
	token.QUESTION: true,
}
