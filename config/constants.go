// Package config is the single source of truth for the extension
// feature flags, keyword gating table, and operator-precedence ladder
// shared by the lexer and parser.
package config

import "github.com/funvibe/cparse/token"

// Feature is a bitset of dialect extensions beyond standard C11.
type Feature uint8

const (
	// FeatureGNU enables GNU C keywords and grammar extensions
	// (statement expressions, __attribute__, __asm__, __typeof__, ...).
	FeatureGNU Feature = 1 << iota
	// FeatureClang enables the Clang nullability qualifiers
	// (_Nullable, _Nonnull, _Null_unspecified).
	FeatureClang
)

// Has reports whether all bits of want are set in f.
func (f Feature) Has(want Feature) bool {
	return f&want == want
}

// KeywordInfo names one keyword spelling and the minimum feature set
// that must be active for it to be classified as a keyword rather than
// a plain identifier.
type KeywordInfo struct {
	Lexeme  string
	Type    token.Type
	Needs   Feature // zero: always a keyword
}

// Keywords is the single table driving keyword classification: the
// environment compiles it into a KeywordSet for its active features,
// and the lexer looks identifiers up in that set. It plays the same
// "one table, many consumers" role the C11 core keyword set and the
// GNU/Clang synonym set play in the reference grammar this module
// implements.
var Keywords = []KeywordInfo{
	{"auto", token.AUTO, 0},
	{"break", token.BREAK, 0},
	{"case", token.CASE, 0},
	{"char", token.CHAR_KW, 0},
	{"const", token.CONST, 0},
	{"continue", token.CONTINUE, 0},
	{"default", token.DEFAULT, 0},
	{"do", token.DO, 0},
	{"double", token.DOUBLE, 0},
	{"else", token.ELSE, 0},
	{"enum", token.ENUM, 0},
	{"extern", token.EXTERN, 0},
	{"float", token.FLOAT_KW, 0},
	{"for", token.FOR, 0},
	{"goto", token.GOTO, 0},
	{"if", token.IF, 0},
	{"inline", token.INLINE, 0},
	{"int", token.INT, 0},
	{"long", token.LONG, 0},
	{"register", token.REGISTER, 0},
	{"restrict", token.RESTRICT, 0},
	{"return", token.RETURN, 0},
	{"short", token.SHORT, 0},
	{"signed", token.SIGNED, 0},
	{"sizeof", token.SIZEOF, 0},
	{"static", token.STATIC, 0},
	{"struct", token.STRUCT, 0},
	{"switch", token.SWITCH, 0},
	{"typedef", token.TYPEDEF, 0},
	{"union", token.UNION, 0},
	{"unsigned", token.UNSIGNED, 0},
	{"void", token.VOID, 0},
	{"volatile", token.VOLATILE, 0},
	{"while", token.WHILE, 0},

	{"_Alignas", token.ALIGNAS, 0},
	{"_Alignof", token.ALIGNOF, 0},
	{"_Atomic", token.ATOMIC, 0},
	{"_Bool", token.BOOL, 0},
	{"_Complex", token.COMPLEX, 0},
	{"_Generic", token.GENERIC, 0},
	{"_Imaginary", token.IMAGINARY, 0},
	{"_Noreturn", token.NORETURN, 0},
	{"_Static_assert", token.STATIC_ASSERT, 0},
	{"_Thread_local", token.THREAD_LOCAL, 0},

	// GNU keyword synonym set, taken from the original crate's
	// extension table rather than guessed (see SPEC_FULL.md §11.3).
	{"asm", token.ASM, FeatureGNU},
	{"__asm", token.ASM, FeatureGNU},
	{"__asm__", token.ASM, FeatureGNU},
	{"typeof", token.TYPEOF, FeatureGNU},
	{"__typeof", token.TYPEOF, FeatureGNU},
	{"__typeof__", token.TYPEOF, FeatureGNU},
	{"__extension__", token.EXTENSION, FeatureGNU},
	{"__attribute", token.ATTRIBUTE, FeatureGNU},
	{"__attribute__", token.ATTRIBUTE, FeatureGNU},
	{"__const", token.CONST, FeatureGNU},
	{"__const__", token.CONST, FeatureGNU},
	{"__inline", token.INLINE, FeatureGNU},
	{"__inline__", token.INLINE, FeatureGNU},
	{"__restrict", token.RESTRICT, FeatureGNU},
	{"__restrict__", token.RESTRICT, FeatureGNU},
	{"__signed", token.SIGNED, FeatureGNU},
	{"__signed__", token.SIGNED, FeatureGNU},
	{"__volatile", token.VOLATILE, FeatureGNU},
	{"__volatile__", token.VOLATILE, FeatureGNU},
	{"__alignof", token.ALIGNOF, FeatureGNU},
	{"__alignof__", token.ALIGNOF, FeatureGNU},
	{"__int128", token.INT128, FeatureGNU},
	{"_Float16", token.FLOAT16, FeatureGNU},
	{"_Decimal32", token.DECIMAL32, FeatureGNU},
	{"_Decimal64", token.DECIMAL64, FeatureGNU},
	{"_Decimal128", token.DECIMAL128, FeatureGNU},

	// Clang nullability qualifiers.
	{"_Nullable", token.NULLABLE, FeatureClang},
	{"_Nonnull", token.NONNULL, FeatureClang},
	{"_Null_unspecified", token.NULL_UNSPEC, FeatureClang},
}

// KeywordSet is a Keywords table compiled for a fixed feature set,
// giving O(1) lookup during lexing.
type KeywordSet struct {
	byLexeme map[string]token.Type
}

// NewKeywordSet compiles the subset of Keywords active under features.
func NewKeywordSet(features Feature) *KeywordSet {
	ks := &KeywordSet{byLexeme: make(map[string]token.Type, len(Keywords))}
	for _, kw := range Keywords {
		if features.Has(kw.Needs) {
			ks.byLexeme[kw.Lexeme] = kw.Type
		}
	}
	return ks
}

// Lookup returns the keyword token type for lexeme and true, or
// (token.IDENTIFIER, false) if lexeme is not a keyword under this set.
func (ks *KeywordSet) Lookup(lexeme string) (token.Type, bool) {
	if t, ok := ks.byLexeme[lexeme]; ok {
		return t, true
	}
	return token.IDENTIFIER, false
}
