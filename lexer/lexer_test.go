package lexer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/funvibe/cparse/env"
	"github.com/funvibe/cparse/lexer"
	"github.com/funvibe/cparse/token"
)

func allTokens(input string, e *env.Environment) []token.Token {
	l := lexer.New(input, e)
	var toks []token.Token
	for {
		tok := l.NextToken()
		toks = append(toks, tok)
		if tok.Type == token.EOF {
			return toks
		}
	}
}

func typesOf(toks []token.Token) []token.Type {
	types := make([]token.Type, len(toks))
	for i, tok := range toks {
		types[i] = tok.Type
	}
	return types
}

func TestPunctuatorsLongestMatchFirst(t *testing.T) {
	toks := allTokens("a <<= b", env.New())
	assert.Equal(t, []token.Type{token.IDENTIFIER, token.SHL_ASSN, token.IDENTIFIER, token.EOF}, typesOf(toks))
}

func TestIdentifierVsKeyword(t *testing.T) {
	toks := allTokens("int foo", env.New())
	require.Len(t, toks, 3)
	assert.Equal(t, token.INT, toks[0].Type)
	assert.Equal(t, token.IDENTIFIER, toks[1].Type)
	assert.Equal(t, "foo", toks[1].Lexeme)
}

func TestTypedefNameClassifiedAsPlainIdentifierByLexer(t *testing.T) {
	// The lexer never resolves typedef names; that's the parser's job via
	// the Environment. A registered typedef name still lexes as IDENTIFIER.
	e := env.New()
	e.AddTypename("Foo")
	toks := allTokens("Foo x", e)
	assert.Equal(t, token.IDENTIFIER, toks[0].Type)
	assert.Equal(t, token.IDENTIFIER, toks[1].Type)
}

func TestGNUKeywordSynonymsGatedByEnvironment(t *testing.T) {
	withoutGNU := env.New().WithGNU(false)
	toks := allTokens("__asm__", withoutGNU)
	assert.Equal(t, token.IDENTIFIER, toks[0].Type)

	withGNU := env.New().WithGNU(true)
	toks = allTokens("__asm__", withGNU)
	assert.Equal(t, token.ASM, toks[0].Type)
}

func TestEncodingPrefixedLiterals(t *testing.T) {
	toks := allTokens(`L'a' u"hi" U'b' u8"x"`, env.New())
	require.Len(t, toks, 5)
	assert.Equal(t, token.CHAR, toks[0].Type)
	assert.Equal(t, "L'a'", toks[0].Lexeme)
	assert.Equal(t, token.STRING, toks[1].Type)
	assert.Equal(t, `u"hi"`, toks[1].Lexeme)
	assert.Equal(t, token.CHAR, toks[2].Type)
	assert.Equal(t, token.STRING, toks[3].Type)
	assert.Equal(t, `u8"x"`, toks[3].Lexeme)
}

func TestIntegerLiteralBasesAndSuffixes(t *testing.T) {
	toks := allTokens("0x1A 0755 42 10UL", env.New())
	require.Len(t, toks, 5)
	for i, want := range []string{"0x1A", "0755", "42", "10UL"} {
		assert.Equal(t, token.INTEGER, toks[i].Type)
		assert.Equal(t, want, toks[i].Lexeme)
	}
}

func TestFloatLiteralsDecimalAndHex(t *testing.T) {
	toks := allTokens("1.5 1e10 0x1.8p3f .5", env.New())
	require.Len(t, toks, 5)
	for i, want := range []string{"1.5", "1e10", "0x1.8p3f", ".5"} {
		assert.Equal(t, token.FLOAT, toks[i].Type)
		assert.Equal(t, want, toks[i].Lexeme)
	}
}

func TestCommentsAndWhitespaceSkipped(t *testing.T) {
	toks := allTokens("a /* block\ncomment */ b // line comment\nc", env.New())
	assert.Equal(t, []token.Type{token.IDENTIFIER, token.IDENTIFIER, token.IDENTIFIER, token.EOF}, typesOf(toks))
}

func TestLineMarkerSkipped(t *testing.T) {
	toks := allTokens("# 1 \"foo.c\" 1\nint x;", env.New())
	assert.Equal(t, token.INT, toks[0].Type)
}

func TestLineAndColumnTracking(t *testing.T) {
	toks := allTokens("int\nfoo", env.New())
	require.Len(t, toks, 3)
	assert.Equal(t, 1, toks[0].Line)
	assert.Equal(t, 2, toks[1].Line)
}

func TestIllegalCharacter(t *testing.T) {
	toks := allTokens("@", env.New())
	require.Len(t, toks, 2)
	assert.Equal(t, token.ILLEGAL, toks[0].Type)
}
