// Package pipeline is the small lexer→parser conduit shared by every
// public entry point: it buffers a token.Token stream with lookahead
// and threads the shared source text, Environment, and error sink
// through the pieces that need them.
package pipeline

import "github.com/funvibe/cparse/token"

// Processor is any stage that can act on a Context.
type Processor interface {
	Process(ctx *Context) *Context
}

// TokenStream is a buffered, lookahead-capable source of tokens.
type TokenStream interface {
	// Next consumes and returns the next token from the stream.
	Next() token.Token

	// Peek returns up to n upcoming tokens without consuming them.
	Peek(n int) []token.Token
}
