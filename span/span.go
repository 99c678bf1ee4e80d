// Package span attaches source-byte-offset ranges to AST values.
package span

import "fmt"

// Span is a half-open byte range [Begin, End) into the original source.
// A Span with Begin < 0 (see None) represents the absence of a span, used for
// synthetic nodes that were never backed by source text.
type Span struct {
	Begin int
	End   int
}

// None is the sentinel "no span" value.
func None() Span {
	return Span{Begin: -1, End: -1}
}

// IsNone reports whether s carries no source location.
func (s Span) IsNone() bool {
	return s.Begin < 0
}

func (s Span) String() string {
	if s.IsNone() {
		return "<no span>"
	}
	return fmt.Sprintf("%d..%d", s.Begin, s.End)
}

// Join returns the smallest span covering both a and b. If either is
// None, the other is returned unchanged; if both are None, None is
// returned.
func Join(a, b Span) Span {
	if a.IsNone() {
		return b
	}
	if b.IsNone() {
		return a
	}
	begin := a.Begin
	if b.Begin < begin {
		begin = b.Begin
	}
	end := a.End
	if b.End > end {
		end = b.End
	}
	return Span{Begin: begin, End: end}
}

// Spanned pairs an AST value with the source range it was parsed from.
// Every committed production in this module wraps its result in a
// Spanned, mirroring the envelope shape the grammar is specified in
// terms of.
type Spanned[T any] struct {
	Node T
	Span Span
}

// New wraps node with span.
func New[T any](node T, s Span) Spanned[T] {
	return Spanned[T]{Node: node, Span: s}
}

// Unspanned wraps node with None(), for synthetic values.
func Unspanned[T any](node T) Spanned[T] {
	return Spanned[T]{Node: node, Span: None()}
}
