package pipeline

import (
	"github.com/funvibe/cparse/diagnostics"
	"github.com/funvibe/cparse/env"
)

// Context holds the state shared by the lexer stage and the parser
// that consumes its TokenStream.
type Context struct {
	SourceCode  string
	FilePath    string
	Environment *env.Environment
	TokenStream TokenStream
	Errors      *diagnostics.Sink
}

// NewContext creates a Context over source, to be parsed against
// environment.
func NewContext(source string, environment *env.Environment) *Context {
	return &Context{
		SourceCode:  source,
		Environment: environment,
		Errors:      &diagnostics.Sink{},
	}
}
