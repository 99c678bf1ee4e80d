// Package env implements the scoped symbol table the parser consults
// to resolve C's typedef-name ambiguity: whether a bare identifier is
// parsed as a type-specifier or as an ordinary expression depends on
// whether a typedef for that name is visible in the current scope.
package env

import (
	"golang.org/x/exp/slices"

	"github.com/funvibe/cparse/config"
)

type symbolKind uint8

const (
	kindIdentifier symbolKind = iota
	kindTypename
)

// scope is one frame of the scope stack: a flat name->kind map plus a
// link to the enclosing frame. Chaining scopes this way (rather than
// a single stack-of-maps slice) means a saved *scope from Clone keeps
// working even if the original Environment later pushes more frames.
type scope struct {
	names map[string]symbolKind
	outer *scope
}

func newScope(outer *scope) *scope {
	return &scope{names: make(map[string]symbolKind), outer: outer}
}

// Environment is the single mutable symbol table owned by one parse.
// It is not safe for concurrent use by more than one parse at a time
// (see SPEC_FULL.md §5).
type Environment struct {
	current  *scope
	features config.Feature
	keywords *config.KeywordSet
}

// New constructs an Environment with the default dialect: standard
// C11 plus GNU extensions enabled, Clang extensions disabled.
func New() *Environment {
	e := &Environment{features: config.FeatureGNU}
	e.current = newScope(nil)
	e.rebuildKeywords()
	return e
}

func (e *Environment) rebuildKeywords() {
	e.keywords = config.NewKeywordSet(e.features)
}

// WithGNU toggles GNU-extension parsing and returns e for chaining.
func (e *Environment) WithGNU(enabled bool) *Environment {
	if enabled {
		e.features |= config.FeatureGNU
	} else {
		e.features &^= config.FeatureGNU
	}
	e.rebuildKeywords()
	return e
}

// WithClang toggles Clang-extension parsing and returns e for
// chaining.
func (e *Environment) WithClang(enabled bool) *Environment {
	if enabled {
		e.features |= config.FeatureClang
	} else {
		e.features &^= config.FeatureClang
	}
	e.rebuildKeywords()
	return e
}

// Features reports the currently active dialect feature set.
func (e *Environment) Features() config.Feature {
	return e.features
}

// Keywords returns the keyword set compiled for the current feature
// set, for the lexer to classify identifiers against.
func (e *Environment) Keywords() *config.KeywordSet {
	return e.keywords
}

// EnterScope pushes a new, empty innermost scope (block, function
// prototype, struct/union/enum body, or compound-literal type name).
func (e *Environment) EnterScope() {
	e.current = newScope(e.current)
}

// ExitScope pops the innermost scope, discarding bindings made in it.
// Calling ExitScope on the outermost (file) scope is a programmer
// error and panics, mirroring an unbalanced enter/exit in the parser.
func (e *Environment) ExitScope() {
	if e.current.outer == nil {
		panic("env: ExitScope called with no enclosing scope")
	}
	e.current = e.current.outer
}

// AddTypename records name as a typedef name in the innermost scope,
// shadowing any outer binding for the same name.
func (e *Environment) AddTypename(name string) {
	e.current.names[name] = kindTypename
}

// AddIdent records name as an ordinary (non-typedef) identifier in the
// innermost scope, shadowing any outer binding for the same name. This
// is how a declaration can "undo" a typedef from an enclosing scope,
// e.g. redeclaring a global typedef name as a local variable.
func (e *Environment) AddIdent(name string) {
	e.current.names[name] = kindIdentifier
}

// IsTypename reports whether name currently resolves to a typedef
// name, searching from the innermost scope outward.
func (e *Environment) IsTypename(name string) bool {
	for s := e.current; s != nil; s = s.outer {
		if kind, ok := s.names[name]; ok {
			return kind == kindTypename
		}
	}
	return false
}

// Clone deep-copies the entire scope chain, so a caller can snapshot
// the Environment before a parse and restore it (by discarding the
// clone's mutations and keeping the original) if it wants atomic,
// all-or-nothing typedef registration. Nothing in this package makes
// that rollback automatic: by default, typedef inserts made before a
// later failure in the same declaration list persist (see
// SPEC_FULL.md §11.4, "partial typedef inserts").
func (e *Environment) Clone() *Environment {
	frames := make([]*scope, 0, 4)
	for s := e.current; s != nil; s = s.outer {
		frames = append(frames, s)
	}
	slices.Reverse(frames)

	var cloned *scope
	for _, s := range frames {
		next := newScope(cloned)
		for k, v := range s.names {
			next.names[k] = v
		}
		cloned = next
	}

	return &Environment{
		current:  cloned,
		features: e.features,
		keywords: e.keywords,
	}
}
