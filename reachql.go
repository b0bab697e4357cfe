package reachql

import "fmt"

// Label is an opaque hashable token carried by an edge of a labeled
// transition system. In practice this is almost always a string, but
// the type is kept distinct so call sites read as "edge label" rather
// than "arbitrary string".
type Label string

// Epsilon is the distinguished label denoting the empty word.
const Epsilon Label = ""

// IsEpsilon reports whether l is the empty-word label.
func (l Label) IsEpsilon() bool {
	return l == Epsilon
}

func (l Label) String() string {
	if l == Epsilon {
		return "ε"
	}
	return string(l)
}

// TokType is a category type for a query-language token. Constants are
// defined by package lang.
type TokType int

// Span captures a run of input positions. Every token produced by the
// query-language lexer carries one, for diagnostics.
type Span [2]int // (from…to)

// From returns the start position of a span.
func (s Span) From() int {
	return s[0]
}

// To returns the position just behind the end of a span.
func (s Span) To() int {
	return s[1]
}

func (s Span) String() string {
	return fmt.Sprintf("(%d…%d)", s[0], s[1])
}

// Token represents a lexical token of the query language.
type Token interface {
	TokType() TokType
	Lexeme() string
	Span() Span
}
