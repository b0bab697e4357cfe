// Copyright © 2024 reachql contributors. All rights reserved.

// Package values implements the query language's runtime value model
// (spec.md §4.9 GLOSSARY): Set, Pair, Triple, FiniteAutomaton and CFG,
// each carrying the combinators the interpreter's primitive operators
// dispatch to — grounded on original_source's interpret/types.py
// (LSet/LPair/LTriple/LFiniteAutoma/LCFG) but reshaped into Go's
// value/interface idiom the way terex.Atom tags a LISP-ish value with
// its AtomType (see terex/terex.go in the teacher tree).
package values

import (
	"fmt"

	"github.com/npillmayer/schuko/tracing"
)

func tracer() tracing.Trace {
	return tracing.Select("reachql.values")
}

// Value is any query-language runtime value.
type Value interface {
	Kind() string
	String() string
	Equal(Value) bool
}

// Atom wraps an opaque graph vertex/label value (a string, int, or any
// other comparable Go value produced by a DOT reader or literal) so it
// satisfies Value.
type Atom struct {
	Raw interface{}
}

// Kind reflects the wrapped Go type so a Set of ints rejects a string
// element and vice versa (spec.md §4.9: "Int, Bool, String" are
// distinct value variants; §3: "equality compares kinds then
// contents"). Vertex/label values coming from a DOT reader or a graph
// catalog are always strings in this implementation, so this covers
// both literal and graph-derived atoms uniformly.
func (a Atom) Kind() string {
	switch a.Raw.(type) {
	case int:
		return "int"
	case bool:
		return "bool"
	case string:
		return "string"
	default:
		return "atom"
	}
}
func (a Atom) String() string { return fmt.Sprintf("%v", a.Raw) }
func (a Atom) Equal(other Value) bool {
	o, ok := other.(Atom)
	return ok && a.Raw == o.Raw
}

// TypeError is raised by a combinator when its operand(s) don't have
// the shape or element type it requires (spec.md §7: error taxonomy).
type TypeError struct {
	Op  string
	Msg string
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("reachql: type error in %q: %s", e.Op, e.Msg)
}
