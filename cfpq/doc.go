// Copyright © 2024 reachql contributors. All rights reserved.

// Package cfpq implements context-free and regular path queries over
// labeled graphs: Hellings' worklist algorithm, the boolean-matrix
// fixed-point algorithm, the tensor (Kronecker product) algorithm, and
// the multi-source regular-path-query front (spec.md §4.3–§4.7).
package cfpq

import (
	"fmt"

	"github.com/cnf/structhash"
	"github.com/npillmayer/schuko/tracing"
)

func tracer() tracing.Trace {
	return tracing.Select("reachql.cfpq")
}

// Triple is one derivation fact: from is connected to to by a string
// derivable from the nonterminal Variable (spec.md §4.5 GLOSSARY:
// "context-free path query").
type Triple struct {
	From, To interface{}
	Variable string
}

// tripleKey is a content hash of a Triple, used by Hellings' worklist
// dedup instead of a struct-as-map-key so the hashing scheme stays
// consistent with Set's own content-hash dedup (SPEC_FULL.md §2:
// structhash "replacing the teacher's hash(jadv, i) use in Earley
// backlinks").
type tripleKey string

func keyOf(t Triple) tripleKey {
	h, err := structhash.Hash(struct {
		From, To interface{}
		Variable string
	}{t.From, t.To, t.Variable}, 1)
	if err != nil {
		// From/To are always strings or ints produced by a DOT reader or
		// regex compiler, never a type structhash can't reflect over.
		panic(fmt.Sprintf("reachql: cannot hash triple %v: %v", t, err))
	}
	return tripleKey(h)
}
