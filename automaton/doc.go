/*
Package automaton implements the labeled-transition-system substrate
(spec.md §3, §4.1) and the regex-to-DFA / graph-to-NFA conversions of
§4.2: States, Graphs, NFAs/DFAs and LTS (a boolean-sparse-matrix-backed
transition system shared by graphs, automata and their products).

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2024 reachql contributors

*/
package automaton

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'reachql.automaton'.
func tracer() tracing.Trace {
	return tracing.Select("reachql.automaton")
}
