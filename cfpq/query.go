package cfpq

import (
	"github.com/reachql/reachql/automaton"
	"github.com/reachql/reachql/grammar"
)

// Pair is a (from, to) vertex pair, the result shape of a context-free
// or regular path query once its derivation facts have been filtered
// down to the starting nonterminal (spec.md §4.3 GLOSSARY: "context-free
// path query" / "regular path query").
type Pair struct {
	From, To interface{}
}

// Algorithm selects which constrained transitive closure kernel a
// context-free path query runs (spec.md §4.5–§4.7).
type Algorithm int

const (
	AlgorithmHellings Algorithm = iota
	AlgorithmMatrix
	AlgorithmTensor
)

// ContextFreePathQuery finds every (u, v) connected, in graph, by a
// path whose label sequence derives from request's starting
// nonterminal, restricted to u in startingVertices and v in
// finalVertices (nil means "every vertex of graph"). This is
// cfpq_request_with_custom_transitive_closure's filtering step,
// parameterized over the three kernels above.
func ContextFreePathQuery(graph *automaton.Graph, request *grammar.CFG, algo Algorithm, startingVertices, finalVertices []interface{}) []Pair {
	var triples []Triple
	switch algo {
	case AlgorithmMatrix:
		triples = Matrix(graph, request)
	case AlgorithmTensor:
		triples = Tensor(graph, request)
	default:
		triples = Hellings(graph, request)
	}

	startSet := toSet(startingVertices, graph.Nodes)
	finalSet := toSet(finalVertices, graph.Nodes)

	seen := map[[2]interface{}]bool{}
	var result []Pair
	for _, t := range triples {
		if t.Variable != request.Start {
			continue
		}
		if !startSet[t.From] || !finalSet[t.To] {
			continue
		}
		key := [2]interface{}{t.From, t.To}
		if seen[key] {
			continue
		}
		seen[key] = true
		result = append(result, Pair{From: t.From, To: t.To})
	}
	return result
}

func toSet(subset []interface{}, all []interface{}) map[interface{}]bool {
	out := map[interface{}]bool{}
	if subset == nil {
		for _, v := range all {
			out[v] = true
		}
		return out
	}
	for _, v := range subset {
		out[v] = true
	}
	return out
}
