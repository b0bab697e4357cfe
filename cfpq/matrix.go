package cfpq

import (
	"github.com/reachql/reachql/automaton"
	"github.com/reachql/reachql/grammar"
	"github.com/reachql/reachql/sparse"
)

// Matrix computes every (from, variable, to) derivation fact for graph
// under request via the boolean-matrix fixed point (spec.md §4.6:
// matrix_constrained_transitive_closure): one adjacency matrix per
// nonterminal, seeded from terminal- and ε-productions, then
// saturated by repeatedly adding matrixes[B] @ matrixes[C] into
// matrixes[head] for every binary production head -> B C until no
// matrix's non-zero count changes.
func Matrix(graph *automaton.Graph, request *grammar.CFG) []Triple {
	wcnf := grammar.ToWCNF(request)
	n := len(graph.Nodes)
	index := map[interface{}]int{}
	for i, node := range graph.Nodes {
		index[node] = i
	}

	matrices := map[string]*sparse.BoolMatrix{}
	matrixFor := func(head string) *sparse.BoolMatrix {
		m, ok := matrices[head]
		if !ok {
			m = sparse.New(n, n)
			matrices[head] = m
		}
		return m
	}

	type binaryProd struct{ head, b, c string }
	var binaryProds []binaryProd
	for _, p := range wcnf.Productions {
		switch len(p.Body) {
		case 0:
			matrices[p.Head] = matrixFor(p.Head).Or(sparse.Identity(n))
		case 1:
			terminal := p.Body[0].Name
			for _, e := range graph.Edges {
				if e.Label == terminal {
					matrixFor(p.Head).Set(index[e.From], index[e.To])
				}
			}
		case 2:
			binaryProds = append(binaryProds, binaryProd{p.Head, p.Body[0].Name, p.Body[1].Name})
		}
	}

	changed := true
	for changed {
		changed = false
		for _, bp := range binaryProds {
			head := matrixFor(bp.head)
			nnzBefore := head.NNZ()
			matrices[bp.head] = head.Or(matrixFor(bp.b).Mul(matrixFor(bp.c)))
			if matrices[bp.head].NNZ() != nnzBefore {
				changed = true
			}
		}
	}

	var result []Triple
	for head, m := range matrices {
		for _, p := range m.NonZero() {
			result = append(result, Triple{From: graph.Nodes[p.I], To: graph.Nodes[p.J], Variable: head})
		}
	}
	return result
}
