package cfpq

import (
	"github.com/reachql/reachql"
	"github.com/reachql/reachql/automaton"
	"github.com/reachql/reachql/grammar"
	"github.com/reachql/reachql/sparse"
)

// Tensor computes every (from, variable, to) derivation fact for graph
// under request via the Kronecker-product fixed point (spec.md §4.7:
// tensor_constrained_transitive_closure). The grammar's minimal RSM is
// intersected with the graph's LTS; whenever the intersection's
// transitive closure links an RSM start state to a final state of the
// same nonterminal, the corresponding graph edge is added back into
// the graph LTS under that nonterminal's own label, so the next round
// can use it as if it were a terminal edge. Iteration stops once a
// round adds no new intersection pairs.
//
// Design note (mirrors the "Design Notes" of spec.md §9): the graph
// matrix for every nullable nonterminal must carry the identity
// relation *before* the first intersection is taken, or zero-length
// derivations of that nonterminal are invisible to every later round.
func Tensor(graph *automaton.Graph, request *grammar.CFG) []Triple {
	rsm := grammar.FromECFG(grammar.FromCFG(request)).Minimize()
	rsmLTS := rsm.ToLTS()

	graphNFA, err := automaton.GraphToNFA(graph, nil, nil)
	if err != nil {
		panic(err) // nil/nil always selects every node of graph
	}
	graphLTS := automaton.BuildFromNFA(graphNFA)
	n := graphLTS.N()

	nullable := request.NullableSymbols()
	for head, isNullable := range nullable {
		if !isNullable {
			continue
		}
		graphLTS.SetMatrix(reachql.Label(head), graphLTS.Matrix(reachql.Label(head)).Or(sparse.Identity(n)))
	}

	prevSize := -1
	for {
		inter := automaton.Intersect(rsmLTS, graphLTS)
		pairs := inter.TransitiveClosure()
		if len(pairs) == prevSize {
			break
		}
		prevSize = len(pairs)

		for _, p := range pairs {
			rsmI, graphI := p.I/n, p.I%n
			rsmJ, graphJ := p.J/n, p.J%n
			startState, finalState := rsmLTS.States[rsmI], rsmLTS.States[rsmJ]
			if !startState.IsStart || !finalState.IsFinal {
				continue
			}
			sv := startState.Value.(grammar.RSMState)
			fv := finalState.Value.(grammar.RSMState)
			if sv.Nonterminal != fv.Nonterminal {
				continue
			}
			label := reachql.Label(sv.Nonterminal)
			graphLTS.SetMatrix(label, graphLTS.Matrix(label).Clone())
			graphLTS.Matrix(label).Set(graphI, graphJ)
		}
	}

	var result []Triple
	for _, head := range rsm.Nonterminals {
		m := graphLTS.Matrix(reachql.Label(head))
		for _, p := range m.NonZero() {
			result = append(result, Triple{From: graph.Nodes[p.I], To: graph.Nodes[p.J], Variable: head})
		}
	}
	return result
}
