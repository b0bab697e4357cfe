package cfpq

import (
	"github.com/reachql/reachql/automaton"
)

// RegularPathQuery finds every (u, v), with u in startingVertices and
// v in finalVertices (nil meaning "every vertex of graph"), connected
// by a path in graph whose label sequence matches pattern (spec.md
// §4.3: regular_query). It builds the minimal DFA for pattern over
// graph's own alphabet, intersects it with graph's LTS, and reads off
// every pair of states where the combined automaton is simultaneously
// at a start and a final state — either directly (a zero-length match)
// or via a non-empty path found by TransitiveClosure.
func RegularPathQuery(graph *automaton.Graph, pattern string, startingVertices, finalVertices []interface{}) ([]Pair, error) {
	graphLTS, err := automaton.BuildFromGraph(graph, startingVertices, finalVertices)
	if err != nil {
		return nil, err
	}
	alphabet := distinctLabels(graph)
	queryNFA, err := automaton.RegexToMinDFA(pattern, alphabet)
	if err != nil {
		return nil, err
	}
	queryLTS := automaton.BuildFromNFA(queryNFA)

	inter := automaton.Intersect(graphLTS, queryLTS)

	seen := map[[2]interface{}]bool{}
	var result []Pair
	add := func(from, to interface{}) {
		key := [2]interface{}{from, to}
		if seen[key] {
			return
		}
		seen[key] = true
		result = append(result, Pair{From: from, To: to})
	}

	for _, s := range inter.States {
		if s.IsStart && s.IsFinal {
			pv := s.Value.(automaton.PairValue)
			add(pv.A, pv.A)
		}
	}
	for _, p := range inter.TransitiveClosure() {
		from, to := inter.States[p.I], inter.States[p.J]
		if from.IsStart && to.IsFinal {
			fv := from.Value.(automaton.PairValue)
			tv := to.Value.(automaton.PairValue)
			add(fv.A, tv.A)
		}
	}
	return result, nil
}

func distinctLabels(graph *automaton.Graph) []string {
	seen := map[string]bool{}
	var out []string
	for _, e := range graph.Edges {
		if e.Label == "" || seen[e.Label] {
			continue
		}
		seen[e.Label] = true
		out = append(out, e.Label)
	}
	return out
}
