package cfpq

import (
	"github.com/emirpasic/gods/stacks/linkedliststack"

	"github.com/reachql/reachql/automaton"
	"github.com/reachql/reachql/grammar"
)

// Hellings computes every (from, variable, to) derivation fact for
// graph under request by set saturation (spec.md §4.5:
// helling_constrained_transitive_closure), grounded on
// original_source's worklist shape: seed from ε- and
// terminal-productions, then repeatedly combine a popped fact against
// every fact currently in the result set until the queue drains.
func Hellings(graph *automaton.Graph, request *grammar.CFG) []Triple {
	wcnf := grammar.ToWCNF(request)

	var epsilonHeads []string
	terminalHeads := map[string][]string{} // terminal -> heads producing it
	pairHeads := map[[2]string][]string{}  // (B,C) -> heads with body B C

	for _, p := range wcnf.Productions {
		switch len(p.Body) {
		case 0:
			epsilonHeads = append(epsilonHeads, p.Head)
		case 1:
			terminalHeads[p.Body[0].Name] = append(terminalHeads[p.Body[0].Name], p.Head)
		case 2:
			key := [2]string{p.Body[0].Name, p.Body[1].Name}
			pairHeads[key] = append(pairHeads[key], p.Head)
		}
	}

	seen := map[tripleKey]bool{}
	var result []Triple
	add := func(t Triple) bool {
		k := keyOf(t)
		if seen[k] {
			return false
		}
		seen[k] = true
		result = append(result, t)
		return true
	}

	for _, node := range graph.Nodes {
		for _, head := range epsilonHeads {
			add(Triple{From: node, To: node, Variable: head})
		}
	}
	for _, e := range graph.Edges {
		for _, head := range terminalHeads[e.Label] {
			add(Triple{From: e.From, To: e.To, Variable: head})
		}
	}

	queue := linkedliststack.New()
	for _, t := range result {
		queue.Push(t)
	}
	for !queue.Empty() {
		v, _ := queue.Pop()
		first := v.(Triple)

		// result is mutated while we range over a snapshot of its current
		// contents, exactly as original_source iterates `result` (a set)
		// while accumulating `tmp` before merging it in.
		snapshot := result
		for _, second := range snapshot {
			if first.From == second.To {
				for _, head := range pairHeads[[2]string{second.Variable, first.Variable}] {
					t := Triple{From: second.From, To: first.To, Variable: head}
					if add(t) {
						queue.Push(t)
					}
				}
			}
			if second.From == first.To {
				for _, head := range pairHeads[[2]string{first.Variable, second.Variable}] {
					t := Triple{From: first.From, To: second.To, Variable: head}
					if add(t) {
						queue.Push(t)
					}
				}
			}
		}
	}
	return result
}
