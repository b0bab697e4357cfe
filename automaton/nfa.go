package automaton

// NFA is a (possibly non-deterministic, possibly ε-transition bearing)
// finite automaton: a set of states, a start/final marking and a list
// of labeled transitions. It is the common currency between the regex
// compiler, DOT-derived graphs and LTS.ToNFA.
type NFA struct {
	States []int
	Start  map[int]bool
	Final  map[int]bool
	Trans  []Edge // From/To are the int state ids (boxed); Label == "" is ε
}

// NewNFA creates an empty NFA.
func NewNFA() *NFA {
	return &NFA{Start: map[int]bool{}, Final: map[int]bool{}}
}

// AddState registers a fresh state id and returns it.
func (n *NFA) AddState() int {
	id := len(n.States)
	n.States = append(n.States, id)
	return id
}

// AddTrans adds a transition; label == "" denotes ε.
func (n *NFA) AddTrans(from int, label string, to int) {
	n.Trans = append(n.Trans, Edge{From: from, To: to, Label: label})
}

// SetStart marks s as a start state.
func (n *NFA) SetStart(s int) { n.Start[s] = true }

// SetFinal marks s as a final state.
func (n *NFA) SetFinal(s int) { n.Final[s] = true }

// transitionsFrom returns, for a state, the (label,to) pairs leaving it.
func (n *NFA) transitionsFrom(s int) []Edge {
	var out []Edge
	for _, e := range n.Trans {
		if e.From == s {
			out = append(out, e)
		}
	}
	return out
}

// epsilonClosure computes the set of states reachable from the given
// set using only ε-transitions (the classic subset-construction step,
// shared by the regex->DFA compiler and by graph_to_nfa's use as a
// helper when callers hand in an ε-NFA).
func (n *NFA) epsilonClosure(states map[int]bool) map[int]bool {
	closure := map[int]bool{}
	var stack []int
	for s := range states {
		closure[s] = true
		stack = append(stack, s)
	}
	for len(stack) > 0 {
		s := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, e := range n.transitionsFrom(s) {
			to := e.To.(int)
			if e.Label == "" && !closure[to] {
				closure[to] = true
				stack = append(stack, to)
			}
		}
	}
	return closure
}

// GraphToNFA converts a labeled graph into an NFA with the same nodes,
// edges and labels (spec.md §4.2's graph_to_nfa), numbering states in
// g.Nodes order. If start/final is nil every node is marked that way,
// matching automaton.BuildFromGraph's convention; otherwise only the
// named nodes are marked, and an unknown node is reported as an error.
func GraphToNFA(g *Graph, start, final []interface{}) (*NFA, error) {
	n := NewNFA()
	index := map[interface{}]int{}
	for _, v := range g.Nodes {
		index[v] = n.AddState()
	}
	markStart, err := subsetOrAll(g.Nodes, start, index, "start")
	if err != nil {
		return nil, err
	}
	markFinal, err := subsetOrAll(g.Nodes, final, index, "final")
	if err != nil {
		return nil, err
	}
	for s := range markStart {
		n.SetStart(s)
	}
	for s := range markFinal {
		n.SetFinal(s)
	}
	for _, e := range g.Edges {
		n.AddTrans(index[e.From], e.Label, index[e.To])
	}
	return n, nil
}

// Alphabet returns the distinct non-ε labels used by n.
func (n *NFA) Alphabet() []string {
	seen := map[string]bool{}
	var out []string
	for _, e := range n.Trans {
		if e.Label != "" && !seen[e.Label] {
			seen[e.Label] = true
			out = append(out, e.Label)
		}
	}
	return out
}
