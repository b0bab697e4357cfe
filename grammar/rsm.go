package grammar

import (
	"sort"

	"github.com/reachql/reachql/automaton"
	"github.com/reachql/reachql/sparse"
)

// RSM is a recursive state machine (spec.md §4.8 GLOSSARY): a starting
// nonterminal plus, for each nonterminal, a finite automaton over the
// alphabet of terminals and nonterminals (its "box"). It is the
// automaton-shaped representation the tensor CFPQ kernel (package
// cfpq) operates on.
type RSM struct {
	Start        string
	SubAutomata  map[string]*automaton.NFA
	Nonterminals []string
}

// RSMState is the logical state identity inside an RSM's combined
// state space: a nonterminal plus one of its own local state ids
// (mirrors original_source's StateInfo.value == (variable, state)).
// It is the dynamic type behind automaton.State.Value for every state
// of the LTS returned by RSM.ToLTS.
type RSMState struct {
	Nonterminal string
	Local       int
}

// FromECFG builds the recursive state machine equivalent to e,
// starting at e.Start (spec.md §4.8:
// recursive_state_machine_from_extended_contex_free_grammar).
func FromECFG(e *ECFG) *RSM {
	rsm := &RSM{
		Start:        e.Start,
		SubAutomata:  map[string]*automaton.NFA{},
		Nonterminals: append([]string{}, e.Nonterminals...),
	}
	for head, nfa := range e.Productions {
		rsm.SubAutomata[head] = nfa
	}
	return rsm
}

// Minimize replaces every subautomaton with its minimal DFA
// equivalent (spec.md §4.8: minimize_recursive_state_machine).
func (rsm *RSM) Minimize() *RSM {
	out := &RSM{Start: rsm.Start, SubAutomata: map[string]*automaton.NFA{}, Nonterminals: rsm.Nonterminals}
	for nt, nfa := range rsm.SubAutomata {
		dfa := automaton.ToDFA(nfa)
		out.SubAutomata[nt] = automaton.MinimizeDFA(dfa)
	}
	return out
}

// ToLTS builds the combined LTS over every subautomaton's states,
// keyed by RSMState{nonterminal, local index} (spec.md §4.8:
// build_binary_matrix_by_rsm). Edge labels are either terminal names
// or nonterminal names, exactly as they occur in the ECFG bodies.
func (rsm *RSM) ToLTS() *automaton.LTS {
	var nts []string
	for nt := range rsm.SubAutomata {
		nts = append(nts, nt)
	}
	sort.Strings(nts)

	g := automaton.NewGraph()
	var start, final []interface{}
	for _, nt := range nts {
		nfa := rsm.SubAutomata[nt]
		for _, s := range nfa.States {
			v := RSMState{nt, s}
			g.AddNode(v)
			if nfa.Start[s] {
				start = append(start, v)
			}
			if nfa.Final[s] {
				final = append(final, v)
			}
		}
		for _, e := range nfa.Trans {
			from := RSMState{nt, e.From.(int)}
			to := RSMState{nt, e.To.(int)}
			g.AddEdge(from, e.Label, to)
		}
	}
	lts, err := automaton.BuildFromGraph(g, start, final)
	if err != nil {
		// start/final were derived directly from g's own nodes, so this
		// precondition can never fail.
		panic(err)
	}
	return lts
}

// Reachables computes the pairs of the start nonterminal's own local
// states connected by some derivation of the full recursive grammar
// (spec.md §4.8: reachables). A transition labeled with a nonterminal
// N only participates once N's own sub-automaton is known to connect
// one of its start states to one of its final states — so nonterminal
// matrices are held back from the transitive closure and released one
// at a time as that fact is established, mirroring original_source's
// `nonterminals` bookkeeping dict in grammar/recursive_state_machines.py.
// The closure is taken reflexively, so a state that is both start and
// final counts as connected to itself (an empty derivation).
func (rsm *RSM) Reachables() [][2]int {
	lts := rsm.ToLTS()
	n := lts.N()

	pending := map[string]*sparse.BoolMatrix{}
	active := sparse.New(n, n)
	for lbl, m := range lts.Labels {
		if rsm.isNonterminalLabel(string(lbl)) {
			pending[string(lbl)] = m
		} else {
			active = active.Or(m)
		}
	}

	valueOf := func(idx int) RSMState { return lts.States[idx].Value.(RSMState) }

	for {
		closure := sparse.New(n, n).Or(active)
		for {
			nnz := closure.NNZ()
			closure = closure.Or(closure.Mul(closure))
			if closure.NNZ() == nnz {
				break
			}
		}
		closure = closure.Or(sparse.Identity(n))
		unlocked := false
		for _, p := range closure.NonZero() {
			from, to := lts.States[p.I], lts.States[p.J]
			if !from.IsStart || !to.IsFinal {
				continue
			}
			fv, tv := valueOf(p.I), valueOf(p.J)
			if fv.Nonterminal != tv.Nonterminal {
				continue
			}
			if m, ok := pending[fv.Nonterminal]; ok {
				active = active.Or(m)
				delete(pending, fv.Nonterminal)
				unlocked = true
			}
		}
		if !unlocked {
			var result [][2]int
			for _, p := range closure.NonZero() {
				from, to := lts.States[p.I], lts.States[p.J]
				if !from.IsStart || !to.IsFinal {
					continue
				}
				fv, tv := valueOf(p.I), valueOf(p.J)
				if fv.Nonterminal != tv.Nonterminal || fv.Nonterminal != rsm.Start {
					continue
				}
				result = appendPairUnique(result, fv.Local, tv.Local)
			}
			return result
		}
	}
}

func (rsm *RSM) isNonterminalLabel(label string) bool {
	_, ok := rsm.SubAutomata[label]
	return ok
}

func appendPairUnique(pairs [][2]int, i, j int) [][2]int {
	for _, p := range pairs {
		if p[0] == i && p[1] == j {
			return pairs
		}
	}
	return append(pairs, [2]int{i, j})
}
