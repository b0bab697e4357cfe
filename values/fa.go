package values

import (
	"fmt"

	"github.com/reachql/reachql/automaton"
)

// FA is a finite-automaton runtime value (spec.md §4.9: LFiniteAutoma),
// backed by an automaton.LTS so node identities survive set_start,
// set_final and the reachability combinators.
type FA struct {
	LTS *automaton.LTS
}

// FAFromGraph builds an FA value from a graph, every node starting
// both a start and a final state (original_source's gen_nfa_by_graph
// default, mirrored by automaton.BuildFromGraph(g, nil, nil)).
func FAFromGraph(g *automaton.Graph) (*FA, error) {
	lts, err := automaton.BuildFromGraph(g, nil, nil)
	if err != nil {
		return nil, err
	}
	return &FA{LTS: lts}, nil
}

// FAFromRegex builds an FA value directly from a regex literal, with
// no graph alphabet in scope to resolve a wildcard against (spec.md
// §4.9: FiniteAutomaton.from_string).
func FAFromRegex(pattern string) (*FA, error) {
	nfa, err := automaton.RegexToMinDFA(pattern, nil)
	if err != nil {
		return nil, err
	}
	return &FA{LTS: automaton.BuildFromNFA(nfa)}, nil
}

func (fa *FA) Kind() string   { return "fa" }
func (fa *FA) String() string { return fmt.Sprintf("FA(%d states)", fa.LTS.N()) }
func (fa *FA) Equal(other Value) bool {
	o, ok := other.(*FA)
	if !ok || fa.LTS.N() != o.LTS.N() {
		return false
	}
	return fa.Reachables().Equal(o.Reachables())
}

// Nodes returns every state's logical value (spec.md §4.9: nodes).
func (fa *FA) Nodes() *Set {
	s := &Set{}
	for _, st := range fa.LTS.States {
		_ = s.add(Atom{st.Value})
	}
	return s
}

// Marks returns every non-ε label in use (spec.md §4.9: marks).
func (fa *FA) Marks() *Set {
	s := &Set{}
	for lbl := range fa.LTS.Labels {
		if lbl.IsEpsilon() {
			continue
		}
		_ = s.add(Atom{string(lbl)})
	}
	return s
}

// Edges returns every (from, label, to) triple (spec.md §4.9: edges).
func (fa *FA) Edges() *Set {
	s := &Set{}
	for lbl, m := range fa.LTS.Labels {
		for _, p := range m.NonZero() {
			t, _ := NewTriple(Atom{fa.LTS.States[p.I].Value}, Atom{string(lbl)}, Atom{fa.LTS.States[p.J].Value})
			_ = s.add(t)
		}
	}
	return s
}

// Starting returns the set of start-state values (spec.md §4.9: starting).
func (fa *FA) Starting() *Set {
	s := &Set{}
	for _, st := range fa.LTS.States {
		if st.IsStart {
			_ = s.add(Atom{st.Value})
		}
	}
	return s
}

// Final returns the set of final-state values (spec.md §4.9: final).
func (fa *FA) Final() *Set {
	s := &Set{}
	for _, st := range fa.LTS.States {
		if st.IsFinal {
			_ = s.add(Atom{st.Value})
		}
	}
	return s
}

// Reachables returns the set of (start, final) value pairs connected
// by some path, including zero-length ones where a state is both
// start and final (spec.md §4.9: reachables).
func (fa *FA) Reachables() *Set {
	s := &Set{}
	for _, st := range fa.LTS.States {
		if st.IsStart && st.IsFinal {
			p, _ := NewPair(Atom{st.Value}, Atom{st.Value})
			_ = s.add(p)
		}
	}
	for _, pr := range fa.LTS.TransitiveClosure() {
		from, to := fa.LTS.States[pr.I], fa.LTS.States[pr.J]
		if from.IsStart && to.IsFinal {
			p, _ := NewPair(Atom{from.Value}, Atom{to.Value})
			_ = s.add(p)
		}
	}
	return s
}

// SetStart replaces the start-state marking (spec.md §4.9: set_start).
// An empty set means "every node" (original_source's
// `isinstance(None, starting.type)` convention for an untyped LSet).
func (fa *FA) SetStart(starting *Set) (*FA, error) {
	return fa.remark(starting, nil, false, false)
}

// SetFinal replaces the final-state marking (spec.md §4.9: set_final).
func (fa *FA) SetFinal(final *Set) (*FA, error) {
	return fa.remark(nil, final, false, false)
}

// AddStart adds to the start-state marking (spec.md §4.9: add_start).
func (fa *FA) AddStart(starting *Set) (*FA, error) {
	return fa.remark(starting, nil, true, false)
}

// AddFinal adds to the final-state marking (spec.md §4.9: add_final).
func (fa *FA) AddFinal(final *Set) (*FA, error) {
	return fa.remark(nil, final, false, true)
}

func (fa *FA) remark(starting, final *Set, addStart, addFinal bool) (*FA, error) {
	out := &automaton.LTS{Labels: fa.LTS.Labels}
	for _, st := range fa.LTS.States {
		ns := st
		if starting != nil {
			if starting.ElemKind == "" {
				ns.IsStart = true
			} else {
				in := starting.Contains(Atom{st.Value})
				ns.IsStart = in || (addStart && st.IsStart)
			}
		}
		if final != nil {
			if final.ElemKind == "" {
				ns.IsFinal = true
			} else {
				in := final.Contains(Atom{st.Value})
				ns.IsFinal = in || (addFinal && st.IsFinal)
			}
		}
		out.States = append(out.States, ns)
	}
	return &FA{LTS: out}, nil
}

// Intersect computes the product automaton (spec.md §4.9: intersect).
func (fa *FA) Intersect(other Value) (Value, error) {
	if ofa, ok := other.(*FA); ok {
		return &FA{LTS: automaton.Intersect(fa.LTS, ofa.LTS)}, nil
	}
	if ocfg, ok := other.(*CFGValue); ok {
		return ocfg.Intersect(fa)
	}
	return nil, &TypeError{Op: "intersect", Msg: "expected a finite automaton or CFG"}
}

// Union computes L(fa) ∪ L(other) (spec.md §4.9: union).
func (fa *FA) Union(other Value) (Value, error) {
	ofa, ok := other.(*FA)
	if !ok {
		return nil, &TypeError{Op: "union", Msg: "cannot union a finite automaton with a CFG"}
	}
	return &FA{LTS: automaton.BuildFromNFA(automaton.UnionNFA(fa.LTS.ToNFA(), ofa.LTS.ToNFA()))}, nil
}

// Concat computes L(fa)·L(other) (spec.md §4.9: concat).
func (fa *FA) Concat(other Value) (Value, error) {
	ofa, ok := other.(*FA)
	if !ok {
		return nil, &TypeError{Op: "concat", Msg: "cannot concat a finite automaton with a CFG"}
	}
	return &FA{LTS: automaton.BuildFromNFA(automaton.ConcatNFA(fa.LTS.ToNFA(), ofa.LTS.ToNFA()))}, nil
}

// Star computes L(fa)* (spec.md §4.9: star).
func (fa *FA) Star() *FA {
	return &FA{LTS: automaton.BuildFromNFA(automaton.StarNFA(fa.LTS.ToNFA()))}
}
