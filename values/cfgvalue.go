package values

import (
	"fmt"

	"github.com/reachql/reachql/grammar"
)

// CFGValue is a context-free-grammar runtime value (spec.md §4.9:
// LCFG), carrying both the grammar text and its derived RSM so
// combinators that need automaton shape (starting/final/nodes/edges/
// marks/reachables) don't rebuild it on every call.
type CFGValue struct {
	CFG *grammar.CFG
	rsm *grammar.RSM
}

// NewCFGValue wraps g, deriving its RSM eagerly (spec.md §4.8: a CFG
// value's combinators all go through its recursive state machine).
func NewCFGValue(g *grammar.CFG) *CFGValue {
	rsm := grammar.FromECFG(grammar.FromCFG(g)).Minimize()
	return &CFGValue{CFG: g, rsm: rsm}
}

// NewCFGValueFromECFG wraps an already-extended grammar (the second of
// spec.md §6's two grammar-file formats) directly, skipping the
// CFG->ECFG expansion step since e is already in that shape. CFG stays
// nil: an ECFG's regex-shaped bodies don't in general reduce back to a
// finite list of flat CFG productions, so union/concat/intersect (which
// build a new flat CFG from the productions) reject a value built this way.
func NewCFGValueFromECFG(e *grammar.ECFG) *CFGValue {
	return &CFGValue{rsm: grammar.FromECFG(e).Minimize()}
}

func (c *CFGValue) Kind() string { return "cfg" }
func (c *CFGValue) String() string {
	if c.CFG != nil {
		return c.CFG.String()
	}
	return fmt.Sprintf("CFG(%d nonterminals, extended)", len(c.rsm.Nonterminals))
}
func (c *CFGValue) Equal(other Value) bool {
	o, ok := other.(*CFGValue)
	if !ok {
		return false
	}
	if c.CFG != nil && o.CFG != nil {
		return c.CFG.String() == o.CFG.String()
	}
	return c.Reachables().Equal(o.Reachables())
}

// Nodes returns the union of every sub-automaton's states (spec.md
// §4.9: CFG's nodes/edges/marks go "union across all sub-automata").
func (c *CFGValue) Nodes() *Set {
	s := &Set{}
	for nt, nfa := range c.rsm.SubAutomata {
		for _, st := range nfa.States {
			_ = s.add(Atom{grammar.RSMState{Nonterminal: nt, Local: st}})
		}
	}
	return s
}

// Marks returns the union of every sub-automaton's transition labels.
func (c *CFGValue) Marks() *Set {
	s := &Set{}
	for _, nfa := range c.rsm.SubAutomata {
		for _, e := range nfa.Trans {
			_ = s.add(Atom{e.Label})
		}
	}
	return s
}

// Edges returns the union of every sub-automaton's transitions.
func (c *CFGValue) Edges() *Set {
	s := &Set{}
	for nt, nfa := range c.rsm.SubAutomata {
		for _, e := range nfa.Trans {
			from := Atom{grammar.RSMState{Nonterminal: nt, Local: e.From.(int)}}
			to := Atom{grammar.RSMState{Nonterminal: nt, Local: e.To.(int)}}
			t, _ := NewTriple(from, Atom{e.Label}, to)
			_ = s.add(t)
		}
	}
	return s
}

// Starting returns the start nonterminal's own sub-automaton's start
// states (spec.md §4.9: "set for the start nonterminal's sub-automaton
// only").
func (c *CFGValue) Starting() *Set {
	s := &Set{}
	nfa := c.rsm.SubAutomata[c.rsm.Start]
	for st := range nfa.Start {
		_ = s.add(Atom{grammar.RSMState{Nonterminal: c.rsm.Start, Local: st}})
	}
	return s
}

// Final returns the start nonterminal's own sub-automaton's final states.
func (c *CFGValue) Final() *Set {
	s := &Set{}
	nfa := c.rsm.SubAutomata[c.rsm.Start]
	for st := range nfa.Final {
		_ = s.add(Atom{grammar.RSMState{Nonterminal: c.rsm.Start, Local: st}})
	}
	return s
}

// Reachables reports pairs of the start nonterminal's own sub-automaton
// states connected by a derivation of the full recursive grammar,
// delegating to RSM.Reachables rather than tying the result to any
// concrete graph (Open Question decision, SPEC_FULL.md §7: a CFG value
// is never tied to a graph until used inside a cfpq query).
func (c *CFGValue) Reachables() *Set {
	s := &Set{}
	for _, pr := range c.rsm.Reachables() {
		from := Atom{grammar.RSMState{Nonterminal: c.rsm.Start, Local: pr[0]}}
		to := Atom{grammar.RSMState{Nonterminal: c.rsm.Start, Local: pr[1]}}
		p, _ := NewPair(from, to)
		_ = s.add(p)
	}
	return s
}

// Intersect computes L(c) ∩ L(fa) as a new CFG via the Bar-Hillel
// construction (spec.md §4.9: CFG×FA -> CFG; CFG×CFG fails).
func (c *CFGValue) Intersect(other Value) (Value, error) {
	ofa, ok := other.(*FA)
	if !ok {
		return nil, &TypeError{Op: "intersect", Msg: "a CFG can only be intersected with a finite automaton"}
	}
	if c.CFG == nil {
		return nil, &TypeError{Op: "intersect", Msg: "a CFG loaded from an extended grammar file has no flat productions to intersect"}
	}
	out := grammar.IntersectWithDFA(c.CFG, ofa.LTS.ToNFA())
	return NewCFGValue(out), nil
}

// Union fails unless other is also a CFG value (spec.md §4.9: CFG×CFG
// -> CFG; mixed -> fail).
func (c *CFGValue) Union(other Value) (Value, error) {
	oc, ok := other.(*CFGValue)
	if !ok {
		return nil, &TypeError{Op: "union", Msg: "cannot union a CFG with a finite automaton"}
	}
	if c.CFG == nil || oc.CFG == nil {
		return nil, &TypeError{Op: "union", Msg: "a CFG loaded from an extended grammar file has no flat productions to union"}
	}
	out := NewCFG("S#union")
	out.AddProduction(out.Start, []grammar.Symbol{{Name: c.CFG.Start, IsTerminal: false}})
	out.AddProduction(out.Start, []grammar.Symbol{{Name: oc.CFG.Start, IsTerminal: false}})
	mergeProductions(out, c.CFG)
	mergeProductions(out, oc.CFG)
	return NewCFGValue(out), nil
}

// Concat builds the grammar for L(c)·L(other) (spec.md §4.9).
func (c *CFGValue) Concat(other Value) (Value, error) {
	oc, ok := other.(*CFGValue)
	if !ok {
		return nil, &TypeError{Op: "concat", Msg: "cannot concat a CFG with a finite automaton"}
	}
	if c.CFG == nil || oc.CFG == nil {
		return nil, &TypeError{Op: "concat", Msg: "a CFG loaded from an extended grammar file has no flat productions to concat"}
	}
	out := NewCFG("S#concat")
	out.AddProduction(out.Start, []grammar.Symbol{
		{Name: c.CFG.Start, IsTerminal: false},
		{Name: oc.CFG.Start, IsTerminal: false},
	})
	mergeProductions(out, c.CFG)
	mergeProductions(out, oc.CFG)
	return NewCFGValue(out), nil
}

func mergeProductions(out *grammar.CFG, in *grammar.CFG) {
	for _, p := range in.Productions {
		out.AddProduction(p.Head, p.Body)
	}
}

// NewCFG is a small local alias so union/concat above read as grammar
// construction rather than raw struct literals.
func NewCFG(start string) *grammar.CFG { return grammar.NewCFG(start) }
