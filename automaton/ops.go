package automaton

// UnionNFA builds an NFA recognizing L(a) ∪ L(b), via ε-transitions
// from a fresh start into copies of a and b and from copies of their
// final states into a fresh final state — the same construction
// regex.go's unionFragment uses, generalized to two already-built NFAs
// (spec.md §4.9: FiniteAutomaton.union).
func UnionNFA(a, b *NFA) *NFA {
	n := NewNFA()
	start := n.AddState()
	final := n.AddState()
	n.SetStart(start)
	n.SetFinal(final)
	offsetA := copyInto(n, a)
	offsetB := copyInto(n, b)
	for s := range a.Start {
		n.AddTrans(start, "", offsetA+s)
	}
	for s := range a.Final {
		n.AddTrans(offsetA+s, "", final)
	}
	for s := range b.Start {
		n.AddTrans(start, "", offsetB+s)
	}
	for s := range b.Final {
		n.AddTrans(offsetB+s, "", final)
	}
	return n
}

// ConcatNFA builds an NFA recognizing L(a)·L(b): every final state of
// a gets an ε-transition to every start state of b; a's start states
// and b's final states are preserved as such (spec.md §4.9:
// FiniteAutomaton.concat).
func ConcatNFA(a, b *NFA) *NFA {
	n := NewNFA()
	offsetA := copyInto(n, a)
	offsetB := copyInto(n, b)
	for s := range a.Start {
		n.SetStart(offsetA + s)
	}
	for s := range b.Final {
		n.SetFinal(offsetB + s)
	}
	for sa := range a.Final {
		for sb := range b.Start {
			n.AddTrans(offsetA+sa, "", offsetB+sb)
		}
	}
	return n
}

// StarNFA builds an NFA recognizing L(a)* (spec.md §4.9:
// FiniteAutomaton.star): a fresh start/final pair, ε into a's starts,
// ε from a's finals back to a's starts and out to the fresh final, and
// a direct ε from start to final for the zero-repetition case.
func StarNFA(a *NFA) *NFA {
	n := NewNFA()
	start := n.AddState()
	final := n.AddState()
	n.SetStart(start)
	n.SetFinal(final)
	n.AddTrans(start, "", final)
	offset := copyInto(n, a)
	for s := range a.Start {
		n.AddTrans(start, "", offset+s)
	}
	for s := range a.Final {
		n.AddTrans(offset+s, "", final)
		for s2 := range a.Start {
			n.AddTrans(offset+s, "", offset+s2)
		}
	}
	return n
}

// copyInto appends a copy of src's states and transitions into dst
// (without copying src's start/final marks) and returns the offset
// added to every src state id to get its id in dst.
func copyInto(dst *NFA, src *NFA) int {
	offset := len(dst.States)
	for range src.States {
		dst.AddState()
	}
	for _, e := range src.Trans {
		dst.AddTrans(offset+e.From.(int), e.Label, offset+e.To.(int))
	}
	return offset
}
