package automaton

import (
	"fmt"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/reachql/reachql"
	"github.com/reachql/reachql/sparse"
)

// LTS is a labeled transition system (spec.md §3): a dense list of
// states plus a mapping label -> boolean adjacency matrix over those
// states. It is the shape every closure kernel in package cfpq
// operates on.
type LTS struct {
	States  []State
	Labels  map[reachql.Label]*sparse.BoolMatrix
	byValue map[interface{}]int
}

// N is the number of states.
func (l *LTS) N() int { return len(l.States) }

// IndexOf returns the dense index of the state carrying the given
// logical value, or -1 if none.
func (l *LTS) IndexOf(value interface{}) int {
	if l.byValue == nil {
		return -1
	}
	idx, ok := l.byValue[value]
	if !ok {
		return -1
	}
	return idx
}

// Matrix returns the adjacency matrix for a label, creating an
// all-false one (of the right shape) if the label has not been used
// yet — "labels not present mean the empty relation" (spec.md §3).
func (l *LTS) Matrix(label reachql.Label) *sparse.BoolMatrix {
	if m, ok := l.Labels[label]; ok {
		return m
	}
	return sparse.New(l.N(), l.N())
}

// SetMatrix installs (overwriting) the adjacency matrix for a label.
func (l *LTS) SetMatrix(label reachql.Label, m *sparse.BoolMatrix) {
	if l.Labels == nil {
		l.Labels = map[reachql.Label]*sparse.BoolMatrix{}
	}
	l.Labels[label] = m
}

// SortedLabels returns l's labels in a deterministic order, used by
// package external's DOT writer so `-dump` output doesn't vary between
// runs (map iteration order is otherwise random).
func (l *LTS) SortedLabels() []reachql.Label {
	out := maps.Keys(l.Labels)
	slices.Sort(out)
	return out
}

// BuildFromGraph constructs an LTS from a labeled multigraph
// (spec.md §4.1). If start/final are nil every node is both a start
// and a final state. It fails if either set is not a subset of the
// graph's nodes.
func BuildFromGraph(g *Graph, start, final []interface{}) (*LTS, error) {
	lts := &LTS{byValue: map[interface{}]int{}}
	for i, n := range g.Nodes {
		lts.byValue[n] = i
	}
	startSet, err := subsetOrAll(g.Nodes, start, lts.byValue, "start")
	if err != nil {
		return nil, err
	}
	finalSet, err := subsetOrAll(g.Nodes, final, lts.byValue, "final")
	if err != nil {
		return nil, err
	}
	for i, n := range g.Nodes {
		lts.States = append(lts.States, State{
			Value:   n,
			IsStart: startSet[i],
			IsFinal: finalSet[i],
		})
	}
	n := len(g.Nodes)
	lts.Labels = map[reachql.Label]*sparse.BoolMatrix{}
	for _, e := range g.Edges {
		if e.Label == "" {
			continue // unlabeled edges are ignored (spec.md §3, §8)
		}
		lbl := reachql.Label(e.Label)
		m, ok := lts.Labels[lbl]
		if !ok {
			m = sparse.New(n, n)
			lts.Labels[lbl] = m
		}
		m.Set(lts.byValue[e.From], lts.byValue[e.To])
	}
	return lts, nil
}

func subsetOrAll(nodes []interface{}, subset []interface{}, index map[interface{}]int, which string) (map[int]bool, error) {
	out := map[int]bool{}
	if subset == nil {
		for i := range nodes {
			out[i] = true
		}
		return out, nil
	}
	for _, v := range subset {
		idx, ok := index[v]
		if !ok {
			return nil, fmt.Errorf("reachql: %s vertex %v is not a node of the graph", which, v)
		}
		out[idx] = true
	}
	return out, nil
}

// BuildFromNFA constructs an LTS from an NFA, analogous to
// BuildFromGraph (spec.md §4.1).
func BuildFromNFA(n *NFA) *LTS {
	lts := &LTS{byValue: map[interface{}]int{}}
	for _, s := range n.States {
		lts.byValue[s] = s
		lts.States = append(lts.States, State{
			Value:   s,
			IsStart: n.Start[s],
			IsFinal: n.Final[s],
		})
	}
	size := len(n.States)
	lts.Labels = map[reachql.Label]*sparse.BoolMatrix{}
	for _, e := range n.Trans {
		lbl := reachql.Label(e.Label) // "" naturally becomes reachql.Epsilon
		m, ok := lts.Labels[lbl]
		if !ok {
			m = sparse.New(size, size)
			lts.Labels[lbl] = m
		}
		m.Set(e.From.(int), e.To.(int))
	}
	return lts
}

// ToNFA is the inverse of BuildFromNFA: it preserves labels and
// start/final flags (spec.md §4.1).
func (l *LTS) ToNFA() *NFA {
	n := NewNFA()
	for i, s := range l.States {
		id := n.AddState()
		if id != i {
			panic("reachql: LTS states must be densely indexed from 0")
		}
		if s.IsStart {
			n.SetStart(id)
		}
		if s.IsFinal {
			n.SetFinal(id)
		}
	}
	for lbl, m := range l.Labels {
		for _, p := range m.NonZero() {
			n.AddTrans(p.I, string(lbl), p.J)
		}
	}
	return n
}

// TransitiveClosure computes R* = ⋃ₖ Rᵏ where R = Σ_ℓ Labels[ℓ]
// (spec.md §4.1): repeat R ← R + R@R until nnz(R) is stable, which
// converges in O(log N) matrix operations since every iteration
// doubles the path length already covered. Returns the
// non-zero (i,j) pairs of the fixed point, i.e. every pair of states
// connected by a non-empty path (of length >= 1).
func (l *LTS) TransitiveClosure() []sparse.Pair {
	n := l.N()
	r := sparse.New(n, n)
	for _, m := range l.Labels {
		r = r.Or(m)
	}
	for {
		nnz := r.NNZ()
		r = r.Or(r.Mul(r))
		if r.NNZ() == nnz {
			break
		}
	}
	return r.NonZero()
}

// Intersect computes the Kronecker-product LTS of a and b (spec.md
// §4.1, §3 GLOSSARY): for each label present in both, the product
// matrix is the Kronecker product M_a[l] ⊗ M_b[l]; labels present in
// only one operand get an all-false matrix of the product shape (kept
// so cardinality stays consistent across operations). The new state
// at index i*|b|+j carries PairValue{a_i.Value, b_j.Value}, and is a
// start/final state iff both a_i and b_j are.
func Intersect(a, b *LTS) *LTS {
	na, nb := a.N(), b.N()
	size := na * nb
	out := &LTS{byValue: map[interface{}]int{}}
	for i, sa := range a.States {
		for j, sb := range b.States {
			idx := i*nb + j
			val := PairValue{sa.Value, sb.Value}
			out.byValue[val] = idx
		}
	}
	out.States = make([]State, size)
	for i, sa := range a.States {
		for j, sb := range b.States {
			idx := i*nb + j
			out.States[idx] = State{
				Value:   PairValue{sa.Value, sb.Value},
				IsStart: sa.IsStart && sb.IsStart,
				IsFinal: sa.IsFinal && sb.IsFinal,
			}
		}
	}
	labelSet := map[reachql.Label]bool{}
	for lbl := range a.Labels {
		labelSet[lbl] = true
	}
	for lbl := range b.Labels {
		labelSet[lbl] = true
	}
	out.Labels = map[reachql.Label]*sparse.BoolMatrix{}
	for lbl := range labelSet {
		ma, aok := a.Labels[lbl]
		mb, bok := b.Labels[lbl]
		if aok && bok {
			out.Labels[lbl] = ma.Kron(mb)
		} else {
			out.Labels[lbl] = sparse.New(size, size)
		}
	}
	return out
}

// DirectSum builds the block-diagonal LTS of a and b (spec.md §4.1,
// §4.4): the state list is states(a) followed by states(b); only
// labels common to both operands get a matrix, each the block-diagonal
// [[M_a,0],[0,M_b]]. This is the substrate the multi-source BFS front
// engine (package cfpq) iterates over.
func DirectSum(a, b *LTS) *LTS {
	out := &LTS{byValue: map[interface{}]int{}}
	out.States = append(out.States, a.States...)
	out.States = append(out.States, b.States...)
	for i, s := range a.States {
		out.byValue[s.Value] = i
	}
	for i, s := range b.States {
		out.byValue[s.Value] = a.N() + i
	}
	out.Labels = map[reachql.Label]*sparse.BoolMatrix{}
	for lbl, ma := range a.Labels {
		if mb, ok := b.Labels[lbl]; ok {
			out.Labels[lbl] = sparse.BlockDiag(ma, mb)
		}
	}
	return out
}
