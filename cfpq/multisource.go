package cfpq

import (
	"github.com/reachql/reachql/automaton"
	"github.com/reachql/reachql/sparse"
)

// MultiSourceRegularQuery answers a regular-path query as one
// multi-source breadth-first search over the direct sum of the
// request and graph matrices, instead of building the full Kronecker
// intersection (spec.md §4.4). When separated is false, all of
// startingVertices share a single front and the result doesn't
// distinguish which source reached a given target; when true, one
// block of front rows (one row per request state) per source is
// tracked and each result pair names its source vertex.
func MultiSourceRegularQuery(graph *automaton.Graph, pattern string, startingVertices, finalVertices []interface{}, separated bool) ([]Pair, error) {
	alphabet := distinctLabels(graph)
	queryNFA, err := automaton.RegexToMinDFA(pattern, alphabet)
	if err != nil {
		return nil, err
	}
	queryLTS := automaton.BuildFromNFA(queryNFA)
	qr := queryLTS.N()

	graphNFA, err := automaton.GraphToNFA(graph, startingVertices, finalVertices)
	if err != nil {
		return nil, err
	}
	graphLTS := automaton.BuildFromNFA(graphNFA)
	v := graphLTS.N()

	d := automaton.DirectSum(queryLTS, graphLTS)
	width := qr + v

	var sources []int // graph-half column index of each front row's source vertex
	for i, s := range graphLTS.States {
		if s.IsStart {
			sources = append(sources, i)
		}
	}

	front := initialFront(qr, v, queryLTS, sources, separated)
	visited := sparse.New(front.M(), width)

	for {
		nnzBefore := visited.NNZ()
		base := front.Or(visited)
		next := sparse.New(front.M(), width)
		for _, m := range d.Labels {
			next = next.Or(sortLeftPartOfFront(base.Mul(m), qr, front.M()))
		}
		visited = visited.Or(next)
		front = next
		if visited.NNZ() == nnzBefore {
			break
		}
	}

	seen := map[[2]interface{}]bool{}
	var result []Pair
	for _, p := range visited.NonZero() {
		if p.J < qr {
			continue
		}
		graphVertex := p.J - qr
		requestState := p.I % qr
		if !queryLTS.States[requestState].IsFinal || !graphLTS.States[graphVertex].IsFinal {
			continue
		}
		graphValue := graphLTS.States[graphVertex].Value
		if separated {
			sourceRow := p.I / qr
			sourceValue := graphLTS.States[sources[sourceRow]].Value
			addPair(seen, &result, sourceValue, graphValue)
		} else {
			addPair(seen, &result, graphValue, graphValue)
		}
	}
	return result, nil
}

// initialFront builds F as described in spec.md §4.4: not separated
// gets one row per request start state (identity on the request half,
// V_s indicator on the graph half); separated gets one block of qr rows
// per graph start vertex, the block's request half the identity on the
// request start states and its graph half that vertex's single
// indicator column.
func initialFront(qr, v int, queryLTS *automaton.LTS, sources []int, separated bool) *sparse.BoolMatrix {
	width := qr + v
	if !separated {
		f := sparse.New(qr, width)
		for i, s := range queryLTS.States {
			if !s.IsStart {
				continue
			}
			f.Set(i, i)
			for _, src := range sources {
				f.Set(i, qr+src)
			}
		}
		return f
	}
	f := sparse.New(len(sources)*qr, width)
	for row, src := range sources {
		for i, s := range queryLTS.States {
			if !s.IsStart {
				continue
			}
			f.Set(row*qr+i, i)
			f.Set(row*qr+i, qr+src)
		}
	}
	return f
}

// sortLeftPartOfFront re-aligns rows produced from the left (request)
// block: a front row i belongs to block i/qr, and after a label
// transition its single request-half bit names the request state j it
// has moved to. The whole row — that bit and any graph-half bits
// alongside it — is relocated to row (block_base + j), so each
// request state keeps its own row within its block across iterations
// (spec.md §4.4: sort_left_part_of_front).
func sortLeftPartOfFront(m *sparse.BoolMatrix, qr, rows int) *sparse.BoolMatrix {
	out := sparse.New(rows, m.N())
	byRow := map[int][]sparse.Pair{}
	for _, p := range m.NonZero() {
		byRow[p.I] = append(byRow[p.I], p)
	}
	for i, cols := range byRow {
		block := i / qr
		requestCol := -1
		for _, p := range cols {
			if p.J < qr {
				requestCol = p.J
				break
			}
		}
		if requestCol < 0 {
			continue // no request-half bit: nothing to relocate this row to
		}
		newRow := block*qr + requestCol
		for _, p := range cols {
			out.Set(newRow, p.J)
		}
	}
	return out
}

func addPair(seen map[[2]interface{}]bool, result *[]Pair, from, to interface{}) {
	key := [2]interface{}{from, to}
	if seen[key] {
		return
	}
	seen[key] = true
	*result = append(*result, Pair{From: from, To: to})
}
