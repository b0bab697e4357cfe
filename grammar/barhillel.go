package grammar

import (
	"fmt"

	"github.com/reachql/reachql/automaton"
)

// IntersectWithDFA builds the CFG whose language is L(g) ∩ L(dfa), by
// the classical Bar-Hillel construction: a nonterminal <i,A,j> derives
// exactly the substrings A can produce while driving dfa from state i
// to state j. This is what original_source's LCFG.intersect literally
// calls into (pyformlang's CFG.intersection(nfa)); spec.md §4.9 only
// names the combinator, not its construction.
func IntersectWithDFA(g *CFG, dfa *automaton.NFA) *CFG {
	wcnf := ToWCNF(g)
	name := func(i int, symbol string, j int) string {
		return fmt.Sprintf("<%d,%s,%d>", i, symbol, j)
	}

	trans := map[int]map[string][]int{}
	for _, e := range dfa.Trans {
		from := e.From.(int)
		if trans[from] == nil {
			trans[from] = map[string][]int{}
		}
		trans[from][e.Label] = append(trans[from][e.Label], e.To.(int))
	}

	start := "S#barhillel"
	out := NewCFG(start)
	n := len(dfa.States)

	for _, p := range wcnf.Productions {
		switch len(p.Body) {
		case 0:
			for i := 0; i < n; i++ {
				out.AddProduction(name(i, p.Head, i), nil)
			}
		case 1:
			terminal := p.Body[0].Name
			for i := 0; i < n; i++ {
				for _, j := range trans[i][terminal] {
					out.AddProduction(name(i, p.Head, j), []Symbol{{Name: terminal, IsTerminal: true}})
				}
			}
		case 2:
			b, c := p.Body[0].Name, p.Body[1].Name
			for i := 0; i < n; i++ {
				for k := 0; k < n; k++ {
					for j := 0; j < n; j++ {
						out.AddProduction(name(i, p.Head, j), []Symbol{
							{Name: name(i, b, k), IsTerminal: false},
							{Name: name(k, c, j), IsTerminal: false},
						})
					}
				}
			}
		}
	}

	for i := range dfa.Start {
		for j := range dfa.Final {
			out.AddProduction(start, []Symbol{{Name: name(i, g.Start, j), IsTerminal: false}})
		}
	}
	return out
}
