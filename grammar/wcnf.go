package grammar

import "fmt"

// ToWCNF converts g into an equivalent grammar in weak Chomsky normal
// form (spec.md §4.6, §4.8 GLOSSARY): every production body is either
// empty, a single terminal, or exactly two nonterminals. Unlike strict
// CNF, ε-productions are not restricted to the start symbol — "weak"
// is exactly that relaxation, as built by the CFPQ matrix/Hellings
// kernels (original source's contex_free_to_weak_chomsky_form does the
// same three passes: eliminate unit productions, drop useless symbols,
// then binarize long bodies).
func ToWCNF(g *CFG) *CFG {
	h := eliminateUnitProductions(g)
	h = removeUselessSymbols(h)
	h = termify(h)
	h = binarize(h)
	return h
}

// eliminateUnitProductions replaces every chain of productions
// A -> B (B a lone nonterminal) by copying B's own productions into A,
// following the chain transitively (cycles are broken via a visited set).
func eliminateUnitProductions(g *CFG) *CFG {
	out := NewCFG(g.Start)
	out.Nonterminals = append([]string{}, g.Nonterminals...)
	out.Terminals = append([]string{}, g.Terminals...)
	for _, head := range g.Nonterminals {
		for _, body := range reachableNonUnitBodies(g, head, map[string]bool{}) {
			out.Productions = append(out.Productions, Production{Head: head, Body: body})
		}
	}
	return out
}

func reachableNonUnitBodies(g *CFG, head string, visited map[string]bool) [][]Symbol {
	if visited[head] {
		return nil
	}
	visited[head] = true
	var out [][]Symbol
	for _, p := range g.ProductionsOf(head) {
		if len(p.Body) == 1 && !p.Body[0].IsTerminal {
			out = append(out, reachableNonUnitBodies(g, p.Body[0].Name, visited)...)
			continue
		}
		out = append(out, p.Body)
	}
	return out
}

// removeUselessSymbols drops productions built from nonterminals that
// either can't derive any terminal string (non-generating) or aren't
// reachable from the start symbol.
func removeUselessSymbols(g *CFG) *CFG {
	generating := map[string]bool{}
	changed := true
	for changed {
		changed = false
		for _, p := range g.Productions {
			if generating[p.Head] {
				continue
			}
			ok := true
			for _, s := range p.Body {
				if !s.IsTerminal && !generating[s.Name] {
					ok = false
					break
				}
			}
			if ok {
				generating[p.Head] = true
				changed = true
			}
		}
	}
	reachable := map[string]bool{g.Start: true}
	frontier := []string{g.Start}
	for len(frontier) > 0 {
		head := frontier[0]
		frontier = frontier[1:]
		for _, p := range g.Productions {
			if p.Head != head || !generating[p.Head] {
				continue
			}
			for _, s := range p.Body {
				if !s.IsTerminal && generating[s.Name] && !reachable[s.Name] {
					reachable[s.Name] = true
					frontier = append(frontier, s.Name)
				}
			}
		}
	}
	out := NewCFG(g.Start)
	for _, p := range g.Productions {
		if !generating[p.Head] || !reachable[p.Head] {
			continue
		}
		keep := true
		for _, s := range p.Body {
			if !s.IsTerminal && (!generating[s.Name] || !reachable[s.Name]) {
				keep = false
				break
			}
		}
		if keep {
			out.AddProduction(p.Head, p.Body)
		}
	}
	return out
}

// termify is CNF's "TERM" step: a body of two or more symbols may not
// mix a terminal in with its neighbors in WCNF (every body is empty, a
// lone terminal, or exactly two nonterminals), so every terminal
// appearing inside a multi-symbol body is replaced by a fresh
// nonterminal that has its own single-terminal production. Without
// this step, binarize would pair a terminal directly against a
// nonterminal (e.g. "S -> a S b" would binarize to "S -> a #S.0" and
// "#S.0 -> S b", both illegal), which is exactly the shape that left
// cfpq/hellings.go and cfpq/matrix.go unable to find any terminal-seeded
// facts for a grammar like "S -> a S b | $".
func termify(g *CFG) *CFG {
	out := NewCFG(g.Start)
	termNT := map[string]string{}
	termNonterminalFor := func(terminal string) string {
		if name, ok := termNT[terminal]; ok {
			return name
		}
		name := fmt.Sprintf("#T.%s", terminal)
		termNT[terminal] = name
		out.AddProduction(name, []Symbol{{Name: terminal, IsTerminal: true}})
		return name
	}
	for _, p := range g.Productions {
		if len(p.Body) < 2 {
			out.AddProduction(p.Head, p.Body)
			continue
		}
		body := make([]Symbol, len(p.Body))
		for i, s := range p.Body {
			if s.IsTerminal {
				s = Symbol{Name: termNonterminalFor(s.Name), IsTerminal: false}
			}
			body[i] = s
		}
		out.AddProduction(p.Head, body)
	}
	return out
}

// binarize rewrites every production with a body longer than two
// symbols into a chain of fresh nonterminals so each resulting body has
// at most two symbols. Run after termify, so every body it sees is
// either short enough already or made entirely of nonterminals.
func binarize(g *CFG) *CFG {
	out := NewCFG(g.Start)
	fresh := 0
	for _, p := range g.Productions {
		if len(p.Body) <= 2 {
			out.AddProduction(p.Head, p.Body)
			continue
		}
		head := p.Head
		body := p.Body
		for len(body) > 2 {
			name := fmt.Sprintf("#%s.%d", p.Head, fresh)
			fresh++
			out.AddProduction(head, []Symbol{body[0], {Name: name, IsTerminal: false}})
			head = name
			body = body[1:]
		}
		out.AddProduction(head, body)
	}
	return out
}
