package grammar

import (
	"fmt"
	"sort"
	"strings"

	"github.com/reachql/reachql/automaton"
)

// ECFG is an extended context-free grammar: each nonterminal's body is
// a finite automaton over the alphabet of terminals and nonterminals,
// rather than a flat list of productions (spec.md §4.8 GLOSSARY:
// "extended CFG"). It is the intermediate form between a CFG and its
// recursive state machine.
type ECFG struct {
	Nonterminals []string
	Terminals    []string
	Start        string
	Productions  map[string]*automaton.NFA
}

// FromCFG builds the extended grammar equivalent to g: each
// nonterminal's automaton is the union, over every production with
// that head, of the straight-line automaton for its body (ε for an
// empty body), exactly mirroring extend_contex_free_grammar's
// `Regex(" ".join(body)).union(...)` accumulation.
func FromCFG(g *CFG) *ECFG {
	e := &ECFG{
		Nonterminals: append([]string{}, g.Nonterminals...),
		Terminals:    append([]string{}, g.Terminals...),
		Start:        g.Start,
		Productions:  map[string]*automaton.NFA{},
	}
	for _, head := range e.Nonterminals {
		n := automaton.NewNFA()
		start := n.AddState()
		final := n.AddState()
		n.SetStart(start)
		n.SetFinal(final)
		for _, p := range g.ProductionsOf(head) {
			cur := start
			for i, sym := range p.Body {
				if i == len(p.Body)-1 {
					n.AddTrans(cur, sym.Name, final)
				} else {
					next := n.AddState()
					n.AddTrans(cur, sym.Name, next)
					cur = next
				}
			}
			if len(p.Body) == 0 {
				n.AddTrans(start, "", final)
			}
		}
		e.Productions[head] = n
	}
	return e
}

// ParseECFG reads the extended grammar text format (spec.md §6):
// "Head -> body", where body is a regex over space-separated terminal
// and nonterminal names (|, *, +, (), $ as in automaton.ParseRegex,
// but each "letter" of the regex is a whole whitespace-delimited
// token rather than a single rune). A token is a nonterminal iff it is
// the head of some line in the grammar.
func ParseECFG(text, start string) (*ECFG, error) {
	lines := strings.Split(text, "\n")
	type rawLine struct {
		head, body string
	}
	var raws []rawLine
	heads := map[string]bool{}
	for lineNo, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		parts := strings.SplitN(line, "->", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("reachql: extended grammar line %d missing '->': %q", lineNo+1, line)
		}
		head := strings.TrimSpace(parts[0])
		if head == "" {
			return nil, fmt.Errorf("reachql: extended grammar line %d has an empty head", lineNo+1)
		}
		heads[head] = true
		raws = append(raws, rawLine{head: head, body: strings.TrimSpace(parts[1])})
	}
	if start == "" {
		if len(raws) == 0 {
			return nil, fmt.Errorf("reachql: empty extended grammar has no start symbol")
		}
		start = raws[0].head
	}
	e := &ECFG{Start: start, Productions: map[string]*automaton.NFA{}}
	bodies := map[string][]string{}
	var order []string
	for _, r := range raws {
		if _, ok := bodies[r.head]; !ok {
			order = append(order, r.head)
		}
		bodies[r.head] = append(bodies[r.head], r.body)
	}
	terminalSet := map[string]bool{}
	for _, head := range order {
		e.Nonterminals = append(e.Nonterminals, head)
		var alt *automaton.NFA
		for _, body := range bodies[head] {
			toks, err := tokenizeBody(body)
			if err != nil {
				return nil, err
			}
			n, err := automaton.ParseSymbolRegex(toks)
			if err != nil {
				return nil, fmt.Errorf("reachql: extended grammar production %s -> %q: %w", head, body, err)
			}
			for _, tok := range toks {
				if isRegexOp(tok) || tok == "epsilon" || tok == "ε" {
					continue
				}
				if !heads[tok] {
					terminalSet[tok] = true
				}
			}
			if alt == nil {
				alt = n
			} else {
				alt = automaton.UnionNFA(alt, n)
			}
		}
		if alt == nil {
			alt = automaton.NewNFA()
			s := alt.AddState()
			f := alt.AddState()
			alt.SetStart(s)
			alt.SetFinal(f)
		}
		e.Productions[head] = alt
	}
	for t := range terminalSet {
		e.Terminals = append(e.Terminals, t)
	}
	sort.Strings(e.Terminals)
	return e, nil
}

// isRegexOp reports whether tok is one of the regex operators
// automaton.ParseSymbolRegex reserves ("(", ")", "|", "*", "+") or its
// ε spelling ("$"), as opposed to a terminal/nonterminal symbol name.
func isRegexOp(tok string) bool {
	switch tok {
	case "(", ")", "|", "*", "+", "$":
		return true
	}
	return false
}

// tokenizeBody splits an extended-grammar production body (spec.md
// §4.8/§6: a regex over space-separated terminal and nonterminal
// names) into the token stream automaton.ParseSymbolRegex expects.
// Each regex operator is always its own token, even set off by no
// whitespace (so "(a|b)*" tokenizes the same as "( a | b ) *"); any
// other maximal run of non-whitespace, non-operator runes is one
// symbol name. "epsilon"/"ε" are accepted as synonyms for "$".
func tokenizeBody(body string) ([]string, error) {
	var toks []string
	var cur strings.Builder
	flush := func() {
		if cur.Len() == 0 {
			return
		}
		tok := cur.String()
		if tok == "epsilon" || tok == "ε" {
			tok = "$"
		}
		toks = append(toks, tok)
		cur.Reset()
	}
	for _, r := range body {
		switch {
		case r == ' ' || r == '\t':
			flush()
		case strings.ContainsRune("()|*+$", r):
			flush()
			toks = append(toks, string(r))
		default:
			cur.WriteRune(r)
		}
	}
	flush()
	return toks, nil
}
