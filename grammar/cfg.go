// Copyright © 2024 reachql contributors. All rights reserved.

// Package grammar implements the context-free side of the engine:
// CFG/WCNF/ECFG/RSM data models and the text formats they are read
// from (spec.md §6).
package grammar

import (
	"fmt"
	"sort"
	"strings"

	"github.com/npillmayer/schuko/tracing"
)

func tracer() tracing.Trace {
	return tracing.Select("reachql.grammar")
}

// Production is one alternative body of a CFG production: a sequence
// of symbols (terminals and nonterminals, distinguished by Symbol.IsTerminal).
// A nil/empty Body denotes the ε-production.
type Production struct {
	Head string
	Body []Symbol
}

// Symbol is one grammar symbol, tagged terminal or nonterminal.
type Symbol struct {
	Name       string
	IsTerminal bool
}

func (s Symbol) String() string { return s.Name }

// CFG is a context-free grammar: nonterminals, terminals, a start
// symbol and a production list (spec.md §4.8 GLOSSARY: "context-free
// grammar").
type CFG struct {
	Nonterminals []string
	Terminals    []string
	Start        string
	Productions  []Production
}

// NewCFG creates an empty grammar with the given start symbol.
func NewCFG(start string) *CFG {
	return &CFG{Start: start}
}

// AddNonterminal registers a nonterminal, ignoring duplicates.
func (g *CFG) AddNonterminal(name string) {
	for _, n := range g.Nonterminals {
		if n == name {
			return
		}
	}
	g.Nonterminals = append(g.Nonterminals, name)
}

// AddTerminal registers a terminal, ignoring duplicates.
func (g *CFG) AddTerminal(name string) {
	for _, t := range g.Terminals {
		if t == name {
			return
		}
	}
	g.Terminals = append(g.Terminals, name)
}

// AddProduction registers head -> body, inferring terminal/nonterminal
// nature of any new symbol name from isTerminal.
func (g *CFG) AddProduction(head string, body []Symbol) {
	g.AddNonterminal(head)
	for _, s := range body {
		if s.IsTerminal {
			g.AddTerminal(s.Name)
		} else {
			g.AddNonterminal(s.Name)
		}
	}
	g.Productions = append(g.Productions, Production{Head: head, Body: body})
}

// ProductionsOf returns the bodies of every production with the given head.
func (g *CFG) ProductionsOf(head string) []Production {
	var out []Production
	for _, p := range g.Productions {
		if p.Head == head {
			out = append(out, p)
		}
	}
	return out
}

// IsNonterminal reports whether name is one of g's nonterminals.
func (g *CFG) IsNonterminal(name string) bool {
	for _, n := range g.Nonterminals {
		if n == name {
			return true
		}
	}
	return false
}

// NullableSymbols returns the set of nonterminals that can derive ε,
// computed by the standard fixed-point closure (used by the tensor
// CFPQ kernel to seed the diagonal before the first intersection,
// spec.md §9 design notes).
func (g *CFG) NullableSymbols() map[string]bool {
	nullable := map[string]bool{}
	changed := true
	for changed {
		changed = false
		for _, p := range g.Productions {
			if nullable[p.Head] {
				continue
			}
			allNullable := true
			for _, s := range p.Body {
				if s.IsTerminal || !nullable[s.Name] {
					allNullable = false
					break
				}
			}
			if allNullable {
				nullable[p.Head] = true
				changed = true
			}
		}
	}
	return nullable
}

// ParseCFG reads the plain production-per-line CFG text format (spec.md
// §6): "Head -> body1 | body2 | ...", symbols space-separated, ε/$
// denoting the empty body. A symbol is a terminal iff it is not, in
// any production of the grammar, the head of a production — the same
// convention original_source's CFG.from_text(...) infers from usage
// rather than from case.
func ParseCFG(text, start string) (*CFG, error) {
	lines := strings.Split(text, "\n")
	type rawProd struct {
		head string
		body []string
	}
	var raws []rawProd
	heads := map[string]bool{}
	for lineNo, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		parts := strings.SplitN(line, "->", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("reachql: grammar line %d missing '->': %q", lineNo+1, line)
		}
		head := strings.TrimSpace(parts[0])
		if head == "" {
			return nil, fmt.Errorf("reachql: grammar line %d has an empty head", lineNo+1)
		}
		heads[head] = true
		for _, alt := range strings.Split(parts[1], "|") {
			fields := strings.Fields(alt)
			if len(fields) == 1 && (fields[0] == "$" || fields[0] == "epsilon" || fields[0] == "ε") {
				fields = nil
			}
			raws = append(raws, rawProd{head: head, body: fields})
		}
	}
	if start == "" {
		if len(raws) == 0 {
			return nil, fmt.Errorf("reachql: empty grammar has no start symbol")
		}
		start = raws[0].head
	}
	g := NewCFG(start)
	for _, r := range raws {
		var body []Symbol
		for _, tok := range r.body {
			body = append(body, Symbol{Name: tok, IsTerminal: !heads[tok]})
		}
		g.AddProduction(r.head, body)
	}
	return g, nil
}

// String renders g back into the plain text format ParseCFG accepts,
// one line per head with its alternatives joined by '|'.
func (g *CFG) String() string {
	byHead := map[string][]string{}
	var order []string
	for _, p := range g.Productions {
		if _, seen := byHead[p.Head]; !seen {
			order = append(order, p.Head)
		}
		if len(p.Body) == 0 {
			byHead[p.Head] = append(byHead[p.Head], "$")
			continue
		}
		toks := make([]string, len(p.Body))
		for i, s := range p.Body {
			toks[i] = s.Name
		}
		byHead[p.Head] = append(byHead[p.Head], strings.Join(toks, " "))
	}
	sort.Strings(order)
	var sb strings.Builder
	for _, head := range order {
		fmt.Fprintf(&sb, "%s -> %s\n", head, strings.Join(byHead[head], " | "))
	}
	return sb.String()
}
