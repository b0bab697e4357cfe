package external

import (
	"fmt"
	"strings"

	"github.com/reachql/reachql/automaton"
)

// DOTWriter serializes a Graph or LTS back to DOT text, used only by
// the CLI's `-dump` debug flag (SPEC_FULL.md §3) — no query-language
// operator produces DOT output.
type DOTWriter struct{}

// WriteGraph renders g as `digraph { ... }`.
func (DOTWriter) WriteGraph(g *automaton.Graph) string {
	var b strings.Builder
	b.WriteString("digraph {\n")
	for _, n := range g.Nodes {
		fmt.Fprintf(&b, "  %q;\n", fmt.Sprint(n))
	}
	for _, e := range g.Edges {
		fmt.Fprintf(&b, "  %q -> %q [label=%q];\n", fmt.Sprint(e.From), fmt.Sprint(e.To), e.Label)
	}
	b.WriteString("}\n")
	return b.String()
}

// WriteLTS renders lts as DOT, one edge per non-zero matrix entry per
// label, iterating labels via LTS.SortedLabels so the output is
// deterministic across runs despite Go's randomized map order.
func (DOTWriter) WriteLTS(lts *automaton.LTS) string {
	var b strings.Builder
	b.WriteString("digraph {\n")
	for i, st := range lts.States {
		shape := "circle"
		if st.IsFinal {
			shape = "doublecircle"
		}
		peripheries := ""
		if st.IsStart {
			peripheries = ", style=bold"
		}
		fmt.Fprintf(&b, "  %d [label=%q, shape=%s%s];\n", i, fmt.Sprint(st.Value), shape, peripheries)
	}
	for _, lbl := range lts.SortedLabels() {
		m := lts.Labels[lbl]
		for _, p := range m.NonZero() {
			fmt.Fprintf(&b, "  %d -> %d [label=%q];\n", p.I, p.J, lbl.String())
		}
	}
	b.WriteString("}\n")
	return b.String()
}
