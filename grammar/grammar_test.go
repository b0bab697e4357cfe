package grammar

import (
	"testing"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestParseCFGAndWCNF(t *testing.T) {
	gtrace.SyntaxTracer = gotestingadapter.New()
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	gtrace.SyntaxTracer.SetTraceLevel(tracing.LevelInfo)

	g, err := ParseCFG("S -> a S b | $", "S")
	if err != nil {
		t.Fatal(err)
	}
	if len(g.ProductionsOf("S")) != 2 {
		t.Fatalf("expected 2 productions for S, got %d", len(g.ProductionsOf("S")))
	}
	null := g.NullableSymbols()
	if !null["S"] {
		t.Fatal("expected S to be nullable via S -> $")
	}

	wcnf := ToWCNF(g)
	for _, p := range wcnf.Productions {
		if len(p.Body) > 2 {
			t.Fatalf("production %v has body longer than 2 after WCNF conversion", p)
		}
	}
}

func TestECFGAndRSMReachables(t *testing.T) {
	g, err := ParseCFG("S -> a S b | $", "S")
	if err != nil {
		t.Fatal(err)
	}
	ecfg := FromCFG(g)
	if _, ok := ecfg.Productions["S"]; !ok {
		t.Fatal("expected S subautomaton in ECFG")
	}
	rsm := FromECFG(ecfg).Minimize()
	pairs := rsm.Reachables()
	if len(pairs) == 0 {
		t.Fatal("expected at least the empty-derivation (start,start) pair to be reachable")
	}
}

func TestParseECFG(t *testing.T) {
	e, err := ParseECFG("S -> a S b | $\n", "S")
	if err != nil {
		t.Fatal(err)
	}
	if e.Start != "S" {
		t.Fatalf("expected start symbol S, got %q", e.Start)
	}
	if _, ok := e.Productions["S"]; !ok {
		t.Fatal("expected S production in parsed ECFG")
	}
}
