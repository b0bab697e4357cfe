package cfpq

import (
	"testing"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"

	"github.com/reachql/reachql/automaton"
	"github.com/reachql/reachql/grammar"
)

func setupTracing(t *testing.T) func() {
	gtrace.SyntaxTracer = gotestingadapter.New()
	teardown := gotestingadapter.RedirectTracing(t)
	gtrace.SyntaxTracer.SetTraceLevel(tracing.LevelInfo)
	return teardown
}

func dyckLikeGraph() *automaton.Graph {
	g := automaton.NewGraph()
	g.AddEdge("1", "a", "2")
	g.AddEdge("2", "b", "3")
	return g
}

func TestHellingsMatchesMatrixAndTensor(t *testing.T) {
	defer setupTracing(t)()

	graph := dyckLikeGraph()
	req, err := grammar.ParseCFG("S -> a S b | $", "S")
	if err != nil {
		t.Fatal(err)
	}

	hellings := countPairsFor(Hellings(graph, req), "S")
	matrix := countPairsFor(Matrix(graph, req), "S")
	tensor := countPairsFor(Tensor(graph, req), "S")

	if hellings == 0 {
		t.Fatal("expected Hellings to find at least the empty-string self-loops")
	}
	if hellings != matrix {
		t.Fatalf("Hellings and Matrix disagree: %d vs %d", hellings, matrix)
	}
	if hellings != tensor {
		t.Fatalf("Hellings and Tensor disagree: %d vs %d", hellings, tensor)
	}

	pairs := ContextFreePathQuery(graph, req, AlgorithmHellings, nil, nil)
	found := false
	for _, p := range pairs {
		if p.From == "1" && p.To == "3" {
			found = true
		}
	}
	if !found {
		t.Fatal("expected (1,3) to satisfy S -> a S b | $ over 1-a->2-b->3")
	}
}

func countPairsFor(triples []Triple, variable string) int {
	n := 0
	for _, tr := range triples {
		if tr.Variable == variable {
			n++
		}
	}
	return n
}

func TestRegularPathQuery(t *testing.T) {
	defer setupTracing(t)()

	graph := automaton.NewGraph()
	graph.AddEdge("1", "a", "2")
	graph.AddEdge("2", "a", "3")

	pairs, err := RegularPathQuery(graph, "a*", nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	want := map[[2]string]bool{
		{"1", "1"}: true, {"2", "2"}: true, {"3", "3"}: true,
		{"1", "2"}: true, {"2", "3"}: true, {"1", "3"}: true,
	}
	if len(pairs) != len(want) {
		t.Fatalf("expected %d pairs for a* over a two-hop chain, got %d: %v", len(want), len(pairs), pairs)
	}
}

func TestMultiSourceRegularQuery(t *testing.T) {
	defer setupTracing(t)()

	graph := automaton.NewGraph()
	graph.AddEdge("1", "a", "2")
	graph.AddEdge("2", "a", "3")

	pairs, err := MultiSourceRegularQuery(graph, "a+", []interface{}{"1"}, nil, false)
	if err != nil {
		t.Fatal(err)
	}
	found2, found3 := false, false
	for _, p := range pairs {
		if p.To == "2" {
			found2 = true
		}
		if p.To == "3" {
			found3 = true
		}
	}
	if !found2 || !found3 {
		t.Fatalf("expected both 2 and 3 reachable from 1 via a+, got %v", pairs)
	}
}
