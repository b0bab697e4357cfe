package values

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

func TestSetUnionRejectsMixedKinds(t *testing.T) {
	defer setupTracing(t)()

	a, err := NewSet(Atom{"x"}, Atom{"y"})
	if err != nil {
		t.Fatal(err)
	}
	b, err := NewSet(Atom{"y"}, Atom{"z"})
	if err != nil {
		t.Fatal(err)
	}
	uVal, err := a.Union(b)
	if err != nil {
		t.Fatal(err)
	}
	u, ok := uVal.(*Set)
	if !ok {
		t.Fatalf("expected a *Set, got %T", uVal)
	}
	if u.Len() != 3 {
		t.Fatalf("expected 3 distinct elements, got %d", u.Len())
	}

	pair, _ := NewPair(Atom{"x"}, Atom{"y"})
	mixed, err := NewSet(Atom{"x"})
	if err != nil {
		t.Fatal(err)
	}
	if err := mixed.add(pair); err == nil {
		t.Fatal("expected a TypeError mixing atoms and pairs in one set")
	}
}

func TestPairRequiresSameKind(t *testing.T) {
	defer setupTracing(t)()

	if _, err := NewPair(Atom{"x"}, Atom{"y"}); err != nil {
		t.Fatal(err)
	}
	if _, err := NewPair(Atom{"x"}, Atom{1}); err == nil {
		t.Fatal("expected a TypeError pairing a string atom with an int atom")
	}
	set, _ := NewSet(Atom{"x"})
	if _, err := NewPair(Atom{"x"}, set); err == nil {
		t.Fatal("expected a TypeError pairing an atom with a set")
	}
}

func TestFAStartFinalAndReachables(t *testing.T) {
	defer setupTracing(t)()

	g := automaton.NewGraph()
	g.AddEdge("1", "a", "2")
	g.AddEdge("2", "a", "3")

	fa, err := FAFromGraph(g)
	if err != nil {
		t.Fatal(err)
	}
	if fa.Starting().Len() != 3 || fa.Final().Len() != 3 {
		t.Fatal("expected every node to start and end, since no explicit marking was given")
	}

	narrowed, err := fa.SetStart(mustSet(t, Atom{"1"}))
	if err != nil {
		t.Fatal(err)
	}
	narrowed, err = narrowed.SetFinal(mustSet(t, Atom{"3"}))
	if err != nil {
		t.Fatal(err)
	}
	if narrowed.Starting().Len() != 1 || narrowed.Final().Len() != 1 {
		t.Fatal("expected set_start/set_final to narrow to exactly one state each")
	}
	pairs := narrowed.Reachables()
	want, _ := NewPair(Atom{"1"}, Atom{"3"})
	if !pairs.Contains(want) {
		t.Fatalf("expected (1,3) in reachables, got %s", pairs)
	}
}

func mustSet(t *testing.T, elems ...Value) *Set {
	t.Helper()
	s, err := NewSet(elems...)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestCFGValueStartingAndReachables(t *testing.T) {
	defer setupTracing(t)()

	g, err := grammar.ParseCFG("S -> a S b | $", "S")
	if err != nil {
		t.Fatal(err)
	}
	cfg := NewCFGValue(g)
	if cfg.Starting().Len() == 0 {
		t.Fatal("expected at least one start state in the start nonterminal's sub-automaton")
	}
	if cfg.Reachables().Len() == 0 {
		t.Fatal("expected at least the epsilon self-pair in reachables")
	}
}

func TestCFGIntersectWithFA(t *testing.T) {
	defer setupTracing(t)()

	g, err := grammar.ParseCFG("S -> a S b | $", "S")
	if err != nil {
		t.Fatal(err)
	}
	cfg := NewCFGValue(g)
	fa, err := FAFromRegex("aabb")
	if err != nil {
		t.Fatal(err)
	}
	out, err := cfg.Intersect(fa)
	if err != nil {
		t.Fatal(err)
	}
	intersected, ok := out.(*CFGValue)
	if !ok {
		t.Fatalf("expected a CFGValue, got %T", out)
	}
	if intersected.Reachables().Len() == 0 {
		t.Fatal("expected a a b b to survive intersection with S -> a S b | $")
	}
}

func TestMatchPatterns(t *testing.T) {
	defer setupTracing(t)()

	pair, err := NewPair(Atom{"u"}, Atom{"v"})
	if err != nil {
		t.Fatal(err)
	}
	env, err := Match(PairPattern{First: Name{"x"}, Second: Name{"y"}}, pair)
	if err != nil {
		t.Fatal(err)
	}
	if !env["x"].Equal(Atom{"u"}) || !env["y"].Equal(Atom{"v"}) {
		t.Fatalf("unexpected bindings: %v", env)
	}

	if _, err := Match(TriplePattern{Any{}, Any{}, Any{}}, pair); err == nil {
		t.Fatal("expected a triple pattern to fail matching a pair")
	}
}
