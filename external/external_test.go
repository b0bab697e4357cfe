package external

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func setupTracing(t *testing.T) func() {
	gtrace.SyntaxTracer = gotestingadapter.New()
	teardown := gotestingadapter.RedirectTracing(t)
	gtrace.SyntaxTracer.SetTraceLevel(tracing.LevelInfo)
	return teardown
}

func TestParseDOTBasic(t *testing.T) {
	defer setupTracing(t)()

	g, err := ParseDOT(`digraph {
		1 -> 2 [label="a"];
		2 -> 3 [label="b"];
		3 -> 1;
	}`)
	if err != nil {
		t.Fatal(err)
	}
	if len(g.Nodes) != 3 {
		t.Fatalf("expected 3 nodes, got %d: %v", len(g.Nodes), g.Nodes)
	}
	if len(g.Edges) != 2 {
		t.Fatalf("expected unlabeled 3->1 to be dropped, got %d edges: %v", len(g.Edges), g.Edges)
	}
}

func TestParseDOTQuotedIdentifiers(t *testing.T) {
	defer setupTracing(t)()

	g, err := ParseDOT(`digraph G {
		"node one" -> "node two" [label="x", color="blue"];
	}`)
	if err != nil {
		t.Fatal(err)
	}
	if !g.HasNode("node one") || !g.HasNode("node two") {
		t.Fatalf("expected quoted node ids to be unquoted, got %v", g.Nodes)
	}
	if g.Edges[0].Label != "x" {
		t.Fatalf("expected label %q, got %q", "x", g.Edges[0].Label)
	}
}

func TestDOTWriterRoundTripsThroughReader(t *testing.T) {
	defer setupTracing(t)()

	g, err := ParseDOT(`digraph { a -> b [label="x"]; }`)
	if err != nil {
		t.Fatal(err)
	}
	out := DOTWriter{}.WriteGraph(g)
	g2, err := ParseDOT(out)
	if err != nil {
		t.Fatalf("failed to re-parse written DOT: %s\n%s", err, out)
	}
	if len(g2.Edges) != 1 || g2.Edges[0].Label != "x" {
		t.Fatalf("round-trip lost the edge: %v", g2.Edges)
	}
}

func TestParseGrammarTextPlainCFG(t *testing.T) {
	defer setupTracing(t)()

	cfg, err := ParseGrammarText("S -> a S b | $\n")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Starting().Len() == 0 {
		t.Fatal("expected a plain CFG to have at least one start state")
	}
}

func TestParseGrammarTextExtendedFallsBack(t *testing.T) {
	defer setupTracing(t)()

	cfg, err := ParseGrammarText("S -> (a S b)*\n")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Reachables().Len() == 0 {
		t.Fatal("expected the extended grammar to have at least the empty-string self-loop")
	}
}

func TestCacheDirFetchMissReportsError(t *testing.T) {
	defer setupTracing(t)()

	dir := t.TempDir()
	c := CacheDir{Dir: dir}
	if _, err := c.Fetch("nonexistent"); err == nil {
		t.Fatal("expected a cache-miss error")
	}
}

func TestCacheDirFetchHit(t *testing.T) {
	defer setupTracing(t)()

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "mygraph.dot"), []byte(`digraph { a -> b [label="x"]; }`), 0o644); err != nil {
		t.Fatal(err)
	}
	c := CacheDir{Dir: dir}
	g, err := c.Fetch("mygraph")
	if err != nil {
		t.Fatal(err)
	}
	if len(g.Edges) != 1 {
		t.Fatalf("expected one edge, got %d", len(g.Edges))
	}
}

func TestLoaderDispatchesCFGPrefixToGrammar(t *testing.T) {
	defer setupTracing(t)()

	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "cfg_dyck.txt")
	if err := os.WriteFile(cfgPath, []byte("S -> a S b | $\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	dotPath := filepath.Join(dir, "graph.dot")
	if err := os.WriteFile(dotPath, []byte(`digraph { a -> b [label="x"]; }`), 0o644); err != nil {
		t.Fatal(err)
	}

	l := NewLoader(dir)
	v, err := l.LoadDOT(cfgPath)
	if err != nil {
		t.Fatal(err)
	}
	if v.Kind() != "cfg" {
		t.Fatalf("expected a cfg-kinded value for a cfg-prefixed path, got %s", v.Kind())
	}

	v, err = l.LoadDOT(dotPath)
	if err != nil {
		t.Fatal(err)
	}
	if v.Kind() != "fa" {
		t.Fatalf("expected an fa-kinded value for a non-cfg-prefixed path, got %s", v.Kind())
	}
}
