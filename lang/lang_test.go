package lang

import (
	"strings"
	"testing"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"

	"github.com/reachql/reachql/values"
)

func setupTracing(t *testing.T) func() {
	gtrace.SyntaxTracer = gotestingadapter.New()
	teardown := gotestingadapter.RedirectTracing(t)
	gtrace.SyntaxTracer.SetTraceLevel(tracing.LevelInfo)
	return teardown
}

func runAndCollect(t *testing.T, src string) []string {
	t.Helper()
	prog, err := Parse(src)
	if err != nil {
		t.Fatalf("parse error: %s", err)
	}
	var out []string
	interp := NewInterp(nil, func(s string) { out = append(out, s) })
	if err := interp.Run(prog); err != nil {
		t.Fatalf("eval error: %s", err)
	}
	return out
}

func TestLexerTokensBasicProgram(t *testing.T) {
	defer setupTracing(t)()

	lex := NewLexer(`let x := 1
print x
`)
	var kinds []TokType
	for {
		tok, err := lex.NextToken()
		if err != nil {
			t.Fatal(err)
		}
		kinds = append(kinds, tok.kind)
		if tok.kind == tokEOF {
			break
		}
	}
	want := []TokType{tokLet, tokIdent, tokAssign, tokInt, tokNewline, tokPrint, tokIdent, tokNewline, tokEOF}
	if len(kinds) != len(want) {
		t.Fatalf("got %d tokens, want %d: %v", len(kinds), len(want), kinds)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Fatalf("token %d: got %v, want %v", i, kinds[i], want[i])
		}
	}
}

func TestLetAndPrintInt(t *testing.T) {
	defer setupTracing(t)()

	out := runAndCollect(t, "let x := 42\nprint x\n")
	if len(out) != 1 || out[0] != "42" {
		t.Fatalf("unexpected output: %v", out)
	}
}

func TestSetLiteralAndUnion(t *testing.T) {
	defer setupTracing(t)()

	out := runAndCollect(t, `
let a := <| "x", "y" |>
let b := <| "y", "z" |>
print a union b
`)
	if len(out) != 1 {
		t.Fatalf("expected one print, got %v", out)
	}
	if !strings.Contains(out[0], "x") || !strings.Contains(out[0], "z") {
		t.Fatalf("expected union to contain x and z, got %s", out[0])
	}
}

func TestRangeLiteralAndIn(t *testing.T) {
	defer setupTracing(t)()

	out := runAndCollect(t, `
let r := <| 1 .. 3 |>
print 2 in r
print 5 in r
`)
	if len(out) != 2 || out[0] != "true" || out[1] != "false" {
		t.Fatalf("unexpected output: %v", out)
	}
}

func TestRegexLiteralReachables(t *testing.T) {
	defer setupTracing(t)()

	out := runAndCollect(t, `
let a := r"ab"
print a reachables
`)
	if len(out) != 1 {
		t.Fatalf("expected one print, got %v", out)
	}
}

func TestCFGLiteralIntersectWithRegex(t *testing.T) {
	defer setupTracing(t)()

	out := runAndCollect(t, `
let g := c"S -> a S b | $"
let w := r"aabb"
let both := g intersect w
print both reachables
`)
	if len(out) != 1 {
		t.Fatalf("expected one print, got %v", out)
	}
	if out[0] == "<||>" || out[0] == "" {
		t.Fatalf("expected a nonempty reachables set, got %q", out[0])
	}
}

func TestMapFilterOverSet(t *testing.T) {
	defer setupTracing(t)()

	out := runAndCollect(t, `
let pairs := <| (1, 2), (3, 4) |>
let firsts := pairs map ((x, y) => x)
print firsts
`)
	if len(out) != 1 {
		t.Fatalf("expected one print, got %v", out)
	}
	if !strings.Contains(out[0], "1") || !strings.Contains(out[0], "3") {
		t.Fatalf("expected firsts to contain 1 and 3, got %s", out[0])
	}
}

func TestUndefinedVariableIsDomainError(t *testing.T) {
	defer setupTracing(t)()

	prog, err := Parse("print y\n")
	if err != nil {
		t.Fatal(err)
	}
	interp := NewInterp(nil, func(string) {})
	err = interp.Run(prog)
	if err == nil {
		t.Fatal("expected an error for an undefined variable")
	}
	diag, ok := err.(*Diagnostic)
	if !ok || diag.DKind != DomainError {
		t.Fatalf("expected a DomainError diagnostic, got %T: %v", err, err)
	}
}

func TestLoadDOTGoesThroughLoader(t *testing.T) {
	defer setupTracing(t)()

	loader := stubLoader{
		dot: map[string]values.Value{"graph.dot": values.Atom{Raw: "loaded"}},
	}
	prog, err := Parse(`let g := load_dot "graph.dot"
print g
`)
	if err != nil {
		t.Fatal(err)
	}
	var out []string
	interp := NewInterp(loader, func(s string) { out = append(out, s) })
	if err := interp.Run(prog); err != nil {
		t.Fatal(err)
	}
	if len(out) != 1 || out[0] != "loaded" {
		t.Fatalf("unexpected output: %v", out)
	}
}

type stubLoader struct {
	dot   map[string]values.Value
	graph map[string]values.Value
}

func (s stubLoader) LoadDOT(path string) (values.Value, error) {
	if v, ok := s.dot[path]; ok {
		return v, nil
	}
	return nil, newDiag(IOError, Span{}, "no such file %q", path)
}

func (s stubLoader) LoadGraph(name string) (values.Value, error) {
	if v, ok := s.graph[name]; ok {
		return v, nil
	}
	return nil, newDiag(IOError, Span{}, "no such graph %q", name)
}

func TestLMLexerMatchesHandWrittenLexerTokenStream(t *testing.T) {
	defer setupTracing(t)()

	src := `let x := 1
print x
`
	lmLex, err := NewLMLexer(src)
	if err != nil {
		t.Fatal(err)
	}
	handLex := NewLexer(src)
	for {
		want, err := handLex.NextToken()
		if err != nil {
			t.Fatal(err)
		}
		got, err := lmLex.NextToken()
		if err != nil {
			t.Fatal(err)
		}
		if got.kind != want.kind {
			t.Fatalf("kind mismatch: got %v, want %v (lexeme %q)", got.kind, want.kind, want.lexeme)
		}
		if want.kind == tokEOF {
			break
		}
	}
}
