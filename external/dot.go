package external

import (
	"fmt"
	"os"
	"strings"
	"text/scanner"

	"github.com/reachql/reachql/automaton"
)

// GraphSource loads a labeled multigraph from a DOT file (spec.md §1's
// "DOT reader" external collaborator).
type GraphSource interface {
	LoadDOT(path string) (*automaton.Graph, error)
}

// DOTReader recognizes a `digraph { a -> b [label="x"]; }`-shaped
// subset of DOT: directed graphs, quoted or bare node identifiers, and
// `label=` edge attributes. Attributes other than label are ignored;
// an edge with no label attribute is dropped (spec.md §3/§8: "missing
// labels on edges are ignored"). Grounded on the teacher's
// lr/scanner.DefaultTokenizer text/scanner wrapping — a full grammar
// (terex's terexlang) wasn't warranted for a format this constrained.
type DOTReader struct{}

var _ GraphSource = DOTReader{}

// LoadDOT reads and parses the DOT file at path.
func (DOTReader) LoadDOT(path string) (*automaton.Graph, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reachql: reading DOT file %q: %w", path, err)
	}
	return ParseDOT(string(data))
}

// ParseDOT parses DOT source text directly (exported so tests don't
// need a file on disk).
func ParseDOT(src string) (*automaton.Graph, error) {
	p := &dotParser{}
	p.sc.Init(strings.NewReader(src))
	p.sc.Mode = scanner.ScanIdents | scanner.ScanInts | scanner.ScanStrings | scanner.ScanComments | scanner.SkipComments
	p.sc.Error = func(*scanner.Scanner, string) {}
	p.next()

	tracer().Debugf("parsing DOT source (%d bytes)", len(src))
	return p.parseGraph()
}

type dotParser struct {
	sc  scanner.Scanner
	tok string
	r   rune
}

func (p *dotParser) next() {
	p.r = p.sc.Scan()
	p.tok = p.sc.TokenText()
}

func (p *dotParser) errf(format string, args ...interface{}) error {
	return fmt.Errorf("reachql: DOT parse error at %s: %s", p.sc.Pos(), fmt.Sprintf(format, args...))
}

func (p *dotParser) expect(want string) error {
	if p.r == scanner.EOF || p.tok != want {
		return p.errf("expected %q, found %q", want, p.tok)
	}
	p.next()
	return nil
}

// expectArrow consumes the two-rune "->" edge operator. text/scanner
// has no notion of multi-char operators, so '-' and '>' arrive as two
// separate single-rune tokens.
func (p *dotParser) expectArrow() error {
	if err := p.expect("-"); err != nil {
		return err
	}
	return p.expect(">")
}

func (p *dotParser) ident() (string, error) {
	if p.r == scanner.EOF {
		return "", p.errf("expected an identifier")
	}
	text := unquote(p.tok)
	p.next()
	return text, nil
}

func (p *dotParser) parseGraph() (*automaton.Graph, error) {
	if strings.EqualFold(p.tok, "strict") {
		p.next()
	}
	if !strings.EqualFold(p.tok, "digraph") && !strings.EqualFold(p.tok, "graph") {
		return nil, p.errf("expected 'digraph', found %q", p.tok)
	}
	p.next()
	if p.tok != "{" {
		if _, err := p.ident(); err != nil { // optional graph name
			return nil, err
		}
	}
	if err := p.expect("{"); err != nil {
		return nil, err
	}

	g := automaton.NewGraph()
	for {
		if p.r == scanner.EOF {
			return nil, p.errf("unterminated graph body")
		}
		if p.tok == "}" {
			p.next()
			return g, nil
		}
		if p.tok == ";" {
			p.next()
			continue
		}
		from, err := p.ident()
		if err != nil {
			return nil, err
		}
		g.AddNode(from)
		if p.tok != "-" {
			// a standalone node statement, e.g. `"a";` or `"a" [shape=box];`
			if _, err := p.maybeAttrs(); err != nil {
				return nil, err
			}
			continue
		}
		if err := p.expectArrow(); err != nil {
			return nil, err
		}
		to, err := p.ident()
		if err != nil {
			return nil, err
		}
		g.AddNode(to)
		label, err := p.maybeAttrs()
		if err != nil {
			return nil, err
		}
		if label != "" {
			g.AddEdge(from, label, to)
		}
	}
}

// maybeAttrs parses an optional `[key=value, ...]` attribute list,
// returning the value of a `label` attribute if present (the empty
// string otherwise — an edge with no label is dropped by the caller).
func (p *dotParser) maybeAttrs() (string, error) {
	if p.tok != "[" {
		return "", nil
	}
	p.next()
	label := ""
	for p.tok != "]" {
		if p.r == scanner.EOF {
			return "", p.errf("unterminated attribute list")
		}
		key, err := p.ident()
		if err != nil {
			return "", err
		}
		if err := p.expect("="); err != nil {
			return "", err
		}
		val, err := p.ident()
		if err != nil {
			return "", err
		}
		if strings.EqualFold(key, "label") {
			label = val
		}
		if p.tok == "," {
			p.next()
		}
	}
	p.next() // consume "]"
	return label, nil
}

func unquote(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}
	return s
}
