package external

import (
	"fmt"
	"os"
	"strings"

	"github.com/reachql/reachql/grammar"
	"github.com/reachql/reachql/values"
)

// GrammarSource loads a CFG value from a grammar-text file, trying
// both of spec.md §6's formats (the plain production-per-line CFG
// grammar and the extended regex-body ECFG grammar).
type GrammarSource interface {
	LoadGrammar(path string) (*values.CFGValue, error)
}

// TextGrammarSource implements GrammarSource by trying the plain CFG
// parser first and falling back to the ECFG parser if that fails
// (Open Question decision, SPEC_FULL.md §7), mirroring
// extend_contex_free_grammar's dual handling of already-a-CFG vs.
// needs-extending input in the original source.
type TextGrammarSource struct{}

var _ GrammarSource = TextGrammarSource{}

// LoadGrammar reads path and parses it as a CFG, falling back to ECFG.
func (TextGrammarSource) LoadGrammar(path string) (*values.CFGValue, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reachql: reading grammar file %q: %w", path, err)
	}
	return ParseGrammarText(string(data))
}

// ParseGrammarText parses text directly, for tests and txtar fixtures.
// It tries the plain CFG grammar first, falling back to the ECFG
// parser if a production body carries an extended-regex metacharacter
// or the plain parse itself fails (Open Question decision,
// SPEC_FULL.md §7).
func ParseGrammarText(text string) (*values.CFGValue, error) {
	if !looksExtended(text) {
		if cfg, err := grammar.ParseCFG(text, ""); err == nil {
			tracer().Debugf("grammar text parsed as a plain CFG")
			return values.NewCFGValue(cfg), nil
		}
	}
	ecfg, err := grammar.ParseECFG(text, "")
	if err != nil {
		return nil, fmt.Errorf("reachql: grammar text is neither a valid CFG nor ECFG: %w", err)
	}
	tracer().Debugf("grammar text parsed as an extended CFG")
	return values.NewCFGValueFromECFG(ecfg), nil
}

// looksExtended reports whether any production body contains a regex
// metacharacter other than '|' (which both formats use as an
// alternative separator), signaling an ECFG-format file.
func looksExtended(text string) bool {
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		parts := strings.SplitN(line, "->", 2)
		if len(parts) != 2 {
			continue
		}
		if strings.ContainsAny(parts[1], "()*+") {
			return true
		}
	}
	return false
}
