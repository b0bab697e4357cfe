package external

import (
	"strings"

	"github.com/reachql/reachql/lang"
	"github.com/reachql/reachql/values"
)

var _ lang.Loader = Loader{}

// Loader implements lang.Loader, wiring DOTReader/TextGrammarSource/
// CacheDir together per the `load_dot`/`load_graph` Open Question
// decision recorded in SPEC_FULL.md §7: a load_dot path beginning with
// "cfg" is read as a grammar-text file and returned as a CFG value;
// any other path is read as a DOT graph and returned as an FA value.
// load_graph always pulls a named graph from the cache directory and
// wraps it as an FA value too.
type Loader struct {
	Graphs   GraphSource
	Grammars GrammarSource
	Catalog  Catalog
}

// NewLoader builds a Loader with the default DOT reader, grammar
// reader and on-disk cache directory Catalog.
func NewLoader(cacheDir string) Loader {
	return Loader{
		Graphs:   DOTReader{},
		Grammars: TextGrammarSource{},
		Catalog:  CacheDir{Dir: cacheDir},
	}
}

// LoadDOT implements lang.Loader.
func (l Loader) LoadDOT(path string) (values.Value, error) {
	base := path
	if idx := strings.LastIndexByte(path, '/'); idx >= 0 {
		base = path[idx+1:]
	}
	if strings.HasPrefix(base, "cfg") {
		return l.Grammars.LoadGrammar(path)
	}
	g, err := l.Graphs.LoadDOT(path)
	if err != nil {
		return nil, err
	}
	return values.FAFromGraph(g)
}

// LoadGraph implements lang.Loader.
func (l Loader) LoadGraph(name string) (values.Value, error) {
	g, err := l.Catalog.Fetch(name)
	if err != nil {
		return nil, err
	}
	return values.FAFromGraph(g)
}
