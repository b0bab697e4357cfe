package lang

import "github.com/reachql/reachql/values"

// Loader is the interpreter's external-I/O collaborator (spec.md §6's
// `load_dot`/`load_graph`), kept as an interface so lang has no direct
// dependency on package external — the CLI wires a concrete
// implementation at startup (SPEC_FULL.md §3).
type Loader interface {
	// LoadDOT resolves path per the Open Question decision recorded in
	// SPEC_FULL.md §7: a name beginning with "cfg" is read as a grammar
	// file (plain CFG, falling back to the extended regex-body format)
	// and returned as a CFG value; anything else is read as a DOT graph
	// and returned as an FA value (every node both start and final).
	LoadDOT(path string) (values.Value, error)
	// LoadGraph pulls a labeled multigraph from the external catalog by
	// name and returns it as an FA value, same default marking as LoadDOT.
	LoadGraph(name string) (values.Value, error)
}
