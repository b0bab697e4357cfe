package external

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/reachql/reachql/automaton"
)

// Catalog pulls a named labeled multigraph from an external store
// (spec.md §1's graph-catalog collaborator; `load_graph` in §6). No
// network client is written here — spec.md treats the downloader
// itself as out of scope — so Catalog only serves what is already
// present in a local cache directory, returning an IOError-shaped
// error on a cache miss, which is the path a real downloader would
// plug into.
type Catalog interface {
	Fetch(name string) (*automaton.Graph, error)
}

// CacheDir is a Catalog backed by a directory of "<name>.dot" files.
type CacheDir struct {
	Dir string
}

var _ Catalog = CacheDir{}

// DefaultCacheDir returns $XDG_CACHE_HOME/reachql/graphs, falling back
// to $HOME/.cache/reachql/graphs when XDG_CACHE_HOME is unset.
func DefaultCacheDir() string {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		base = filepath.Join(os.Getenv("HOME"), ".cache")
	}
	return filepath.Join(base, "reachql", "graphs")
}

// Fetch reads "<name>.dot" from the cache directory.
func (c CacheDir) Fetch(name string) (*automaton.Graph, error) {
	path := filepath.Join(c.Dir, name+".dot")
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("reachql: graph %q is not in the local cache (%s): %w", name, path, err)
	}
	return DOTReader{}.LoadDOT(path)
}
