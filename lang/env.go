package lang

import "github.com/reachql/reachql/values"

// scope is one frame of the environment stack (spec.md §4.11:
// "Environment is a stack of scopes; name lookup searches
// inner-to-outer; binding writes to the innermost"), grounded on the
// teacher's runtime package scope-tree idiom but reduced to a plain
// stack since the query language has no nested function scopes, only
// map/filter lambda bodies.
type scope struct {
	vars   map[string]values.Value
	parent *scope
}

// Env is the interpreter's variable environment.
type Env struct {
	top *scope
}

// NewEnv creates an environment with one (the global) scope.
func NewEnv() *Env {
	return &Env{top: &scope{vars: map[string]values.Value{}}}
}

// Push opens a fresh innermost scope (used for map/filter lambda bodies).
func (e *Env) Push() {
	e.top = &scope{vars: map[string]values.Value{}, parent: e.top}
}

// Pop closes the innermost scope.
func (e *Env) Pop() {
	if e.top.parent != nil {
		e.top = e.top.parent
	}
}

// Lookup searches inner-to-outer for name.
func (e *Env) Lookup(name string) (values.Value, bool) {
	for s := e.top; s != nil; s = s.parent {
		if v, ok := s.vars[name]; ok {
			return v, true
		}
	}
	return nil, false
}

// Bind writes to the innermost scope.
func (e *Env) Bind(name string, v values.Value) {
	e.top.vars[name] = v
}
