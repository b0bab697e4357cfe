package values

import "fmt"

// Pattern is a query-language destructuring pattern (spec.md §4.10):
// `_`, a bound name, `(p1,p2)` or `(p1,p2,p3)`. Grounded on
// original_source's interpret/patterns.py PAny/PName/PPair/PTriple.
type Pattern interface {
	match(v Value, env map[string]Value) error
}

// Any is the `_` pattern: always succeeds, binds nothing.
type Any struct{}

func (Any) match(Value, map[string]Value) error { return nil }

// Name binds v to a variable (spec.md §4.10: "match name x binds {x ↦ v}").
type Name struct {
	Ident string
}

func (p Name) match(v Value, env map[string]Value) error {
	env[p.Ident] = v
	return nil
}

// PairPattern matches a Pair (or a native 2-tuple, via
// asPair) and recurses into both components.
type PairPattern struct {
	First, Second Pattern
}

func (p PairPattern) match(v Value, env map[string]Value) error {
	first, second, ok := asPair(v)
	if !ok {
		return fmt.Errorf("reachql: cannot match: expected a pair, got %s", v.Kind())
	}
	if err := p.First.match(first, env); err != nil {
		return err
	}
	return p.Second.match(second, env)
}

// TriplePattern matches a Triple (or a native 3-tuple) and recurses
// into all three components.
type TriplePattern struct {
	First, Second, Third Pattern
}

func (p TriplePattern) match(v Value, env map[string]Value) error {
	first, second, third, ok := asTriple(v)
	if !ok {
		return fmt.Errorf("reachql: cannot match: expected a triple, got %s", v.Kind())
	}
	if err := p.First.match(first, env); err != nil {
		return err
	}
	if err := p.Second.match(second, env); err != nil {
		return err
	}
	return p.Third.match(third, env)
}

// Tuple is the native, pattern-only tuple value. The `(e1, e2)`/
// `(e1,e2,e3)` literal syntax (spec.md §6: expr '(' expr (',' expr){1,2}
// ')') evaluates to a Pair or Triple; asPair/asTriple destructure a
// Pair/Triple and a Tuple of the same length alike (spec.md §4.10 last
// sentence) so the same patterns apply uniformly.
type Tuple struct {
	Elems []Value
}

func (t Tuple) Kind() string { return "tuple" }
func (t Tuple) String() string {
	s := "("
	for i, e := range t.Elems {
		if i > 0 {
			s += ", "
		}
		s += e.String()
	}
	return s + ")"
}
func (t Tuple) Equal(other Value) bool {
	o, ok := other.(Tuple)
	if !ok || len(t.Elems) != len(o.Elems) {
		return false
	}
	for i := range t.Elems {
		if !t.Elems[i].Equal(o.Elems[i]) {
			return false
		}
	}
	return true
}

func asPair(v Value) (Value, Value, bool) {
	switch p := v.(type) {
	case *Pair:
		return p.Starting, p.Final, true
	case Tuple:
		if len(p.Elems) == 2 {
			return p.Elems[0], p.Elems[1], true
		}
	}
	return nil, nil, false
}

func asTriple(v Value) (Value, Value, Value, bool) {
	switch p := v.(type) {
	case *Triple:
		return p.Starting, p.Mark, p.Final, true
	case Tuple:
		if len(p.Elems) == 3 {
			return p.Elems[0], p.Elems[1], p.Elems[2], true
		}
	}
	return nil, nil, nil, false
}

// Match runs pattern p against v, returning the bindings it produces
// or a "cannot match" error (spec.md §4.10).
func Match(p Pattern, v Value) (map[string]Value, error) {
	env := map[string]Value{}
	if err := p.match(v, env); err != nil {
		return nil, err
	}
	return env, nil
}
