package values

import "fmt"

// Pair is an edge-like (starting, final) value (spec.md §4.9: LPair).
// Both components must share a Kind().
type Pair struct {
	Starting, Final Value
}

// NewPair validates that starting and final share a Kind() before
// constructing a Pair (LPair's constructor raises the same TypeError).
func NewPair(starting, final Value) (*Pair, error) {
	if starting.Kind() != final.Kind() {
		return nil, &TypeError{Op: "pair", Msg: "starting and final must be the same kind"}
	}
	return &Pair{Starting: starting, Final: final}, nil
}

func (p *Pair) Kind() string   { return "pair" }
func (p *Pair) String() string { return fmt.Sprintf("%s -> %s", p.Starting, p.Final) }
func (p *Pair) Equal(other Value) bool {
	o, ok := other.(*Pair)
	return ok && p.Starting.Equal(o.Starting) && p.Final.Equal(o.Final)
}

// Triple is a labeled-edge value (spec.md §4.9: LTriple): starting,
// mark (the edge label) and final.
type Triple struct {
	Starting, Mark, Final Value
}

// NewTriple validates that starting and final share a Kind().
func NewTriple(starting, mark, final Value) (*Triple, error) {
	if starting.Kind() != final.Kind() {
		return nil, &TypeError{Op: "triple", Msg: "starting and final must be the same kind"}
	}
	return &Triple{Starting: starting, Mark: mark, Final: final}, nil
}

func (t *Triple) Kind() string { return "triple" }
func (t *Triple) String() string {
	return fmt.Sprintf("%s -- %s -> %s", t.Starting, t.Mark, t.Final)
}
func (t *Triple) Equal(other Value) bool {
	o, ok := other.(*Triple)
	return ok && t.Starting.Equal(o.Starting) && t.Mark.Equal(o.Mark) && t.Final.Equal(o.Final)
}
