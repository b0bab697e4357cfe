package values

import (
	"sort"
	"strings"

	"github.com/cnf/structhash"
)

// Set is a homogeneous, unordered collection of values (spec.md §4.9:
// LSet). An empty set has no element kind yet and unifies with a set
// of any kind; once non-empty, every further element must share the
// first element's Kind() or Union/Add report a TypeError, mirroring
// LSet's same-type invariant.
type Set struct {
	ElemKind string
	Elems    []Value
	seen     map[string]bool
}

// contentHash is the structhash content-hash of v's canonical textual
// form (spec.md §4.11), used as Set's O(1) dedup fast path before the
// Equal fallback — the teacher's `hash(jadv, i)` Earley-backlink
// dedup, adapted to value content instead of a parser state
// (SPEC_FULL.md §2).
func contentHash(v Value) string {
	h, err := structhash.Hash(struct{ Kind, Text string }{v.Kind(), v.String()}, 1)
	if err != nil {
		// Kind()/String() always return plain strings.
		panic("reachql: cannot hash value " + v.String())
	}
	return h
}

// NewSet builds a Set from elems, checking they share one Kind().
func NewSet(elems ...Value) (*Set, error) {
	s := &Set{}
	for _, e := range elems {
		if err := s.add(e); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func (s *Set) add(v Value) error {
	if s.ElemKind == "" {
		s.ElemKind = v.Kind()
	} else if s.ElemKind != v.Kind() {
		return &TypeError{Op: "set", Msg: "elements of a set must be the same kind"}
	}
	if s.seen == nil {
		s.seen = map[string]bool{}
	}
	h := contentHash(v)
	if s.seen[h] {
		return nil
	}
	for _, e := range s.Elems {
		if e.Equal(v) {
			s.seen[h] = true
			return nil
		}
	}
	s.seen[h] = true
	s.Elems = append(s.Elems, v)
	return nil
}

func (s *Set) Kind() string { return "set" }

func (s *Set) Len() int { return len(s.Elems) }

func (s *Set) Contains(v Value) bool {
	for _, e := range s.Elems {
		if e.Equal(v) {
			return true
		}
	}
	return false
}

func (s *Set) Equal(other Value) bool {
	o, ok := other.(*Set)
	if !ok || s.Len() != o.Len() {
		return false
	}
	for _, e := range s.Elems {
		if !o.Contains(e) {
			return false
		}
	}
	return true
}

func (s *Set) String() string {
	if s.ElemKind == "" {
		return "<||>"
	}
	parts := make([]string, len(s.Elems))
	for i, e := range s.Elems {
		parts[i] = e.String()
	}
	sort.Strings(parts)
	return "<|" + strings.Join(parts, ", ") + "|>"
}

// Union returns the element-wise union of s and other (spec.md §4.9:
// Set is closed under union when both operands share an ElemKind, or
// either is empty). other must be a *Set; Value is the parameter type
// so Set satisfies the same union dispatch interface as FA and CFGValue.
func (s *Set) Union(other Value) (Value, error) {
	o, ok := other.(*Set)
	if !ok {
		return nil, &TypeError{Op: "union", Msg: "both operands of a set union must be sets"}
	}
	out := &Set{ElemKind: s.ElemKind}
	for _, e := range s.Elems {
		if err := out.add(e); err != nil {
			return nil, err
		}
	}
	for _, e := range o.Elems {
		if err := out.add(e); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Map applies f to every element, producing a new Set (spec.md §4.9's
// map/filter query-language builtins operate over Set values).
func (s *Set) Map(f func(Value) (Value, error)) (*Set, error) {
	out := &Set{}
	for _, e := range s.Elems {
		v, err := f(e)
		if err != nil {
			return nil, err
		}
		if err := out.add(v); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Filter keeps only elements for which pred returns true.
func (s *Set) Filter(pred func(Value) (bool, error)) (*Set, error) {
	out := &Set{ElemKind: s.ElemKind}
	for _, e := range s.Elems {
		ok, err := pred(e)
		if err != nil {
			return nil, err
		}
		if ok {
			out.Elems = append(out.Elems, e)
		}
	}
	return out, nil
}
