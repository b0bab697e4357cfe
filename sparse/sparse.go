/*
Package sparse implements boolean sparse matrices (the COO-ish, but
row-indexed, equivalent of package lr/sparse's IntMatrix). It is the
substrate every reachability engine in this module is built on: labeled
transition systems, recursive-state-machine automata and the CFPQ
closure kernels all reduce to boolean matrix operations in the end.

Unlike lr/sparse.IntMatrix (which stores at most two int32 values per
cell), a BoolMatrix cell carries no payload beyond "present" — exactly
what `+` (OR), `@` (boolean matrix product) and Kronecker product need.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2024 reachql contributors

*/
package sparse

import (
	"fmt"
	"sort"
)

// BoolMatrix is a boolean sparse matrix, m rows by n columns. Only
// true entries are stored. The zero value is not usable; construct
// with New.
type BoolMatrix struct {
	m, n int
	rows map[int]map[int]struct{}
}

// New creates an m×n all-false BoolMatrix.
func New(m, n int) *BoolMatrix {
	return &BoolMatrix{m: m, n: n, rows: make(map[int]map[int]struct{})}
}

// Identity creates the n×n identity matrix.
func Identity(n int) *BoolMatrix {
	id := New(n, n)
	for i := 0; i < n; i++ {
		id.Set(i, i)
	}
	return id
}

// M returns the row count.
func (b *BoolMatrix) M() int { return b.m }

// N returns the column count.
func (b *BoolMatrix) N() int { return b.n }

// Set marks entry (i,j) as true.
func (b *BoolMatrix) Set(i, j int) {
	row, ok := b.rows[i]
	if !ok {
		row = make(map[int]struct{})
		b.rows[i] = row
	}
	row[j] = struct{}{}
}

// Value reports whether entry (i,j) is set.
func (b *BoolMatrix) Value(i, j int) bool {
	row, ok := b.rows[i]
	if !ok {
		return false
	}
	_, ok = row[j]
	return ok
}

// NNZ is the exact count of true entries.
func (b *BoolMatrix) NNZ() int {
	n := 0
	for _, row := range b.rows {
		n += len(row)
	}
	return n
}

// Pair is a (row, col) coordinate of a non-zero entry.
type Pair struct{ I, J int }

// NonZero yields every non-zero (i,j), in row-major, then column-major
// order (deterministic, so closure kernels and tests are reproducible;
// the spec only guarantees "any order").
func (b *BoolMatrix) NonZero() []Pair {
	pairs := make([]Pair, 0, b.NNZ())
	rowIdx := make([]int, 0, len(b.rows))
	for i := range b.rows {
		rowIdx = append(rowIdx, i)
	}
	sort.Ints(rowIdx)
	for _, i := range rowIdx {
		row := b.rows[i]
		cols := make([]int, 0, len(row))
		for j := range row {
			cols = append(cols, j)
		}
		sort.Ints(cols)
		for _, j := range cols {
			pairs = append(pairs, Pair{i, j})
		}
	}
	return pairs
}

// Clone returns a deep copy.
func (b *BoolMatrix) Clone() *BoolMatrix {
	c := New(b.m, b.n)
	for i, row := range b.rows {
		nrow := make(map[int]struct{}, len(row))
		for j := range row {
			nrow[j] = struct{}{}
		}
		c.rows[i] = nrow
	}
	return c
}

// Or computes elementwise OR (the `+` operator of spec.md §3). Both
// operands must have matching shape. The receiver is left unmodified;
// a new matrix is returned.
func (b *BoolMatrix) Or(other *BoolMatrix) *BoolMatrix {
	if b.m != other.m || b.n != other.n {
		panic(fmt.Sprintf("sparse: shape mismatch in Or: %dx%d vs %dx%d", b.m, b.n, other.m, other.n))
	}
	r := b.Clone()
	for i, row := range other.rows {
		for j := range row {
			r.Set(i, j)
		}
	}
	return r
}

// OrInPlace ORs other into b, returning whether any new entry was
// added (a cheap "did anything change" signal for fixed-point loops,
// without recomputing NNZ from scratch).
func (b *BoolMatrix) OrInPlace(other *BoolMatrix) bool {
	changed := false
	for i, row := range other.rows {
		for j := range row {
			if !b.Value(i, j) {
				b.Set(i, j)
				changed = true
			}
		}
	}
	return changed
}

// Mul computes the boolean matrix product b @ other (OR of ANDs): a
// cell (i,k) is true iff some j has b[i,j] and other[j,k] both true.
// b's column count must equal other's row count.
func (b *BoolMatrix) Mul(other *BoolMatrix) *BoolMatrix {
	if b.n != other.m {
		panic(fmt.Sprintf("sparse: shape mismatch in Mul: %dx%d @ %dx%d", b.m, b.n, other.m, other.n))
	}
	r := New(b.m, other.n)
	for i, row := range b.rows {
		for j := range row {
			orow, ok := other.rows[j]
			if !ok {
				continue
			}
			for k := range orow {
				r.Set(i, k)
			}
		}
	}
	return r
}

// Kron computes the Kronecker product b ⊗ other. The result has shape
// (b.m*other.m) x (b.n*other.n); entry (i*other.m+k, j*other.n+l) is
// set iff b[i,j] and other[k,l] are both set.
func (b *BoolMatrix) Kron(other *BoolMatrix) *BoolMatrix {
	r := New(b.m*other.m, b.n*other.n)
	for i, row := range b.rows {
		for j := range row {
			for k, orow := range other.rows {
				for l := range orow {
					r.Set(i*other.m+k, j*other.n+l)
				}
			}
		}
	}
	return r
}

// BlockDiag builds the block-diagonal matrix [[b,0],[0,other]], shape
// (b.m+other.m) x (b.n+other.n). Used by the multi-source BFS direct
// sum (spec.md §4.1, §4.4).
func BlockDiag(b, other *BoolMatrix) *BoolMatrix {
	r := New(b.m+other.m, b.n+other.n)
	for i, row := range b.rows {
		for j := range row {
			r.Set(i, j)
		}
	}
	for i, row := range other.rows {
		for j := range row {
			r.Set(b.m+i, b.n+j)
		}
	}
	return r
}

// Equal reports whether two matrices have the same shape and the same
// non-zero entries.
func (b *BoolMatrix) Equal(other *BoolMatrix) bool {
	if b.m != other.m || b.n != other.n || b.NNZ() != other.NNZ() {
		return false
	}
	for i, row := range b.rows {
		orow, ok := other.rows[i]
		if !ok || len(orow) != len(row) {
			return false
		}
		for j := range row {
			if _, ok := orow[j]; !ok {
				return false
			}
		}
	}
	return true
}

func (b *BoolMatrix) String() string {
	return fmt.Sprintf("BoolMatrix(%dx%d, nnz=%d)", b.m, b.n, b.NNZ())
}
