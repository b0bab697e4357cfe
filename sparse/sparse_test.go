package sparse

import "testing"

func TestSetValue(t *testing.T) {
	m := New(3, 3)
	m.Set(1, 2)
	if !m.Value(1, 2) {
		t.Fatal("expected (1,2) to be set")
	}
	if m.Value(2, 1) {
		t.Fatal("expected (2,1) to be unset")
	}
	if m.NNZ() != 1 {
		t.Fatalf("NNZ() = %d, want 1", m.NNZ())
	}
}

func TestOr(t *testing.T) {
	a := New(2, 2)
	a.Set(0, 0)
	b := New(2, 2)
	b.Set(0, 0)
	b.Set(1, 1)
	r := a.Or(b)
	if r.NNZ() != 2 {
		t.Fatalf("Or NNZ() = %d, want 2", r.NNZ())
	}
	if a.NNZ() != 1 {
		t.Fatal("Or must not mutate its receiver")
	}
}

func TestMul(t *testing.T) {
	// a: 0->1, b: 1->2. a@b should have 0->2.
	a := New(3, 3)
	a.Set(0, 1)
	b := New(3, 3)
	b.Set(1, 2)
	r := a.Mul(b)
	if !r.Value(0, 2) {
		t.Fatal("expected (0,2) in product")
	}
	if r.NNZ() != 1 {
		t.Fatalf("product NNZ() = %d, want 1", r.NNZ())
	}
}

func TestKron(t *testing.T) {
	a := New(2, 2)
	a.Set(0, 1)
	b := New(2, 2)
	b.Set(1, 0)
	r := a.Kron(b)
	if r.M() != 4 || r.N() != 4 {
		t.Fatalf("Kron shape = %dx%d, want 4x4", r.M(), r.N())
	}
	// a[0,1]=true, b[1,0]=true => r[0*2+1, 1*2+0] = r[1,2] = true
	if !r.Value(1, 2) {
		t.Fatal("expected (1,2) set in Kronecker product")
	}
	if r.NNZ() != 1 {
		t.Fatalf("Kron NNZ() = %d, want 1", r.NNZ())
	}
}

func TestBlockDiag(t *testing.T) {
	a := New(2, 2)
	a.Set(0, 1)
	b := New(2, 2)
	b.Set(1, 0)
	r := BlockDiag(a, b)
	if r.M() != 4 || r.N() != 4 {
		t.Fatalf("BlockDiag shape = %dx%d, want 4x4", r.M(), r.N())
	}
	if !r.Value(0, 1) || !r.Value(3, 2) {
		t.Fatal("expected block-diagonal entries preserved")
	}
	if r.Value(0, 2) || r.Value(2, 1) {
		t.Fatal("expected off-block entries to stay false")
	}
}

func TestTransitiveClosureBySquaring(t *testing.T) {
	// path 0->1->2->3, closure should connect every i<j.
	r := New(4, 4)
	r.Set(0, 1)
	r.Set(1, 2)
	r.Set(2, 3)
	for {
		nnz := r.NNZ()
		r = r.Or(r.Mul(r))
		if r.NNZ() == nnz {
			break
		}
	}
	for i := 0; i < 4; i++ {
		for j := i + 1; j < 4; j++ {
			if !r.Value(i, j) {
				t.Fatalf("expected closure to connect %d->%d", i, j)
			}
		}
	}
}
