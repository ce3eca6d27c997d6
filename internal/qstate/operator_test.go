package qstate

import (
	"math/cmplx"
	"testing"
)

func TestPauliAlgebra(t *testing.T) {
	// σx σy = iσz
	got := SigmaX().Mul(SigmaY())
	want := SigmaZ().Scale(1i)
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			if cmplx.Abs(got[i][j]-want[i][j]) > 1e-12 {
				t.Fatalf("σxσy[%d][%d]: expected %v, got %v", i, j, want[i][j], got[i][j])
			}
		}
	}

	for name, op := range map[string]Operator{"x": SigmaX(), "y": SigmaY(), "z": SigmaZ()} {
		sq := op.Mul(op)
		if sq != Identity() {
			t.Errorf("σ%s² should be identity, got %v", name, sq)
		}
		if op.Dagger() != op {
			t.Errorf("σ%s should be Hermitian", name)
		}
	}
}

func TestApplyFlip(t *testing.T) {
	s := SigmaX().Apply(Zero())
	if s != One() {
		t.Errorf("expected σx|0⟩ = |1⟩, got %v", s)
	}
}

func TestExpectAdd(t *testing.T) {
	op := SigmaX().Add(SigmaZ())
	if v := Expect(op, Zero()); v != 1 {
		t.Errorf("expected ⟨0|σx+σz|0⟩ = 1, got %f", v)
	}
}
