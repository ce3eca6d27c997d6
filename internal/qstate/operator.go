package qstate

import "math/cmplx"

// Operator is a 2×2 complex matrix acting on single-qubit states, row-major.
type Operator [2][2]complex128

func Identity() Operator { return Operator{{1, 0}, {0, 1}} }
func SigmaX() Operator   { return Operator{{0, 1}, {1, 0}} }
func SigmaY() Operator   { return Operator{{0, -1i}, {1i, 0}} }
func SigmaZ() Operator   { return Operator{{1, 0}, {0, -1}} }

// Apply returns op|s⟩.
func (op Operator) Apply(s State) State {
	return State{
		Alpha: op[0][0]*s.Alpha + op[0][1]*s.Beta,
		Beta:  op[1][0]*s.Alpha + op[1][1]*s.Beta,
	}
}

func (op Operator) Add(o Operator) Operator {
	var r Operator
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			r[i][j] = op[i][j] + o[i][j]
		}
	}
	return r
}

func (op Operator) Scale(c complex128) Operator {
	var r Operator
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			r[i][j] = op[i][j] * c
		}
	}
	return r
}

func (op Operator) Mul(o Operator) Operator {
	var r Operator
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			r[i][j] = op[i][0]*o[0][j] + op[i][1]*o[1][j]
		}
	}
	return r
}

// Dagger returns the conjugate transpose.
func (op Operator) Dagger() Operator {
	return Operator{
		{cmplx.Conj(op[0][0]), cmplx.Conj(op[1][0])},
		{cmplx.Conj(op[0][1]), cmplx.Conj(op[1][1])},
	}
}

// Expect returns Re⟨s|op|s⟩. For Hermitian op the imaginary part vanishes.
func Expect(op Operator, s State) float64 {
	return real(s.Inner(op.Apply(s)))
}
