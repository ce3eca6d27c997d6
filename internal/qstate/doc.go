// Package qstate provides the single-qubit state and operator primitives used
// by the rest of blochsim.
//
// The package defines:
//
//   - [State]: a normalized ket α|0⟩ + β|1⟩
//   - [Operator]: a 2×2 complex matrix (Pauli operators, Hamiltonians, propagators)
//   - [Expect]: expectation value of a Hermitian operator in a state
//
// # Example
//
//	psi := qstate.Zero()
//	x, y, z := qstate.Expect(qstate.SigmaX(), psi),
//		qstate.Expect(qstate.SigmaY(), psi),
//		qstate.Expect(qstate.SigmaZ(), psi)
//
// States are values; every operation returns a new State.
package qstate
