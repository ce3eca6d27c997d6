package qstate

import (
	"fmt"
	"math"
	"math/cmplx"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"
)

// State is a single-qubit ket α|0⟩ + β|1⟩.
type State struct {
	Alpha complex128
	Beta  complex128
}

// New returns the normalized state with the given amplitudes.
func New(alpha, beta complex128) (State, error) {
	return State{Alpha: alpha, Beta: beta}.Normalize()
}

func Zero() State { return State{Alpha: 1} }
func One() State  { return State{Beta: 1} }

func Plus() State  { return State{Alpha: complex(math.Sqrt2/2, 0), Beta: complex(math.Sqrt2/2, 0)} }
func Minus() State { return State{Alpha: complex(math.Sqrt2/2, 0), Beta: complex(-math.Sqrt2/2, 0)} }

func PlusI() State  { return State{Alpha: complex(math.Sqrt2/2, 0), Beta: complex(0, math.Sqrt2/2)} }
func MinusI() State { return State{Alpha: complex(math.Sqrt2/2, 0), Beta: complex(0, -math.Sqrt2/2)} }

// FromBloch returns cos(θ/2)|0⟩ + e^{iφ} sin(θ/2)|1⟩.
func FromBloch(theta, phi float64) State {
	return State{
		Alpha: complex(math.Cos(theta/2), 0),
		Beta:  cmplx.Rect(math.Sin(theta/2), phi),
	}
}

// Parse resolves a state name: 0, 1, +, -, +i, -i (aliases up, down, x, -x, y, -y).
func Parse(name string) (State, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "0", "up", "z", "+z", "":
		return Zero(), nil
	case "1", "down", "-z":
		return One(), nil
	case "+", "x", "+x":
		return Plus(), nil
	case "-", "-x":
		return Minus(), nil
	case "+i", "y", "+y":
		return PlusI(), nil
	case "-i", "-y":
		return MinusI(), nil
	}
	return State{}, fmt.Errorf("%w: %q", ErrUnknownState, name)
}

// Names lists the canonical names accepted by Parse.
func Names() []string {
	return []string{"0", "1", "+", "-", "+i", "-i"}
}

func (s State) Norm() float64 {
	return math.Sqrt(real(s.Alpha)*real(s.Alpha) + imag(s.Alpha)*imag(s.Alpha) +
		real(s.Beta)*real(s.Beta) + imag(s.Beta)*imag(s.Beta))
}

func (s State) IsValid() bool {
	for _, c := range [2]complex128{s.Alpha, s.Beta} {
		if cmplx.IsNaN(c) || cmplx.IsInf(c) {
			return false
		}
	}
	return s.Norm() > 0
}

func (s State) Normalize() (State, error) {
	if !s.IsValid() {
		return State{}, ErrInvalidState
	}
	n := complex(s.Norm(), 0)
	return State{Alpha: s.Alpha / n, Beta: s.Beta / n}, nil
}

func (s State) Add(o State) State {
	return State{Alpha: s.Alpha + o.Alpha, Beta: s.Beta + o.Beta}
}

func (s State) Scale(c complex128) State {
	return State{Alpha: s.Alpha * c, Beta: s.Beta * c}
}

// Inner returns ⟨s|o⟩.
func (s State) Inner(o State) complex128 {
	return cmplx.Conj(s.Alpha)*o.Alpha + cmplx.Conj(s.Beta)*o.Beta
}

// Fidelity returns |⟨a|b⟩|², which ignores global phase.
func Fidelity(a, b State) float64 {
	c := a.Inner(b)
	return real(c)*real(c) + imag(c)*imag(c)
}

// Bloch returns the expectation values of σx, σy and σz.
func (s State) Bloch() r3.Vec {
	return r3.Vec{
		X: Expect(SigmaX(), s),
		Y: Expect(SigmaY(), s),
		Z: Expect(SigmaZ(), s),
	}
}

func (s State) String() string {
	return fmt.Sprintf("(%.4f)|0⟩ + (%.4f)|1⟩", s.Alpha, s.Beta)
}
