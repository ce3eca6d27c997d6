package solver

import (
	"math"

	"github.com/san-kum/blochsim/internal/qstate"
	"gonum.org/v1/gonum/spatial/r3"
)

// Generator is the time-independent Hamiltonian ½(x·σx + y·σy + z·σz).
type Generator struct {
	X, Y, Z float64
}

// RotationGenerator returns the generator rotating about (x, y, z) at rate |(x, y, z)|.
func RotationGenerator(x, y, z float64) Generator {
	return Generator{X: x, Y: y, Z: z}
}

func (g Generator) Matrix() qstate.Operator {
	h := qstate.SigmaX().Scale(complex(g.X, 0)).
		Add(qstate.SigmaY().Scale(complex(g.Y, 0))).
		Add(qstate.SigmaZ().Scale(complex(g.Z, 0)))
	return h.Scale(0.5)
}

// Rate is the angular speed of the rotation on the Bloch sphere.
func (g Generator) Rate() float64 {
	return r3.Norm(g.Axis())
}

func (g Generator) Axis() r3.Vec {
	return r3.Vec{X: g.X, Y: g.Y, Z: g.Z}
}

// Derive returns dψ/dt = -iHψ.
func (g Generator) Derive(psi qstate.State) qstate.State {
	return g.Matrix().Apply(psi).Scale(-1i)
}

// Propagator returns U(t) = exp(-iHt) = cos(ωt/2)·I - i·sin(ωt/2)·(n̂·σ).
func (g Generator) Propagator(t float64) qstate.Operator {
	w := g.Rate()
	if w == 0 {
		return qstate.Identity()
	}
	n := r3.Scale(1/w, g.Axis())
	half := w * t / 2
	ns := qstate.SigmaX().Scale(complex(n.X, 0)).
		Add(qstate.SigmaY().Scale(complex(n.Y, 0))).
		Add(qstate.SigmaZ().Scale(complex(n.Z, 0)))
	return qstate.Identity().Scale(complex(math.Cos(half), 0)).
		Add(ns.Scale(complex(0, -math.Sin(half))))
}
