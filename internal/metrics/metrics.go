package metrics

import (
	"math"

	"github.com/san-kum/blochsim/internal/qstate"
	"gonum.org/v1/gonum/spatial/r3"
)

// Metric accumulates a scalar over the states of a trajectory.
type Metric interface {
	Name() string
	Observe(s qstate.State, t float64)
	Value() float64
	Reset()
}

// NormDrift records the largest deviation of ‖ψ‖ from 1.
type NormDrift struct {
	max float64
}

func NewNormDrift() *NormDrift {
	return &NormDrift{}
}

func (n *NormDrift) Name() string { return "norm_drift" }

func (n *NormDrift) Observe(s qstate.State, t float64) {
	n.max = math.Max(n.max, math.Abs(1-s.Norm()))
}

func (n *NormDrift) Value() float64 { return n.max }
func (n *NormDrift) Reset()         { n.max = 0 }

// Excursion records the largest angle (radians) between the Bloch vector of
// the first observed state and any later one.
type Excursion struct {
	origin  r3.Vec
	samples int
	max     float64
}

func NewExcursion() *Excursion {
	return &Excursion{}
}

func (e *Excursion) Name() string { return "excursion" }

func (e *Excursion) Observe(s qstate.State, t float64) {
	v := s.Bloch()
	if e.samples == 0 {
		e.origin = v
	}
	e.samples++

	no, nv := r3.Norm(e.origin), r3.Norm(v)
	if no == 0 || nv == 0 {
		return
	}
	cos := r3.Dot(e.origin, v) / (no * nv)
	cos = math.Max(-1, math.Min(1, cos))
	e.max = math.Max(e.max, math.Acos(cos))
}

func (e *Excursion) Value() float64 { return e.max }

func (e *Excursion) Reset() {
	e.origin = r3.Vec{}
	e.samples = 0
	e.max = 0
}

// Defaults returns one fresh instance of every built-in metric.
func Defaults() []Metric {
	return []Metric{NewNormDrift(), NewExcursion()}
}
