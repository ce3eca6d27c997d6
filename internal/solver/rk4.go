package solver

import (
	"context"
	"math"

	"github.com/san-kum/blochsim/internal/qstate"
)

// DefaultMaxStep bounds the RK4 substep between samples.
const DefaultMaxStep = 1e-3

type RK4 struct {
	MaxStep float64
}

func NewRK4() *RK4 {
	return &RK4{MaxStep: DefaultMaxStep}
}

func (r *RK4) Step(gen Generator, x qstate.State, dt float64) qstate.State {
	k1 := gen.Derive(x)
	k2 := gen.Derive(x.Add(k1.Scale(complex(dt*0.5, 0))))
	k3 := gen.Derive(x.Add(k2.Scale(complex(dt*0.5, 0))))
	k4 := gen.Derive(x.Add(k3.Scale(complex(dt, 0))))

	dt6 := complex(dt/6.0, 0)
	sum := k1.Add(k2.Scale(2)).Add(k3.Scale(2)).Add(k4)
	return x.Add(sum.Scale(dt6))
}

func (r *RK4) Solve(ctx context.Context, gen Generator, init qstate.State, times []float64) ([]qstate.State, error) {
	x, err := validate(init, times)
	if err != nil {
		return nil, err
	}

	maxStep := r.MaxStep
	if maxStep <= 0 {
		maxStep = DefaultMaxStep
	}

	out := make([]qstate.State, 0, len(times))
	for i, t := range times {
		select {
		case <-ctx.Done():
			return out, ctx.Err()
		default:
		}

		if i > 0 {
			span := t - times[i-1]
			n := int(math.Ceil(span / maxStep))
			for j := 0; j < n; j++ {
				x = r.Step(gen, x, span/float64(n))
			}
			if !x.IsValid() {
				return out, qstate.ErrInvalidState
			}
		}
		out = append(out, x)
	}
	return out, nil
}
