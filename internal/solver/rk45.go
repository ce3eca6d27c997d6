package solver

import (
	"context"
	"fmt"
	"math"
	"math/cmplx"

	"github.com/san-kum/blochsim/internal/qstate"
)

// Dormand-Prince coefficients (RK45)
var (
	b21 = 1.0 / 5.0
	b31 = 3.0 / 40.0
	b32 = 9.0 / 40.0
	b41 = 44.0 / 45.0
	b42 = -56.0 / 15.0
	b43 = 32.0 / 9.0
	b51 = 19372.0 / 6561.0
	b52 = -25360.0 / 2187.0
	b53 = 64448.0 / 6561.0
	b54 = -212.0 / 729.0
	b61 = 9017.0 / 3168.0
	b62 = -355.0 / 33.0
	b63 = 46732.0 / 5247.0
	b64 = 49.0 / 176.0
	b65 = -5103.0 / 18656.0

	c1 = 35.0 / 384.0
	c3 = 500.0 / 1113.0
	c4 = 125.0 / 192.0
	c5 = -2187.0 / 6784.0
	c6 = 11.0 / 84.0

	dc1 = c1 - 5179.0/57600.0
	dc3 = c3 - 7571.0/16695.0
	dc4 = c4 - 393.0/640.0
	dc5 = c5 - -92097.0/339200.0
	dc6 = c6 - 187.0/2100.0
	dc7 = -1.0 / 40.0
)

type RK45 struct {
	Tolerance float64
	InitialDt float64
	MinDt     float64

	safety   float64
	minScale float64
	maxScale float64
}

func NewRK45() *RK45 {
	return &RK45{
		Tolerance: 1e-9,
		InitialDt: 1e-2,
		MinDt:     1e-12,
		safety:    0.9,
		minScale:  0.2,
		maxScale:  10.0,
	}
}

// combine returns x + dt·Σ w_i k_i.
func combine(x qstate.State, dt float64, ks []qstate.State, ws []float64) qstate.State {
	acc := x
	for i, k := range ks {
		acc = acc.Add(k.Scale(complex(dt*ws[i], 0)))
	}
	return acc
}

// StepAdaptive advances one Dormand-Prince step and returns the new state, the
// suggested next step, and the error ratio (accepted when <= 1).
func (r *RK45) StepAdaptive(gen Generator, x qstate.State, dt, tol float64) (qstate.State, float64, float64) {
	k1 := gen.Derive(x)
	k2 := gen.Derive(combine(x, dt, []qstate.State{k1}, []float64{b21}))
	k3 := gen.Derive(combine(x, dt, []qstate.State{k1, k2}, []float64{b31, b32}))
	k4 := gen.Derive(combine(x, dt, []qstate.State{k1, k2, k3}, []float64{b41, b42, b43}))
	k5 := gen.Derive(combine(x, dt, []qstate.State{k1, k2, k3, k4}, []float64{b51, b52, b53, b54}))
	k6 := gen.Derive(combine(x, dt, []qstate.State{k1, k2, k3, k4, k5}, []float64{b61, b62, b63, b64, b65}))

	xNew := combine(x, dt, []qstate.State{k1, k3, k4, k5, k6}, []float64{c1, c3, c4, c5, c6})
	k7 := gen.Derive(xNew)

	errEst := combine(qstate.State{}, dt,
		[]qstate.State{k1, k3, k4, k5, k6, k7},
		[]float64{dc1, dc3, dc4, dc5, dc6, dc7})

	errMax := 0.0
	pairs := [2][3]complex128{
		{errEst.Alpha, x.Alpha, k1.Alpha},
		{errEst.Beta, x.Beta, k1.Beta},
	}
	for _, p := range pairs {
		scale := cmplx.Abs(p[1]) + cmplx.Abs(p[2]*complex(dt, 0)) + 1e-10
		errMax = math.Max(errMax, cmplx.Abs(p[0])/scale)
	}

	errRatio := errMax / tol

	var dtNew float64
	switch {
	case errRatio > 1:
		dtNew = dt * math.Max(r.minScale, r.safety*math.Pow(errRatio, -0.25))
	case errRatio > 0:
		dtNew = dt * math.Min(r.maxScale, r.safety*math.Pow(errRatio, -0.2))
	default:
		dtNew = dt * r.maxScale
	}

	return xNew, dtNew, errRatio
}

func (r *RK45) Solve(ctx context.Context, gen Generator, init qstate.State, times []float64) ([]qstate.State, error) {
	x, err := validate(init, times)
	if err != nil {
		return nil, err
	}

	dt := r.InitialDt
	out := make([]qstate.State, 0, len(times))
	for i, target := range times {
		select {
		case <-ctx.Done():
			return out, ctx.Err()
		default:
		}

		if i > 0 {
			t := times[i-1]
			for target-t > 0 {
				h := math.Min(dt, target-t)
				xNew, dtNew, ratio := r.StepAdaptive(gen, x, h, r.Tolerance)
				if ratio > 1 {
					if dtNew < r.MinDt {
						return out, fmt.Errorf("%w: t=%.6g dt=%.3g", ErrStepTooSmall, t, dtNew)
					}
					dt = dtNew
					continue
				}
				x = xNew
				if h == target-t {
					t = target
				} else {
					t += h
				}
				dt = dtNew
			}
			if !x.IsValid() {
				return out, qstate.ErrInvalidState
			}
		}
		out = append(out, x)
	}
	return out, nil
}
