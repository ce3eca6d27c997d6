package solver

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/san-kum/blochsim/internal/qstate"
)

// Solver samples the evolution of init under gen at each of times.
// The returned slice has len(times) entries; entry 0 is init at times[0].
type Solver interface {
	Solve(ctx context.Context, gen Generator, init qstate.State, times []float64) ([]qstate.State, error)
}

// Names lists the solvers New accepts.
func Names() []string {
	return []string{"exact", "rk4", "rk45"}
}

// New returns the solver registered under name. An empty name selects exact.
func New(name string) (Solver, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "exact":
		return NewExact(), nil
	case "rk4":
		return NewRK4(), nil
	case "rk45":
		return NewRK45(), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownSolver, name)
}

func validate(init qstate.State, times []float64) (qstate.State, error) {
	psi, err := init.Normalize()
	if err != nil {
		return qstate.State{}, err
	}
	for i, t := range times {
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return qstate.State{}, fmt.Errorf("%w: times[%d]=%v", ErrTimes, i, t)
		}
		if i > 0 && t < times[i-1] {
			return qstate.State{}, fmt.Errorf("%w: times[%d]=%v < times[%d]=%v", ErrTimes, i, t, i-1, times[i-1])
		}
	}
	return psi, nil
}

// Exact applies the closed-form propagator at each sample time.
type Exact struct{}

func NewExact() *Exact {
	return &Exact{}
}

func (e *Exact) Solve(ctx context.Context, gen Generator, init qstate.State, times []float64) ([]qstate.State, error) {
	psi, err := validate(init, times)
	if err != nil {
		return nil, err
	}

	out := make([]qstate.State, 0, len(times))
	for _, t := range times {
		select {
		case <-ctx.Done():
			return out, ctx.Err()
		default:
		}
		out = append(out, gen.Propagator(t-times[0]).Apply(psi))
	}
	return out, nil
}
