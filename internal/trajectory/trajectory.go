package trajectory

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"github.com/san-kum/blochsim/internal/metrics"
	"github.com/san-kum/blochsim/internal/qstate"
	"github.com/san-kum/blochsim/internal/solver"
	"gonum.org/v1/gonum/floats"
)

// DefaultResolution is the number of samples per segment.
const DefaultResolution = 20

// Pulse is the total rotation, in radians, about each axis over one segment.
type Pulse struct {
	X float64 `yaml:"x" toml:"x"`
	Y float64 `yaml:"y" toml:"y"`
	Z float64 `yaml:"z" toml:"z"`
}

func (p Pulse) String() string {
	return fmt.Sprintf("(%.4g, %.4g, %.4g)", p.X, p.Y, p.Z)
}

// Result is a concatenated trajectory. Times[i] is the simulated time of States[i].
type Result struct {
	States  []qstate.State
	Times   []float64
	Metrics map[string]float64
}

type Generator struct {
	solver  solver.Solver
	metrics []metrics.Metric
	logger  *slog.Logger
}

// New returns a generator backed by s. A nil logger uses slog.Default().
func New(s solver.Solver, logger *slog.Logger) *Generator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Generator{
		solver:  s,
		metrics: make([]metrics.Metric, 0),
		logger:  logger,
	}
}

func (g *Generator) AddMetric(m metrics.Metric) { g.metrics = append(g.metrics, m) }

// SampleTimes returns resolution equally spaced times from 0 to duration inclusive.
func SampleTimes(duration float64, resolution int) ([]float64, error) {
	if duration <= 0 || math.IsNaN(duration) || math.IsInf(duration, 0) {
		return nil, fmt.Errorf("%w, got %v", ErrDuration, duration)
	}
	if resolution < 1 {
		return nil, fmt.Errorf("%w, got %d", ErrResolution, resolution)
	}
	times := make([]float64, resolution)
	if resolution > 1 {
		floats.Span(times, 0, duration)
		times[resolution-1] = duration
	}
	return times, nil
}

// Evolve samples the rotation at rates (x, y, z) rad per time unit from init
// over [0, duration] at resolution equally spaced points.
func (g *Generator) Evolve(ctx context.Context, x, y, z float64, init qstate.State, duration float64, resolution int) ([]qstate.State, error) {
	times, err := SampleTimes(duration, resolution)
	if err != nil {
		return nil, err
	}
	return g.solver.Solve(ctx, solver.RotationGenerator(x, y, z), init, times)
}

// Generate evolves each pulse for totalDuration, starting from init and then
// from the last state of the previous segment. Pulse angles are divided by
// totalDuration to obtain rates. The result holds len(pulses)×resolution states.
func (g *Generator) Generate(ctx context.Context, pulses []Pulse, init qstate.State, totalDuration float64, resolution int) (*Result, error) {
	result := &Result{
		States:  make([]qstate.State, 0, len(pulses)*max(resolution, 0)),
		Times:   make([]float64, 0, len(pulses)*max(resolution, 0)),
		Metrics: make(map[string]float64),
	}

	for _, m := range g.metrics {
		m.Reset()
	}

	times, err := SampleTimes(totalDuration, resolution)
	if err != nil {
		return result, err
	}

	current := init
	for k, p := range pulses {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		states, err := g.Evolve(ctx,
			p.X/totalDuration, p.Y/totalDuration, p.Z/totalDuration,
			current, totalDuration, resolution)
		if err != nil {
			return result, &SegmentError{Index: k, Pulse: p, Wrapped: err}
		}
		if len(states) != resolution {
			return result, &SegmentError{Index: k, Pulse: p,
				Wrapped: fmt.Errorf("solver returned %d states, expected %d", len(states), resolution)}
		}

		offset := float64(k) * totalDuration
		for i, s := range states {
			t := offset + times[i]
			for _, m := range g.metrics {
				m.Observe(s, t)
			}
			result.States = append(result.States, s)
			result.Times = append(result.Times, t)
		}

		current = states[len(states)-1]
		g.logger.Debug("segment evolved",
			"index", k,
			"pulse", p.String(),
			"samples", len(states),
		)
	}

	for _, m := range g.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	return result, nil
}
