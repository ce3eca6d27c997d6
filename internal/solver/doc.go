// Package solver evolves single-qubit states under time-independent rotation
// generators.
//
// A [Generator] represents H = ½(x·σx + y·σy + z·σz). A [Solver] turns a
// generator, an initial state and a list of sample times into the state at
// each sample:
//
//   - [Exact]: closed-form SU(2) propagator (default)
//   - [RK4]: fixed-substep Runge-Kutta on dψ/dt = -iHψ
//   - [RK45]: Dormand-Prince adaptive stepping
//
// # Example
//
//	gen := solver.RotationGenerator(math.Pi, 0, 0)
//	states, err := solver.NewExact().Solve(ctx, gen, qstate.Zero(), []float64{0, 0.5, 1})
//
// The first returned state is the normalized initial state at times[0].
package solver
