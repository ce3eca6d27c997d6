// Package trajectory turns pulse sequences into ordered state trajectories.
//
// Each [Pulse] is a constant rotation applied for one segment. [Generator.Generate]
// evolves the pulses in order, chaining the last state of one segment into the
// next, and concatenates every sampled state:
//
//	gen := trajectory.New(solver.NewExact(), nil)
//	res, err := gen.Generate(ctx, []trajectory.Pulse{{X: math.Pi}}, qstate.Zero(), 1, 20)
//	// len(res.States) == 20
//
// Consecutive segments share a boundary sample: the first state of segment k+1
// equals the last state of segment k.
package trajectory
