package solver

import "errors"

var (
	// ErrUnknownSolver indicates a solver name New does not recognise.
	ErrUnknownSolver = errors.New("solver: unknown solver")

	// ErrTimes indicates sample times that decrease or are not finite.
	ErrTimes = errors.New("solver: sample times must be finite and non-decreasing")

	// ErrStepTooSmall indicates the adaptive timestep fell below its minimum.
	ErrStepTooSmall = errors.New("solver: adaptive timestep below minimum")
)
