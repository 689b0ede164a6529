package osc

import "errors"

// Domain errors for simulation inputs and results.
var (
	// ErrDimensionMismatch indicates input lengths that disagree with the
	// chain dimension n: masses, coupling matrix rows/columns, or initial
	// displacements/velocities. Checked before integration begins.
	ErrDimensionMismatch = errors.New("osc: dimension mismatch")

	// ErrNonPositiveMass indicates a mass <= 0. The acceleration rule
	// divides by mass, so these are rejected up front instead of surfacing
	// as NaN/Inf mid-run.
	ErrNonPositiveMass = errors.New("osc: mass must be positive")

	// ErrInvalidGrid indicates a time grid that is empty or not strictly
	// increasing.
	ErrInvalidGrid = errors.New("osc: invalid time grid")

	// ErrDegenerate indicates a trajectory whose displacements are all
	// exactly zero; there is no motion to hand to a renderer.
	ErrDegenerate = errors.New("osc: degenerate trajectory (all displacements zero)")
)
