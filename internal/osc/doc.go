// Package osc provides the core primitives for simulating chains of
// linearly coupled oscillators.
//
// The package defines the fundamental types shared by the engine:
//
//   - [State]: phase-space point, n displacements followed by n velocities
//   - [Trajectory]: one State per time sample, index-aligned with its grid
//   - [TimeGrid]: strictly increasing integration schedule
//   - [System]: interface for the ODE dX/dt = f(X, t)
//   - [Integrator]: fixed-step numerical stepper interface
//
// # Example
//
//	chain, _ := physics.NewChain(masses, coupling)
//	s := sim.New(chain, integrators.NewRK4())
//	result, _ := s.Run(ctx, y0, osc.Uniform(0, 20, 1000))
//
// # Thread Safety
//
// States and trajectories are plain slices and are not synchronized. A
// trajectory is written once during a run and read-only afterward.
package osc
