package osc

import (
	"fmt"
	"math"
)

// State is one phase-space point: n displacements followed by n velocities.
type State []float64

func (s State) Clone() State {
	c := make(State, len(s))
	copy(c, s)
	return c
}

func (s State) IsValid() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func (s State) Norm() float64 {
	sum := 0.0
	for _, v := range s {
		sum += v * v
	}
	return math.Sqrt(sum)
}

// Trajectory holds one State per time sample, index-aligned with the grid
// that produced it. Row 0 is the initial condition. Rows are written once
// during integration and never mutated afterward.
type Trajectory []State

// TimeGrid is the integration schedule: a strictly increasing sequence of
// sample times. Steps may be non-uniform; the integrator recomputes the
// step size on every interval.
type TimeGrid []float64

// Uniform builds a grid of samples evenly spaced over [t0, t1].
func Uniform(t0, t1 float64, samples int) TimeGrid {
	g := make(TimeGrid, samples)
	if samples == 1 {
		g[0] = t0
		return g
	}
	h := (t1 - t0) / float64(samples-1)
	for i := range g {
		g[i] = t0 + float64(i)*h
	}
	// Pin the final sample to the exact endpoint.
	g[samples-1] = t1
	return g
}

func (g TimeGrid) Validate() error {
	if len(g) == 0 {
		return fmt.Errorf("%w: empty grid", ErrInvalidGrid)
	}
	for i := 1; i < len(g); i++ {
		if g[i] <= g[i-1] {
			return fmt.Errorf("%w: not strictly increasing at sample %d", ErrInvalidGrid, i)
		}
	}
	return nil
}

// System is an ODE system dX/dt = f(X, t). The time argument is threaded
// through even for autonomous systems so that a forcing term can be added
// without changing the interface.
type System interface {
	Derive(x State, t float64) State
	StateDim() int
}

// Integrator advances a state by one step of size dt.
type Integrator interface {
	Step(sys System, x State, t, dt float64) State
}

// Hamiltonian is implemented by systems that can report total energy.
type Hamiltonian interface {
	Energy(x State) float64
}

// Metric accumulates a scalar observation over a run.
type Metric interface {
	Name() string
	Observe(x State, t float64)
	Value() float64
	Reset()
}
