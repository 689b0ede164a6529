package integrators

import (
	"fmt"

	"github.com/san-kum/oscilab/internal/osc"
)

// Euler is the explicit first-order method. Kept for integrator
// comparisons; RK4 is the default everywhere else.
type Euler struct{}

func NewEuler() *Euler {
	return &Euler{}
}

func (e *Euler) Step(sys osc.System, x osc.State, t, dt float64) osc.State {
	dx := sys.Derive(x, t)
	result := make(osc.State, len(x))
	for i := range x {
		result[i] = x[i] + dt*dx[i]
	}
	return result
}

// Get returns the integrator registered under name.
func Get(name string) (osc.Integrator, error) {
	switch name {
	case "rk4":
		return NewRK4(), nil
	case "euler":
		return NewEuler(), nil
	default:
		return nil, fmt.Errorf("unknown integrator: %s", name)
	}
}
