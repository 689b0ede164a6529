package integrators

import "github.com/san-kum/oscilab/internal/osc"

// RK4 is the classical fixed-step fourth-order Runge-Kutta method.
// Local truncation error is O(h^5) per step, global error O(h^4).
// Scratch buffers are reused across steps; an RK4 value is not safe for
// concurrent use.
type RK4 struct {
	k1, k2, k3, k4 osc.State
	scratch        osc.State
}

func NewRK4() *RK4 {
	return &RK4{}
}

func (r *RK4) ensureScratch(n int) {
	if len(r.k1) != n {
		r.k1 = make(osc.State, n)
		r.k2 = make(osc.State, n)
		r.k3 = make(osc.State, n)
		r.k4 = make(osc.State, n)
		r.scratch = make(osc.State, n)
	}
}

func (r *RK4) Step(sys osc.System, x osc.State, t, dt float64) osc.State {
	n := len(x)
	r.ensureScratch(n)

	copy(r.k1, sys.Derive(x, t))

	for i := 0; i < n; i++ {
		r.scratch[i] = x[i] + dt*0.5*r.k1[i]
	}
	copy(r.k2, sys.Derive(r.scratch, t+dt*0.5))

	for i := 0; i < n; i++ {
		r.scratch[i] = x[i] + dt*0.5*r.k2[i]
	}
	copy(r.k3, sys.Derive(r.scratch, t+dt*0.5))

	for i := 0; i < n; i++ {
		r.scratch[i] = x[i] + dt*r.k3[i]
	}
	copy(r.k4, sys.Derive(r.scratch, t+dt))

	result := make(osc.State, n)
	dt6 := dt / 6.0
	for i := 0; i < n; i++ {
		result[i] = x[i] + dt6*(r.k1[i]+2*r.k2[i]+2*r.k3[i]+r.k4[i])
	}

	return result
}
