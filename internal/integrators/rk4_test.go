package integrators

import (
	"math"
	"testing"

	"github.com/san-kum/oscilab/internal/osc"
)

// harmonic is the unit oscillator x'' = -x, the analytic reference for
// accuracy checks: x(t) = cos(t), v(t) = -sin(t) from x0 = [1, 0].
type harmonic struct{}

func (harmonic) Derive(x osc.State, _ float64) osc.State { return osc.State{x[1], -x[0]} }
func (harmonic) StateDim() int                           { return 2 }

func TestRK4Accuracy(t *testing.T) {
	integ := NewRK4()

	x := osc.State{1.0, 0.0}
	dt := 0.01
	steps := 100

	for i := 0; i < steps; i++ {
		x = integ.Step(harmonic{}, x, float64(i)*dt, dt)
	}

	expectedX := math.Cos(float64(steps) * dt)
	expectedV := -math.Sin(float64(steps) * dt)

	if math.Abs(x[0]-expectedX) > 1e-4 {
		t.Errorf("position error too large: got %.6f, expected %.6f", x[0], expectedX)
	}
	if math.Abs(x[1]-expectedV) > 1e-4 {
		t.Errorf("velocity error too large: got %.6f, expected %.6f", x[1], expectedV)
	}
}

func TestRK4FullPeriod(t *testing.T) {
	// One full period of the unit oscillator must come back to the start
	// within fourth-order error.
	integ := NewRK4()

	steps := 1000
	dt := 2 * math.Pi / float64(steps)
	x := osc.State{1.0, 0.0}

	for i := 0; i < steps; i++ {
		x = integ.Step(harmonic{}, x, float64(i)*dt, dt)
	}

	if math.Abs(x[0]-1.0) > 1e-6 {
		t.Errorf("displacement after one period: got %.9f, want 1", x[0])
	}
	if math.Abs(x[1]) > 1e-6 {
		t.Errorf("velocity after one period: got %.9f, want 0", x[1])
	}
}

func TestRK4NonUniformSteps(t *testing.T) {
	// Alternate two step sizes; the result must still track the analytic
	// solution since the step is recomputed every call.
	integ := NewRK4()

	x := osc.State{1.0, 0.0}
	t0 := 0.0
	sizes := []float64{0.01, 0.005}

	for i := 0; t0 < 1.0; i++ {
		h := sizes[i%2]
		x = integ.Step(harmonic{}, x, t0, h)
		t0 += h
	}

	if math.Abs(x[0]-math.Cos(t0)) > 1e-6 {
		t.Errorf("position after non-uniform steps: got %.9f, want %.9f", x[0], math.Cos(t0))
	}
}

func TestRK4FreshState(t *testing.T) {
	integ := NewRK4()
	x := osc.State{1.0, 0.0}

	next := integ.Step(harmonic{}, x, 0, 0.01)

	if &next[0] == &x[0] {
		t.Error("step returned the input slice")
	}
	if x[0] != 1.0 || x[1] != 0.0 {
		t.Errorf("input state mutated: %v", x)
	}
}

func TestEulerAccuracy(t *testing.T) {
	integ := NewEuler()

	x := osc.State{1.0, 0.0}
	dt := 0.001
	steps := 1000

	for i := 0; i < steps; i++ {
		x = integ.Step(harmonic{}, x, float64(i)*dt, dt)
	}

	// First-order method, loose tolerance.
	if math.Abs(x[0]-math.Cos(1.0)) > 1e-2 {
		t.Errorf("position error too large: got %.6f, expected %.6f", x[0], math.Cos(1.0))
	}
}

func TestGet(t *testing.T) {
	if _, err := Get("rk4"); err != nil {
		t.Errorf("rk4 lookup failed: %v", err)
	}
	if _, err := Get("euler"); err != nil {
		t.Errorf("euler lookup failed: %v", err)
	}
	if _, err := Get("rk45"); err == nil {
		t.Error("expected error for unknown integrator")
	}
}
