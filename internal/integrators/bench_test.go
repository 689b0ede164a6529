package integrators

import (
	"testing"

	"github.com/san-kum/oscilab/internal/osc"
)

// benchChain mimics a 5-mass coupled chain without the physics package.
type benchChain struct{}

func (benchChain) StateDim() int { return 10 }

func (benchChain) Derive(x osc.State, _ float64) osc.State {
	dx := make(osc.State, 10)
	copy(dx[:5], x[5:])
	for i := 0; i < 5; i++ {
		f := 2 * x[i]
		if i > 0 {
			f -= x[i-1]
		}
		if i < 4 {
			f -= x[i+1]
		}
		dx[5+i] = -f
	}
	return dx
}

func BenchmarkRK4(b *testing.B) {
	integ := NewRK4()
	x := osc.State{1.0, 0.0}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		x = integ.Step(harmonic{}, x, 0, 0.01)
	}
}

func BenchmarkEuler(b *testing.B) {
	integ := NewEuler()
	x := osc.State{1.0, 0.0}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		x = integ.Step(harmonic{}, x, 0, 0.01)
	}
}

func BenchmarkRK4_Chain5(b *testing.B) {
	integ := NewRK4()
	x := make(osc.State, 10)
	for i := range x {
		x[i] = float64(i) * 0.1
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		x = integ.Step(benchChain{}, x, 0, 0.001)
	}
}
