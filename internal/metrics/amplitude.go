package metrics

import (
	"math"

	"github.com/san-kum/oscilab/internal/osc"
)

// Amplitude tracks the largest |displacement| seen across a run. It reads
// the first n entries of each state, the displacement block.
type Amplitude struct {
	n   int
	max float64
}

func NewAmplitude(n int) *Amplitude {
	return &Amplitude{n: n}
}

func (a *Amplitude) Name() string { return "max_amplitude" }

func (a *Amplitude) Observe(x osc.State, _ float64) {
	for _, d := range x[:a.n] {
		if v := math.Abs(d); v > a.max {
			a.max = v
		}
	}
}

func (a *Amplitude) Value() float64 { return a.max }

func (a *Amplitude) Reset() { a.max = 0 }
