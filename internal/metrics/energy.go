package metrics

import (
	"math"

	"github.com/san-kum/oscilab/internal/osc"
)

// EnergyDrift tracks the worst relative deviation from the initial total
// energy. For an undamped chain under an exact integrator this would stay
// zero; the observed drift measures integration error.
type EnergyDrift struct {
	sys      osc.System
	initial  float64
	maxDrift float64
	samples  int
}

func NewEnergyDrift(sys osc.System) *EnergyDrift {
	return &EnergyDrift{sys: sys}
}

func (e *EnergyDrift) Name() string { return "energy_drift" }

func (e *EnergyDrift) Observe(x osc.State, _ float64) {
	h, ok := e.sys.(osc.Hamiltonian)
	if !ok {
		return
	}

	energy := h.Energy(x)
	if e.samples == 0 {
		e.initial = energy
	}
	e.samples++

	if e.initial != 0 {
		drift := math.Abs(energy-e.initial) / math.Abs(e.initial)
		e.maxDrift = math.Max(e.maxDrift, drift)
	}
}

func (e *EnergyDrift) Value() float64 { return e.maxDrift }

func (e *EnergyDrift) Reset() {
	e.initial = 0
	e.maxDrift = 0
	e.samples = 0
}

// MeanEnergy averages total energy over all observed samples.
type MeanEnergy struct {
	sys     osc.System
	total   float64
	samples int
}

func NewMeanEnergy(sys osc.System) *MeanEnergy {
	return &MeanEnergy{sys: sys}
}

func (m *MeanEnergy) Name() string { return "mean_energy" }

func (m *MeanEnergy) Observe(x osc.State, _ float64) {
	h, ok := m.sys.(osc.Hamiltonian)
	if !ok {
		return
	}
	m.total += h.Energy(x)
	m.samples++
}

func (m *MeanEnergy) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.total / float64(m.samples)
}

func (m *MeanEnergy) Reset() {
	m.total = 0
	m.samples = 0
}
