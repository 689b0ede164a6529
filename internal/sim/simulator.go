package sim

import (
	"context"
	"fmt"
	"math"

	"github.com/san-kum/oscilab/internal/osc"
)

// Simulator advances a system over a fixed time grid and validates the
// resulting trajectory before handing it out.
type Simulator struct {
	sys        osc.System
	integrator osc.Integrator
	metrics    []osc.Metric
}

func New(sys osc.System, integrator osc.Integrator) *Simulator {
	return &Simulator{sys: sys, integrator: integrator}
}

func (s *Simulator) AddMetric(m osc.Metric) { s.metrics = append(s.metrics, m) }

// Result is the artifact of one run. States is index-aligned with Times and
// read-only once returned. MaxAmplitude is the largest |displacement| over
// the whole run; renderers use it to size their viewport.
type Result struct {
	States       osc.Trajectory
	Times        []float64
	MaxAmplitude float64
	Metrics      map[string]float64
	EnergyDrift  float64
}

// Run integrates from y0 across every consecutive grid pair. The step size
// h = t[i+1]-t[i] is recomputed each iteration, so non-uniform grids work.
// A trajectory whose displacements never leave zero is rejected with
// osc.ErrDegenerate.
func (s *Simulator) Run(ctx context.Context, y0 osc.State, grid osc.TimeGrid) (*Result, error) {
	if err := grid.Validate(); err != nil {
		return nil, err
	}
	if len(y0) != s.sys.StateDim() {
		return nil, fmt.Errorf("%w: initial state has %d entries, system wants %d",
			osc.ErrDimensionMismatch, len(y0), s.sys.StateDim())
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	states := make(osc.Trajectory, len(grid))
	states[0] = y0.Clone()

	initialEnergy := s.energy(y0)

	x := y0.Clone()
	for i := 0; i < len(grid)-1; i++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		for _, m := range s.metrics {
			m.Observe(x, grid[i])
		}

		h := grid[i+1] - grid[i]
		x = s.integrator.Step(s.sys, x, grid[i], h)
		states[i+1] = x.Clone()
	}
	for _, m := range s.metrics {
		m.Observe(x, grid[len(grid)-1])
	}

	n := s.sys.StateDim() / 2
	maxAmp := maxAmplitude(states, n)
	if maxAmp == 0 {
		return nil, fmt.Errorf("%w: check initial displacements and velocities", osc.ErrDegenerate)
	}

	result := &Result{
		States:       states,
		Times:        append([]float64(nil), grid...),
		MaxAmplitude: maxAmp,
		Metrics:      make(map[string]float64, len(s.metrics)),
	}

	finalEnergy := s.energy(x)
	if initialEnergy != 0 {
		result.EnergyDrift = math.Abs(finalEnergy-initialEnergy) / math.Abs(initialEnergy)
	}
	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	return result, nil
}

// maxAmplitude scans the displacement block (first n columns) of every row.
func maxAmplitude(states osc.Trajectory, n int) float64 {
	maxAmp := 0.0
	for _, row := range states {
		for _, d := range row[:n] {
			if a := math.Abs(d); a > maxAmp {
				maxAmp = a
			}
		}
	}
	return maxAmp
}

func (s *Simulator) energy(x osc.State) float64 {
	if h, ok := s.sys.(osc.Hamiltonian); ok {
		return h.Energy(x)
	}
	return 0
}
