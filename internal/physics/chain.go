package physics

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/san-kum/oscilab/internal/osc"
	"github.com/san-kum/oscilab/internal/stiffness"
)

// Oscillator is one mass in the chain together with its row of the
// conditioned stiffness matrix. Immutable for the duration of a run.
type Oscillator struct {
	Mass     float64
	Coupling []float64
}

// Chain is a set of n point masses linearly coupled through a symmetric
// positive-semi-definite stiffness matrix. No damping, no forcing.
// State layout: [x1..xn, v1..vn].
type Chain struct {
	oscillators []Oscillator
	k           *mat.SymDense
	masses      []float64
	n           int
}

// NewChain validates masses and the raw coupling matrix, conditions the
// matrix, and builds one oscillator per row.
func NewChain(masses []float64, coupling [][]float64) (*Chain, error) {
	n := len(masses)
	if n == 0 {
		return nil, fmt.Errorf("%w: no masses", osc.ErrDimensionMismatch)
	}
	for i, m := range masses {
		if m <= 0 {
			return nil, fmt.Errorf("%w: mass %d is %g", osc.ErrNonPositiveMass, i, m)
		}
	}
	if len(coupling) != n {
		return nil, fmt.Errorf("%w: %d masses but %d coupling rows",
			osc.ErrDimensionMismatch, n, len(coupling))
	}
	raw, err := stiffness.FromRows(coupling)
	if err != nil {
		return nil, err
	}
	k, err := stiffness.Condition(raw)
	if err != nil {
		return nil, err
	}

	oscillators := make([]Oscillator, n)
	for i := range oscillators {
		row := make([]float64, n)
		for j := 0; j < n; j++ {
			row[j] = k.At(i, j)
		}
		oscillators[i] = Oscillator{Mass: masses[i], Coupling: row}
	}

	ms := make([]float64, n)
	copy(ms, masses)

	return &Chain{oscillators: oscillators, k: k, masses: ms, n: n}, nil
}

func (c *Chain) N() int        { return c.n }
func (c *Chain) StateDim() int { return c.n * 2 }

// Stiffness returns the conditioned matrix.
func (c *Chain) Stiffness() *mat.SymDense { return c.k }

func (c *Chain) Masses() []float64 { return c.masses }

// InitialState concatenates displacements and velocities into a state
// vector, validating both lengths against the chain dimension.
func (c *Chain) InitialState(displacements, velocities []float64) (osc.State, error) {
	if len(displacements) != c.n {
		return nil, fmt.Errorf("%w: %d displacements for n=%d",
			osc.ErrDimensionMismatch, len(displacements), c.n)
	}
	if len(velocities) != c.n {
		return nil, fmt.Errorf("%w: %d velocities for n=%d",
			osc.ErrDimensionMismatch, len(velocities), c.n)
	}
	y0 := make(osc.State, 2*c.n)
	copy(y0[:c.n], displacements)
	copy(y0[c.n:], velocities)
	return y0, nil
}

// Derive maps [x, v] to [v, a] with a_i = -(row_i · x) / m_i. The time
// argument is unused: the system carries no forcing term.
func (c *Chain) Derive(state osc.State, _ float64) osc.State {
	n := c.n
	deriv := make(osc.State, 2*n)
	copy(deriv[:n], state[n:])
	for i := range c.oscillators {
		o := &c.oscillators[i]
		var f float64
		for j, kij := range o.Coupling {
			f += kij * state[j]
		}
		deriv[n+i] = -f / o.Mass
	}
	return deriv
}

// Energy is kinetic plus elastic potential ½xᵀKx. The undamped system
// conserves it, which makes it a useful integration-quality check.
func (c *Chain) Energy(state osc.State) float64 {
	n := c.n
	e := 0.0
	for i := range c.oscillators {
		o := &c.oscillators[i]
		v := state[n+i]
		e += 0.5 * o.Mass * v * v
		var f float64
		for j, kij := range o.Coupling {
			f += kij * state[j]
		}
		e += 0.5 * state[i] * f
	}
	return e
}

// PendulumPair builds the stiffness matrix of two equal pendulums (mass m,
// length l) under gravity g, coupled by a spring with constant k.
func PendulumPair(m, l, g, k float64) [][]float64 {
	diag := k/m + g/l
	off := -k / m
	return [][]float64{
		{diag, off},
		{off, diag},
	}
}
