package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/oscilab/internal/osc"
)

const (
	DefaultHorizon    = 20.0
	DefaultSamples    = 1000
	DefaultIntegrator = "rk4"
)

// Config describes one simulation scenario: the chain, its initial
// conditions, and the integration schedule.
type Config struct {
	Name          string      `yaml:"name"`
	Integrator    string      `yaml:"integrator"`
	Masses        []float64   `yaml:"masses"`
	Stiffness     [][]float64 `yaml:"stiffness"`
	Displacements []float64   `yaml:"displacements"`
	Velocities    []float64   `yaml:"velocities"`
	Horizon       float64     `yaml:"horizon"`
	Samples       int         `yaml:"samples"`
}

// DefaultConfig is the three-mass reference chain.
func DefaultConfig() *Config {
	return &Config{
		Name:       "chain3",
		Integrator: DefaultIntegrator,
		Masses:     []float64{1, 1, 1},
		Stiffness: [][]float64{
			{2, 1, 0},
			{1, 3, 1},
			{0, 1, 2},
		},
		Displacements: []float64{-1, 0, 1},
		Velocities:    []float64{0, 1, 0},
		Horizon:       DefaultHorizon,
		Samples:       DefaultSamples,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks the schedule and that every per-oscillator sequence
// matches the number of masses. Mass positivity and matrix conditioning are
// enforced again when the chain is built.
func (c *Config) Validate() error {
	if c.Horizon <= 0 {
		return fmt.Errorf("horizon must be positive, got %g", c.Horizon)
	}
	if c.Samples < 2 {
		return fmt.Errorf("samples must be at least 2, got %d", c.Samples)
	}
	n := len(c.Masses)
	if n == 0 {
		return fmt.Errorf("%w: no masses", osc.ErrDimensionMismatch)
	}
	if len(c.Stiffness) != n {
		return fmt.Errorf("%w: %d stiffness rows for %d masses",
			osc.ErrDimensionMismatch, len(c.Stiffness), n)
	}
	for i, row := range c.Stiffness {
		if len(row) != n {
			return fmt.Errorf("%w: stiffness row %d has %d entries, want %d",
				osc.ErrDimensionMismatch, i, len(row), n)
		}
	}
	if len(c.Displacements) != n {
		return fmt.Errorf("%w: %d displacements for %d masses",
			osc.ErrDimensionMismatch, len(c.Displacements), n)
	}
	if len(c.Velocities) != n {
		return fmt.Errorf("%w: %d velocities for %d masses",
			osc.ErrDimensionMismatch, len(c.Velocities), n)
	}
	return nil
}

// Grid builds the integration schedule for this scenario.
func (c *Config) Grid() osc.TimeGrid {
	return osc.Uniform(0, c.Horizon, c.Samples)
}
