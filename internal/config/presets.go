package config

import "sort"

// Presets are ready-made scenarios keyed by name.
var Presets = map[string]*Config{
	// Reference three-mass chain.
	"chain3": {
		Name:       "chain3",
		Integrator: "rk4",
		Masses:     []float64{1, 1, 1},
		Stiffness: [][]float64{
			{2, 1, 0},
			{1, 3, 1},
			{0, 1, 2},
		},
		Displacements: []float64{-1, 0, 1},
		Velocities:    []float64{0, 1, 0},
		Horizon:       20,
		Samples:       1000,
	},
	// Two pendulums (m=1, l=1, g=9.8) coupled by a k=50 spring, released
	// in the out-of-phase mode.
	"pendulums": {
		Name:       "pendulums",
		Integrator: "rk4",
		Masses:     []float64{1, 1},
		Stiffness: [][]float64{
			{59.8, -50},
			{-50, 59.8},
		},
		Displacements: []float64{0.1, -0.1},
		Velocities:    []float64{0, 0},
		Horizon:       20,
		Samples:       1000,
	},
	// Indefinite raw matrix (eigenvalues 3 and -1); exercises the
	// eigenvalue repair in the conditioner.
	"unstable": {
		Name:       "unstable",
		Integrator: "rk4",
		Masses:     []float64{1, 1},
		Stiffness: [][]float64{
			{1, 2},
			{2, 1},
		},
		Displacements: []float64{1, 0},
		Velocities:    []float64{0, 0},
		Horizon:       20,
		Samples:       1000,
	},
}

// GetPreset returns the named preset, or nil if it does not exist.
func GetPreset(name string) *Config {
	return Presets[name]
}

// ListPresets returns preset names in sorted order.
func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
