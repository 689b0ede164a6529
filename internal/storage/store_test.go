package storage

import (
	"math"
	"testing"

	"github.com/san-kum/oscilab/internal/osc"
	"github.com/san-kum/oscilab/internal/sim"
)

func TestStoreSaveLoad(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	result := &sim.Result{
		States: osc.Trajectory{
			{1.0, 0.0},
			{0.9, -0.1},
		},
		Times:        []float64{0.0, 0.02},
		MaxAmplitude: 1.0,
		EnergyDrift:  1e-8,
		Metrics: map[string]float64{
			"max_amplitude": 1.0,
		},
	}

	runID, err := st.Save("chain3", "rk4", 1, 20.0, result)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if runID == "" {
		t.Fatal("expected non-empty run id")
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if meta.Scenario != "chain3" {
		t.Errorf("expected scenario chain3, got %s", meta.Scenario)
	}
	if meta.N != 1 {
		t.Errorf("expected n=1, got %d", meta.N)
	}
	if meta.Integrator != "rk4" {
		t.Errorf("expected integrator rk4, got %s", meta.Integrator)
	}
	if meta.MaxAmplitude != 1.0 {
		t.Errorf("expected max amplitude 1.0, got %f", meta.MaxAmplitude)
	}
	if meta.Samples != 2 {
		t.Errorf("expected 2 samples, got %d", meta.Samples)
	}
	if meta.Metrics["max_amplitude"] != 1.0 {
		t.Errorf("metrics did not survive: %v", meta.Metrics)
	}
}

func TestStoreStatesRoundtrip(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	result := &sim.Result{
		States: osc.Trajectory{
			{-1, 0, 1, 0, 1, 0},
			{-0.5, 0.25, 0.5, 0.1, 0.9, -0.1},
		},
		Times:        []float64{0.0, 0.02},
		MaxAmplitude: 1.0,
	}

	runID, err := st.Save("chain3", "rk4", 3, 20.0, result)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	states, times, err := st.LoadStates(runID)
	if err != nil {
		t.Fatalf("load states failed: %v", err)
	}

	if len(states) != 2 || len(times) != 2 {
		t.Fatalf("expected 2 rows, got %d states / %d times", len(states), len(times))
	}
	for i, row := range states {
		if len(row) != 6 {
			t.Fatalf("row %d has %d columns, want 6", i, len(row))
		}
		for j, v := range row {
			if math.Abs(v-result.States[i][j]) > 1e-6 {
				t.Errorf("value (%d,%d) = %f, want %f", i, j, v, result.States[i][j])
			}
		}
	}
	if math.Abs(times[1]-0.02) > 1e-9 {
		t.Errorf("expected time 0.02, got %f", times[1])
	}
}

func TestStoreList(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected no runs, got %d", len(runs))
	}

	result := &sim.Result{
		States:       osc.Trajectory{{1, 0}},
		Times:        []float64{0},
		MaxAmplitude: 1,
	}
	if _, err := st.Save("chain3", "rk4", 1, 20.0, result); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	runs, err = st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 1 {
		t.Errorf("expected 1 run, got %d", len(runs))
	}
}

func TestStoreListMissingDir(t *testing.T) {
	st := New("/nonexistent/oscilab-test")
	runs, err := st.List()
	if err != nil {
		t.Fatalf("expected empty list for missing dir, got error: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected no runs, got %d", len(runs))
	}
}
