package main

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/oscilab/internal/analysis"
	"github.com/san-kum/oscilab/internal/config"
	"github.com/san-kum/oscilab/internal/integrators"
	"github.com/san-kum/oscilab/internal/metrics"
	"github.com/san-kum/oscilab/internal/osc"
	"github.com/san-kum/oscilab/internal/physics"
	"github.com/san-kum/oscilab/internal/sim"
	"github.com/san-kum/oscilab/internal/storage"
	"github.com/san-kum/oscilab/internal/viz"
)

var (
	dataDir        string
	configFile     string
	preset         string
	horizon        float64
	samples        int
	integratorName string
	frameRate      int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "oscilab",
		Short: "coupled oscillator chain simulation lab",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".oscilab", "data directory")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "simulate a scenario and save the trajectory",
		RunE:  runScenario,
	}
	addScenarioFlags(runCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot displacement series of a run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	animateCmd := &cobra.Command{
		Use:   "animate [run_id]",
		Short: "replay a saved trajectory in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE:  animateRun,
	}
	animateCmd.Flags().IntVar(&frameRate, "fps", 50, "frame rate")

	modesCmd := &cobra.Command{
		Use:   "modes",
		Short: "print the normal-mode frequencies of a scenario",
		RunE:  printModes,
	}
	addScenarioFlags(modesCmd)

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "frequency analysis of a saved run",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}

	compareCmd := &cobra.Command{
		Use:   "compare [integrator1] [integrator2] ...",
		Short: "run the same scenario under several integrators",
		Args:  cobra.MinimumNArgs(2),
		RunE:  compareIntegrators,
	}
	addScenarioFlags(compareCmd)

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run data to CSV on stdout",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON on stdout",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available scenario presets",
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range config.ListPresets() {
				fmt.Println(name)
			}
		},
	}

	rootCmd.AddCommand(runCmd, listCmd, plotCmd, animateCmd, modesCmd,
		analyzeCmd, compareCmd, exportCSVCmd, exportJSONCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addScenarioFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "scenario config file (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "chain3", "scenario preset")
	cmd.Flags().Float64Var(&horizon, "time", 0, "time horizon (overrides scenario)")
	cmd.Flags().IntVar(&samples, "samples", 0, "number of time samples (overrides scenario)")
	cmd.Flags().StringVar(&integratorName, "integrator", "", "integrator (overrides scenario)")
}

// loadScenario resolves the scenario from --config or --preset and applies
// flag overrides.
func loadScenario(cmd *cobra.Command) (*config.Config, error) {
	var cfg *config.Config
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	} else {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		copied := *p
		cfg = &copied
	}

	if cmd.Flags().Changed("time") {
		cfg.Horizon = horizon
	}
	if cmd.Flags().Changed("samples") {
		cfg.Samples = samples
	}
	if cmd.Flags().Changed("integrator") {
		cfg.Integrator = integratorName
	}
	if cfg.Integrator == "" {
		cfg.Integrator = config.DefaultIntegrator
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// buildScenario turns a config into a ready-to-run chain, initial state and
// grid.
func buildScenario(cfg *config.Config) (*physics.Chain, osc.State, osc.TimeGrid, error) {
	chain, err := physics.NewChain(cfg.Masses, cfg.Stiffness)
	if err != nil {
		return nil, nil, nil, err
	}
	y0, err := chain.InitialState(cfg.Displacements, cfg.Velocities)
	if err != nil {
		return nil, nil, nil, err
	}
	return chain, y0, cfg.Grid(), nil
}

func runScenario(cmd *cobra.Command, args []string) error {
	cfg, err := loadScenario(cmd)
	if err != nil {
		return err
	}

	chain, y0, grid, err := buildScenario(cfg)
	if err != nil {
		return err
	}

	integ, err := integrators.Get(cfg.Integrator)
	if err != nil {
		return err
	}

	s := sim.New(chain, integ)
	s.AddMetric(metrics.NewAmplitude(chain.N()))
	s.AddMetric(metrics.NewEnergyDrift(chain))
	s.AddMetric(metrics.NewMeanEnergy(chain))

	fmt.Printf("running %s (n=%d, %d samples over [0, %g])...\n",
		cfg.Name, chain.N(), cfg.Samples, cfg.Horizon)
	start := time.Now()

	result, err := s.Run(context.Background(), y0, grid)
	if errors.Is(err, osc.ErrDegenerate) {
		// A fully static chain has nothing to show; report instead of
		// crashing.
		fmt.Printf("nothing to simulate: %v\n", err)
		return nil
	}
	if err != nil {
		return err
	}

	elapsed := time.Since(start)

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.Save(cfg.Name, cfg.Integrator, chain.N(), cfg.Horizon, result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("max amplitude: %.6f\n", result.MaxAmplitude)
	fmt.Println("\nmetrics:")
	for name, val := range result.Metrics {
		fmt.Printf("  %s: %.6f\n", name, val)
	}

	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSCENARIO\tTIME\tN\tSAMPLES\tHORIZON\tINTEG\tMAX_AMP")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%.1fs\t%s\t%.4f\n",
			run.ID,
			run.Scenario,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.N,
			run.Samples,
			run.Horizon,
			run.Integrator,
			run.MaxAmplitude,
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	states, _, err := st.LoadStates(args[0])
	if err != nil {
		return err
	}
	if len(states) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("scenario: %s\n", meta.Scenario)
	fmt.Printf("samples: %d\n\n", len(states))

	numPlots := meta.N
	if numPlots > 6 {
		numPlots = 6
	}

	for i := 0; i < numPlots; i++ {
		data := make([]float64, len(states))
		for j := range states {
			data[j] = states[j][i]
		}

		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(fmt.Sprintf("x%d displacement", i)),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	return nil
}

func animateRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	states, times, err := st.LoadStates(args[0])
	if err != nil {
		return err
	}
	if len(states) == 0 {
		return fmt.Errorf("no data to animate")
	}

	m := viz.NewModel(meta.Scenario, states, times, meta.N, meta.MaxAmplitude, frameRate)
	p := tea.NewProgram(m)
	_, err = p.Run()
	return err
}

func printModes(cmd *cobra.Command, args []string) error {
	cfg, err := loadScenario(cmd)
	if err != nil {
		return err
	}

	chain, _, _, err := buildScenario(cfg)
	if err != nil {
		return err
	}

	freqs, err := analysis.Frequencies(chain.Stiffness(), chain.Masses())
	if err != nil {
		return err
	}

	fmt.Printf("normal modes of %s:\n\n", cfg.Name)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "MODE\tOMEGA\tFREQ_HZ\tPERIOD")
	for i, omega := range freqs {
		hz := omega / (2 * math.Pi)
		period := "inf"
		if hz > 0 {
			period = fmt.Sprintf("%.4fs", 1/hz)
		}
		fmt.Fprintf(w, "%d\t%.4f\t%.4f\t%s\n", i, omega, hz, period)
	}
	return w.Flush()
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	states, _, err := st.LoadStates(args[0])
	if err != nil {
		return err
	}
	if len(states) == 0 {
		return fmt.Errorf("no data")
	}

	fmt.Printf("frequency analysis: %s\n", meta.ID)
	fmt.Printf("scenario: %s\n\n", meta.Scenario)

	data := make([]float64, len(states))
	for i := range states {
		data[i] = states[i][0]
	}

	ps := analysis.PowerSpectrum(data)
	plotData := ps[:len(ps)/4]

	graph := asciigraph.Plot(plotData,
		asciigraph.Height(15),
		asciigraph.Width(80),
		asciigraph.Caption("power spectrum (x0)"),
	)
	fmt.Println(graph)
	fmt.Println()

	maxPower := 0.0
	maxIdx := 0
	for i := 1; i < len(plotData); i++ {
		if plotData[i] > maxPower {
			maxPower = plotData[i]
			maxIdx = i
		}
	}

	// The spectrum is zero-padded to a power of two, so the bin spacing is
	// fs/nfft rather than 1/horizon.
	dt := meta.Horizon / float64(len(states)-1)
	freq := float64(maxIdx) / (float64(2*len(ps)) * dt)
	fmt.Printf("dominant frequency: %.3f hz\n", freq)
	if freq > 0 {
		fmt.Printf("period: %.3f s\n", 1.0/freq)
	}

	return nil
}

func compareIntegrators(cmd *cobra.Command, args []string) error {
	cfg, err := loadScenario(cmd)
	if err != nil {
		return err
	}

	fmt.Printf("comparing integrators on %s (%d samples over [0, %g])\n\n",
		cfg.Name, cfg.Samples, cfg.Horizon)
	fmt.Printf("%-12s  %-12s  %-12s  %-12s\n", "integrator", "final_x0", "energy_drift", "time_ms")
	fmt.Println(strings.Repeat("-", 52))

	for _, name := range args {
		integ, err := integrators.Get(name)
		if err != nil {
			fmt.Printf("%-12s  error: %v\n", name, err)
			continue
		}

		chain, y0, grid, err := buildScenario(cfg)
		if err != nil {
			return err
		}

		s := sim.New(chain, integ)
		start := time.Now()
		result, err := s.Run(context.Background(), y0, grid)
		elapsed := time.Since(start)
		if err != nil {
			fmt.Printf("%-12s  error: %v\n", name, err)
			continue
		}

		finalX0 := result.States[len(result.States)-1][0]
		fmt.Printf("%-12s  %12.6f  %12.2e  %12.2f\n",
			name, finalX0, result.EnergyDrift, float64(elapsed.Microseconds())/1000)
	}

	return nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	states, times, err := st.LoadStates(args[0])
	if err != nil {
		return err
	}
	if len(states) == 0 {
		return fmt.Errorf("no data to export")
	}

	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	header := []string{"time"}
	for i := 0; i < meta.N; i++ {
		header = append(header, fmt.Sprintf("x%d", i))
	}
	for i := 0; i < meta.N; i++ {
		header = append(header, fmt.Sprintf("v%d", i))
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for i := range states {
		row := []string{strconv.FormatFloat(times[i], 'f', 6, 64)}
		for _, val := range states[i] {
			row = append(row, strconv.FormatFloat(val, 'f', 6, 64))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	states, times, err := st.LoadStates(args[0])
	if err != nil {
		return err
	}

	return storage.ExportJSON(os.Stdout, meta, states, times)
}
