package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"skyfall/internal/analysis"
	"skyfall/internal/config"
	"skyfall/internal/export"
	"skyfall/internal/optim"
	"skyfall/internal/sim"
	"skyfall/internal/storage"
	"skyfall/internal/telemetry"
	"skyfall/internal/tui"
)

var (
	dataDir      string
	mass         float64
	altitude     float64
	dt           float64
	duration     float64
	subSteps     int
	deployAt     float64
	windStrength float64
	windDir      float64
	canopyArea   float64
	dragVert     float64
	dragHoriz    float64
	openDur      float64
	configFile   string
	preset       string
	frameRate    int
	svgOut       string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "skyfall",
		Short: "parachute descent simulator",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".skyfall", "data directory")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "simulate a descent",
		RunE:  runDescent,
	}
	addJumpFlags(runCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list recorded runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot altitude and descent rate for a run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata as JSON, or the altitude profile as SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}
	exportCmd.Flags().StringVar(&svgOut, "svg", "", "write the altitude profile to an SVG file instead")

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "run the same jump across a range of wind strengths",
		RunE:  sweepWind,
	}
	addJumpFlags(sweepCmd)

	tuneCmd := &cobra.Command{
		Use:   "tune",
		Short: "grid-search deploy altitude and canopy area for the softest ride",
		RunE:  tuneJump,
	}
	addJumpFlags(tuneCmd)

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "frequency analysis of canopy oscillation",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "interactive live descent view",
		RunE:  runLive,
	}
	addJumpFlags(liveCmd)
	liveCmd.Flags().IntVar(&frameRate, "fps", 30, "frame rate")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available jump presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Printf("  %-12s %.0f kg from %.0f m, deploy at %.0f m\n",
					name, p.Mass, p.Altitude, p.AutoDeployAltitude)
			}
			return nil
		},
	}

	rootCmd.AddCommand(runCmd, listCmd, plotCmd, exportCmd, analyzeCmd, sweepCmd, tuneCmd, liveCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addJumpFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&mass, "mass", config.DefaultMass, "jumper mass (kg)")
	cmd.Flags().Float64Var(&altitude, "altitude", config.DefaultAltitude, "exit altitude (m)")
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep (s)")
	cmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "max duration (s)")
	cmd.Flags().IntVar(&subSteps, "sub-steps", config.DefaultSubSteps, "integration sub-steps per frame")
	cmd.Flags().Float64Var(&deployAt, "deploy-at", 800, "auto-deploy altitude (m, 0 = never)")
	cmd.Flags().Float64Var(&windStrength, "wind", 0, "wind strength (m/s)")
	cmd.Flags().Float64Var(&windDir, "wind-dir", 0, "wind direction (radians)")
	cmd.Flags().Float64Var(&canopyArea, "canopy-area", 28, "canopy area (m²)")
	cmd.Flags().Float64Var(&dragVert, "drag-vertical", 1.75, "canopy vertical drag coefficient")
	cmd.Flags().Float64Var(&dragHoriz, "drag-horizontal", 0.45, "canopy horizontal drag coefficient")
	cmd.Flags().Float64Var(&openDur, "opening-duration", 3, "canopy opening duration (s)")
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use a named jump preset")
}

// buildConfig resolves precedence: defaults, then preset, then config file,
// then explicitly set CLI flags.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		*cfg = *p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		*cfg = *loaded
	}

	if cmd.Flags().Changed("mass") {
		cfg.Mass = mass
	}
	if cmd.Flags().Changed("altitude") {
		cfg.Altitude = altitude
	}
	if cmd.Flags().Changed("dt") {
		cfg.Dt = dt
	}
	if cmd.Flags().Changed("time") {
		cfg.Duration = duration
	}
	if cmd.Flags().Changed("sub-steps") {
		cfg.SubSteps = subSteps
	}
	if cmd.Flags().Changed("deploy-at") {
		cfg.AutoDeployAltitude = deployAt
	}
	if cmd.Flags().Changed("wind") {
		cfg.Wind.Strength = windStrength
	}
	if cmd.Flags().Changed("wind-dir") {
		cfg.Wind.Direction = windDir
	}
	if cmd.Flags().Changed("canopy-area") {
		cfg.CanopyArea = canopyArea
	}
	if cmd.Flags().Changed("drag-vertical") {
		cfg.DragVertical = dragVert
	}
	if cmd.Flags().Changed("drag-horizontal") {
		cfg.DragHorizontal = dragHoriz
	}
	if cmd.Flags().Changed("opening-duration") {
		cfg.OpeningDuration = openDur
	}

	return cfg, nil
}

func buildSimulator(cfg *config.Config) (*sim.Simulator, error) {
	s, err := sim.New(cfg.BodyConfig())
	if err != nil {
		return nil, err
	}
	if err := cfg.Apply(s); err != nil {
		return nil, err
	}
	return s, nil
}

func runDescent(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	s, err := buildSimulator(cfg)
	if err != nil {
		return err
	}

	s.AddMetric(telemetry.NewMaxSpeed())
	s.AddMetric(telemetry.NewImpactSpeed())
	s.AddMetric(telemetry.NewMeanDescentRate())
	s.AddMetric(telemetry.NewEnergyDrift())

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	fmt.Printf("simulating descent from %.0f m...\n", cfg.Altitude)
	start := time.Now()

	result, err := s.Run(context.Background(), cfg.SimConfig())
	if err != nil {
		return err
	}

	elapsed := time.Since(start)

	runID, err := st.Save(preset, cfg.Dt, cfg.Duration, cfg.Mass, cfg.Altitude, result)
	if err != nil {
		return err
	}

	final := result.Snapshots[len(result.Snapshots)-1]

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("steps: %d, simulated %.2f s\n", result.StepsTaken, final.Time)
	if result.Landed {
		fmt.Printf("landed after %.2f s\n", final.Time)
	} else {
		fmt.Printf("still airborne at %.1f m when the run ended\n", final.Altitude)
	}
	fmt.Println("\nmetrics:")
	for name, val := range result.Metrics {
		fmt.Printf("  %s: %.4f\n", name, val)
	}
	for _, e := range result.Errors {
		fmt.Printf("warning: %v\n", e)
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
	fmt.Fprintln(w, "ID\tPRESET\tTIME\tMASS\tALTITUDE\tLANDED")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.0fkg\t%.0fm\t%v\n",
			run.ID,
			run.Preset,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Mass,
			run.Altitude,
			run.Landed,
		)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	points, err := st.LoadTrajectory(args[0])
	if err != nil {
		return err
	}
	if len(points) < 2 {
		return fmt.Errorf("run %s has no trajectory", args[0])
	}

	altitudes := make([]float64, len(points))
	rates := make([]float64, len(points))
	for i, p := range points {
		altitudes[i] = p.Y
		rates[i] = -p.VY
	}

	fmt.Println(asciigraph.Plot(altitudes,
		asciigraph.Height(12), asciigraph.Width(70),
		asciigraph.Caption("altitude (m)")))
	fmt.Println()
	fmt.Println(asciigraph.Plot(rates,
		asciigraph.Height(12), asciigraph.Width(70),
		asciigraph.Caption("descent rate (m/s)")))

	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)

	if svgOut != "" {
		points, err := st.LoadTrajectory(args[0])
		if err != nil {
			return err
		}
		snaps := storage.PointsToSnapshots(points)
		svg := export.AltitudeProfileSVG(snaps, 800, 400, "#00ff00")
		if svg == "" {
			return fmt.Errorf("run %s has no trajectory to export", args[0])
		}
		if err := os.WriteFile(svgOut, []byte(svg), 0o644); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", svgOut)
		return nil
	}

	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func sweepWind(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	strengths := []float64{0, 2, 4, 6, 8}
	variants := make([]sim.Variant, len(strengths))
	for i, strength := range strengths {
		strength := strength
		variants[i] = sim.Variant{
			Label: fmt.Sprintf("wind %.0f m/s", strength),
			Setup: func(s *sim.Simulator) error {
				s.AddMetric(telemetry.NewMaxSpeed())
				s.AddMetric(telemetry.NewMeanDescentRate())
				if strength == 0 {
					return nil
				}
				return s.SetWind(strength, cfg.Wind.Direction)
			},
		}
	}

	build := func() (*sim.Simulator, error) { return buildSimulator(cfg) }

	fmt.Printf("sweeping %d wind strengths from %.0f m...\n", len(variants), cfg.Altitude)
	results, err := sim.NewEnsemble(build, variants).Run(context.Background(), cfg.SimConfig())
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "VARIANT\tTIME\tDRIFT\tMEAN RATE\tMAX SPEED\tLANDED")
	for i, r := range results {
		final := r.Snapshots[len(r.Snapshots)-1]
		drift := final.Position.Horizontal().Length()
		fmt.Fprintf(w, "%s\t%.1fs\t%.1fm\t%.2fm/s\t%.2fm/s\t%v\n",
			variants[i].Label,
			final.Time,
			drift,
			r.Metrics["mean_descent_rate"],
			r.Metrics["max_speed"],
			r.Landed,
		)
	}
	return w.Flush()
}

func tuneJump(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	deployAlts := []float64{200, 400, 600, 800}
	areas := []float64{22, 28, 34}

	gs := optim.NewGridSearch(
		[]string{"deploy_altitude", "canopy_area"},
		[][]float64{deployAlts, areas},
	)

	build := func(params map[string]float64) (*sim.Simulator, sim.Config, error) {
		c := *cfg
		c.AutoDeployAltitude = params["deploy_altitude"]
		c.CanopyArea = params["canopy_area"]

		s, err := buildSimulator(&c)
		if err != nil {
			return nil, sim.Config{}, err
		}
		s.AddMetric(telemetry.NewMeanDescentRate())
		return s, c.SimConfig(), nil
	}

	fmt.Printf("searching %d combinations...\n", len(deployAlts)*len(areas))
	best, val, err := gs.Search(context.Background(), build, "mean_descent_rate")
	if err != nil {
		return err
	}
	if best == nil {
		return fmt.Errorf("no combination produced a usable run")
	}

	fmt.Printf("softest ride: deploy at %.0f m with a %.0f m² canopy (mean descent %.2f m/s)\n",
		best["deploy_altitude"], best["canopy_area"], val)
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)

	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	points, err := st.LoadTrajectory(args[0])
	if err != nil {
		return err
	}
	if len(points) < 4 {
		return fmt.Errorf("run %s too short to analyze", args[0])
	}

	snaps := storage.PointsToSnapshots(points)
	series := analysis.DescentRateSeries(snaps)
	freq, power := analysis.DominantFrequency(series, meta.Dt)

	fmt.Printf("samples: %d (dt=%.4fs)\n", len(series), meta.Dt)
	fmt.Printf("dominant oscillation: %.3f Hz (magnitude %.2f)\n", freq, power)

	spectrum := analysis.PowerSpectrum(series)
	if len(spectrum) > 64 {
		spectrum = spectrum[:64]
	}
	fmt.Println(asciigraph.Plot(spectrum,
		asciigraph.Height(10), asciigraph.Width(64),
		asciigraph.Caption("power spectrum (low bins)")))

	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	// Manual deployment in the live view unless a preset asked for it.
	if !cmd.Flags().Changed("deploy-at") && preset == "" && configFile == "" {
		cfg.AutoDeployAltitude = 0
	}

	s, err := buildSimulator(cfg)
	if err != nil {
		return err
	}

	return tui.Run(s, cfg.Dt, frameRate)
}
