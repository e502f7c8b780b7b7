package main

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/magpen/internal/analysis"
	"github.com/san-kum/magpen/internal/basin"
	"github.com/san-kum/magpen/internal/config"
	"github.com/san-kum/magpen/internal/metrics"
	"github.com/san-kum/magpen/internal/pendulum"
	"github.com/san-kum/magpen/internal/render"
	"github.com/san-kum/magpen/internal/scenario"
	"github.com/san-kum/magpen/internal/storage"
	"github.com/san-kum/magpen/internal/vec"
	"github.com/san-kum/magpen/internal/viz"
	"github.com/spf13/cobra"
)

var (
	dataDir    string
	configFile string
	preset     string
	themeName  string
	// Release point
	startX float64
	startY float64
	// Sampled run shape
	duration    float64
	sampleEvery float64
	// Basin rendering
	outFile string
	imgW    int
	imgH    int
	settle  float64
	// Coefficient sweep bounds
	sweepFrom  float64
	sweepTo    float64
	sweepSteps int
	// Divergence estimate
	perturbation float64
	// Optional SVG output
	svgFile string
)

// main is the entry point for the magpen CLI; it registers commands and
// flags and launches the live view when no subcommand is provided.
// It exits the process with status 1 if command execution returns an error.
func main() {
	rootCmd := &cobra.Command{
		Use:   "magpen",
		Short: "magnetic pendulum lab",
		// Default to the live view when no command given
		RunE: runLive,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".magpen", "data directory")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "watch the pendulum swing in the terminal",
		RunE:  runLive,
	}
	liveCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	liveCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	liveCmd.Flags().StringVar(&themeName, "theme", "cyberpunk", "color theme ("+strings.Join(viz.ThemeNames(), ", ")+")")
	liveCmd.Flags().Float64Var(&startX, "x", 0.1, "release point x")
	liveCmd.Flags().Float64Var(&startY, "y", 0.05, "release point y")

	runCmd := &cobra.Command{
		Use:   "run [name]",
		Short: "run a simulation and save the trail",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSimulation,
	}
	runCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	runCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	runCmd.Flags().Float64Var(&startX, "x", 0.1, "release point x")
	runCmd.Flags().Float64Var(&startY, "y", 0.05, "release point y")
	runCmd.Flags().Float64Var(&duration, "time", 30.0, "duration in advanced seconds")
	runCmd.Flags().Float64Var(&sampleEvery, "every", 0.05, "sample interval")
	runCmd.Flags().StringVar(&svgFile, "svg", "", "also write the trail as SVG")
	runCmd.Flags().StringVar(&themeName, "theme", "cyberpunk", "trail color theme for --svg")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a saved trail",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	plotCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	plotCmd.Flags().StringVar(&svgFile, "svg", "", "write the top-down view as SVG")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "frequency and divergence analysis",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}
	analyzeCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	analyzeCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	analyzeCmd.Flags().Float64Var(&perturbation, "perturbation", 1e-6, "twin drop offset")

	renderCmd := &cobra.Command{
		Use:   "render",
		Short: "render the basins of attraction as PNG",
		RunE:  renderBasins,
	}
	renderCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	renderCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	renderCmd.Flags().IntVar(&imgW, "width", 400, "image width in pixels")
	renderCmd.Flags().IntVar(&imgH, "height", 400, "image height in pixels")
	renderCmd.Flags().Float64Var(&settle, "settle", 30.0, "settle duration per drop")
	renderCmd.Flags().StringVar(&outFile, "out", "basins.png", "output file")

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "sweep the magnet coefficient and report captures",
		RunE:  sweepCoeff,
	}
	sweepCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	sweepCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	sweepCmd.Flags().Float64Var(&startX, "x", 0.1, "release point x")
	sweepCmd.Flags().Float64Var(&startY, "y", 0.05, "release point y")
	sweepCmd.Flags().Float64Var(&sweepFrom, "from", 0.0001, "first coefficient")
	sweepCmd.Flags().Float64Var(&sweepTo, "to", 0.001, "last coefficient")
	sweepCmd.Flags().IntVar(&sweepSteps, "steps", 10, "sweep points")
	sweepCmd.Flags().Float64Var(&settle, "settle", 30.0, "settle duration per point")

	batchCmd := &cobra.Command{
		Use:   "batch [scenario.yaml]",
		Short: "run a scripted scenario of drops",
		Args:  cobra.ExactArgs(1),
		RunE:  runBatch,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export a trail to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export a run to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println("available presets:")
			for _, p := range config.ListPresets() {
				fmt.Printf("  %s\n", p)
			}
			return nil
		},
	}

	initConfigCmd := &cobra.Command{
		Use:   "init-config [path]",
		Short: "write a starter config file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.DefaultConfig()
			if preset != "" {
				cfg = config.GetPreset(preset)
				if cfg == nil {
					return fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
				}
			}
			if err := config.Save(args[0], cfg); err != nil {
				return err
			}
			fmt.Printf("config written to %s\n", args[0])
			return nil
		},
	}
	initConfigCmd.Flags().StringVar(&preset, "preset", "", "start from a preset")

	rootCmd.AddCommand(liveCmd, runCmd, listCmd, plotCmd, analyzeCmd, renderCmd, sweepCmd, batchCmd, exportCSVCmd, exportJSONCmd, presetsCmd, initConfigCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig resolves the effective configuration: defaults, then the
// preset, then the config file, then explicit flags.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}

	if configFile != "" {
		c, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = c
	}

	// CLI flags override config
	if cmd.Flags().Changed("x") {
		cfg.Start.X = startX
	}
	if cmd.Flags().Changed("y") {
		cfg.Start.Y = startY
	}
	if cmd.Flags().Changed("time") {
		cfg.Run.Duration = duration
	}
	if cmd.Flags().Changed("every") {
		cfg.Run.SampleEvery = sampleEvery
	}
	if cmd.Flags().Changed("width") {
		cfg.Render.Width = imgW
	}
	if cmd.Flags().Changed("height") {
		cfg.Render.Height = imgH
	}
	if cmd.Flags().Changed("settle") {
		cfg.Render.Settle = settle
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	start, err := cfg.StartState()
	if err != nil {
		return err
	}

	m := viz.NewModel(cfg.Pendulum(), cfg.MagnetList(), start, themeName)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	name := "pendulum"
	if len(args) > 0 {
		name = args[0]
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	start, err := cfg.StartState()
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	p := cfg.Pendulum()
	magnets := cfg.MagnetList()

	fmt.Printf("running %s for %.1fs...\n", name, cfg.Run.Duration)
	begin := time.Now()

	result, err := pendulum.Run(context.Background(), start, p, magnets, cfg.Run.Duration, cfg.Run.SampleEvery, metrics.Default(p, magnets))
	if err != nil {
		return err
	}

	elapsed := time.Since(begin)

	runID, err := st.Save(name, p, magnets, result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("samples: %d\n", len(result.States))
	fmt.Println("\nmetrics:")
	for metric, val := range result.Metrics {
		fmt.Printf("  %s: %.6f\n", metric, val)
	}

	if svgFile != "" {
		// The sampled trajectory is already thinned to the sample interval.
		points := make([]vec.Vec2, len(result.States))
		for i, s := range result.States {
			points[i] = s.Pos
		}
		svg := render.TrailSVG(points, magnets, cfg.Render.Width, cfg.Render.Height, string(viz.GetTheme(themeName).Accent))
		if err := os.WriteFile(svgFile, []byte(svg), 0644); err != nil {
			return err
		}
		fmt.Printf("trail svg written to %s\n", svgFile)
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
	fmt.Fprintln(w, "ID\tNAME\tTIME\tDURATION\tSTART\tMAGNETS")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.2fs\t(%.3f, %.3f)\t%d\n",
			run.ID,
			run.Name,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Duration,
			run.StartX,
			run.StartY,
			run.Magnets,
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	p := cfg.Pendulum()
	magnets := cfg.MagnetList()

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	trail, err := st.LoadTrail(runID)
	if err != nil {
		return err
	}
	if len(trail) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("samples: %d\n\n", len(trail))

	// Top-down view, magnets and trail together.
	ext := 0.0
	for _, s := range trail {
		if d := s.Pos.Distance(p.Pivot.XY()); d > ext {
			ext = d
		}
	}
	for _, m := range magnets {
		if d := m.Position.XY().Distance(p.Pivot.XY()); d > ext {
			ext = d
		}
	}
	canvas := viz.NewCanvas(60, 18, p.Pivot.XY(), ext*1.1)
	for _, m := range magnets {
		canvas.Blob(m.Position.XY(), 2)
	}
	for i := 1; i < len(trail); i++ {
		canvas.Line(trail[i-1].Pos, trail[i].Pos)
	}
	fmt.Println("top-down view:")
	fmt.Print(canvas.String())
	fmt.Println()

	series := []struct {
		name string
		data []float64
	}{
		{"x position", make([]float64, len(trail))},
		{"y position", make([]float64, len(trail))},
		{"speed", make([]float64, len(trail))},
	}
	for i, s := range trail {
		series[0].data[i] = s.Pos.X
		series[1].data[i] = s.Pos.Y
		series[2].data[i] = s.Vel.Length()
	}

	for _, s := range series {
		graph := asciigraph.Plot(s.data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(s.name),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	if svgFile != "" {
		if err := os.WriteFile(svgFile, []byte(render.CanvasToSVG(canvas, 3)), 0644); err != nil {
			return err
		}
		fmt.Printf("svg written to %s\n", svgFile)
	}

	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	trail, err := st.LoadTrail(runID)
	if err != nil {
		return err
	}
	if len(trail) == 0 {
		return fmt.Errorf("no data")
	}

	fmt.Printf("analysis: %s\n\n", meta.ID)

	data := make([]float64, len(trail))
	for i, s := range trail {
		data[i] = s.Pos.X
	}
	ps := analysis.PowerSpectrum(analysis.Pad(data))

	// Low frequencies carry the swing; the quarter spectrum is enough.
	plotData := ps[:len(ps)/4]
	if len(plotData) == 0 {
		plotData = ps
	}
	if len(plotData) > 0 {
		graph := asciigraph.Plot(plotData,
			asciigraph.Height(15),
			asciigraph.Width(80),
			asciigraph.Caption("power spectrum (x)"),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	sampleRate := 0.0
	if len(trail) > 1 {
		if dt := trail[1].T - trail[0].T; dt > 0 {
			sampleRate = 1 / dt
		}
	}
	freq := analysis.PeakFrequency(ps, sampleRate)
	fmt.Printf("dominant frequency: %.3f hz\n", freq)
	if freq > 0 {
		fmt.Printf("period: %.3f s\n", 1/freq)
	}

	// Re-integrate twin drops from the recorded release point under the
	// flagged configuration.
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	p := cfg.Pendulum()
	start, err := pendulum.NewState(p, vec.Vec2{X: meta.StartX, Y: meta.StartY})
	if err != nil {
		return err
	}
	lambda, err := analysis.DivergenceExponent(p, cfg.MagnetList(), start, perturbation, meta.Duration)
	if err != nil {
		return err
	}
	fmt.Printf("divergence exponent: %.4f\n", lambda)
	if lambda > 0 {
		fmt.Println("nearby drops separate; expect fractal basin boundaries")
	}

	return nil
}

func renderBasins(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	p := cfg.Pendulum()
	magnets := cfg.MagnetList()

	w, h := cfg.Render.Width, cfg.Render.Height
	origin, spacing := basin.GridAround(p.Pivot.XY(), p.LengthScale, w, h)

	fmt.Printf("classifying %dx%d drops (settle %.1fs)...\n", w, h, cfg.Render.Settle)
	begin := time.Now()

	res, err := basin.Classify(context.Background(), p, magnets, origin, spacing, w, h, cfg.Render.Settle)
	if err != nil {
		return err
	}

	fmt.Printf("classified in %v\n", time.Since(begin))

	f, err := os.Create(outFile)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := render.WritePNG(f, res, len(magnets)); err != nil {
		return err
	}
	fmt.Printf("basin map written to %s\n", outFile)

	shares := analysis.Shares(res)
	tags := make([]int, 0, len(shares))
	for tag := range shares {
		tags = append(tags, tag)
	}
	sort.Ints(tags)

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "MAGNET\tSHARE")
	for _, tag := range tags {
		fmt.Fprintf(tw, "%d\t%.1f%%\n", tag, shares[tag]*100)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Printf("boundary fraction: %.3f\n", analysis.BoundaryFraction(res))
	return nil
}

func sweepCoeff(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	start, err := cfg.StartState()
	if err != nil {
		return err
	}
	p := cfg.Pendulum()
	magnets := cfg.MagnetList()

	fmt.Printf("sweeping magnet coefficient %g..%g in %d steps\n\n", sweepFrom, sweepTo, sweepSteps)

	points, err := analysis.CaptureSweep(context.Background(), p, magnets, start, sweepFrom, sweepTo, sweepSteps, cfg.Render.Settle)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "COEFF\tMAGNET\tFINAL POSITION")
	for _, pt := range points {
		fmt.Fprintf(w, "%.6g\t%d\t(%.4f, %.4f)\n", pt.Coeff, pt.Tag, pt.Pos.X, pt.Pos.Y)
	}
	return w.Flush()
}

func runBatch(cmd *cobra.Command, args []string) error {
	sc, err := scenario.Load(args[0])
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	fmt.Printf("scenario %s: %d drops\n", sc.Name, len(sc.Drops))

	ids, err := scenario.Run(context.Background(), st, sc)
	if err != nil {
		return err
	}

	fmt.Printf("\nsaved %d runs:\n", len(ids))
	for _, id := range ids {
		fmt.Printf("  %s\n", id)
	}
	return nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	trail, err := st.LoadTrail(args[0])
	if err != nil {
		return err
	}
	if len(trail) == 0 {
		return fmt.Errorf("no data to export")
	}
	return storage.WriteCSV(os.Stdout, trail)
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	trail, err := st.LoadTrail(args[0])
	if err != nil {
		return err
	}
	return storage.WriteJSON(os.Stdout, meta, trail)
}
