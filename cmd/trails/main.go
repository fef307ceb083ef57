package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/trails/internal/analysis"
	"github.com/san-kum/trails/internal/config"
	"github.com/san-kum/trails/internal/dynamo"
	"github.com/san-kum/trails/internal/experiment"
	"github.com/san-kum/trails/internal/export"
	"github.com/san-kum/trails/internal/gui"
	"github.com/san-kum/trails/internal/integrators"
	"github.com/san-kum/trails/internal/metrics"
	"github.com/san-kum/trails/internal/physics"
	"github.com/san-kum/trails/internal/scene"
	"github.com/san-kum/trails/internal/sim"
	"github.com/san-kum/trails/internal/viz"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	configFile string
	preset     string
	model      string
	integrator string
	seed       uint64
	dt         float64
	frames     int
	frameRate  int
	logLevel   string
	logFile    string
	// snapshot / record
	svgOut     string
	gifOut     string
	cfgOut     string
	svgWidth   int
	svgHeight  int
	gifEvery   int
	withCanvas bool
	// run / analyze
	runs       int
	sweepParam string
	sweepMin   float64
	sweepMax   float64
	sweepSteps int

	logger  *log.Logger
	logSink io.Closer
)

// main registers the trails commands and runs the terminal viewer when no
// subcommand is given.
func main() {
	rootCmd := &cobra.Command{
		Use:               "trails",
		Short:             "strange attractor particle trails",
		RunE:              runLive,
		PersistentPreRunE: setupLogging,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logSink != nil {
				logSink.Close()
			}
		},
		SilenceUsage: true,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "use preset configuration")
	pf.StringVar(&model, "model", "lorenz", "vector field")
	pf.StringVar(&integrator, "integrator", "euler", "integrator (euler, rk4)")
	pf.Uint64Var(&seed, "seed", 0, "random seed (0 picks one from the clock)")
	pf.Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	pf.IntVar(&frames, "frames", config.DefaultFrames, "frames to run (0 runs until interrupted)")
	pf.IntVar(&frameRate, "fps", config.DefaultFPS, "frame rate (0 runs unpaced)")
	pf.StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	pf.StringVar(&logFile, "log-file", "", "write logs to file")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run the terminal viewer",
		RunE:  runLive,
	}

	guiCmd := &cobra.Command{
		Use:   "gui",
		Short: "run the raylib window viewer",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			return gui.Run(cfg, logger)
		},
	}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run headless and report population metrics",
		RunE:  runHeadless,
	}
	runCmd.Flags().IntVar(&runs, "runs", 1, "run an ensemble over consecutive seeds")

	analyzeCmd := &cobra.Command{
		Use:   "analyze",
		Short: "estimate the lyapunov exponent and sweep a field parameter",
		RunE:  runAnalyze,
	}
	analyzeCmd.Flags().StringVar(&sweepParam, "param", "rho", "parameter to sweep (empty skips the sweep)")
	analyzeCmd.Flags().Float64Var(&sweepMin, "min", 10, "sweep start")
	analyzeCmd.Flags().Float64Var(&sweepMax, "max", 40, "sweep end")
	analyzeCmd.Flags().IntVar(&sweepSteps, "steps", 60, "sweep resolution")

	snapshotCmd := &cobra.Command{
		Use:   "snapshot",
		Short: "run headless and write the final frame as svg",
		RunE:  runSnapshot,
	}
	snapshotCmd.Flags().StringVarP(&svgOut, "output", "o", "trails.svg", "output file (- for stdout)")
	snapshotCmd.Flags().IntVar(&svgWidth, "width", 1280, "image width")
	snapshotCmd.Flags().IntVar(&svgHeight, "height", 720, "image height")
	snapshotCmd.Flags().BoolVar(&withCanvas, "braille", false, "write the terminal canvas instead of vector lines")

	recordCmd := &cobra.Command{
		Use:   "record",
		Short: "run headless and write the terminal canvas as an animated gif",
		RunE:  runRecord,
	}
	recordCmd.Flags().StringVarP(&gifOut, "output", "o", "trails.gif", "output file")
	recordCmd.Flags().IntVar(&gifEvery, "every", 2, "capture every Nth frame")

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "time unpaced frames",
		RunE:  runBench,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			names := config.ListPresets()
			sort.Strings(names)
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "PRESET\tMODEL\tINTEG\tDT\tSPAWN")
			for _, n := range names {
				c := config.GetPreset(n)
				fmt.Fprintf(w, "%s\t%s\t%s\t%.4f\t%.2f\n", n, c.Model, c.Integrator, c.Dt, c.Spawn.Probability)
			}
			return w.Flush()
		},
	}

	modelsCmd := &cobra.Command{
		Use:   "models",
		Short: "list vector fields",
		Run: func(cmd *cobra.Command, args []string) {
			for _, n := range physics.Names() {
				fmt.Println(n)
			}
		},
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "print the resolved configuration as yaml",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if cfgOut != "" {
				return config.Save(cfgOut, cfg)
			}
			return yaml.NewEncoder(os.Stdout).Encode(cfg)
		},
	}
	configCmd.Flags().StringVarP(&cfgOut, "output", "o", "", "write to file instead of stdout")

	rootCmd.AddCommand(liveCmd, guiCmd, runCmd, analyzeCmd, snapshotCmd, recordCmd, benchCmd, presetsCmd, modelsCmd, configCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// setupLogging builds the shared logger. The terminal viewer owns stdout,
// so it only logs when --log-file is set.
func setupLogging(cmd *cobra.Command, args []string) error {
	lvl, err := log.ParseLevel(logLevel)
	if err != nil {
		return err
	}

	var w io.Writer = os.Stderr
	switch {
	case logFile != "":
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return err
		}
		w, logSink = f, f
	case cmd.Name() == "live" || cmd.Name() == "trails":
		w = io.Discard
	}

	logger = log.NewWithOptions(w, log.Options{
		Level:           lvl,
		Prefix:          "trails",
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
	})
	return nil
}

// loadConfig layers defaults, preset, config file and changed flags, in
// that order.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}
	if configFile != "" {
		loaded, err := config.LoadWith(configFile, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("model") {
		cfg.Model = model
	}
	if flags.Changed("integrator") {
		cfg.Integrator = integrator
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("dt") {
		cfg.Dt = dt
	}
	if flags.Changed("frames") {
		cfg.Frames = frames
	}
	if flags.Changed("fps") {
		cfg.FPS = frameRate
	}
	if cfg.Seed == 0 {
		cfg.Seed = uint64(time.Now().UnixNano())
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	logger.Debug("config", "model", cfg.Model, "integrator", cfg.Integrator, "seed", cfg.Seed, "dt", cfg.Dt)
	return cfg, nil
}

// headlessConfig is loadConfig with pacing off unless --fps was given.
func headlessConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	if !cmd.Flags().Changed("fps") {
		cfg.FPS = 0
	}
	return cfg, nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	port := viz.NewTermPort(cfg.View.Width, cfg.View.Height)
	exp, err := experiment.New(cfg, port, logger)
	if err != nil {
		return err
	}

	m := viz.NewModel(exp.Loop(), port, cfg.Model)
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

func runHeadless(cmd *cobra.Command, args []string) error {
	cfg, err := headlessConfig(cmd)
	if err != nil {
		return err
	}

	if runs > 1 {
		return runEnsemble(cfg)
	}

	rec := scene.NewRecorder()
	exp, err := experiment.New(cfg, rec, logger)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	fmt.Printf("running %s for %d frames...\n", cfg.Model, cfg.Frames)
	start := time.Now()
	result, err := exp.Run(ctx)
	if err != nil && ctx.Err() == nil {
		return err
	}
	elapsed := time.Since(start)

	sys := exp.Loop().System()
	fmt.Printf("completed %d frames in %v\n", result.Frames, elapsed)
	fmt.Printf("seed: %d\n\n", cfg.Seed)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "METRIC\tVALUE")
	names := make([]string, 0, len(result.Metrics))
	for name := range result.Metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(w, "%s\t%.4f\n", name, result.Metrics[name])
	}
	fmt.Fprintf(w, "live\t%d\n", sys.Len())
	fmt.Fprintf(w, "lines\t%d/%d\n", rec.Allocated(), rec.Removed())
	for _, m := range exp.Loop().Metrics() {
		if st, ok := m.(*metrics.Stability); ok {
			fmt.Fprintf(w, "diverged\t%d\n", st.Diverged())
		}
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if len(result.Population) > 1 {
		graph := asciigraph.Plot(result.Population,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption("live particles"),
		)
		fmt.Println()
		fmt.Println(graph)
	}
	if len(result.Errors) > 0 {
		fmt.Printf("\n%d render errors, first: %v\n", len(result.Errors), result.Errors[0])
	}
	return nil
}

func runSnapshot(cmd *cobra.Command, args []string) error {
	cfg, err := headlessConfig(cmd)
	if err != nil {
		return err
	}

	var (
		port  scene.Port
		write func(io.Writer) error
	)
	if withCanvas {
		tp := viz.NewTermPort(cfg.View.Width, cfg.View.Height)
		port = tp
		write = func(w io.Writer) error {
			_, err := io.WriteString(w, export.CanvasToSVG(tp.Canvas, 4))
			return err
		}
	} else {
		sp := export.NewSVGPort(svgWidth, svgHeight)
		port = sp
		write = func(w io.Writer) error {
			_, err := sp.WriteTo(w)
			return err
		}
	}

	if _, err := runFrames(cfg, port); err != nil {
		return err
	}

	if svgOut == "-" {
		return write(os.Stdout)
	}
	f, err := os.Create(svgOut)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := write(f); err != nil {
		return err
	}
	logger.Info("snapshot written", "path", svgOut, "frames", cfg.Frames)
	return nil
}

func runRecord(cmd *cobra.Command, args []string) error {
	cfg, err := headlessConfig(cmd)
	if err != nil {
		return err
	}

	fps := config.DefaultFPS
	if frameRate > 0 {
		fps = frameRate
	}
	rec := export.NewGIFRecorder(viz.NewTermPort(cfg.View.Width, cfg.View.Height), max(2, 100*gifEvery/fps))
	rec.Every = gifEvery

	if _, err := runFrames(cfg, rec); err != nil {
		return err
	}

	f, err := os.Create(gifOut)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := rec.Save(f); err != nil {
		return err
	}
	logger.Info("recording written", "path", gifOut, "frames", rec.Captured())
	return nil
}

func runBench(cmd *cobra.Command, args []string) error {
	cfg, err := headlessConfig(cmd)
	if err != nil {
		return err
	}
	cfg.FPS = 0

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PORT\tFRAMES\tELAPSED\tFRAMES/S\tLIVE")
	ports := []struct {
		name string
		port scene.Port
	}{
		{"none", nil},
		{"recorder", scene.NewRecorder()},
		{"terminal", viz.NewTermPort(cfg.View.Width, cfg.View.Height)},
	}
	for _, p := range ports {
		start := time.Now()
		result, err := runFrames(cfg, p.port)
		if err != nil {
			return err
		}
		elapsed := time.Since(start)
		fmt.Fprintf(w, "%s\t%d\t%v\t%.0f\t%.0f\n", p.name, result.Frames, elapsed.Round(time.Microsecond),
			float64(result.Frames)/elapsed.Seconds(), result.Population[len(result.Population)-1])
	}
	return w.Flush()
}

// runFrames runs cfg.Frames frames into port, stopping early on interrupt.
func runFrames(cfg *config.Config, port scene.Port) (*sim.Result, error) {
	if cfg.Frames <= 0 {
		return nil, fmt.Errorf("--frames must be positive for this command")
	}
	exp, err := experiment.New(cfg, port, logger)
	if err != nil {
		return nil, err
	}
	ctx, cancel := signalContext()
	defer cancel()
	result, err := exp.Run(ctx)
	if err != nil && ctx.Err() == nil {
		return nil, err
	}
	return result, nil
}

func runEnsemble(cfg *config.Config) error {
	ctx, cancel := signalContext()
	defer cancel()

	fmt.Printf("running %d x %s for %d frames...\n", runs, cfg.Model, cfg.Frames)
	start := time.Now()
	results, err := experiment.NewEnsemble(cfg, runs, cfg.Seed, logger).Run(ctx)
	if err != nil && ctx.Err() == nil {
		return err
	}
	if results == nil {
		return err
	}
	fmt.Printf("completed in %v (seeds %d..%d)\n\n", time.Since(start), cfg.Seed, cfg.Seed+uint64(runs)-1)

	mean := experiment.Mean(results)
	names := make([]string, 0, len(mean))
	for name := range mean {
		names = append(names, name)
	}
	sort.Strings(names)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprint(w, "METRIC\tMEAN")
	for i := range results {
		fmt.Fprintf(w, "\t#%d", i)
	}
	fmt.Fprintln(w)
	for _, name := range names {
		fmt.Fprintf(w, "%s\t%.4f", name, mean[name])
		for _, r := range results {
			fmt.Fprintf(w, "\t%.4f", r.Metrics[name])
		}
		fmt.Fprintln(w)
	}
	return w.Flush()
}

func stepperFor(cfg *config.Config, params map[string]float64) (analysis.Stepper, error) {
	field, err := physics.New(cfg.Model, params)
	if err != nil {
		return nil, err
	}
	integ, err := integrators.New(cfg.Integrator)
	if err != nil {
		return nil, err
	}
	return integrators.Stepper{Field: field, Integrator: integ}, nil
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	s, err := stepperFor(cfg, cfg.Params)
	if err != nil {
		return err
	}
	x0 := dynamo.Point3{X: 1, Y: 1, Z: 1}
	steps := int(200 / cfg.Dt)
	lambda := analysis.LyapunovExponent(s, x0, cfg.Dt, steps/10, steps, 1e-8)
	fmt.Printf("%s/%s dt=%g\n", cfg.Model, cfg.Integrator, cfg.Dt)
	fmt.Printf("largest lyapunov exponent: %.4f\n", lambda)
	if lambda > 0 {
		fmt.Printf("trails separate by e every %.2f time units (%.0f frames)\n", 1/lambda, 1/(lambda*cfg.Dt))
	}

	if sweepParam == "" {
		return nil
	}
	build := func(v float64) (analysis.Stepper, error) {
		params := make(map[string]float64, len(cfg.Params)+1)
		for k, p := range cfg.Params {
			params[k] = p
		}
		params[sweepParam] = v
		return stepperFor(cfg, params)
	}
	data, err := analysis.BifurcationDiagram(build, sweepMin, sweepMax, sweepSteps, 2, x0, 0.01, 5000, 5000)
	if err != nil {
		return err
	}
	fmt.Printf("\nz maxima vs %s in [%g, %g]\n", sweepParam, sweepMin, sweepMax)
	fmt.Print(analysis.BifurcationToASCII(data, sweepSteps, 20))
	return nil
}
