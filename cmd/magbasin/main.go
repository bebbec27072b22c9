package main

import (
	"context"
	"errors"
	"fmt"
	"image/color"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/san-kum/magbasin/internal/config"
	"github.com/san-kum/magbasin/internal/dynamo"
	"github.com/san-kum/magbasin/internal/experiment"
	"github.com/san-kum/magbasin/internal/export"
	"github.com/san-kum/magbasin/internal/imageio"
	"github.com/san-kum/magbasin/internal/metrics"
	"github.com/san-kum/magbasin/internal/render"
	"github.com/san-kum/magbasin/internal/sim"
	"github.com/san-kum/magbasin/internal/storage"
	"github.com/san-kum/magbasin/internal/tui"
	"github.com/san-kum/magbasin/internal/vecmath"
	"github.com/san-kum/magbasin/internal/viz"
)

var (
	dataDir    string
	configFile string
	preset     string
	verbose    bool
	theme      string
	// render overrides
	outPath    string
	width      int
	height     int
	workers    int
	maxSteps   int
	integrator string
	progress   bool
	noStore    bool
	histBins   int
	// trace start
	startX  float64
	startY  float64
	svgPath string
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "magbasin",
		Short:         "magnetic pendulum basin-of-attraction renderer",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupLogging()
			viz.SetTheme(theme)
		},
		RunE: renderFractal,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".magbasin", "data directory")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml or json)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "use preset configuration")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	rootCmd.PersistentFlags().StringVar(&theme, "theme", "field", "terminal theme ("+strings.Join(viz.ThemeNames(), ", ")+")")
	addRenderFlags(rootCmd)

	renderCmd := &cobra.Command{
		Use:   "render",
		Short: "render the basin fractal to an image",
		Args:  cobra.NoArgs,
		RunE:  renderFractal,
	}
	addRenderFlags(renderCmd)

	traceCmd := &cobra.Command{
		Use:   "trace",
		Short: "follow a single release point",
		Args:  cobra.NoArgs,
		RunE:  traceStart,
	}
	traceCmd.Flags().Float64Var(&startX, "x", 0.3, "start x")
	traceCmd.Flags().Float64Var(&startY, "y", 0.2, "start y")
	traceCmd.Flags().IntVar(&maxSteps, "max-steps", 0, "step budget override")
	traceCmd.Flags().StringVar(&integrator, "integrator", "", "integrator override")
	traceCmd.Flags().StringVar(&svgPath, "svg", "", "also write the path as SVG")

	thresholdsCmd := &cobra.Command{
		Use:   "thresholds",
		Short: "print escape energies and the image region",
		Args:  cobra.NoArgs,
		RunE:  printThresholds,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, p := range config.ListPresets() {
				cfg := config.GetPreset(p)
				fmt.Printf("  %-10s %d magnets, %s\n", p, len(cfg.Magnets), cfg.Pendulum.Approximate)
			}
			return nil
		},
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	showCmd := &cobra.Command{
		Use:   "show [run_id]",
		Short: "summarize a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  showRun,
	}
	showCmd.Flags().IntVar(&histBins, "bins", 40, "histogram bins")

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return storage.New(dataDir).ExportJSON(os.Stdout, args[0])
		},
	}

	initCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "write the selected configuration to a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if err := config.Save(args[0], cfg); err != nil {
				return err
			}
			fmt.Printf("wrote %s\n", args[0])
			return nil
		},
	}

	rootCmd.AddCommand(renderCmd, traceCmd, thresholdsCmd, presetsCmd, listCmd, showCmd, exportCmd, initCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func addRenderFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "output image (.png, .bmp, .tiff)")
	cmd.Flags().IntVar(&width, "width", config.DefaultWidth, "image width")
	cmd.Flags().IntVar(&height, "height", config.DefaultHeight, "image height")
	cmd.Flags().IntVar(&workers, "workers", 0, "worker goroutines (0 = all CPUs)")
	cmd.Flags().IntVar(&maxSteps, "max-steps", 0, "step budget override")
	cmd.Flags().StringVar(&integrator, "integrator", "", "integrator override (euler, rk4, rk45)")
	cmd.Flags().BoolVar(&progress, "progress", false, "show a live progress bar")
	cmd.Flags().BoolVar(&noStore, "no-store", false, "do not record the run in the data directory")
}

func setupLogging() {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	dynamo.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

// loadConfig resolves the preset, then the config file, then any flag the
// user set explicitly. It also returns a short name for the run.
func loadConfig(cmd *cobra.Command) (*config.Config, string, error) {
	cfg := config.DefaultConfig()
	name := "triangle"

	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, "", fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		name = preset
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, "", fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
		name = strings.TrimSuffix(filepath.Base(configFile), filepath.Ext(configFile))
	}

	flags := cmd.Flags()
	if flags.Changed("width") {
		cfg.Render.Width = width
	}
	if flags.Changed("height") {
		cfg.Render.Height = height
	}
	if flags.Changed("workers") {
		cfg.Render.Workers = workers
	}
	if flags.Changed("max-steps") {
		cfg.Simulation.MaxSteps = maxSteps
	}
	if flags.Changed("integrator") {
		cfg.Simulation.Integrator = integrator
	}
	if flags.Changed("out") {
		cfg.Output.Path = outPath
	}
	return cfg, name, nil
}

func renderFractal(cmd *cobra.Command, args []string) error {
	cfg, name, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	exp, err := experiment.New(cfg)
	if err != nil {
		return err
	}
	r, err := exp.Renderer()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	title := fmt.Sprintf("rendering %s (%dx%d)", name, cfg.Render.Width, cfg.Render.Height)
	var frame *render.Frame
	if progress {
		frame, err = tui.Run(ctx, r, title)
	} else {
		fmt.Println(title + "...")
		frame, err = r.Render(ctx)
	}
	if err != nil {
		return err
	}

	out := exp.Config().Output.Path
	if err := imageio.Save(out, frame.Buffer); err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", frame.Elapsed)
	fmt.Printf("image: %s\n\n", out)
	if err := viz.WriteSummary(os.Stdout, frame.Stats, exp.Mapper().Legend()); err != nil {
		return err
	}
	if frame.Stats.Captured() > 0 {
		steps := exp.Config().Simulation.MaxSteps
		fmt.Println()
		fmt.Println(viz.HistogramPlot(metrics.StepHistogram(frame.Results, 40, steps), steps, 80, 8))
	}

	if noStore {
		return nil
	}
	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.Save(storage.Run{
		Name:       name,
		Config:     exp.Config(),
		Bounds:     exp.Scene().Bounds(),
		Thresholds: exp.Scene().Thresholds(),
		Frame:      frame,
	})
	if err != nil {
		return err
	}
	fmt.Printf("\nrun id: %s\n", runID)
	return nil
}

func traceStart(cmd *cobra.Command, args []string) error {
	cfg, _, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	exp, err := experiment.New(cfg)
	if err != nil {
		return err
	}

	tr, err := exp.Trace(startX, startY)
	var serr *dynamo.SimulationError
	if err != nil && !errors.As(err, &serr) {
		return err
	}

	st := viz.NewStyles(viz.CurrentTheme)
	fmt.Println(st.Title.Render(fmt.Sprintf("trace from (%g, %g)", startX, startY)))
	fmt.Printf("start:   %v\n", tr.Start)
	fmt.Printf("result:  %v\n", tr.Result)
	fmt.Printf("time:    %.3fs\n", tr.Time(cfg.Simulation.TimeStep))
	fmt.Printf("final:   %v\n", tr.Final)
	if serr != nil {
		fmt.Println(st.Bad.Render(serr.Error()))
	}

	fmt.Println("\nmetrics:")
	for name, val := range tr.Metrics {
		fmt.Printf("  %s: %.6g\n", name, val)
	}

	fmt.Println()
	fmt.Println(viz.EnergyPlot(tr.Energy, 80, 10))
	fmt.Println()

	sys := exp.Scene().System()
	legend := exp.Mapper().Legend()
	magnets := make([]vecmath.Vec3, sys.NumMagnets())
	markers := make([]export.Marker, sys.NumMagnets())
	for i := range magnets {
		magnets[i] = sys.Magnet(i).Position
		markers[i] = export.Marker{Pos: magnets[i], Color: legend[i]}
	}
	fmt.Print(viz.PlotPath(tr.Positions, magnets, exp.Scene().Bounds(), 40, 20))

	if svgPath == "" {
		return nil
	}
	svg := export.TraceSVG(tr.Positions, markers, exp.Scene().Bounds(), 800, string(viz.CurrentTheme.Secondary))
	if err := os.WriteFile(svgPath, []byte(svg), 0644); err != nil {
		return err
	}
	fmt.Printf("\nsvg: %s\n", svgPath)
	return nil
}

func printThresholds(cmd *cobra.Command, args []string) error {
	cfg, name, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	exp, err := experiment.New(cfg)
	if err != nil {
		return err
	}
	sc := exp.Scene()

	fmt.Printf("%s: %d magnets, %s, rod %.4g\n", name, sc.System().NumMagnets(), sc.System().Mode(), sc.System().RodLength())
	fmt.Printf("bounds: %v\n\n", sc.Bounds())
	fmt.Print(viz.Thresholds(sc.Thresholds()))
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
	fmt.Fprintln(w, "ID\tTIME\tSIZE\tMODE\tMAGNETS\tINTEG\tCAPTURED\tELAPSED")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%dx%d\t%s\t%d\t%s\t%.1f%%\t%.2fs\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Width, run.Height,
			run.Mode,
			run.Magnets,
			run.Integrator,
			100*run.Stats.Fraction(sim.OutcomeCaptured),
			run.ElapsedSec,
		)
	}

	return w.Flush()
}

func showRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	results, err := st.LoadResults(runID)
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("fingerprint: %s\n", meta.Fingerprint)
	fmt.Printf("bounds: %v\n", meta.Bounds)
	fmt.Printf("thresholds: %s\n\n", strings.Join(meta.Thresholds, ", "))

	summary := metrics.Summarize(results, meta.Magnets)
	var legend []color.RGBA
	if cfg, err := st.LoadConfig(runID); err == nil {
		if e, err := experiment.New(cfg); err == nil {
			legend = e.Mapper().Legend()
		}
	}
	if err := viz.WriteSummary(os.Stdout, summary, legend); err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(viz.HistogramPlot(metrics.StepHistogram(results, histBins, meta.MaxSteps), meta.MaxSteps, 80, 10))
	return nil
}
