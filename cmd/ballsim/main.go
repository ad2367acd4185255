package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/ballsim/internal/automation"
	"github.com/san-kum/ballsim/internal/config"
	"github.com/san-kum/ballsim/internal/control"
	"github.com/san-kum/ballsim/internal/export"
	"github.com/san-kum/ballsim/internal/gui"
	"github.com/san-kum/ballsim/internal/metrics"
	"github.com/san-kum/ballsim/internal/sim"
	"github.com/san-kum/ballsim/internal/storage"
	"github.com/san-kum/ballsim/internal/viz"
)

var (
	dataDir    string
	configFile string
	preset     string
	logLevel   string
	logJSON    bool

	seed         int64
	runFrames    int
	benchFrames  int
	scenarioFile string
	svgOut       string
	sampleEvery  int
	benchCount   int
	column       string
	every        int
	jsonOut      bool
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "ballsim",
		Short: "2-D particle sandbox with verlet integration and a spatial hash",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setupLogging()
		},
		RunE: runGUI,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".ballsim", "data directory")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "classic", "named preset")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "debug, info, warn or error")
	rootCmd.PersistentFlags().BoolVar(&logJSON, "log-json", false, "log as json")
	rootCmd.PersistentFlags().Int64Var(&seed, "seed", 0, "color seed (0 uses the clock)")

	guiCmd := &cobra.Command{
		Use:   "gui",
		Short: "run in a window",
		Args:  cobra.NoArgs,
		RunE:  runGUI,
	}

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "run in the terminal",
		Args:  cobra.NoArgs,
		RunE:  runTUI,
	}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run headless and save telemetry",
		Args:  cobra.NoArgs,
		RunE:  runHeadless,
	}
	runCmd.Flags().IntVar(&runFrames, "frames", 600, "frames to run")
	runCmd.Flags().StringVar(&scenarioFile, "scenario", "", "scenario file (yaml)")
	runCmd.Flags().StringVar(&svgOut, "svg", "", "write the final frame as svg")
	runCmd.Flags().IntVar(&sampleEvery, "sample-every", 1, "record every nth frame")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a telemetry column",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringVar(&column, "column", "count", "column to plot")
	plotCmd.Flags().StringVar(&svgOut, "svg", "", "also write the plot as svg")

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id] [path]",
		Short: "export a run's frames as csv",
		Args:  cobra.ExactArgs(2),
		RunE:  exportRun,
	}
	exportCSVCmd.Flags().IntVar(&every, "every", 1, "keep every nth row")
	exportCSVCmd.Flags().BoolVar(&jsonOut, "json", false, "export metadata and frames as json")

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "measure frame throughput at a fixed population",
		Args:  cobra.NoArgs,
		RunE:  bench,
	}
	benchCmd.Flags().IntVar(&benchCount, "particles", 10000, "population to hold")
	benchCmd.Flags().IntVar(&benchFrames, "frames", 200, "frames to time")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list presets",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range config.ListPresets() {
				fmt.Println(name)
			}
		},
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "print the effective config as yaml",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			out, err := yaml.Marshal(cfg)
			if err != nil {
				return err
			}
			fmt.Print(string(out))
			return nil
		},
	}

	rootCmd.AddCommand(guiCmd, tuiCmd, runCmd, listCmd, plotCmd, exportCSVCmd, benchCmd, presetsCmd, configCmd)
	return rootCmd
}

func setupLogging() error {
	var level slog.Level
	if err := level.UnmarshalText([]byte(logLevel)); err != nil {
		return fmt.Errorf("invalid log level %q: %w", logLevel, err)
	}
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler = slog.NewTextHandler(os.Stderr, opts)
	if logJSON {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(handler))
	return nil
}

// loadConfig resolves the preset, then the config file on top of it, then
// explicitly set flags.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.MustPreset(preset)
	if err != nil {
		return nil, err
	}
	if configFile != "" {
		cfg, err = config.LoadOver(configFile, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}
	if cmd.Flags().Changed("seed") {
		cfg.Seed = seed
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newSimulator(cmd *cobra.Command, clock sim.Clock, opts ...sim.Option) (*sim.Simulator, *config.Config, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, err
	}
	s, err := sim.New(cfg, clock, opts...)
	if err != nil {
		return nil, nil, err
	}
	slog.Debug("simulator ready", "preset", preset, "capacity", cfg.Capacity, "settings", s.Settings())
	return s, cfg, nil
}

func runGUI(cmd *cobra.Command, args []string) error {
	s, _, err := newSimulator(cmd, sim.NewSystemClock())
	if err != nil {
		return err
	}
	gui.Run(s)
	return nil
}

func runTUI(cmd *cobra.Command, args []string) error {
	s, _, err := newSimulator(cmd, sim.NewSystemClock())
	if err != nil {
		return err
	}
	return viz.Run(s)
}

func runHeadless(cmd *cobra.Command, args []string) error {
	sc := automation.FillScenario(runFrames)
	if scenarioFile != "" {
		loaded, err := automation.LoadScenario(scenarioFile)
		if err != nil {
			return err
		}
		sc = loaded
		if sc.Preset != "" && !cmd.Flags().Changed("preset") {
			preset = sc.Preset
		}
		if sc.Frames == 0 || cmd.Flags().Changed("frames") {
			sc.Frames = runFrames
		}
	}

	clock := sim.NewManualClock(0)
	s, cfg, err := newSimulator(cmd, clock)
	if err != nil {
		return err
	}

	summary := metrics.Standard(cfg.Capacity, cfg.CellSize)
	recorder := metrics.NewRecorder(cfg.Capacity, cfg.CellSize, sampleEvery)
	s.AddObserver(summary)
	s.AddObserver(recorder)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	start := time.Now()
	n, err := automation.Run(ctx, s, clock, sc)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.Save(storage.RunMetadata{
		Preset:       preset,
		Scenario:     sc.Name,
		Seed:         cfg.Seed,
		Frames:       n,
		Capacity:     cfg.Capacity,
		SubSteps:     cfg.SubSteps,
		FrameSeconds: cfg.FrameSeconds,
		FinalCount:   s.Count(),
		Metrics:      summary.Values(),
	}, recorder.Samples())
	if err != nil {
		return err
	}

	if svgOut != "" {
		svg := export.SnapshotToSVG(s.Particles(), s.Boundary(), cfg.Window.Width, cfg.Window.Height, s.Settings().CollisionsEnabled)
		if err := os.WriteFile(svgOut, []byte(svg), 0644); err != nil {
			return err
		}
	}

	slog.Info("run saved", "id", runID, "frames", n, "particles", s.Count(), "elapsed", elapsed)
	fmt.Println(runID)
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
	fmt.Fprintln(w, "ID\tPRESET\tSCENARIO\tTIME\tFRAMES\tPARTICLES")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%d\n",
			run.ID,
			run.Preset,
			run.Scenario,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Frames,
			run.FinalCount,
		)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	samples, err := st.LoadFrames(runID)
	if err != nil {
		return err
	}
	if len(samples) == 0 {
		return fmt.Errorf("no data to plot")
	}

	data, err := storage.Column(samples, column)
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("samples: %d\n\n", len(samples))
	fmt.Println(asciigraph.Plot(data,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption(strings.ReplaceAll(column, "_", " ")),
	))

	if svgOut != "" {
		return os.WriteFile(svgOut, []byte(export.SeriesToSVG(data, 800, 300, "#00ff88")), 0644)
	}
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	if jsonOut {
		return st.ExportJSON(args[0], args[1])
	}
	return st.ExportCSV(args[0], args[1], every)
}

func bench(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if benchCount > cfg.Capacity {
		cfg.Capacity = benchCount
	}
	cfg.Initial.SpawnRate = min(benchCount, 20)

	s, err := sim.New(cfg, sim.NewManualClock(0))
	if err != nil {
		return err
	}

	s.Submit(control.Pressed(control.Spawn))
	for s.Count() < benchCount {
		s.Step()
	}
	s.Submit(control.Released(control.Spawn))
	s.Step()

	start := time.Now()
	for i := 0; i < benchFrames; i++ {
		s.Step()
	}
	elapsed := time.Since(start)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PARTICLES\tFRAMES\tTIME\tFRAMES/SEC\tMS/FRAME")
	fmt.Fprintf(w, "%d\t%d\t%v\t%.1f\t%.2f\n",
		s.Count(), benchFrames, elapsed,
		float64(benchFrames)/elapsed.Seconds(),
		elapsed.Seconds()*1000/float64(benchFrames))
	return w.Flush()
}
