package main

import (
	"fmt"
	"math/rand/v2"
	"os"
	"time"

	tui "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/term"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/keilerkonzept/livechart/internal/livechart"
)

type Config struct {
	// chart
	Mode         string
	Grid         bool
	Speed        int
	MinText      string
	MaxText      string
	Spacing      float64
	SmoothRadius int
	Seed         uint64
	Start        bool

	// render
	RawPane      bool
	Dark         bool
	StatsEnabled bool
	StatsWindow  int
	AltScreen    bool

	// snapshot
	Output   string
	Format   string
	Width    int
	Height   int
	Ticks    int
	PixelGap float64
	PointerX float64
	PointerY float64

	LogFile string
}

var config = Config{
	Mode:         "line",
	Grid:         true,
	Speed:        20,
	MinText:      "",
	MaxText:      "",
	Spacing:      livechart.TerminalLayout.Spacing,
	SmoothRadius: livechart.DefaultSmoothRadius,
	Seed:         0,
	Start:        true,

	RawPane:      true,
	Dark:         true,
	StatsEnabled: true,
	StatsWindow:  256,
	AltScreen:    true,

	Output:   "livechart.png",
	Format:   "",
	Width:    1200,
	Height:   600,
	Ticks:    100,
	PixelGap: livechart.CanvasLayout.Spacing,
	PointerX: -1,
	PointerY: -1,
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "livechart",
		Short:        "Live multi-series chart in the terminal",
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := validateAndNormalizeConfig(); err != nil {
				return err
			}
			return runTUI()
		},
	}
	bindChartFlags(root.PersistentFlags())
	root.Flags().BoolVar(&config.Start, "start", config.Start, "Start updating immediately")
	root.Flags().BoolVar(&config.RawPane, "raw-pane", config.RawPane, "Show the unsmoothed buffers below the chart")
	root.Flags().BoolVar(&config.Dark, "dark", config.Dark, "Start with the dark theme")
	root.Flags().BoolVar(&config.StatsEnabled, "stats", config.StatsEnabled, "Show runtime performance stats")
	root.Flags().IntVar(&config.StatsWindow, "stats-window", config.StatsWindow, "Number of recent samples kept per metric")
	root.Flags().BoolVar(&config.AltScreen, "alt-screen", config.AltScreen, "Use the terminal alternate screen buffer (recommended inside IDE terminals)")
	root.Flags().Float64Var(&config.Spacing, "spacing", config.Spacing, "Horizontal distance between samples, in braille dots")

	snap := &cobra.Command{
		Use:   "snapshot",
		Short: "Run the chart headless for a number of ticks and write the result as PNG or SVG",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := validateAndNormalizeConfig(); err != nil {
				return err
			}
			return runSnapshot(cmd.OutOrStdout())
		},
	}
	snap.Flags().StringVarP(&config.Output, "output", "o", config.Output, "Write the image to this file")
	snap.Flags().StringVar(&config.Format, "format", config.Format, "Image format: png or svg (default: from the output file extension)")
	snap.Flags().IntVar(&config.Width, "width", config.Width, "Surface width in pixels")
	snap.Flags().IntVar(&config.Height, "height", config.Height, "Surface height in pixels")
	snap.Flags().IntVar(&config.Ticks, "ticks", config.Ticks, "Number of ticks to run before rendering")
	snap.Flags().Float64Var(&config.PointerX, "pointer-x", config.PointerX, "Pointer x position for the tooltip (negative = none)")
	snap.Flags().Float64Var(&config.PointerY, "pointer-y", config.PointerY, "Pointer y position for the tooltip (negative = none)")
	snap.Flags().Float64Var(&config.PixelGap, "spacing", config.PixelGap, "Horizontal distance between samples, in pixels")
	root.AddCommand(snap)

	return root
}

func bindChartFlags(fs *pflag.FlagSet) {
	fs.StringVar(&config.Mode, "mode", config.Mode, "Chart mode: line, bar, area or scatter")
	fs.BoolVar(&config.Grid, "grid", config.Grid, "Draw grid lines")
	fs.IntVar(&config.Speed, "speed", config.Speed, "Update speed slider [1,100], 10ms per step")
	fs.StringVar(&config.MinText, "min", config.MinText, "Lower bound for samples (default 0)")
	fs.StringVar(&config.MaxText, "max", config.MaxText, "Upper bound for samples (default: surface height)")
	fs.IntVar(&config.SmoothRadius, "smooth", config.SmoothRadius, "Moving average radius (0 disables smoothing)")
	fs.Uint64Var(&config.Seed, "seed", config.Seed, "Random seed for the generators (0 = time based)")
	fs.StringVar(&config.LogFile, "log-file", config.LogFile, "Write JSON logs to this file")
}

func validateAndNormalizeConfig() error {
	if _, err := livechart.ParseMode(config.Mode); err != nil {
		return fmt.Errorf("-mode: %w", err)
	}
	if config.Speed < livechart.MinSpeed || config.Speed > livechart.MaxSpeed {
		return fmt.Errorf("-speed must be in [%d,%d]", livechart.MinSpeed, livechart.MaxSpeed)
	}
	if config.Spacing <= 0 || config.PixelGap <= 0 {
		return fmt.Errorf("-spacing must be > 0")
	}
	if config.SmoothRadius < 0 {
		return fmt.Errorf("-smooth must be >= 0")
	}
	if config.Width < 1 {
		return fmt.Errorf("-width must be >= 1")
	}
	if config.Height < 1 {
		return fmt.Errorf("-height must be >= 1")
	}
	if config.Ticks < 0 {
		return fmt.Errorf("-ticks must be >= 0")
	}
	if config.Output == "" {
		return fmt.Errorf("-output must not be empty")
	}
	if config.StatsWindow < 16 {
		config.StatsWindow = 16
	}
	if config.Seed == 0 {
		config.Seed = uint64(time.Now().UnixNano())
	}
	return nil
}

// newLogger writes JSON logs to path. Without a path the logger goes to fallback, or nowhere
// when fallback is empty.
func newLogger(path, fallback string) (*zap.Logger, error) {
	if path == "" {
		path = fallback
	}
	if path == "" {
		return zap.NewNop(), nil
	}
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{path}
	cfg.ErrorOutputPaths = []string{path}
	log, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("open log %s: %w", path, err)
	}
	return log, nil
}

func newRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

func runTUI() error {
	if !term.IsTerminal(os.Stdout.Fd()) {
		return fmt.Errorf("stdout is not a terminal, use the snapshot command for headless rendering")
	}
	log, err := newLogger(config.LogFile, "")
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	m := newModel(log, newRand(config.Seed), time.Now)
	opts := []tui.ProgramOption{tui.WithMouseAllMotion()}
	if config.AltScreen {
		opts = append(opts, tui.WithAltScreen())
	}
	log.Info("starting", zap.String("mode", config.Mode), zap.Int("speed", config.Speed), zap.Uint64("seed", config.Seed))
	if _, err := tui.NewProgram(m, opts...).Run(); err != nil {
		return fmt.Errorf("run ui: %w", err)
	}
	return nil
}
