package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/keilerkonzept/livechart/internal/livechart"
	"github.com/keilerkonzept/livechart/internal/surface/gochart"
)

// runSnapshot advances the chart config.Ticks times on a virtual clock, renders one pass
// and writes it to config.Output. The statistics lines are printed to out.
func runSnapshot(out io.Writer) error {
	log, err := newLogger(config.LogFile, "stderr")
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	format, err := snapshotFormat(config.Format, config.Output)
	if err != nil {
		return err
	}
	surface, err := gochart.New(format, config.Width, config.Height, livechart.White)
	if err != nil {
		return err
	}

	mode, _ := livechart.ParseMode(config.Mode)
	cadence := livechart.CadenceFromSlider(config.Speed)
	start := time.Now()
	tick := 0
	clock := func() time.Time { return start.Add(time.Duration(tick) * cadence) }

	layout := livechart.CanvasLayout
	layout.Spacing = config.PixelGap
	height := float64(config.Height)
	chart := livechart.New(livechart.Options{
		Surface:      surface,
		Series:       livechart.DefaultSeries(newRand(config.Seed), clock, height),
		Bounds:       livechart.ParseBounds(config.MinText, config.MaxText, height),
		Mode:         mode,
		ShowGrid:     config.Grid,
		Cadence:      cadence,
		SmoothRadius: config.SmoothRadius,
		Layout:       layout,
		Logger:       log.Named("chart"),
	})

	// Ticks advance the buffers only, a vector surface keeps every pass it is given.
	for tick = 1; tick <= config.Ticks; tick++ {
		livechart.TickAll(chart.Series(), chart.Bounds())
	}
	if config.PointerX >= 0 && config.PointerY >= 0 {
		chart.PointerMove(config.PointerX, config.PointerY)
	} else {
		chart.Draw()
	}

	if err := writeSnapshot(surface, config.Output); err != nil {
		return err
	}
	log.Info("snapshot written",
		zap.String("path", config.Output),
		zap.String("format", string(format)),
		zap.Int("ticks", config.Ticks),
		zap.String("mode", mode.String()),
		zap.Bool("tooltip", chart.Tooltip().Visible),
	)

	values, minMax, avgTrend := chart.Stats().Lines()
	_, err = fmt.Fprintf(out, "%s\n%s\n%s\n", values, minMax, avgTrend)
	return err
}

func snapshotFormat(flagValue, path string) (gochart.Format, error) {
	if flagValue == "" {
		flagValue = strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	}
	f, err := gochart.ParseFormat(flagValue)
	if err != nil {
		return "", fmt.Errorf("-format: %w", err)
	}
	return f, nil
}

func writeSnapshot(s *gochart.Surface, path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", path, cerr)
		}
	}()
	if err := s.Save(f); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return nil
}
