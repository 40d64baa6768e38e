package main

import (
	"math"
	"strings"
	"testing"
	"time"

	tui "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/keilerkonzept/livechart/internal/livechart"
)

func testModel(t *testing.T, edit func(c *Config)) *model {
	t.Helper()
	withConfig(t, func(c *Config) {
		c.Seed = 7
		c.Start = false
		if edit != nil {
			edit(c)
		}
	})
	clock := func() time.Time { return time.Unix(1700000000, 0) }
	return newModel(zap.NewNop(), newRand(config.Seed), clock)
}

func runes(s string) tui.KeyMsg {
	return tui.KeyMsg{Type: tui.KeyRunes, Runes: []rune(s)}
}

func TestModelInitStartsChart(t *testing.T) {
	m := testModel(t, func(c *Config) { c.Start = true })
	if cmd := m.Init(); cmd == nil {
		t.Fatalf("Init returned no tick command")
	}
	if !m.chart.Running() || m.sched.live() != 1 {
		t.Fatalf("running=%v live=%d", m.chart.Running(), m.sched.live())
	}
}

func TestModelInitStopped(t *testing.T) {
	m := testModel(t, nil)
	if cmd := m.Init(); cmd != nil {
		t.Fatalf("stopped chart armed a timer")
	}
	if m.chart.Running() {
		t.Fatalf("chart running")
	}
	if !strings.Contains(m.View(), "LIVE CHART (STOPPED)") {
		t.Fatalf("view lacks stopped title")
	}
}

func TestModelToggleKey(t *testing.T) {
	m := testModel(t, nil)
	m.Update(runes("s"))
	if !m.chart.Running() || m.sched.live() != 1 {
		t.Fatalf("start: running=%v live=%d", m.chart.Running(), m.sched.live())
	}
	m.Update(tui.KeyMsg{Type: tui.KeySpace, Runes: []rune{' '}})
	if m.chart.Running() || m.sched.live() != 0 {
		t.Fatalf("stop: running=%v live=%d", m.chart.Running(), m.sched.live())
	}
}

func TestModelTimerTicks(t *testing.T) {
	m := testModel(t, nil)
	m.Update(runes("s"))
	before := append([]float64(nil), m.chart.Series()[0].Values...)

	_, cmd := m.Update(timerMsg{id: 1, at: time.Unix(10, 0)})
	if cmd == nil {
		t.Fatalf("timer was not re-armed")
	}
	after := m.chart.Series()[0].Values
	if len(after) != len(before) {
		t.Fatalf("buffer length changed: %d -> %d", len(before), len(after))
	}
	if after[0] != before[1] {
		t.Fatalf("buffer did not shift")
	}
	if snap := m.metrics.snapshot(); snap.ticks != 1 {
		t.Fatalf("ticks = %d", snap.ticks)
	}

	// stale id from a timer that never existed
	prev := append([]float64(nil), after...)
	m.Update(timerMsg{id: 99})
	if m.chart.Series()[0].Values[0] != prev[0] {
		t.Fatalf("stale tick advanced the buffers")
	}
}

func TestModelSpeedRestartsTimer(t *testing.T) {
	m := testModel(t, nil)
	m.Update(runes("s"))
	m.Update(runes("+"))
	if m.speed != 15 {
		t.Fatalf("speed = %d", m.speed)
	}
	if got := m.chart.Cadence(); got != 150*time.Millisecond {
		t.Fatalf("cadence = %v", got)
	}
	if m.sched.live() != 1 {
		t.Fatalf("live timers = %d", m.sched.live())
	}
	if _, ok := m.sched.fire(timerMsg{id: 1}); ok {
		t.Fatalf("cancelled timer still fires")
	}

	m.speed = livechart.MinSpeed
	m.Update(runes("+"))
	if m.speed != livechart.MinSpeed {
		t.Fatalf("speed below minimum: %d", m.speed)
	}
}

func TestModelModeAndGridKeys(t *testing.T) {
	m := testModel(t, nil)
	m.Update(runes("3"))
	if got := m.chart.Config().Mode; got != livechart.ModeArea {
		t.Fatalf("mode = %v", got)
	}
	m.Update(runes("m"))
	if got := m.chart.Config().Mode; got != livechart.ModeScatter {
		t.Fatalf("mode after next = %v", got)
	}
	grid := m.chart.Config().ShowGrid
	m.Update(runes("g"))
	if m.chart.Config().ShowGrid == grid {
		t.Fatalf("grid not toggled")
	}
}

func TestModelBoundsKeys(t *testing.T) {
	m := testModel(t, nil)
	_, h := m.canvas.Size()
	m.Update(runes("]"))
	if got := m.chart.Bounds(); got.Min != h/boundsSteps || got.Max != h {
		t.Fatalf("bounds = %+v", got)
	}
	if m.minText != formatBound(h/boundsSteps) {
		t.Fatalf("minText = %q", m.minText)
	}
	m.Update(runes("{"))
	if got := m.chart.Bounds(); got.Max != h-h/boundsSteps {
		t.Fatalf("max = %v", got.Max)
	}
	for _, s := range m.chart.Series() {
		for _, v := range s.Values {
			if v < 0 || v > h {
				t.Fatalf("%s value %v out of range", s.Name, v)
			}
		}
	}
}

func TestModelResize(t *testing.T) {
	m := testModel(t, nil)
	m.Update(tui.WindowSizeMsg{Width: 100, Height: 40})
	if m.canvas.Cols() != 98 {
		t.Fatalf("cols = %d", m.canvas.Cols())
	}
	w, h := m.canvas.Size()
	want := livechart.PointCount(w, config.Spacing)
	for _, s := range m.chart.Series() {
		if len(s.Values) != want {
			t.Fatalf("%s has %d values, want %d", s.Name, len(s.Values), want)
		}
	}
	if got := m.chart.Bounds(); got.Max != h {
		t.Fatalf("bounds max = %v, want %v", got.Max, h)
	}
	if m.raw == nil || m.raw.NumDataPoints != want {
		t.Fatalf("raw pane not resized")
	}
}

func TestModelMouseTooltip(t *testing.T) {
	m := testModel(t, nil)
	s := m.chart.Series()[0]
	curve := livechart.SmoothClamp(s.Values, m.chart.SmoothRadius(), m.chart.Bounds())
	_, h := m.canvas.Size()
	i := 10
	x, y := float64(i)*config.Spacing, h-curve[i]
	col := int(math.Floor(x / 2))
	row := min(int(math.Floor(y/4)), m.canvas.Rows()-1)

	m.Update(tui.MouseMsg{X: col + 1, Y: row + 1, Action: tui.MouseActionMotion})
	if !m.chart.Tooltip().Visible {
		t.Fatalf("tooltip hidden over a data point")
	}
	if snap := m.metrics.snapshot(); snap.redraw.n != 1 || snap.tick.n != 0 {
		t.Fatalf("pointer redraw recorded as %+v", snap)
	}

	m.Update(tui.MouseMsg{X: 0, Y: 0, Action: tui.MouseActionMotion})
	if m.chart.Tooltip().Visible {
		t.Fatalf("tooltip visible outside the chart")
	}
}

func TestModelViewShowsStats(t *testing.T) {
	m := testModel(t, nil)
	view := m.View()
	for _, want := range []string{"Values: Line A=", "Max = ", "Avg: ", "ticks: 0", "tick+render: last", "pointer redraw: last", "LINE"} {
		if !strings.Contains(view, want) {
			t.Errorf("view lacks %q", want)
		}
	}
}

func TestModelQuitStopsChart(t *testing.T) {
	m := testModel(t, nil)
	m.Update(runes("s"))
	_, cmd := m.Update(tui.KeyMsg{Type: tui.KeyCtrlC})
	if cmd == nil {
		t.Fatalf("no quit command")
	}
	if _, ok := cmd().(tui.QuitMsg); !ok {
		t.Fatalf("command is not quit")
	}
	if m.chart.Running() || m.sched.live() != 0 {
		t.Fatalf("chart still running after quit")
	}
}
