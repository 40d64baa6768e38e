package main

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tui "github.com/charmbracelet/bubbletea"
	styles "github.com/charmbracelet/lipgloss"
	plot "github.com/chriskim06/drawille-go"
	"go.uber.org/zap"

	"github.com/keilerkonzept/livechart/internal/livechart"
	"github.com/keilerkonzept/livechart/internal/surface/braille"
)

type theme struct {
	selected  styles.Color
	border    styles.Color
	chartBg   livechart.Color
	highlight plot.Color
	dim       plot.Color
}

var (
	darkTheme = theme{
		selected:  styles.Color("9"),
		border:    styles.Color("#555"),
		chartBg:   "#333333",
		highlight: plot.Red,
		dim:       plot.DimGray,
	}
	lightTheme = theme{
		selected:  styles.Color("0"),
		border:    styles.Color("#555"),
		chartBg:   "#fa8072",
		highlight: plot.Black,
		dim:       plot.LightGray,
	}
)

const (
	speedStep   = 5
	boundsSteps = 20
	statsTitle  = 1
	statsLines  = 3
	perfLines   = 3
	helpLines   = 1
	labelLines  = 1
	borderLines = 2
)

// display holds the three formatted statistics strings of the last render pass.
type display struct {
	values   string
	minMax   string
	avgTrend string
}

type model struct {
	width, height int

	chart   *livechart.Chart
	canvas  *braille.Canvas
	sched   *teaScheduler
	display display

	rng   *rand.Rand
	clock func() time.Time

	speed   int
	minText string
	maxText string
	focus   int
	dark    bool

	raw       *plot.Canvas
	rawData   [][]float64
	rawColors []plot.Color

	help    help.Model
	metrics *renderMetrics
	log     *zap.Logger
}

func newModel(log *zap.Logger, rng *rand.Rand, clock func() time.Time) *model {
	const (
		defaultWidth  = 80
		defaultHeight = 20
	)
	m := &model{
		sched:   newTeaScheduler(),
		rng:     rng,
		clock:   clock,
		speed:   config.Speed,
		minText: config.MinText,
		maxText: config.MaxText,
		dark:    config.Dark,
		help:    help.New(),
		metrics: newRenderMetrics(config.StatsWindow),
		log:     log,
	}
	m.metrics.setEnabled(config.StatsEnabled)

	mode, _ := livechart.ParseMode(config.Mode)
	layout := livechart.TerminalLayout
	layout.Spacing = config.Spacing

	m.canvas = braille.New(defaultWidth-2, defaultHeight, m.theme().chartBg)
	_, h := m.canvas.Size()
	m.chart = livechart.New(livechart.Options{
		Surface:      m.canvas,
		Scheduler:    m.sched,
		Series:       livechart.DefaultSeries(m.rng, m.clock, h),
		Bounds:       livechart.ParseBounds(m.minText, m.maxText, h),
		Mode:         mode,
		ShowGrid:     config.Grid,
		Cadence:      livechart.CadenceFromSlider(m.speed),
		SmoothRadius: config.SmoothRadius,
		Layout:       layout,
		Logger:       log.Named("chart"),
		OnRender:     m.onRender,
	})
	m.resizeRaw(defaultWidth-2, 4)
	m.chart.Draw()
	return m
}

func (m *model) theme() theme {
	if m.dark {
		return darkTheme
	}
	return lightTheme
}

func (m *model) onRender(st livechart.Stats) {
	m.display.values, m.display.minMax, m.display.avgTrend = st.Lines()
}

func (m *model) Init() tui.Cmd {
	if config.Start {
		m.chart.Start()
	}
	return m.sched.flush()
}

func (m *model) Update(msg tui.Msg) (tui.Model, tui.Cmd) {
	switch msg := msg.(type) {
	case timerMsg:
		start := time.Now()
		cmd, ok := m.sched.fire(msg)
		if ok {
			m.metrics.observeTick(msg.at, time.Since(start))
			m.refreshRaw()
		}
		return m, tui.Batch(cmd, m.sched.flush())
	case tui.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resize()
		return m, m.sched.flush()
	case tui.MouseMsg:
		if msg.Action != tui.MouseActionMotion {
			return m, nil
		}
		start := time.Now()
		col, row := msg.X-1, msg.Y-1
		if col < 0 || row < 0 || col >= m.canvas.Cols() || row >= m.canvas.Rows() {
			m.chart.PointerLeave()
			return m, nil
		}
		m.chart.PointerMove(braille.ToDots(col, row))
		m.metrics.observeRedraw(time.Since(start))
		return m, nil
	case tui.KeyMsg:
		if key.Matches(msg, keys.Quit) {
			m.chart.Stop()
			return m, tui.Quit
		}
		m.handleKey(msg)
		return m, m.sched.flush()
	}
	return m, nil
}

func (m *model) handleKey(msg tui.KeyMsg) {
	switch {
	case key.Matches(msg, keys.Toggle):
		m.chart.Toggle()
	case key.Matches(msg, keys.Line):
		m.chart.SetMode(livechart.ModeLine)
	case key.Matches(msg, keys.Bar):
		m.chart.SetMode(livechart.ModeBar)
	case key.Matches(msg, keys.Area):
		m.chart.SetMode(livechart.ModeArea)
	case key.Matches(msg, keys.Scatter):
		m.chart.SetMode(livechart.ModeScatter)
	case key.Matches(msg, keys.Mode):
		m.chart.SetMode(m.chart.Config().Mode.Next())
	case key.Matches(msg, keys.Grid):
		m.chart.SetGrid(!m.chart.Config().ShowGrid)
	case key.Matches(msg, keys.Reset):
		m.chart.Reset()
		m.refreshRaw()
	case key.Matches(msg, keys.Faster):
		m.setSpeed(m.speed - speedStep)
	case key.Matches(msg, keys.Slower):
		m.setSpeed(m.speed + speedStep)
	case key.Matches(msg, keys.MinDown):
		m.shiftBounds(-1, 0)
	case key.Matches(msg, keys.MinUp):
		m.shiftBounds(1, 0)
	case key.Matches(msg, keys.MaxDown):
		m.shiftBounds(0, -1)
	case key.Matches(msg, keys.MaxUp):
		m.shiftBounds(0, 1)
	case key.Matches(msg, keys.Focus):
		if n := len(m.chart.Series()); n > 0 {
			m.focus = (m.focus + 1) % n
		}
		m.refreshRaw()
	case key.Matches(msg, keys.Theme):
		m.dark = !m.dark
		m.canvas.SetBackground(m.theme().chartBg)
		m.chart.Draw()
		m.refreshRaw()
	}
}

// setSpeed moves the speed slider. Lower values tick faster.
func (m *model) setSpeed(v int) {
	v = min(livechart.MaxSpeed, max(livechart.MinSpeed, v))
	if v == m.speed {
		return
	}
	m.speed = v
	m.chart.SetCadence(livechart.CadenceFromSlider(v))
}

// shiftBounds nudges min and max by a twentieth of the surface height, keeping min < max.
func (m *model) shiftBounds(dMin, dMax int) {
	_, h := m.canvas.Size()
	step := h / boundsSteps
	b := m.chart.Bounds()
	b.Min = max(0, b.Min+float64(dMin)*step)
	b.Max = min(h, b.Max+float64(dMax)*step)
	if b.Min >= b.Max {
		return
	}
	m.minText = formatBound(b.Min)
	m.maxText = formatBound(b.Max)
	m.chart.SetBounds(b)
}

func formatBound(v float64) string {
	return fmt.Sprintf("%g", v)
}

func (m *model) resize() {
	if m.width == 0 || m.height == 0 {
		return
	}
	bottom := statsTitle + statsLines + helpLines
	if config.StatsEnabled {
		bottom += perfLines
	}
	available := max(1, m.height-bottom)

	rawRows := 0
	if config.RawPane {
		rawRows = max(2, available/5)
		available -= rawRows + labelLines + borderLines
	}
	rows := max(1, available-borderLines-labelLines)
	cols := max(1, m.width-borderLines)

	m.canvas = braille.New(cols, rows, m.theme().chartBg)
	_, h := m.canvas.Size()
	m.chart.SetBounds(livechart.ParseBounds(m.minText, m.maxText, h))
	m.chart.Resize(m.canvas, livechart.DefaultSeries(m.rng, m.clock, h))
	m.focus = min(m.focus, len(m.chart.Series())-1)
	if config.RawPane {
		m.resizeRaw(cols, rawRows)
	}
	m.refreshRaw()
}

func (m *model) resizeRaw(w, h int) {
	p := plot.NewCanvas(w, h)
	width, _ := m.canvas.Size()
	p.NumDataPoints = livechart.PointCount(width, m.chart.Config().Spacing)
	p.ShowAxis = false
	p.LineColors = make([]plot.Color, len(m.chart.Series()))
	m.raw = &p
}

// refreshRaw copies the unsmoothed buffers into the overview plot with the focused series
// drawn last so it stays on top.
func (m *model) refreshRaw() {
	if !config.RawPane || m.raw == nil {
		return
	}
	series := m.chart.Series()
	n := len(series)
	if n == 0 {
		return
	}
	if len(m.rawData) != n {
		m.rawData = make([][]float64, n)
		m.rawColors = make([]plot.Color, n)
	}
	th := m.theme()
	for i := range n {
		s := series[(m.focus+1+i)%n]
		m.rawData[i] = append(m.rawData[i][:0], s.Values...)
		m.rawColors[i] = th.dim
	}
	m.rawColors[n-1] = th.highlight
	m.raw.NumDataPoints = len(series[0].Values)
	m.raw.LineColors = m.rawColors
	m.raw.Fill(m.rawData)
}

func (m *model) View() string {
	th := m.theme()
	selectedFg := styles.NewStyle().Foreground(th.selected)
	borderFg := styles.NewStyle().Foreground(th.border)
	boxStyle := styles.NewStyle().
		BorderStyle(styles.NormalBorder()).
		Foreground(th.border).
		BorderForeground(th.border)

	cfg := m.chart.Config()
	modes := make([]string, 0, 4)
	for _, mode := range []livechart.Mode{livechart.ModeLine, livechart.ModeBar, livechart.ModeArea, livechart.ModeScatter} {
		st := borderFg
		if mode == cfg.Mode {
			st = selectedFg
		}
		modes = append(modes, st.Render(strings.ToUpper(mode.String())))
	}
	grid := borderFg.Render("GRID")
	if cfg.ShowGrid {
		grid = selectedFg.Render("GRID")
	}
	b := m.chart.Bounds()
	labels := strings.Join(modes, " ") + "  " + grid + "  " +
		borderFg.Render(fmt.Sprintf("%s  [%g,%g]", m.chart.Cadence(), b.Min, b.Max))

	view := boxStyle.Render(styles.JoinVertical(styles.Left, m.canvas.String(), labels))
	if config.RawPane && m.raw != nil {
		focused := ""
		if series := m.chart.Series(); len(series) > 0 {
			focused = series[m.focus].Name
		}
		raw := m.raw.String()
		if raw == "" {
			raw = " "
		}
		view = styles.JoinVertical(styles.Left, view,
			boxStyle.Render(styles.JoinVertical(styles.Left, raw, borderFg.Render("raw: "+focused))))
	}

	title := "LIVE CHART (STOPPED)"
	if m.chart.Running() {
		title = "LIVE CHART (RUNNING)"
	}
	block := []string{title, m.display.values, m.display.minMax, m.display.avgTrend}
	if config.StatsEnabled {
		snap := m.metrics.snapshot()
		block = append(block,
			fmt.Sprintf("ticks: %d  rate: %.1f/s", snap.ticks, snap.tickRate),
			"tick+render: "+formatDurationStats(snap.tick),
			"pointer redraw: "+formatDurationStats(snap.redraw),
		)
	}
	statsStyle := styles.NewStyle().Foreground(th.selected)
	return styles.JoinVertical(styles.Left, view, statsStyle.Render(strings.Join(block, "\n")), m.help.View(keys))
}

func formatDurationStats(st durationStats) string {
	return fmt.Sprintf("last %s avg %s max %s", formatMetricDuration(st.last),
		formatMetricDuration(st.avg), formatMetricDuration(st.max))
}

func formatMetricDuration(d time.Duration) string {
	if d <= 0 {
		return "0.000ms"
	}
	return fmt.Sprintf("%.3fms", float64(d)/float64(time.Millisecond))
}

type keyMap struct {
	Toggle  key.Binding
	Line    key.Binding
	Bar     key.Binding
	Area    key.Binding
	Scatter key.Binding
	Mode    key.Binding
	Grid    key.Binding
	Reset   key.Binding
	Faster  key.Binding
	Slower  key.Binding
	MinDown key.Binding
	MinUp   key.Binding
	MaxDown key.Binding
	MaxUp   key.Binding
	Focus   key.Binding
	Theme   key.Binding
	Quit    key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Quit, k.Toggle, k.Mode, k.Grid, k.Reset, k.Faster, k.Slower, k.Focus, k.Theme}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Quit, k.Toggle, k.Reset},
		{k.Line, k.Bar, k.Area, k.Scatter, k.Mode},
		{k.Grid, k.Faster, k.Slower, k.Focus},
		{k.MinDown, k.MinUp, k.MaxDown, k.MaxUp, k.Theme},
	}
}

var keys = keyMap{
	Toggle: key.NewBinding(
		key.WithKeys("s", " "),
		key.WithHelp("s/space", "start/stop"),
	),
	Line: key.NewBinding(
		key.WithKeys("1"),
		key.WithHelp("1", "line"),
	),
	Bar: key.NewBinding(
		key.WithKeys("2"),
		key.WithHelp("2", "bar"),
	),
	Area: key.NewBinding(
		key.WithKeys("3"),
		key.WithHelp("3", "area"),
	),
	Scatter: key.NewBinding(
		key.WithKeys("4"),
		key.WithHelp("4", "scatter"),
	),
	Mode: key.NewBinding(
		key.WithKeys("m"),
		key.WithHelp("m", "next mode"),
	),
	Grid: key.NewBinding(
		key.WithKeys("g"),
		key.WithHelp("g", "grid"),
	),
	Reset: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "reset"),
	),
	Faster: key.NewBinding(
		key.WithKeys("+", "="),
		key.WithHelp("+", "faster"),
	),
	Slower: key.NewBinding(
		key.WithKeys("-", "_"),
		key.WithHelp("-", "slower"),
	),
	MinDown: key.NewBinding(
		key.WithKeys("["),
		key.WithHelp("[", "min down"),
	),
	MinUp: key.NewBinding(
		key.WithKeys("]"),
		key.WithHelp("]", "min up"),
	),
	MaxDown: key.NewBinding(
		key.WithKeys("{"),
		key.WithHelp("{", "max down"),
	),
	MaxUp: key.NewBinding(
		key.WithKeys("}"),
		key.WithHelp("}", "max up"),
	),
	Focus: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "focus series"),
	),
	Theme: key.NewBinding(
		key.WithKeys("t"),
		key.WithHelp("t", "theme"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q/ctrl+c", "quit"),
	),
}
