package livechart

import (
	"time"

	"go.uber.org/zap"
)

type State int

const (
	Stopped State = iota
	Running
)

func (s State) String() string {
	if s == Running {
		return "running"
	}
	return "stopped"
}

type Options struct {
	Surface      Surface
	Scheduler    Scheduler
	Series       []*Series
	Bounds       Bounds
	Mode         Mode
	ShowGrid     bool
	Cadence      time.Duration
	// SmoothRadius is the moving average radius. 0 disables smoothing, a negative value
	// selects DefaultSmoothRadius.
	SmoothRadius int
	Layout       Layout
	Logger       *zap.Logger

	// OnRender is called after every render pass with the fresh statistics.
	OnRender func(Stats)
}

// Chart is the live series component. All methods must be called from one event loop.
type Chart struct {
	surface Surface
	sched   Scheduler
	handle  Handle
	series  []*Series
	log     *zap.Logger

	state    State
	bounds   Bounds
	config   RenderConfig
	cadence  time.Duration
	radius   int
	layout   Layout
	tooltip  Tooltip
	stats    Stats
	onRender func(Stats)
}

func New(opts Options) *Chart {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	layout := opts.Layout
	if layout == (Layout{}) {
		layout = CanvasLayout
	}
	cadence := opts.Cadence
	if cadence <= 0 {
		cadence = CadenceFromSlider(10)
	}
	c := &Chart{
		surface: opts.Surface,
		sched:   opts.Scheduler,
		series:  opts.Series,
		log:     log,
		bounds:  opts.Bounds,
		config: RenderConfig{
			Mode:     opts.Mode,
			ShowGrid: opts.ShowGrid,
			Spacing:  layout.Spacing,
		},
		cadence:  cadence,
		radius:   smoothRadius(opts.SmoothRadius),
		layout:   layout,
		onRender: opts.OnRender,
	}
	c.initialize()
	return c
}

func (c *Chart) State() State               { return c.state }
func (c *Chart) Running() bool              { return c.state == Running }
func (c *Chart) Bounds() Bounds             { return c.bounds }
func (c *Chart) Config() RenderConfig       { return c.config }
func (c *Chart) Cadence() time.Duration     { return c.cadence }
func (c *Chart) SmoothRadius() int          { return c.radius }
func (c *Chart) Tooltip() Tooltip           { return c.tooltip }
func (c *Chart) Stats() Stats               { return c.stats }
func (c *Chart) Series() []*Series          { return c.series }
func (c *Chart) Surface() Surface           { return c.surface }
func (c *Chart) SetOnRender(fn func(Stats)) { c.onRender = fn }

func (c *Chart) Start() {
	if c.state == Running {
		return
	}
	c.state = Running
	c.restartTimer()
	c.log.Debug("chart started", zap.Duration("cadence", c.cadence))
	c.Draw()
}

func (c *Chart) Stop() {
	if c.state == Stopped {
		return
	}
	c.cancelTimer()
	c.state = Stopped
	c.log.Debug("chart stopped")
}

func (c *Chart) Toggle() {
	if c.state == Running {
		c.Stop()
		return
	}
	c.Start()
}

// SetCadence changes the tick interval. A running timer is replaced, buffers are kept.
func (c *Chart) SetCadence(d time.Duration) {
	if d <= 0 {
		return
	}
	c.cadence = d
	if c.state == Running {
		c.restartTimer()
	}
	c.log.Debug("cadence changed", zap.Duration("cadence", d))
}

// SetBounds applies to the next generated sample and the next render. A running timer is
// restarted without touching the buffers.
func (c *Chart) SetBounds(b Bounds) {
	c.bounds = b
	if c.state == Running {
		c.restartTimer()
	}
	c.log.Debug("bounds changed", zap.Float64("min", b.Min), zap.Float64("max", b.Max))
	c.Draw()
}

func (c *Chart) SetMode(m Mode) {
	c.config.Mode = m
	c.Draw()
}

func (c *Chart) SetGrid(show bool) {
	c.config.ShowGrid = show
	c.Draw()
}

// SetSmoothRadius follows the same rule as Options.SmoothRadius.
func (c *Chart) SetSmoothRadius(r int) {
	c.radius = smoothRadius(r)
	c.Draw()
}

func smoothRadius(r int) int {
	if r < 0 {
		return DefaultSmoothRadius
	}
	return r
}

// Reset regenerates every buffer from scratch.
func (c *Chart) Reset() {
	c.initialize()
	c.log.Info("chart reset", zap.Int("points", c.points()))
	c.Draw()
}

// Resize swaps the drawing surface and resets the buffers to cover its width. A non-nil
// series slice replaces the current series, for generators that depend on the surface height.
func (c *Chart) Resize(s Surface, series []*Series) {
	c.surface = s
	if series != nil {
		c.series = series
	}
	c.tooltip = Tooltip{}
	c.initialize()
	w, h := c.size()
	c.log.Info("chart resized", zap.Float64("width", w), zap.Float64("height", h), zap.Int("points", c.points()))
	c.Draw()
}

// Step is one tick: generate, clamp, append/evict, render, summarize.
func (c *Chart) Step() {
	TickAll(c.series, c.bounds)
	c.Draw()
}

func (c *Chart) PointerMove(x, y float64) {
	_, h := c.size()
	probe := HitProbe{
		Bounds:       c.bounds,
		Spacing:      c.config.Spacing,
		Height:       h,
		SmoothRadius: c.radius,
		Threshold:    c.layout.HitThreshold,
	}
	c.tooltip = probe.HitTest(c.series, x, y)
	c.Draw()
}

func (c *Chart) PointerLeave() {
	if !c.tooltip.Visible {
		return
	}
	c.tooltip = Tooltip{}
	c.Draw()
}

// Draw runs a render pass and refreshes the statistics.
func (c *Chart) Draw() {
	if c.surface != nil {
		r := Renderer{Layout: c.layout, SmoothRadius: c.radius, Bounds: c.bounds}
		r.Render(c.surface, c.series, c.config, c.tooltip)
	}
	c.stats = Summarize(c.series)
	if c.onRender != nil {
		c.onRender(c.stats)
	}
}

// restartTimer cancels the current handle before scheduling the next one.
func (c *Chart) restartTimer() {
	c.cancelTimer()
	if c.sched == nil {
		return
	}
	c.handle = c.sched.Every(c.cadence, c.onTimer)
}

func (c *Chart) cancelTimer() {
	if c.handle == nil {
		return
	}
	c.handle.Cancel()
	c.handle = nil
}

func (c *Chart) onTimer() {
	if c.state != Running {
		return
	}
	c.Step()
}

func (c *Chart) initialize() {
	w, _ := c.size()
	Initialize(c.series, c.bounds, w, c.config.Spacing)
}

func (c *Chart) points() int {
	w, _ := c.size()
	return PointCount(w, c.config.Spacing)
}

func (c *Chart) size() (float64, float64) {
	if c.surface == nil {
		return 0, 0
	}
	return c.surface.Size()
}
