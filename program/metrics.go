package main

import (
	"slices"
	"sync/atomic"
	"time"
)

type durationRing struct {
	buf   []time.Duration
	idx   int
	count int
}

func newDurationRing(n int) *durationRing {
	if n < 1 {
		n = 1
	}
	return &durationRing{buf: make([]time.Duration, n)}
}

func (r *durationRing) add(d time.Duration) {
	r.buf[r.idx] = d
	r.idx = (r.idx + 1) % len(r.buf)
	if r.count < len(r.buf) {
		r.count++
	}
}

type durationStats struct {
	last time.Duration
	max  time.Duration
	avg  time.Duration
	n    int
}

func (r *durationRing) snapshot() durationStats {
	if r.count == 0 {
		return durationStats{}
	}
	window := r.buf[:r.count]
	var sum time.Duration
	for _, d := range window {
		sum += d
	}

	lastIdx := r.idx - 1
	if lastIdx < 0 {
		lastIdx = len(r.buf) - 1
	}
	return durationStats{
		last: r.buf[lastIdx],
		max:  slices.Max(window),
		avg:  sum / time.Duration(r.count),
		n:    r.count,
	}
}

// renderMetrics tracks how often the chart ticks, how long a tick plus render pass takes, and
// how long pointer-driven redraws take.
type renderMetrics struct {
	enabled atomic.Bool

	ticks       atomic.Uint64
	firstTickNs atomic.Int64
	lastTickNs  atomic.Int64

	tickPasses *durationRing
	redraws    *durationRing
}

func newRenderMetrics(window int) *renderMetrics {
	return &renderMetrics{
		tickPasses: newDurationRing(window),
		redraws:    newDurationRing(window),
	}
}

func (m *renderMetrics) setEnabled(v bool) { m.enabled.Store(v) }
func (m *renderMetrics) isEnabled() bool   { return m.enabled.Load() }

func (m *renderMetrics) observeTick(now time.Time, d time.Duration) {
	if !m.isEnabled() {
		return
	}
	if now.IsZero() {
		now = time.Now()
	}
	nowNs := now.UnixNano()
	m.firstTickNs.CompareAndSwap(0, nowNs)
	m.lastTickNs.Store(nowNs)
	m.ticks.Add(1)
	m.tickPasses.add(d)
}

func (m *renderMetrics) observeRedraw(d time.Duration) {
	if !m.isEnabled() {
		return
	}
	m.redraws.add(d)
}

type snapshot struct {
	ticks    uint64
	tickRate float64
	tick     durationStats
	redraw   durationStats
}

func (m *renderMetrics) snapshot() snapshot {
	if !m.isEnabled() {
		return snapshot{}
	}
	ticks := m.ticks.Load()
	rate := 0.0
	first, last := m.firstTickNs.Load(), m.lastTickNs.Load()
	if first != 0 && last > first && ticks > 1 {
		active := time.Duration(last - first)
		rate = float64(ticks-1) / active.Seconds()
	}
	return snapshot{
		ticks:    ticks,
		tickRate: rate,
		tick:     m.tickPasses.snapshot(),
		redraw:   m.redraws.snapshot(),
	}
}
