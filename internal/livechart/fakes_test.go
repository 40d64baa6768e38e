package livechart

import (
	"fmt"
	"time"
)

type recordingSurface struct {
	w, h float64
	ops  []string
}

func newRecordingSurface(w, h float64) *recordingSurface {
	return &recordingSurface{w: w, h: h}
}

func (s *recordingSurface) record(format string, args ...any) {
	s.ops = append(s.ops, fmt.Sprintf(format, args...))
}

func (s *recordingSurface) Size() (float64, float64)     { return s.w, s.h }
func (s *recordingSurface) ClearRect(x, y, w, h float64) { s.record("clear %g %g %g %g", x, y, w, h) }
func (s *recordingSurface) BeginPath()                   { s.record("begin") }
func (s *recordingSurface) MoveTo(x, y float64)          { s.record("move %g %g", x, y) }
func (s *recordingSurface) LineTo(x, y float64)          { s.record("line %g %g", x, y) }
func (s *recordingSurface) ClosePath()                   { s.record("close") }
func (s *recordingSurface) Stroke()                      { s.record("stroke") }
func (s *recordingSurface) Fill()                        { s.record("fill") }
func (s *recordingSurface) FillRect(x, y, w, h float64)  { s.record("rect %g %g %g %g", x, y, w, h) }
func (s *recordingSurface) FillCircle(x, y, r float64)   { s.record("circle %g %g %g", x, y, r) }
func (s *recordingSurface) SetStrokeColor(c Color)       { s.record("strokecolor %s", c) }
func (s *recordingSurface) SetFillColor(c Color)         { s.record("fillcolor %s", c) }
func (s *recordingSurface) SetLineWidth(w float64)       { s.record("linewidth %g", w) }
func (s *recordingSurface) SetFontSize(size float64)     { s.record("font %g", size) }
func (s *recordingSurface) MeasureText(text string) float64 {
	return float64(len(text)) * 7
}
func (s *recordingSurface) FillText(text string, x, y float64) { s.record("text %q %g %g", text, x, y) }

func (s *recordingSurface) count(prefix string) int {
	n := 0
	for _, op := range s.ops {
		if len(op) >= len(prefix) && op[:len(prefix)] == prefix {
			n++
		}
	}
	return n
}

func (s *recordingSurface) index(op string) int {
	for i, o := range s.ops {
		if o == op {
			return i
		}
	}
	return -1
}

type manualScheduler struct {
	handles []*manualHandle
}

type manualHandle struct {
	d         time.Duration
	fn        func()
	cancelled bool
}

func (h *manualHandle) Cancel() { h.cancelled = true }

func (s *manualScheduler) Every(d time.Duration, fn func()) Handle {
	h := &manualHandle{d: d, fn: fn}
	s.handles = append(s.handles, h)
	return h
}

// fire runs every live timer once.
func (s *manualScheduler) fire() {
	for _, h := range s.handles {
		if !h.cancelled {
			h.fn()
		}
	}
}

func (s *manualScheduler) live() int {
	n := 0
	for _, h := range s.handles {
		if !h.cancelled {
			n++
		}
	}
	return n
}

// sequence returns a generator that yields values in order and then repeats the last one.
func sequence(values ...float64) Generator {
	i := 0
	return func() float64 {
		v := values[min(i, len(values)-1)]
		i++
		return v
	}
}

func constant(v float64) Generator {
	return func() float64 { return v }
}
