package livechart

import (
	"strings"
	"testing"
)

func flatSeries(name string, c Color, v float64, n int) *Series {
	s := NewSeries(name, c, constant(v))
	s.Values = make([]float64, n)
	for i := range s.Values {
		s.Values[i] = v
	}
	return s
}

func testRenderer() Renderer {
	return Renderer{Layout: CanvasLayout, SmoothRadius: DefaultSmoothRadius, Bounds: Bounds{Min: 0, Max: 300}}
}

func TestRenderLine(t *testing.T) {
	s := newRecordingSurface(40, 300)
	series := []*Series{flatSeries("a", Green, 100, 3)}
	testRenderer().Render(s, series, RenderConfig{Mode: ModeLine, Spacing: 20}, Tooltip{})

	if s.ops[0] != "clear 0 0 40 300" {
		t.Fatalf("first op = %q, want clear", s.ops[0])
	}
	for _, op := range []string{"strokecolor #008000", "move 0 200", "line 20 200", "line 40 200"} {
		if s.index(op) < 0 {
			t.Errorf("missing %q in %v", op, s.ops)
		}
	}
	if s.index("linewidth 3") < 0 {
		t.Errorf("line width not applied")
	}
}

func TestRenderBar(t *testing.T) {
	s := newRecordingSurface(40, 300)
	series := []*Series{flatSeries("a", Red, 100, 3)}
	testRenderer().Render(s, series, RenderConfig{Mode: ModeBar, Spacing: 20}, Tooltip{})

	for _, op := range []string{"rect -5 200 10 100", "rect 15 200 10 100", "rect 35 200 10 100"} {
		if s.index(op) < 0 {
			t.Errorf("missing %q in %v", op, s.ops)
		}
	}
}

func TestRenderArea(t *testing.T) {
	s := newRecordingSurface(40, 300)
	series := []*Series{flatSeries("a", Blue, 100, 3)}
	testRenderer().Render(s, series, RenderConfig{Mode: ModeArea, Spacing: 20}, Tooltip{})

	move := s.index("move 0 300")
	last := s.index("line 60 300")
	closed := s.index("close")
	fill := s.index("fill")
	if move < 0 || last < move || closed < last || fill < closed {
		t.Fatalf("area path out of order: move=%d last=%d close=%d fill=%d in %v", move, last, closed, fill, s.ops)
	}
}

func TestRenderScatter(t *testing.T) {
	s := newRecordingSurface(40, 300)
	series := []*Series{flatSeries("a", Blue, 100, 3)}
	testRenderer().Render(s, series, RenderConfig{Mode: ModeScatter, Spacing: 20}, Tooltip{})
	if got := s.count("circle "); got != 3 {
		t.Fatalf("circles = %d, want 3", got)
	}
	if s.index("circle 20 200 4") < 0 {
		t.Fatalf("missing circle at sample 1: %v", s.ops)
	}
}

func TestRenderGridBeforeDataLabelsAfter(t *testing.T) {
	s := newRecordingSurface(300, 200)
	series := []*Series{flatSeries("a", Green, 50, 16)}
	testRenderer().Render(s, series, RenderConfig{Mode: ModeLine, ShowGrid: true, Spacing: 20}, Tooltip{})

	grid := s.index("strokecolor #808080")
	data := s.index("strokecolor #008000")
	label := s.index(`text "200" 5 10`)
	if grid < 0 || data < grid || label < data {
		t.Fatalf("order grid=%d data=%d label=%d", grid, data, label)
	}
	// two vertical lines (x=0,150), two horizontal (y=0,100)
	if got := s.count("stroke") - s.count("strokecolor"); got != 4+1 {
		t.Fatalf("strokes = %d, want 5", got)
	}
	if s.index(`text "150" 155 180`) < 0 {
		t.Fatalf("missing x label: %v", s.ops)
	}
}

func TestRenderNoGrid(t *testing.T) {
	s := newRecordingSurface(300, 200)
	testRenderer().Render(s, nil, RenderConfig{Mode: ModeLine, Spacing: 20}, Tooltip{})
	if s.index("strokecolor #808080") >= 0 {
		t.Fatalf("grid drawn while disabled")
	}
}

func TestRenderSkipsEmptySeries(t *testing.T) {
	s := newRecordingSurface(40, 300)
	series := []*Series{NewSeries("empty", Green, nil)}
	for _, m := range []Mode{ModeLine, ModeBar, ModeArea, ModeScatter} {
		testRenderer().Render(s, series, RenderConfig{Mode: m, Spacing: 20}, Tooltip{})
	}
	if s.index("strokecolor #008000") >= 0 {
		t.Fatalf("empty series painted")
	}
}

func TestRenderTooltip(t *testing.T) {
	s := newRecordingSurface(40, 300)
	tip := Tooltip{Visible: true, X: 20, Y: 200, Label: "a: 1.00"}
	testRenderer().Render(s, nil, RenderConfig{Mode: ModeLine, Spacing: 20}, tip)

	n := len(s.ops)
	if !strings.HasPrefix(s.ops[n-1], `text "a: 1.00" 35 205`) {
		t.Fatalf("last op = %q, want tooltip text", s.ops[n-1])
	}
	// width 7 chars * 7 + 2*5 padding
	if s.index("rect 30 193 59 24") < 0 {
		t.Fatalf("missing tooltip background: %v", s.ops)
	}
	if s.index("fillcolor #000000b3") < 0 {
		t.Fatalf("tooltip background is not translucent")
	}
}

func TestRenderSmoothsAndClamps(t *testing.T) {
	s := newRecordingSurface(20, 300)
	series := []*Series{NewSeries("a", Green, nil)}
	series[0].Values = []float64{0, 400}
	r := Renderer{Layout: CanvasLayout, SmoothRadius: 0, Bounds: Bounds{Min: 10, Max: 250}}
	r.Render(s, series, RenderConfig{Mode: ModeLine, Spacing: 20}, Tooltip{})
	if s.index("move 0 290") < 0 || s.index("line 20 50") < 0 {
		t.Fatalf("curve not clamped: %v", s.ops)
	}
}

func TestModeParseAndNext(t *testing.T) {
	for _, m := range []Mode{ModeLine, ModeBar, ModeArea, ModeScatter} {
		got, err := ParseMode(m.String())
		if err != nil || got != m {
			t.Fatalf("ParseMode(%q) = %v, %v", m.String(), got, err)
		}
	}
	if _, err := ParseMode("pie"); err == nil {
		t.Fatalf("ParseMode(pie) succeeded")
	}
	if ModeScatter.Next() != ModeLine || ModeLine.Next() != ModeBar {
		t.Fatalf("Next does not cycle")
	}
}
