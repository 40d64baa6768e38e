package livechart

import (
	"math"
	"strconv"
)

// Renderer paints series onto a Surface. It keeps no state between passes.
type Renderer struct {
	Layout       Layout
	SmoothRadius int
	Bounds       Bounds
}

// Render runs one full pass: clear, grid, data, labels, tooltip.
func (r Renderer) Render(s Surface, series []*Series, cfg RenderConfig, tip Tooltip) {
	width, height := s.Size()
	s.ClearRect(0, 0, width, height)

	if cfg.ShowGrid {
		r.drawGrid(s, width, height)
	}
	for _, ds := range series {
		if len(ds.Values) == 0 {
			continue
		}
		curve := SmoothClamp(ds.Values, r.SmoothRadius, r.Bounds)
		r.drawSeries(s, ds.Color, curve, cfg, height)
	}
	r.drawLabels(s, width, height)
	r.drawTooltip(s, tip)
}

func (r Renderer) drawGrid(s Surface, width, height float64) {
	s.SetStrokeColor(Gray)
	s.SetLineWidth(1)
	if r.Layout.XIncrement > 0 {
		for x := 0.0; x < width; x += r.Layout.XIncrement {
			s.BeginPath()
			s.MoveTo(x, 0)
			s.LineTo(x, height)
			s.Stroke()
		}
	}
	if r.Layout.YIncrement > 0 {
		for y := 0.0; y < height; y += r.Layout.YIncrement {
			s.BeginPath()
			s.MoveTo(0, y)
			s.LineTo(width, y)
			s.Stroke()
		}
	}
}

func (r Renderer) drawSeries(s Surface, c Color, curve []float64, cfg RenderConfig, height float64) {
	spacing := cfg.Spacing
	s.SetStrokeColor(c)
	s.SetFillColor(c)
	s.SetLineWidth(r.Layout.LineWidth)

	switch cfg.Mode {
	case ModeLine:
		s.BeginPath()
		s.MoveTo(0, height-curve[0])
		for i := 1; i < len(curve); i++ {
			s.LineTo(float64(i)*spacing, height-curve[i])
		}
		s.Stroke()
	case ModeBar:
		for i, v := range curve {
			x := float64(i)*spacing - spacing/4
			s.FillRect(x, height-v, spacing/2, v)
		}
	case ModeArea:
		s.BeginPath()
		s.MoveTo(0, height)
		for i, v := range curve {
			s.LineTo(float64(i)*spacing, height-v)
		}
		s.LineTo(float64(len(curve))*spacing, height)
		s.ClosePath()
		s.Fill()
	case ModeScatter:
		for i, v := range curve {
			s.FillCircle(float64(i)*spacing, height-v, r.Layout.PointRadius)
		}
	}
}

func (r Renderer) drawLabels(s Surface, width, height float64) {
	label := r.Layout.LabelColor
	if label == "" {
		label = Black
	}
	s.SetFillColor(label)
	s.SetFontSize(r.Layout.LabelFontSize)
	off := r.Layout.TextOffset
	if r.Layout.YIncrement > 0 {
		for y := 0.0; y < height; y += r.Layout.YIncrement {
			s.FillText(formatAxis(height-y), off, y+2*off)
		}
	}
	if r.Layout.XIncrement > 0 {
		for x := 0.0; x < width; x += r.Layout.XIncrement {
			s.FillText(formatAxis(x), x+off, height-r.Layout.LabelBaseline)
		}
	}
}

func (r Renderer) drawTooltip(s Surface, tip Tooltip) {
	if !tip.Visible {
		return
	}
	font := r.Layout.TooltipFontSize
	pad := r.Layout.TooltipPadding
	x := tip.X + r.Layout.TooltipOffset

	s.SetFontSize(font)
	w := s.MeasureText(tip.Label)
	s.SetFillColor(TooltipShadow)
	s.FillRect(x, tip.Y-font/2, w+2*pad, font+2*pad)
	s.SetFillColor(White)
	s.FillText(tip.Label, x+pad, tip.Y+pad)
}

func formatAxis(v float64) string {
	return strconv.FormatFloat(math.Round(v), 'f', -1, 64)
}
