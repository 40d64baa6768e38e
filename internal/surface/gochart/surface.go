// Package gochart adapts a go-chart renderer to the livechart drawing surface so a render pass
// can be written out as PNG or SVG.
package gochart

import (
	"fmt"
	"io"
	"math"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/keilerkonzept/livechart/internal/livechart"
)

// Surface implements livechart.Surface on top of chart.Renderer. go-chart works in whole
// pixels, so coordinates are rounded.
type Surface struct {
	r          chart.Renderer
	format     Format
	width      int
	height     int
	background drawing.Color
	fill       drawing.Color
	stroke     drawing.Color
}

// Format selects the output encoding.
type Format string

const (
	PNG Format = "png"
	SVG Format = "svg"
)

func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case PNG, SVG:
		return Format(s), nil
	}
	return "", fmt.Errorf("unknown snapshot format %q (want png or svg)", s)
}

func (f Format) provider() chart.RendererProvider {
	if f == SVG {
		return chart.SVG
	}
	return chart.PNG
}

func New(format Format, width, height int, background livechart.Color) (*Surface, error) {
	if width < 1 || height < 1 {
		return nil, fmt.Errorf("surface size must be positive, got %dx%d", width, height)
	}
	r, err := format.provider()(width, height)
	if err != nil {
		return nil, fmt.Errorf("create %s renderer: %w", format, err)
	}
	font, err := chart.GetDefaultFont()
	if err != nil {
		return nil, fmt.Errorf("load default font: %w", err)
	}
	r.SetFont(font)

	s := &Surface{
		r:          r,
		format:     format,
		width:      width,
		height:     height,
		background: toDrawing(background),
		fill:       drawing.ColorBlack,
		stroke:     drawing.ColorBlack,
	}
	s.ClearRect(0, 0, float64(width), float64(height))
	return s, nil
}

// Save encodes everything drawn so far.
func (s *Surface) Save(w io.Writer) error {
	return s.r.Save(w)
}

func (s *Surface) Size() (float64, float64) {
	return float64(s.width), float64(s.height)
}

// ClearRect paints the background color, go-chart has no notion of erasing.
func (s *Surface) ClearRect(x, y, w, h float64) {
	s.fillOnly(func() {
		s.r.SetFillColor(s.background)
		s.rect(x, y, w, h)
		s.r.Fill()
		s.r.SetFillColor(s.fill)
	})
}

func (s *Surface) BeginPath()          {}
func (s *Surface) MoveTo(x, y float64) { s.r.MoveTo(px(x), px(y)) }
func (s *Surface) LineTo(x, y float64) { s.r.LineTo(px(x), px(y)) }
func (s *Surface) ClosePath()          { s.r.Close() }
func (s *Surface) Stroke()             { s.r.Stroke() }
func (s *Surface) Fill()               { s.fillOnly(s.r.Fill) }

func (s *Surface) FillRect(x, y, w, h float64) {
	s.fillOnly(func() {
		s.rect(x, y, w, h)
		s.r.Fill()
	})
}

// FillCircle draws a disc. The SVG renderer writes the circle element itself; the PNG
// renderer only adds it to the path.
func (s *Surface) FillCircle(x, y, radius float64) {
	s.fillOnly(func() {
		s.r.Circle(radius, px(x), px(y))
		if s.format == PNG {
			s.r.Fill()
		}
	})
}

// fillOnly runs draw with a transparent stroke, since the SVG renderer strokes what it fills.
func (s *Surface) fillOnly(draw func()) {
	s.r.SetStrokeColor(drawing.ColorTransparent)
	draw()
	s.r.SetStrokeColor(s.stroke)
}

func (s *Surface) SetStrokeColor(c livechart.Color) {
	s.stroke = toDrawing(c)
	s.r.SetStrokeColor(s.stroke)
}

func (s *Surface) SetFillColor(c livechart.Color) {
	s.fill = toDrawing(c)
	s.r.SetFillColor(s.fill)
}

func (s *Surface) SetLineWidth(w float64) { s.r.SetStrokeWidth(w) }

// SetFontSize takes a size in pixels. Zero keeps the current size.
func (s *Surface) SetFontSize(size float64) {
	if size <= 0 {
		return
	}
	dpi := s.r.GetDPI()
	if dpi <= 0 {
		dpi = chart.DefaultDPI
	}
	s.r.SetFontSize(size * 72 / dpi)
}

func (s *Surface) MeasureText(text string) float64 {
	return float64(s.r.MeasureText(text).Width())
}

func (s *Surface) FillText(text string, x, y float64) {
	s.r.SetFontColor(s.fill)
	s.r.Text(text, px(x), px(y))
}

func (s *Surface) rect(x, y, w, h float64) {
	s.r.MoveTo(px(x), px(y))
	s.r.LineTo(px(x+w), px(y))
	s.r.LineTo(px(x+w), px(y+h))
	s.r.LineTo(px(x), px(y+h))
	s.r.Close()
}

func toDrawing(c livechart.Color) drawing.Color {
	rgba := c.RGBA()
	return drawing.Color{R: rgba.R, G: rgba.G, B: rgba.B, A: rgba.A}
}

func px(v float64) int {
	return int(math.Round(v))
}
