// Package braille implements a drawing surface on a terminal cell grid. Every cell holds a
// 2x4 block of dots rendered as one Unicode braille rune, so a WxH cell canvas exposes a
// 2W x 4H dot coordinate space.
package braille

import (
	"math"
	"slices"

	"github.com/NimbleMarkets/ntcharts/canvas"
	"github.com/NimbleMarkets/ntcharts/canvas/graph"
	"github.com/NimbleMarkets/ntcharts/canvas/runes"
	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/keilerkonzept/livechart/internal/livechart"
)

const (
	dotsX = 2
	dotsY = 4
)

type cell struct {
	fg   livechart.Color
	bg   livechart.Color
	text rune
	// textFg is kept apart from fg so text stays readable over dots of another color.
	textFg livechart.Color
}

type point struct{ x, y float64 }

// Canvas is a livechart.Surface backed by braille cells. Drawing operations set dots and
// cell colors; the ntcharts canvas is composed from them when the canvas is viewed.
type Canvas struct {
	cols, rows int
	dots       []bool
	cells      []cell
	view       canvas.Model
	background livechart.Color

	stroke livechart.Color
	fill   livechart.Color

	path    [][]point
	current []point
}

func New(cols, rows int, background livechart.Color) *Canvas {
	cols = max(1, cols)
	rows = max(1, rows)
	return &Canvas{
		cols:       cols,
		rows:       rows,
		dots:       make([]bool, cols*dotsX*rows*dotsY),
		cells:      make([]cell, cols*rows),
		view:       canvas.New(cols, rows),
		background: background,
		stroke:     livechart.Black,
		fill:       livechart.Black,
	}
}

// SetBackground changes the color translucent fills are blended over.
func (c *Canvas) SetBackground(bg livechart.Color) { c.background = bg }

func (c *Canvas) Cols() int { return c.cols }
func (c *Canvas) Rows() int { return c.rows }

func (c *Canvas) Size() (float64, float64) {
	return float64(c.cols * dotsX), float64(c.rows * dotsY)
}

// ToDots converts a cell position to the dot at the centre of that cell.
func ToDots(col, row int) (float64, float64) {
	return float64(col*dotsX) + 0.5, float64(row*dotsY) + 1.5
}

func (c *Canvas) ClearRect(x, y, w, h float64) {
	c0, r0 := c.cellAt(x, y)
	c1, r1 := c.cellAt(x+w-1, y+h-1)
	for row := max(0, r0); row <= min(c.rows-1, r1); row++ {
		for col := max(0, c0); col <= min(c.cols-1, c1); col++ {
			c.cells[row*c.cols+col] = cell{}
			for dy := range dotsY {
				for dx := range dotsX {
					c.dots[c.dotIndex(col*dotsX+dx, row*dotsY+dy)] = false
				}
			}
		}
	}
}

func (c *Canvas) BeginPath() {
	c.path = nil
	c.current = nil
}

func (c *Canvas) MoveTo(x, y float64) {
	if len(c.current) > 0 {
		c.path = append(c.path, c.current)
	}
	c.current = []point{{x, y}}
}

func (c *Canvas) LineTo(x, y float64) {
	if len(c.current) == 0 {
		c.current = []point{{x, y}}
		return
	}
	c.current = append(c.current, point{x, y})
}

func (c *Canvas) ClosePath() {
	if len(c.current) > 1 {
		c.current = append(c.current, c.current[0])
	}
}

func (c *Canvas) Stroke() {
	for _, sub := range c.subpaths() {
		if len(sub) == 1 {
			c.setDot(sub[0].x, sub[0].y, c.stroke)
			continue
		}
		for i := 1; i < len(sub); i++ {
			for _, p := range graph.GetLinePoints(gridPoint(sub[i-1]), gridPoint(sub[i])) {
				c.setDot(float64(p.X), float64(p.Y), c.stroke)
			}
		}
	}
	c.BeginPath()
}

// Fill paints the interior of the current path with the even-odd rule.
func (c *Canvas) Fill() {
	subs := c.subpaths()
	c.BeginPath()
	if len(subs) == 0 {
		return
	}
	minY, maxY := math.Inf(1), math.Inf(-1)
	for _, sub := range subs {
		for _, p := range sub {
			minY = math.Min(minY, p.y)
			maxY = math.Max(maxY, p.y)
		}
	}
	_, h := c.Size()
	y0 := int(math.Max(0, math.Floor(minY)))
	y1 := int(math.Min(h-1, math.Ceil(maxY)))
	for y := y0; y <= y1; y++ {
		scan := float64(y) + 0.5
		var xs []float64
		for _, sub := range subs {
			for i := range sub {
				a, b := sub[i], sub[(i+1)%len(sub)]
				if (a.y <= scan) == (b.y <= scan) {
					continue
				}
				xs = append(xs, a.x+(scan-a.y)*(b.x-a.x)/(b.y-a.y))
			}
		}
		slices.Sort(xs)
		for i := 0; i+1 < len(xs); i += 2 {
			for x := math.Ceil(xs[i] - 0.5); x+0.5 <= xs[i+1]; x++ {
				c.setDot(x, float64(y), c.fill)
			}
		}
	}
}

// FillRect paints dots for opaque colors. Translucent colors only tint the cell background,
// blended over the canvas background.
func (c *Canvas) FillRect(x, y, w, h float64) {
	if w < 0 {
		x, w = x+w, -w
	}
	if h < 0 {
		y, h = y+h, -h
	}
	if a := c.fill.RGBA().A; a < 0xff {
		c.tint(x, y, w, h, float64(a)/0xff)
		return
	}
	for dy := math.Floor(y); dy < y+h; dy++ {
		for dx := math.Floor(x); dx < x+w; dx++ {
			c.setDot(dx, dy, c.fill)
		}
	}
}

// FillCircle fills the rows spanned by the circle outline.
func (c *Canvas) FillCircle(x, y, radius float64) {
	center := canvas.NewPointFromFloat64Point(canvas.Float64Point{X: x, Y: y})
	r := int(math.Round(radius))
	if r < 1 {
		c.setDot(float64(center.X), float64(center.Y), c.fill)
		return
	}
	spans := make(map[int][2]int)
	for _, p := range graph.GetCirclePoints(center, r) {
		s, ok := spans[p.Y]
		if !ok {
			s = [2]int{p.X, p.X}
		}
		spans[p.Y] = [2]int{min(s[0], p.X), max(s[1], p.X)}
	}
	for row, s := range spans {
		for col := s[0]; col <= s[1]; col++ {
			c.setDot(float64(col), float64(row), c.fill)
		}
	}
}

func (c *Canvas) SetStrokeColor(col livechart.Color) { c.stroke = col }
func (c *Canvas) SetFillColor(col livechart.Color)   { c.fill = col }

// SetLineWidth is ignored, strokes are always one dot wide.
func (c *Canvas) SetLineWidth(float64) {}

// SetFontSize is ignored, text always occupies one cell row.
func (c *Canvas) SetFontSize(float64) {}

// MeasureText returns the width of text in dots.
func (c *Canvas) MeasureText(text string) float64 {
	return float64(lipgloss.Width(text) * dotsX)
}

// FillText writes text into the cell row containing the baseline y.
func (c *Canvas) FillText(text string, x, y float64) {
	col, row := c.cellAt(x, y-1)
	if row < 0 || row >= c.rows {
		return
	}
	for _, r := range text {
		if col >= c.cols {
			return
		}
		if col >= 0 {
			cl := &c.cells[row*c.cols+col]
			cl.text = r
			cl.textFg = c.fill
		}
		col++
	}
}

// Dot reports whether the dot at (x, y) is set.
func (c *Canvas) Dot(x, y int) bool {
	if x < 0 || y < 0 || x >= c.cols*dotsX || y >= c.rows*dotsY {
		return false
	}
	return c.dots[c.dotIndex(x, y)]
}

// Plain renders the canvas without colors.
func (c *Canvas) Plain() string {
	c.compose()
	buf := make([]rune, 0, c.rows*(c.cols+1))
	for row := range c.rows {
		if row > 0 {
			buf = append(buf, '\n')
		}
		for col := range c.cols {
			r := c.view.Cell(canvas.Point{X: col, Y: row}).Rune
			if r == runes.Null {
				r = ' '
			}
			buf = append(buf, r)
		}
	}
	return string(buf)
}

// String renders the canvas with lipgloss colors.
func (c *Canvas) String() string {
	c.compose()
	return c.view.View()
}

// compose encodes the dots through a braille grid and writes one styled cell per position.
func (c *Canvas) compose() {
	w, h := c.cols*dotsX, c.rows*dotsY
	grid := graph.NewBrailleGrid(c.cols, c.rows, 0, float64(w-1), 0, float64(h-1))
	for i, set := range c.dots {
		if set {
			grid.Set(canvas.Point{X: i % w, Y: i / w})
		}
	}
	patterns := grid.BraillePatterns()

	c.view.Clear()
	for row := range c.rows {
		for col := range c.cols {
			cl := c.cells[row*c.cols+col]
			r, fg := ' ', cl.fg
			switch {
			case cl.text != 0:
				r, fg = cl.text, cl.textFg
			case c.cellHasDots(col, row) && row < len(patterns) && col < len(patterns[row]):
				r = patterns[row][col]
			}
			c.view.SetCell(canvas.Point{X: col, Y: row}, canvas.NewCellWithStyle(r, c.style(fg, cl.bg)))
		}
	}
}

func (c *Canvas) style(fg, bg livechart.Color) lipgloss.Style {
	st := lipgloss.NewStyle()
	if fg != "" {
		st = st.Foreground(lipgloss.Color(fg.Hex()))
	}
	if bg != "" {
		st = st.Background(lipgloss.Color(bg.Hex()))
	}
	return st
}

func (c *Canvas) cellHasDots(col, row int) bool {
	for dy := range dotsY {
		for dx := range dotsX {
			if c.dots[c.dotIndex(col*dotsX+dx, row*dotsY+dy)] {
				return true
			}
		}
	}
	return false
}

func (c *Canvas) subpaths() [][]point {
	subs := c.path
	if len(c.current) > 0 {
		subs = append(subs, c.current)
	}
	return subs
}

func (c *Canvas) cellAt(x, y float64) (int, int) {
	return int(math.Floor(x / dotsX)), int(math.Floor(y / dotsY))
}

func (c *Canvas) dotIndex(x, y int) int {
	return y*c.cols*dotsX + x
}

func (c *Canvas) setDot(x, y float64, col livechart.Color) {
	ix, iy := int(math.Floor(x)), int(math.Floor(y))
	if ix < 0 || iy < 0 || ix >= c.cols*dotsX || iy >= c.rows*dotsY {
		return
	}
	c.dots[c.dotIndex(ix, iy)] = true
	c.cells[(iy/dotsY)*c.cols+ix/dotsX].fg = col
}

func gridPoint(p point) canvas.Point {
	return canvas.Point{X: int(math.Floor(p.x)), Y: int(math.Floor(p.y))}
}

func (c *Canvas) tint(x, y, w, h, alpha float64) {
	base, err := colorful.Hex(c.background.Hex())
	if err != nil {
		base = colorful.Color{}
	}
	fill := c.fill.RGBA()
	over := colorful.Color{R: float64(fill.R) / 0xff, G: float64(fill.G) / 0xff, B: float64(fill.B) / 0xff}
	tinted := livechart.Color(base.BlendRgb(over, alpha).Clamped().Hex())

	c0, r0 := c.cellAt(x, y)
	c1, r1 := c.cellAt(x+w-1, y+h-1)
	for row := max(0, r0); row <= min(c.rows-1, r1); row++ {
		for col := max(0, c0); col <= min(c.cols-1, c1); col++ {
			c.cells[row*c.cols+col].bg = tinted
		}
	}
}
