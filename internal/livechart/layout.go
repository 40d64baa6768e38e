package livechart

// Layout holds the geometry constants of one surface scale.
type Layout struct {
	Spacing         float64
	XIncrement      float64
	YIncrement      float64
	TextOffset      float64
	LabelBaseline   float64
	LabelFontSize   float64
	LabelColor      Color
	LineWidth       float64
	PointRadius     float64
	HitThreshold    float64
	TooltipFontSize float64
	TooltipPadding  float64
	TooltipOffset   float64
}

// CanvasLayout matches a pixel canvas.
var CanvasLayout = Layout{
	Spacing:         20,
	XIncrement:      150,
	YIncrement:      100,
	TextOffset:      5,
	LabelBaseline:   20,
	LabelFontSize:   10,
	LabelColor:      Black,
	LineWidth:       3,
	PointRadius:     4,
	HitThreshold:    8,
	TooltipFontSize: 14,
	TooltipPadding:  5,
	TooltipOffset:   10,
}

// TerminalLayout matches a braille dot grid, 2x4 dots per cell.
var TerminalLayout = Layout{
	Spacing:         4,
	XIncrement:      30,
	YIncrement:      20,
	TextOffset:      2,
	LabelBaseline:   0,
	LabelFontSize:   4,
	LabelColor:      Gray,
	LineWidth:       1,
	PointRadius:     1,
	HitThreshold:    4,
	TooltipFontSize: 4,
	TooltipPadding:  0,
	TooltipOffset:   4,
}
