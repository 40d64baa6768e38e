package livechart

// Surface is a 2D immediate-mode drawing target. Coordinates are in surface units with the
// origin at the top left. Path operations build one path that Stroke or Fill consume.
type Surface interface {
	Size() (width, height float64)
	ClearRect(x, y, w, h float64)

	BeginPath()
	MoveTo(x, y float64)
	LineTo(x, y float64)
	ClosePath()
	Stroke()
	Fill()

	FillRect(x, y, w, h float64)
	FillCircle(x, y, radius float64)

	SetStrokeColor(c Color)
	SetFillColor(c Color)
	SetLineWidth(w float64)
	SetFontSize(size float64)

	MeasureText(text string) float64
	// FillText draws text with its baseline at y.
	FillText(text string, x, y float64)
}
