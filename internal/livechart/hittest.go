package livechart

import (
	"fmt"
	"math"
)

// Tooltip is recomputed on every pointer move and never outlives a redraw.
type Tooltip struct {
	Visible bool
	X, Y    float64
	Label   string
}

// HitProbe describes how series map to surface positions for hit-testing.
type HitProbe struct {
	Bounds       Bounds
	Spacing      float64
	Height       float64
	SmoothRadius int
	Threshold    float64
}

// HitTest returns a tooltip for the first sample within Threshold of (px, py) on both axes,
// scanning series in order and samples by index. A miss returns a hidden tooltip.
func (p HitProbe) HitTest(series []*Series, px, py float64) Tooltip {
	for _, ds := range series {
		curve := SmoothClamp(ds.Values, p.SmoothRadius, p.Bounds)
		for i, v := range curve {
			x := float64(i) * p.Spacing
			y := p.Height - v
			if math.Abs(px-x) < p.Threshold && math.Abs(py-y) < p.Threshold {
				return Tooltip{
					Visible: true,
					X:       x,
					Y:       y,
					Label:   fmt.Sprintf("%s: %.2f", ds.Name, v),
				}
			}
		}
	}
	return Tooltip{}
}
