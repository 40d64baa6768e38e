package livechart

// DefaultSmoothRadius is the number of neighbours on each side averaged into one sample.
const DefaultSmoothRadius = 4

// MovingAverage returns a new slice of the same length. Each sample is the mean of the input
// window [i-radius, i+radius], shrunk at the edges instead of zero padded.
func MovingAverage(values []float64, radius int) []float64 {
	if radius < 0 {
		radius = 0
	}
	out := make([]float64, len(values))
	for i := range values {
		start := max(0, i-radius)
		end := min(len(values)-1, i+radius)
		var sum float64
		for _, v := range values[start : end+1] {
			sum += v
		}
		out[i] = sum / float64(end-start+1)
	}
	return out
}

// SmoothClamp is the curve shared by rendering and hit-testing.
func SmoothClamp(values []float64, radius int, b Bounds) []float64 {
	out := MovingAverage(values, radius)
	for i, v := range out {
		out[i] = b.Clamp(v)
	}
	return out
}
