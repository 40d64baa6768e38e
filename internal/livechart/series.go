package livechart

import (
	"math"
	"math/rand/v2"
	"time"
)

// Generator produces the next raw sample of a series.
type Generator func() float64

// Series is a named, colored, fixed-length rolling buffer of samples.
type Series struct {
	Name   string
	Color  Color
	Values []float64

	gen Generator
}

func NewSeries(name string, c Color, gen Generator) *Series {
	return &Series{Name: name, Color: c, gen: gen}
}

// Bounds is the [Min, Max] range every sample is clamped into.
type Bounds struct {
	Min float64
	Max float64
}

func Clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func (b Bounds) Clamp(v float64) float64 {
	return Clamp(v, b.Min, b.Max)
}

// Fill replaces the buffer with n fresh clamped samples.
func (s *Series) Fill(n int, b Bounds) {
	if n < 0 {
		n = 0
	}
	values := make([]float64, 0, n)
	for range n {
		values = append(values, b.Clamp(s.next()))
	}
	s.Values = values
}

// Tick appends one clamped sample and drops the oldest, so the length never changes.
func (s *Series) Tick(b Bounds) {
	v := b.Clamp(s.next())
	if len(s.Values) == 0 {
		return
	}
	copy(s.Values, s.Values[1:])
	s.Values[len(s.Values)-1] = v
}

func (s *Series) Latest() (float64, bool) {
	if len(s.Values) == 0 {
		return 0, false
	}
	return s.Values[len(s.Values)-1], true
}

func (s *Series) next() float64 {
	if s.gen == nil {
		return 0
	}
	return s.gen()
}

// PointCount is the number of samples that cover a surface of the given width.
func PointCount(width, spacing float64) int {
	if spacing <= 0 || width < 0 {
		return 1
	}
	return int(math.Floor(width/spacing)) + 1
}

func Initialize(series []*Series, b Bounds, width, spacing float64) {
	n := PointCount(width, spacing)
	for _, s := range series {
		s.Fill(n, b)
	}
}

func TickAll(series []*Series, b Bounds) {
	for _, s := range series {
		s.Tick(b)
	}
}

// Noise is uniform in [0, height).
func Noise(rng *rand.Rand, height float64) Generator {
	return func() float64 { return rng.Float64() * height }
}

// Jitter is mid plus uniform [0, spread).
func Jitter(rng *rand.Rand, mid, spread float64) Generator {
	return func() float64 { return mid + rng.Float64()*spread }
}

// Wave follows sin(t/period) scaled by amplitude around mid, where t is wall clock milliseconds.
func Wave(clock func() time.Time, mid, amplitude float64, period time.Duration) Generator {
	p := float64(period.Milliseconds())
	if p <= 0 {
		p = 1
	}
	return func() float64 {
		t := float64(clock().UnixMilli())
		return math.Sin(t/p)*amplitude + mid
	}
}

// DefaultSeries returns the three demo series scaled to a surface height.
func DefaultSeries(rng *rand.Rand, clock func() time.Time, height float64) []*Series {
	if clock == nil {
		clock = time.Now
	}
	return []*Series{
		NewSeries("Line A", Green, Noise(rng, height)),
		NewSeries("Line B", Red, Jitter(rng, height/2, height*2/15)),
		NewSeries("Line C", Blue, Wave(clock, height/2, height/3, 500*time.Millisecond)),
	}
}
