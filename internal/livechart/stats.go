package livechart

import (
	"fmt"
	"strings"
)

type Trend int

const (
	Stable Trend = iota
	Rising
	Falling
)

func (t Trend) String() string {
	switch t {
	case Rising:
		return "Rising"
	case Falling:
		return "Falling"
	default:
		return "Stable"
	}
}

// TrendWindow is the number of samples in each of the recent and previous windows.
const TrendWindow = 20

type Latest struct {
	Name  string
	Value float64
}

// Stats summarizes the current buffers. When HasData is false the numeric fields are zero.
type Stats struct {
	HasData bool
	Latest  []Latest
	Min     float64
	Max     float64
	Mean    float64
	Trend   Trend
}

// Summarize concatenates all buffers in series order and reports min, max, mean, the latest
// sample of each series and the trend of the last TrendWindow samples against the window before.
func Summarize(series []*Series) Stats {
	var all []float64
	var st Stats
	for _, ds := range series {
		v, ok := ds.Latest()
		if !ok {
			continue
		}
		st.Latest = append(st.Latest, Latest{Name: ds.Name, Value: v})
		all = append(all, ds.Values...)
	}
	if len(all) == 0 {
		return Stats{}
	}

	st.HasData = true
	st.Min, st.Max = all[0], all[0]
	var sum float64
	for _, v := range all {
		st.Min = min(st.Min, v)
		st.Max = max(st.Max, v)
		sum += v
	}
	st.Mean = sum / float64(len(all))

	recentStart := max(0, len(all)-TrendWindow)
	previousStart := max(0, len(all)-2*TrendWindow)
	st.Trend = ClassifyTrend(all[recentStart:], all[previousStart:recentStart])
	return st
}

// ClassifyTrend compares the means of two windows. Either window empty means Stable.
func ClassifyTrend(recent, previous []float64) Trend {
	r, okR := mean(recent)
	p, okP := mean(previous)
	switch {
	case !okR || !okP:
		return Stable
	case r > p:
		return Rising
	case r < p:
		return Falling
	default:
		return Stable
	}
}

func mean(values []float64) (float64, bool) {
	if len(values) == 0 {
		return 0, false
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values)), true
}

// Lines renders the three display strings: current values, min/max, average and trend.
func (s Stats) Lines() (values, minMax, avgTrend string) {
	if !s.HasData {
		return "Values: no data", "Max = no data || Min = no data", "Avg: no data || " + Stable.String()
	}
	parts := make([]string, 0, len(s.Latest))
	for _, l := range s.Latest {
		parts = append(parts, fmt.Sprintf("%s=%.2f", l.Name, l.Value))
	}
	values = "Values: " + strings.Join(parts, ", ")
	minMax = fmt.Sprintf("Max = %.2f || Min = %.2f", s.Max, s.Min)
	avgTrend = fmt.Sprintf("Avg: %.2f || %s", s.Mean, s.Trend)
	return values, minMax, avgTrend
}
