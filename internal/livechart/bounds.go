package livechart

import (
	"math"
	"strconv"
	"strings"
)

// ParseBounds reads the min/max inputs. Empty, non-numeric, non-finite or zero input falls
// back to 0 for the minimum and height for the maximum.
func ParseBounds(minText, maxText string, height float64) Bounds {
	return Bounds{
		Min: parseOr(minText, 0),
		Max: parseOr(maxText, height),
	}
}

func parseOr(text string, fallback float64) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil || v == 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return fallback
	}
	return v
}
