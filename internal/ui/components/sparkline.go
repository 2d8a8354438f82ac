// Package components holds small render helpers shared by the storefront
// pages.
package components

import (
	"math"
	"strings"
)

var sparkChars = []string{"▁", "▂", "▃", "▄", "▅", "▆", "▇", "█"}

// Sparkline is a one-line chart of a series.
type Sparkline struct {
	Values []float64
	Width  int
	Min    float64
	Max    float64
}

// NewSparkline scales values to their own range.
func NewSparkline(values []float64, width int) *Sparkline {
	minVal := math.Inf(1)
	maxVal := math.Inf(-1)
	for _, v := range values {
		minVal = math.Min(minVal, v)
		maxVal = math.Max(maxVal, v)
	}
	return &Sparkline{Values: values, Width: width, Min: minVal, Max: maxVal}
}

// Render samples the series down to Width cells. The last value is always
// drawn so the chart ends on the current price.
func (s *Sparkline) Render() string {
	n := len(s.Values)
	if n == 0 || s.Width <= 0 {
		return ""
	}
	cells := min(s.Width, n)

	var b strings.Builder
	for i := 0; i < cells; i++ {
		idx := n - 1
		if cells > 1 {
			idx = i * (n - 1) / (cells - 1)
		}
		b.WriteString(sparkChars[s.level(s.Values[idx])])
	}
	return b.String()
}

func (s *Sparkline) level(v float64) int {
	if s.Max <= s.Min {
		return len(sparkChars) / 2
	}
	normalized := (v - s.Min) / (s.Max - s.Min)
	idx := int(normalized * float64(len(sparkChars)-1))
	return max(0, min(len(sparkChars)-1, idx))
}
