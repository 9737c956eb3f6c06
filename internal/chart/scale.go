package chart

import (
	"fmt"
	"math"
	"slices"
)

// Scale maps sample values into container coordinates.
type Scale struct {
	// Ratio converts a sample value into a vertical coordinate.
	Ratio float64 `json:"ratio"`
	// Step is the horizontal distance between consecutive samples.
	Step float64 `json:"step"`
}

// NewScale derives the scale for series inside b. A single sample gets a
// zero step. A series holding a NaN or infinite sample, or whose maximum
// is zero, returns ErrDegenerateScale.
func NewScale(b Bounds, series []float64) (Scale, error) {
	if len(series) == 0 {
		return Scale{}, ErrNoData
	}

	for i, v := range series {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return Scale{}, fmt.Errorf("%w: sample %d is %g", ErrDegenerateScale, i, v)
		}
	}

	maxVal := slices.Max(series)
	ratio := b.Y2 / maxVal
	if maxVal == 0 || math.IsNaN(ratio) || math.IsInf(ratio, 0) {
		return Scale{}, fmt.Errorf("%w: maximum sample is %g", ErrDegenerateScale, maxVal)
	}

	step := 0.0
	if len(series) > 1 {
		step = roundHalfUp(b.Width() / float64(len(series)-1))
	}

	return Scale{Ratio: ratio, Step: step}, nil
}

// roundHalfUp rounds to the nearest integer, ties towards +Inf.
func roundHalfUp(v float64) float64 {
	return math.Floor(v + 0.5)
}
