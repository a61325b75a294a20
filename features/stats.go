package features

import (
	"gonum.org/v1/gonum/floats"
)

// Stats are the scaling statistics of a single feature, fit once from a corpus.
type Stats struct {
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
	Range float64 `json:"range"`
}

// fitStats finds the range of the values. A range of zero is replaced by 1, so that every value
// normalizes to zero instead of dividing by zero. values must not be empty.
func fitStats(values []float64) Stats {
	min, max := floats.Min(values), floats.Max(values)

	r := max - min
	if r == 0 {
		r = 1
	}

	return Stats{Min: min, Max: max, Range: r}
}

// Normalize maps v to (v - Min) / Range.
func (s Stats) Normalize(v float64) float64 {
	return (v - s.Min) / s.Range
}

// Denormalize is the inverse of Normalize.
func (s Stats) Denormalize(v float64) float64 {
	return v*s.Range + s.Min
}
