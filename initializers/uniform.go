// Package initializers provides the sources of random starting values for network parameters.
//
// Every initializer draws from a *rand.Rand supplied by the caller, so that two networks built
// from sources with the same seed start from identical parameters.
package initializers

import (
	"math/rand"
)

// Initializer fills a slice of parameters with starting values.
type Initializer interface {
	Set(ws []float64)
}

const (
	defaultLower float64 = -1
	defaultUpper float64 = 1
)

type uniform struct {
	src          *rand.Rand
	lower, upper float64
}

// Uniform returns an Initializer that gives values uniformly spread between its bounds,
// which can be set by Bounds. The default range is [-1, 1).
//
// Uniform panics if src is nil.
func Uniform(src *rand.Rand) *uniform {
	if src == nil {
		panic("initializers: nil random source")
	}

	return &uniform{src, defaultLower, defaultUpper}
}

// Bounds sets the range of a Uniform initializer, returning it. The bounds are swapped if given
// in the wrong order.
func (u *uniform) Bounds(lower, upper float64) *uniform {
	if lower > upper {
		lower, upper = upper, lower
	}

	u.lower = lower
	u.upper = upper
	return u
}

// Gen returns a single value drawn uniformly between the bounds.
func (u *uniform) Gen() float64 {
	return u.src.Float64()*(u.upper-u.lower) + u.lower
}

// Set is the implementation of Initializer for Uniform. Values are drawn in index order.
func (u *uniform) Set(ws []float64) {
	for i := range ws {
		ws[i] = u.Gen()
	}
}
