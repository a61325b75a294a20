package features

import (
	"fmt"

	"github.com/sharnoff/crowdnet"
)

// Kind identifies one of the input features. The value of a Kind is also its index in a
// normalized input vector.
type Kind int

const (
	Temperature Kind = iota
	DayOfWeek
	Direction
	Month

	// NumKinds is the number of input features, equal to crowdnet.InputSize
	NumKinds int = iota
)

var kindNames = [NumKinds]string{"temperature", "dayOfWeek", "direction", "month"}

// Kinds returns every Kind, in input-vector order.
func Kinds() []Kind {
	return []Kind{Temperature, DayOfWeek, Direction, Month}
}

func (k Kind) String() string {
	if k < 0 || int(k) >= NumKinds {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// Extract returns the raw (unnormalized) value of the feature for the given sample. Day of week
// is numbered 1 (Monday) through 7 (Sunday) and month 1 through 12.
//
// Extract panics if k is not one of the defined Kinds.
func (k Kind) Extract(s crowdnet.Sample) float64 {
	switch k {
	case Temperature:
		return s.Temperature
	case DayOfWeek:
		return float64(crowdnet.ISOWeekday(s.Date))
	case Direction:
		return s.Direction.Binary()
	case Month:
		return float64(s.Date.Month())
	}

	panic(fmt.Sprintf("features: unknown Kind %d", int(k)))
}
