package crowdnet

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// DateLayout is the ISO-8601 calendar date format used for every date in a corpus and on the
// command line.
const DateLayout = "2006-01-02"

// Crowding levels are bounded to this range, both in a corpus and in a prediction.
const (
	MinLevel float64 = 1.0
	MaxLevel float64 = 5.0
)

// Direction is the direction of a trip.
type Direction int8

const (
	Return Direction = iota
	Outbound
)

// String returns the canonical name of the Direction, "OUTBOUND" or "RETURN".
func (d Direction) String() string {
	if d == Outbound {
		return "OUTBOUND"
	}
	return "RETURN"
}

// Binary gives the numeric encoding used as a network feature: 1 for Outbound, 0 for Return.
func (d Direction) Binary() float64 {
	if d == Outbound {
		return 1
	}
	return 0
}

// ParseDirection accepts the canonical names along with the Italian spellings found in older
// corpora ("ANDATA" for outbound, "RITORNO" for return). Matching is case-insensitive.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "OUTBOUND", "ANDATA":
		return Outbound, nil
	case "RETURN", "RITORNO":
		return Return, nil
	}

	return Return, &InputValidationError{"direction", s, "must be OUTBOUND or RETURN"}
}

func (d Direction) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Direction) UnmarshalText(text []byte) error {
	dir, err := ParseDirection(string(text))
	if err != nil {
		return err
	}

	*d = dir
	return nil
}

// ParseDate parses an ISO-8601 calendar date (YYYY-MM-DD). The result is at midnight UTC.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, &InputValidationError{"date", s, "use the format YYYY-MM-DD"}
	}

	return t, nil
}

// ParseTemperature parses a temperature in degrees Celsius, rejecting anything that is not a
// finite number.
func ParseTemperature(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, &InputValidationError{"temperature", s, "not a number"}
	}

	if err := ValidateTemperature(v); err != nil {
		return 0, err
	}
	return v, nil
}

// ValidateTemperature returns an InputValidationError if the temperature is NaN or infinite.
func ValidateTemperature(v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return &InputValidationError{"temperature", strconv.FormatFloat(v, 'g', -1, 64), "must be finite"}
	}
	return nil
}

// ISOWeekday returns the day of the week numbered 1 (Monday) through 7 (Sunday).
func ISOWeekday(t time.Time) int {
	wd := int(t.Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}

// Sample is a single historical record of a trip. Samples are never modified once loaded.
type Sample struct {
	Date          time.Time
	Temperature   float64
	Direction     Direction
	CrowdingLevel float64
}

type sampleJSON struct {
	Date          string  `json:"date"`
	Temperature   float64 `json:"temperature"`
	Direction     string  `json:"direction"`
	CrowdingLevel float64 `json:"crowdingLevel"`
}

// MarshalJSON writes the Sample with its date as YYYY-MM-DD.
func (s Sample) MarshalJSON() ([]byte, error) {
	return json.Marshal(sampleJSON{
		Date:          s.Date.Format(DateLayout),
		Temperature:   s.Temperature,
		Direction:     s.Direction.String(),
		CrowdingLevel: s.CrowdingLevel,
	})
}

// UnmarshalJSON reads a Sample, validating its date and direction. The crowding level is not
// range-checked here; that is left to the corpus loader.
func (s *Sample) UnmarshalJSON(data []byte) error {
	var raw sampleJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	date, err := ParseDate(raw.Date)
	if err != nil {
		return errors.Wrapf(err, "Can't read sample")
	}

	dir, err := ParseDirection(raw.Direction)
	if err != nil {
		return errors.Wrapf(err, "Can't read sample dated %s", raw.Date)
	}

	*s = Sample{
		Date:          date,
		Temperature:   raw.Temperature,
		Direction:     dir,
		CrowdingLevel: raw.CrowdingLevel,
	}
	return nil
}

// RoundToHalf rounds v to the nearest multiple of 0.5.
func RoundToHalf(v float64) float64 {
	return math.Round(v*2) / 2
}
