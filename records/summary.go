package records

import (
	"math"
	"sort"
	"time"

	"github.com/sharnoff/crowdnet"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// DirectionSummary counts the records of one direction.
type DirectionSummary struct {
	Direction crowdnet.Direction `json:"direction"`
	Records   int                `json:"records"`
	MeanLevel float64            `json:"meanLevel"`
}

// LevelCount counts the records whose crowding level rounds down to Level.
type LevelCount struct {
	Level   int     `json:"level"`
	Records int     `json:"records"`
	Percent float64 `json:"percent"`
}

// Summary describes a corpus before it is used for training.
type Summary struct {
	Records int       `json:"records"`
	First   time.Time `json:"first"`
	Last    time.Time `json:"last"`

	MinTemperature float64 `json:"minTemperature"`
	MaxTemperature float64 `json:"maxTemperature"`

	// Directions are listed in the order they first appear
	Directions []DirectionSummary `json:"directions"`

	// Levels are listed from lowest to highest
	Levels []LevelCount `json:"levels"`
}

// Summarize describes the corpus. It returns crowdnet.ErrEmptyCorpus if there are no samples.
func Summarize(samples []crowdnet.Sample) (Summary, error) {
	if len(samples) == 0 {
		return Summary{}, crowdnet.ErrEmptyCorpus
	}

	s := Summary{
		Records: len(samples),
		First:   samples[0].Date,
		Last:    samples[0].Date,
	}

	temps := make([]float64, len(samples))
	var order []crowdnet.Direction
	levels := make(map[crowdnet.Direction][]float64)
	counts := make(map[int]int)

	for i, r := range samples {
		if r.Date.Before(s.First) {
			s.First = r.Date
		}
		if r.Date.After(s.Last) {
			s.Last = r.Date
		}

		temps[i] = r.Temperature

		if _, ok := levels[r.Direction]; !ok {
			order = append(order, r.Direction)
		}
		levels[r.Direction] = append(levels[r.Direction], r.CrowdingLevel)

		counts[int(math.Floor(r.CrowdingLevel))]++
	}

	s.MinTemperature, s.MaxTemperature = floats.Min(temps), floats.Max(temps)

	for _, d := range order {
		s.Directions = append(s.Directions, DirectionSummary{
			Direction: d,
			Records:   len(levels[d]),
			MeanLevel: stat.Mean(levels[d], nil),
		})
	}

	for l, n := range counts {
		s.Levels = append(s.Levels, LevelCount{
			Level:   l,
			Records: n,
			Percent: 100 * float64(n) / float64(len(samples)),
		})
	}
	sort.Slice(s.Levels, func(i, j int) bool {
		return s.Levels[i].Level < s.Levels[j].Level
	})

	return s, nil
}
