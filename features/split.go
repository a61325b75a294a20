package features

import (
	"fmt"
	"math"
	"strconv"

	"github.com/sharnoff/crowdnet"
)

// Split is a partition of a set of samples into training and test sets. The two are disjoint
// and together hold every sample that was split.
type Split struct {
	Train []Processed
	Test  []Processed
}

// GroupKey returns the stratification group of a sample: its direction together with the
// integer part of its crowding level.
func GroupKey(s crowdnet.Sample) string {
	return fmt.Sprintf("%s_%d", s.Direction, int(math.Floor(s.CrowdingLevel)))
}

// Split partitions the samples, either stratified by GroupKey or uniformly at random. testRatio
// must be in the open interval (0, 1).
//
// In stratified mode, each group is shuffled and max(1, round(size*testRatio)) of its samples go
// to the test set; the rest go to training. Every group is therefore represented in the test set,
// and a group of a single sample is never trained on. The pooled sets are shuffled afterwards.
//
// In random mode, the samples are shuffled and the first floor(testRatio*N) form the test set.
func (p *Processor) Split(samples []Processed, testRatio float64, stratified bool) (Split, error) {
	if !(testRatio > 0 && testRatio < 1) {
		return Split{}, &crowdnet.InputValidationError{
			Field:  "test ratio",
			Value:  strconv.FormatFloat(testRatio, 'g', -1, 64),
			Reason: "must be between 0 and 1, exclusive",
		}
	}

	if stratified {
		return p.stratified(samples, testRatio), nil
	}
	return p.random(samples, testRatio), nil
}

func (p *Processor) shuffle(s []Processed) {
	p.src.Shuffle(len(s), func(i, j int) { s[i], s[j] = s[j], s[i] })
}

func (p *Processor) stratified(samples []Processed, testRatio float64) Split {
	// groups are visited in order of first appearance, so that a seeded source gives the same split
	var order []string
	groups := make(map[string][]Processed)
	for _, s := range samples {
		key := GroupKey(s.Original)
		if _, ok := groups[key]; !ok {
			order = append(order, key)
		}
		groups[key] = append(groups[key], s)
	}

	var split Split
	for _, key := range order {
		g := groups[key]
		p.shuffle(g)

		n := int(math.Round(float64(len(g)) * testRatio))
		if n < 1 {
			n = 1
		}

		split.Test = append(split.Test, g[:n]...)
		split.Train = append(split.Train, g[n:]...)
	}

	p.shuffle(split.Train)
	p.shuffle(split.Test)
	return split
}

func (p *Processor) random(samples []Processed, testRatio float64) Split {
	shuffled := make([]Processed, len(samples))
	copy(shuffled, samples)
	p.shuffle(shuffled)

	n := int(testRatio * float64(len(shuffled)))
	return Split{
		Test:  shuffled[:n:n],
		Train: shuffled[n:],
	}
}
