// Package features turns trip records into the bounded numeric vectors the network is trained on,
// and partitions them into training and test sets.
//
// A Processor must be fit to a corpus before anything can be normalized:
//
//	p := features.NewProcessor(rand.New(rand.NewSource(seed)))
//	if err := p.Fit(records); err != nil {
//		return err
//	}
//
//	samples, err := p.Normalize(records)
//	if err != nil {
//		return err
//	}
//
//	split, err := p.Split(samples, 0.2, true)
//
// The statistics are fit over the whole corpus, before it is split.
package features

import (
	"math/rand"

	"github.com/pkg/errors"
	"github.com/sharnoff/crowdnet"
)

// Processed is a sample ready for the network: its features and its target, both scaled into
// [0, 1] by the Processor that produced it. Original is kept for reporting only.
type Processed struct {
	Inputs   []float64
	Target   float64
	Original crowdnet.Sample
}

// Datum converts the sample to the form accepted by crowdnet.Network.
func (p Processed) Datum() crowdnet.Datum {
	return crowdnet.Datum{Inputs: p.Inputs, Outputs: []float64{p.Target}}
}

// Data converts every sample with Datum.
func Data(samples []Processed) []crowdnet.Datum {
	ds := make([]crowdnet.Datum, len(samples))
	for i := range samples {
		ds[i] = samples[i].Datum()
	}
	return ds
}

// Processor owns the scaling statistics of one corpus and the random source used for splitting.
// It is not safe for concurrent use.
type Processor struct {
	src *rand.Rand

	fitted bool
	inputs [NumKinds]Stats
	target Stats
}

// NewProcessor returns an unfitted Processor that shuffles with src. NewProcessor panics if src
// is nil.
func NewProcessor(src *rand.Rand) *Processor {
	if src == nil {
		panic("features: nil random source")
	}

	return &Processor{src: src}
}

// Fit computes the statistics of every feature and of the crowding level over the given records,
// replacing any earlier fit. ErrEmptyCorpus is returned if there are no records.
func (p *Processor) Fit(records []crowdnet.Sample) error {
	if len(records) == 0 {
		return crowdnet.ErrEmptyCorpus
	}

	values := make([]float64, len(records))
	for _, k := range Kinds() {
		for i, r := range records {
			values[i] = k.Extract(r)
		}
		p.inputs[k] = fitStats(values)
	}

	for i, r := range records {
		values[i] = r.CrowdingLevel
	}
	p.target = fitStats(values)

	p.fitted = true
	return nil
}

// Fitted returns whether or not Fit has succeeded.
func (p *Processor) Fitted() bool {
	return p.fitted
}

// Stats returns the fitted statistics of a single feature.
func (p *Processor) Stats(k Kind) (Stats, error) {
	if !p.fitted {
		return Stats{}, crowdnet.ErrNotFitted
	} else if k < 0 || int(k) >= NumKinds {
		return Stats{}, errors.Errorf("Unknown feature %v", k)
	}

	return p.inputs[k], nil
}

// TargetStats returns the fitted statistics of the crowding level.
func (p *Processor) TargetStats() (Stats, error) {
	if !p.fitted {
		return Stats{}, crowdnet.ErrNotFitted
	}
	return p.target, nil
}

// NormalizeInput returns the normalized feature vector of the record, in Kind order:
// temperature, day of week, direction, month. Values from outside the fitted corpus may fall
// outside [0, 1].
func (p *Processor) NormalizeInput(r crowdnet.Sample) ([]float64, error) {
	if !p.fitted {
		return nil, crowdnet.ErrNotFitted
	}

	in := make([]float64, NumKinds)
	for _, k := range Kinds() {
		in[k] = p.inputs[k].Normalize(k.Extract(r))
	}
	return in, nil
}

// NormalizeTarget scales a crowding level with the fitted target statistics.
func (p *Processor) NormalizeTarget(v float64) (float64, error) {
	if !p.fitted {
		return 0, crowdnet.ErrNotFitted
	}
	return p.target.Normalize(v), nil
}

// DenormalizeTarget is the inverse of NormalizeTarget.
func (p *Processor) DenormalizeTarget(v float64) (float64, error) {
	if !p.fitted {
		return 0, crowdnet.ErrNotFitted
	}
	return p.target.Denormalize(v), nil
}

// Normalize converts every record into a Processed sample, in the same order.
func (p *Processor) Normalize(records []crowdnet.Sample) ([]Processed, error) {
	if !p.fitted {
		return nil, crowdnet.ErrNotFitted
	}

	out := make([]Processed, len(records))
	for i, r := range records {
		in, _ := p.NormalizeInput(r)
		t, _ := p.NormalizeTarget(r.CrowdingLevel)
		out[i] = Processed{Inputs: in, Target: t, Original: r}
	}
	return out, nil
}
