package trainer

import (
	"math"
	"time"

	"github.com/pkg/errors"
	"github.com/sharnoff/crowdnet"
	"github.com/sharnoff/crowdnet/features"
)

const (
	// the accuracy assumed when there is nothing to measure it on
	neutralAccuracy = 50.0

	accuracyWeight = 0.7
	valueWeight    = 0.3
	minConfidence  = 25.0
)

// Prediction is a single forecast of the crowding level.
type Prediction struct {
	Date        time.Time          `json:"-"`
	Temperature float64            `json:"temperature"`
	Direction   crowdnet.Direction `json:"direction"`
	DayName     string             `json:"dayOfWeekName"`

	// Level is the forecast, rounded to the nearest half and within [1, 5]
	Level float64 `json:"level"`

	// Confidence is a percentage, within [25, 100]
	Confidence float64 `json:"confidence"`

	// RawOutput is the denormalized output before clamping and rounding
	RawOutput float64 `json:"rawOutput"`

	// NetworkOutput is the output of the network, in normalized units
	NetworkOutput float64 `json:"networkOutput"`
}

// WithinHalfLevel returns whether or not a predicted crowding level counts as correct: within
// half a level of the actual value.
func WithinHalfLevel(predicted, actual float64) bool {
	return math.Abs(predicted-actual) <= 0.5
}

// Predict forecasts the crowding level of a trip on the given date, at the given temperature, in
// the given direction. crowdnet.ErrNotTrained is returned if no training run has completed.
func (c *Controller) Predict(date time.Time, temperature float64, dir crowdnet.Direction) (Prediction, error) {
	if c.state != Trained {
		return Prediction{}, crowdnet.ErrNotTrained
	} else if err := crowdnet.ValidateTemperature(temperature); err != nil {
		return Prediction{}, err
	}

	r := crowdnet.Sample{Date: date, Temperature: temperature, Direction: dir}

	in, err := c.proc.NormalizeInput(r)
	if err != nil {
		return Prediction{}, errors.Wrapf(err, "Failed to normalize input")
	}

	act, err := c.net.Predict(in)
	if err != nil {
		return Prediction{}, errors.Wrapf(err, "Failed to run network")
	}

	out := act.Output[0]
	raw, _ := c.proc.DenormalizeTarget(out)
	clamped := math.Max(crowdnet.MinLevel, math.Min(crowdnet.MaxLevel, raw))

	return Prediction{
		Date:          date,
		Temperature:   temperature,
		Direction:     dir,
		DayName:       crowdnet.DayName(date.Weekday(), c.locale),
		Level:         crowdnet.RoundToHalf(clamped),
		Confidence:    c.Confidence(clamped),
		RawOutput:     raw,
		NetworkOutput: out,
	}, nil
}

// Confidence rates a predicted crowding level, before rounding, as a percentage in [25, 100].
//
// It mixes the accuracy of the network on the test set (70%) with how close the prediction lies
// to a half-level step (30%). Accuracies under 50% are penalized further by half of the
// shortfall. Without a test set, the accuracy is taken to be 50%.
func (c *Controller) Confidence(predicted float64) float64 {
	valueConf := math.Max(0, 100-100*math.Abs(predicted-crowdnet.RoundToHalf(predicted)))

	acc := neutralAccuracy
	if len(c.split.Test) != 0 && c.proc.Fitted() {
		acc = c.Accuracy(c.split.Test)
	}

	conf := accuracyWeight*acc + valueWeight*valueConf
	if acc < neutralAccuracy {
		conf -= 0.5 * (neutralAccuracy - acc)
	}

	return math.Max(minConfidence, conf)
}

// Accuracy returns the percentage of samples whose denormalized prediction is within half a level
// of the actual crowding level. It returns 0 for an empty dataset, or before the statistics have
// been fit.
func (c *Controller) Accuracy(dataset []features.Processed) float64 {
	if len(dataset) == 0 || !c.proc.Fitted() {
		return 0
	}

	var correct int
	for _, s := range dataset {
		pred, actual, err := c.levels(s)
		if err != nil {
			continue
		}

		if WithinHalfLevel(pred, actual) {
			correct++
		}
	}

	return 100 * float64(correct) / float64(len(dataset))
}

// levels returns the denormalized prediction and target of a sample
func (c *Controller) levels(s features.Processed) (pred, actual float64, err error) {
	act, err := c.net.Predict(s.Inputs)
	if err != nil {
		return 0, 0, err
	}

	pred, _ = c.proc.DenormalizeTarget(act.Output[0])
	actual, _ = c.proc.DenormalizeTarget(s.Target)
	return pred, actual, nil
}
