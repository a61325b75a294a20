package trainer

import (
	"math"

	"github.com/pkg/errors"
	"github.com/sharnoff/crowdnet"
	"gonum.org/v1/gonum/stat"
)

// the number of test samples listed individually in an Evaluation
const numExamples = 5

// DirectionEvaluation is the performance of the network on the test samples of one direction.
// MAE is in crowding levels, Accuracy a percentage.
type DirectionEvaluation struct {
	Direction crowdnet.Direction `json:"direction"`
	Samples   int                `json:"samples"`
	MAE       float64            `json:"mae"`
	Accuracy  float64            `json:"accuracy"`
}

// Example is a single test sample with the network's prediction for it.
type Example struct {
	Record    crowdnet.Sample `json:"record"`
	Predicted float64         `json:"predicted"`
	Actual    float64         `json:"actual"`
	Error     float64         `json:"error"`
}

// Evaluation breaks the test performance of a trained network down by direction, with the first
// few test samples as examples.
type Evaluation struct {
	Directions []DirectionEvaluation `json:"directions"`
	Examples   []Example             `json:"examples"`
}

// Evaluate measures the trained network on the test set of the last training run. Directions are
// listed in the order they first appear in the test set.
func (c *Controller) Evaluate() (Evaluation, error) {
	if c.state != Trained {
		return Evaluation{}, crowdnet.ErrNotTrained
	}

	var order []crowdnet.Direction
	absErrs := make(map[crowdnet.Direction][]float64)
	correct := make(map[crowdnet.Direction]int)

	var ev Evaluation
	for i, s := range c.split.Test {
		pred, actual, err := c.levels(s)
		if err != nil {
			return Evaluation{}, errors.Wrapf(err, "Failed to evaluate test sample %d", i)
		}

		d := s.Original.Direction
		if _, ok := absErrs[d]; !ok {
			order = append(order, d)
		}

		e := math.Abs(pred - actual)
		absErrs[d] = append(absErrs[d], e)
		if WithinHalfLevel(pred, actual) {
			correct[d]++
		}

		if len(ev.Examples) < numExamples {
			ev.Examples = append(ev.Examples, Example{
				Record:    s.Original,
				Predicted: pred,
				Actual:    actual,
				Error:     e,
			})
		}
	}

	for _, d := range order {
		n := len(absErrs[d])
		ev.Directions = append(ev.Directions, DirectionEvaluation{
			Direction: d,
			Samples:   n,
			MAE:       stat.Mean(absErrs[d], nil),
			Accuracy:  100 * float64(correct[d]) / float64(n),
		})
	}

	return ev, nil
}
