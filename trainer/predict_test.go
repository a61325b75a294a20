package trainer

import (
	"math"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/sharnoff/crowdnet"
)

func trained(t *testing.T, opts ...Option) *Controller {
	t.Helper()

	c := New(append([]Option{WithSeed(11)}, opts...)...)
	if _, err := c.Train(twoGroups(10), Config{Epochs: 200, TestRatio: 0.2, Patience: 20, Stratified: true}); err != nil {
		t.Fatalf("Train: %v", err)
	}
	return c
}

func TestPredictUntrained(t *testing.T) {
	c := New(WithSeed(1))

	date := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	if _, err := c.Predict(date, 25, crowdnet.Outbound); !errors.Is(err, crowdnet.ErrNotTrained) {
		t.Errorf("got %v, want %v", err, crowdnet.ErrNotTrained)
	}
	if _, err := c.Evaluate(); !errors.Is(err, crowdnet.ErrNotTrained) {
		t.Errorf("Evaluate: got %v", err)
	}
}

func TestPredict(t *testing.T) {
	c := trained(t, WithLocale(crowdnet.Italian))

	date := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	for _, dir := range []crowdnet.Direction{crowdnet.Outbound, crowdnet.Return} {
		for _, temp := range []float64{-30, 0, 15, 25, 60} {
			p, err := c.Predict(date, temp, dir)
			if err != nil {
				t.Fatalf("Predict(%v, %v): %v", temp, dir, err)
			}

			if p.Level < crowdnet.MinLevel || p.Level > crowdnet.MaxLevel {
				t.Errorf("level %v outside [1, 5]", p.Level)
			}
			if p.Level*2 != math.Round(p.Level*2) {
				t.Errorf("level %v is not a multiple of 0.5", p.Level)
			}
			if p.Confidence < 25 || p.Confidence > 100 {
				t.Errorf("confidence %v outside [25, 100]", p.Confidence)
			}
			if p.NetworkOutput <= 0 || p.NetworkOutput >= 1 {
				t.Errorf("network output %v outside (0, 1)", p.NetworkOutput)
			}
			if p.DayName != "Martedì" {
				t.Errorf("day name = %q", p.DayName)
			}
			if p.Direction != dir || p.Temperature != temp {
				t.Errorf("prediction does not echo its input: %+v", p)
			}
		}
	}

	var verr *crowdnet.InputValidationError
	if _, err := c.Predict(date, math.NaN(), crowdnet.Outbound); !errors.As(err, &verr) {
		t.Errorf("NaN temperature: got %v", err)
	}
}

func TestConfidenceWithoutTestSet(t *testing.T) {
	c := New(WithSeed(1))

	cases := []struct {
		predicted, want float64
	}{
		{3.0, 65},    // 0.7 * 50 + 0.3 * 100
		{3.1, 62},    // 0.7 * 50 + 0.3 * 90
		{3.25, 57.5}, // furthest from a step
		{4.75, 57.5},
	}

	for _, cs := range cases {
		if got := c.Confidence(cs.predicted); math.Abs(got-cs.want) > 1e-9 {
			t.Errorf("Confidence(%v) = %v, want %v", cs.predicted, got, cs.want)
		}
	}
}

func TestConfidenceBounds(t *testing.T) {
	c := trained(t)
	acc := c.Accuracy(c.Split().Test)

	for p := 1.0; p <= 5.0; p += 0.05 {
		conf := c.Confidence(p)
		if conf < 25 || conf > 100 {
			t.Errorf("Confidence(%v) = %v", p, conf)
		}

		want := 0.7*acc + 0.3*math.Max(0, 100-100*math.Abs(p-crowdnet.RoundToHalf(p)))
		if acc < 50 {
			want -= 0.5 * (50 - acc)
		}
		if want = math.Max(25, want); math.Abs(conf-want) > 1e-9 {
			t.Errorf("Confidence(%v) = %v, want %v", p, conf, want)
		}
	}
}

func TestAccuracy(t *testing.T) {
	c := trained(t)
	split := c.Split()

	if acc := c.Accuracy(nil); acc != 0 {
		t.Errorf("empty dataset: %v", acc)
	}

	var correct int
	for _, s := range split.Test {
		act, err := c.Network().Predict(s.Inputs)
		if err != nil {
			t.Fatal(err)
		}

		pred, _ := c.Processor().DenormalizeTarget(act.Output[0])
		if math.Abs(pred-s.Original.CrowdingLevel) <= 0.5 {
			correct++
		}
	}

	want := 100 * float64(correct) / float64(len(split.Test))
	if acc := c.Accuracy(split.Test); math.Abs(acc-want) > 1e-9 {
		t.Errorf("accuracy = %v, want %v", acc, want)
	}
}

func TestWithinHalfLevel(t *testing.T) {
	cases := []struct {
		pred, actual float64
		want         bool
	}{
		{3, 3, true},
		{3.5, 3, true},
		{2.5, 3, true},
		{3.51, 3, false},
		{1, 5, false},
	}

	for _, c := range cases {
		if got := WithinHalfLevel(c.pred, c.actual); got != c.want {
			t.Errorf("WithinHalfLevel(%v, %v) = %v", c.pred, c.actual, got)
		}
	}
}

func TestEvaluate(t *testing.T) {
	c := trained(t)

	ev, err := c.Evaluate()
	if err != nil {
		t.Fatal(err)
	}

	test := c.Split().Test
	if len(ev.Examples) != 4 || len(ev.Examples) > len(test) {
		t.Errorf("%d examples for %d test samples", len(ev.Examples), len(test))
	}

	var total int
	for _, d := range ev.Directions {
		total += d.Samples
		if d.Accuracy < 0 || d.Accuracy > 100 || d.MAE < 0 {
			t.Errorf("direction %v: %+v", d.Direction, d)
		}
	}
	if total != len(test) || len(ev.Directions) != 2 {
		t.Errorf("directions %+v cover %d of %d samples", ev.Directions, total, len(test))
	}

	for i, ex := range ev.Examples {
		if ex.Record != test[i].Original {
			t.Errorf("example %d is %+v, want %+v", i, ex.Record, test[i].Original)
		}
		if math.Abs(ex.Error-math.Abs(ex.Predicted-ex.Actual)) > 1e-12 {
			t.Errorf("example %d: %+v", i, ex)
		}
	}
}
