package report

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/sharnoff/crowdnet"
	"github.com/sharnoff/crowdnet/records"
	"github.com/sharnoff/crowdnet/trainer"
)

func TestLevelDescription(t *testing.T) {
	cases := map[float64]string{
		1.0: "Empty",
		2.5: "Moderately crowded",
		3.4: "Fairly crowded",
		5.0: "Packed",
		0.5: "Unknown",
		6.0: "Unknown",
	}

	for level, want := range cases {
		if got := LevelDescription(level); got != want {
			t.Errorf("LevelDescription(%v) = %q, want %q", level, got, want)
		}
	}
}

func TestConfidenceNote(t *testing.T) {
	if got := ConfidenceNote(70); !strings.HasPrefix(got, "Reliable") {
		t.Errorf("70: %q", got)
	}
	if got := ConfidenceNote(69.9); !strings.HasPrefix(got, "Moderate") {
		t.Errorf("69.9: %q", got)
	}
	if got := ConfidenceNote(25); !strings.HasPrefix(got, "Unreliable") {
		t.Errorf("25: %q", got)
	}
}

func TestCorpus(t *testing.T) {
	s := records.Summary{
		Records:        3,
		First:          time.Date(2025, 6, 9, 0, 0, 0, 0, time.UTC),
		Last:           time.Date(2025, 6, 11, 0, 0, 0, 0, time.UTC),
		MinTemperature: 18.5,
		MaxTemperature: 31,
		Directions: []records.DirectionSummary{
			{Direction: crowdnet.Outbound, Records: 2, MeanLevel: 4},
			{Direction: crowdnet.Return, Records: 1, MeanLevel: 2},
		},
		Levels: []records.LevelCount{{Level: 2, Records: 1, Percent: 100.0 / 3}},
	}

	var buf bytes.Buffer
	Corpus(&buf, "trips.json", s)
	out := buf.String()

	for _, want := range []string{
		"Loaded 3 records from trips.json",
		"Period: 2025-06-09 - 2025-06-11",
		"Records: 3 (2 OUTBOUND, 1 RETURN)",
		"Mean crowding: OUTBOUND 4.0, RETURN 2.0",
		"Level 2: 1 samples (33.3%)",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output does not contain %q:\n%s", want, out)
		}
	}
}

func TestProgress(t *testing.T) {
	var buf bytes.Buffer
	update := Progress(&buf, 500)

	for epoch := 1; epoch <= 500; epoch++ {
		update(trainer.EpochResult{Epoch: epoch, Improved: epoch == 3})
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	want := []string{"Epoch 1/500", "Epoch 3/500", "Epoch 201/500", "Epoch 401/500", "Epoch 500/500"}
	if len(lines) != len(want) {
		t.Fatalf("got %d lines, want %d:\n%s", len(lines), len(want), buf.String())
	}
	for i := range want {
		if !strings.Contains(lines[i], want[i]) {
			t.Errorf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}
	if !strings.HasSuffix(lines[1], "*") || strings.HasSuffix(lines[0], "*") {
		t.Errorf("improvement markers are wrong:\n%s", buf.String())
	}
}

func TestPrediction(t *testing.T) {
	p := trainer.Prediction{
		Date:          time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC),
		Temperature:   25,
		Direction:     crowdnet.Outbound,
		DayName:       "Tuesday",
		Level:         3.5,
		Confidence:    72.5,
		RawOutput:     3.41,
		NetworkOutput: 0.6,
	}
	s := trainer.Stats{EpochsRun: 120, BestEpoch: 20, FinalTrainError: 0.1, FinalTestError: 0.1, TrainSamples: 16, TestSamples: 4}

	var buf bytes.Buffer
	Prediction(&buf, p, s, 75)
	out := buf.String()

	for _, want := range []string{
		"OUTBOUND on 10/06/2025 (Tuesday)",
		"Predicted level: 3.5 - Fairly crowded",
		"Confidence: 72.5%",
		"Best epoch: 20/120",
		"Samples: 16 training, 4 test",
		"Overfitting: 1.000 (low)",
		"Reliable prediction",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output does not contain %q:\n%s", want, out)
		}
	}
}

func TestEvaluation(t *testing.T) {
	ev := trainer.Evaluation{
		Directions: []trainer.DirectionEvaluation{
			{Direction: crowdnet.Return, Samples: 2, MAE: 0.25, Accuracy: 50},
		},
		Examples: []trainer.Example{
			{Record: crowdnet.Sample{Date: time.Date(2025, 6, 9, 0, 0, 0, 0, time.UTC), Direction: crowdnet.Return}, Predicted: 2.1, Actual: 2, Error: 0.1},
			{Record: crowdnet.Sample{Date: time.Date(2025, 6, 11, 0, 0, 0, 0, time.UTC), Direction: crowdnet.Return}, Predicted: 3.4, Actual: 2, Error: 1.4},
		},
	}

	var buf bytes.Buffer
	Evaluation(&buf, ev)
	out := buf.String()

	for _, want := range []string{
		"RETURN:",
		"MAE: 0.250",
		"Accuracy (±0.5): 50.0%",
		"ok 2025-06-09 RETURN: actual 2.0, predicted 2.1 (err: 0.10)",
		"x  2025-06-11 RETURN: actual 2.0, predicted 3.4 (err: 1.40)",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output does not contain %q:\n%s", want, out)
		}
	}
}
