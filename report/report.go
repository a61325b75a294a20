// Package report writes human-readable summaries of corpora, training runs, predictions and test
// evaluations.
package report

import (
	"fmt"
	"io"

	"github.com/sharnoff/crowdnet"
	"github.com/sharnoff/crowdnet/records"
	"github.com/sharnoff/crowdnet/trainer"
)

// epochs are always reported at this interval, even without improvement
const progressEvery = 200

// date format used when writing dates for people
const displayDate = "02/01/2006"

var levelDescriptions = map[float64]string{
	1.0: "Empty",
	1.5: "Nearly empty",
	2.0: "Lightly crowded",
	2.5: "Moderately crowded",
	3.0: "Normally crowded",
	3.5: "Fairly crowded",
	4.0: "Very crowded",
	4.5: "Nearly full",
	5.0: "Packed",
}

// LevelDescription names a crowding level. Levels are rounded to the nearest half first; levels
// outside [1, 5] are "Unknown".
func LevelDescription(level float64) string {
	if d, ok := levelDescriptions[crowdnet.RoundToHalf(level)]; ok {
		return d
	}
	return "Unknown"
}

// ConfidenceNote qualifies a confidence percentage.
func ConfidenceNote(confidence float64) string {
	switch {
	case confidence >= 70:
		return "Reliable prediction (accurate model, clear value)"
	case confidence >= 50:
		return "Moderate prediction (limited model accuracy)"
	}
	return "Unreliable prediction (low model accuracy)"
}

// Corpus writes the summary of a corpus loaded from source.
func Corpus(w io.Writer, source string, s records.Summary) {
	fmt.Fprintf(w, "Loaded %d records from %s\n", s.Records, source)
	fmt.Fprintf(w, "\nCORPUS:\n")
	fmt.Fprintf(w, "   Period: %s - %s\n", s.First.Format(crowdnet.DateLayout), s.Last.Format(crowdnet.DateLayout))
	fmt.Fprintf(w, "   Temperatures: %.0f°C - %.0f°C\n", s.MinTemperature, s.MaxTemperature)

	fmt.Fprintf(w, "   Records: %d", s.Records)
	for i, d := range s.Directions {
		sep := ", "
		if i == 0 {
			sep = " ("
		}
		fmt.Fprintf(w, "%s%d %v", sep, d.Records, d.Direction)
	}
	if len(s.Directions) != 0 {
		fmt.Fprint(w, ")")
	}
	fmt.Fprintln(w)

	fmt.Fprint(w, "   Mean crowding:")
	for i, d := range s.Directions {
		if i != 0 {
			fmt.Fprint(w, ",")
		}
		fmt.Fprintf(w, " %v %.1f", d.Direction, d.MeanLevel)
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "   Distribution:")
	for _, l := range s.Levels {
		fmt.Fprintf(w, "     Level %d: %d samples (%.1f%%)\n", l.Level, l.Records, l.Percent)
	}
}

// Progress returns a function for trainer.WithUpdate that writes every improving epoch, every
// 200th epoch and the last of the given number of epochs.
func Progress(w io.Writer, epochs int) func(trainer.EpochResult) {
	return func(r trainer.EpochResult) {
		if !r.Improved && (r.Epoch-1)%progressEvery != 0 && r.Epoch != epochs {
			return
		}

		marker := ""
		if r.Improved {
			marker = " *"
		}
		fmt.Fprintf(w, "   Epoch %d/%d - Train: %.4f, Test: %.4f%s\n", r.Epoch, epochs, r.TrainingError, r.TestError, marker)
	}
}

// Training writes the outcome of a training run. accuracy is the percentage of test samples
// predicted within half a level.
func Training(w io.Writer, s trainer.Stats, accuracy float64) {
	fmt.Fprintln(w, "\nTRAINING COMPLETE:")
	fmt.Fprintf(w, "   Time: %dms (%d epochs)\n", s.ElapsedMs(), s.EpochsRun)
	fmt.Fprintf(w, "   Best epoch: %d\n", s.BestEpoch)
	fmt.Fprintf(w, "   Final error - Train: %.4f, Test: %.4f\n", s.FinalTrainError, s.FinalTestError)
	fmt.Fprintf(w, "   Train/Test ratio: %.3f - %v overfitting\n", s.OverfittingRatio(), s.Overfitting())
	fmt.Fprintf(w, "   Test accuracy: %.1f%%\n", accuracy)
}

// Prediction writes a forecast together with the quality of the model that made it.
func Prediction(w io.Writer, p trainer.Prediction, s trainer.Stats, accuracy float64) {
	fmt.Fprintln(w, "\nPREDICTION:")
	fmt.Fprintf(w, "   %v on %s (%s)\n", p.Direction, p.Date.Format(displayDate), p.DayName)
	fmt.Fprintf(w, "   Temperature: %.0f°C\n", p.Temperature)
	fmt.Fprintf(w, "   Predicted level: %.1f - %s\n", p.Level, LevelDescription(p.Level))
	fmt.Fprintf(w, "   Confidence: %.1f%% (based on model accuracy)\n", p.Confidence)
	fmt.Fprintf(w, "   Network output: %.3f (normalized: %.3f)\n", p.RawOutput, p.NetworkOutput)

	fmt.Fprintln(w, "\nMODEL QUALITY:")
	fmt.Fprintf(w, "   Test accuracy: %.1f%%\n", accuracy)
	fmt.Fprintf(w, "   Test error: %.4f\n", s.FinalTestError)
	fmt.Fprintf(w, "   Best epoch: %d/%d\n", s.BestEpoch, s.EpochsRun)
	fmt.Fprintf(w, "   Samples: %d training, %d test\n", s.TrainSamples, s.TestSamples)
	fmt.Fprintf(w, "   Overfitting: %.3f (%v)\n", s.OverfittingRatio(), s.Overfitting())

	fmt.Fprintln(w, "\nNOTE:")
	fmt.Fprintf(w, "   %s\n", ConfidenceNote(p.Confidence))
}

// Evaluation writes the per-direction test performance and the example predictions.
func Evaluation(w io.Writer, ev trainer.Evaluation) {
	fmt.Fprintln(w, "\nTEST SET EVALUATION:")
	for _, d := range ev.Directions {
		fmt.Fprintf(w, "   %v:\n", d.Direction)
		fmt.Fprintf(w, "     Samples: %d\n", d.Samples)
		fmt.Fprintf(w, "     MAE: %.3f\n", d.MAE)
		fmt.Fprintf(w, "     Accuracy (±0.5): %.1f%%\n", d.Accuracy)
	}

	fmt.Fprintln(w, "\n   EXAMPLES:")
	for _, ex := range ev.Examples {
		status := "x"
		if trainer.WithinHalfLevel(ex.Predicted, ex.Actual) {
			status = "ok"
		}
		fmt.Fprintf(w, "     %-2s %s %v: actual %.1f, predicted %.1f (err: %.2f)\n",
			status, ex.Record.Date.Format(crowdnet.DateLayout), ex.Record.Direction, ex.Actual, ex.Predicted, ex.Error)
	}
}
