package trainer

import (
	"time"

	"github.com/google/uuid"
)

// EpochResult is a summary of a single epoch, sent back through the function given by WithUpdate
type EpochResult struct {
	// Epoch is numbered from 1
	Epoch int `json:"epoch"`

	// TrainingError is the mean absolute error of the training steps in the epoch, in normalized
	// units
	TrainingError float64 `json:"trainingError"`

	// TestError is the mean absolute error over the test set at the end of the epoch
	TestError float64 `json:"testError"`

	// Improved is whether or not TestError was the lowest so far in the run
	Improved bool `json:"improved"`
}

// Stats summarize a completed training run. Errors are mean absolute errors in normalized units.
type Stats struct {
	RunID uuid.UUID `json:"runId"`

	EpochsRun int           `json:"epochsRun"`
	Elapsed   time.Duration `json:"-"`

	FinalTrainError float64 `json:"finalTrainError"`
	FinalTestError  float64 `json:"finalTestError"`

	TrainSamples int `json:"trainSampleCount"`
	TestSamples  int `json:"testSampleCount"`

	// BestEpoch is numbered from 1, and is never greater than EpochsRun
	BestEpoch     int     `json:"bestEpoch"`
	BestTestError float64 `json:"bestTestError"`
}

// ElapsedMs returns the duration of the run in milliseconds.
func (s Stats) ElapsedMs() int64 {
	return s.Elapsed.Milliseconds()
}

// OverfittingRatio returns FinalTrainError / FinalTestError. Values well below 1 mean the
// network does much better on data it was trained on.
func (s Stats) OverfittingRatio() float64 {
	return s.FinalTrainError / s.FinalTestError
}

// Overfitting is a coarse rating of OverfittingRatio.
type Overfitting int8

const (
	LowOverfitting Overfitting = iota
	ModerateOverfitting
	HighOverfitting
)

func (o Overfitting) String() string {
	switch o {
	case LowOverfitting:
		return "low"
	case ModerateOverfitting:
		return "moderate"
	}
	return "high"
}

// Overfitting rates the run: a ratio above 0.8 is low, above 0.6 moderate, anything else high.
func (s Stats) Overfitting() Overfitting {
	r := s.OverfittingRatio()
	switch {
	case r > 0.8:
		return LowOverfitting
	case r > 0.6:
		return ModerateOverfitting
	}
	return HighOverfitting
}
