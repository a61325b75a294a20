package trainer

import (
	"math/rand"
	"strconv"

	"github.com/sharnoff/crowdnet"
	"go.uber.org/zap"
)

// Config holds the settings of a single training run.
type Config struct {
	// Epochs is the most epochs that will be run
	Epochs int `json:"epochs"`

	// TestRatio is the fraction of the corpus held out for testing, in (0, 1)
	TestRatio float64 `json:"testRatio"`

	// Patience is the number of consecutive epochs without an improvement of the test error
	// after which training stops
	Patience int `json:"patience"`

	// Stratified selects the stratified split over a uniformly random one
	Stratified bool `json:"stratified"`
}

// DefaultConfig returns the settings used when none are given: 1000 epochs, 20% held out for
// testing, a patience of 100 epochs, stratified splitting.
func DefaultConfig() Config {
	return Config{
		Epochs:     1000,
		TestRatio:  0.2,
		Patience:   100,
		Stratified: true,
	}
}

// Validate returns an *crowdnet.InputValidationError for the first setting that is out of range.
func (c Config) Validate() error {
	if !(c.TestRatio > 0 && c.TestRatio < 1) {
		return &crowdnet.InputValidationError{
			Field:  "test ratio",
			Value:  strconv.FormatFloat(c.TestRatio, 'g', -1, 64),
			Reason: "must be between 0 and 1, exclusive",
		}
	} else if c.Epochs < 1 {
		return &crowdnet.InputValidationError{Field: "epochs", Value: strconv.Itoa(c.Epochs), Reason: "must be at least 1"}
	} else if c.Patience < 1 {
		return &crowdnet.InputValidationError{Field: "patience", Value: strconv.Itoa(c.Patience), Reason: "must be at least 1"}
	}

	return nil
}

// Option configures a Controller. Options are given to New.
type Option func(*Controller)

// WithSeed makes the Controller draw all of its randomness (initial weights, splitting and
// shuffling) from a source seeded with the given value.
func WithSeed(seed int64) Option {
	return WithRand(rand.New(rand.NewSource(seed)))
}

// WithRand makes the Controller draw all of its randomness from src. A nil src is ignored.
func WithRand(src *rand.Rand) Option {
	return func(c *Controller) {
		if src != nil {
			c.src = src
		}
	}
}

// WithLogger sets the logger used for training progress. A nil logger is ignored.
func WithLogger(logger *zap.SugaredLogger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithUpdate sets a function to be called with the result of every epoch, as soon as the epoch
// has finished.
func WithUpdate(update func(EpochResult)) Option {
	return func(c *Controller) {
		c.update = update
	}
}

// WithLocale sets the language of the day names in predictions. The default is English.
func WithLocale(l crowdnet.Locale) Option {
	return func(c *Controller) {
		c.locale = l
	}
}
