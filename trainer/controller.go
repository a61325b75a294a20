// Package trainer runs the training of a crowdnet.Network on a corpus of trip records, and turns
// the trained network into forecasts.
//
// A Controller owns everything a forecast depends on: the network, the feature statistics and
// the split of the corpus that was used for testing. Until Train completes, every method that
// needs a trained model returns crowdnet.ErrNotTrained.
package trainer

import (
	"math"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sharnoff/crowdnet"
	"github.com/sharnoff/crowdnet/features"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/stat"
)

// how often epochs are logged when they don't improve on the test error
const logEvery = 200

// State is the stage of a Controller's lifecycle.
type State int8

const (
	Untrained State = iota
	Training
	Trained
)

func (s State) String() string {
	switch s {
	case Untrained:
		return "untrained"
	case Training:
		return "training"
	case Trained:
		return "trained"
	}
	return "unknown"
}

// Controller coordinates the Processor and the Network through a training run, and answers
// predictions afterwards. A Controller is not safe for concurrent use.
type Controller struct {
	src    *rand.Rand
	logger *zap.SugaredLogger
	update func(EpochResult)
	locale crowdnet.Locale

	net  *crowdnet.Network
	proc *features.Processor

	state   State
	split   features.Split
	stats   Stats
	history []EpochResult
}

// New returns an untrained Controller. Unless WithSeed or WithRand is given, the random source is
// seeded from the current time.
func New(opts ...Option) *Controller {
	c := &Controller{
		logger: zap.NewNop().Sugar(),
		update: func(EpochResult) {},
		locale: crowdnet.English,
	}

	for _, o := range opts {
		o(c)
	}

	if c.src == nil {
		c.src = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if c.update == nil {
		c.update = func(EpochResult) {}
	}

	c.net = crowdnet.NewNetwork(c.src)
	c.proc = features.NewProcessor(c.src)
	return c
}

// State returns the current stage of the Controller.
func (c *Controller) State() State {
	return c.state
}

// Train fits the feature statistics to records, splits them and trains the network with early
// stopping, as set by cfg. The network is left with the parameters of the epoch with the lowest
// test error.
//
// Training a Controller that is already trained continues from its current weights; the
// statistics and split are recomputed from the new records. If Train returns an error after the
// statistics were refit, the Controller is left Untrained.
func (c *Controller) Train(records []crowdnet.Sample, cfg Config) (Stats, error) {
	if err := cfg.Validate(); err != nil {
		return Stats{}, err
	} else if len(records) == 0 {
		return Stats{}, crowdnet.ErrEmptyCorpus
	}

	c.state = Training
	stats, err := c.train(records, cfg)
	if err != nil {
		c.state = Untrained
		c.split, c.history = features.Split{}, nil
		return Stats{}, err
	}

	c.stats = stats
	c.state = Trained
	return stats, nil
}

func (c *Controller) train(records []crowdnet.Sample, cfg Config) (Stats, error) {
	start := time.Now()
	stats := Stats{RunID: uuid.New()}
	log := c.logger.With("run", stats.RunID.String())

	if err := c.proc.Fit(records); err != nil {
		return stats, errors.Wrapf(err, "Failed to fit feature statistics")
	}

	processed, err := c.proc.Normalize(records)
	if err != nil {
		return stats, errors.Wrapf(err, "Failed to normalize records")
	}

	split, err := c.proc.Split(processed, cfg.TestRatio, cfg.Stratified)
	if err != nil {
		return stats, errors.Wrapf(err, "Failed to split records")
	} else if len(split.Test) == 0 {
		return stats, crowdnet.ErrEmptyTestSet
	}

	c.split = split
	c.history = nil

	log.Infow("Training started",
		"records", len(records),
		"train", len(split.Train),
		"test", len(split.Test),
		"epochs", cfg.Epochs,
		"patience", cfg.Patience,
	)

	train := make([]features.Processed, len(split.Train))
	copy(train, split.Train)
	test := features.Data(split.Test)

	errs := make([]float64, len(train))
	best := math.Inf(1)
	var bestEpoch, stale, epochs int

	for epoch := 0; epoch < cfg.Epochs; epoch++ {
		c.src.Shuffle(len(train), func(i, j int) {
			train[i], train[j] = train[j], train[i]
		})

		for i := range train {
			if errs[i], err = c.net.Train(train[i].Inputs, []float64{train[i].Target}); err != nil {
				return stats, errors.Wrapf(err, "Failed to train on sample %d in epoch %d", i, epoch+1)
			}
		}

		var trainErr float64
		if len(errs) != 0 {
			trainErr = stat.Mean(errs, nil)
		}

		testErr, err := c.net.Evaluate(test)
		if err != nil {
			return stats, errors.Wrapf(err, "Failed to evaluate test set in epoch %d", epoch+1)
		}

		epochs++
		r := EpochResult{Epoch: epoch + 1, TrainingError: trainErr, TestError: testErr}

		if testErr < best {
			best, bestEpoch, stale = testErr, epoch, 0
			c.net.SaveBestCheckpoint()
			r.Improved = true

			log.Debugw("Test error improved", "epoch", r.Epoch, "train", trainErr, "test", testErr)
		} else {
			stale++
			if r.Epoch%logEvery == 0 {
				log.Debugw("Epoch finished", "epoch", r.Epoch, "train", trainErr, "test", testErr)
			}
		}

		c.history = append(c.history, r)
		c.update(r)

		if stale >= cfg.Patience {
			log.Infow("Stopping early", "epoch", r.Epoch, "bestEpoch", bestEpoch+1, "patience", cfg.Patience)
			break
		}
	}

	c.net.RestoreBestCheckpoint()

	if stats.FinalTrainError, err = c.net.Evaluate(features.Data(split.Train)); err != nil {
		return stats, errors.Wrapf(err, "Failed to evaluate training set")
	}
	if stats.FinalTestError, err = c.net.Evaluate(test); err != nil {
		return stats, errors.Wrapf(err, "Failed to evaluate test set")
	}

	stats.EpochsRun = epochs
	stats.Elapsed = time.Since(start)
	stats.TrainSamples = len(split.Train)
	stats.TestSamples = len(split.Test)
	stats.BestEpoch = bestEpoch + 1
	stats.BestTestError = best

	log.Infow("Training finished",
		"epochs", stats.EpochsRun,
		"bestEpoch", stats.BestEpoch,
		"trainError", stats.FinalTrainError,
		"testError", stats.FinalTestError,
		"elapsed", stats.Elapsed,
	)

	return stats, nil
}

// Stats returns the summary of the last training run.
func (c *Controller) Stats() (Stats, error) {
	if c.state != Trained {
		return Stats{}, crowdnet.ErrNotTrained
	}
	return c.stats, nil
}

// History returns the result of every epoch of the last training run, in order.
func (c *Controller) History() []EpochResult {
	h := make([]EpochResult, len(c.history))
	copy(h, c.history)
	return h
}

// Split returns the training and test sets of the last training run. The returned slices may be
// modified freely.
func (c *Controller) Split() features.Split {
	s := features.Split{
		Train: make([]features.Processed, len(c.split.Train)),
		Test:  make([]features.Processed, len(c.split.Test)),
	}
	copy(s.Train, c.split.Train)
	copy(s.Test, c.split.Test)
	return s
}

// Network returns the network being trained. Its parameters are only meaningful to callers once
// the Controller is Trained.
func (c *Controller) Network() *crowdnet.Network {
	return c.net
}

// Processor returns the feature processor fit during the last training run.
func (c *Controller) Processor() *features.Processor {
	return c.proc
}
