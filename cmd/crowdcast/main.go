// Command crowdcast trains a network on a corpus of past trips and forecasts the crowding level of
// a single trip.
//
//	crowdcast [flags] <corpus.json> <date> <temperature> <direction> [epochs] [testRatio]
//
// With -dsn, the corpus is read from a database and the first argument is left out. With -serve,
// the trained model is then served over HTTP instead of exiting.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/pkg/errors"
	"github.com/sharnoff/crowdnet"
	"github.com/sharnoff/crowdnet/records"
	"github.com/sharnoff/crowdnet/report"
	"github.com/sharnoff/crowdnet/server"
	"github.com/sharnoff/crowdnet/trainer"
	"go.uber.org/zap"
)

const (
	exitFailure = 1
	exitUsage   = 2
)

// options holds everything given on the command line
type options struct {
	corpus      string
	date        time.Time
	temperature float64
	direction   crowdnet.Direction
	config      trainer.Config

	seed    int64
	locale  crowdnet.Locale
	verbose bool

	driver string
	dsn    string
	query  string

	serve string
}

func usage(fs *flag.FlagSet) func() {
	return func() {
		w := fs.Output()
		fmt.Fprintln(w, "Usage:")
		fmt.Fprintln(w, "  crowdcast [flags] <corpus.json> <date> <temperature> <direction> [epochs] [testRatio]")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "  corpus.json   JSON file of past trips (left out with -dsn)")
		fmt.Fprintln(w, "  date          date of the trip (YYYY-MM-DD)")
		fmt.Fprintln(w, "  temperature   expected temperature (°C)")
		fmt.Fprintln(w, "  direction     OUTBOUND or RETURN")
		fmt.Fprintln(w, "  epochs        most training epochs (default 1000)")
		fmt.Fprintln(w, "  testRatio     fraction of the corpus held out for testing (default 0.2)")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Flags:")
		fs.PrintDefaults()
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Example:")
		fmt.Fprintln(w, "  crowdcast trips.json 2025-06-10 25 OUTBOUND 1500 0.2")
	}
}

// parseArgs reads the flags and positional arguments. Invalid values are reported as
// *crowdnet.InputValidationError.
func parseArgs(args []string, output io.Writer) (options, error) {
	fs := flag.NewFlagSet("crowdcast", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.Usage = usage(fs)

	opts := options{config: trainer.DefaultConfig()}

	randomSplit := fs.Bool("random-split", false, "split the corpus at random instead of by direction and level")
	locale := fs.String("locale", string(crowdnet.English), "language of day names: it or en")
	fs.IntVar(&opts.config.Patience, "patience", opts.config.Patience, "epochs without improvement before training stops")
	fs.Int64Var(&opts.seed, "seed", 0, "seed for all randomness; 0 seeds from the clock")
	fs.BoolVar(&opts.verbose, "verbose", false, "log training progress in detail")
	fs.StringVar(&opts.driver, "driver", "postgres", "database driver for -dsn: postgres or mysql")
	fs.StringVar(&opts.dsn, "dsn", "", "read the corpus from this database instead of a file")
	fs.StringVar(&opts.query, "query", "", "query returning date, temperature, direction, crowding_level")
	fs.StringVar(&opts.serve, "serve", "", "after training, serve the HTTP API on this address")

	if err := fs.Parse(args); err != nil {
		return opts, err
	}

	pos := fs.Args()
	if opts.dsn == "" {
		if len(pos) == 0 {
			fs.Usage()
			return opts, flag.ErrHelp
		}
		opts.corpus, pos = pos[0], pos[1:]
	}

	if len(pos) < 3 || len(pos) > 5 {
		fs.Usage()
		return opts, flag.ErrHelp
	}

	var err error
	if opts.date, err = crowdnet.ParseDate(pos[0]); err != nil {
		return opts, err
	}
	if opts.temperature, err = crowdnet.ParseTemperature(pos[1]); err != nil {
		return opts, err
	}
	if opts.direction, err = crowdnet.ParseDirection(pos[2]); err != nil {
		return opts, err
	}

	if len(pos) > 3 {
		if opts.config.Epochs, err = strconv.Atoi(pos[3]); err != nil {
			return opts, &crowdnet.InputValidationError{Field: "epochs", Value: pos[3], Reason: "not an integer"}
		}
	}
	if len(pos) > 4 {
		if opts.config.TestRatio, err = strconv.ParseFloat(pos[4], 64); err != nil {
			return opts, &crowdnet.InputValidationError{Field: "test ratio", Value: pos[4], Reason: "not a number"}
		}
	}

	opts.config.Stratified = !*randomSplit
	if opts.locale, err = crowdnet.ParseLocale(*locale); err != nil {
		return opts, err
	}

	return opts, opts.config.Validate()
}

func newLogger(verbose bool) (*zap.SugaredLogger, error) {
	var logger *zap.Logger
	var err error
	if verbose {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		return nil, err
	}
	return logger.Sugar(), nil
}

func loadCorpus(ctx context.Context, opts options) ([]crowdnet.Sample, string, error) {
	if opts.dsn == "" {
		samples, err := records.LoadJSON(opts.corpus)
		return samples, opts.corpus, err
	}

	src, err := records.OpenSQL(ctx, opts.driver, opts.dsn, opts.query)
	if err != nil {
		return nil, opts.driver, err
	}
	defer src.Close()

	samples, err := src.Load(ctx)
	return samples, opts.driver, err
}

// run trains on the corpus, then writes the prediction and the evaluation of the model to stdout.
// It returns the Controller so that it may be served afterwards.
func run(ctx context.Context, opts options, stdout io.Writer, logger *zap.SugaredLogger) (*trainer.Controller, error) {
	samples, source, err := loadCorpus(ctx, opts)
	if err != nil {
		return nil, err
	}

	summary, err := records.Summarize(samples)
	if err != nil {
		return nil, &records.DataLoadError{Source: source, Err: err}
	}
	report.Corpus(stdout, source, summary)

	ctlOpts := []trainer.Option{
		trainer.WithLogger(logger),
		trainer.WithLocale(opts.locale),
		trainer.WithUpdate(report.Progress(stdout, opts.config.Epochs)),
	}
	if opts.seed != 0 {
		ctlOpts = append(ctlOpts, trainer.WithSeed(opts.seed))
	}
	ctl := trainer.New(ctlOpts...)

	fmt.Fprintf(stdout, "\nTRAINING (%d samples, up to %d epochs, patience %d):\n",
		len(samples), opts.config.Epochs, opts.config.Patience)

	stats, err := ctl.Train(samples, opts.config)
	if err != nil {
		return nil, errors.Wrapf(err, "Training failed")
	}

	accuracy := ctl.Accuracy(ctl.Split().Test)
	report.Training(stdout, stats, accuracy)

	p, err := ctl.Predict(opts.date, opts.temperature, opts.direction)
	if err != nil {
		return nil, errors.Wrapf(err, "Prediction failed")
	}
	report.Prediction(stdout, p, stats, accuracy)

	ev, err := ctl.Evaluate()
	if err != nil {
		return nil, errors.Wrapf(err, "Evaluation failed")
	}
	report.Evaluation(stdout, ev)

	return ctl, nil
}

func main() {
	opts, err := parseArgs(os.Args[1:], os.Stderr)
	if err == flag.ErrHelp {
		os.Exit(exitUsage)
	} else if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err)
		os.Exit(exitUsage)
	}

	logger, err := newLogger(opts.verbose)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %s\n", err)
		os.Exit(exitFailure)
	}

	code := 0
	ctl, err := run(context.Background(), opts, os.Stdout, logger)
	if err != nil {
		logger.Errorw("Run failed", "error", err)
		code = exitFailure
	} else if opts.serve != "" {
		logger.Infow("Serving", "addr", opts.serve)
		if err := http.ListenAndServe(opts.serve, server.New(ctl, logger).Handler()); err != nil {
			logger.Errorw("Server stopped", "error", err)
			code = exitFailure
		}
	}

	logger.Sync()
	os.Exit(code)
}
