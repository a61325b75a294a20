// Package records loads corpora of historical trips, from JSON files or from a SQL database, and
// summarizes them.
//
// Every loader checks that crowding levels lie within [crowdnet.MinLevel, crowdnet.MaxLevel].
// Any failure is returned as a *DataLoadError naming the source.
package records

import (
	"encoding/json"
	"io"
	"math"
	"os"

	"github.com/pkg/errors"
	"github.com/sharnoff/crowdnet"
)

// DataLoadError is returned when a corpus is missing, can't be parsed, or holds values out of
// their domain.
type DataLoadError struct {
	Source string
	Err    error
}

func (err *DataLoadError) Error() string {
	return "Failed to load records from " + err.Source + ": " + err.Err.Error()
}

func (err *DataLoadError) Unwrap() error {
	return err.Err
}

// Cause allows errors.Cause to reach the underlying error.
func (err *DataLoadError) Cause() error {
	return err.Err
}

// LoadJSON reads a corpus from the JSON file at path. The file holds a single array of records:
//
//	[{"date": "2025-06-10", "temperature": 25, "direction": "OUTBOUND", "crowdingLevel": 3.5}]
func LoadJSON(path string) ([]crowdnet.Sample, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &DataLoadError{Source: path, Err: err}
	}
	defer f.Close()

	return ReadJSON(f, path)
}

// ReadJSON reads a corpus in the format of LoadJSON from r. source is used to name r in errors.
func ReadJSON(r io.Reader, source string) ([]crowdnet.Sample, error) {
	var samples []crowdnet.Sample
	if err := json.NewDecoder(r).Decode(&samples); err != nil {
		return nil, &DataLoadError{Source: source, Err: errors.Wrapf(err, "Malformed JSON")}
	}

	if err := Check(samples); err != nil {
		return nil, &DataLoadError{Source: source, Err: err}
	}

	return samples, nil
}

// Check returns an error for the first sample that could not have come from a valid trip: with a
// crowding level outside [1, 5], or a temperature that is not finite.
func Check(samples []crowdnet.Sample) error {
	for i, s := range samples {
		if math.IsNaN(s.CrowdingLevel) || s.CrowdingLevel < crowdnet.MinLevel || s.CrowdingLevel > crowdnet.MaxLevel {
			return errors.Errorf("Record %d has crowding level %v, outside [%v, %v]",
				i, s.CrowdingLevel, crowdnet.MinLevel, crowdnet.MaxLevel)
		}

		if err := crowdnet.ValidateTemperature(s.Temperature); err != nil {
			return errors.Wrapf(err, "Record %d", i)
		}
	}

	return nil
}
