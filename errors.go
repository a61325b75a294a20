package crowdnet

import (
	"fmt"
)

// Error is a wrapper for specific types of errors for which there is no additional information
// necessary. These errors are defined as global variables, and can be compared directly or with
// errors.Is.
type Error struct{ string }

func (err Error) Error() string {
	return err.string
}

// These are the global errors that may be returned by this package and its subpackages.
var (
	// ErrNotTrained is returned by anything that needs a trained model when no training run has
	// completed yet. It is an ordinary result, not a failure of the caller's input.
	ErrNotTrained = Error{"Model has not been trained"}

	// ErrNotFitted is returned when normalization is requested before statistics were fit.
	ErrNotFitted = Error{"Feature statistics have not been fit"}

	ErrEmptyCorpus  = Error{"Corpus has no records"}
	ErrEmptyTestSet = Error{"Test split is empty"}
)

// InputValidationError documents a user-supplied value that was rejected before any part of the
// pipeline ran.
type InputValidationError struct {
	Field  string
	Value  string
	Reason string
}

func (err *InputValidationError) Error() string {
	return fmt.Sprintf("Invalid %s %q: %s", err.Field, err.Value, err.Reason)
}

// SizeMismatchError is returned when a vector given to the Network does not have the length the
// fixed topology expects.
type SizeMismatchError struct {
	Expected, Got int
	Name          string
}

func (err SizeMismatchError) Error() string {
	return fmt.Sprintf("Size mismatch for %s: expected %d, got %d", err.Name, err.Expected, err.Got)
}
