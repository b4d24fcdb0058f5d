package catalog

import "errors"

var (
	// ErrMalformedInput is returned when the dataset lacks a group or a
	// required field. No partial catalog is produced.
	ErrMalformedInput = errors.New("malformed input")

	// ErrFetchFailure is returned when the dataset could not be retrieved.
	ErrFetchFailure = errors.New("fetch failure")
)
