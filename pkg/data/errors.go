package data

import "errors"

var (
	// ErrNotFound means the input file does not exist.
	ErrNotFound = errors.New("input file not found")
	// ErrParse means the input is not a well-formed manifest.
	ErrParse = errors.New("malformed input")
	// ErrMissingColumn means an expected column is absent.
	ErrMissingColumn = errors.New("missing column")
)
