package dataprep

import (
	"errors"
	"fmt"

	"github.com/go-gota/gota/series"
)

var (
	// ErrUnresolvedEdge means interpolation left missing values at the start
	// or end of a column, where only one neighbour exists.
	ErrUnresolvedEdge = errors.New("missing values at table edge cannot be interpolated")
	// ErrMissingValue means a derivation met a missing input cell.
	ErrMissingValue = errors.New("missing value")
	// ErrColumnType means a column has the wrong table type for the operation.
	ErrColumnType = errors.New("unexpected column type")
)

func errNotNumeric(name string, t series.Type) error {
	return fmt.Errorf("%w: column %q is %s, want numeric", ErrColumnType, name, t)
}
