package kmeans

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyImage is returned when there are no pixels to sample or cluster.
	ErrEmptyImage = errors.New("image contains no pixels")

	// ErrInvalidParameter is returned for out-of-range configuration such as
	// k <= 0, p <= 0 or an unknown render mode.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrDimensionMismatch is returned when a centroid set or pixel buffer
	// does not have the size the caller configured.
	ErrDimensionMismatch = errors.New("dimension mismatch")
)

// ParamError describes an invalid parameter.
//
// errors.Is(err, ErrInvalidParameter) reports true for every ParamError.
type ParamError struct {
	Name   string
	Value  any
	Reason string
}

func (e *ParamError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("invalid parameter %s: %v", e.Name, e.Value)
	}
	return fmt.Sprintf("invalid parameter %s: %v (%s)", e.Name, e.Value, e.Reason)
}

func (e *ParamError) Unwrap() error { return ErrInvalidParameter }

// DimensionMismatchError indicates a centroid count or pixel count that
// disagrees with the configured size.
//
// errors.Is(err, ErrDimensionMismatch) reports true for every DimensionMismatchError.
type DimensionMismatchError struct {
	What     string
	Expected int
	Actual   int
}

func (e *DimensionMismatchError) Error() string {
	return fmt.Sprintf("%s mismatch: expected %d, got %d", e.What, e.Expected, e.Actual)
}

func (e *DimensionMismatchError) Unwrap() error { return ErrDimensionMismatch }
