package grid

import (
	"errors"
	"fmt"
)

// Domain errors for grid operations.
var (
	// ErrBoundary indicates a sample coordinate that maps outside the lattice.
	ErrBoundary = errors.New("grid: coordinate outside grid bounds")

	// ErrIndex indicates a cross-section request outside the R axis.
	ErrIndex = errors.New("grid: section index out of range")

	// ErrLayout indicates an axis or layout that cannot describe a lattice.
	ErrLayout = errors.New("grid: invalid layout")

	// ErrTooFewRows indicates a grid too short along Z to differentiate.
	ErrTooFewRows = errors.New("grid: at least two z rows required")
)

// BoundaryError reports the sample that fell outside the lattice.
// Index is -1 when the coordinate is not finite.
type BoundaryError struct {
	Line  int
	Axis  string
	Coord float64
	Index int
	Count int
}

func (e *BoundaryError) Error() string {
	return fmt.Sprintf("%v: line %d: %s=%g maps to bin %d, want [0, %d)",
		ErrBoundary, e.Line, e.Axis, e.Coord, e.Index, e.Count)
}

func (e *BoundaryError) Unwrap() error {
	return ErrBoundary
}

// IndexError reports a section request outside [0, Count).
type IndexError struct {
	Index int
	Count int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("%v: index %d, want [0, %d)", ErrIndex, e.Index, e.Count)
}

func (e *IndexError) Unwrap() error {
	return ErrIndex
}
