package grid

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Grid is a dense Z × R lattice of scalar values. Rows follow the Z axis,
// columns the R axis. A Grid is never resized after construction.
type Grid struct {
	layout Layout
	data   *mat.Dense
}

// New returns a zero-filled grid for l.
func New(l Layout) (*Grid, error) {
	if err := l.Validate(); err != nil {
		return nil, err
	}
	return &Grid{
		layout: l,
		data:   mat.NewDense(l.Z.Count, l.R.Count, nil),
	}, nil
}

// FromDense wraps a copy of m. The dimensions of m must match l.
func FromDense(l Layout, m mat.Matrix) (*Grid, error) {
	if err := l.Validate(); err != nil {
		return nil, err
	}
	r, c := m.Dims()
	if r != l.Z.Count || c != l.R.Count {
		return nil, fmt.Errorf("%w: matrix is %dx%d, layout wants %dx%d",
			ErrLayout, r, c, l.Z.Count, l.R.Count)
	}
	return &Grid{layout: l, data: mat.DenseCopyOf(m)}, nil
}

func (g *Grid) Layout() Layout { return g.layout }

// Dims returns the Z and R bin counts.
func (g *Grid) Dims() (zCount, rCount int) { return g.data.Dims() }

// At returns the value at (z, r). It panics on out of range indices, like
// mat.Dense.
func (g *Grid) At(z, r int) float64 { return g.data.At(z, r) }

// Dense returns a copy of the underlying matrix.
func (g *Grid) Dense() *mat.Dense { return mat.DenseCopyOf(g.data) }

// Row returns a copy of all R values at Z index z.
func (g *Grid) Row(z int) []float64 { return mat.Row(nil, z, g.data) }

func (g *Grid) set(z, r int, v float64) { g.data.Set(z, r, v) }
