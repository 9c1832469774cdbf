package grid

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Differentiate returns the forward difference of g along Z:
//
//	d[i, j] = (g[i+1, j] - g[i, j]) / Z.Step
//
// The result has one Z row fewer than g and the same R axis. g is not
// modified. Zero cells left by Build are treated as ordinary values.
func Differentiate(g *Grid) (*Grid, error) {
	zc, rc := g.Dims()
	if zc < 2 {
		return nil, fmt.Errorf("%w: grid has %d", ErrTooFewRows, zc)
	}

	l := g.layout
	l.Z = l.Z.Shrink()
	step := g.layout.Z.Step

	d := mat.NewDense(zc-1, rc, nil)
	d.Sub(g.data.Slice(1, zc, 0, rc), g.data.Slice(0, zc-1, 0, rc))
	d.Apply(func(_, _ int, v float64) float64 { return v / step }, d)

	return &Grid{layout: l, data: d}, nil
}
